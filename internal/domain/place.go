package domain

import "fmt"

// Category is one of the fixed kinds of place the nearby lookup supports.
type Category string

const (
	CategoryPolice          Category = "police"
	CategoryHospital        Category = "hospital"
	CategoryPharmacy        Category = "pharmacy"
	CategoryPark            Category = "park"
	CategoryCommunityCenter Category = "community_center"
)

const UnnamedLocation = "Unnamed Location"

// Categories lists every supported category in a stable order.
func Categories() []Category {
	return []Category{
		CategoryPolice,
		CategoryHospital,
		CategoryPharmacy,
		CategoryPark,
		CategoryCommunityCenter,
	}
}

// ParseCategory maps user input onto a known Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := c.TagFilter(); !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCategory, s)
	}
	return c, nil
}

// TagFilter returns the OpenStreetMap tag filter selecting this category.
func (c Category) TagFilter() (string, bool) {
	switch c {
	case CategoryPolice:
		return "[amenity=police]", true
	case CategoryHospital:
		return "[amenity=hospital]", true
	case CategoryPharmacy:
		return "[amenity=pharmacy]", true
	case CategoryPark:
		return "[leisure=park]", true
	case CategoryCommunityCenter:
		return "[amenity=community_centre]", true
	}
	return "", false
}

// Feature is a raw map feature returned by the geodata service.
// Point is set for node features, Center for ways and relations.
type Feature struct {
	Type   string
	Name   string
	Point  *Coordinates
	Center *Coordinates
}

// Position returns the representative coordinate of f, if it has one.
func (f Feature) Position() (Coordinates, bool) {
	if f.Point != nil {
		return *f.Point, true
	}
	if f.Center != nil {
		return *f.Center, true
	}
	return Coordinates{}, false
}

// Distance is a distance in miles, or unknown for places served from cache.
type Distance struct {
	Miles float64
	Known bool
}

func MilesDistance(miles float64) Distance { return Distance{Miles: miles, Known: true} }

var UnknownDistance = Distance{}

// A place near the caller, produced per request.
type PlaceResult struct {
	Name        string
	Coordinates Coordinates
	Distance    Distance
}

// The persisted subset of a PlaceResult, unique per (Name, Category).
type CachedPlace struct {
	Name        string
	Category    Category
	Coordinates Coordinates
}

// PlaceSource records which path produced a NearbyResult.
type PlaceSource int

const (
	SourceLive PlaceSource = iota
	SourceCache
)

func (s PlaceSource) String() string {
	if s == SourceCache {
		return "cache"
	}
	return "live"
}

// NearbyResult is the outcome of a nearby lookup. Places from SourceLive are
// sorted by distance; places from SourceCache carry UnknownDistance.
type NearbyResult struct {
	Source PlaceSource
	Places []PlaceResult
}
