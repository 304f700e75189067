package overpass

import (
	"fmt"
	"safecity-service/internal/domain"
	"strconv"
	"strings"
)

var elementKinds = []string{"node", "way", "relation"}

// BuildQuery renders an Overpass QL query selecting nodes, ways and relations
// of category around center. Ways and relations are returned with their center.
func BuildQuery(category domain.Category, center domain.Coordinates) (string, error) {
	filter, ok := category.TagFilter()
	if !ok {
		return "", fmt.Errorf("build query: %w: %q", domain.ErrUnsupportedCategory, category)
	}

	around := fmt.Sprintf(
		"(around:%d,%s,%s)",
		RadiusMeters,
		strconv.FormatFloat(center.Lat, 'f', -1, 64),
		strconv.FormatFloat(center.Lon, 'f', -1, 64),
	)

	var b strings.Builder
	fmt.Fprintf(&b, "[out:json][timeout:%d];\n", int(queryTimeout.Seconds()))
	for _, kind := range elementKinds {
		fmt.Fprintf(&b, "%s%s%s;\n", kind, filter, around)
		fmt.Fprintf(&b, "out center %d;\n", perKindLimit)
	}

	return b.String(), nil
}
