package services

import (
	"context"
	"fmt"
	"safecity-service/internal/domain"
	"safecity-service/internal/platform/obs"
	"safecity-service/internal/ports"
	"strings"
)

const noAdvice = "No advice available"

type AdviceRequest struct {
	LocationType string
	Situation    string
	Location     domain.Coordinates
}

type AdviceService struct {
	Advisor ports.Advisor
}

// Advise asks the advisor for short, non-medical safety tips for the situation.
func (s *AdviceService) Advise(ctx context.Context, req AdviceRequest) (_ string, err error) {
	defer obs.Time(ctx, "advice.Advise")(&err)

	locationType := strings.TrimSpace(req.LocationType)
	situation := strings.TrimSpace(req.Situation)

	if locationType == "" {
		return "", domain.Invalid("location_type", "is required")
	}
	if situation == "" {
		return "", domain.Invalid("situation", "is required")
	}
	if err := validateLocation(req.Location); err != nil {
		return "", err
	}

	answer, err := s.Advisor.Advise(ctx, advicePrompt(locationType, situation, req.Location))
	if err != nil {
		return "", fmt.Errorf("generate advice: %w", err)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return noAdvice, nil
	}
	return answer, nil
}

func advicePrompt(locationType, situation string, at domain.Coordinates) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant giving **non-medical safety advice**.\n")
	fmt.Fprintf(&b, "The user is near a %s at coordinates (%g, %g).\n", locationType, at.Lat, at.Lon)
	fmt.Fprintf(&b, "The user is facing the following situation: %s.\n", situation)
	b.WriteString("Provide **short, practical safety tips** relevant to their location.\n")
	return b.String()
}
