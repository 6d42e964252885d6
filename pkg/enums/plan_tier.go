package enums

import (
	"fmt"
	"strings"
)

// PlanTier is the commercial plan level, ordered basico < profesional <
// avanzado < enterprise. Values match the nombre column of planes.
type PlanTier string

const (
	PlanTierBasico      PlanTier = "basico"
	PlanTierProfesional PlanTier = "profesional"
	PlanTierAvanzado    PlanTier = "avanzado"
	PlanTierEnterprise  PlanTier = "enterprise"
)

var validPlanTiers = []PlanTier{
	PlanTierBasico,
	PlanTierProfesional,
	PlanTierAvanzado,
	PlanTierEnterprise,
}

var planTierRanks = map[PlanTier]int{
	PlanTierBasico:      1,
	PlanTierProfesional: 2,
	PlanTierAvanzado:    3,
	PlanTierEnterprise:  4,
}

// String implements fmt.Stringer.
func (p PlanTier) String() string {
	return string(p)
}

// IsValid reports whether the value is known.
func (p PlanTier) IsValid() bool {
	_, ok := planTierRanks[p]
	return ok
}

// Rank returns the tier's position in the hierarchy. Unknown tiers rank 0,
// below every valid tier, so they never satisfy a tier requirement.
func (p PlanTier) Rank() int {
	return planTierRanks[p]
}

// AtLeast reports whether the tier satisfies the required minimum.
func (p PlanTier) AtLeast(required PlanTier) bool {
	return p.Rank() >= required.Rank()
}

// ParsePlanTier converts raw input into a PlanTier.
func ParsePlanTier(value string) (PlanTier, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validPlanTiers {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid plan tier %q", value)
}

// PlanTierOf maps a stored plan name onto the hierarchy, tolerating case
// and surrounding whitespace. Unrecognized names yield the zero tier.
func PlanTierOf(planName string) PlanTier {
	tier, err := ParsePlanTier(planName)
	if err != nil {
		return ""
	}
	return tier
}
