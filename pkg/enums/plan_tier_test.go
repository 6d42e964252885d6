package enums

import "testing"

func TestPlanTierHierarchy(t *testing.T) {
	ordered := []PlanTier{PlanTierBasico, PlanTierProfesional, PlanTierAvanzado, PlanTierEnterprise}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Rank() <= ordered[i-1].Rank() {
			t.Fatalf("expected %s to outrank %s", ordered[i], ordered[i-1])
		}
	}

	if !PlanTierEnterprise.AtLeast(PlanTierBasico) {
		t.Fatalf("enterprise should satisfy a basico requirement")
	}
	if PlanTierBasico.AtLeast(PlanTierProfesional) {
		t.Fatalf("basico must not satisfy a profesional requirement")
	}
	if !PlanTierProfesional.AtLeast(PlanTierProfesional) {
		t.Fatalf("a tier satisfies itself")
	}
}

func TestPlanTierUnknownRanksBelowEverything(t *testing.T) {
	unknown := PlanTier("custom-legacy")
	if unknown.Rank() != 0 {
		t.Fatalf("unknown tier should rank 0, got %d", unknown.Rank())
	}
	if unknown.AtLeast(PlanTierBasico) {
		t.Fatalf("unknown tier must not satisfy any requirement")
	}
	if !PlanTierBasico.AtLeast(unknown) {
		t.Fatalf("every valid tier outranks an unknown one")
	}
}

func TestPlanTierOfNormalizesNames(t *testing.T) {
	if got := PlanTierOf("  Avanzado "); got != PlanTierAvanzado {
		t.Fatalf("expected avanzado, got %q", got)
	}
	if got := PlanTierOf("plan-legacy"); got != "" {
		t.Fatalf("expected zero tier for unrecognized name, got %q", got)
	}
}
