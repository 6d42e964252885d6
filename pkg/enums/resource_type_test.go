package enums

import "testing"

func TestResourceTypesCanonicalOrder(t *testing.T) {
	want := []ResourceType{
		ResourceTypeProducts,
		ResourceTypeUsers,
		ResourceTypeBranches,
		ResourceTypeTransactions,
		ResourceTypeStorage,
	}
	got := ResourceTypes()
	if len(got) != len(want) {
		t.Fatalf("expected %d resources, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %s got %s", i, want[i], got[i])
		}
	}
}

func TestResourceTypeCounterColumns(t *testing.T) {
	cases := map[ResourceType]string{
		ResourceTypeProducts:     "productos_actuales",
		ResourceTypeUsers:        "usuarios_actuales",
		ResourceTypeBranches:     "sucursales_actuales",
		ResourceTypeTransactions: "transacciones_mes_actual",
		ResourceTypeStorage:      "almacenamiento_usado_mb",
	}
	for resource, column := range cases {
		if got := resource.CounterColumn(); got != column {
			t.Fatalf("%s: expected column %q got %q", resource, column, got)
		}
	}
	if got := ResourceType("bogus").CounterColumn(); got != "" {
		t.Fatalf("unknown resource should have no column, got %q", got)
	}
}

func TestResourceTypeRecountable(t *testing.T) {
	for _, resource := range []ResourceType{ResourceTypeProducts, ResourceTypeUsers, ResourceTypeBranches} {
		if !resource.Recountable() {
			t.Fatalf("%s should be recountable", resource)
		}
	}
	for _, resource := range []ResourceType{ResourceTypeTransactions, ResourceTypeStorage} {
		if resource.Recountable() {
			t.Fatalf("%s should not be recountable", resource)
		}
	}
}
