package entitlement

import (
	"encoding/json"
	"testing"

	"github.com/forkasbib/restopos-backend/pkg/db/types"
)

func TestPlanFeatureKeyCollapsesAliases(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"inventory.products", "inventory"},
		{"inventory.lots", "inventory"},
		{"dashboard.completo", "dashboard"},
		{"sales.pedidos", "sales"},
		{"egresos.avanzado", "egresos"},
		{"analytics-avanzados", "analytics"},
		{"tendencias-temporales", "analytics"},
		{"exportacion-avanzada", "analytics"},
		{"promociones", "promociones"},
		{"white_label", "white_label"},
		// unmapped paths fall back to themselves
		{"facturacion", "facturacion"},
		{"mesas.zonas", "mesas.zonas"},
	}
	for _, tc := range cases {
		if got := PlanFeatureKey(tc.path); got != tc.want {
			t.Errorf("PlanFeatureKey(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

// The gate paths the routes use must resolve on every seeded plan tier,
// including the list-valued inventory feature whose tokens are the legacy
// Spanish names. The documents below mirror the migration seed rows.
func TestRouteGatePathsResolveAgainstSeededPlans(t *testing.T) {
	seededPlans := map[string]string{
		"basico":      `{"sales": true, "inventory": ["productos"], "dashboard": true, "mesas": true, "arqueo": false, "cocina": false, "delivery": false, "reservas": false, "promociones": false, "egresos": {}, "analytics": false, "api": false, "white_label": false}`,
		"profesional": `{"sales": true, "inventory": ["productos", "lotes"], "dashboard": true, "mesas": true, "arqueo": true, "cocina": true, "delivery": true, "reservas": false, "promociones": false, "egresos": {"basico": true}, "analytics": false, "api": false, "white_label": false}`,
		"avanzado":    `{"sales": true, "inventory": ["productos", "lotes", "transferencias"], "dashboard": true, "mesas": true, "arqueo": true, "cocina": true, "delivery": true, "reservas": true, "promociones": true, "egresos": {"basico": true, "avanzado": true}, "analytics": true, "api": false, "white_label": false}`,
		"enterprise":  `{"sales": true, "inventory": ["productos", "lotes", "transferencias"], "dashboard": true, "mesas": true, "arqueo": true, "cocina": true, "delivery": true, "reservas": true, "promociones": true, "egresos": {"basico": true, "avanzado": true}, "analytics": true, "api": true, "white_label": true}`,
	}
	gatePaths := []string{FeatureProductCatalog, FeatureSalesRegister}

	for planName, doc := range seededPlans {
		var features types.FeatureMap
		if err := json.Unmarshal([]byte(doc), &features); err != nil {
			t.Fatalf("decode %s features: %v", planName, err)
		}
		for _, path := range gatePaths {
			key := PlanFeatureKey(path)
			if !features.Resolve(key, path) {
				t.Errorf("plan %s denies gate path %q (plan key %q)", planName, path, key)
			}
		}
	}
}
