package entitlement

// planFeatureKeys collapses the route-level feature paths onto the plan's
// funcionalidades keys. Several UI-facing paths share one plan key; an
// unmapped path is looked up under its own name.
var planFeatureKeys = map[string]string{
	"inventory.products":  "inventory",
	"inventory.productos": "inventory",
	"inventory.lots":      "inventory",
	"inventory.complete":  "inventory",

	"dashboard.resumen":    "dashboard",
	"dashboard.productos":  "dashboard",
	"dashboard.categorias": "dashboard",
	"dashboard.usuarios":   "dashboard",
	"dashboard.mesas":      "dashboard",
	"dashboard.completo":   "dashboard",

	"sales.basico":   "sales",
	"sales.pedidos":  "sales",
	"sales.avanzado": "sales",

	"mesas":       "mesas",
	"reservas":    "reservas",
	"delivery":    "delivery",
	"promociones": "promociones",

	"egresos.basico":   "egresos",
	"egresos.avanzado": "egresos",

	"cocina": "cocina",
	"arqueo": "arqueo",
	"lotes":  "lotes",

	"analytics":             "analytics",
	"analytics-avanzados":   "analytics",
	"analytics-productos":   "analytics",
	"tendencias-temporales": "analytics",
	"exportacion-avanzada":  "analytics",

	"api":         "api",
	"white_label": "white_label",
}

// Feature paths the HTTP routes gate on. List-valued plan features match
// on the path's suffix, so these suffixes must use the tokens the plan
// documents store (the legacy Spanish names).
const (
	FeatureProductCatalog = "inventory.productos"
	FeatureSalesRegister  = "sales.basico"
)

// PlanFeatureKey resolves a requested feature path to the plan map key it
// is gated by.
func PlanFeatureKey(featurePath string) string {
	if key, ok := planFeatureKeys[featurePath]; ok {
		return key
	}
	return featurePath
}
