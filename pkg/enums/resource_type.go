package enums

import "fmt"

// ResourceType identifies a metered plan resource. Values match the
// recurso_afectado column and the wire payloads.
type ResourceType string

const (
	ResourceTypeProducts     ResourceType = "productos"
	ResourceTypeUsers        ResourceType = "usuarios"
	ResourceTypeBranches     ResourceType = "sucursales"
	ResourceTypeTransactions ResourceType = "transacciones"
	ResourceTypeStorage      ResourceType = "almacenamiento"
)

// validResourceTypes doubles as the canonical evaluation order for limit
// checks and alert sweeps.
var validResourceTypes = []ResourceType{
	ResourceTypeProducts,
	ResourceTypeUsers,
	ResourceTypeBranches,
	ResourceTypeTransactions,
	ResourceTypeStorage,
}

// ResourceTypes returns every metered resource in canonical order.
func ResourceTypes() []ResourceType {
	out := make([]ResourceType, len(validResourceTypes))
	copy(out, validResourceTypes)
	return out
}

// String implements fmt.Stringer.
func (r ResourceType) String() string {
	return string(r)
}

// IsValid reports whether the value is known.
func (r ResourceType) IsValid() bool {
	for _, candidate := range validResourceTypes {
		if candidate == r {
			return true
		}
	}
	return false
}

// Recountable reports whether the resource can be rebuilt from its source
// table. Monthly transactions and storage only move through explicit
// mutations.
func (r ResourceType) Recountable() bool {
	switch r {
	case ResourceTypeProducts, ResourceTypeUsers, ResourceTypeBranches:
		return true
	default:
		return false
	}
}

// CounterColumn returns the uso_recursos column backing the resource.
func (r ResourceType) CounterColumn() string {
	switch r {
	case ResourceTypeProducts:
		return "productos_actuales"
	case ResourceTypeUsers:
		return "usuarios_actuales"
	case ResourceTypeBranches:
		return "sucursales_actuales"
	case ResourceTypeTransactions:
		return "transacciones_mes_actual"
	case ResourceTypeStorage:
		return "almacenamiento_usado_mb"
	default:
		return ""
	}
}

// DisplayName is the human wording used in alert messages.
func (r ResourceType) DisplayName() string {
	switch r {
	case ResourceTypeProducts:
		return "products"
	case ResourceTypeUsers:
		return "users"
	case ResourceTypeBranches:
		return "branches"
	case ResourceTypeTransactions:
		return "monthly transactions"
	case ResourceTypeStorage:
		return "storage (MB)"
	default:
		return string(r)
	}
}

// ParseResourceType converts raw input into a ResourceType.
func ParseResourceType(value string) (ResourceType, error) {
	for _, candidate := range validResourceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid resource type %q", value)
}
