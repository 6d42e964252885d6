package usage

import "github.com/forkasbib/restopos-backend/pkg/enums"

// Snapshot is the current period's counters for one restaurant. A missing
// row reads as all zeroes.
type Snapshot struct {
	Products     int64 `json:"productos"`
	Users        int64 `json:"usuarios"`
	Branches     int64 `json:"sucursales"`
	Transactions int64 `json:"transacciones"`
	StorageMB    int64 `json:"almacenamiento_mb"`
}

// For returns the counter value for a metered resource.
func (s Snapshot) For(resource enums.ResourceType) int64 {
	switch resource {
	case enums.ResourceTypeProducts:
		return s.Products
	case enums.ResourceTypeUsers:
		return s.Users
	case enums.ResourceTypeBranches:
		return s.Branches
	case enums.ResourceTypeTransactions:
		return s.Transactions
	case enums.ResourceTypeStorage:
		return s.StorageMB
	default:
		return 0
	}
}
