package auth

import (
	"github.com/forkasbib/restopos-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID       int64
	RestaurantID int64
	BranchID     *int64
	Role         enums.StaffRole
	JTI          string
}

// AccessTokenClaims represents the typed JWT issued to POS clients. Claim
// names match the legacy token layout.
type AccessTokenClaims struct {
	UserID       int64           `json:"id_vendedor"`
	RestaurantID int64           `json:"id_restaurante"`
	BranchID     *int64          `json:"id_sucursal,omitempty"`
	Role         enums.StaffRole `json:"rol"`
	jwt.RegisteredClaims
}
