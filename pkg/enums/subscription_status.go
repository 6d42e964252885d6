package enums

import "fmt"

// SubscriptionStatus is the lifecycle state of a restaurant subscription.
// Values match the estado column of suscripciones.
type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "activa"
	SubscriptionStatusPending  SubscriptionStatus = "pendiente"
	SubscriptionStatusCanceled SubscriptionStatus = "cancelada"
	SubscriptionStatusExpired  SubscriptionStatus = "expirada"
)

var validSubscriptionStatuses = []SubscriptionStatus{
	SubscriptionStatusActive,
	SubscriptionStatusPending,
	SubscriptionStatusCanceled,
	SubscriptionStatusExpired,
}

// String implements fmt.Stringer.
func (s SubscriptionStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is known.
func (s SubscriptionStatus) IsValid() bool {
	for _, candidate := range validSubscriptionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSubscriptionStatus converts raw input into a SubscriptionStatus.
func ParseSubscriptionStatus(value string) (SubscriptionStatus, error) {
	for _, candidate := range validSubscriptionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid subscription status %q", value)
}
