package enums

import "fmt"

// AlertStatus is the workflow state of a limit alert. Values match the
// estado column of alertas_limites.
type AlertStatus string

const (
	AlertStatusPending  AlertStatus = "pendiente"
	AlertStatusResolved AlertStatus = "resuelta"
)

var validAlertStatuses = []AlertStatus{
	AlertStatusPending,
	AlertStatusResolved,
}

// String implements fmt.Stringer.
func (a AlertStatus) String() string {
	return string(a)
}

// IsValid reports whether the value is known.
func (a AlertStatus) IsValid() bool {
	for _, candidate := range validAlertStatuses {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAlertStatus converts raw input into an AlertStatus.
func ParseAlertStatus(value string) (AlertStatus, error) {
	for _, candidate := range validAlertStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid alert status %q", value)
}
