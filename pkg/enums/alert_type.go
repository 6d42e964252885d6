package enums

import "fmt"

// AlertType classifies a limit alert by how close usage is to the ceiling.
type AlertType string

const (
	AlertTypeLimitWarning  AlertType = "limit_warning"
	AlertTypeLimitCritical AlertType = "limit_critical"
	AlertTypeLimitExceeded AlertType = "limit_exceeded"
)

var validAlertTypes = []AlertType{
	AlertTypeLimitWarning,
	AlertTypeLimitCritical,
	AlertTypeLimitExceeded,
}

// String implements fmt.Stringer.
func (a AlertType) String() string {
	return string(a)
}

// IsValid reports whether the value is known.
func (a AlertType) IsValid() bool {
	for _, candidate := range validAlertTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAlertType converts raw input into an AlertType.
func ParseAlertType(value string) (AlertType, error) {
	for _, candidate := range validAlertTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid alert type %q", value)
}
