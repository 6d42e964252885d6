package alerts

import (
	"fmt"

	"github.com/forkasbib/restopos-backend/pkg/enums"
)

// Threshold percentages that trip each alert tier. Classification picks
// the highest tier whose threshold the usage percentage reaches.
const (
	warningThreshold  = 75
	criticalThreshold = 90
	exceededThreshold = 100
)

// Classification is the outcome of evaluating one resource against its
// plan ceiling.
type Classification struct {
	Type     enums.AlertType
	Severity enums.AlertSeverity
	Percent  int
}

// Classify maps current usage against a limit to an alert tier. It
// returns (nil) when usage is below every threshold or the ceiling is
// unlimited (<= 0).
func Classify(current, limit int64) *Classification {
	if limit <= 0 {
		return nil
	}

	percent := int(current * 100 / limit)
	switch {
	case percent >= exceededThreshold:
		return &Classification{Type: enums.AlertTypeLimitExceeded, Severity: enums.AlertSeverityCritical, Percent: percent}
	case percent >= criticalThreshold:
		return &Classification{Type: enums.AlertTypeLimitCritical, Severity: enums.AlertSeverityCritical, Percent: percent}
	case percent >= warningThreshold:
		return &Classification{Type: enums.AlertTypeLimitWarning, Severity: enums.AlertSeverityWarning, Percent: percent}
	default:
		return nil
	}
}

// Message renders the operator-facing alert text for a classification.
func (c *Classification) Message(resource enums.ResourceType, current, limit int64) string {
	name := resource.DisplayName()
	switch c.Type {
	case enums.AlertTypeLimitExceeded:
		return fmt.Sprintf("%s limit exceeded: %d of %d in use (%d%%)", name, current, limit, c.Percent)
	case enums.AlertTypeLimitCritical:
		return fmt.Sprintf("%s usage is critical: %d of %d in use (%d%%)", name, current, limit, c.Percent)
	default:
		return fmt.Sprintf("%s usage is approaching the plan limit: %d of %d in use (%d%%)", name, current, limit, c.Percent)
	}
}
