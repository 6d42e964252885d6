package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// FeatureKind tags the decoded shape of a single plan feature flag.
type FeatureKind int

const (
	FeatureAbsent FeatureKind = iota
	FeatureBool
	FeatureList
	FeatureKeyed
)

// FeatureValue is one entry of the funcionalidades jsonb document. Plans
// store features in three shapes: a plain boolean, a list of enabled
// sub-features, or an object keyed by sub-feature name.
type FeatureValue struct {
	Kind  FeatureKind
	Bool  bool
	List  []string
	Keyed map[string]bool
}

// UnmarshalJSON decodes the tagged union: bool, array of strings, or
// object. Anything else is rejected.
func (v *FeatureValue) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*v = FeatureValue{}
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = FeatureValue{Kind: FeatureBool, Bool: b}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*v = FeatureValue{Kind: FeatureList, List: list}
		return nil
	}

	var keyed map[string]bool
	if err := json.Unmarshal(data, &keyed); err == nil {
		*v = FeatureValue{Kind: FeatureKeyed, Keyed: keyed}
		return nil
	}

	return fmt.Errorf("unsupported feature value %s", trimmed)
}

// MarshalJSON re-encodes the union in its stored shape.
func (v FeatureValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case FeatureBool:
		return json.Marshal(v.Bool)
	case FeatureList:
		return json.Marshal(v.List)
	case FeatureKeyed:
		return json.Marshal(v.Keyed)
	default:
		return []byte("null"), nil
	}
}

// Resolves reports whether the value grants access to featurePath.
//
// Booleans grant on true. Lists grant when the path's suffix (the part
// after the first dot) is a member, or when the list is non-empty and the
// path has no suffix. Keyed objects grant whenever any sub-feature exists.
func (v FeatureValue) Resolves(featurePath string) bool {
	switch v.Kind {
	case FeatureBool:
		return v.Bool
	case FeatureList:
		if _, suffix, found := strings.Cut(featurePath, "."); found {
			for _, item := range v.List {
				if item == suffix {
					return true
				}
			}
			return false
		}
		return len(v.List) > 0
	case FeatureKeyed:
		return len(v.Keyed) > 0
	default:
		return false
	}
}

// FeatureMap is the funcionalidades jsonb column of planes.
type FeatureMap map[string]FeatureValue

// Resolve looks up the mapped feature key and evaluates it against the
// requested feature path. Missing keys deny.
func (m FeatureMap) Resolve(key, featurePath string) bool {
	value, ok := m[key]
	if !ok {
		return false
	}
	return value.Resolves(featurePath)
}

// Scan implements sql.Scanner for jsonb columns.
func (m *FeatureMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}

	var data []byte
	switch src := value.(type) {
	case []byte:
		data = src
	case string:
		data = []byte(src)
	default:
		return fmt.Errorf("unsupported type for FeatureMap: %T", value)
	}

	if len(data) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(data, m)
}

// Value implements driver.Valuer for jsonb columns.
func (m FeatureMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// GormDataType tells GORM how to describe the column.
func (FeatureMap) GormDataType() string {
	return "jsonb"
}
