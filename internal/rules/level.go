package rules

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Level is the severity of a rule or of an aggregated result. Levels form a
// total order: Off < Notice < Warning < Failure. Off doubles as the identity
// for aggregation and, on a rule, disables the rule entirely.
type Level int

const (
	Off Level = iota
	Notice
	Warning
	Failure
)

var levelNames = map[Level]string{
	Off:     "off",
	Notice:  "notice",
	Warning: "warning",
	Failure: "failure",
}

// ParseLevel converts a level name to a Level. Names are the lowercase
// strings used in configuration files: off, notice, warning, failure.
func ParseLevel(name string) (Level, error) {
	for l, n := range levelNames {
		if n == name {
			return l, nil
		}
	}
	return Off, fmt.Errorf("unknown level %q (expected off, notice, warning, or failure)", name)
}

func (l Level) String() string {
	if n, ok := levelNames[l]; ok {
		return n
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// MaxLevel returns the greater of two levels under the fixed total order.
func MaxLevel(a, b Level) Level {
	if b > a {
		return b
	}
	return a
}

// MarshalJSON encodes the level by name.
func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a level name.
func (l *Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalYAML encodes the level by name.
func (l Level) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}

// UnmarshalYAML decodes a level name.
func (l *Level) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
