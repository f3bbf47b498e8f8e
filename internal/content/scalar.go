package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Text is a display scalar that sources may spell either as a string or as a
// number ("3 years" vs 3).
type Text string

// String returns the text as stored.
func (t Text) String() string { return string(t) }

// UnmarshalJSON accepts JSON strings and numbers.
func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("content: expected string or number, got %s", b)
	}
	*t = Text(n.String())
	return nil
}

// UnmarshalYAML accepts any YAML scalar except null, which decodes as empty.
func (t *Text) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("content: line %d: expected scalar", node.Line)
	}
	if node.Tag == "!!null" {
		*t = ""
		return nil
	}
	*t = Text(node.Value)
	return nil
}

// Number is a quantity (hours, credits, percentages) that may be fractional.
type Number float64

// String formats the number without a trailing ".0" for whole values.
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}
