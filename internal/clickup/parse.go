package clickup

import (
	"encoding/json"
	"strconv"
	"strings"
)

// The provider's payloads are loosely typed: ids and durations arrive as
// strings or numbers depending on the endpoint. flexString and flexInt decode
// both and fail closed, treating unexpected shapes as absent values rather
// than unmarshal errors.

// flexString decodes a JSON string or number into a string. Objects, arrays
// and nulls decode to the empty string.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	v := strings.TrimSpace(string(data))
	if v == "" || v == "null" {
		*s = ""
		return nil
	}
	if strings.HasPrefix(v, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*s = ""
			return nil
		}
		*s = flexString(str)
		return nil
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		*s = flexString(v)
		return nil
	}
	*s = ""
	return nil
}

// flexInt decodes a JSON number or numeric string into an int64.
// OK is false when the field was absent or unparseable.
type flexInt struct {
	Val int64
	OK  bool
}

func (n *flexInt) UnmarshalJSON(data []byte) error {
	v := strings.TrimSpace(string(data))
	if v == "" || v == "null" {
		return nil
	}
	v = strings.Trim(v, `"`)
	if v == "" {
		return nil
	}
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		n.Val, n.OK = i, true
		return nil
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		n.Val, n.OK = int64(f), true
	}
	return nil
}
