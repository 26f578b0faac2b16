package validator

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is an optional integer field that tolerates numeric strings
// in the payload ("5" and 5 both decode). Decoding never fails; a
// value that cannot coerce is recorded and surfaces as a validation
// message alongside the other violations.
type Number struct {
	Val     *int
	Invalid bool
}

func (n *Number) UnmarshalJSON(data []byte) error {
	n.Val = nil
	n.Invalid = false

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		n.Invalid = true
		return nil
	}

	switch v := raw.(type) {
	case nil:
	case float64:
		if v != math.Trunc(v) {
			n.Invalid = true
			return nil
		}
		i := int(v)
		n.Val = &i
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			n.Invalid = true
			return nil
		}
		n.Val = &i
	default:
		n.Invalid = true
	}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if n.Val == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Val)
}

// Flag is an optional boolean field with the same decode-never-fails
// contract as Number. Only true/false (and their string forms) coerce.
type Flag struct {
	Val     *bool
	Invalid bool
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	f.Val = nil
	f.Invalid = false

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		f.Invalid = true
		return nil
	}

	switch v := raw.(type) {
	case nil:
	case bool:
		f.Val = &v
	case string:
		switch strings.TrimSpace(v) {
		case "":
		case "true":
			b := true
			f.Val = &b
		case "false":
			b := false
			f.Val = &b
		default:
			f.Invalid = true
		}
	default:
		f.Invalid = true
	}
	return nil
}

func (f Flag) MarshalJSON() ([]byte, error) {
	if f.Val == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*f.Val)
}
