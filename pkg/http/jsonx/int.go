// Package jsonx holds lenient JSON scalar types for request payloads.
package jsonx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Int64 decodes from a JSON number or a quoted decimal string. Browser forms
// tend to send select values as strings ("3"), so both shapes are accepted.
type Int64 int64

func (i *Int64) UnmarshalJSON(data []byte) error {
	v, err := parseInt(data, 64)
	if err != nil {
		return err
	}
	*i = Int64(v)
	return nil
}

// Ptr converts an optional Int64 into an optional int64.
func (i *Int64) Ptr() *int64 {
	if i == nil {
		return nil
	}
	v := int64(*i)
	return &v
}

// Int32 is Int64 limited to the int32 range. Values outside it fail to decode.
type Int32 int32

func (i *Int32) UnmarshalJSON(data []byte) error {
	v, err := parseInt(data, 32)
	if err != nil {
		return err
	}
	*i = Int32(v)
	return nil
}

// Ptr converts an optional Int32 into an optional int32.
func (i *Int32) Ptr() *int32 {
	if i == nil {
		return nil
	}
	v := int32(*i)
	return &v
}

func parseInt(data []byte, bitSize int) (int64, error) {
	data = bytes.TrimSpace(data)
	var raw string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return 0, err
		}
		raw = strings.TrimSpace(raw)
	} else {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return 0, err
		}
		raw = n.String()
	}
	v, err := strconv.ParseInt(raw, 10, bitSize)
	if err != nil {
		return 0, fmt.Errorf("jsonx: %q is not a %d-bit integer", raw, bitSize)
	}
	return v, nil
}
