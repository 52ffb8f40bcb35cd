package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSlice stores a string list as a JSON array. Empty lists are stored as NULL.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	jsonData, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	raw, err := jsonBytes(value)
	if err != nil {
		return fmt.Errorf("StringSlice Scan: %w", err)
	}
	if raw == nil {
		*s = nil
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("StringSlice Scan: %w", err)
	}
	if len(out) == 0 {
		out = nil
	}
	*s = out
	return nil
}

// Int64Slice stores an ordered id list as a JSON array.
type Int64Slice []int64

func (s Int64Slice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal([]int64(s))
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

func (s *Int64Slice) Scan(value interface{}) error {
	raw, err := jsonBytes(value)
	if err != nil {
		return fmt.Errorf("Int64Slice Scan: %w", err)
	}
	if raw == nil {
		*s = Int64Slice{}
		return nil
	}
	var out []int64
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("Int64Slice Scan: %w", err)
	}
	if out == nil {
		out = []int64{}
	}
	*s = out
	return nil
}

// jsonBytes returns nil for NULL, empty and "null" column values.
func jsonBytes(value interface{}) ([]byte, error) {
	var b []byte
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return nil, fmt.Errorf("unsupported type %T", value)
	}
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	return b, nil
}
