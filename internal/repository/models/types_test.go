package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSlice_ValueAndScan(t *testing.T) {
	v, err := StringSlice{"2", "4", "8", "16"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["2","4","8","16"]`, v)

	v, err = StringSlice(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	tests := []struct {
		name  string
		input interface{}
		want  StringSlice
	}{
		{"string", `["a","b|c"]`, StringSlice{"a", "b|c"}},
		{"bytes", []byte(`["x"]`), StringSlice{"x"}},
		{"null", nil, nil},
		{"empty", "", nil},
		{"json null", "null", nil},
		{"empty array", "[]", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s StringSlice
			require.NoError(t, s.Scan(tt.input))
			assert.Equal(t, tt.want, s)
		})
	}

	var s StringSlice
	assert.Error(t, s.Scan(42))
	assert.Error(t, s.Scan("{not json"))
}

func TestInt64Slice_ValueAndScan(t *testing.T) {
	v, err := Int64Slice{3, 1, 2}.Value()
	require.NoError(t, err)
	assert.Equal(t, "[3,1,2]", v)

	v, err = Int64Slice(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	var s Int64Slice
	require.NoError(t, s.Scan("[1700000000000001,5]"))
	assert.Equal(t, Int64Slice{1700000000000001, 5}, s)

	require.NoError(t, s.Scan(nil))
	assert.Equal(t, Int64Slice{}, s)
}
