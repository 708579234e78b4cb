package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetIntSlice(t *testing.T) {
	keys, cleanup := GetIntSlice(100)
	require.Empty(t, keys)
	require.GreaterOrEqual(t, cap(keys), 100)

	keys = append(keys, 20240101, 20240102)
	require.Equal(t, []int{20240101, 20240102}, keys)
	cleanup()

	again, cleanup := GetIntSlice(10)
	defer cleanup()
	require.Empty(t, again)
}

func TestGetFloat64Slice(t *testing.T) {
	values, cleanup := GetFloat64Slice(4)
	defer cleanup()

	require.Empty(t, values)
	require.GreaterOrEqual(t, cap(values), 4)
}
