package query

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestFormatCap(t *testing.T) {
	require.Equal(t, "unlimited", formatCap(uint256.NewInt(0)))
	require.Equal(t, "1,234,567", formatCap(uint256.NewInt(1234567)))
	require.Equal(t, "1", formatCap(uint256.NewInt(1)))
}

func TestParseUint(t *testing.T) {
	v, err := parseUint("0x10")
	require.NoError(t, err)
	require.Equal(t, uint64(16), v)

	_, err = parseUint("-1")
	require.Error(t, err)
}
