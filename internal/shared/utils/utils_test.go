package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCeilDiv(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 6, 5},
		{5, 0, 0},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, CeilDiv(tt.a, tt.b), "CeilDiv(%d, %d)", tt.a, tt.b)
	}
}

func TestPtrDeref(t *testing.T) {
	p := Ptr("x")
	require.Equal(t, "x", *p)
	require.Equal(t, "x", Deref(p, "def"))

	var nilPtr *string
	require.Equal(t, "def", Deref(nilPtr, "def"))
}
