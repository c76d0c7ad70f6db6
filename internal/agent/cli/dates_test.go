package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDue(t *testing.T) {
	orig := time.Local
	time.Local = time.FixedZone("MSK", 3*60*60)
	defer func() { time.Local = orig }()

	tests := []struct {
		in   string
		want string
	}{
		{"2026-01-20T10:00:00Z", "2026-01-20T10:00:00.000Z"},
		{"2026-01-20T10:00:00.5+02:00", "2026-01-20T08:00:00.500Z"},
		{"2026-01-20T13:00", "2026-01-20T10:00:00.000Z"},
		{"2026-01-20 13:00", "2026-01-20T10:00:00.000Z"},
		{"2026-01-20", "2026-01-19T21:00:00.000Z"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDue(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseDue("20.01.2026")
	require.Error(t, err)
}
