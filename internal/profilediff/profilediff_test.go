package profilediff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thatsimonsguy/reflow-controller/internal/profile"
)

func flat(v uint16) [profile.NumSetpoints]uint16 {
	var out [profile.NumSetpoints]uint16
	for i := range out {
		out[i] = v
	}
	return out
}

func TestLines(t *testing.T) {
	lines := Lines(profile.NewBuiltin("FLAT", flat(50)))

	assert.Equal(t, profile.NumSetpoints, strings.Count(lines, "\n"))
	assert.True(t, strings.HasPrefix(lines, "step 00: 50\nstep 01: 50\n"))
}

func TestDiff(t *testing.T) {
	base := flat(100)
	changed := base
	changed[3] = 120
	changed[40] = 0

	a := profile.NewBuiltin("A", base)
	b := profile.NewBuiltin("B", changed)

	tests := []struct {
		name     string
		a, b     profile.Profile
		contains []string
		absent   []string
	}{
		{"identical", a, profile.NewBuiltin("A copy", base), nil, []string{"-", "+"}},
		{
			"two steps changed", a, b,
			[]string{"-step 03: 100\n", "+step 03: 120\n", "-step 40: 100\n", "+step 40: 0\n"},
			[]string{"step 04", "step 39"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Diff(tt.a, tt.b)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out, s)
			}
		})
	}
}
