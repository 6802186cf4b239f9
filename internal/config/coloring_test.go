package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseColoring(t *testing.T) {
	for _, c := range []Coloring{Auto, Always, Never} {
		got, err := ParseColoring(c.String())
		require.NoError(t, err)
		require.Equal(t, c, got)
	}
	_, err := ParseColoring("Always")
	require.EqualError(t, err, "must be auto, always, or never, but found `Always`")
}

func TestResolveColoring(t *testing.T) {
	always := Always
	tests := []struct {
		name    string
		flag    *Coloring
		noColor bool
		cfg     Config
		want    Coloring
		warned  bool
	}{
		{"default", nil, false, Config{}, Auto, false},
		{"flag wins", &always, true, Config{Color: "never"}, Always, false},
		{"NO_COLOR", nil, true, Config{Color: "always"}, Never, false},
		{"config", nil, false, Config{Color: "never"}, Never, false},
		{"invalid config", nil, false, Config{Color: "yes"}, Auto, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var warned bool
			got := ResolveColoring(tt.flag, tt.noColor, tt.cfg, func(error) { warned = true })
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.warned, warned)
		})
	}
}
