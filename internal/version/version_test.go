package version

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

// override sets the build metadata for one test.
func override(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func noColor(t *testing.T) {
	t.Helper()
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })
}

func TestVersion_DefaultValues(t *testing.T) {
	require.NotEmpty(t, Version)
}

func TestLong(t *testing.T) {
	noColor(t)
	tests := []struct {
		version, commit, date string
		want                  string
	}{
		{"1.2.3", "", "", "cargo-expand 1.2.3"},
		{"0.1.0-dev", "abc123", "", "cargo-expand 0.1.0-dev (abc123)"},
		{"1.0.0-rc.1", "abc123", "2024-01-15", "cargo-expand 1.0.0-rc.1 (abc123 2024-01-15)"},
		{"", "", "2024-01-15", "cargo-expand  (2024-01-15)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			override(t, tt.version, tt.commit, tt.date)
			require.Equal(t, tt.want, Long())
		})
	}
}

func TestColoredKeepsNonSemver(t *testing.T) {
	override(t, "nightly", "", "")
	require.Equal(t, "nightly", Colored())
}
