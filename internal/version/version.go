package version

import (
	"strings"

	"github.com/fatih/color"
)

// Build metadata for cargo-expand. Overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each numeric component in its own color.
// Colors follow fatih/color's terminal detection.
func Colored() string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// Long is the one-line `--version` output.
func Long() string {
	var sb strings.Builder
	sb.WriteString("cargo-expand ")
	sb.WriteString(Colored())
	if GitCommit != "" || BuildDate != "" {
		sb.WriteString(" (")
		sb.WriteString(strings.TrimSpace(strings.Join(nonEmpty(GitCommit, BuildDate), " ")))
		sb.WriteString(")")
	}
	return sb.String()
}

func nonEmpty(vals ...string) []string {
	out := vals[:0:0]
	for _, v := range vals {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
