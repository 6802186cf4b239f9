package trace

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // only crash dumps
	LevelPhase               // driver + pass boundaries
	LevelDetail              // renderer fallbacks
	LevelDebug               // every render attempt
)

var levelNames = []string{
	LevelOff:    "off",
	LevelError:  "error",
	LevelPhase:  "phase",
	LevelDetail: "detail",
	LevelDebug:  "debug",
}

func (l Level) String() string { return nameOf(levelNames, l) }

// ParseLevel converts a flag value to a Level.
func ParseLevel(s string) (Level, error) {
	return parseName[Level](levelNames, "trace level", s)
}

// ShouldEmit reports whether events of scope are kept at this level.
// LevelError emits nothing by itself.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopePass
	case LevelDetail:
		return scope <= ScopeNode
	case LevelDebug:
		return true
	default:
		return false
	}
}
