package trace

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Format represents the output format for trace events.
type Format uint8

const (
	FormatAuto   Format = iota // pick from the output file extension
	FormatText                 // human-readable text
	FormatNDJSON               // newline-delimited JSON
)

var formatNames = []string{
	FormatAuto:   "auto",
	FormatText:   "text",
	FormatNDJSON: "ndjson",
}

// ParseFormat converts a flag value to a Format. "json" is accepted for
// "ndjson" and the empty string for "auto".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "":
		return FormatAuto, nil
	case "json":
		return FormatNDJSON, nil
	}
	return parseName[Format](formatNames, "trace format", s)
}

var processStart = time.Now()

// FormatEvent formats an event according to the specified format.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return formatNDJSON(ev)
	}
	return formatText(ev)
}

type jsonEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id,omitempty"`
	ParentID uint64            `json:"parent_id,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

func formatNDJSON(ev *Event) []byte {
	data, err := json.Marshal(jsonEvent{
		Time:     ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Extra:    ev.Extra,
	})
	if err != nil {
		// map[string]string and plain fields always marshal
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "marshal trace event"))
	}
	return append(data, '\n')
}

var kindMarks = [...]string{
	KindSpanBegin: "→ ",
	KindSpanEnd:   "← ",
	KindPoint:     "• ",
	KindHeartbeat: "♡ ",
}

// formatText renders `[   1.234ms]   → name (detail) {k=v}`. Child events
// and node-level events are indented one step each.
func formatText(ev *Event) []byte {
	var elapsed time.Duration
	if !ev.Time.IsZero() {
		elapsed = ev.Time.Sub(processStart)
	}
	b := fmt.Appendf(nil, "[%9.3fms] ", float64(elapsed.Microseconds())/1000)

	if ev.ParentID > 0 {
		b = append(b, "  "...)
	}
	if ev.Scope >= ScopeNode {
		b = append(b, "  "...)
	}
	if int(ev.Kind) < len(kindMarks) {
		b = append(b, kindMarks[ev.Kind]...)
	}
	b = append(b, ev.Name...)
	if ev.Detail != "" {
		b = fmt.Appendf(b, " (%s)", ev.Detail)
	}
	for i, k := range slices.Sorted(maps.Keys(ev.Extra)) {
		sep := ", "
		if i == 0 {
			sep = " {"
		}
		b = fmt.Appendf(b, "%s%s=%s", sep, k, ev.Extra[k])
	}
	if len(ev.Extra) > 0 {
		b = append(b, '}')
	}
	return append(b, '\n')
}
