package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"PHASE", LevelPhase, false},
		{"detail", LevelDetail, false},
		{"debug", LevelDebug, false},
		{"verbose", LevelOff, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestShouldEmit(t *testing.T) {
	require.True(t, LevelPhase.ShouldEmit(ScopePass))
	require.False(t, LevelPhase.ShouldEmit(ScopeNode))
	require.True(t, LevelDetail.ShouldEmit(ScopeNode))
	require.False(t, LevelDetail.ShouldEmit(ScopeAttempt))
	require.True(t, LevelDebug.ShouldEmit(ScopeAttempt))
	require.False(t, LevelError.ShouldEmit(ScopeDriver))
}

func TestStreamTracerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	sp := Begin(tr, ScopePass, "render", 0)
	Point(tr, ScopeNode, "fallback", "expr", sp.ID())
	sp.WithExtra("nodes", "3").End("")

	out := buf.String()
	require.Contains(t, out, "→ render")
	require.Contains(t, out, "← render {nodes=3}")
	require.NotContains(t, out, "fallback")
}

func TestFormatNDJSON(t *testing.T) {
	ev := &Event{Kind: KindPoint, Scope: ScopeNode, Name: "placeholder", Detail: "stmt", Extra: map[string]string{"depth": "2"}}
	line := FormatEvent(ev, FormatNDJSON)
	require.True(t, bytes.HasSuffix(line, []byte("\n")))

	var got map[string]any
	require.NoError(t, json.Unmarshal(line, &got))
	require.Equal(t, "placeholder", got["name"])
	require.Equal(t, "stmt", got["detail"])
	require.Equal(t, map[string]any{"depth": "2"}, got["extra"])
}

func TestFormatTextSortsExtras(t *testing.T) {
	ev := &Event{Kind: KindSpanEnd, Scope: ScopePass, Name: "x", Extra: map[string]string{"b": "2", "a": "1", "c": "3"}}
	require.Contains(t, string(FormatEvent(ev, FormatText)), "{a=1, b=2, c=3}")
}

func TestRingTracerWraps(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		ring.Emit(&Event{Kind: KindPoint, Scope: ScopeNode, Name: name})
	}
	var names []string
	for _, ev := range ring.Snapshot() {
		names = append(names, ev.Name)
	}
	require.Equal(t, []string{"c", "d", "e"}, names)

	var buf bytes.Buffer
	require.NoError(t, ring.Dump(&buf, FormatText))
	require.Equal(t, 3, strings.Count(buf.String(), "\n"))
}

func TestNewModes(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	require.NoError(t, err)
	require.False(t, tr.Enabled())

	tr, err = New(Config{Level: LevelPhase, Mode: ModeRing, RingSize: 8})
	require.NoError(t, err)
	require.NotNil(t, RingOf(tr))

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelDetail, Mode: ModeBoth, Output: &buf})
	require.NoError(t, err)
	require.NotNil(t, RingOf(tr))
	Point(tr, ScopeNode, "hit", "", 0)
	require.Contains(t, buf.String(), "• hit")
	require.Len(t, RingOf(tr).Snapshot(), 1)
	require.NoError(t, tr.Close())

	_, err = New(Config{Level: LevelPhase})
	require.Error(t, err)
}

func TestStartNestsSpans(t *testing.T) {
	ring := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), ring)

	outer, ctx := Start(ctx, ScopeDriver, "expand")
	inner, _ := Start(ctx, ScopePass, "render")
	inner.End("")
	outer.End("")

	evs := ring.Snapshot()
	require.Len(t, evs, 4)
	require.Equal(t, outer.ID(), evs[1].ParentID)
	require.Equal(t, uint64(0), evs[0].ParentID)
}

func TestFromContextDefaultsToNop(t *testing.T) {
	require.Equal(t, Nop, FromContext(context.Background()))
	sp, ctx := Start(context.Background(), ScopePass, "x")
	require.Zero(t, sp.ID())
	require.Zero(t, CurrentSpan(ctx))
}

func TestParseModeListsChoices(t *testing.T) {
	m, err := ParseMode("Both")
	require.NoError(t, err)
	require.Equal(t, ModeBoth, m)

	_, err = ParseMode("disk")
	require.EqualError(t, err, `invalid storage mode: "disk" (expected: stream|ring|both)`)
	require.Equal(t, "unknown", StorageMode(9).String())
}

func TestHeartbeat(t *testing.T) {
	ring := NewRingTracer(64, LevelPhase)
	stop := StartHeartbeat(context.Background(), ring, time.Millisecond)
	require.Eventually(t, func() bool { return len(ring.Snapshot()) >= 2 }, time.Second, time.Millisecond)
	stop()

	n := len(ring.Snapshot())
	time.Sleep(5 * time.Millisecond)
	require.Len(t, ring.Snapshot(), n)
	for _, ev := range ring.Snapshot() {
		require.Equal(t, KindHeartbeat, ev.Kind)
	}

	// disabled tracers get a no-op stop
	StartHeartbeat(context.Background(), Nop, time.Millisecond)()
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatAuto, "TEXT": FormatText, "json": FormatNDJSON, "ndjson": FormatNDJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		require.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	require.EqualError(t, err, `invalid trace format: "xml" (expected: auto|text|ndjson)`)
}
