package source

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFileNormalizes(t *testing.T) {
	f := NewFile("./src//expanded.rs", []byte("\xEF\xBB\xBFab\r\ncd\re"))
	require.Equal(t, "src/expanded.rs", f.Path)
	require.Equal(t, "ab\ncd\re", string(f.Content))
	require.Equal(t, []uint32{2}, f.LineIdx)
}

func TestPosition(t *testing.T) {
	f := NewFile("x.rs", []byte("ab\ncd\re"))
	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}},
		{3, LineCol{2, 1}},
		{5, LineCol{2, 3}},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, f.Position(tt.off), "offset %d", tt.off)
	}
	start, end := f.Resolve(Span{Start: 1, End: 4})
	require.Equal(t, "1:2", start.String())
	require.Equal(t, "2:2", end.String())
}

func TestTextAndLines(t *testing.T) {
	f := NewFile("x.rs", []byte("ab\ncd\re"))
	require.Equal(t, "d\re", f.Text(Span{Start: 4, End: 100}))
	require.Empty(t, f.Text(Span{Start: 9, End: 3}))

	require.Equal(t, "ab", f.GetLine(1))
	require.Equal(t, "cd\re", f.GetLine(2))
	require.Empty(t, f.GetLine(3))
	require.Empty(t, f.GetLine(0))
}

func TestErrorf(t *testing.T) {
	f := NewFile("x.rs", []byte("ab\ncd"))
	require.EqualError(t, f.Errorf(Span{Start: 3, End: 4}, "bad %s", "token"), "x.rs:2:1: bad token")

	anon := NewFile("", []byte("ab"))
	require.EqualError(t, anon.Errorf(Span{Start: 1, End: 2}, "oops"), "1:2: oops")
}

func TestSpanCover(t *testing.T) {
	s := Span{Start: 4, End: 6}.Cover(Span{Start: 1, End: 5})
	require.Equal(t, Span{Start: 1, End: 6}, s)
	require.Equal(t, uint32(5), s.Len())
	require.False(t, s.Empty())
	require.True(t, Span{Start: 2, End: 2}.Empty())
}
