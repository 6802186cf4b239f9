package source

import (
	"fmt"

	"fortio.org/safecast"
)

// File captures the normalized content of one source blob, usually the
// expanded output written by rustc.
type File struct {
	Path    string
	Content []byte
	LineIdx []uint32
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

func (lc LineCol) String() string {
	return fmt.Sprintf("%d:%d", lc.Line, lc.Col)
}

// NewFile strips a UTF-8 BOM, normalizes CRLF line endings and indexes lines.
func NewFile(path string, content []byte) *File {
	content, _ = removeBOM(content)
	content, _ = normalizeCRLF(content)
	return &File{
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
	}
}

// Len returns the content length as a span offset.
func (f *File) Len() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return n
}

// Position converts a byte offset into a line and column.
func (f *File) Position(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

// Resolve converts a span into line and column positions.
func (f *File) Resolve(span Span) (start, end LineCol) {
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Text returns the bytes covered by span, clamped to the content.
func (f *File) Text(span Span) string {
	n := f.Len()
	start, end := min(span.Start, n), min(span.End, n)
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}

// GetLine returns the line with the given 1-based number, without its
// terminating newline. Out of range lines are empty.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	lines, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("len line index overflow: %w", err))
	}
	var start uint32
	if lineNum > 1 {
		if lineNum-2 >= lines {
			return ""
		}
		start = f.LineIdx[lineNum-2] + 1
	}
	end := f.Len()
	if lineNum-1 < lines {
		end = f.LineIdx[lineNum-1]
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}
