// Package source owns the text of every compiled file and maps byte
// offsets to line/column pairs. Spans produced here survive lexing,
// parsing and TIR construction unchanged, so a diagnostic raised deep
// in the resolver can still point at the original bytes.
package source

import "fmt"

// FileHandle is a stable, numeric reference to a registered file.
type FileHandle int

// UndefinedFile is the sentinel for "no file".
const UndefinedFile FileHandle = -1

// File owns one source file's text and its offset->line/column table.
type File struct {
	Handle FileHandle
	Path   string // dotted module path this file was registered under, e.g. "pkg.sub.file"
	Text   string

	lineStarts []int // byte offset of the first byte of each line
}

func newFile(handle FileHandle, path, text string) *File {
	f := &File{Handle: handle, Path: path, Text: text}
	f.lineStarts = append(f.lineStarts, 0)
	for i, r := range text {
		if r == '\n' {
			f.lineStarts = append(f.lineStarts, i+1)
		}
	}
	return f
}

// Position returns the 1-based (line, column) for a byte offset.
func (f *File) Position(offset int) (line, column int) {
	// binary search for the last line start <= offset
	lo, hi := 0, len(f.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if f.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	line = lo + 1
	column = offset - f.lineStarts[lo] + 1
	return
}

// Snippet returns the full text of the line containing offset, for
// diagnostic rendering.
func (f *File) Snippet(offset int) string {
	lo, hi := 0, len(f.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if f.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	start := f.lineStarts[lo]
	end := len(f.Text)
	if lo+1 < len(f.lineStarts) {
		end = f.lineStarts[lo+1] - 1
	}
	if end < start {
		end = start
	}
	return f.Text[start:end]
}

// Span is a half-open byte-offset range within one file. It is the
// unit attached to every AST node, every signature and every
// diagnostic.
type Span struct {
	File  FileHandle
	Start int
	End   int
}

// Zero reports whether the span carries no real position: no file
// (UndefinedFile) and an empty range at offset 0. A Span left at Go's
// zero value names file 0 and is not Zero.
func (s Span) Zero() bool {
	return s.File == UndefinedFile && s.Start == 0 && s.End == 0
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span containing both s and other. Both
// must belong to the same file.
func (s Span) Cover(other Span) Span {
	start, end := s.Start, s.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return Span{File: s.File, Start: start, End: end}
}

// Map is the source map: it owns every registered file's text and
// hands out stable FileHandles.
type Map struct {
	files []*File
}

// NewMap creates an empty source map.
func NewMap() *Map {
	return &Map{}
}

// Add registers a new file and returns its handle. The same (path,
// text) pair may be registered more than once; each call yields a
// distinct handle — deduplicating by module path is the module
// registry's job, not the source map's.
func (m *Map) Add(path, text string) FileHandle {
	handle := FileHandle(len(m.files))
	m.files = append(m.files, newFile(handle, path, text))
	return handle
}

// File returns the file registered under handle, or nil if handle is
// out of range.
func (m *Map) File(handle FileHandle) *File {
	if handle < 0 || int(handle) >= len(m.files) {
		return nil
	}
	return m.files[handle]
}

// Position resolves a span's start offset to a human-readable
// (file-path, line, column) triple.
func (m *Map) Position(span Span) (path string, line, column int) {
	f := m.File(span.File)
	if f == nil {
		return "<unknown>", 0, 0
	}
	line, column = f.Position(span.Start)
	return f.Path, line, column
}

// Text returns the bytes a span covers.
func (m *Map) Text(span Span) string {
	f := m.File(span.File)
	if f == nil {
		return ""
	}
	if span.Start < 0 || span.End > len(f.Text) || span.Start > span.End {
		return ""
	}
	return f.Text[span.Start:span.End]
}
