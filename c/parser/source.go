package parser

import "fmt"

// SourceFile is an immutable source buffer. Two locations belong to the same
// source when they point at the same *SourceFile.
type SourceFile struct {
	Path    string
	Content []byte
}

func NewSourceFile(path string, content []byte) *SourceFile {
	return &SourceFile{Path: path, Content: content}
}

// Line returns the text of the 1-based line n without its terminator.
func (f *SourceFile) Line(n int) string {
	if f == nil || n < 1 {
		return ""
	}
	content := f.Content
	start := 0
	for line := 1; line < n; line++ {
		i := start
		for i < len(content) && content[i] != '\n' && content[i] != '\r' {
			i++
		}
		if i >= len(content) {
			return ""
		}
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			i++
		}
		start = i + 1
	}
	end := start
	for end < len(content) && content[end] != '\n' && content[end] != '\r' {
		end++
	}
	return string(content[start:end])
}

type Position struct {
	Offset int
	Line   int
	Column int
}

// Location is a byte range of a source file together with the line and
// column of its first byte.
type Location struct {
	File   *SourceFile
	Offset int
	Length int
	Line   int
	Column int
}

func (l Location) IsValid() bool {
	return l.File != nil && l.Offset >= 0 && l.Length >= 0 && l.Offset+l.Length <= len(l.File.Content)
}

func (l Location) End() int {
	return l.Offset + l.Length
}

func (l Location) Start() Position {
	return Position{Offset: l.Offset, Line: l.Line, Column: l.Column}
}

// EndPosition returns the position just past the last byte of l.
func (l Location) EndPosition() Position {
	pos := l.Start()
	if l.File == nil {
		return pos
	}
	content := l.File.Content
	for i := l.Offset; i < l.End() && i < len(content); i++ {
		pos.Offset++
		switch content[i] {
		case '\r':
			if i+1 < l.End() && content[i+1] == '\n' {
				i++
				pos.Offset++
			}
			pos.Line++
			pos.Column = 1
		case '\n':
			pos.Line++
			pos.Column = 1
		default:
			pos.Column++
		}
	}
	return pos
}

func (l Location) Snippet() string {
	if !l.IsValid() {
		return ""
	}
	return string(l.File.Content[l.Offset:l.End()])
}

func (l Location) Path() string {
	if l.File == nil {
		return ""
	}
	return l.File.Path
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Path(), l.Line, l.Column)
}

// Concat returns the location spanning from the start of a to the end of b.
func Concat(a, b Location) Location {
	if a.File != b.File {
		panic("parser: Concat of locations from different sources")
	}
	if b.End() < a.Offset {
		return a
	}
	return Location{
		File:   a.File,
		Offset: a.Offset,
		Length: b.End() - a.Offset,
		Line:   a.Line,
		Column: a.Column,
	}
}
