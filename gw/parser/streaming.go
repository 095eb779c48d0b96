package parser

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// DefaultStreamThresholdMB is the file size above which streaming
// tokenization pays off.
const DefaultStreamThresholdMB = 10.0

// StreamLexer tokenizes input line by line instead of holding the
// whole text in memory. Multi-line blocks (notes, notes-db, page-ext,
// wizard-note) are buffered until their terminator line and tokenized
// as one span so the token stream matches what Lexer produces for the
// same input.
type StreamLexer struct {
	scanner *bufio.Scanner
	line    int
	pending []Token
	done    bool

	blockLines []string
	blockStart int
	blockEnd   string
}

func NewStreamLexer(r io.Reader) *StreamLexer {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &StreamLexer{scanner: scanner}
}

// Next returns the next token. After the input is exhausted it
// returns the final TokenEOF and keeps returning it.
func (s *StreamLexer) Next() Token {
	for len(s.pending) == 0 {
		if s.done {
			return Token{Kind: TokenEOF, Pos: Position{Line: s.line, Column: 1}}
		}
		s.fill()
	}
	tok := s.pending[0]
	s.pending = s.pending[1:]
	return tok
}

// Tokenize drains the stream into a slice, EOF token included.
func (s *StreamLexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := s.Next()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

var multilineStarts = []struct {
	prefix string
	end    string
}{
	{"notes ", "end notes"},
	{"notes-db", "end notes-db"},
	{"page-ext ", "end page-ext"},
	{"wizard-note ", "end wizard-note"},
}

func (s *StreamLexer) fill() {
	if !s.scanner.Scan() {
		// An unterminated buffered block still gets tokenized, so
		// trailing content is never silently lost.
		if len(s.blockLines) > 0 {
			s.flushBlock()
		}
		s.done = true
		return
	}

	line := s.scanner.Text()
	s.line++
	stripped := strings.TrimSpace(line)

	if s.blockEnd != "" {
		s.blockLines = append(s.blockLines, line)
		if stripped == s.blockEnd {
			s.flushBlock()
		}
		return
	}

	for _, start := range multilineStarts {
		if strings.HasPrefix(stripped, start.prefix) {
			s.blockLines = []string{line}
			s.blockStart = s.line
			s.blockEnd = start.end
			return
		}
	}

	if stripped == "" {
		return
	}

	for _, tok := range NewLexer(line + "\n").Tokenize() {
		if tok.Kind == TokenEOF {
			continue
		}
		tok.Pos.Line = s.line
		s.pending = append(s.pending, tok)
	}
}

// flushBlock tokenizes the buffered block as one span and re-stamps
// line numbers to their position in the whole input.
func (s *StreamLexer) flushBlock() {
	text := strings.Join(s.blockLines, "\n") + "\n"
	for _, tok := range NewLexer(text).Tokenize() {
		if tok.Kind == TokenEOF {
			continue
		}
		tok.Pos.Line += s.blockStart - 1
		s.pending = append(s.pending, tok)
	}
	s.blockLines = nil
	s.blockEnd = ""
}

// ShouldStream reports whether the file at path is large enough to
// warrant streaming tokenization. Unreadable files report false.
func ShouldStream(path string, thresholdMB float64) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	sizeMB := float64(info.Size()) / (1024 * 1024)
	return sizeMB >= thresholdMB
}

// MemoryEstimate predicts parsing memory cost for a file. The
// multipliers are empirical: in-memory parsing costs several times
// the file size, streaming stays close to it.
type MemoryEstimate struct {
	FileSizeMB        float64
	NormalMemoryMB    float64
	StreamingMemoryMB float64
	SavingPercent     float64
	RecommendedMode   string
}

func EstimateMemory(path string) (MemoryEstimate, error) {
	info, err := os.Stat(path)
	if err != nil {
		return MemoryEstimate{}, err
	}

	sizeMB := float64(info.Size()) / (1024 * 1024)
	normal := sizeMB * 7.5
	streaming := sizeMB * 1.5

	mode := "normal"
	if sizeMB >= DefaultStreamThresholdMB {
		mode = "streaming"
	}

	return MemoryEstimate{
		FileSizeMB:        sizeMB,
		NormalMemoryMB:    normal,
		StreamingMemoryMB: streaming,
		SavingPercent:     (1 - streaming/normal) * 100,
		RecommendedMode:   mode,
	}, nil
}
