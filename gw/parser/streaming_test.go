package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// contentTokens drops newline tokens: the streaming lexer elides
// blank lines, so equivalence is over content-bearing tokens.
func contentTokens(tokens []Token) []Token {
	var out []Token
	for _, tok := range tokens {
		if tok.Kind == TokenNewline {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func TestStreamLexerEquivalence(t *testing.T) {
	source := "# header comment\n" +
		"fam Dupont Jean 25/12/1990 #bp Paris + 10/6/2015 Martin Marie\n" +
		"beg\n" +
		"- h Pierre 2016\n" +
		"end\n" +
		"\n" +
		"notes Dupont Jean\n" +
		"beg\n" +
		"A remark spanning\n" +
		"several lines.\n" +
		"end notes\n" +
		"fam Durand Paul + Petit Anne\n"

	direct := contentTokens(NewLexer(source).Tokenize())
	streamed := contentTokens(NewStreamLexer(strings.NewReader(source)).Tokenize())

	if len(direct) != len(streamed) {
		t.Fatalf("token count: direct %d, streamed %d", len(direct), len(streamed))
	}
	for i := range direct {
		if direct[i].Kind != streamed[i].Kind || direct[i].Literal != streamed[i].Literal {
			t.Errorf("token %d: direct %v %q, streamed %v %q",
				i, direct[i].Kind, direct[i].Literal, streamed[i].Kind, streamed[i].Literal)
		}
	}
}

func TestStreamLexerLineNumbers(t *testing.T) {
	source := "fam Dupont Jean + Martin Marie\n" +
		"notes Dupont Jean\n" +
		"beg\n" +
		"text\n" +
		"end notes\n" +
		"fam Durand Paul + Petit Anne\n"

	tokens := NewStreamLexer(strings.NewReader(source)).Tokenize()

	var lastFam Token
	for _, tok := range tokens {
		if tok.Kind == TokenFam {
			lastFam = tok
		}
	}
	if lastFam.Pos.Line != 6 {
		t.Errorf("second fam line = %d, want 6", lastFam.Pos.Line)
	}

	for _, tok := range tokens {
		if tok.Kind == TokenEndNotes && tok.Pos.Line != 5 {
			t.Errorf("end notes line = %d, want 5", tok.Pos.Line)
		}
	}
}

func TestStreamLexerUnterminatedBlock(t *testing.T) {
	// A notes block missing its terminator still yields its content.
	source := "notes Dupont Jean\nbeg\ntrailing text\n"

	tokens := NewStreamLexer(strings.NewReader(source)).Tokenize()

	found := false
	for _, tok := range tokens {
		if tok.Kind == TokenIdent && tok.Literal == "trailing" {
			found = true
		}
	}
	if !found {
		t.Error("unterminated block content was dropped")
	}
	if tokens[len(tokens)-1].Kind != TokenEOF {
		t.Errorf("last token = %v, want %v", tokens[len(tokens)-1].Kind, TokenEOF)
	}
}

func TestStreamLexerNextAfterEOF(t *testing.T) {
	s := NewStreamLexer(strings.NewReader("fam Dupont Jean + Martin Marie\n"))
	for {
		if s.Next().Kind == TokenEOF {
			break
		}
	}
	if tok := s.Next(); tok.Kind != TokenEOF {
		t.Errorf("Next() after EOF = %v, want %v", tok.Kind, TokenEOF)
	}
}

func TestShouldStream(t *testing.T) {
	dir := t.TempDir()

	small := filepath.Join(dir, "small.gw")
	if err := os.WriteFile(small, []byte("fam Dupont Jean + Martin Marie\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if ShouldStream(small, 10) {
		t.Error("ShouldStream(small, 10MB) = true, want false")
	}
	if !ShouldStream(small, 0.000001) {
		t.Error("ShouldStream(small, ~0MB) = false, want true")
	}
	if ShouldStream(filepath.Join(dir, "missing.gw"), 10) {
		t.Error("ShouldStream(missing) = true, want false")
	}
}

func TestEstimateMemory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.gw")
	content := strings.Repeat("fam Dupont Jean + Martin Marie\n", 1000)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	estimate, err := EstimateMemory(path)
	if err != nil {
		t.Fatalf("EstimateMemory() error = %v", err)
	}
	if estimate.FileSizeMB <= 0 {
		t.Errorf("FileSizeMB = %v, want > 0", estimate.FileSizeMB)
	}
	if estimate.NormalMemoryMB <= estimate.StreamingMemoryMB {
		t.Errorf("NormalMemoryMB = %v, StreamingMemoryMB = %v, want normal > streaming",
			estimate.NormalMemoryMB, estimate.StreamingMemoryMB)
	}
	if estimate.RecommendedMode != "normal" {
		t.Errorf("RecommendedMode = %q, want %q", estimate.RecommendedMode, "normal")
	}

	if _, err := EstimateMemory(filepath.Join(dir, "missing.gw")); err == nil {
		t.Error("EstimateMemory(missing) error = nil, want error")
	}
}
