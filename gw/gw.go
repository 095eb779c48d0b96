// Package gw reads GeneWeb .gw genealogical source files into a
// linked object model of persons, families and their events.
package gw

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/gw/gw/charset"
	"github.com/dhamidi/gw/gw/diag"
	"github.com/dhamidi/gw/gw/parser"
)

type streamMode int

const (
	streamAuto streamMode = iota
	streamAlways
	streamNever
)

// Parser turns .gw input into a Genealogy. The zero value is not
// usable; construct one with New.
type Parser struct {
	validate    bool
	strict      bool
	stream      streamMode
	thresholdMB float64

	collector *diag.Collector
	warnings  []diag.Diagnostic
}

// ValidationError reports the consistency problems a strict parse
// found after building the model.
type ValidationError struct {
	Problems []diag.Diagnostic
}

func (e *ValidationError) Error() string {
	messages := make([]string, len(e.Problems))
	for i, problem := range e.Problems {
		messages[i] = problem.Error()
	}
	return "validation failed: " + strings.Join(messages, "; ")
}

// Option configures a Parser.
type Option func(*Parser)

// WithValidation controls whether parsed data is checked for
// structural consistency. It defaults to on.
func WithValidation(enabled bool) Option {
	return func(p *Parser) { p.validate = enabled }
}

// WithStrict controls error handling: strict parsing stops at the
// first error, lenient parsing records problems on the genealogy and
// keeps going. It defaults to strict.
func WithStrict(strict bool) Option {
	return func(p *Parser) { p.strict = strict }
}

// WithStreaming forces streaming tokenization on or off. Without it
// the mode is chosen from the file size.
func WithStreaming(enabled bool) Option {
	return func(p *Parser) {
		if enabled {
			p.stream = streamAlways
		} else {
			p.stream = streamNever
		}
	}
}

// WithStreamThreshold sets the file size in megabytes above which
// automatic mode switches to streaming.
func WithStreamThreshold(mb float64) Option {
	return func(p *Parser) { p.thresholdMB = mb }
}

// New returns a Parser with the given options applied.
func New(opts ...Option) *Parser {
	p := &Parser{
		validate:    true,
		strict:      true,
		stream:      streamAuto,
		thresholdMB: parser.DefaultStreamThresholdMB,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.collector = diag.NewCollector(p.strict)
	return p
}

// Warnings reports the non-fatal diagnostics of the last parse.
func (p *Parser) Warnings() []diag.Diagnostic { return p.warnings }

// ParseFile parses a .gw or .gwplus file. Large files are tokenized
// line by line instead of being decoded in one piece.
func (p *Parser) ParseFile(path string) (*Genealogy, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".gw" && ext != ".gwplus" {
		return nil, fmt.Errorf("parse %s: unsupported file extension %q", path, ext)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	useStreaming := false
	switch p.stream {
	case streamAlways:
		useStreaming = true
	case streamAuto:
		useStreaming = parser.ShouldStream(path, p.thresholdMB)
	}

	if useStreaming {
		return p.parseFileStreaming(path, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	content, encoding := charset.Decode(data)

	genealogy, err := p.ParseString(content)
	if genealogy != nil {
		genealogy.Metadata.SourceFile = path
		genealogy.Metadata.Encoding = encoding
		genealogy.Metadata.GwPlus = ext == ".gwplus"
	}
	return genealogy, err
}

func (p *Parser) parseFileStreaming(path, ext string) (*Genealogy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer f.Close()

	reader, encoding := charset.NewReader(f)
	tokens := parser.NewStreamLexer(reader).Tokenize()
	genealogy, err := p.parseTokens(tokens, false)
	if genealogy != nil {
		genealogy.Metadata.SourceFile = path
		genealogy.Metadata.Encoding = encoding
		genealogy.Metadata.GwPlus = ext == ".gwplus"
	}
	return genealogy, err
}

// Parse reads and parses .gw content from r, detecting the input
// encoding.
func (p *Parser) Parse(r io.Reader) (*Genealogy, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	content, encoding := charset.Decode(data)

	genealogy, err := p.ParseString(content)
	if genealogy != nil {
		genealogy.Metadata.Encoding = encoding
	}
	return genealogy, err
}

// ParseString parses .gw content held in memory. Empty input yields
// an empty genealogy.
func (p *Parser) ParseString(content string) (*Genealogy, error) {
	p.collector.Reset()
	p.warnings = nil

	if strings.TrimSpace(content) == "" {
		return NewGenealogy(), nil
	}

	if p.validate {
		if err := checkLineStarts(content); err != nil {
			return nil, err
		}
	}

	tokens := parser.NewLexer(content).Tokenize()
	return p.parseTokens(tokens, p.validate)
}

// parseTokens runs the shared back half of every entry point. Each
// parse starts from a clean collector so a reused Parser cannot carry
// one file's problems into the next result.
func (p *Parser) parseTokens(tokens []parser.Token, checkContent bool) (*Genealogy, error) {
	p.collector.Reset()
	p.warnings = nil

	syntax := parser.NewParser(tokens)
	nodes, err := syntax.Parse()
	if err != nil {
		return nil, err
	}
	p.warnings = append(p.warnings, syntax.Warnings()...)

	if checkContent && !hasContentBlocks(nodes) && !hasComments(tokens) {
		return nil, fmt.Errorf("invalid .gw content: no recognized block")
	}

	genealogy, err := newBuilder(p.collector).build(nodes)
	if err != nil {
		return genealogy, err
	}

	if p.validate {
		if problems := genealogy.ValidateConsistency(!p.strict); len(problems) > 0 && p.strict {
			return genealogy, &ValidationError{Problems: problems}
		}
	}

	// In lenient mode collected parse problems travel with the
	// result instead of aborting it.
	for _, d := range p.collector.All() {
		if d.Severity >= diag.SeverityError {
			genealogy.AddProblem(d)
		} else {
			p.warnings = append(p.warnings, d)
		}
	}
	return genealogy, nil
}

func hasContentBlocks(nodes []*parser.Node) bool {
	for _, node := range nodes {
		if node.Kind != parser.NodeComment {
			return true
		}
	}
	return false
}

func hasComments(tokens []parser.Token) bool {
	for _, tok := range tokens {
		if tok.Kind == parser.TokenComment {
			return true
		}
	}
	return false
}

// lineStartWords is the set of words that may open a line outside a
// free-text block.
var lineStartWords = map[string]bool{
	"fam": true, "notes": true, "rel": true, "pevt": true, "fevt": true,
	"end": true, "beg": true, "wit": true, "wnote": true, "src": true,
	"comm": true, "notes-db": true, "page-ext": true, "wizard-note": true,
	"encoding:": true, "gwplus": true, "husb": true, "wife": true,
	"cbp": true, "csrc": true, "marr": true, "div": true, "sep": true,
	"eng": true, "note": true,
}

// freeBlockWords opens a region whose body is exempt from line
// checking until the matching "end <word>".
var freeBlockWords = map[string]bool{
	"notes": true, "notes-db": true, "page-ext": true, "wizard-note": true,
}

// checkLineStarts rejects input whose lines cannot open any .gw
// construct, skipping the free-text bodies of notes-like blocks.
func checkLineStarts(content string) error {
	insideBlock := false
	currentBlock := ""

	lineNum := 0
	for _, rawLine := range strings.Split(content, "\n") {
		lineNum++
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}

		word := strings.ToLower(strings.Fields(line)[0])

		if freeBlockWords[word] {
			insideBlock = true
			currentBlock = word
			continue
		}
		if word == "end" && insideBlock {
			if strings.Contains(strings.ToLower(line), "end "+currentBlock) {
				insideBlock = false
				currentBlock = ""
			}
			continue
		}
		if insideBlock {
			continue
		}

		if !lineStartWords[word] && !lineStartWords[strings.TrimRight(word, ":")] {
			return &parser.SyntaxError{
				Message: "invalid .gw content: unrecognized line",
				Line:    lineNum,
				Token:   word,
			}
		}
	}
	return nil
}
