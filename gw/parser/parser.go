package parser

import (
	"fmt"

	"github.com/dhamidi/gw/gw/diag"
)

// SyntaxError reports a malformed block header. It is returned
// immediately in every parsing mode; only problems below the block
// level degrade to diagnostics.
type SyntaxError struct {
	Message  string
	Line     int
	Token    string
	Expected string
}

func (e *SyntaxError) Error() string {
	msg := e.Message
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Token != "" {
		msg += fmt.Sprintf(", found %q", e.Token)
	}
	if e.Expected != "" {
		msg += fmt.Sprintf(", expected %s", e.Expected)
	}
	return msg
}

// Parser groups a token stream into block-level syntax nodes. It does
// not interpret names, dates or modifiers; that is the model builder's
// job. Unrecognized top-level tokens are skipped with a warning
// diagnostic.
type Parser struct {
	tokens   []Token
	pos      int
	warnings []diag.Diagnostic
}

func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Warnings returns the diagnostics produced during the last Parse.
func (p *Parser) Warnings() []diag.Diagnostic {
	return p.warnings
}

// Parse consumes the whole token stream and returns one node per
// block, in source order.
func (p *Parser) Parse() ([]*Node, error) {
	var nodes []*Node
	for !p.atEnd() {
		tok := p.current()

		switch tok.Kind {
		case TokenComment, TokenNewline:
			p.pos++
			continue
		case TokenFam:
			node, err := p.parseFamilyBlock()
			if err != nil {
				return nodes, err
			}
			nodes = append(nodes, node)
		case TokenNotes:
			node, err := p.parseNotesBlock()
			if err != nil {
				return nodes, err
			}
			nodes = append(nodes, node)
		case TokenRel:
			node, err := p.parseRelationsBlock()
			if err != nil {
				return nodes, err
			}
			nodes = append(nodes, node)
		case TokenPevt:
			node, err := p.parsePersonEventsBlock()
			if err != nil {
				return nodes, err
			}
			nodes = append(nodes, node)
		case TokenFevt:
			node, err := p.parseFamilyEventsBlock()
			if err != nil {
				return nodes, err
			}
			nodes = append(nodes, node)
		case TokenNotesDB:
			nodes = append(nodes, p.parseFreeBlock(NodeDatabaseNotes, TokenEndNotesDB, false))
		case TokenPageExt:
			nodes = append(nodes, p.parseFreeBlock(NodeExtendedPage, TokenEndPageExt, true))
		case TokenWizardNote:
			nodes = append(nodes, p.parseFreeBlock(NodeWizardNote, TokenEndWizardNote, true))
		default:
			p.warnings = append(p.warnings, diag.Warningf(tok.Pos.Line,
				"unrecognized token %q outside any block", tok.Literal))
			p.pos++
		}
	}
	return nodes, nil
}

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.tokens) || p.tokens[p.pos].Kind == TokenEOF
}

func (p *Parser) current() Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return Token{Kind: TokenEOF}
}

func (p *Parser) check(kind TokenKind) bool {
	return !p.atEnd() && p.tokens[p.pos].Kind == kind
}

func (p *Parser) checkAny(kinds ...TokenKind) bool {
	if p.atEnd() {
		return false
	}
	for _, kind := range kinds {
		if p.tokens[p.pos].Kind == kind {
			return true
		}
	}
	return false
}

// take appends the current token to node and advances when it matches,
// reporting whether it did.
func (p *Parser) take(node *Node, kind TokenKind) bool {
	if p.check(kind) {
		node.AddToken(p.tokens[p.pos])
		p.pos++
		return true
	}
	return false
}

func (p *Parser) takeAny(node *Node, kinds ...TokenKind) bool {
	if p.checkAny(kinds...) {
		node.AddToken(p.tokens[p.pos])
		p.pos++
		return true
	}
	return false
}

func (p *Parser) expect(node *Node, kind TokenKind, what string) error {
	if p.take(node, kind) {
		return nil
	}
	tok := p.current()
	return &SyntaxError{
		Message:  "malformed " + what,
		Line:     tok.Pos.Line,
		Token:    tok.Literal,
		Expected: kind.String(),
	}
}

func (p *Parser) skipNewlines() {
	for p.check(TokenNewline) {
		p.pos++
	}
}

// parseFamilyBlock parses the fam header line with both spouses and
// their inline data, then the optional beg/end children section.
func (p *Parser) parseFamilyBlock() (*Node, error) {
	node := NewNode(NodeFamily, p.current().Pos)
	if err := p.expect(node, TokenFam, "family block"); err != nil {
		return nil, err
	}

	p.parseSpouse(node)

	// Wedding separator with an optional date attached.
	if p.take(node, TokenPlus) {
		p.take(node, TokenDate)
	}
	p.parseMarriageModifiers(node)
	p.parseSpouse(node)
	p.parseFamilyTrailer(node)
	p.parseChildren(node)

	return node, nil
}

// parseSpouse reads surname, first name, optional occurrence number
// and the spouse's inline personal data.
func (p *Parser) parseSpouse(node *Node) {
	p.take(node, TokenIdent)
	p.take(node, TokenIdent)
	p.take(node, TokenNumber)
	p.parsePersonalInfo(node)
}

// parsePersonalInfo reads the inline run of dates and modifiers that
// follows a person reference: birth date, birth place, occupation,
// death date, death place. Positional, like the lines themselves.
func (p *Parser) parsePersonalInfo(node *Node) {
	p.take(node, TokenDate)

	if p.take(node, TokenBirthPlace) {
		p.take(node, TokenIdent)
	}

	if p.take(node, TokenOccupation) {
		for p.takeAny(node, TokenIdent, TokenString, TokenLParen, TokenRParen, TokenUnknown) {
		}
	}

	p.take(node, TokenDate)

	if p.take(node, TokenDeathPlace) {
		p.take(node, TokenIdent)
	}
}

func (p *Parser) parseMarriageModifiers(node *Node) {
	for {
		switch {
		case p.takeAny(node, TokenMarriagePlace, TokenPlace):
			p.take(node, TokenIdent)
		case p.takeAny(node, TokenNotMarried, TokenEngaged, TokenSeparated, TokenDivorced):
		case p.takeAny(node, TokenSrc, TokenSource):
			p.takeAny(node, TokenIdent, TokenString)
		default:
			return
		}
	}
}

// parseFamilyTrailer reads the lines between the fam header and the
// children section: witnesses, sources, comments and the shared
// children place and source.
func (p *Parser) parseFamilyTrailer(node *Node) {
	for !p.atEnd() {
		switch {
		case p.check(TokenWit):
			p.parseFamilyWitness(node)
		case p.takeAny(node, TokenSrc, TokenComm):
			p.takeAny(node, TokenIdent, TokenString)
		case p.takeAny(node, TokenChildrenPlace, TokenChildrenSource):
			p.take(node, TokenIdent)
		case p.take(node, TokenNewline):
		default:
			return
		}
	}
}

func (p *Parser) parseFamilyWitness(node *Node) {
	p.take(node, TokenWit)
	p.takeAny(node, TokenMale, TokenFemale)
	p.take(node, TokenColon)
	p.take(node, TokenIdent)
	p.take(node, TokenIdent)
	p.take(node, TokenNumber)
	p.parsePersonalInfo(node)
}

// parseChildren parses the beg/end section. Each dash line becomes a
// NodeChild.
func (p *Parser) parseChildren(node *Node) {
	if !p.take(node, TokenBeg) {
		return
	}
	p.skipNewlines()

	for p.check(TokenDash) {
		child := NewNode(NodeChild, p.current().Pos)
		p.take(child, TokenDash)
		p.takeAny(child, TokenMale, TokenFemale)
		p.take(child, TokenIdent)
		p.take(child, TokenIdent)
		p.take(child, TokenNumber)
		p.parsePersonalInfo(child)
		node.AddChild(child)
		p.skipNewlines()
	}

	p.take(node, TokenEnd)
}

func (p *Parser) parseNotesBlock() (*Node, error) {
	node := NewNode(NodeNotes, p.current().Pos)
	if err := p.expect(node, TokenNotes, "notes block"); err != nil {
		return nil, err
	}

	p.take(node, TokenIdent)
	p.take(node, TokenIdent)
	p.take(node, TokenNumber)
	p.take(node, TokenBeg)

	p.consumeUntil(node, TokenEndNotes)
	return node, nil
}

func (p *Parser) parseRelationsBlock() (*Node, error) {
	node := NewNode(NodeRelations, p.current().Pos)
	if err := p.expect(node, TokenRel, "relations block"); err != nil {
		return nil, err
	}

	p.take(node, TokenIdent)
	p.take(node, TokenIdent)
	p.take(node, TokenNumber)
	p.take(node, TokenBeg)

	for !p.atEnd() {
		if p.take(node, TokenEnd) {
			break
		}
		if p.check(TokenDash) {
			node.AddChild(p.parseRelationLine())
			continue
		}
		node.AddToken(p.current())
		p.pos++
	}
	return node, nil
}

// parseRelationLine parses one "- kind [fath|moth]: Last First" line.
func (p *Parser) parseRelationLine() *Node {
	node := NewNode(NodeRelation, p.current().Pos)
	p.take(node, TokenDash)
	p.takeAny(node, TokenAdoption, TokenRecognition, TokenCandidate, TokenGodparent, TokenFoster)
	p.takeAny(node, TokenFather, TokenMother)
	p.take(node, TokenColon)
	for p.take(node, TokenIdent) {
	}
	return node
}

func (p *Parser) parsePersonEventsBlock() (*Node, error) {
	node := NewNode(NodePersonEvents, p.current().Pos)
	if err := p.expect(node, TokenPevt, "person events block"); err != nil {
		return nil, err
	}

	p.take(node, TokenIdent)
	p.take(node, TokenIdent)
	p.take(node, TokenNumber)

	for !p.atEnd() {
		switch {
		case p.take(node, TokenEndPevt):
			return node, nil
		case p.checkAny(TokenEventBirth, TokenEventBaptism, TokenEventDeath, TokenBurial, TokenCremation):
			p.parseEventLine(node)
		case p.take(node, TokenNote):
			for !p.atEnd() && !p.checkAny(TokenNewline, TokenEndPevt) {
				node.AddToken(p.current())
				p.pos++
			}
		case p.check(TokenWit):
			p.parseEventWitness(node)
		case p.take(node, TokenSrc):
			p.takeAny(node, TokenIdent, TokenString)
		default:
			node.AddToken(p.current())
			p.pos++
		}
	}
	return node, nil
}

func (p *Parser) parseFamilyEventsBlock() (*Node, error) {
	node := NewNode(NodeFamilyEvents, p.current().Pos)
	if err := p.expect(node, TokenFevt, "family events block"); err != nil {
		return nil, err
	}

	for !p.atEnd() {
		switch {
		case p.take(node, TokenEndFevt):
			return node, nil
		case p.checkAny(TokenEventMarriage, TokenEventEngagement, TokenDivorced, TokenSeparated):
			p.parseEventLine(node)
		case p.check(TokenWit):
			p.parseEventWitness(node)
		case p.takeAny(node, TokenSrc, TokenComm):
			p.takeAny(node, TokenIdent, TokenString)
		default:
			node.AddToken(p.current())
			p.pos++
		}
	}
	return node, nil
}

// parseEventLine reads an event tag with its optional date and #p
// place.
func (p *Parser) parseEventLine(node *Node) {
	node.AddToken(p.current())
	p.pos++

	p.take(node, TokenDate)
	if p.take(node, TokenPlace) {
		p.take(node, TokenIdent)
	}
}

// parseEventWitness reads "wit [m|f]: Name...", names running to the
// end of the identifier run.
func (p *Parser) parseEventWitness(node *Node) {
	p.take(node, TokenWit)
	p.takeAny(node, TokenMale, TokenFemale)
	p.take(node, TokenColon)
	for p.take(node, TokenIdent) {
	}
}

// parseFreeBlock handles the blocks whose body is free text up to a
// compound terminator: notes-db, page-ext and wizard-note. withPerson
// selects whether a person reference follows the keyword.
func (p *Parser) parseFreeBlock(kind NodeKind, terminator TokenKind, withPerson bool) *Node {
	node := NewNode(kind, p.current().Pos)
	node.AddToken(p.current())
	p.pos++

	if withPerson {
		p.take(node, TokenIdent)
		p.take(node, TokenIdent)
		p.take(node, TokenNumber)
	}

	p.consumeUntil(node, terminator)
	return node
}

func (p *Parser) consumeUntil(node *Node, terminator TokenKind) {
	for !p.atEnd() {
		if p.take(node, terminator) {
			return
		}
		node.AddToken(p.current())
		p.pos++
	}
}
