package parser

// Position is a location in the source text. Offset is the absolute
// byte offset; Line and Column are 1-based.
type Position struct {
	Offset int
	Line   int
	Column int
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenUnknown
	TokenComment
	TokenNewline

	// Block keywords, only recognized at column 1
	TokenFam
	TokenNotes
	TokenRel
	TokenPevt
	TokenFevt
	TokenNotesDB
	TokenPageExt
	TokenWizardNote

	// Structural keywords
	TokenBeg
	TokenEnd
	TokenEndNotes
	TokenEndPevt
	TokenEndFevt
	TokenEndNotesDB
	TokenEndPageExt
	TokenEndWizardNote

	// Data keywords
	TokenWit
	TokenSrc
	TokenComm
	TokenNote

	// Hash modifiers
	TokenBirthPlace     // #bp
	TokenDeathPlace     // #dp
	TokenMarriagePlace  // #mp
	TokenPlace          // #p
	TokenSource         // #s
	TokenOccupation     // #occu
	TokenNickname       // #nick
	TokenSurnameAlias   // #salias
	TokenAlias          // #alias
	TokenAccessPublic   // #apubl
	TokenAccessPrivate  // #apriv
	TokenObviouslyDead  // #od
	TokenDiedYoung      // #mj
	TokenBurial         // #buri
	TokenCremation      // #crem
	TokenChildrenPlace  // #cbp
	TokenChildrenSource // #csrc

	// Marriage status modifiers
	TokenNotMarried // #nm
	TokenEngaged    // #eng
	TokenSeparated  // #sep
	TokenDivorced   // #div

	// Sex markers
	TokenMale   // h / m
	TokenFemale // f

	// Event keywords (pevt/fevt); #buri, #crem, #div and #sep overlap
	// with the modifier family above and are disambiguated by the
	// surrounding block at the syntax layer.
	TokenEventBirth      // #birt
	TokenEventBaptism    // #bapt
	TokenEventDeath      // #deat
	TokenEventMarriage   // #marr
	TokenEventEngagement // #enga

	// Relation kinds
	TokenAdoption    // adop
	TokenRecognition // reco
	TokenCandidate   // cand
	TokenGodparent   // godp
	TokenFoster      // fost
	TokenFather      // fath
	TokenMother      // moth

	// Literals
	TokenIdent
	TokenDate
	TokenNumber // occurrence suffix, e.g. ".1"
	TokenString

	// Punctuation
	TokenColon
	TokenDash
	TokenPlus
	TokenDot
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:             "EOF",
	TokenUnknown:         "Unknown",
	TokenComment:         "Comment",
	TokenNewline:         "Newline",
	TokenFam:             "fam",
	TokenNotes:           "notes",
	TokenRel:             "rel",
	TokenPevt:            "pevt",
	TokenFevt:            "fevt",
	TokenNotesDB:         "notes-db",
	TokenPageExt:         "page-ext",
	TokenWizardNote:      "wizard-note",
	TokenBeg:             "beg",
	TokenEnd:             "end",
	TokenEndNotes:        "end notes",
	TokenEndPevt:         "end pevt",
	TokenEndFevt:         "end fevt",
	TokenEndNotesDB:      "end notes-db",
	TokenEndPageExt:      "end page-ext",
	TokenEndWizardNote:   "end wizard-note",
	TokenWit:             "wit",
	TokenSrc:             "src",
	TokenComm:            "comm",
	TokenNote:            "note",
	TokenBirthPlace:      "#bp",
	TokenDeathPlace:      "#dp",
	TokenMarriagePlace:   "#mp",
	TokenPlace:           "#p",
	TokenSource:          "#s",
	TokenOccupation:      "#occu",
	TokenNickname:        "#nick",
	TokenSurnameAlias:    "#salias",
	TokenAlias:           "#alias",
	TokenAccessPublic:    "#apubl",
	TokenAccessPrivate:   "#apriv",
	TokenObviouslyDead:   "#od",
	TokenDiedYoung:       "#mj",
	TokenBurial:          "#buri",
	TokenCremation:       "#crem",
	TokenChildrenPlace:   "#cbp",
	TokenChildrenSource:  "#csrc",
	TokenNotMarried:      "#nm",
	TokenEngaged:         "#eng",
	TokenSeparated:       "#sep",
	TokenDivorced:        "#div",
	TokenMale:            "h",
	TokenFemale:          "f",
	TokenEventBirth:      "#birt",
	TokenEventBaptism:    "#bapt",
	TokenEventDeath:      "#deat",
	TokenEventMarriage:   "#marr",
	TokenEventEngagement: "#enga",
	TokenAdoption:        "adop",
	TokenRecognition:     "reco",
	TokenCandidate:       "cand",
	TokenGodparent:       "godp",
	TokenFoster:          "fost",
	TokenFather:          "fath",
	TokenMother:          "moth",
	TokenIdent:           "Identifier",
	TokenDate:            "Date",
	TokenNumber:          "Number",
	TokenString:          "String",
	TokenColon:           ":",
	TokenDash:            "-",
	TokenPlus:            "+",
	TokenDot:             ".",
	TokenLParen:          "(",
	TokenRParen:          ")",
	TokenLBracket:        "[",
	TokenRBracket:        "]",
	TokenLBrace:          "{",
	TokenRBrace:          "}",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Invalid"
}

// Token is a single lexical unit. Tokens are immutable once produced;
// the streaming lexer re-stamps positions by constructing new values.
type Token struct {
	Kind    TokenKind
	Literal string
	Pos     Position
}

// Block keywords recognized only when the lexer is at column 1.
var blockKeywords = map[string]TokenKind{
	"fam":         TokenFam,
	"notes":       TokenNotes,
	"rel":         TokenRel,
	"pevt":        TokenPevt,
	"fevt":        TokenFevt,
	"notes-db":    TokenNotesDB,
	"page-ext":    TokenPageExt,
	"wizard-note": TokenWizardNote,
	"beg":         TokenBeg,
	"end":         TokenEnd,
	"wit":         TokenWit,
	"src":         TokenSrc,
	"comm":        TokenComm,
}

// Compound terminators: "end" followed by one of these words folds into
// a single token.
var compoundEnds = map[string]TokenKind{
	"notes":       TokenEndNotes,
	"pevt":        TokenEndPevt,
	"fevt":        TokenEndFevt,
	"notes-db":    TokenEndNotesDB,
	"page-ext":    TokenEndPageExt,
	"wizard-note": TokenEndWizardNote,
}

var hashModifiers = map[string]TokenKind{
	"bp":     TokenBirthPlace,
	"dp":     TokenDeathPlace,
	"mp":     TokenMarriagePlace,
	"p":      TokenPlace,
	"s":      TokenSource,
	"occu":   TokenOccupation,
	"nick":   TokenNickname,
	"salias": TokenSurnameAlias,
	"alias":  TokenAlias,
	"apubl":  TokenAccessPublic,
	"apriv":  TokenAccessPrivate,
	"od":     TokenObviouslyDead,
	"mj":     TokenDiedYoung,
	"buri":   TokenBurial,
	"crem":   TokenCremation,
	"cbp":    TokenChildrenPlace,
	"csrc":   TokenChildrenSource,
	"nm":     TokenNotMarried,
	"eng":    TokenEngaged,
	"sep":    TokenSeparated,
	"div":    TokenDivorced,
	"h":      TokenMale,
	"f":      TokenFemale,
	"wit":    TokenWit,
	"src":    TokenSrc,
	"comm":   TokenComm,
	"note":   TokenNote,
}

// Event keywords, consulted after hashModifiers so that the overlapping
// spellings (buri, crem, div, sep) keep their modifier kind; block
// parsers reinterpret them in event position.
var hashEvents = map[string]TokenKind{
	"birt": TokenEventBirth,
	"bapt": TokenEventBaptism,
	"deat": TokenEventDeath,
	"marr": TokenEventMarriage,
	"enga": TokenEventEngagement,
}

var relationWords = map[string]TokenKind{
	"adop": TokenAdoption,
	"reco": TokenRecognition,
	"cand": TokenCandidate,
	"godp": TokenGodparent,
	"fost": TokenFoster,
	"fath": TokenFather,
	"moth": TokenMother,
}

// LookupWord classifies a bare word that is not at column 1. Relation
// words, witness keywords and single-letter sex markers keep dedicated
// kinds; everything else is an identifier.
func LookupWord(word string) TokenKind {
	switch word {
	case "wit":
		return TokenWit
	case "src":
		return TokenSrc
	case "comm":
		return TokenComm
	case "note":
		return TokenNote
	case "h", "m":
		return TokenMale
	case "f":
		return TokenFemale
	}
	if kind, ok := relationWords[word]; ok {
		return kind
	}
	return TokenIdent
}
