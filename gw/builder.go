package gw

import (
	"strconv"
	"strings"

	"github.com/dhamidi/gw/gw/diag"
	"github.com/dhamidi/gw/gw/parser"
)

// builder interprets block syntax nodes into the genealogical model.
// It resolves person references through a shared key space so the
// same individual mentioned as spouse, witness or note subject ends
// up as one record.
type builder struct {
	genealogy *Genealogy
	collector *diag.Collector

	// lastFamily receives detached fevt and beg/end blocks, which
	// bind to the family built most recently before them.
	lastFamily *Family
}

func newBuilder(collector *diag.Collector) *builder {
	return &builder{
		genealogy: NewGenealogy(),
		collector: collector,
	}
}

func (b *builder) build(nodes []*parser.Node) (*Genealogy, error) {
	for _, node := range nodes {
		var err error
		switch node.Kind {
		case parser.NodeFamily:
			err = b.buildFamily(node)
		case parser.NodeNotes:
			b.buildNotes(node)
		case parser.NodeRelations:
			b.buildRelations(node)
		case parser.NodePersonEvents:
			b.buildPersonEvents(node)
		case parser.NodeFamilyEvents:
			b.buildFamilyEvents(node)
		case parser.NodeDatabaseNotes:
			b.buildDatabaseNotes(node)
		case parser.NodeExtendedPage:
			b.buildExtendedPage(node)
		case parser.NodeWizardNote:
			b.buildWizardNote(node)
		}
		if err != nil {
			return b.genealogy, err
		}
	}

	b.genealogy.RebuildCrossReferences()
	return b.genealogy, nil
}

// getOrCreatePerson resolves a person reference. An explicit
// occurrence addresses exactly that record; without one the reference
// merges into occurrence 0. Gender only upgrades an unknown one.
func (b *builder) getOrCreatePerson(lastName, firstName string, occurrence int, hasOccurrence bool, gender Gender) string {
	if !hasOccurrence {
		occurrence = 0
	}
	key := Key{
		LastName:   strings.ReplaceAll(lastName, " ", "_"),
		FirstName:  strings.ReplaceAll(firstName, " ", "_"),
		Occurrence: occurrence,
	}

	if existing := b.genealogy.Persons[key.ID()]; existing != nil {
		if gender != GenderUnknown && existing.Gender == GenderUnknown {
			existing.Gender = gender
		}
		return key.ID()
	}

	person := NewPerson(lastName, firstName, occurrence)
	person.Gender = gender
	b.genealogy.AddOrUpdatePerson(person)
	return key.ID()
}

// spouseInfo carries what the fam header line says about one spouse.
type spouseInfo struct {
	lastName      string
	firstName     string
	occurrence    int
	hasOccurrence bool

	birthDate  Date
	deathDate  Date
	birthPlace string
	deathPlace string
	occupation string
}

func (s *spouseInfo) named() bool {
	return s.lastName != "" && s.firstName != ""
}

func (s *spouseInfo) applyTo(p *Person) {
	if !s.birthDate.IsZero() {
		p.BirthDate = s.birthDate
	}
	if !s.deathDate.IsZero() {
		p.DeathDate = s.deathDate
	}
	fillOrReplace(&p.BirthPlace, s.birthPlace)
	fillOrReplace(&p.DeathPlace, s.deathPlace)
	fillOrReplace(&p.Occupation, s.occupation)
}

func fillOrReplace(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// buildFamily interprets one fam block: the header line naming both
// spouses with their inline data, witnesses, family-level modifiers
// and the children section.
func (b *builder) buildFamily(node *parser.Node) error {
	var husband, wife spouseInfo
	family := &Family{Valid: true}

	tokens := node.Tokens
	current := &husband
	afterPlus := false

	for i := 0; i < len(tokens); {
		tok := tokens[i]

		switch tok.Kind {
		case parser.TokenFam:
			i++

		case parser.TokenPlus:
			current = &wife
			afterPlus = true
			i++

		case parser.TokenIdent:
			// A fresh identifier after a completed husband starts the
			// wife even without an explicit separator.
			if current == &husband && husband.named() && !wife.named() {
				current = &wife
			}
			if current.lastName == "" {
				current.lastName = tok.Literal
			} else if current.firstName == "" {
				current.firstName = tok.Literal
			}
			i++

		case parser.TokenNumber:
			if current.firstName != "" && !current.hasOccurrence {
				current.occurrence = parseOccurrence(tok.Literal)
				current.hasOccurrence = true
			}
			i++

		case parser.TokenDate:
			date := ParseDateLenient(tok.Literal)
			switch {
			case afterPlus && family.MarriageDate.IsZero():
				family.MarriageDate = date
			case current.birthDate.IsZero():
				current.birthDate = date
			case current.deathDate.IsZero():
				current.deathDate = date
			}
			afterPlus = false
			i++

		case parser.TokenBirthPlace:
			i++
			if i < len(tokens) && tokens[i].Kind == parser.TokenIdent {
				current.birthPlace = placeValue(tokens[i].Literal)
				i++
			}

		case parser.TokenDeathPlace:
			i++
			if i < len(tokens) && tokens[i].Kind == parser.TokenIdent {
				current.deathPlace = placeValue(tokens[i].Literal)
				i++
			}

		case parser.TokenOccupation:
			var value string
			value, i = collectOccupation(tokens, i+1)
			current.occupation = value

		case parser.TokenMarriagePlace, parser.TokenPlace:
			i++
			if i < len(tokens) && tokens[i].Kind == parser.TokenIdent {
				family.MarriagePlace = placeValue(tokens[i].Literal)
				i++
			}

		case parser.TokenNotMarried:
			family.Status = NotMarried
			i++
		case parser.TokenEngaged:
			family.Status = Engaged
			i++
		case parser.TokenSeparated:
			family.Status = Separated
			i++
		case parser.TokenDivorced:
			family.Status = Divorced
			i++

		case parser.TokenSource:
			i++
			if i < len(tokens) && (tokens[i].Kind == parser.TokenIdent || tokens[i].Kind == parser.TokenString) {
				family.MarriageSource = tokens[i].Literal
				i++
			}

		case parser.TokenSrc:
			i++
			if i < len(tokens) && (tokens[i].Kind == parser.TokenIdent || tokens[i].Kind == parser.TokenString) {
				family.Source = tokens[i].Literal
				i++
			}

		case parser.TokenComm:
			i++
			if i < len(tokens) && (tokens[i].Kind == parser.TokenIdent || tokens[i].Kind == parser.TokenString) {
				family.AddComment(tokens[i].Literal)
				i++
			}

		case parser.TokenChildrenPlace:
			i++
			if i < len(tokens) && tokens[i].Kind == parser.TokenIdent {
				family.ChildrenBirthPlace = placeValue(tokens[i].Literal)
				i++
			}

		case parser.TokenChildrenSource:
			i++
			if i < len(tokens) && tokens[i].Kind == parser.TokenIdent {
				family.ChildrenSource = tokens[i].Literal
				i++
			}

		case parser.TokenWit:
			var witnessID, kind string
			witnessID, kind, i = b.parseWitnessTokens(tokens, i)
			if witnessID != "" {
				family.AddWitness(witnessID, kind)
			}

		default:
			i++
		}
	}

	if husband.named() {
		id := b.getOrCreatePerson(husband.lastName, husband.firstName, husband.occurrence, husband.hasOccurrence, GenderMale)
		husband.applyTo(b.genealogy.Persons[id])
		family.HusbandID = id
	}
	if wife.named() {
		id := b.getOrCreatePerson(wife.lastName, wife.firstName, wife.occurrence, wife.hasOccurrence, GenderFemale)
		wife.applyTo(b.genealogy.Persons[id])
		family.WifeID = id
	}

	// No resolvable spouse means no family record at all.
	if family.HusbandID == "" && family.WifeID == "" {
		if err := b.collector.Add(diag.Errorf(node.Pos.Line, "family block names no resolvable spouse")); err != nil {
			return err
		}
		return nil
	}

	family.ID = b.genealogy.NextFamilyID()

	for _, childNode := range node.Children {
		b.buildChild(childNode, family)
	}

	if err := b.genealogy.AddFamily(family); err != nil {
		return b.collector.Add(diag.Errorf(node.Pos.Line, "%s", err))
	}
	b.lastFamily = family
	return nil
}

// buildChild interprets one "- ..." line of a children section. A
// single identifier is a first name whose surname comes from the
// husband, or a placeholder when there is none.
func (b *builder) buildChild(node *parser.Node, family *Family) {
	tokens := node.Tokens
	i := 0
	if i < len(tokens) && tokens[i].Kind == parser.TokenDash {
		i++
	}

	sex := GenderUnknown
	if i < len(tokens) {
		switch tokens[i].Kind {
		case parser.TokenMale:
			sex = GenderMale
			i++
		case parser.TokenFemale:
			sex = GenderFemale
			i++
		}
	}

	var lastName, firstName string
	explicitSurname := false
	if i < len(tokens) && tokens[i].Kind == parser.TokenIdent {
		first := tokens[i].Literal
		i++
		if i < len(tokens) && tokens[i].Kind == parser.TokenIdent {
			lastName = first
			firstName = tokens[i].Literal
			explicitSurname = true
			i++
		} else {
			firstName = first
		}
	}

	occurrence := 0
	hasOccurrence := false
	if i < len(tokens) && tokens[i].Kind == parser.TokenNumber {
		occurrence = parseOccurrence(tokens[i].Literal)
		hasOccurrence = true
		i++
	}

	if firstName == "" {
		return
	}

	if lastName == "" {
		if husband := b.genealogy.Persons[family.HusbandID]; husband != nil {
			lastName = husband.LastName
		}
		if lastName == "" {
			lastName = "UNKNOWN"
		}
	}

	childID := b.getOrCreatePerson(lastName, firstName, occurrence, hasOccurrence, sex)
	b.applyInlineInfo(tokens, i, b.genealogy.Persons[childID])

	var childSurname string
	if explicitSurname {
		childSurname = lastName
	}
	family.AddChild(childID, sex, childSurname)
}

// headerPerson reads "<keyword> Last First [.N]" from the start of a
// block's tokens and resolves the person.
func (b *builder) headerPerson(tokens []parser.Token) (string, int) {
	i := 1 // block keyword
	var lastName, firstName string
	if i < len(tokens) && tokens[i].Kind == parser.TokenIdent {
		lastName = tokens[i].Literal
		i++
	}
	if i < len(tokens) && tokens[i].Kind == parser.TokenIdent {
		firstName = tokens[i].Literal
		i++
	}
	if lastName == "" || firstName == "" {
		return "", i
	}

	occurrence := 0
	hasOccurrence := false
	if i < len(tokens) && tokens[i].Kind == parser.TokenNumber {
		occurrence = parseOccurrence(tokens[i].Literal)
		hasOccurrence = true
		i++
	}
	return b.getOrCreatePerson(lastName, firstName, occurrence, hasOccurrence, GenderUnknown), i
}

func (b *builder) buildNotes(node *parser.Node) {
	personID, i := b.headerPerson(node.Tokens)
	if personID == "" {
		return
	}

	content := collectText(node.Tokens[i:], parser.TokenBeg, parser.TokenEndNotes)
	if content != "" {
		b.genealogy.Persons[personID].AddNote(content)
	}
}

func (b *builder) buildRelations(node *parser.Node) {
	personID, _ := b.headerPerson(node.Tokens)
	if personID == "" {
		return
	}
	owner := b.genealogy.Persons[personID]

	for _, line := range node.Children {
		if rel, ok := b.buildRelationLine(line); ok {
			owner.AddRelation(rel)
		}
	}
}

var relationKinds = map[parser.TokenKind]RelationKind{
	parser.TokenAdoption:    RelationAdoption,
	parser.TokenRecognition: RelationRecognition,
	parser.TokenCandidate:   RelationCandidate,
	parser.TokenGodparent:   RelationGodparent,
	parser.TokenFoster:      RelationFoster,
}

func (b *builder) buildRelationLine(node *parser.Node) (Relation, bool) {
	tokens := node.Tokens
	i := 0
	if i < len(tokens) && tokens[i].Kind == parser.TokenDash {
		i++
	}

	var rel Relation
	if i < len(tokens) {
		if kind, ok := relationKinds[tokens[i].Kind]; ok {
			rel.Kind = kind
			i++
		}
	}
	if i < len(tokens) {
		switch tokens[i].Kind {
		case parser.TokenFather:
			rel.ParentRole = GenderMale
			i++
		case parser.TokenMother:
			rel.ParentRole = GenderFemale
			i++
		}
	}
	if i < len(tokens) && tokens[i].Kind == parser.TokenColon {
		i++
	}

	var names []string
	for i < len(tokens) && tokens[i].Kind == parser.TokenIdent {
		names = append(names, tokens[i].Literal)
		i++
	}
	if rel.Kind == "" || len(names) < 2 {
		return Relation{}, false
	}

	rel.PersonID = b.getOrCreatePerson(names[0], names[1], 0, false, rel.ParentRole)
	return rel, true
}

func (b *builder) buildPersonEvents(node *parser.Node) {
	personID, i := b.headerPerson(node.Tokens)
	if personID == "" {
		return
	}
	person := b.genealogy.Persons[personID]
	tokens := node.Tokens

	// Witness lines attach to the event built most recently before
	// them.
	var lastEvent *Event

	for i < len(tokens) {
		tok := tokens[i]

		switch tok.Kind {
		case parser.TokenEventBirth:
			var date Date
			var place string
			date, place, i = parseEventTail(tokens, i+1)
			person.BirthDate = date
			fillOrReplace(&person.BirthPlace, place)
			lastEvent = nil

		case parser.TokenEventDeath:
			var date Date
			var place string
			date, place, i = parseEventTail(tokens, i+1)
			person.DeathDate = date
			fillOrReplace(&person.DeathPlace, place)
			lastEvent = nil

		case parser.TokenEventBaptism:
			var date Date
			var place string
			date, place, i = parseEventTail(tokens, i+1)
			person.BaptismDate = date
			fillOrReplace(&person.BaptismPlace, place)
			person.AddEvent(Event{Type: EventBaptism, Date: date, Place: place})
			lastEvent = &person.Events[len(person.Events)-1]

		case parser.TokenBurial:
			var date Date
			var place string
			date, place, i = parseEventTail(tokens, i+1)
			person.BurialType = "buri"
			fillOrReplace(&person.BurialPlace, place)
			person.AddEvent(Event{Type: EventBurial, Date: date, Place: place})
			lastEvent = &person.Events[len(person.Events)-1]

		case parser.TokenCremation:
			var date Date
			var place string
			date, place, i = parseEventTail(tokens, i+1)
			person.BurialType = "crem"
			person.AddEvent(Event{Type: EventCremation, Date: date, Place: place})
			lastEvent = &person.Events[len(person.Events)-1]

		case parser.TokenNote:
			i++
			var parts []string
			for i < len(tokens) && tokens[i].Kind != parser.TokenNewline && tokens[i].Kind != parser.TokenEndPevt {
				parts = append(parts, tokens[i].Literal)
				i++
			}
			if len(parts) > 0 {
				person.AddNote(strings.Join(parts, " "))
			}

		case parser.TokenWit:
			var witnessID, kind string
			witnessID, kind, i = b.parseWitnessTokens(tokens, i)
			if witnessID != "" && lastEvent != nil {
				lastEvent.AddWitness(witnessID, kind)
			}

		default:
			i++
		}
	}
}

var familyEventKinds = map[parser.TokenKind]EventType{
	parser.TokenEventMarriage:   EventMarriage,
	parser.TokenDivorced:        EventDivorce,
	parser.TokenSeparated:       EventSeparation,
	parser.TokenEventEngagement: EventEngagement,
}

// buildFamilyEvents attaches a detached fevt block to the family that
// was built last. Without one the block's events have no home and are
// reported.
func (b *builder) buildFamilyEvents(node *parser.Node) {
	family := b.lastFamily
	if family == nil {
		b.collector.Warnf(node.Pos.Line, "family events block before any family")
		return
	}

	tokens := node.Tokens
	var current *Event

	for i := 0; i < len(tokens); {
		tok := tokens[i]

		if eventType, ok := familyEventKinds[tok.Kind]; ok {
			var date Date
			var place string
			date, place, i = parseEventTail(tokens, i+1)
			family.AddEvent(Event{Type: eventType, Date: date, Place: place})
			current = &family.Events[len(family.Events)-1]

			switch eventType {
			case EventMarriage:
				if family.MarriageDate.IsZero() {
					family.MarriageDate = date
				}
				fillOrReplace(&family.MarriagePlace, place)
			case EventDivorce:
				if family.DivorceDate.IsZero() {
					family.DivorceDate = date
				}
			}
			continue
		}

		switch tok.Kind {
		case parser.TokenWit:
			var witnessID, kind string
			witnessID, kind, i = b.parseWitnessTokens(tokens, i)
			if witnessID != "" && current != nil {
				current.AddWitness(witnessID, kind)
			}
		case parser.TokenSrc:
			i++
			if i < len(tokens) && (tokens[i].Kind == parser.TokenIdent || tokens[i].Kind == parser.TokenString) {
				if current != nil {
					current.Source = tokens[i].Literal
				}
				i++
			}
		case parser.TokenComm:
			i++
			if i < len(tokens) && (tokens[i].Kind == parser.TokenIdent || tokens[i].Kind == parser.TokenString) {
				family.AddComment(tokens[i].Literal)
				i++
			}
		default:
			i++
		}
	}
}

func (b *builder) buildDatabaseNotes(node *parser.Node) {
	content := collectText(node.Tokens, parser.TokenNotesDB, parser.TokenEndNotesDB)
	if content != "" {
		b.genealogy.Metadata.DatabaseNotes = append(b.genealogy.Metadata.DatabaseNotes, content)
	}
}

func (b *builder) buildExtendedPage(node *parser.Node) {
	personID, i := b.headerPerson(node.Tokens)
	if personID == "" {
		return
	}
	content := joinLiterals(node.Tokens[i:], parser.TokenEndPageExt)
	if content != "" {
		b.genealogy.Metadata.ExtendedPages[personID] = content
	}
}

func (b *builder) buildWizardNote(node *parser.Node) {
	personID, i := b.headerPerson(node.Tokens)
	if personID == "" {
		return
	}
	content := joinLiterals(node.Tokens[i:], parser.TokenEndWizardNote)
	if content != "" {
		b.genealogy.Metadata.WizardNotes[personID] = content
		b.genealogy.Persons[personID].AddNote("[Wizard] " + content)
	}
}

// parseWitnessTokens reads "wit [m|f]: Last First [.N] [inline info]"
// and resolves the witness to a person record. It returns the
// witness's id, the gender marker and the index past the witness.
func (b *builder) parseWitnessTokens(tokens []parser.Token, i int) (string, string, int) {
	if i >= len(tokens) || tokens[i].Kind != parser.TokenWit {
		return "", "", i + 1
	}
	i++

	gender := GenderUnknown
	kind := ""
	if i < len(tokens) {
		switch tokens[i].Kind {
		case parser.TokenMale:
			gender = GenderMale
			kind = "m"
			i++
		case parser.TokenFemale:
			gender = GenderFemale
			kind = "f"
			i++
		}
	}
	if i < len(tokens) && tokens[i].Kind == parser.TokenColon {
		i++
	}

	var lastName, firstName string
	if i < len(tokens) && tokens[i].Kind == parser.TokenIdent {
		lastName = tokens[i].Literal
		i++
	}
	if i < len(tokens) && tokens[i].Kind == parser.TokenIdent {
		firstName = tokens[i].Literal
		i++
	}

	occurrence := 0
	hasOccurrence := false
	if i < len(tokens) && tokens[i].Kind == parser.TokenNumber {
		occurrence = parseOccurrence(tokens[i].Literal)
		hasOccurrence = true
		i++
	}

	if lastName == "" || firstName == "" {
		return "", "", i
	}

	witnessID := b.getOrCreatePerson(lastName, firstName, occurrence, hasOccurrence, gender)
	i = b.applyInlineInfo(tokens, i, b.genealogy.Persons[witnessID])
	return witnessID, kind, i
}

// applyInlineInfo reads the run of dates and hash modifiers following
// a person reference and applies them to the person. The first date
// is the birth, the second the death.
func (b *builder) applyInlineInfo(tokens []parser.Token, i int, person *Person) int {
	for i < len(tokens) {
		tok := tokens[i]

		switch tok.Kind {
		case parser.TokenDate:
			date := ParseDateLenient(tok.Literal)
			if person.BirthDate.IsZero() {
				person.BirthDate = date
			} else if person.DeathDate.IsZero() {
				person.DeathDate = date
			}
			i++

		case parser.TokenBirthPlace:
			i++
			if i < len(tokens) && tokens[i].Kind == parser.TokenIdent {
				person.BirthPlace = placeValue(tokens[i].Literal)
				i++
			}

		case parser.TokenDeathPlace:
			i++
			if i < len(tokens) && tokens[i].Kind == parser.TokenIdent {
				person.DeathPlace = placeValue(tokens[i].Literal)
				i++
			}

		case parser.TokenOccupation:
			var value string
			value, i = collectOccupation(tokens, i+1)
			fillOrReplace(&person.Occupation, value)

		case parser.TokenNickname:
			i++
			if i < len(tokens) && tokens[i].Kind == parser.TokenIdent {
				person.Nickname = tokens[i].Literal
				i++
			}

		case parser.TokenSurnameAlias:
			i++
			if i < len(tokens) && tokens[i].Kind == parser.TokenIdent {
				person.SurnameAlias = tokens[i].Literal
				i++
			}

		case parser.TokenAlias:
			i++
			if i < len(tokens) && tokens[i].Kind == parser.TokenIdent {
				person.Alias = tokens[i].Literal
				i++
			}

		case parser.TokenAccessPrivate:
			person.Access = AccessPrivate
			i++
		case parser.TokenAccessPublic:
			person.Access = AccessPublic
			i++
		case parser.TokenObviouslyDead:
			person.ObviouslyDead = true
			i++
		case parser.TokenDiedYoung:
			person.YoungDeath = true
			i++
		case parser.TokenBurial:
			person.BurialType = "buri"
			i++
		case parser.TokenCremation:
			person.BurialType = "crem"
			i++

		case parser.TokenSource:
			i++
			if i < len(tokens) && (tokens[i].Kind == parser.TokenIdent || tokens[i].Kind == parser.TokenString) {
				fillOrReplace(&person.PersonSource, tokens[i].Literal)
				i++
			}

		case parser.TokenNewline, parser.TokenWit, parser.TokenSrc, parser.TokenComm:
			return i

		default:
			return i
		}
	}
	return i
}

// parseOccurrence turns ".1" into 1. Unparseable suffixes count as 0.
func parseOccurrence(literal string) int {
	n, err := strconv.Atoi(strings.TrimLeft(literal, "."))
	if err != nil {
		return 0
	}
	return n
}

// placeValue restores the spaces that underscores stand for in place
// names.
func placeValue(literal string) string {
	return strings.ReplaceAll(literal, "_", " ")
}

// collectOccupation consumes the free-form token run of an #occu
// value.
func collectOccupation(tokens []parser.Token, i int) (string, int) {
	var parts []string
	for i < len(tokens) {
		switch tokens[i].Kind {
		case parser.TokenIdent, parser.TokenString, parser.TokenLParen, parser.TokenRParen, parser.TokenUnknown:
			parts = append(parts, strings.ReplaceAll(tokens[i].Literal, "_", " "))
			i++
		default:
			return strings.Join(parts, ""), i
		}
	}
	return strings.Join(parts, ""), i
}

// parseEventTail reads the optional date and #p place after an event
// tag. An absent date yields the unknown date.
func parseEventTail(tokens []parser.Token, i int) (Date, string, int) {
	date := Date{Unknown: true}
	if i < len(tokens) && tokens[i].Kind == parser.TokenDate {
		date = ParseDateLenient(tokens[i].Literal)
		i++
	}

	var place string
	if i < len(tokens) && tokens[i].Kind == parser.TokenPlace {
		i++
		if i < len(tokens) && tokens[i].Kind == parser.TokenIdent {
			place = placeValue(tokens[i].Literal)
			i++
		}
	}
	return date, place, i
}

// collectText joins the literals between an opening and a closing
// token, skipping newlines.
func collectText(tokens []parser.Token, open, terminator parser.TokenKind) string {
	var parts []string
	inContent := false
	for _, tok := range tokens {
		switch tok.Kind {
		case open:
			inContent = true
		case terminator:
			return strings.Join(parts, " ")
		case parser.TokenNewline:
		default:
			if inContent {
				parts = append(parts, tok.Literal)
			}
		}
	}
	return strings.Join(parts, " ")
}

// joinLiterals joins every literal up to the terminator, skipping
// newlines.
func joinLiterals(tokens []parser.Token, terminator parser.TokenKind) string {
	var parts []string
	for _, tok := range tokens {
		if tok.Kind == terminator {
			break
		}
		if tok.Kind == parser.TokenNewline {
			continue
		}
		parts = append(parts, tok.Literal)
	}
	return strings.Join(parts, " ")
}
