package gw

import (
	"fmt"
	"strings"
	"time"

	"github.com/dhamidi/gw/gw/diag"
)

// Gender of a person. Sources mark males with "h" (homme) on child
// lines and "m" on witness lines; both map here.
type Gender int

const (
	GenderUnknown Gender = iota
	GenderMale
	GenderFemale
)

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "m"
	case GenderFemale:
		return "f"
	}
	return "?"
}

// AccessLevel restricts who may see a person's data.
type AccessLevel int

const (
	// AccessDefault defers to the site's "if titles" rule.
	AccessDefault AccessLevel = iota
	AccessPublic
	AccessPrivate
)

// RelationKind names the special parent-like relations of a rel
// block.
type RelationKind string

const (
	RelationAdoption    RelationKind = "adop"
	RelationRecognition RelationKind = "reco"
	RelationCandidate   RelationKind = "cand"
	RelationGodparent   RelationKind = "godp"
	RelationFoster      RelationKind = "fost"
)

// Relation links a person to a non-biological parent figure.
// ParentRole is GenderMale for fath, GenderFemale for moth, unknown
// when the line named neither.
type Relation struct {
	Kind       RelationKind
	ParentRole Gender
	PersonID   string
}

// Title is a nobility or honorific title.
type Title struct {
	Name      string
	TitleType string
	Place     string
	StartDate Date
	EndDate   Date
	Number    int
	Main      bool
}

// Key identifies a person: surname, first name and an occurrence
// number distinguishing homonyms.
type Key struct {
	LastName   string
	FirstName  string
	Occurrence int
}

// ID renders the key in canonical form, the person map key.
func (k Key) ID() string {
	return fmt.Sprintf("%s_%s_%d", k.LastName, k.FirstName, k.Occurrence)
}

func (k Key) String() string {
	if k.Occurrence > 0 {
		return fmt.Sprintf("%s %s .%d", k.LastName, k.FirstName, k.Occurrence)
	}
	return k.LastName + " " + k.FirstName
}

// Person is one individual with everything the source recorded about
// them.
type Person struct {
	Key

	PublicName     string
	Nickname       string
	FirstNameAlias string
	SurnameAlias   string
	Alias          string

	Titles []Title

	Gender     Gender
	Occupation string
	ImagePath  string

	BirthDate   Date
	DeathDate   Date
	BaptismDate Date

	BirthPlace   string
	DeathPlace   string
	BaptismPlace string
	BurialPlace  string

	BirthSource   string
	DeathSource   string
	BaptismSource string
	BurialSource  string
	PersonSource  string

	Events []Event

	// ObviouslyDead mirrors the #od tag, YoungDeath the #mj tag.
	// BurialType is "buri" or "crem" when tagged.
	ObviouslyDead bool
	YoungDeath    bool
	BurialType    string

	Access AccessLevel

	FamiliesAsChild  []string
	FamiliesAsSpouse []string

	Notes     []string
	Relations []Relation

	Valid    bool
	Problems []diag.Diagnostic
}

// NewPerson builds a person with normalized names: embedded spaces
// become underscores, matching how the format writes multi-word
// names.
func NewPerson(lastName, firstName string, occurrence int) *Person {
	return &Person{
		Key: Key{
			LastName:   strings.ReplaceAll(lastName, " ", "_"),
			FirstName:  strings.ReplaceAll(firstName, " ", "_"),
			Occurrence: occurrence,
		},
		Valid: true,
	}
}

// FullName is "Last First" with the occurrence suffix when non-zero.
func (p *Person) FullName() string {
	if p.Occurrence > 0 {
		return fmt.Sprintf("%s %s .%d", p.LastName, p.FirstName, p.Occurrence)
	}
	return p.LastName + " " + p.FirstName
}

// DisplayName prefers the public name when one was recorded.
func (p *Person) DisplayName() string {
	if p.PublicName != "" {
		return p.LastName + " " + p.PublicName
	}
	return p.FullName()
}

// AgeAtDeath returns the difference of death and birth years. ok is
// false when either year is missing.
func (p *Person) AgeAtDeath() (int, bool) {
	if p.BirthDate.Year == 0 || p.DeathDate.Year == 0 {
		return 0, false
	}
	return p.DeathDate.Year - p.BirthDate.Year, true
}

// IsAlive guesses whether the person is still alive. A recorded death
// or the #od tag decides; otherwise anyone born more than 150 years
// ago counts as dead.
func (p *Person) IsAlive() bool {
	if !p.DeathDate.IsZero() || p.ObviouslyDead {
		return false
	}
	if p.BirthDate.Year != 0 && time.Now().Year()-p.BirthDate.Year > 150 {
		return false
	}
	return true
}

func (p *Person) AddEvent(event Event) {
	p.Events = append(p.Events, event)
}

func (p *Person) AddNote(note string) {
	p.Notes = append(p.Notes, note)
}

func (p *Person) AddRelation(rel Relation) {
	p.Relations = append(p.Relations, rel)
}

func (p *Person) AddTitle(title Title) {
	p.Titles = append(p.Titles, title)
}

// EventsOfType returns the person's events with the given type.
func (p *Person) EventsOfType(t EventType) []Event {
	var result []Event
	for _, e := range p.Events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// Families returns every family id the person appears in, as child or
// as spouse.
func (p *Person) Families() []string {
	return append(append([]string{}, p.FamiliesAsChild...), p.FamiliesAsSpouse...)
}

func (p *Person) AddProblem(d diag.Diagnostic) {
	p.Problems = append(p.Problems, d)
	p.Valid = false
}

// mergeFrom folds other into p when both describe the same key. Empty
// fields fill from other, gender upgrades only away from unknown,
// events and notes append as-is. Fields p already holds win.
func (p *Person) mergeFrom(other *Person) {
	if p.Gender == GenderUnknown && other.Gender != GenderUnknown {
		p.Gender = other.Gender
	}

	if p.BirthDate.IsZero() {
		p.BirthDate = other.BirthDate
	}
	if p.DeathDate.IsZero() {
		p.DeathDate = other.DeathDate
	}
	if p.BaptismDate.IsZero() {
		p.BaptismDate = other.BaptismDate
	}

	fillString(&p.BirthPlace, other.BirthPlace)
	fillString(&p.DeathPlace, other.DeathPlace)
	fillString(&p.BaptismPlace, other.BaptismPlace)
	fillString(&p.Occupation, other.Occupation)
	fillString(&p.PublicName, other.PublicName)
	fillString(&p.Nickname, other.Nickname)
	fillString(&p.BirthSource, other.BirthSource)
	fillString(&p.DeathSource, other.DeathSource)
	fillString(&p.BaptismSource, other.BaptismSource)
	fillString(&p.BurialSource, other.BurialSource)
	fillString(&p.PersonSource, other.PersonSource)

	p.Events = append(p.Events, other.Events...)
	p.Notes = append(p.Notes, other.Notes...)
}

func fillString(dst *string, src string) {
	if *dst == "" {
		*dst = src
	}
}
