package gw

import (
	"fmt"

	"github.com/dhamidi/gw/gw/diag"
)

// Metadata describes the database as a whole: where it came from and
// the free-text blocks that belong to no single person.
type Metadata struct {
	SourceFile string
	Encoding   string
	GwPlus     bool

	DatabaseNotes []string

	// ExtendedPages and WizardNotes are keyed by person id.
	ExtendedPages map[string]string
	WizardNotes   map[string]string
}

// Genealogy holds every person and family of one database, keyed by
// their canonical ids.
type Genealogy struct {
	Persons  map[string]*Person
	Families map[string]*Family

	Metadata Metadata

	Valid    bool
	Problems []diag.Diagnostic
}

func NewGenealogy() *Genealogy {
	return &Genealogy{
		Persons:  make(map[string]*Person),
		Families: make(map[string]*Family),
		Metadata: Metadata{
			Encoding:      "utf-8",
			ExtendedPages: make(map[string]string),
			WizardNotes:   make(map[string]string),
		},
		Valid: true,
	}
}

// AddPerson inserts a new person and fails on a duplicate key.
func (g *Genealogy) AddPerson(p *Person) error {
	id := p.ID()
	if _, exists := g.Persons[id]; exists {
		return fmt.Errorf("person %q already present", id)
	}
	g.Persons[id] = p
	return nil
}

// AddOrUpdatePerson inserts p, or merges it into the person already
// stored under the same key. The stored person is returned either
// way, so repeated mentions of one individual accumulate onto a
// single record.
func (g *Genealogy) AddOrUpdatePerson(p *Person) *Person {
	id := p.ID()
	if existing, ok := g.Persons[id]; ok {
		existing.mergeFrom(p)
		return existing
	}
	g.Persons[id] = p
	return p
}

// AddFamily inserts a new family and fails on a duplicate id.
func (g *Genealogy) AddFamily(f *Family) error {
	if _, exists := g.Families[f.ID]; exists {
		return fmt.Errorf("family %q already present", f.ID)
	}
	g.Families[f.ID] = f
	return nil
}

// NextFamilyID returns the id the next family should get.
func (g *Genealogy) NextFamilyID() string {
	return fmt.Sprintf("FAM_%03d", len(g.Families)+1)
}

func (g *Genealogy) FindPerson(lastName, firstName string, occurrence int) *Person {
	return g.Persons[Key{LastName: lastName, FirstName: firstName, Occurrence: occurrence}.ID()]
}

func (g *Genealogy) FindPersonByID(id string) *Person {
	return g.Persons[id]
}

func (g *Genealogy) FindFamily(id string) *Family {
	return g.Families[id]
}

// FamiliesForPerson returns every family the person belongs to, as
// spouse or as child.
func (g *Genealogy) FamiliesForPerson(personID string) []*Family {
	var result []*Family
	for _, f := range g.Families {
		if f.IsMember(personID) {
			result = append(result, f)
		}
	}
	return result
}

// Children returns the person's children across all their families.
func (g *Genealogy) Children(personID string) []*Person {
	var result []*Person
	for _, f := range g.Families {
		if !f.IsParent(personID) {
			continue
		}
		for _, childID := range f.ChildIDs() {
			if child := g.Persons[childID]; child != nil {
				result = append(result, child)
			}
		}
	}
	return result
}

// Parents returns the spouses of the person's parental family. A
// person has at most one.
func (g *Genealogy) Parents(personID string) []*Person {
	for _, f := range g.Families {
		if !f.IsChild(personID) {
			continue
		}
		var result []*Person
		for _, parentID := range f.SpouseIDs() {
			if parent := g.Persons[parentID]; parent != nil {
				result = append(result, parent)
			}
		}
		return result
	}
	return nil
}

// Siblings returns the other children of the person's parental
// family.
func (g *Genealogy) Siblings(personID string) []*Person {
	for _, f := range g.Families {
		if !f.IsChild(personID) {
			continue
		}
		var result []*Person
		for _, siblingID := range f.ChildIDs() {
			if siblingID == personID {
				continue
			}
			if sibling := g.Persons[siblingID]; sibling != nil {
				result = append(result, sibling)
			}
		}
		return result
	}
	return nil
}

// Spouses returns everyone the person formed a family with.
func (g *Genealogy) Spouses(personID string) []*Person {
	var result []*Person
	for _, f := range g.Families {
		if !f.IsParent(personID) {
			continue
		}
		if spouseID := f.Spouse(personID); spouseID != "" {
			if spouse := g.Persons[spouseID]; spouse != nil {
				result = append(result, spouse)
			}
		}
	}
	return result
}

// ValidateConsistency checks that every cross-reference points at an
// existing record and that dates are ordered. The diagnostics are
// returned and, when strict is set, also recorded on the genealogy.
func (g *Genealogy) ValidateConsistency(strict bool) []diag.Diagnostic {
	var problems []diag.Diagnostic

	for _, f := range g.Families {
		if f.HusbandID != "" && g.Persons[f.HusbandID] == nil {
			problems = append(problems, diag.Errorf(0,
				"husband %q of family %q not found", f.HusbandID, f.ID))
		}
		if f.WifeID != "" && g.Persons[f.WifeID] == nil {
			problems = append(problems, diag.Errorf(0,
				"wife %q of family %q not found", f.WifeID, f.ID))
		}
		for _, childID := range f.ChildIDs() {
			if g.Persons[childID] == nil {
				problems = append(problems, diag.Errorf(0,
					"child %q of family %q not found", childID, f.ID))
			}
		}
		if f.MarriageDate.Year != 0 && f.DivorceDate.Year != 0 &&
			f.MarriageDate.Year > f.DivorceDate.Year {
			problems = append(problems, diag.Errorf(0,
				"family %q married %s after divorce %s", f.ID, f.MarriageDate, f.DivorceDate))
		}
	}

	for _, p := range g.Persons {
		for _, familyID := range p.Families() {
			if g.Families[familyID] == nil {
				problems = append(problems, diag.Errorf(0,
					"family %q referenced by %q not found", familyID, p.ID()))
			}
		}
		if p.BirthDate.Year != 0 && p.DeathDate.Year != 0 &&
			p.BirthDate.Year > p.DeathDate.Year {
			problems = append(problems, diag.Errorf(0,
				"person %q born %s after death %s", p.ID(), p.BirthDate, p.DeathDate))
		}
	}

	if strict && len(problems) > 0 {
		g.Valid = false
		g.Problems = append(g.Problems, problems...)
	}
	return problems
}

func (g *Genealogy) AddProblem(d diag.Diagnostic) {
	g.Problems = append(g.Problems, d)
	g.Valid = false
}

// RebuildCrossReferences recomputes every person's family membership
// lists from the families. Existing lists are discarded first, so the
// result reflects only current family records.
func (g *Genealogy) RebuildCrossReferences() {
	for _, p := range g.Persons {
		p.FamiliesAsChild = nil
		p.FamiliesAsSpouse = nil
	}

	for _, f := range g.Families {
		if husband := g.Persons[f.HusbandID]; husband != nil {
			husband.FamiliesAsSpouse = append(husband.FamiliesAsSpouse, f.ID)
		}
		if wife := g.Persons[f.WifeID]; wife != nil {
			wife.FamiliesAsSpouse = append(wife.FamiliesAsSpouse, f.ID)
		}
		for _, childID := range f.ChildIDs() {
			if child := g.Persons[childID]; child != nil {
				child.FamiliesAsChild = append(child.FamiliesAsChild, f.ID)
			}
		}
	}
}

// Statistics summarizes the database.
type Statistics struct {
	TotalPersons  int
	TotalFamilies int

	LivingPersons   int
	DeceasedPersons int

	PersonsWithBirthDate int
	PersonsWithDeathDate int

	FamiliesWithChildren int
	TotalChildren        int

	MalePersons          int
	FemalePersons        int
	UnknownGenderPersons int

	AverageAgeAtDeath float64
	OldestDeath       int
	YoungestDeath     int
}

// Statistics computes summary counts over the genealogy.
func (g *Genealogy) Statistics() Statistics {
	stats := Statistics{
		TotalPersons:  len(g.Persons),
		TotalFamilies: len(g.Families),
	}

	var ages []int
	for _, p := range g.Persons {
		if p.IsAlive() {
			stats.LivingPersons++
		} else {
			stats.DeceasedPersons++
		}
		if !p.BirthDate.IsZero() {
			stats.PersonsWithBirthDate++
		}
		if !p.DeathDate.IsZero() {
			stats.PersonsWithDeathDate++
		}
		switch p.Gender {
		case GenderMale:
			stats.MalePersons++
		case GenderFemale:
			stats.FemalePersons++
		default:
			stats.UnknownGenderPersons++
		}
		if age, ok := p.AgeAtDeath(); ok {
			ages = append(ages, age)
		}
	}

	for _, f := range g.Families {
		if len(f.Children) > 0 {
			stats.FamiliesWithChildren++
		}
		stats.TotalChildren += len(f.Children)
	}

	if len(ages) > 0 {
		sum := 0
		stats.OldestDeath = ages[0]
		stats.YoungestDeath = ages[0]
		for _, age := range ages {
			sum += age
			if age > stats.OldestDeath {
				stats.OldestDeath = age
			}
			if age < stats.YoungestDeath {
				stats.YoungestDeath = age
			}
		}
		stats.AverageAgeAtDeath = float64(sum) / float64(len(ages))
	}

	return stats
}

func (g *Genealogy) String() string {
	return fmt.Sprintf("Genealogy(%d persons, %d families)", len(g.Persons), len(g.Families))
}
