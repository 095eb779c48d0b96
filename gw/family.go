package gw

import (
	"github.com/dhamidi/gw/gw/diag"
)

// MarriageStatus describes the couple's legal relation.
type MarriageStatus int

const (
	Married MarriageStatus = iota
	NotMarried
	Engaged
	Separated
	Divorced
	Widowed
)

func (s MarriageStatus) String() string {
	switch s {
	case NotMarried:
		return "nm"
	case Engaged:
		return "eng"
	case Separated:
		return "sep"
	case Divorced:
		return "div"
	case Widowed:
		return "wid"
	}
	return "married"
}

// Child references one child of a family. LastName is set only when
// it differs from the father's.
type Child struct {
	PersonID string
	Sex      Gender
	LastName string
}

// Family is one union: up to two spouses, their children and the
// events around the union.
type Family struct {
	ID string

	HusbandID string
	WifeID    string

	MarriageDate   Date
	MarriagePlace  string
	MarriageSource string
	Status         MarriageStatus

	DivorceDate Date

	Children  []Child
	Witnesses []Witness

	// ChildrenBirthPlace and ChildrenSource are the shared #cbp and
	// #csrc values applied to every child.
	ChildrenBirthPlace string
	ChildrenSource     string

	Events []Event

	Source   string
	Comments []string

	Valid    bool
	Problems []diag.Diagnostic
}

// NewFamily builds a family. A family with neither spouse is marked
// invalid but still returned, so lenient parsing can carry on.
func NewFamily(id, husbandID, wifeID string) *Family {
	f := &Family{
		ID:        id,
		HusbandID: husbandID,
		WifeID:    wifeID,
		Valid:     true,
	}
	if husbandID == "" && wifeID == "" {
		f.AddProblem(diag.Errorf(0, "family %s has neither spouse", id))
	}
	return f
}

// SpouseIDs returns the present spouses, husband first.
func (f *Family) SpouseIDs() []string {
	var ids []string
	if f.HusbandID != "" {
		ids = append(ids, f.HusbandID)
	}
	if f.WifeID != "" {
		ids = append(ids, f.WifeID)
	}
	return ids
}

func (f *Family) ChildIDs() []string {
	ids := make([]string, len(f.Children))
	for i, child := range f.Children {
		ids[i] = child.PersonID
	}
	return ids
}

// Spouse returns the other spouse of personID, or "".
func (f *Family) Spouse(personID string) string {
	switch personID {
	case f.HusbandID:
		return f.WifeID
	case f.WifeID:
		return f.HusbandID
	}
	return ""
}

func (f *Family) IsParent(personID string) bool {
	return personID != "" && (personID == f.HusbandID || personID == f.WifeID)
}

func (f *Family) IsChild(personID string) bool {
	for _, child := range f.Children {
		if child.PersonID == personID {
			return true
		}
	}
	return false
}

func (f *Family) IsMember(personID string) bool {
	return f.IsParent(personID) || f.IsChild(personID)
}

func (f *Family) IsDivorced() bool {
	return !f.DivorceDate.IsZero() || f.Status == Divorced
}

func (f *Family) AddChild(personID string, sex Gender, lastName string) {
	f.Children = append(f.Children, Child{PersonID: personID, Sex: sex, LastName: lastName})
}

func (f *Family) AddWitness(personID, kind string) {
	f.Witnesses = append(f.Witnesses, Witness{PersonID: personID, Kind: kind})
}

func (f *Family) AddEvent(event Event) {
	f.Events = append(f.Events, event)
}

func (f *Family) AddComment(comment string) {
	f.Comments = append(f.Comments, comment)
}

// EventsOfType returns the family's events with the given type.
func (f *Family) EventsOfType(t EventType) []Event {
	var result []Event
	for _, e := range f.Events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

func (f *Family) AddProblem(d diag.Diagnostic) {
	f.Problems = append(f.Problems, d)
	f.Valid = false
}
