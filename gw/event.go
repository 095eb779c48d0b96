package gw

// EventType tags a genealogical event with its source keyword.
type EventType string

const (
	EventBirth     EventType = "birt"
	EventBaptism   EventType = "bapt"
	EventDeath     EventType = "deat"
	EventBurial    EventType = "buri"
	EventCremation EventType = "crem"

	EventConfirmation    EventType = "conf"
	EventFirstCommunion  EventType = "fcom"
	EventOrdination      EventType = "ordn"
	EventExcommunication EventType = "exco"

	EventNaturalization  EventType = "natu"
	EventOccupation      EventType = "occu"
	EventResidence       EventType = "resi"
	EventEducation       EventType = "educ"
	EventGraduation      EventType = "grad"
	EventMilitaryService EventType = "mser"

	EventMarriage   EventType = "marr"
	EventDivorce    EventType = "div"
	EventSeparation EventType = "sep"
	EventEngagement EventType = "enga"
	EventPACS       EventType = "pacs"

	EventNoMarriage       EventType = "nmar"
	EventNoMention        EventType = "nmen"
	EventAnnulment        EventType = "anul"
	EventMarriageBann     EventType = "marb"
	EventMarriageContract EventType = "marc"
	EventMarriageLicense  EventType = "marl"
)

var familyEventTypes = map[EventType]bool{
	EventMarriage:         true,
	EventDivorce:          true,
	EventSeparation:       true,
	EventEngagement:       true,
	EventPACS:             true,
	EventNoMarriage:       true,
	EventNoMention:        true,
	EventAnnulment:        true,
	EventMarriageBann:     true,
	EventMarriageContract: true,
	EventMarriageLicense:  true,
}

// IsFamilyEvent reports whether the type describes a couple rather
// than a single person.
func (t EventType) IsFamilyEvent() bool {
	return familyEventTypes[t]
}

// Witness ties a person to an event they attended. Kind is the source
// marker, "m" or "f", empty when unmarked.
type Witness struct {
	PersonID string
	Kind     string
}

// Event is one dated fact about a person or a family.
type Event struct {
	Type   EventType
	Date   Date
	Place  string
	Source string
	Reason string

	Witnesses []Witness
	Notes     []string
}

func (e *Event) AddWitness(personID, kind string) {
	e.Witnesses = append(e.Witnesses, Witness{PersonID: personID, Kind: kind})
}

func (e *Event) AddNote(note string) {
	e.Notes = append(e.Notes, note)
}
