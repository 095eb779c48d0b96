package gw

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/gw/gw/parser"
)

func parseLenient(t *testing.T, source string) *Genealogy {
	t.Helper()
	genealogy, err := New(WithStrict(false)).ParseString(source)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	return genealogy
}

func TestParseSimpleFamily(t *testing.T) {
	source := "fam Dupont Jean 25/12/1960 #bp Paris + 10/6/1985 #mp Lyon Martin Marie\n"

	g := parseLenient(t, source)

	husband := g.FindPerson("Dupont", "Jean", 0)
	if husband == nil {
		t.Fatal("husband not found")
	}
	if husband.Gender != GenderMale {
		t.Errorf("husband Gender = %v, want %v", husband.Gender, GenderMale)
	}
	if husband.BirthDate.Year != 1960 {
		t.Errorf("husband birth year = %d, want 1960", husband.BirthDate.Year)
	}
	if husband.BirthPlace != "Paris" {
		t.Errorf("husband BirthPlace = %q, want %q", husband.BirthPlace, "Paris")
	}

	wife := g.FindPerson("Martin", "Marie", 0)
	if wife == nil {
		t.Fatal("wife not found")
	}
	if wife.Gender != GenderFemale {
		t.Errorf("wife Gender = %v, want %v", wife.Gender, GenderFemale)
	}

	family := g.FindFamily("FAM_001")
	if family == nil {
		t.Fatal("family FAM_001 not found")
	}
	if family.HusbandID != husband.ID() || family.WifeID != wife.ID() {
		t.Errorf("family spouses = %q + %q", family.HusbandID, family.WifeID)
	}
	if family.MarriageDate.Year != 1985 {
		t.Errorf("marriage year = %d, want 1985", family.MarriageDate.Year)
	}
	if family.MarriagePlace != "Lyon" {
		t.Errorf("MarriagePlace = %q, want %q", family.MarriagePlace, "Lyon")
	}
}

func TestParseChildren(t *testing.T) {
	source := "fam Dupont Jean + Martin Marie\n" +
		"beg\n" +
		"- h Pierre 1986\n" +
		"- f Julie.1 1988\n" +
		"- Durand Louis\n" +
		"end\n"

	g := parseLenient(t, source)
	family := g.FindFamily("FAM_001")
	if family == nil {
		t.Fatal("family not found")
	}
	if len(family.Children) != 3 {
		t.Fatalf("len(Children) = %d, want 3", len(family.Children))
	}

	// Single name inherits the husband's surname.
	pierre := g.FindPerson("Dupont", "Pierre", 0)
	if pierre == nil {
		t.Fatal("child Pierre not found under the husband's surname")
	}
	if pierre.Gender != GenderMale {
		t.Errorf("Pierre Gender = %v, want %v", pierre.Gender, GenderMale)
	}
	if pierre.BirthDate.Year != 1986 {
		t.Errorf("Pierre birth year = %d, want 1986", pierre.BirthDate.Year)
	}

	julie := g.FindPerson("Dupont", "Julie", 1)
	if julie == nil {
		t.Fatal("child Julie.1 not found")
	}

	// Two names give the child its own surname.
	louis := g.FindPerson("Durand", "Louis", 0)
	if louis == nil {
		t.Fatal("child Durand Louis not found")
	}

	if len(pierre.FamiliesAsChild) != 1 || pierre.FamiliesAsChild[0] != "FAM_001" {
		t.Errorf("Pierre FamiliesAsChild = %v, want [FAM_001]", pierre.FamiliesAsChild)
	}
	husband := g.FindPerson("Dupont", "Jean", 0)
	if len(husband.FamiliesAsSpouse) != 1 || husband.FamiliesAsSpouse[0] != "FAM_001" {
		t.Errorf("husband FamiliesAsSpouse = %v, want [FAM_001]", husband.FamiliesAsSpouse)
	}
}

func TestParseMergesRepeatedPersons(t *testing.T) {
	source := "fam Dupont Jean + Martin Marie\n" +
		"pevt Dupont Jean\n" +
		"#birt 25/12/1960\n" +
		"end pevt\n"

	g := parseLenient(t, source)

	if got := len(g.Persons); got != 2 {
		t.Fatalf("len(Persons) = %d, want 2", got)
	}
	jean := g.FindPerson("Dupont", "Jean", 0)
	if jean.BirthDate.Year != 1960 {
		t.Errorf("birth year = %d, want 1960", jean.BirthDate.Year)
	}
	if jean.Gender != GenderMale {
		t.Errorf("Gender = %v, want %v (kept from the family block)", jean.Gender, GenderMale)
	}
}

func TestParseExplicitOccurrenceIsDistinct(t *testing.T) {
	source := "fam Dupont Jean + Martin Marie\n" +
		"fam Dupont Jean.1 + Petit Anne\n"

	g := parseLenient(t, source)

	first := g.FindPerson("Dupont", "Jean", 0)
	second := g.FindPerson("Dupont", "Jean", 1)
	if first == nil || second == nil {
		t.Fatal("expected two distinct Dupont Jean records")
	}
	if g.FindFamily("FAM_001").HusbandID == g.FindFamily("FAM_002").HusbandID {
		t.Error("families share a husband, want distinct occurrence records")
	}
}

func TestParseFamilyWitness(t *testing.T) {
	source := "fam Dupont Jean + Martin Marie\n" +
		"wit m: Blanc Paul\n"

	g := parseLenient(t, source)
	family := g.FindFamily("FAM_001")
	if len(family.Witnesses) != 1 {
		t.Fatalf("len(Witnesses) = %d, want 1", len(family.Witnesses))
	}
	if family.Witnesses[0].PersonID != "Blanc_Paul_0" {
		t.Errorf("witness = %q, want %q", family.Witnesses[0].PersonID, "Blanc_Paul_0")
	}
	if family.Witnesses[0].Kind != "m" {
		t.Errorf("witness kind = %q, want %q", family.Witnesses[0].Kind, "m")
	}
	if g.FindPerson("Blanc", "Paul", 0) == nil {
		t.Error("witness person record not created")
	}
}

func TestParseNotesBlock(t *testing.T) {
	source := "fam Dupont Jean + Martin Marie\n" +
		"notes Dupont Jean\n" +
		"beg\n" +
		"A personal remark\n" +
		"end notes\n"

	g := parseLenient(t, source)
	jean := g.FindPerson("Dupont", "Jean", 0)
	if len(jean.Notes) != 1 {
		t.Fatalf("len(Notes) = %d, want 1", len(jean.Notes))
	}
	if jean.Notes[0] != "A personal remark" {
		t.Errorf("note = %q, want %q", jean.Notes[0], "A personal remark")
	}
}

func TestParseRelations(t *testing.T) {
	source := "rel Dupont Jean\n" +
		"beg\n" +
		"- adop fath: Durand Albert\n" +
		"- godp moth: Petit Jeanne\n" +
		"end\n"

	g := parseLenient(t, source)
	jean := g.FindPerson("Dupont", "Jean", 0)
	if len(jean.Relations) != 2 {
		t.Fatalf("len(Relations) = %d, want 2", len(jean.Relations))
	}

	adoption := jean.Relations[0]
	if adoption.Kind != RelationAdoption {
		t.Errorf("Kind = %v, want %v", adoption.Kind, RelationAdoption)
	}
	if adoption.ParentRole != GenderMale {
		t.Errorf("ParentRole = %v, want %v", adoption.ParentRole, GenderMale)
	}
	if adoption.PersonID != "Durand_Albert_0" {
		t.Errorf("PersonID = %q, want %q", adoption.PersonID, "Durand_Albert_0")
	}

	if g.FindPerson("Petit", "Jeanne", 0) == nil {
		t.Error("godparent person record not created")
	}
}

func TestParsePersonEvents(t *testing.T) {
	source := "pevt Dupont Jean\n" +
		"#birt 25/12/1960 #p Paris\n" +
		"#deat 3/4/2020 #p Lyon\n" +
		"#bapt 1/1/1961 #p Reims\n" +
		"wit m: Blanc Paul\n" +
		"end pevt\n"

	g := parseLenient(t, source)
	jean := g.FindPerson("Dupont", "Jean", 0)

	if jean.BirthDate.Year != 1960 || jean.BirthPlace != "Paris" {
		t.Errorf("birth = %s %q, want 1960 Paris", jean.BirthDate, jean.BirthPlace)
	}
	if jean.DeathDate.Year != 2020 || jean.DeathPlace != "Lyon" {
		t.Errorf("death = %s %q, want 2020 Lyon", jean.DeathDate, jean.DeathPlace)
	}
	if jean.BaptismDate.Year != 1961 || jean.BaptismPlace != "Reims" {
		t.Errorf("baptism = %s %q, want 1961 Reims", jean.BaptismDate, jean.BaptismPlace)
	}

	baptisms := jean.EventsOfType(EventBaptism)
	if len(baptisms) != 1 {
		t.Fatalf("baptism events = %d, want 1", len(baptisms))
	}
	if len(baptisms[0].Witnesses) != 1 || baptisms[0].Witnesses[0].PersonID != "Blanc_Paul_0" {
		t.Errorf("baptism witnesses = %v, want Blanc_Paul_0", baptisms[0].Witnesses)
	}
}

func TestParseFamilyEvents(t *testing.T) {
	source := "fam Dupont Jean + Martin Marie\n" +
		"fevt\n" +
		"#marr 10/6/1985 #p Lyon\n" +
		"wit f: Petit Jeanne\n" +
		"end fevt\n"

	g := parseLenient(t, source)
	family := g.FindFamily("FAM_001")

	marriages := family.EventsOfType(EventMarriage)
	if len(marriages) != 1 {
		t.Fatalf("marriage events = %d, want 1", len(marriages))
	}
	if family.MarriageDate.Year != 1985 {
		t.Errorf("MarriageDate year = %d, want 1985", family.MarriageDate.Year)
	}
	if family.MarriagePlace != "Lyon" {
		t.Errorf("MarriagePlace = %q, want %q", family.MarriagePlace, "Lyon")
	}
	if len(marriages[0].Witnesses) != 1 {
		t.Errorf("marriage witnesses = %d, want 1", len(marriages[0].Witnesses))
	}
}

func TestParseMetadataBlocks(t *testing.T) {
	source := "notes-db\n" +
		"Shared database remark\n" +
		"end notes-db\n" +
		"page-ext Dupont Jean\n" +
		"Custom page content\n" +
		"end page-ext\n" +
		"wizard-note Dupont Jean\n" +
		"Wizard remark\n" +
		"end wizard-note\n"

	g := parseLenient(t, source)

	if len(g.Metadata.DatabaseNotes) != 1 || g.Metadata.DatabaseNotes[0] != "Shared database remark" {
		t.Errorf("DatabaseNotes = %v", g.Metadata.DatabaseNotes)
	}
	if got := g.Metadata.ExtendedPages["Dupont_Jean_0"]; got != "Custom page content" {
		t.Errorf("ExtendedPages = %q, want %q", got, "Custom page content")
	}
	if got := g.Metadata.WizardNotes["Dupont_Jean_0"]; got != "Wizard remark" {
		t.Errorf("WizardNotes = %q, want %q", got, "Wizard remark")
	}

	jean := g.FindPerson("Dupont", "Jean", 0)
	if len(jean.Notes) != 1 || !strings.HasPrefix(jean.Notes[0], "[Wizard]") {
		t.Errorf("Notes = %v, want one [Wizard] note", jean.Notes)
	}
}

func TestParseEmptyContent(t *testing.T) {
	g, err := New().ParseString("   \n\n  ")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if len(g.Persons) != 0 || len(g.Families) != 0 {
		t.Errorf("empty input produced %d persons, %d families", len(g.Persons), len(g.Families))
	}
}

func TestParseRejectsUnrecognizedContent(t *testing.T) {
	_, err := New().ParseString("fam Dupont Jean + Martin Marie\nthis is not genealogy data\n")
	if err == nil {
		t.Fatal("ParseString(prose) error = nil, want error")
	}

	var syntaxErr *parser.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("error type = %T, want *parser.SyntaxError", err)
	}
	if syntaxErr.Line != 2 {
		t.Errorf("Line = %d, want 2", syntaxErr.Line)
	}
	if syntaxErr.Token != "this" {
		t.Errorf("Token = %q, want %q", syntaxErr.Token, "this")
	}
}

func TestParseCommentOnlyContent(t *testing.T) {
	g, err := New().ParseString("# just a comment\n")
	if err != nil {
		t.Fatalf("ParseString(comment) error = %v", err)
	}
	if len(g.Persons) != 0 {
		t.Errorf("len(Persons) = %d, want 0", len(g.Persons))
	}
}

func TestParseStrictVersusLenient(t *testing.T) {
	// A family block naming no resolvable spouse is an error.
	source := "fam\n"

	if _, err := New(WithValidation(false)).ParseString(source); err == nil {
		t.Error("strict ParseString() error = nil, want error")
	}

	g, err := New(WithStrict(false), WithValidation(false)).ParseString(source)
	if err != nil {
		t.Fatalf("lenient ParseString() error = %v", err)
	}
	if len(g.Problems) == 0 {
		t.Error("lenient parse recorded no problems")
	}
	if g.Valid {
		t.Error("Valid = true, want false after recorded problems")
	}
}

func TestParseValidationCatchesDanglingChild(t *testing.T) {
	g := NewGenealogy()
	family := &Family{ID: "FAM_001", HusbandID: "Missing_Person_0", Valid: true}
	if err := g.AddFamily(family); err != nil {
		t.Fatal(err)
	}

	problems := g.ValidateConsistency(false)
	if len(problems) == 0 {
		t.Error("ValidateConsistency() = no problems, want missing-husband problem")
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.gw")
	content := "fam Dupont Jean + Martin Marie\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := New().ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if g.Metadata.SourceFile != path {
		t.Errorf("SourceFile = %q, want %q", g.Metadata.SourceFile, path)
	}
	if g.Metadata.Encoding != "utf-8" {
		t.Errorf("Encoding = %q, want %q", g.Metadata.Encoding, "utf-8")
	}
	if g.Metadata.GwPlus {
		t.Error("GwPlus = true, want false for .gw")
	}
}

func TestParseFileGwPlus(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.gwplus")
	if err := os.WriteFile(path, []byte("fam Dupont Jean + Martin Marie\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := New().ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if !g.Metadata.GwPlus {
		t.Error("GwPlus = false, want true for .gwplus")
	}
}

func TestParseFileRejectsExtension(t *testing.T) {
	if _, err := New().ParseFile("data.txt"); err == nil {
		t.Error("ParseFile(.txt) error = nil, want error")
	}
}

func TestParseFileStreamingMatchesNormal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.gw")
	content := "fam Dupont Jean 25/12/1960 + Martin Marie\n" +
		"beg\n" +
		"- h Pierre 1986\n" +
		"end\n" +
		"notes Dupont Jean\n" +
		"beg\n" +
		"A remark\n" +
		"end notes\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	normal, err := New(WithStreaming(false)).ParseFile(path)
	if err != nil {
		t.Fatalf("normal ParseFile() error = %v", err)
	}
	streamed, err := New(WithStreaming(true)).ParseFile(path)
	if err != nil {
		t.Fatalf("streaming ParseFile() error = %v", err)
	}

	if len(normal.Persons) != len(streamed.Persons) {
		t.Errorf("persons: normal %d, streamed %d", len(normal.Persons), len(streamed.Persons))
	}
	if len(normal.Families) != len(streamed.Families) {
		t.Errorf("families: normal %d, streamed %d", len(normal.Families), len(streamed.Families))
	}

	np := normal.FindPerson("Dupont", "Jean", 0)
	sp := streamed.FindPerson("Dupont", "Jean", 0)
	if np == nil || sp == nil {
		t.Fatal("Dupont Jean missing from one of the results")
	}
	if np.BirthDate.Year != sp.BirthDate.Year {
		t.Errorf("birth year: normal %d, streamed %d", np.BirthDate.Year, sp.BirthDate.Year)
	}
	if len(np.Notes) != len(sp.Notes) {
		t.Errorf("notes: normal %d, streamed %d", len(np.Notes), len(sp.Notes))
	}
}

func TestParseNameUnderscores(t *testing.T) {
	source := "fam CAYEUX Pierre_Bernard_Henri + Martin Marie\n"

	g := parseLenient(t, source)
	if g.FindPerson("CAYEUX", "Pierre_Bernard_Henri", 0) == nil {
		t.Error("underscored name not found under its literal key")
	}
}

func TestParseOccupation(t *testing.T) {
	tests := []struct {
		name string
		occu string
		want string
	}{
		{
			name: "underscores become spaces",
			occu: "Ingénieur_des_mines",
			want: "Ingénieur des mines",
		},
		{
			name: "punctuation preserved",
			occu: "Ingénieur_(ENSIA),_Aumônier_de_l'enseignement",
			want: "Ingénieur (ENSIA), Aumônier de l'enseignement",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := "fam Dupont Jean #occu " + tt.occu + " + Martin Marie\n"
			g := parseLenient(t, source)
			jean := g.FindPerson("Dupont", "Jean", 0)
			if jean.Occupation != tt.want {
				t.Errorf("Occupation = %q, want %q", jean.Occupation, tt.want)
			}
		})
	}
}

func TestParseFileStreamingLatin1(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "legacy.gw")
	content := []byte("fam Dupont Ren\xe9 + Martin Marie\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := New(WithStreaming(true)).ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if g.FindPerson("Dupont", "René", 0) == nil {
		t.Error("Latin-1 name not decoded; Dupont René missing")
	}
	if g.Metadata.Encoding == "utf-8" {
		t.Errorf("Encoding = %q, want a legacy charset name", g.Metadata.Encoding)
	}
}

func TestParserReuseAcrossStreamingParses(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.gw")
	good := filepath.Join(dir, "good.gw")
	if err := os.WriteFile(bad, []byte("fam\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(good, []byte("fam Dupont Jean + Martin Marie\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := New(WithStrict(false), WithStreaming(true))

	first, err := p.ParseFile(bad)
	if err != nil {
		t.Fatalf("ParseFile(bad) error = %v", err)
	}
	if len(first.Problems) == 0 {
		t.Fatal("first parse recorded no problems")
	}

	second, err := p.ParseFile(good)
	if err != nil {
		t.Fatalf("ParseFile(good) error = %v", err)
	}
	if len(second.Problems) != 0 {
		t.Errorf("second parse inherited problems: %v", second.Problems)
	}
	if len(p.Warnings()) != 0 {
		t.Errorf("second parse inherited warnings: %v", p.Warnings())
	}
}
