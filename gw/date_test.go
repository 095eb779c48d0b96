package gw

import "testing"

func TestParseDateComplete(t *testing.T) {
	date, err := ParseDate("25/12/1990")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if date.Day != 25 || date.Month != 12 || date.Year != 1990 {
		t.Errorf("date = %d/%d/%d, want 25/12/1990", date.Day, date.Month, date.Year)
	}
	if !date.IsComplete() {
		t.Error("IsComplete() = false, want true")
	}
	if got := date.ISO(); got != "1990-12-25" {
		t.Errorf("ISO() = %q, want %q", got, "1990-12-25")
	}
}

func TestParseDatePartial(t *testing.T) {
	tests := []struct {
		input string
		day   int
		month int
		year  int
	}{
		{"12/1990", 0, 12, 1990},
		{"1990", 0, 0, 1990},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			date, err := ParseDate(tt.input)
			if err != nil {
				t.Fatalf("ParseDate() error = %v", err)
			}
			if date.Day != tt.day || date.Month != tt.month || date.Year != tt.year {
				t.Errorf("date = %d/%d/%d, want %d/%d/%d",
					date.Day, date.Month, date.Year, tt.day, tt.month, tt.year)
			}
			if !date.IsPartial() {
				t.Error("IsPartial() = false, want true")
			}
			if date.ISO() != "" {
				t.Errorf("ISO() = %q, want empty", date.ISO())
			}
		})
	}
}

func TestParseDatePrefixes(t *testing.T) {
	tests := []struct {
		input  string
		prefix DatePrefix
	}{
		{"~1850", PrefixAbout},
		{"?1850", PrefixMaybe},
		{"<1850", PrefixBefore},
		{">1850", PrefixAfter},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			date, err := ParseDate(tt.input)
			if err != nil {
				t.Fatalf("ParseDate() error = %v", err)
			}
			if date.Prefix != tt.prefix {
				t.Errorf("Prefix = %v, want %v", date.Prefix, tt.prefix)
			}
			if date.Year != 1850 {
				t.Errorf("Year = %d, want 1850", date.Year)
			}
		})
	}
}

func TestParseDateCalendars(t *testing.T) {
	tests := []struct {
		input    string
		calendar Calendar
	}{
		{"1700J", CalendarJulian},
		{"8F", CalendarFrenchRepublican},
		{"5450H", CalendarHebrew},
		{"1700", CalendarGregorian},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			date, err := ParseDate(tt.input)
			if err != nil {
				t.Fatalf("ParseDate() error = %v", err)
			}
			if date.Calendar != tt.calendar {
				t.Errorf("Calendar = %v, want %v", date.Calendar, tt.calendar)
			}
		})
	}
}

func TestParseDateDeathTypes(t *testing.T) {
	tests := []struct {
		input     string
		deathType DeathType
	}{
		{"k1916", DeathKilled},
		{"m1916", DeathMurdered},
		{"e1916", DeathExecuted},
		{"s1916", DeathDisappeared},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			date, err := ParseDate(tt.input)
			if err != nil {
				t.Fatalf("ParseDate() error = %v", err)
			}
			if date.DeathType != tt.deathType {
				t.Errorf("DeathType = %v, want %v", date.DeathType, tt.deathType)
			}
			if date.Year != 1916 {
				t.Errorf("Year = %d, want 1916", date.Year)
			}
		})
	}
}

func TestParseDateTextForm(t *testing.T) {
	date, err := ParseDate("0(deces de guerre)")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if date.Text != "deces de guerre" {
		t.Errorf("Text = %q, want %q", date.Text, "deces de guerre")
	}
	if got := date.String(); got != "0(deces de guerre)" {
		t.Errorf("String() = %q, want %q", got, "0(deces de guerre)")
	}
}

func TestParseDateUnknown(t *testing.T) {
	for _, input := range []string{"", "0"} {
		date, err := ParseDate(input)
		if err != nil {
			t.Fatalf("ParseDate(%q) error = %v", input, err)
		}
		if !date.Unknown {
			t.Errorf("ParseDate(%q).Unknown = false, want true", input)
		}
	}
}

func TestParseDateAlternatives(t *testing.T) {
	date, err := ParseDate("1850|1851")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if date.Prefix != PrefixOr {
		t.Errorf("Prefix = %v, want %v", date.Prefix, PrefixOr)
	}
	if date.Year != 1850 {
		t.Errorf("Year = %d, want 1850", date.Year)
	}
	if len(date.Alternatives) != 1 || date.Alternatives[0].Year != 1851 {
		t.Fatalf("Alternatives = %v, want one date with year 1851", date.Alternatives)
	}
}

func TestParseDateRange(t *testing.T) {
	date, err := ParseDate("1850..1860")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if date.Prefix != PrefixBetween {
		t.Errorf("Prefix = %v, want %v", date.Prefix, PrefixBetween)
	}
	if date.Year != 1850 {
		t.Errorf("Year = %d, want 1850", date.Year)
	}
	if len(date.Alternatives) != 1 || date.Alternatives[0].Year != 1860 {
		t.Fatalf("Alternatives = %v, want one date with year 1860", date.Alternatives)
	}
	if got := date.String(); got != "1850..1860" {
		t.Errorf("String() = %q, want %q", got, "1850..1860")
	}
}

func TestParseDateInvalid(t *testing.T) {
	tests := []string{
		"32/12/1990",
		"25/13/1990",
		"not-a-date",
		"1/2/3/4",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseDate(input); err == nil {
				t.Errorf("ParseDate(%q) error = nil, want error", input)
			}
		})
	}
}

func TestParseDateLenient(t *testing.T) {
	date := ParseDateLenient("32/12/1990")
	if !date.Unknown {
		t.Error("ParseDateLenient(invalid).Unknown = false, want true")
	}

	date = ParseDateLenient("25/12/1990")
	if date.Day != 25 {
		t.Errorf("Day = %d, want 25", date.Day)
	}
}

func TestDateStringRoundTrip(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"25/12/1990", "25/12/1990"},
		{"~1850", "~1850"},
		{"1700J", "1700J"},
		{"0", "0"},
		{"k1916", "k1916"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			date, err := ParseDate(tt.input)
			if err != nil {
				t.Fatalf("ParseDate() error = %v", err)
			}
			if got := date.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDateIsZero(t *testing.T) {
	if !(Date{}).IsZero() {
		t.Error("zero Date IsZero() = false, want true")
	}
	if (Date{Year: 1990}).IsZero() {
		t.Error("dated Date IsZero() = true, want false")
	}
	if (Date{Unknown: true}).IsZero() {
		t.Error("unknown Date IsZero() = true, want false")
	}
}
