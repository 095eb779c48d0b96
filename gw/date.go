package gw

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DatePrefix qualifies how precisely a date is known.
type DatePrefix int

const (
	PrefixNone    DatePrefix = iota
	PrefixAbout              // ~25/12/1990
	PrefixMaybe              // ?25/12/1990
	PrefixBefore             // <25/12/1990
	PrefixAfter              // >25/12/1990
	PrefixOr                 // 1990|1991
	PrefixBetween            // 1990..1995
)

var datePrefixSymbols = map[DatePrefix]string{
	PrefixAbout:   "~",
	PrefixMaybe:   "?",
	PrefixBefore:  "<",
	PrefixAfter:   ">",
	PrefixOr:      "|",
	PrefixBetween: "..",
}

func (p DatePrefix) String() string { return datePrefixSymbols[p] }

// Calendar selects the calendar a date is expressed in, marked by a
// trailing letter in the source.
type Calendar int

const (
	CalendarGregorian Calendar = iota
	CalendarJulian
	CalendarFrenchRepublican
	CalendarHebrew
)

var calendarSuffixes = map[Calendar]string{
	CalendarJulian:           "J",
	CalendarFrenchRepublican: "F",
	CalendarHebrew:           "H",
}

func (c Calendar) String() string { return calendarSuffixes[c] }

// DeathType marks a violent or uncertain death, written as a letter
// prefix on the death date.
type DeathType int

const (
	DeathNormal DeathType = iota
	DeathKilled
	DeathMurdered
	DeathExecuted
	DeathDisappeared
)

var deathTypeSymbols = map[DeathType]string{
	DeathKilled:      "k",
	DeathMurdered:    "m",
	DeathExecuted:    "e",
	DeathDisappeared: "s",
}

func (t DeathType) String() string { return deathTypeSymbols[t] }

// Date is a genealogical date: possibly partial, possibly approximate,
// possibly pure text. Zero Day, Month or Year means the component is
// absent.
type Date struct {
	Day   int
	Month int
	Year  int

	Prefix   DatePrefix
	Calendar Calendar

	// Alternatives holds the other dates of an "or" form, or the end
	// bound of a "between" form.
	Alternatives []Date

	// Text carries the free-text form 0(...), parentheses stripped.
	Text string

	DeathType DeathType

	// Unknown marks a date slot that was present but empty, "0" in
	// the source.
	Unknown bool
}

var textDateRe = regexp.MustCompile(`^0\((.+)\)$`)

// ParseDate parses a GeneWeb date literal: [~?<>][kmes]D/M/Y with an
// optional trailing calendar letter, partial M/Y and Y forms, the
// unknown form "0", the text form "0(...)" and the alternative forms
// joined by "|" or "..".
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return Date{Unknown: true}, nil
	}

	if m := textDateRe.FindStringSubmatch(s); m != nil {
		return Date{Text: m[1]}, nil
	}

	var date Date

	switch {
	case strings.HasPrefix(s, "~"):
		date.Prefix = PrefixAbout
		s = s[1:]
	case strings.HasPrefix(s, "?"):
		date.Prefix = PrefixMaybe
		s = s[1:]
	case strings.HasPrefix(s, "<"):
		date.Prefix = PrefixBefore
		s = s[1:]
	case strings.HasPrefix(s, ">"):
		date.Prefix = PrefixAfter
		s = s[1:]
	}

	switch {
	case strings.HasPrefix(s, "k"):
		date.DeathType = DeathKilled
		s = s[1:]
	case strings.HasPrefix(s, "m"):
		date.DeathType = DeathMurdered
		s = s[1:]
	case strings.HasPrefix(s, "e"):
		date.DeathType = DeathExecuted
		s = s[1:]
	case strings.HasPrefix(s, "s"):
		date.DeathType = DeathDisappeared
		s = s[1:]
	}

	switch {
	case strings.HasSuffix(s, "J"):
		date.Calendar = CalendarJulian
		s = s[:len(s)-1]
	case strings.HasSuffix(s, "F"):
		date.Calendar = CalendarFrenchRepublican
		s = s[:len(s)-1]
	case strings.HasSuffix(s, "H"):
		date.Calendar = CalendarHebrew
		s = s[:len(s)-1]
	}

	if strings.Contains(s, "|") {
		date.Prefix = PrefixOr
		parts := strings.Split(s, "|")
		s = parts[0]
		for _, part := range parts[1:] {
			alt, err := ParseDate(strings.TrimSpace(part))
			if err != nil {
				return Date{}, err
			}
			date.Alternatives = append(date.Alternatives, alt)
		}
	} else if strings.Contains(s, "..") {
		date.Prefix = PrefixBetween
		parts := strings.SplitN(s, "..", 2)
		s = parts[0]
		if len(parts) == 2 && parts[1] != "" {
			endYear, err := strconv.Atoi(parts[1])
			if err != nil {
				return Date{}, fmt.Errorf("invalid range end %q", parts[1])
			}
			date.Alternatives = append(date.Alternatives, Date{Year: endYear})
		}
	}

	if err := date.parseComponents(s); err != nil {
		return Date{}, err
	}
	if err := date.validate(); err != nil {
		return Date{}, err
	}
	return date, nil
}

// ParseDateLenient parses like ParseDate but degrades unparseable
// input to an unknown date instead of failing.
func ParseDateLenient(s string) Date {
	date, err := ParseDate(s)
	if err != nil {
		return Date{Unknown: true}
	}
	return date
}

func (d *Date) parseComponents(s string) error {
	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		switch len(parts) {
		case 3:
			d.Day = atoiOrZero(parts[0])
			d.Month = atoiOrZero(parts[1])
			d.Year = atoiOrZero(parts[2])
			if d.Day == 0 && d.Month == 0 && d.Year == 0 {
				*d = Date{Unknown: true}
			}
			return nil
		case 2:
			d.Month = atoiOrZero(parts[0])
			d.Year = atoiOrZero(parts[1])
			if d.Month == 0 && d.Year == 0 {
				*d = Date{Unknown: true}
			}
			return nil
		}
		return fmt.Errorf("unrecognized date format %q", s)
	}

	year, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("unrecognized date format %q", s)
	}
	d.Year = year
	return nil
}

func (d Date) validate() error {
	if d.Day < 0 || d.Day > 31 {
		return fmt.Errorf("invalid day %d", d.Day)
	}
	if d.Month < 0 || d.Month > 12 {
		return fmt.Errorf("invalid month %d", d.Month)
	}
	if d.Year < 0 {
		return fmt.Errorf("invalid year %d", d.Year)
	}
	return nil
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// IsZero reports whether no date information at all was recorded.
func (d Date) IsZero() bool {
	return !d.Unknown && d.Text == "" && d.Day == 0 && d.Month == 0 && d.Year == 0 &&
		d.Prefix == PrefixNone && len(d.Alternatives) == 0
}

// IsComplete reports whether day, month and year are all present.
func (d Date) IsComplete() bool {
	return d.Day != 0 && d.Month != 0 && d.Year != 0
}

// IsPartial reports whether the date has a year but lacks a day or a
// month.
func (d Date) IsPartial() bool {
	if d.Unknown || d.Text != "" {
		return false
	}
	return d.Year != 0 && (d.Day == 0 || d.Month == 0)
}

// ISO renders the date as YYYY-MM-DD, or "" when it is not complete.
func (d Date) ISO() string {
	if !d.IsComplete() || d.Unknown {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// String renders the date back in source form.
func (d Date) String() string {
	if d.Text != "" {
		return "0(" + d.Text + ")"
	}
	if d.Unknown {
		return "0"
	}

	var b strings.Builder
	if d.Prefix != PrefixOr && d.Prefix != PrefixBetween {
		b.WriteString(d.Prefix.String())
	}
	b.WriteString(d.DeathType.String())

	var parts []string
	if d.Day != 0 {
		parts = append(parts, fmt.Sprintf("%02d", d.Day))
	}
	if d.Month != 0 {
		parts = append(parts, fmt.Sprintf("%02d", d.Month))
	}
	if d.Year != 0 {
		parts = append(parts, fmt.Sprintf("%04d", d.Year))
	}
	b.WriteString(strings.Join(parts, "/"))
	b.WriteString(d.Calendar.String())

	switch d.Prefix {
	case PrefixOr:
		for _, alt := range d.Alternatives {
			b.WriteString("|")
			b.WriteString(alt.String())
		}
	case PrefixBetween:
		if len(d.Alternatives) > 0 {
			fmt.Fprintf(&b, "..%d", d.Alternatives[0].Year)
		}
	}
	return b.String()
}
