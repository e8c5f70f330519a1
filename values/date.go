// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package values

import (
	"fmt"
	"time"
)

// Date is a calendar day. TZID is informational for Time.
type Date struct {
	Year  int
	Month time.Month
	Day   int
	TZID  string
}

// DateTime is a wall clock instant. UTC is set by a trailing Z and takes
// precedence over TZID.
type DateTime struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
	Second int
	TZID   string
	UTC    bool
}

type Time struct {
	Hour   int
	Minute int
	Second int
	TZID   string
	UTC    bool
}

func tzid(params *Parameters) string {
	v, _ := params.Get("TZID")
	return v
}

// ParseDateFamily tries DATE-TIME, DATE and TIME in that order.
func ParseDateFamily(raw string, params *Parameters) (Value, error) {
	tz := tzid(params)
	switch {
	case isDateTimeShape(raw):
		return parseDateTime(raw, tz)
	case isDateShape(raw):
		return parseDate(raw, tz)
	case isTimeShape(raw):
		return parseTime(raw, tz)
	}
	return nil, &FormatError{Kind: KindDate, Raw: raw}
}

func isDigits(s string) bool {
	for x := 0; x < len(s); x = x + 1 {
		if s[x] < '0' || s[x] > '9' {
			return false
		}
	}
	return len(s) > 0
}

func isDateShape(raw string) bool {
	return len(raw) == 8 && isDigits(raw)
}

func isTimeShape(raw string) bool {
	switch len(raw) {
	case 6:
		return isDigits(raw)
	case 7:
		return isDigits(raw[:6]) && raw[6] == 'Z'
	default:
		return false
	}
}

func isDateTimeShape(raw string) bool {
	return len(raw) > 9 && isDateShape(raw[:8]) && raw[8] == 'T' && isTimeShape(raw[9:])
}

// atoi expects s to be digits only.
func atoi(s string) int {
	n := 0
	for x := 0; x < len(s); x = x + 1 {
		n = n*10 + int(s[x]-'0')
	}
	return n
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func parseDate(raw string, tz string) (Value, error) {
	if !isDateShape(raw) {
		return nil, &FormatError{Kind: KindDate, Raw: raw}
	}
	d, err := dateOf(raw, raw, KindDate)
	if err != nil {
		return nil, err
	}
	d.TZID = tz
	return d, nil
}

func dateOf(digits string, raw string, k Kind) (Date, error) {
	d := Date{Year: atoi(digits[0:4]), Month: time.Month(atoi(digits[4:6])), Day: atoi(digits[6:8])}
	if d.Month < time.January || d.Month > time.December {
		return Date{}, &FormatError{Kind: k, Raw: raw, Reason: "month out of range"}
	}
	if d.Day < 1 || d.Day > daysIn(d.Year, d.Month) {
		return Date{}, &FormatError{Kind: k, Raw: raw, Reason: "day out of range"}
	}
	return d, nil
}

func parseTime(raw string, tz string) (Value, error) {
	if !isTimeShape(raw) {
		return nil, &FormatError{Kind: KindTime, Raw: raw}
	}
	t, err := timeOf(raw, raw, KindTime)
	if err != nil {
		return nil, err
	}
	if !t.UTC {
		t.TZID = tz
	}
	return t, nil
}

// timeOf reads a 6 digit clock with an optional Z. raw is the full text
// reported on error.
func timeOf(clock string, raw string, k Kind) (Time, error) {
	t := Time{
		Hour:   atoi(clock[0:2]),
		Minute: atoi(clock[2:4]),
		Second: atoi(clock[4:6]),
		UTC:    len(clock) == 7,
	}
	switch {
	case t.Hour > 23:
		return Time{}, &FormatError{Kind: k, Raw: raw, Reason: "hour out of range"}
	case t.Minute > 59:
		return Time{}, &FormatError{Kind: k, Raw: raw, Reason: "minute out of range"}
	case t.Second > 60:
		return Time{}, &FormatError{Kind: k, Raw: raw, Reason: "second out of range"}
	}
	return t, nil
}

func parseDateTime(raw string, tz string) (Value, error) {
	if !isDateTimeShape(raw) {
		return nil, &FormatError{Kind: KindDateTime, Raw: raw}
	}
	d, err := dateOf(raw[:8], raw, KindDateTime)
	if err != nil {
		return nil, err
	}
	t, err := timeOf(raw[9:], raw, KindDateTime)
	if err != nil {
		return nil, err
	}
	dt := DateTime{
		Year:   d.Year,
		Month:  d.Month,
		Day:    d.Day,
		Hour:   t.Hour,
		Minute: t.Minute,
		Second: t.Second,
		UTC:    t.UTC,
	}
	if !dt.UTC {
		dt.TZID = tz
	}
	return dt, nil
}

func (self Date) format() string {
	return fmt.Sprintf("%04d%02d%02d", self.Year, int(self.Month), self.Day)
}

func (self Time) format() string {
	s := fmt.Sprintf("%02d%02d%02d", self.Hour, self.Minute, self.Second)
	if self.UTC {
		s = s + "Z"
	}
	return s
}

func (self DateTime) format() string {
	s := fmt.Sprintf("%04d%02d%02dT%02d%02d%02d", self.Year, int(self.Month), self.Day, self.Hour, self.Minute, self.Second)
	if self.UTC {
		s = s + "Z"
	}
	return s
}

func (self Date) String() string     { return self.format() }
func (self DateTime) String() string { return self.format() }
func (self Time) String() string     { return self.format() }

// location resolves the zone of a date family value. Values without a zone
// are floating and use the local zone.
func location(tz string, utc bool) (*time.Location, error) {
	switch {
	case utc:
		return time.UTC, nil
	case tz == "":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("unknown TZID %q: %w", tz, err)
	}
	return loc, nil
}

// Time returns midnight of the day in its zone.
func (self Date) Time() (time.Time, error) {
	loc, err := location(self.TZID, false)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(self.Year, self.Month, self.Day, 0, 0, 0, 0, loc), nil
}

func (self Date) UnixMilli() (int64, error) {
	t, err := self.Time()
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

func (self DateTime) Time() (time.Time, error) {
	loc, err := location(self.TZID, self.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(self.Year, self.Month, self.Day, self.Hour, self.Minute, self.Second, 0, loc), nil
}

func (self DateTime) UnixMilli() (int64, error) {
	t, err := self.Time()
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

// NewDateTime converts t into a DateTime. UTC instants keep the Z form.
func NewDateTime(t time.Time) DateTime {
	dt := DateTime{
		Year:   t.Year(),
		Month:  t.Month(),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
	switch loc := t.Location(); loc {
	case time.UTC:
		dt.UTC = true
	case time.Local:
	default:
		dt.TZID = loc.String()
	}
	return dt
}
