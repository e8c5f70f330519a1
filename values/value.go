// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package values implements the typed property values of iCalendar content
// lines. Value is a closed set: every implementation lives in this package
// and Parse and Format are the only places that switch over it.
package values

import (
	"fmt"
	"strings"
)

// Kind names a value type as it appears in a VALUE parameter.
type Kind string

const (
	KindBinary     Kind = "BINARY"
	KindBoolean    Kind = "BOOLEAN"
	KindCalAddress Kind = "CAL-ADDRESS"
	KindDate       Kind = "DATE"
	KindDateTime   Kind = "DATE-TIME"
	KindDuration   Kind = "DURATION"
	KindFloat      Kind = "FLOAT"
	KindInteger    Kind = "INTEGER"
	KindPeriod     Kind = "PERIOD"
	KindRecur      Kind = "RECUR"
	KindText       Kind = "TEXT"
	KindTime       Kind = "TIME"
	KindURI        Kind = "URI"
	KindUTCOffset  Kind = "UTC-OFFSET"

	// KindDateFamily is not a registered type. Selecting it makes Parse pick
	// DATE-TIME, DATE or TIME from the shape of the raw text.
	KindDateFamily Kind = "DATE-FAMILY"
)

var registered = map[Kind]bool{
	KindBinary:     true,
	KindBoolean:    true,
	KindCalAddress: true,
	KindDate:       true,
	KindDateTime:   true,
	KindDuration:   true,
	KindFloat:      true,
	KindInteger:    true,
	KindPeriod:     true,
	KindRecur:      true,
	KindText:       true,
	KindTime:       true,
	KindURI:        true,
	KindUTCOffset:  true,
}

// Registered reports whether k may be named by a VALUE parameter.
func Registered(k Kind) bool {
	return registered[k]
}

type Value interface {
	Kind() Kind
	value()
}

// Opaque values are carried verbatim. Their internal grammar is not checked.
type (
	Binary     string
	CalAddress string
	Duration   string
	Float      string
	Integer    string
	Period     string
	Recur      string
	URI        string
	UTCOffset  string
)

func (Binary) Kind() Kind     { return KindBinary }
func (CalAddress) Kind() Kind { return KindCalAddress }
func (Duration) Kind() Kind   { return KindDuration }
func (Float) Kind() Kind      { return KindFloat }
func (Integer) Kind() Kind    { return KindInteger }
func (Period) Kind() Kind     { return KindPeriod }
func (Recur) Kind() Kind      { return KindRecur }
func (URI) Kind() Kind        { return KindURI }
func (UTCOffset) Kind() Kind  { return KindUTCOffset }

func (Binary) value()     {}
func (CalAddress) value() {}
func (Duration) value()   {}
func (Float) value()      {}
func (Integer) value()    {}
func (Period) value()     {}
func (Recur) value()      {}
func (URI) value()        {}
func (UTCOffset) value()  {}

// Boolean parses leniently: anything but "TRUE" is false.
type Boolean bool

func (Boolean) Kind() Kind { return KindBoolean }
func (Boolean) value()     {}

func (Text) Kind() Kind     { return KindText }
func (Text) value()         {}
func (Date) Kind() Kind     { return KindDate }
func (Date) value()         {}
func (DateTime) Kind() Kind { return KindDateTime }
func (DateTime) value()     {}
func (Time) Kind() Kind     { return KindTime }
func (Time) value()         {}

// FormatError is returned when raw text does not match the selected type.
type FormatError struct {
	Kind   Kind
	Raw    string
	Reason string
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("invalid %s format %q", strings.ToLower(string(e.Kind)), e.Raw)
	if e.Reason != "" {
		msg = msg + ": " + e.Reason
	}
	return msg
}

// Parse decodes raw as a value of kind k. params supplies the TZID of date
// family values and may be nil.
func Parse(k Kind, raw string, params *Parameters) (Value, error) {
	switch k {
	case KindBinary:
		return Binary(raw), nil
	case KindBoolean:
		return Boolean(raw == "TRUE"), nil
	case KindCalAddress:
		return CalAddress(raw), nil
	case KindDuration:
		return Duration(raw), nil
	case KindFloat:
		return Float(raw), nil
	case KindInteger:
		return Integer(raw), nil
	case KindPeriod:
		return Period(raw), nil
	case KindRecur:
		return Recur(raw), nil
	case KindURI:
		return URI(raw), nil
	case KindUTCOffset:
		return UTCOffset(raw), nil
	case KindText:
		return ParseText(raw), nil
	case KindDate:
		return parseDate(raw, tzid(params))
	case KindDateTime:
		return parseDateTime(raw, tzid(params))
	case KindTime:
		return parseTime(raw, tzid(params))
	case KindDateFamily:
		return ParseDateFamily(raw, params)
	default:
		return nil, fmt.Errorf("unknown value type %q", string(k))
	}
}

// ParseProperty selects the type for a property and parses raw with it.
func ParseProperty(name string, raw string, params *Parameters) (Value, error) {
	return Parse(Select(name, params), raw, params)
}

// Format encodes v as content line text.
func Format(v Value) string {
	switch v := v.(type) {
	case Binary:
		return string(v)
	case Boolean:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case CalAddress:
		return string(v)
	case Duration:
		return string(v)
	case Float:
		return string(v)
	case Integer:
		return string(v)
	case Period:
		return string(v)
	case Recur:
		return string(v)
	case URI:
		return string(v)
	case UTCOffset:
		return string(v)
	case Text:
		return formatText(v)
	case Date:
		return v.format()
	case DateTime:
		return v.format()
	case Time:
		return v.format()
	default:
		return ""
	}
}
