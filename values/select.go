// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package values

import "strings"

var defaults = map[string]Kind{
	"DTSTART":          KindDateFamily,
	"DTEND":            KindDateFamily,
	"DTSTAMP":          KindDateFamily,
	"DUE":              KindDateFamily,
	"RECURRENCE-ID":    KindDateFamily,
	"CREATED":          KindDateFamily,
	"LAST-MODIFIED":    KindDateFamily,
	"COMPLETED":        KindDateFamily,
	"DURATION":         KindDuration,
	"TRIGGER":          KindDuration,
	"RRULE":            KindRecur,
	"EXRULE":           KindRecur,
	"FREEBUSY":         KindPeriod,
	"URL":              KindURI,
	"TZURL":            KindURI,
	"ATTACH":           KindURI,
	"ATTENDEE":         KindCalAddress,
	"ORGANIZER":        KindCalAddress,
	"PRIORITY":         KindInteger,
	"SEQUENCE":         KindInteger,
	"PERCENT-COMPLETE": KindInteger,
	"REPEAT":           KindInteger,
	"GEO":              KindFloat,
	"TZOFFSETFROM":     KindUTCOffset,
	"TZOFFSETTO":       KindUTCOffset,
}

// Select picks the value type of a property: a registered VALUE parameter
// first, then the default for the property name, then TEXT.
func Select(name string, params *Parameters) Kind {
	if v, ok := params.Get("VALUE"); ok {
		if k := Kind(strings.ToUpper(v)); Registered(k) {
			return k
		}
	}
	if k, ok := defaults[strings.ToUpper(name)]; ok {
		return k
	}
	return KindText
}
