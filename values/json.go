// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package values

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

var opaqueTags = map[Kind]string{
	KindBinary:     "$Binary",
	KindCalAddress: "$CalAddress",
	KindDuration:   "$Duration",
	KindFloat:      "$Float",
	KindInteger:    "$Integer",
	KindPeriod:     "$Period",
	KindRecur:      "$Recur",
	KindURI:        "$URI",
	KindUTCOffset:  "$UTCOffset",
}

// ToJSON projects v into its tagged object form, for example
// {"$Text": "x"} or {"$Date": {"year": 2023, "month": 3, "day": 12}}.
func ToJSON(v Value) (*structpb.Value, error) {
	var tag string
	var body any
	switch v := v.(type) {
	case Text:
		tag = "$Text"
		if v.IsList() {
			items := make([]any, 0, len(v.items))
			for _, item := range v.items {
				items = append(items, item)
			}
			body = items
		} else {
			body = v.String()
		}
	case Boolean:
		tag = "$Boolean"
		body = bool(v)
	case Date:
		tag = "$Date"
		m := map[string]any{"year": v.Year, "month": int(v.Month), "day": v.Day}
		if v.TZID != "" {
			m["tzid"] = v.TZID
		}
		body = m
	case DateTime:
		tag = "$DateTime"
		m := map[string]any{
			"year":   v.Year,
			"month":  int(v.Month),
			"day":    v.Day,
			"hour":   v.Hour,
			"minute": v.Minute,
			"second": v.Second,
			"utc":    v.UTC,
		}
		if v.TZID != "" {
			m["tzid"] = v.TZID
		}
		body = m
	case Time:
		tag = "$Time"
		m := map[string]any{"hour": v.Hour, "minute": v.Minute, "second": v.Second, "utc": v.UTC}
		if v.TZID != "" {
			m["tzid"] = v.TZID
		}
		body = m
	case nil:
		return nil, fmt.Errorf("nil value")
	default:
		t, ok := opaqueTags[v.Kind()]
		if !ok {
			return nil, fmt.Errorf("no JSON form for %s", v.Kind())
		}
		tag = t
		body = Format(v)
	}
	return structpb.NewValue(map[string]any{tag: body})
}
