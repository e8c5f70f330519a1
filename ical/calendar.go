// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package ical

import (
	"time"

	"github.com/google/uuid"

	"github.com/JonDotsoy/icalendar.go/values"
)

const (
	KindCalendar = "VCALENDAR"
	KindEvent    = "VEVENT"
)

// Calendar is a VCALENDAR component with calendar level accessors.
type Calendar struct {
	*Component
}

func NewCalendar() *Calendar {
	return &Calendar{Component: Create(KindCalendar)}
}

// ICS renders the calendar folded at DefaultFoldLimit unless overridden.
func (self *Calendar) ICS(opts ...SerializeOption) string {
	cfg := &serializeConfig{foldLimit: DefaultFoldLimit}
	for _, opt := range opts {
		opt(cfg)
	}
	lines := self.Lines()
	for x, line := range lines {
		lines[x] = Fold(line, cfg.foldLimit)
	}
	return joinLines(lines)
}

func (self *Calendar) text(name string) string {
	v, ok := self.Value(name)
	if !ok || v == nil {
		return ""
	}
	if t, ok := v.(values.Text); ok {
		return t.String()
	}
	return values.Format(v)
}

func (self *Calendar) ProdID() string      { return self.text("PRODID") }
func (self *Calendar) Version() string     { return self.text("VERSION") }
func (self *Calendar) CalScale() string    { return self.text("CALSCALE") }
func (self *Calendar) Method() string      { return self.text("METHOD") }
func (self *Calendar) Name() string        { return self.text("X-WR-CALNAME") }
func (self *Calendar) Description() string { return self.text("X-WR-CALDESC") }
func (self *Calendar) Timezone() string    { return self.text("X-WR-TIMEZONE") }

func (self *Calendar) SetProdID(prodID string) *Calendar {
	self.Set("PRODID", values.NewText(prodID))
	return self
}

func (self *Calendar) SetVersion(version string) *Calendar {
	self.Set("VERSION", values.NewText(version))
	return self
}

func (self *Calendar) Events() []*Component {
	return self.ComponentsOf(KindEvent)
}

// AddEvent appends a VEVENT with the given UID and a DTSTAMP of now. An
// empty uid is replaced by a random UUID.
func (self *Calendar) AddEvent(uid string) *Component {
	if uid == "" {
		uid = uuid.NewString()
	}
	event := Create(KindEvent).
		Set("UID", values.NewText(uid)).
		Set("DTSTAMP", values.NewDateTime(time.Now().UTC()))
	self.AddComponent(event)
	return event
}

type instant interface {
	Time() (time.Time, error)
}

func (self *Component) instant(name string) (time.Time, bool) {
	v, ok := self.Value(name)
	if !ok {
		return time.Time{}, false
	}
	i, ok := v.(instant)
	if !ok {
		return time.Time{}, false
	}
	t, err := i.Time()
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Between returns the children of kind whose [DTSTART, DTEND) interval, or
// [DTSTART, DUE) for to-dos, overlaps [start, end). A child without an end
// matches when its start lies in the range. Children without a usable
// DTSTART never match.
func (self *Calendar) Between(kind string, start time.Time, end time.Time) []*Component {
	var out []*Component
	for _, child := range self.ComponentsOf(kind) {
		s, ok := child.instant("DTSTART")
		if !ok {
			continue
		}
		e, hasEnd := child.instant("DTEND")
		if !hasEnd {
			e, hasEnd = child.instant("DUE")
		}
		if hasEnd {
			if s.Before(end) && e.After(start) {
				out = append(out, child)
			}
			continue
		}
		if !s.Before(start) && s.Before(end) {
			out = append(out, child)
		}
	}
	return out
}
