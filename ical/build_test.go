// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package ical

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/JonDotsoy/icalendar.go/internal/exc"
	"github.com/JonDotsoy/icalendar.go/syntax"
	"github.com/JonDotsoy/icalendar.go/values"
)

const scenario = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nBEGIN:VEVENT\r\nSUMMARY:Meet\r\nEND:VEVENT\r\nEND:VCALENDAR\r\n"

func TestParseScenario(t *testing.T) {
	t.Parallel()

	cal, err := Parse([]byte(scenario))
	require.NoError(t, err)
	require.Equal(t, "VCALENDAR", cal.Kind())
	require.Equal(t, "2.0", cal.Version())
	events := cal.Events()
	require.Len(t, events, 1)
	require.Len(t, cal.Components(), 1)
	summary, ok := events[0].Value("SUMMARY")
	require.True(t, ok)
	require.Equal(t, values.NewText("Meet"), summary)

	require.Equal(t, scenario, cal.ICS(WithFoldLimit(0)))
	require.Equal(t, scenario, cal.ICS())
}

func TestParseRoundTrip(t *testing.T) {
	t.Parallel()

	input := "BEGIN:VCALENDAR\r\n" +
		"PRODID:-//Example Corp.//CalDAV Client//EN\r\n" +
		"VERSION:2.0\r\n" +
		"BEGIN:VTIMEZONE\r\n" +
		"TZID:America/Santiago\r\n" +
		"BEGIN:STANDARD\r\n" +
		"DTSTART:19700405T000000\r\n" +
		"TZOFFSETFROM:-0300\r\n" +
		"TZOFFSETTO:-0400\r\n" +
		"END:STANDARD\r\n" +
		"END:VTIMEZONE\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:20230312T100000Z-123401@example.com\r\n" +
		"DTSTAMP:20230312T100000Z\r\n" +
		"DTSTART;TZID=America/Santiago:20230312T100000\r\n" +
		"DTEND;VALUE=DATE:20230313\r\n" +
		"ATTENDEE;CN=\"Doe, John\";ROLE=REQ-PARTICIPANT:mailto:john@example.com\r\n" +
		"SUMMARY:Planning meeting\\, second round\r\n" +
		"CATEGORIES:WORK,PLANNING\r\n" +
		"RRULE:FREQ=WEEKLY;COUNT=4\r\n" +
		"X-DONE;VALUE=BOOLEAN:TRUE\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n"

	cal, err := Parse([]byte(input))
	require.NoError(t, err)
	require.Equal(t, input, cal.ICS(WithFoldLimit(0)))

	event := cal.Events()[0]
	start, ok := event.Property("DTSTART")
	require.True(t, ok)
	require.Equal(t, values.DateTime{Year: 2023, Month: time.March, Day: 12, Hour: 10, TZID: "America/Santiago"}, start.Value)
	tz, _ := start.Parameters.Get("TZID")
	require.Equal(t, "America/Santiago", tz)

	end, _ := event.Value("DTEND")
	require.Equal(t, values.KindDate, end.Kind())
	categories, _ := event.Value("CATEGORIES")
	require.Equal(t, []string{"WORK", "PLANNING"}, categories.(values.Text).Items())
	done, _ := event.Value("X-DONE")
	require.Equal(t, values.Boolean(true), done)

	std := cal.ComponentsOf("VTIMEZONE")[0].ComponentsOf("STANDARD")[0]
	offset, _ := std.Value("TZOFFSETTO")
	require.Equal(t, values.UTCOffset("-0400"), offset)
}

func TestParseDateSelection(t *testing.T) {
	t.Parallel()

	cal, err := Parse([]byte("BEGIN:VCALENDAR\r\nBEGIN:VEVENT\r\nDTSTART:20230312\r\nEND:VEVENT\r\nEND:VCALENDAR\r\n"))
	require.NoError(t, err)
	v, _ := cal.Events()[0].Value("DTSTART")
	require.Equal(t, values.Date{Year: 2023, Month: time.March, Day: 12}, v)

	_, err = Parse([]byte("BEGIN:VCALENDAR\r\nBEGIN:VEVENT\r\nDTSTART;VALUE=DATE-TIME:20230312\r\nEND:VEVENT\r\nEND:VCALENDAR\r\n"))
	require.Error(t, err)
	var fe *values.FormatError
	require.True(t, errors.As(err, &fe))
	require.Equal(t, values.KindDateTime, fe.Kind)
}

func TestRepeatedPropertyLastWriteWins(t *testing.T) {
	t.Parallel()

	components, err := ParseComponents([]byte("BEGIN:VEVENT\r\n" +
		"ATTENDEE:mailto:a@example.com\r\n" +
		"SUMMARY:s\r\n" +
		"ATTENDEE;CN=B:mailto:b@example.com\r\n" +
		"END:VEVENT\r\n"))
	require.NoError(t, err)
	require.Len(t, components, 1)
	event := components[0]
	require.Equal(t, []string{"ATTENDEE", "SUMMARY"}, event.PropertyNames())
	p, ok := event.Property("ATTENDEE")
	require.True(t, ok)
	require.Equal(t, values.CalAddress("mailto:b@example.com"), p.Value)
	require.Equal(t, []string{"CN"}, p.Parameters.Keys())
}

func TestParseComponentsMultiple(t *testing.T) {
	t.Parallel()

	components, err := ParseComponents([]byte("BEGIN:VEVENT\r\nEND:VEVENT\r\nBEGIN:VTODO\r\nEND:VTODO\r\n"))
	require.NoError(t, err)
	require.Len(t, components, 2)
	require.Equal(t, "VEVENT", components[0].Kind())
	require.Equal(t, "VTODO", components[1].Kind())
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		code     string
		expected string
	}{
		{
			name:     "stray property",
			input:    "FOO:BIZ\r\n",
			code:     exc.CodeStrayProperty,
			expected: "/cal.ics: parse aborted with syntax error at 1:1: property FOO outside of a component",
		},
		{
			name:     "missing calendar",
			input:    "BEGIN:VEVENT\r\nEND:VEVENT\r\n",
			code:     exc.CodeMissingComponent,
			expected: "/cal.ics: parse aborted with syntax error at 1:1: missing component VCALENDAR",
		},
		{
			name:     "invalid date",
			input:    "BEGIN:VCALENDAR\r\nBEGIN:VEVENT\r\nDTSTART:2023\r\nEND:VEVENT\r\nEND:VCALENDAR\r\n",
			code:     exc.CodeInvalidValue,
			expected: "/cal.ics: parse aborted with value error at 3:9: DTSTART: invalid date format \"2023\"",
		},
		{
			name:     "mismatched end",
			input:    "BEGIN:VCALENDAR\r\nBEGIN:VEVENT\r\nEND:VTODO\r\n",
			code:     exc.CodeUnterminatedComponent,
			expected: "/cal.ics: parse aborted with syntax error at 3:1: expected END:`VEVENT`",
		},
		{
			name:     "control byte",
			input:    "BEGIN:VCALENDAR\r\n\x00",
			code:     exc.CodeCharSyntax,
			expected: "/cal.ics: parse aborted with lexical error at 2:1: char syntax error (0x00)",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			cal, err := Parse([]byte(testCase.input), WithURI("/cal.ics"))
			require.Nil(t, cal)
			require.EqualError(t, err, testCase.expected)
			var e Exception
			require.True(t, errors.As(err, &e))
			require.Equal(t, testCase.code, e.Code())
			require.Equal(t, "/cal.ics", e.Location().URI)
		})
	}
}

func TestFromSyntax(t *testing.T) {
	t.Parallel()

	m, err := syntax.Parse([]byte(scenario))
	require.NoError(t, err)
	components, err := FromSyntax(m)
	require.NoError(t, err)
	require.Len(t, components, 1)
	require.Equal(t, scenario, components[0].ICS())
}

func TestParseLogs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, err := Parse([]byte(scenario), WithLogger(logger), WithURI("/cal.ics"))
	require.NoError(t, err)
	require.Contains(t, buf.String(), "msg=\"lexed input\" uri=/cal.ics")
	require.Contains(t, buf.String(), "components=1")
}

func TestParseObservers(t *testing.T) {
	t.Parallel()

	var count int
	var tree *syntax.Module
	_, err := Parse([]byte(scenario),
		WithTokens(func(buf []byte, tokens []syntax.Token) { count = len(tokens) }),
		WithTree(func(m *syntax.Module) { tree = m }),
	)
	require.NoError(t, err)
	require.Greater(t, count, 0)
	require.NotNil(t, tree)
	require.Len(t, tree.Entries, 1)
}
