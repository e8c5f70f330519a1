// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package values

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestToJSON(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		value    Value
		expected map[string]any
	}{
		{
			name:     "scalar text",
			value:    NewText("Meet"),
			expected: map[string]any{"$Text": "Meet"},
		},
		{
			name:     "text list",
			value:    NewTextList("a", "b"),
			expected: map[string]any{"$Text": []any{"a", "b"}},
		},
		{
			name:     "boolean",
			value:    Boolean(true),
			expected: map[string]any{"$Boolean": true},
		},
		{
			name:  "date",
			value: Date{Year: 2023, Month: time.March, Day: 12},
			expected: map[string]any{"$Date": map[string]any{
				"year": float64(2023), "month": float64(3), "day": float64(12),
			}},
		},
		{
			name:  "date-time",
			value: DateTime{Year: 2023, Month: time.March, Day: 12, Hour: 10, TZID: "America/Santiago"},
			expected: map[string]any{"$DateTime": map[string]any{
				"year": float64(2023), "month": float64(3), "day": float64(12),
				"hour": float64(10), "minute": float64(0), "second": float64(0),
				"utc": false, "tzid": "America/Santiago",
			}},
		},
		{
			name:  "time",
			value: Time{Hour: 8, UTC: true},
			expected: map[string]any{"$Time": map[string]any{
				"hour": float64(8), "minute": float64(0), "second": float64(0), "utc": true,
			}},
		},
		{
			name:     "opaque",
			value:    UTCOffset("-0300"),
			expected: map[string]any{"$UTCOffset": "-0300"},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			v, err := ToJSON(testCase.value)
			require.NoError(t, err)
			require.Equal(t, testCase.expected, v.GetStructValue().AsMap())
		})
	}

	_, err := ToJSON(nil)
	require.Error(t, err)
}
