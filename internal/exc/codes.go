// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package exc

// Codes are grouped in families. The family decides the taxonomy reported by
// Exception.Error.
const (
	CodeUnknownFatal          = "I0000"
	CodeFileNotFound          = "I0001"
	CodePermissionDenied      = "I0002"
	CodeUnsupportedFileFormat = "I0003"

	CodeCharSyntax = "I0100"

	CodeExpectedToken         = "I0200"
	CodeInvalidToken          = "I0201"
	CodeUnterminatedComponent = "I0202"
	CodeUnmatchedEnd          = "I0203"
	CodeStrayProperty         = "I0204"
	CodeMissingComponent      = "I0205"

	CodeInvalidValue = "I0300"
)

// Taxonomy names the class of failure for a code.
func Taxonomy(code string) string {
	if len(code) < 3 {
		return "error"
	}
	switch code[:3] {
	case "I01":
		return "lexical error"
	case "I02":
		return "syntax error"
	case "I03":
		return "value error"
	default:
		return "error"
	}
}
