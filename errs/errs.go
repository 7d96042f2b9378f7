// Package errs defines the sentinel errors returned by endfx packages.
//
// Callers match them with errors.Is. Typed errors such as RecordError and
// NameError carry positional detail and unwrap to the matching sentinel.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFileNotFound is returned when an input path does not resolve.
	ErrFileNotFound = errors.New("endf file not found")

	// ErrMalformedRecord is returned when a fixed-width field fails to decode.
	// The whole parse is abandoned; no partial material is returned.
	ErrMalformedRecord = errors.New("malformed endf record")

	// ErrAmbiguousMaterialName is returned when the header line yields zero or
	// more than one material name match.
	ErrAmbiguousMaterialName = errors.New("ambiguous material name")

	// ErrInvalidReactionRange is returned for unparsable reaction id lists.
	ErrInvalidReactionRange = errors.New("invalid reaction id range")

	// ErrInvalidCSV is returned when a cross-section CSV cannot be loaded.
	ErrInvalidCSV = errors.New("invalid cross-section csv")

	// ErrInvalidJSON is returned when a reaction table JSON document cannot be loaded.
	ErrInvalidJSON = errors.New("invalid reaction table json")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupportedCompression is returned for unknown compression types.
	ErrUnsupportedCompression = errors.New("unsupported compression type")
)

// RecordError describes a malformed field on a specific input line.
type RecordError struct {
	Line   int    // 1-based physical line number in the source
	Column string // logical column name, e.g. "line_number" or "field 3"
	Value  string // raw text that failed to decode
	Err    error  // underlying parse error, may be nil
}

func (e *RecordError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: line %d: %s %q", ErrMalformedRecord, e.Line, e.Column, e.Value)
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}

	return sb.String()
}

// Is reports whether target is ErrMalformedRecord.
func (e *RecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// NameError reports the matches found while extracting a material name.
type NameError struct {
	Matches []string
}

func (e *NameError) Error() string {
	if len(e.Matches) == 0 {
		return ErrAmbiguousMaterialName.Error() + ": no match"
	}

	return fmt.Sprintf("%s: %d matches %v", ErrAmbiguousMaterialName, len(e.Matches), e.Matches)
}

func (e *NameError) Is(target error) bool {
	return target == ErrAmbiguousMaterialName
}
