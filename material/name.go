package material

import (
	"regexp"
	"strings"

	"github.com/arloliu/endfx/errs"
)

// NameLineIndex is the zero-based index of the header line carrying the material name.
const NameLineIndex = 5

// namePattern matches an element symbol, a dash and a mass number, optionally
// followed by the metastable marker, e.g. "H-1", "U-235" or "Am-242M".
var namePattern = regexp.MustCompile(`[A-Za-z]+-[0-9]+M?`)

// ExtractName returns the normalized material name found on the sixth line of lines.
//
// Returns a *errs.NameError matching errs.ErrAmbiguousMaterialName if there are fewer
// than six lines or the line does not hold exactly one name.
func ExtractName(lines []string) (string, error) {
	if len(lines) <= NameLineIndex {
		return "", &errs.NameError{}
	}

	return ExtractNameFromLine(lines[NameLineIndex])
}

// ExtractNameFromLine strips all spaces from line and returns the single name match,
// lower-cased.
func ExtractNameFromLine(line string) (string, error) {
	compact := strings.ReplaceAll(line, " ", "")

	matches := namePattern.FindAllString(compact, -1)
	if len(matches) != 1 {
		return "", &errs.NameError{Matches: matches}
	}

	return strings.ToLower(matches[0]), nil
}
