package spectrum

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/endfx/errs"
)

// ParseReactionIDs parses a reaction id list such as "2,102-117".
//
// Elements are separated by commas (surrounding whitespace is ignored) and are
// either a single id or an inclusive range "first-last". Duplicates are removed,
// keeping the first occurrence. Returns an error matching errs.ErrInvalidReactionRange.
func ParseReactionIDs(spec string) ([]int, error) {
	var ids []int
	seen := make(map[int]struct{})
	add := func(id int) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("%w: empty element in %q", errs.ErrInvalidReactionRange, spec)
		}

		first, last, isRange := strings.Cut(part, "-")
		lo, err := parseID(first)
		if err != nil {
			return nil, err
		}
		if !isRange {
			add(lo)
			continue
		}

		hi, err := parseID(last)
		if err != nil {
			return nil, err
		}
		if hi < lo {
			return nil, fmt.Errorf("%w: descending range %q", errs.ErrInvalidReactionRange, part)
		}
		for id := lo; id <= hi; id++ {
			add(id)
		}
	}

	return ids, nil
}

// FormatReactionIDs renders ids compactly, collapsing consecutive runs into ranges.
// It is the inverse of ParseReactionIDs for sorted, duplicate-free input.
func FormatReactionIDs(ids []int) string {
	var sb strings.Builder
	for i := 0; i < len(ids); {
		j := i
		for j+1 < len(ids) && ids[j+1] == ids[j]+1 {
			j++
		}
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(ids[i]))
		if j > i {
			sb.WriteByte('-')
			sb.WriteString(strconv.Itoa(ids[j]))
		}
		i = j + 1
	}

	return sb.String()
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: %q is not a reaction id", errs.ErrInvalidReactionRange, s)
	}

	return id, nil
}
