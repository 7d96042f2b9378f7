package record

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/endfx/errs"
)

// DecodeField converts one trimmed ENDF numeric field into a float64.
//
// The ENDF notation drops the exponent marker: "1.234560-3" means 1.23456e-3 and
// "6.022140+23" means 6.02214e23. Any explicit 'E'/'e' is removed first, then an 'e'
// is inserted before every sign that is not the leading mantissa sign.
//
// Returns ok=false for an empty field, which is "no value" rather than zero.
// Returns an error matching errs.ErrMalformedRecord if the result does not parse.
func DecodeField(field string) (value float64, ok bool, err error) {
	value, ok, err = decode(field)
	if err != nil {
		return 0, false, fmt.Errorf("%w: decode %q: %w", errs.ErrMalformedRecord, field, err)
	}

	return value, ok, nil
}

func decode(field string) (float64, bool, error) {
	if field == "" {
		return 0, false, nil
	}

	mantissa := strings.Map(func(r rune) rune {
		if r == 'E' || r == 'e' {
			return -1
		}

		return r
	}, field)

	var sb strings.Builder
	sb.Grow(len(mantissa) + 2)
	for i := 0; i < len(mantissa); i++ {
		ch := mantissa[i]
		if (ch == '+' || ch == '-') && i > 0 {
			sb.WriteByte('e')
		}
		sb.WriteByte(ch)
	}

	value, err := strconv.ParseFloat(sb.String(), 64)
	if err != nil {
		return 0, false, err
	}

	return value, true, nil
}

// Values decodes the line's numeric fields, skipping blank ones, and appends the
// results to dst in column order.
func (l Line) Values(dst []float64) ([]float64, error) {
	for i, field := range l.Fields {
		v, ok, err := decode(field)
		if err != nil {
			return dst, &errs.RecordError{
				Line:   l.Source,
				Column: "field " + strconv.Itoa(i+1),
				Value:  field,
				Err:    err,
			}
		}
		if ok {
			dst = append(dst, v)
		}
	}

	return dst, nil
}

// FormatValue renders v as an 11-character ENDF numeric field, e.g. " 1.000000-3".
//
// Exponents of one digit keep six decimals, two digits keep five and three digits
// keep four, so every value fits the field width. Non-finite values are rendered as
// blank fields.
func FormatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strings.Repeat(" ", FieldWidth)
	}

	for decimals := 6; decimals >= 0; decimals-- {
		s := strconv.FormatFloat(v, 'e', decimals, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[0]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		out := mantissa + string(sign) + digits
		if len(out) <= FieldWidth {
			return strings.Repeat(" ", FieldWidth-len(out)) + out
		}
	}

	return strings.Repeat(" ", FieldWidth)
}

// FormatRecord renders a complete 80-column ENDF record. Up to six values fill the
// numeric columns; missing values are left blank.
func FormatRecord(values []float64, materialCode, fileNumber, reactionID, lineNumber int) string {
	var sb strings.Builder
	sb.Grow(RecordWidth)
	for i := range FieldCount {
		if i < len(values) {
			sb.WriteString(FormatValue(values[i]))
		} else {
			sb.WriteString(strings.Repeat(" ", FieldWidth))
		}
	}
	fmt.Fprintf(&sb, "%4d%2d%3d%5d", materialCode, fileNumber, reactionID, lineNumber)

	return sb.String()
}
