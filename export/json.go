package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/arloliu/endfx/errs"
	"github.com/arloliu/endfx/material"
)

// jsonIndent matches the four-space indentation of the reference exports.
const jsonIndent = "    "

type tableDoc struct {
	Energy       []float64 `json:"energy"`
	CrossSection []float64 `json:"cross_section"`
}

// EncodeJSON renders m as an indented JSON object keyed by reaction id.
//
// Parameters:
//   - m: The material whose tables are encoded
//
// Returns:
//   - []byte: The JSON document.
//   - error: An error for NaN or infinite values, which JSON cannot represent.
func EncodeJSON(m *material.Material) ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')

	first := true
	for id, table := range m.All() {
		if !first {
			compact.WriteByte(',')
		}
		first = false

		compact.WriteString(strconv.Quote(strconv.Itoa(id)))
		compact.WriteByte(':')
		if err := writeArrays(&compact, table); err != nil {
			return nil, fmt.Errorf("reaction %d: %w", id, err)
		}
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", jsonIndent); err != nil {
		return nil, err
	}
	out.WriteByte('\n')

	return out.Bytes(), nil
}

func writeArrays(buf *bytes.Buffer, table material.ReactionTable) error {
	buf.WriteString(`{"energy":`)
	if err := writeFloats(buf, table.Energy); err != nil {
		return err
	}
	buf.WriteString(`,"cross_section":`)
	if err := writeFloats(buf, table.CrossSection); err != nil {
		return err
	}
	buf.WriteByte('}')

	return nil
}

func writeFloats(buf *bytes.Buffer, vals []float64) error {
	scratch := make([]byte, 0, 32)
	buf.WriteByte('[')
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("unsupported value %v at index %d", v, i)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		scratch = appendFloat(scratch[:0], v)
		buf.Write(scratch)
	}
	buf.WriteByte(']')

	return nil
}

// WriteJSON writes the JSON encoding of m to w.
func WriteJSON(w io.Writer, m *material.Material) error {
	data, err := EncodeJSON(m)
	if err != nil {
		return err
	}
	_, err = w.Write(data)

	return err
}

// ReadJSON decodes a reaction table object, preserving key order.
//
// The returned material has no name.
//
// Parameters:
//   - r: The JSON document produced by WriteJSON
//
// Returns:
//   - *material.Material: The tables in document order.
//   - error: An error matching errs.ErrInvalidJSON for malformed documents,
//     non-integer keys, repeated keys or unequal array lengths.
func ReadJSON(r io.Reader) (*material.Material, error) {
	dec := json.NewDecoder(r)

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var tables []material.ReactionTable
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrInvalidJSON, err)
		}
		key, _ := tok.(string)
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q is not a reaction id", errs.ErrInvalidJSON, key)
		}

		var doc tableDoc
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: reaction %d: %w", errs.ErrInvalidJSON, id, err)
		}
		tables = append(tables, material.ReactionTable{ID: id, Energy: doc.Energy, CrossSection: doc.CrossSection})
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}

	m, err := material.New("", tables...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidJSON, err)
	}

	return m, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}

		return fmt.Errorf("%w: %w", errs.ErrInvalidJSON, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", errs.ErrInvalidJSON, want, tok)
	}

	return nil
}
