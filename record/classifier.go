package record

import (
	"strconv"
	"strings"

	"github.com/arloliu/endfx/errs"
)

// Kind is the classification of one input line.
type Kind uint8

const (
	// KindSkip marks header, directory and section-metadata lines.
	KindSkip Kind = iota
	// KindSectionStart marks a sentinel line.
	KindSectionStart
	// KindData marks a line carrying tabulated values.
	KindData
)

func (k Kind) String() string {
	switch k {
	case KindSkip:
		return "Skip"
	case KindSectionStart:
		return "SectionStart"
	case KindData:
		return "Data"
	default:
		return "Unknown"
	}
}

// Line is one classified input record. Positional fields are populated for every
// kind; Fields is only populated for KindData.
type Line struct {
	Kind         Kind
	MaterialCode int
	FileNumber   int
	ReactionID   int
	LineNumber   int
	Fields       [FieldCount]string // trimmed raw numeric fields, "" when blank
	Source       int                // 1-based physical line number in the input
}

// State is the parsing state carried from one line to the next.
type State struct {
	// FileStarted becomes true at the first sentinel line; everything before it is
	// the file header.
	FileStarted bool
	// SectionJustStarted is set by a sentinel line and cleared by the consumer once
	// it accepts the first data line of the following section.
	SectionJustStarted bool
}

// Classify decides what the raw line text is, given the state accumulated so far.
//
// Rules are evaluated in order:
//  1. line number 99999: sentinel, returns KindSectionStart and sets both state flags
//  2. file number 0 or 1: KindSkip
//  3. before the first sentinel: KindSkip
//  4. line number <= 3: KindSkip
//  5. otherwise KindData with the six trimmed numeric fields
//
// Non-integer positional fields yield an error matching errs.ErrMalformedRecord.
// source is the 1-based physical line number, used for error reporting only.
func Classify(state State, source int, text string) (State, Line, error) {
	text = strings.TrimRight(text, "\r\n")

	line := Line{Kind: KindSkip, Source: source}

	var err error
	if line.MaterialCode, err = parseInt(text, source, "material_code", MaterialCodeStart, MaterialCodeEnd); err != nil {
		return state, Line{}, err
	}
	if line.FileNumber, err = parseInt(text, source, "file_number", FileNumberStart, FileNumberEnd); err != nil {
		return state, Line{}, err
	}
	if line.ReactionID, err = parseInt(text, source, "reaction_id", ReactionIDStart, ReactionIDEnd); err != nil {
		return state, Line{}, err
	}
	if line.LineNumber, err = parseInt(text, source, "line_number", LineNumberStart, LineNumberEnd); err != nil {
		return state, Line{}, err
	}

	switch {
	case line.LineNumber == SentinelLineNumber:
		state.FileStarted = true
		state.SectionJustStarted = true
		line.Kind = KindSectionStart
	case line.FileNumber == FileDirectory || line.FileNumber == FileDescriptive:
		// directory and descriptive text
	case !state.FileStarted:
		// file header
	case line.LineNumber <= HeaderLines:
		// section header
	default:
		line.Kind = KindData
		for i := range FieldCount {
			line.Fields[i] = strings.TrimSpace(column(text, i*FieldWidth, (i+1)*FieldWidth))
		}
	}

	return state, line, nil
}

func parseInt(text string, source int, name string, start, end int) (int, error) {
	raw := strings.TrimSpace(column(text, start, end))
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &errs.RecordError{Line: source, Column: name, Value: raw, Err: err}
	}

	return v, nil
}

// Classifier folds Classify over consecutive lines of one file and owns the
// resulting State. It is not safe for concurrent use.
type Classifier struct {
	state  State
	source int
}

// NewClassifier returns a Classifier positioned before the first line of a file.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Next classifies the next raw line.
func (c *Classifier) Next(text string) (Line, error) {
	c.source++
	next, line, err := Classify(c.state, c.source, text)
	if err != nil {
		return Line{}, err
	}
	c.state = next

	return line, nil
}

// Lines returns the number of lines classified so far, including a failed one.
func (c *Classifier) Lines() int {
	return c.source
}

// StartSection records a section start delivered outside Next, e.g. a Line
// classified elsewhere.
func (c *Classifier) StartSection() {
	c.state.FileStarted = true
	c.state.SectionJustStarted = true
}

// State returns the current parsing state.
func (c *Classifier) State() State {
	return c.state
}

// ClearSectionStart records that the first data line of the current section was
// accepted.
func (c *Classifier) ClearSectionStart() {
	c.state.SectionJustStarted = false
}
