package material

import (
	"go.uber.org/zap"

	"github.com/arloliu/endfx/internal/options"
	"github.com/arloliu/endfx/record"
)

// headerLineCount is how many leading raw lines the builder keeps for name extraction.
const headerLineCount = NameLineIndex + 1

// Builder accumulates reaction tables from the lines of a single file.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	logger *zap.Logger

	classifier *record.Classifier
	header     []string

	order  []int
	tables map[int]*ReactionTable

	scratch    []float64
	unpaired   int
	duplicates int
}

// NewBuilder creates a Builder positioned before the first line of a file.
func NewBuilder(opts ...BuilderOption) (*Builder, error) {
	cfg := &builderConfig{logger: zap.NewNop()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	b := &Builder{logger: cfg.logger}
	b.Reset()

	return b, nil
}

// Reset discards all accumulated state so the builder can parse another file.
func (b *Builder) Reset() {
	b.classifier = record.NewClassifier()
	b.header = make([]string, 0, headerLineCount)
	b.order = nil
	b.tables = make(map[int]*ReactionTable)
	b.scratch = make([]float64, 0, record.FieldCount)
	b.unpaired = 0
	b.duplicates = 0
}

// Feed classifies the next raw line of the file and applies it.
//
// Returns an error matching errs.ErrMalformedRecord if the line cannot be decoded.
// The builder must not be fed further lines after an error.
func (b *Builder) Feed(text string) error {
	if len(b.header) < headerLineCount {
		b.header = append(b.header, text)
	}

	line, err := b.classifier.Next(text)
	if err != nil {
		return err
	}

	return b.Add(line)
}

// Add applies an already classified line.
func (b *Builder) Add(line record.Line) error {
	switch line.Kind {
	case record.KindSectionStart:
		b.classifier.StartSection()
		return nil
	case record.KindData:
		return b.addData(line)
	default:
		return nil
	}
}

func (b *Builder) addData(line record.Line) error {
	table, exists := b.tables[line.ReactionID]
	if !exists {
		table = &ReactionTable{ID: line.ReactionID}
		b.tables[line.ReactionID] = table
		b.order = append(b.order, line.ReactionID)
	} else if b.classifier.State().SectionJustStarted {
		b.duplicates++
		b.logger.Debug("skipping duplicate section line",
			zap.Int("reaction_id", line.ReactionID),
			zap.Int("line", line.Source))

		return nil
	}
	b.classifier.ClearSectionStart()

	vals, err := line.Values(b.scratch[:0])
	if err != nil {
		return err
	}
	b.scratch = vals

	pairs := len(vals) / 2
	for i := range pairs {
		table.Energy = append(table.Energy, vals[2*i])
		table.CrossSection = append(table.CrossSection, vals[2*i+1])
	}

	if len(vals)%2 != 0 {
		b.unpaired++
		b.logger.Debug("dropping unpaired trailing energy",
			zap.Int("reaction_id", line.ReactionID),
			zap.Int("line", line.Source),
			zap.Float64("energy", vals[len(vals)-1]))
	}

	return nil
}

// Finish returns the accumulated tables as an immutable Material named name and
// resets the builder.
func (b *Builder) Finish(name string) *Material {
	m := &Material{
		name:   name,
		order:  b.order,
		tables: make(map[int]ReactionTable, len(b.tables)),
	}
	for id, t := range b.tables {
		m.tables[id] = *t
	}
	b.Reset()

	return m
}

// Header returns the first raw lines fed to the builder, up to and including the
// line used for material name extraction.
func (b *Builder) Header() []string {
	return b.header
}

// Lines returns the number of lines fed so far.
func (b *Builder) Lines() int {
	return b.classifier.Lines()
}

// Unpaired returns how many unpaired trailing values were dropped.
func (b *Builder) Unpaired() int {
	return b.unpaired
}

// DuplicateLines returns how many data lines were skipped as part of a duplicate
// section restatement.
func (b *Builder) DuplicateLines() int {
	return b.duplicates
}
