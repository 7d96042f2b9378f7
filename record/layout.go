package record

// Column layout of an ENDF-6 record, as half-open character offsets.
const (
	FieldWidth = 11 // width of one numeric field
	FieldCount = 6  // numeric fields per record

	FieldsEnd         = FieldWidth * FieldCount // end of the numeric area (66)
	MaterialCodeStart = 66
	MaterialCodeEnd   = 70
	FileNumberStart   = 70
	FileNumberEnd     = 72
	ReactionIDStart   = 72
	ReactionIDEnd     = 75
	LineNumberStart   = 75
	LineNumberEnd     = 81

	// RecordWidth is the width of a complete record including the line number.
	RecordWidth = LineNumberEnd
)

const (
	// SentinelLineNumber marks the logical start of data content (and the end of
	// every section in a well-formed file).
	SentinelLineNumber = 99999

	// HeaderLines is the number of leading lines of every section that hold
	// metadata and interpolation laws rather than data points.
	HeaderLines = 3

	// FileDirectory and FileDescriptive are the MF numbers of the directory and
	// general-information files, which carry no tabulated data.
	FileDirectory   = 0
	FileDescriptive = 1
)

// column returns text[start:end] clamped to the line length.
func column(text string, start, end int) string {
	if start >= len(text) {
		return ""
	}
	if end > len(text) {
		end = len(text)
	}

	return text[start:end]
}
