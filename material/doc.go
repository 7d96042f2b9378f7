// Package material builds per-reaction cross-section tables from ENDF-6 records.
//
// A Builder consumes the lines of one file in order, folding them through
// record.Classify, and accumulates one ReactionTable per reaction identifier (MT).
// Finish hands the tables over as an immutable Material:
//
//	b, _ := material.NewBuilder()
//	for scanner.Scan() {
//	    if err := b.Feed(scanner.Text()); err != nil {
//	        return err
//	    }
//	}
//	mat := b.Finish(name)
//
// Two behaviours of the format are preserved exactly:
//
//   - A data line for a reaction that already has a table, arriving right after a
//     sentinel, belongs to a redundant restatement of that section and is skipped.
//   - Values on a line are interleaved energy, cross-section pairs. An unpaired
//     trailing energy is dropped so that Energy and CrossSection stay co-indexed.
//     Builder.Unpaired reports how many values were dropped.
//
// ExtractName recovers the normalized material identifier ("h-1", "u-235",
// "am-242m") from the sixth line of the file.
package material
