// Package batch converts many ENDF-6 files into material bundles.
//
// A Processor runs a bounded pool of workers over independent files. Each file is
// parsed, aggregated and exported in isolation, so one malformed evaluation is
// reported in its Result without stopping its siblings. A manifest stored in the
// output root records the fingerprint of every exported material; files whose
// tables have not changed since the last run are skipped.
//
// Watch keeps a Processor running against a directory and converts files as they
// appear or change.
package batch
