// Package extract turns generic block trees into typed calibration records.
//
// Each exported extractor reads one block kind; Assemble drives them over a
// whole tree. Extraction is deliberately permissive: missing trailing fields
// stay at zero values and unknown keywords are skipped, because real files
// from different emitters disagree on which optional parts they write.
package extract
