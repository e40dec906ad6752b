// Package diag carries diagnostics through the a2lkit pipeline.
//
// Lexical codes (LEX…) are best-effort notes: the lexer keeps going.
// Structural codes (STR…) are fatal: the block tree cannot be trusted past
// one. Extraction codes (EXT…) are fail-soft: one block is skipped, its
// siblings are still extracted.
package diag
