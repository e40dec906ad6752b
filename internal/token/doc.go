// Package token defines the token kinds produced by the a2lkit lexer.
//
// The A2L subset has no operators and no keywords beyond the /begin and
// /end block markers; everything that is not a literal or a marker is a
// bareword Ident.
package token
