// Package token defines lexical token kinds and trivia for Cymbol sources.
// Invariants:
//   - Token.Text is the lexeme as it appears in the source, except that
//     identifiers are NFC-normalised.
//   - Token.Span covers the lexeme exactly.
//   - Type names (int, float, void, bool) are keywords, so the parser can
//     tell declarations from expression statements with one token of lookahead.
package token
