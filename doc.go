// Package utf8lex is a Unicode-aware lexical analyzer library.
//
// Given a lexing specification -- an ordered list of named [rule.Rule]s,
// each bound to a [definition.Matcher] -- and an input byte stream
// assumed to be UTF-8 encoded, the rule package's Lex function produces
// a stream of [Token]s with precise multi-unit location information:
// bytes, Unicode scalar values, extended grapheme clusters, and logical
// lines.
//
// This package holds the data model the engine is built from: [Unit],
// [Location], [Buffer]/[Chain], and [State]/[Settings]. The engine
// itself (rule.Lex) is a pure function of a [State] plus a rule list;
// reading input and retrying on the "need more input" signal is the
// caller's job. See the streaming subpackage for a convenience wrapper
// over an io.Reader.
package utf8lex
