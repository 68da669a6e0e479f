// Package dotenv parses the line-oriented ".env" key/value format and loads
// the result into an environment table.
//
// A document is parsed line by line. Blank lines and lines whose first
// non-whitespace character is '#' are ignored. Lines without a '=' are not
// assignments and are skipped silently. Lines shaped like KEY=value are
// validated strictly:
//
//   - the key must be non-empty and may not contain '#', '"', '\'' or
//     whitespace,
//   - a quoted value spans from its opening quote to the last character of
//     the line, taken verbatim (no escape processing),
//   - an unquoted value may not start with or contain whitespace.
//
// The first violating line aborts the whole parse; the returned ParseError
// carries the offending line verbatim together with the violated rule.
//
// Loading merges parsed variables into an envtable.Table: keys absent from
// the table are always set, keys already present are replaced only when the
// loader's override policy is on. The parsed variables are returned to the
// caller either way.
package dotenv
