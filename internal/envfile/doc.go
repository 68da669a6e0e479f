// Package envfile edits env files in place.
//
// Unlike package dotenv, which parses whole documents strictly, envfile
// works line by line on files that humans edit: it preserves untouched
// lines, comments and formatting, tolerates indentation around keys, and
// understands ` #` inline comments when reading values.
//
// Key operations:
//
//   - Get/Set: Retrieve and modify variables
//   - GetLine/GetLiteral: Access full definitions including quotes and comments
//   - Keys: Enumerate all variables in a file
//   - MergeNewOnly: Merge variables from one file to another, skipping existing ones
//
// Writes go through an advisory file lock so concurrent invocations do not
// interleave partial rewrites.
package envfile
