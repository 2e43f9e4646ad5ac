// Package rules manages the conversion rules document: a map of pattern
// keys to [PatternConfig] values controlling the prefixes, codes, and kind
// tags used during transformation.
//
// Rules files are JSON or YAML. An absent file is not an error; the built-in
// default RuleSet is used instead. A present-but-malformed file is an error.
package rules
