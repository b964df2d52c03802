package service

import "strings"

// ParsedCommand is a console line split into its command key and up to
// two raw argument tokens.
type ParsedCommand struct {
	Key    string // first two words joined by one space
	Value1 string
	Value2 string
}

// Tokenize splits line on whitespace. Words past the fourth are ignored;
// missing words are empty strings.
func Tokenize(line string) ParsedCommand {
	var w [4]string
	copy(w[:], strings.Fields(line))
	return ParsedCommand{
		Key:    w[0] + " " + w[1],
		Value1: w[2],
		Value2: w[3],
	}
}
