package command

import (
	"errors"
	"fmt"
	"unicode"
)

// SplitArgs splits a display-formatted command string into argv tokens using
// shell quoting rules: single quotes are literal, double quotes allow
// backslash escapes, and an unquoted backslash escapes the next character.
// A backslash before a newline is a line continuation and is dropped, so
// wrapped output from FormatArgs splits back into the original arguments.
// An unterminated quote or a trailing backslash is an error.
func SplitArgs(s string) ([]string, error) {
	var (
		tokens  []string
		current []rune
		quote   rune
		started bool
	)
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote == '\'':
			if r == '\'' {
				quote = 0
			} else {
				current = append(current, r)
			}
		case quote == '"':
			switch r {
			case '"':
				quote = 0
			case '\\':
				if i+1 >= len(runes) {
					return nil, errors.New("unterminated escape at end of input")
				}
				i++
				if runes[i] != '\n' {
					current = append(current, runes[i])
				}
			default:
				current = append(current, r)
			}
		case r == '\'' || r == '"':
			quote = r
			started = true
		case r == '\\':
			if i+1 >= len(runes) {
				return nil, errors.New("unterminated escape at end of input")
			}
			i++
			if runes[i] != '\n' {
				current = append(current, runes[i])
				started = true
			}
		case unicode.IsSpace(r):
			if started {
				tokens = append(tokens, string(current))
				current = current[:0]
				started = false
			}
		default:
			current = append(current, r)
			started = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if started {
		tokens = append(tokens, string(current))
	}
	return tokens, nil
}
