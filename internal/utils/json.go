package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Pre-compiled regexes for JSON extraction and repair (compiled once, used many times)
// NOTE: Repair is a narrow textual pass over known LLM mistakes, not a lenient parser:
// - Trailing commas before a closing brace/bracket
// - Single-quoted strings
// - Unquoted object keys
// - Raw newlines (which are invalid inside JSON strings)
var (
	// Interior of a ```json fenced block. The closing fence must start a line so
	// backticks inside a JSON string do not end the block. Non-greedy so a
	// second block is not swallowed.
	fencedJSONRegex = regexp.MustCompile("(?is)```json[ \\t]*\\r?\\n?(.*?)\\r?\\n[ \\t]*```")

	// Fix trailing commas before closing brace/bracket, a run of them at once
	trailingCommaRegex = regexp.MustCompile(`(?:,\s*)+([}\]])`)

	// Fix unquoted object keys: {key: -> {"key":
	// Only identifiers (letters, digits, _, $, -) directly after { or ,
	unquotedKeyRegex = regexp.MustCompile(`([{,]\s*)([A-Za-z_$][A-Za-z0-9_$-]*)(\s*:)`)

	// Newlines plus the indentation around them
	newlineRegex = regexp.MustCompile(`[ \t]*\r?\n\s*`)
)

// ExtractJSON pulls the JSON object out of a model reply. In priority order:
//  1. the interior of a ```json fenced block
//  2. the span from the first '{' to the last '}'
//  3. the trimmed reply itself
//
// It never fails; whether the result parses is decided by the caller.
func ExtractJSON(response string) string {
	return extract(response, '{', '}')
}

// ExtractJSONArray is ExtractJSON for replies whose payload is a top-level array.
func ExtractJSONArray(response string) string {
	return extract(response, '[', ']')
}

func extract(response string, open, close byte) string {
	if m := fencedJSONRegex.FindStringSubmatch(response); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}

	start := strings.IndexByte(response, open)
	end := strings.LastIndexByte(response, close)
	if start != -1 && end > start {
		return response[start : end+1]
	}

	return strings.TrimSpace(response)
}

// RepairJSON fixes the malformations LLMs commonly produce, in a fixed order:
// trailing commas, single-quoted strings, unquoted keys, raw newlines.
// Applying it to its own output is a no-op.
func RepairJSON(input string) string {
	result := input

	// 1. Strip trailing commas: ,} -> } and ,] -> ]
	result = replaceOutsideStrings(result, trailingCommaRegex, "$1")

	// 2. Convert single-quoted strings: 'value' -> "value"
	result = convertSingleQuotes(result)

	// 3. Quote bare keys: {key: -> {"key":
	result = replaceOutsideStrings(result, unquotedKeyRegex, `$1"$2"$3`)

	// 4. Collapse newlines so strings broken across lines become valid
	result = newlineRegex.ReplaceAllString(result, " ")

	return result
}

// ParseWithRepair runs parse on candidate and, if that fails, once more on
// RepairJSON(candidate). repaired reports whether the second attempt was the
// one that succeeded.
func ParseWithRepair[T any](candidate string, parse func([]byte) (T, error)) (result T, repaired bool, err error) {
	result, err = parse([]byte(candidate))
	if err == nil {
		return result, false, nil
	}

	fixed := RepairJSON(candidate)
	if fixed == candidate {
		return result, false, fmt.Errorf("parse JSON: %w", err)
	}

	result, err2 := parse([]byte(fixed))
	if err2 != nil {
		return result, false, fmt.Errorf("parse JSON: %w", errors.Join(err, fmt.Errorf("after repair: %w", err2)))
	}
	return result, true, nil
}

// replaceOutsideStrings applies re only to text that is not inside a
// double-quoted JSON string.
func replaceOutsideStrings(input string, re *regexp.Regexp, repl string) string {
	var sb strings.Builder
	sb.Grow(len(input))

	segStart := 0
	inString := false
	escaped := false

	for i := 0; i < len(input); i++ {
		c := input[i]
		if inString {
			if escaped {
				escaped = false
				continue
			}
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
				sb.WriteString(input[segStart : i+1])
				segStart = i + 1
			}
			continue
		}
		if c == '"' {
			sb.WriteString(re.ReplaceAllString(input[segStart:i], repl))
			segStart = i
			inString = true
		}
	}

	if inString {
		// Unterminated string: leave the tail untouched
		sb.WriteString(input[segStart:])
	} else {
		sb.WriteString(re.ReplaceAllString(input[segStart:], repl))
	}
	return sb.String()
}

// convertSingleQuotes rewrites 'single quoted' strings that appear outside
// double-quoted strings. Escaped single quotes are unescaped and bare double
// quotes inside are escaped. An unterminated single-quoted string is left as is.
func convertSingleQuotes(input string) string {
	if !strings.Contains(input, "'") {
		return input
	}

	var sb strings.Builder
	sb.Grow(len(input))

	inDouble := false
	escaped := false

	for i := 0; i < len(input); i++ {
		c := input[i]

		if inDouble {
			sb.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inDouble = false
			}
			continue
		}

		switch c {
		case '"':
			inDouble = true
			sb.WriteByte(c)
		case '\'':
			end := closingSingleQuote(input, i+1)
			if end == -1 {
				sb.WriteString(input[i:])
				return sb.String()
			}
			sb.WriteByte('"')
			sb.WriteString(requoteContent(input[i+1 : end]))
			sb.WriteByte('"')
			i = end
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String()
}

// closingSingleQuote returns the index of the unescaped ' that ends a string
// starting at from, or -1.
func closingSingleQuote(s string, from int) int {
	escaped := false
	for j := from; j < len(s); j++ {
		switch {
		case escaped:
			escaped = false
		case s[j] == '\\':
			escaped = true
		case s[j] == '\'':
			return j
		}
	}
	return -1
}

func requoteContent(content string) string {
	var sb strings.Builder
	sb.Grow(len(content) + 4)
	for i := 0; i < len(content); i++ {
		c := content[i]
		switch {
		case c == '\\' && i+1 < len(content) && content[i+1] == '\'':
			sb.WriteByte('\'')
			i++
		case c == '\\' && i+1 < len(content):
			sb.WriteByte(c)
			sb.WriteByte(content[i+1])
			i++
		case c == '"':
			sb.WriteString(`\"`)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
