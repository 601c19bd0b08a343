// Package modelout parses structured data out of language model
// responses. Models asked for JSON frequently wrap it in prose or
// markdown fences, so every call site expecting structure goes through
// the same tolerance ladder rather than hand-rolling its own.
package modelout

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoStructure indicates no parseable structure was found in the
// response at any rung of the ladder.
var ErrNoStructure = errors.New("no parseable structure in model output")

// StringArray extracts a []string from a model response.
//
// Ladder:
//  1. strict JSON array parse of the whole response
//  2. JSON array extracted from surrounding prose via bracket matching
//  3. split on commas, semicolons, and newlines
//
// Entries are trimmed; empty entries are dropped. Returns
// ErrNoStructure only when every rung yields nothing.
func StringArray(response string) ([]string, error) {
	response = strings.TrimSpace(stripFences(response))
	if response == "" {
		return nil, ErrNoStructure
	}

	if items, ok := parseJSONArray(response); ok {
		return items, nil
	}

	if inner, ok := bracketSlice(response, '[', ']'); ok {
		if items, ok := parseJSONArray(inner); ok {
			return items, nil
		}
	}

	items := splitDelimited(response)
	if len(items) == 0 {
		return nil, ErrNoStructure
	}
	return items, nil
}

// Object unmarshals a JSON object from a model response into v.
//
// Ladder:
//  1. strict JSON object parse of the whole response
//  2. JSON object extracted from surrounding prose via brace matching
//
// There is no delimiter fallback for objects: a response that carries
// no well-formed object fails with ErrNoStructure and the caller
// applies its own safe default.
func Object(response string, v any) error {
	response = strings.TrimSpace(stripFences(response))
	if response == "" {
		return ErrNoStructure
	}

	if err := json.Unmarshal([]byte(response), v); err == nil {
		return nil
	}

	if inner, ok := bracketSlice(response, '{', '}'); ok {
		if err := json.Unmarshal([]byte(inner), v); err == nil {
			return nil
		}
	}

	return ErrNoStructure
}

// parseJSONArray attempts a strict parse of a JSON array of scalars.
func parseJSONArray(s string) ([]string, bool) {
	var raw []any
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, false
	}
	items := make([]string, 0, len(raw))
	for _, entry := range raw {
		str, ok := entry.(string)
		if !ok {
			continue
		}
		if str = strings.TrimSpace(str); str != "" {
			items = append(items, str)
		}
	}
	return items, true
}

// bracketSlice returns the substring from the first open bracket to
// its matching close bracket, tracking nesting depth.
func bracketSlice(s string, open, closing byte) (string, bool) {
	start := strings.IndexByte(s, open)
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case inString:
			if c == '\\' {
				i++
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == open:
			depth++
		case c == closing:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// splitDelimited is the last rung: split on the delimiters models use
// when they ignore the JSON instruction.
func splitDelimited(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `"'`+"`")
		p = strings.TrimPrefix(p, "- ")
		if p != "" {
			items = append(items, p)
		}
	}
	return items
}

// stripFences removes a surrounding markdown code fence if present.
func stripFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		// Drop the language hint line (```json).
		first := trimmed[:idx]
		if len(first) < 16 && !strings.ContainsAny(first, "[{") {
			trimmed = trimmed[idx+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return trimmed
}
