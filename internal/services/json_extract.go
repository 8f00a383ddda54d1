package services

import (
	"strings"
)

// ExtractJSONObject returns the first balanced {...} object in text.
// Completion output often wraps the object in prose or a ```json fence;
// fenced content is preferred when present.
func ExtractJSONObject(text string) ([]byte, error) {
	for _, block := range fencedBlocks(text) {
		if obj, ok := firstObject(block); ok {
			return []byte(obj), nil
		}
	}
	if obj, ok := firstObject(text); ok {
		return []byte(obj), nil
	}
	return nil, ErrNoJSONObject
}

func fencedBlocks(text string) []string {
	var out []string
	rest := text
	for {
		start := strings.Index(rest, "```")
		if start < 0 {
			return out
		}
		rest = rest[start+3:]
		// skip the info string (e.g. "json")
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 && !strings.Contains(rest[:nl], "{") {
			rest = rest[nl+1:]
		}
		end := strings.Index(rest, "```")
		if end < 0 {
			return append(out, rest)
		}
		out = append(out, rest[:end])
		rest = rest[end+3:]
	}
}

// firstObject scans for the first '{' whose matching '}' closes it, with
// braces inside JSON strings ignored.
func firstObject(s string) (string, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] != '{' {
			continue
		}
		if end, ok := matchBrace(s, i); ok {
			return s[i : end+1], true
		}
	}
	return "", false
}

func matchBrace(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
