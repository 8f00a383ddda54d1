// Package promptstyle decorates completion prompts with the house style for
// slide plan drafting.
package promptstyle

import (
	"strings"
	"unicode"
)

const marker = "DECKGEN_PROMPT_STYLE_V1"

type Mode string

const (
	ModeJSON Mode = "json"
	ModeText Mode = "text"
)

// ApplySystem prepends the style block to a system prompt. Prompts that
// already carry the marker are returned unchanged.
func ApplySystem(system string, mode Mode) string {
	base := strings.TrimSpace(system)
	if base == "" || strings.Contains(base, marker) {
		return base
	}

	lines := []string{
		marker,
		"You structure business documents into slide plans.",
		"Use the provided text as grounding; do not invent figures.",
	}
	switch Mode(strings.ToLower(strings.TrimSpace(string(mode)))) {
	case ModeJSON:
		lines = append(lines, "Return a single JSON object and nothing else. No code fences, no commentary.")
	default:
		lines = append(lines, "Be concise and structured.")
	}
	lines = append(lines, "---", base)
	return strings.Join(lines, "\n")
}

// LanguageHint names the language slide text should be written in, judged
// from the letters of content. It returns "" when nothing stands out.
func LanguageHint(content string) string {
	var kana, han, latin int
	for _, r := range content {
		switch {
		case unicode.In(r, unicode.Hiragana, unicode.Katakana):
			kana++
		case unicode.Is(unicode.Han, r):
			han++
		case unicode.In(r, unicode.Latin):
			latin++
		}
	}
	cjk := kana + han
	switch {
	case cjk == 0 && latin == 0:
		return ""
	case kana > 0 && cjk >= latin/4:
		return "Japanese"
	case han > 0 && kana == 0 && han >= latin/4:
		return "Chinese"
	case latin > 0 && cjk == 0:
		return "English"
	}
	return ""
}

// ApplyUser appends a language instruction to a user prompt when one can be
// inferred from content.
func ApplyUser(user, content string) string {
	lang := LanguageHint(content)
	if lang == "" {
		return user
	}
	return strings.TrimRight(user, "\n") + "\n\nWrite every title and text field in " + lang + "."
}
