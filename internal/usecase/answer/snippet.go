package answer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Snippet formatting limits.
const (
	snippetMaxLength  = 420
	minTruncateRatio  = 0.7
	minContentLength  = 50
	ellipsisReserve   = 5
	untitledDocument = "Documento sem título"
)

var sentenceSeparators = []string{". ", "! ", "? ", ".\n", "!\n", "?\n", "\n\n"}

// BuildSnippet renders a source preview in the form
// "[DEPT] [Section] **Title** content…". Department "GERAL" is not
// highlighted; content is truncated at the nearest sentence boundary.
func BuildSnippet(title, content string, metadata map[string]string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = snippetMaxLength
	}
	if title == "" {
		title = untitledDocument
	}

	var parts []string
	if h := buildHighlights(metadata); h != "" {
		parts = append(parts, h)
	}
	parts = append(parts, fmt.Sprintf("**%s**", title))

	headerLength := len(strings.Join(parts, " "))
	available := maxLength - headerLength - ellipsisReserve
	if content != "" && available > minContentLength {
		parts = append(parts, truncateAtSentence(content, available))
	}
	return strings.Join(parts, " ")
}

func buildHighlights(metadata map[string]string) string {
	var highlights []string
	if dept := metadata["department"]; dept != "" && !strings.EqualFold(dept, "GERAL") {
		highlights = append(highlights, fmt.Sprintf("[%s]", dept))
	}
	section := metadata["section"]
	if section == "" {
		section = metadata["source_section"]
	}
	if strings.TrimSpace(section) != "" {
		highlights = append(highlights, fmt.Sprintf("[%s]", section))
	}
	return strings.Join(highlights, " ")
}

// truncateAtSentence cuts text at the last sentence boundary within
// maxLength, falling back to a word boundary and then a hard cut. The
// cut never lands below 70% of maxLength.
func truncateAtSentence(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}
	cut := maxLength
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	truncated := text[:cut]
	minLength := int(float64(maxLength) * minTruncateRatio)

	for _, sep := range sentenceSeparators {
		if pos := strings.LastIndex(truncated, sep); pos > minLength {
			return strings.TrimSpace(truncated[:pos+len(sep)])
		}
	}
	if pos := strings.LastIndex(truncated, " "); pos > minLength {
		return strings.TrimSpace(truncated[:pos]) + "..."
	}
	return strings.TrimRight(truncated, " \t\n") + "..."
}
