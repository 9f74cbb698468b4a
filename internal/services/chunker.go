package services

import (
	"strings"
	"unicode/utf8"
)

// TextBounder trims free text down to a maximum size without cutting through
// sentences, so over-long resumes and job descriptions stay coherent when
// embedded.
type TextBounder interface {
	Bound(text string, maxChars int) string
}

type textBounder struct{}

func NewTextBounder() TextBounder {
	return &textBounder{}
}

// Bound implements TextBounder.
func (tb *textBounder) Bound(text string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return text
	}

	var kept strings.Builder

	// Prefer whole paragraphs, then whole sentences of the first paragraph
	// that no longer fits.
	paragraphs := strings.Split(text, "\n\n")
	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if kept.Len()+len(para)+2 <= maxChars {
			if kept.Len() > 0 {
				kept.WriteString("\n\n")
			}
			kept.WriteString(para)
			continue
		}

		for _, sentence := range splitIntoSentences(para) {
			if kept.Len()+len(sentence)+1 > maxChars {
				break
			}
			if kept.Len() > 0 {
				kept.WriteString(" ")
			}
			kept.WriteString(sentence)
		}
		break
	}

	if kept.Len() == 0 {
		// Single over-long sentence, cut at a rune boundary.
		return firstNRunes(text, maxChars)
	}

	return kept.String()
}

func splitIntoSentences(text string) []string {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var result []string
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s != "" {
			result = append(result, s)
		}
	}
	return result
}

func firstNRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[:n])
}
