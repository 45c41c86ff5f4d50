package extractor

import (
	"fmt"
	"strings"
	"unicode"
)

// extractRTF strips RTF control words and group braces, keeping the
// document text. Handles \par/\line breaks and hex-escaped bytes.
func extractRTF(data []byte) (string, error) {
	src := string(data)
	if !strings.HasPrefix(src, `{\rtf`) {
		return "", fmt.Errorf("not an RTF document")
	}

	var b strings.Builder
	i := 0
	for i < len(src) {
		c := src[i]
		switch c {
		case '{', '}':
			i++
		case '\\':
			i++
			if i >= len(src) {
				break
			}
			switch {
			case src[i] == '\'' && i+2 < len(src):
				// Hex escape like \'e9; replaced with a space to keep
				// word boundaries without guessing the code page.
				b.WriteByte(' ')
				i += 3
			case src[i] == '\\' || src[i] == '{' || src[i] == '}':
				b.WriteByte(src[i])
				i++
			default:
				// Control word: letters then optional numeric parameter
				start := i
				for i < len(src) && isASCIILetter(src[i]) {
					i++
				}
				word := src[start:i]
				for i < len(src) && (src[i] == '-' || isASCIIDigit(src[i])) {
					i++
				}
				// One space after a control word is part of the word
				if i < len(src) && src[i] == ' ' {
					i++
				}
				if word == "par" || word == "line" {
					b.WriteByte('\n')
				}
			}
		case '\r', '\n':
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}

	extracted := cleanText(b.String())
	if extracted == "" {
		return "", fmt.Errorf("no text could be extracted from RTF")
	}

	return extracted, nil
}

// extractDOC salvages printable character runs from a legacy Word binary.
// Best effort only: runs shorter than four characters are discarded as
// binary noise.
func extractDOC(data []byte) (string, error) {
	var b strings.Builder
	var run strings.Builder

	flush := func() {
		if run.Len() >= 4 {
			b.WriteString(run.String())
			b.WriteByte('\n')
		}
		run.Reset()
	}

	for _, c := range string(data) {
		if c == '\r' || c == '\n' || unicode.IsPrint(c) && c < 0x250 {
			if c == '\r' || c == '\n' {
				flush()
			} else {
				run.WriteRune(c)
			}
		} else {
			flush()
		}
	}
	flush()

	extracted := cleanText(b.String())
	if extracted == "" {
		return "", fmt.Errorf("no text could be extracted from DOC")
	}

	return extracted, nil
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
