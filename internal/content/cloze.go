package content

import (
	"fmt"
	"strings"
)

// Cloze blank delimiters. A template like "HTTPS is HTTP over {{TLS}}"
// has one blank whose expected answer is "TLS".
const (
	blankOpen  = "{{"
	blankClose = "}}"
)

// ClozeTemplate is a parsed cloze template: literal text segments
// interleaved with blanks. Segments always has exactly one more entry
// than Answers, so the rendered form is
//
//	Segments[0] + blank(0) + Segments[1] + blank(1) + ... + Segments[n]
type ClozeTemplate struct {
	Segments []string
	Answers  []string
}

// Blanks returns the number of blanks in the template.
func (t ClozeTemplate) Blanks() int { return len(t.Answers) }

// ParseCloze splits a cloze template into literal segments and expected
// answers. An unbalanced delimiter or an empty blank is an error.
func ParseCloze(template string) (ClozeTemplate, error) {
	var parsed ClozeTemplate
	rest := template

	for {
		open := strings.Index(rest, blankOpen)
		if open < 0 {
			break
		}
		close := strings.Index(rest[open+len(blankOpen):], blankClose)
		if close < 0 {
			return ClozeTemplate{}, fmt.Errorf("unbalanced %q at offset %d", blankOpen, len(template)-len(rest)+open)
		}

		answer := rest[open+len(blankOpen) : open+len(blankOpen)+close]
		if strings.TrimSpace(answer) == "" {
			return ClozeTemplate{}, fmt.Errorf("empty blank at offset %d", len(template)-len(rest)+open)
		}

		parsed.Segments = append(parsed.Segments, rest[:open])
		parsed.Answers = append(parsed.Answers, answer)
		rest = rest[open+len(blankOpen)+close+len(blankClose):]
	}

	if strings.Contains(rest, blankClose) {
		return ClozeTemplate{}, fmt.Errorf("unbalanced %q in %q", blankClose, template)
	}

	parsed.Segments = append(parsed.Segments, rest)
	return parsed, nil
}

// Render reassembles the template with the given fill per blank. Blanks
// without a fill render as the placeholder. Used by the quiz screen to
// show partially completed templates.
func (t ClozeTemplate) Render(fills []string, placeholder string) string {
	var b strings.Builder
	for i, seg := range t.Segments {
		b.WriteString(seg)
		if i < len(t.Answers) {
			if i < len(fills) && fills[i] != "" {
				b.WriteString(fills[i])
			} else {
				b.WriteString(placeholder)
			}
		}
	}
	return b.String()
}
