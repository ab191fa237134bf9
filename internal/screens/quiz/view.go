package quiz

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/asheem/quizdeck/internal/content"
	"github.com/asheem/quizdeck/internal/ui/components"
	"github.com/asheem/quizdeck/internal/ui/layout"
	"github.com/asheem/quizdeck/internal/ui/theme"
)

func (q *QuizScreen) View(width, height int) string {
	if q.quitConfirm {
		return layout.Center(
			theme.Card.Render("Quit this quiz?\n\nYour progress will be lost."),
			width, height,
		)
	}

	item := q.sess.Current()
	if item == nil {
		return ""
	}

	var b strings.Builder

	// Deck position bar.
	bar := components.ProgressBar{
		Percent: float64(q.sess.Index()) / float64(q.sess.Total()),
		Width:   min(width-8, 60),
	}
	b.WriteString("  " + bar.View() + "\n\n")

	// Prompt.
	prompt := promptFor(item)
	b.WriteString("  " + theme.Body.Bold(true).Render(prompt) + "\n\n")

	// Response area.
	var response string
	switch item.(type) {
	case content.ChoiceItem:
		response = q.choices.View()
	case content.RecallCard:
		response = "  " + q.input.View()
	case content.ClozeItem:
		response = indent(q.blanks.View(), "  ")
	}
	b.WriteString(response + "\n")

	// Feedback after submission.
	if q.sess.Submitted() {
		b.WriteString("\n" + q.feedbackView(item) + "\n")
	}

	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func (q *QuizScreen) feedbackView(item content.Item) string {
	var line string
	if q.lastResult.Correct {
		line = theme.Correct.Render("  Correct ✓")
	} else {
		line = theme.Incorrect.Render("  Not quite ✗") +
			theme.Body.Render("  Expected: "+q.lastResult.Expected)
	}

	if expl := explanationFor(item); expl != "" {
		line += "\n" + theme.Hint.Render("  "+expl)
	}
	return line
}

func promptFor(item content.Item) string {
	switch it := item.(type) {
	case content.ChoiceItem:
		return it.Question
	case content.RecallCard:
		return it.Front
	case content.ClozeItem:
		if it.Prompt != "" {
			return it.Prompt
		}
		return "Fill in the blanks"
	}
	return ""
}

func explanationFor(item content.Item) string {
	switch it := item.(type) {
	case content.ChoiceItem:
		return it.Explanation
	case content.RecallCard:
		return it.Explanation
	}
	return ""
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
