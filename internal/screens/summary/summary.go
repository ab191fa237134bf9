// Package summary is the results screen: the final score, the
// per-difficulty tally and the full answer review.
package summary

import (
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/asheem/quizdeck/internal/content"
	"github.com/asheem/quizdeck/internal/router"
	"github.com/asheem/quizdeck/internal/screen"
	"github.com/asheem/quizdeck/internal/session"
	"github.com/asheem/quizdeck/internal/ui/components"
	"github.com/asheem/quizdeck/internal/ui/layout"
	"github.com/asheem/quizdeck/internal/ui/theme"
)

// conventional level order for the tally; unknown labels sort after.
var levelOrder = map[string]int{
	"Beginner":     0,
	"Intermediate": 1,
	"Advanced":     2,
}

// SummaryScreen displays a completed session.
type SummaryScreen struct {
	summary *session.Summary

	// retry rebuilds the deck on the same settings and returns the
	// screen to replace this one with. Injected by the quiz screen to
	// avoid a package cycle.
	retry func() (screen.Screen, error)

	scroll int
	notice string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates the results screen for a completed session.
func New(summary *session.Summary, retry func() (screen.Screen, error)) *SummaryScreen {
	return &SummaryScreen{summary: summary, retry: retry}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll review"},
		{Key: "R", Description: "Retry"},
		{Key: "Esc", Description: "Menu"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.scroll > 0 {
			s.scroll--
		}
	case "down", "j":
		if s.scroll < len(s.summary.History)-1 {
			s.scroll++
		}
	case "r", "R":
		if s.retry == nil {
			break
		}
		next, err := s.retry()
		if err != nil {
			// The same settings produced content before, but the
			// rebuild is the caller's to surface.
			s.notice = "No items available for a retry."
			break
		}
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case "esc", "enter":
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder

	if sum.NoAnswers {
		b.WriteString(theme.Title.Width(width).Render("Nothing answered") + "\n\n")
		b.WriteString(theme.Subtitle.Width(width).Render("The quiz ended before any answers were submitted.") + "\n")
		if s.notice != "" {
			b.WriteString("\n" + theme.Hint.Width(width).Render(s.notice) + "\n")
		}
		b.WriteString("\n" + theme.Hint.Width(width).Render("run "+sum.SessionID) + "\n")
		return b.String()
	}

	headline := fmt.Sprintf("Score: %d / %d  (%d%%)", sum.Score, sum.Total, sum.Percent)
	b.WriteString(theme.Title.Width(width).Render(headline) + "\n\n")

	b.WriteString(s.tallyView(width) + "\n")
	b.WriteString(s.reviewView(width, height))

	if s.notice != "" {
		b.WriteString("\n" + theme.Hint.Render("  "+s.notice) + "\n")
	}

	b.WriteString("\n" + theme.Hint.Render("  run "+sum.SessionID) + "\n")

	return b.String()
}

// tallyView renders one right/wrong line per difficulty level.
func (s *SummaryScreen) tallyView(width int) string {
	sum := s.summary

	levels := make([]string, 0, len(sum.Tally))
	for level := range sum.Tally {
		levels = append(levels, level)
	}
	sort.Slice(levels, func(i, j int) bool {
		oi, iok := levelOrder[levels[i]]
		oj, jok := levelOrder[levels[j]]
		if iok != jok {
			return iok
		}
		if oi != oj {
			return oi < oj
		}
		return levels[i] < levels[j]
	})

	var b strings.Builder
	for _, level := range levels {
		t := sum.Tally[level]
		total := t.Right + t.Wrong
		label := level
		if label == content.LevelNone {
			label = "Unrated"
		}

		bar := components.ProgressBar{
			Label:   fmt.Sprintf("%-14s %d/%d", label, t.Right, total),
			Percent: float64(t.Right) / float64(total),
			Width:   min(width-8, 48),
		}
		b.WriteString("  " + bar.View() + "\n")
	}
	return b.String()
}

// reviewView renders the answer history from the current scroll offset.
func (s *SummaryScreen) reviewView(width, height int) string {
	var b strings.Builder
	b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render("  Review") + "\n\n")

	for i := s.scroll; i < len(s.summary.History); i++ {
		rec := s.summary.History[i]

		outcome := theme.Correct.Render("✓")
		if !rec.Correct {
			outcome = theme.Incorrect.Render("✗")
		}
		b.WriteString(fmt.Sprintf("  %s Q%d  %s\n", outcome, i+1,
			theme.Body.Render(rec.Prompt)))
		b.WriteString(theme.Hint.Render(fmt.Sprintf("     your answer: %s", orDash(rec.Submitted))) + "\n")
		if !rec.Correct {
			b.WriteString(theme.Hint.Render(fmt.Sprintf("     expected:    %s", rec.Expected)) + "\n")
		}
		if rec.Explanation != "" {
			b.WriteString(theme.Hint.Render("     "+rec.Explanation) + "\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
