// Package overview renders a subject's free-text overview.
package overview

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/asheem/quizdeck/internal/router"
	"github.com/asheem/quizdeck/internal/screen"
	"github.com/asheem/quizdeck/internal/ui/layout"
	"github.com/asheem/quizdeck/internal/ui/theme"
)

// OverviewScreen shows a subject's overview text.
type OverviewScreen struct {
	subjectName string
	text        string
}

var _ screen.Screen = (*OverviewScreen)(nil)
var _ screen.KeyHintProvider = (*OverviewScreen)(nil)

// New creates an overview screen.
func New(subjectName, text string) *OverviewScreen {
	return &OverviewScreen{subjectName: subjectName, text: text}
}

func (o *OverviewScreen) Init() tea.Cmd {
	return nil
}

func (o *OverviewScreen) Title() string {
	return o.subjectName
}

func (o *OverviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (o *OverviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc", "enter":
			return o, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return o, nil
}

func (o *OverviewScreen) View(width, height int) string {
	text := o.text
	if strings.TrimSpace(text) == "" {
		text = "This subject has no overview."
	}

	body := lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(min(width-8, 72)).
		Render(text)

	return layout.Center(theme.Card.Render(body), width, height)
}
