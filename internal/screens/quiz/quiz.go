// Package quiz is the active-session screen: it renders the current
// prepared item, stages the learner's response and drives the session
// state machine on each key press.
package quiz

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/asheem/quizdeck/internal/content"
	"github.com/asheem/quizdeck/internal/evaluate"
	"github.com/asheem/quizdeck/internal/router"
	"github.com/asheem/quizdeck/internal/screen"
	"github.com/asheem/quizdeck/internal/screens/summary"
	"github.com/asheem/quizdeck/internal/session"
	"github.com/asheem/quizdeck/internal/ui/components"
	"github.com/asheem/quizdeck/internal/ui/layout"
)

// QuizScreen implements screen.Screen for an active session.
type QuizScreen struct {
	sess        *session.Session
	subjectName string

	// Exactly one of these is live, matching the current item's kind.
	choices components.ChoiceList
	input   components.TextInput
	blanks  components.BlankFill

	lastResult  evaluate.Result
	quitConfirm bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.CrumbProvider = (*QuizScreen)(nil)

// New creates a quiz screen driving the given session.
func New(sess *session.Session, subjectName string) *QuizScreen {
	return &QuizScreen{sess: sess, subjectName: subjectName}
}

func (q *QuizScreen) Init() tea.Cmd {
	q.sess.Start()
	return q.syncItem()
}

func (q *QuizScreen) Title() string {
	return "Quiz"
}

// Crumbs supplies the header breadcrumb: subject, level, position, score.
func (q *QuizScreen) Crumbs() string {
	level := q.sess.Level()
	if level == content.LevelMix {
		level = "Mixed"
	}
	return fmt.Sprintf("%s • %s • %d of %d • Score %d",
		q.subjectName, level, q.sess.Index()+1, q.sess.Total(), q.sess.Score())
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	if q.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Quit, lose progress"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if q.sess.Submitted() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Ctrl+F", Description: "Finish now"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
	}
	if it, ok := q.sess.Current().(content.ChoiceItem); ok && it.MultiAnswer() {
		hints = append([]layout.KeyHint{{Key: "Space", Description: "Toggle"}}, hints...)
	}
	hints = append(hints,
		layout.KeyHint{Key: "Ctrl+F", Description: "Finish now"},
		layout.KeyHint{Key: "Esc", Description: "Quit"},
	)
	return hints
}

// syncItem rebuilds the response component for the item under the cursor.
func (q *QuizScreen) syncItem() tea.Cmd {
	switch it := q.sess.Current().(type) {
	case content.ChoiceItem:
		q.choices = components.NewChoiceList(it.Choices, it.Answers, it.MultiAnswer())
		return nil
	case content.RecallCard:
		q.input = components.NewTextInput("Type your answer...", 80)
		return q.input.Init()
	case content.ClozeItem:
		parsed, err := content.ParseCloze(it.Template)
		if err != nil {
			// Malformed items never reach a deck; nothing to render.
			return nil
		}
		q.blanks = components.NewBlankFill(parsed)
		return q.blanks.Init()
	}
	return nil
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, isKey := msg.(tea.KeyMsg)

	if q.quitConfirm {
		if !isKey {
			return q, nil
		}
		switch kmsg.String() {
		case "y", "Y":
			q.sess.Quit()
			return q, func() tea.Msg { return router.PopToRootMsg{} }
		case "n", "N", "esc":
			q.quitConfirm = false
		}
		return q, nil
	}

	if isKey {
		switch kmsg.String() {
		case "esc":
			q.quitConfirm = true
			return q, nil

		case "ctrl+f":
			q.sess.FinishEarly()
			return q, q.finish()

		case "enter":
			if q.sess.Submitted() {
				q.sess.Advance()
				if q.sess.Phase() == session.PhaseComplete {
					return q, q.finish()
				}
				return q, q.syncItem()
			}
			return q, q.submit()
		}
	}

	// Forward everything else to the live response component.
	var cmd tea.Cmd
	switch q.sess.Current().(type) {
	case content.ChoiceItem:
		q.choices, cmd = q.choices.Update(msg)
	case content.RecallCard:
		q.input, cmd = q.input.Update(msg)
	case content.ClozeItem:
		q.blanks, cmd = q.blanks.Update(msg)
	}
	return q, cmd
}

// submit stages the component's response and locks it in. An empty
// response leaves the session untouched.
func (q *QuizScreen) submit() tea.Cmd {
	switch it := q.sess.Current().(type) {
	case content.ChoiceItem:
		picks := q.choices.Selection()
		if it.MultiAnswer() {
			q.sess.Select(evaluate.PickMany(picks))
		} else if len(picks) == 1 {
			q.sess.Select(evaluate.PickOne(picks[0]))
		}
	case content.RecallCard:
		q.sess.Select(evaluate.FreeText(q.input.Value()))
	case content.ClozeItem:
		q.sess.Select(evaluate.FillBlanks(q.blanks.Values()))
	}

	res, ok := q.sess.Submit()
	if !ok {
		return nil
	}
	q.lastResult = res

	switch q.sess.Current().(type) {
	case content.ChoiceItem:
		q.choices.Reveal()
	case content.RecallCard:
		q.input.Submit(res.Correct)
	case content.ClozeItem:
		q.blanks.Reveal(res.PerBlank)
	}
	return nil
}

// finish hands over to the results screen. The retry closure rebuilds
// the deck on the same settings and swaps a fresh quiz screen in.
func (q *QuizScreen) finish() tea.Cmd {
	sum := q.sess.Summarize(q.subjectName)
	retry := func() (screen.Screen, error) {
		if err := q.sess.Retry(); err != nil {
			return nil, err
		}
		return New(q.sess, q.subjectName), nil
	}
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum, retry)}
	}
}
