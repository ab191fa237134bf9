package session

import (
	"github.com/asheem/quizdeck/internal/content"
	"github.com/asheem/quizdeck/internal/evaluate"
)

// Record is one immutable entry in the answer history, shaped for the
// review list: what was asked, what was submitted, what was expected,
// and the outcome. Records are only ever appended; Retry and Quit wipe
// the whole history.
type Record struct {
	Kind        content.Kind
	Level       string
	Prompt      string
	Submitted   string
	Expected    string
	Correct     bool
	Explanation string

	// PerBlank carries the per-position outcome for cloze items.
	PerBlank []bool
}

// newRecord builds the history record for one evaluated item.
func newRecord(item content.Item, res evaluate.Result) Record {
	rec := Record{
		Kind:      item.Kind(),
		Level:     item.Level(),
		Submitted: res.Submitted,
		Expected:  res.Expected,
		Correct:   res.Correct,
		PerBlank:  res.PerBlank,
	}

	switch it := item.(type) {
	case content.ChoiceItem:
		rec.Prompt = it.Question
		rec.Explanation = it.Explanation
	case content.RecallCard:
		rec.Prompt = it.Front
		rec.Explanation = it.Explanation
	case content.ClozeItem:
		rec.Prompt = it.Prompt
		if rec.Prompt == "" {
			rec.Prompt = it.Template
		}
	}
	return rec
}
