// Package evaluate decides whether a submitted response answers an item
// correctly under that item kind's comparison rules.
package evaluate

import (
	"sort"
	"strings"

	"github.com/asheem/quizdeck/internal/content"
)

// Submission is the sealed union of response shapes. Exactly four types
// implement it, one per way of answering.
type Submission interface {
	isSubmission()
}

// PickOne is a single-answer multiple-choice selection.
type PickOne int

// PickMany is a multi-answer multiple-choice selection.
type PickMany []int

// FreeText is a typed recall-card answer.
type FreeText string

// FillBlanks holds one answer per cloze blank, in template order.
type FillBlanks []string

func (PickOne) isSubmission()    {}
func (PickMany) isSubmission()   {}
func (FreeText) isSubmission()   {}
func (FillBlanks) isSubmission() {}

// Empty reports whether sub carries no usable response. The session
// tracker rejects empty submissions before evaluation.
func Empty(sub Submission) bool {
	switch v := sub.(type) {
	case nil:
		return true
	case PickOne:
		return v < 0
	case PickMany:
		return len(v) == 0
	case FreeText:
		return strings.TrimSpace(string(v)) == ""
	case FillBlanks:
		for _, b := range v {
			if strings.TrimSpace(b) != "" {
				return false
			}
		}
		return true
	}
	return true
}

// Result is the outcome of evaluating one submission. Submitted and
// Expected are normalized display strings for the history record.
type Result struct {
	Correct   bool
	Submitted string
	Expected  string

	// PerBlank holds the per-position outcome for cloze items;
	// nil for other kinds.
	PerBlank []bool
}

// Evaluate checks sub against item. The submission shape must match the
// item kind; a mismatch evaluates as incorrect rather than panicking,
// so a stray UI event can never crash a session.
func Evaluate(item content.Item, sub Submission) Result {
	switch it := item.(type) {
	case content.ChoiceItem:
		return evaluateChoice(it, sub)
	case content.RecallCard:
		return evaluateRecall(it, sub)
	case content.ClozeItem:
		return evaluateCloze(it, sub)
	}
	return Result{}
}

func evaluateChoice(it content.ChoiceItem, sub Submission) Result {
	expected := choiceText(it, it.Answers)

	switch v := sub.(type) {
	case PickOne:
		res := Result{Expected: expected}
		if int(v) < 0 || int(v) >= len(it.Choices) {
			return res
		}
		res.Submitted = it.Choices[v]
		res.Correct = !it.MultiAnswer() && int(v) == it.Answers[0]
		return res

	case PickMany:
		picked := dedupeInBounds(v, len(it.Choices))
		res := Result{
			Submitted: choiceText(it, picked),
			Expected:  expected,
		}
		// Exact set equality: a subset or superset of the answer set
		// does not score.
		if len(picked) != len(it.Answers) {
			return res
		}
		want := make(map[int]bool, len(it.Answers))
		for _, idx := range it.Answers {
			want[idx] = true
		}
		for _, idx := range picked {
			if !want[idx] {
				return res
			}
		}
		res.Correct = true
		return res
	}

	return Result{Expected: expected}
}

func evaluateRecall(it content.RecallCard, sub Submission) Result {
	res := Result{Expected: it.Back}
	text, ok := sub.(FreeText)
	if !ok {
		return res
	}
	res.Submitted = strings.TrimSpace(string(text))
	res.Correct = NormalizeText(string(text)) == NormalizeText(it.Back)
	return res
}

func evaluateCloze(it content.ClozeItem, sub Submission) Result {
	parsed, err := content.ParseCloze(it.Template)
	if err != nil {
		// Malformed templates are excluded at build time; nothing
		// sensible can be evaluated here.
		return Result{}
	}

	res := Result{Expected: strings.Join(parsed.Answers, ", ")}
	blanks, ok := sub.(FillBlanks)
	if !ok {
		return res
	}
	res.Submitted = strings.Join(blanks, ", ")

	// Blanks match positionally: answer i must fill blank i.
	if len(blanks) != parsed.Blanks() {
		return res
	}
	res.PerBlank = make([]bool, len(blanks))
	res.Correct = true
	for i, b := range blanks {
		ok := NormalizeBlank(b) == NormalizeBlank(parsed.Answers[i])
		res.PerBlank[i] = ok
		if !ok {
			res.Correct = false
		}
	}
	return res
}

// NormalizeText canonicalizes a free-text answer: trim, collapse
// internal whitespace runs to single spaces, lowercase. Comparison is
// exact after normalization — no fuzzy matching.
func NormalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// NormalizeBlank canonicalizes one cloze blank: trim and lowercase only.
func NormalizeBlank(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// choiceText renders the option texts at the given indices, in index
// order, for display in feedback and history.
func choiceText(it content.ChoiceItem, indices []int) string {
	sorted := make([]int, len(indices))
	copy(sorted, indices)
	sort.Ints(sorted)

	parts := make([]string, 0, len(sorted))
	for _, idx := range sorted {
		if idx >= 0 && idx < len(it.Choices) {
			parts = append(parts, it.Choices[idx])
		}
	}
	return strings.Join(parts, ", ")
}

// dedupeInBounds drops out-of-range and repeated indices.
func dedupeInBounds(indices []int, n int) []int {
	seen := make(map[int]bool, len(indices))
	out := make([]int, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= n || seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, idx)
	}
	return out
}
