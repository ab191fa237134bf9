package evaluate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asheem/quizdeck/internal/content"
)

func singleChoice() content.ChoiceItem {
	return content.ChoiceItem{
		Question: "Which protocol does the web use?",
		Choices:  []string{"TCP", "UDP", "ICMP"},
		Answers:  []int{0},
	}
}

func multiChoice() content.ChoiceItem {
	return content.ChoiceItem{
		Question: "Which are transport protocols?",
		Choices:  []string{"TCP", "UDP", "IP", "Ethernet"},
		Answers:  []int{0, 1},
	}
}

func TestEvaluate_ChoiceSingle(t *testing.T) {
	it := singleChoice()

	res := Evaluate(it, PickOne(0))
	assert.True(t, res.Correct)
	assert.Equal(t, "TCP", res.Submitted)
	assert.Equal(t, "TCP", res.Expected)

	res = Evaluate(it, PickOne(1))
	assert.False(t, res.Correct)
	assert.Equal(t, "UDP", res.Submitted)

	// Out-of-range pick is incorrect, never a panic.
	res = Evaluate(it, PickOne(9))
	assert.False(t, res.Correct)
}

func TestEvaluate_ChoiceMulti_ExactSet(t *testing.T) {
	it := multiChoice()

	// Order of picks is irrelevant.
	assert.True(t, Evaluate(it, PickMany{1, 0}).Correct)
	assert.True(t, Evaluate(it, PickMany{0, 1}).Correct)
}

func TestEvaluate_ChoiceMulti_SubsetAndSuperset(t *testing.T) {
	it := multiChoice()

	// Neither a proper subset nor a superset scores.
	assert.False(t, Evaluate(it, PickMany{0}).Correct)
	assert.False(t, Evaluate(it, PickMany{1}).Correct)
	assert.False(t, Evaluate(it, PickMany{0, 1, 2}).Correct)
	assert.False(t, Evaluate(it, PickMany{2, 3}).Correct)
}

func TestEvaluate_ChoiceMulti_DuplicatePicksCollapse(t *testing.T) {
	it := multiChoice()
	// {0,0,1} is the set {0,1}.
	assert.True(t, Evaluate(it, PickMany{0, 0, 1}).Correct)
}

func TestEvaluate_Recall_Normalization(t *testing.T) {
	card := content.RecallCard{Front: "Light to chemical energy", Back: "Photosynthesis"}

	assert.True(t, Evaluate(card, FreeText("  photosynthesis  ")).Correct)
	assert.True(t, Evaluate(card, FreeText("PHOTOSYNTHESIS")).Correct)
	assert.False(t, Evaluate(card, FreeText("photosynthesi")).Correct, "no fuzzy matching")
}

func TestEvaluate_Recall_CollapsesInternalWhitespace(t *testing.T) {
	card := content.RecallCard{Front: "f", Back: "Transport  Layer Security"}
	assert.True(t, Evaluate(card, FreeText("transport layer\tsecurity")).Correct)
}

func TestEvaluate_Cloze_Positional(t *testing.T) {
	it := content.ClozeItem{Template: "client uses {{TLS}}, mutual auth uses {{mTLS}}"}

	// Case-insensitive per blank.
	res := Evaluate(it, FillBlanks{"tls", "mtls"})
	assert.True(t, res.Correct)
	assert.Equal(t, []bool{true, true}, res.PerBlank)

	// Blank 0 right, blank 1 wrong: overall incorrect, no partial credit.
	res = Evaluate(it, FillBlanks{"tls", "Mtls x"})
	assert.False(t, res.Correct)
	assert.Equal(t, []bool{true, false}, res.PerBlank)

	// Swapped answers fail both positions.
	res = Evaluate(it, FillBlanks{"mtls", "tls"})
	assert.False(t, res.Correct)
	assert.Equal(t, []bool{false, false}, res.PerBlank)
}

func TestEvaluate_Cloze_CountMismatch(t *testing.T) {
	it := content.ClozeItem{Template: "{{a}} and {{b}}"}

	assert.False(t, Evaluate(it, FillBlanks{"a"}).Correct)
	assert.False(t, Evaluate(it, FillBlanks{"a", "b", "c"}).Correct)
}

func TestEvaluate_Cloze_NoWhitespaceCollapse(t *testing.T) {
	it := content.ClozeItem{Template: "{{Transport Layer}}"}

	// Trim + lowercase only: internal runs are not collapsed.
	assert.True(t, Evaluate(it, FillBlanks{" transport layer "}).Correct)
	assert.False(t, Evaluate(it, FillBlanks{"transport  layer"}).Correct)
}

func TestEvaluate_ExactAnswerAlwaysCorrect(t *testing.T) {
	// Submitting the literal expected value scores correct for every kind.
	assert.True(t, Evaluate(singleChoice(), PickOne(0)).Correct)
	assert.True(t, Evaluate(multiChoice(), PickMany{0, 1}).Correct)
	assert.True(t, Evaluate(content.RecallCard{Front: "f", Back: "SNI"}, FreeText("SNI")).Correct)
	assert.True(t, Evaluate(content.ClozeItem{Template: "{{BBR}}"}, FillBlanks{"BBR"}).Correct)
}

func TestEvaluate_KindMismatch(t *testing.T) {
	// A submission of the wrong shape evaluates incorrect, not a panic.
	assert.False(t, Evaluate(singleChoice(), FreeText("TCP")).Correct)
	assert.False(t, Evaluate(content.RecallCard{Front: "f", Back: "b"}, PickOne(0)).Correct)
	assert.False(t, Evaluate(content.ClozeItem{Template: "{{x}}"}, FreeText("x")).Correct)
}

func TestEmpty(t *testing.T) {
	assert.True(t, Empty(nil))
	assert.True(t, Empty(PickOne(-1)))
	assert.False(t, Empty(PickOne(0)))
	assert.True(t, Empty(PickMany{}))
	assert.False(t, Empty(PickMany{1}))
	assert.True(t, Empty(FreeText("   ")))
	assert.False(t, Empty(FreeText("x")))
	assert.True(t, Empty(FillBlanks{"", "  "}))
	assert.False(t, Empty(FillBlanks{"", "x"}))
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "a b c", NormalizeText("  A   b\t C "))
	assert.Equal(t, "", NormalizeText("   "))
}
