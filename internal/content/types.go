package content

// Difficulty level sentinels. Levels are an open set — Beginner,
// Intermediate and Advanced by convention — but these two values have
// special meaning to the deck builder.
const (
	// LevelNone marks an item (or a whole pool) that carries no
	// difficulty classification. Filtering is disabled for such pools.
	LevelNone = ""

	// LevelMix is the filter sentinel meaning "keep every level".
	LevelMix = "mix"
)

// Kind identifies the item variant.
type Kind int

const (
	// KindChoice is a multiple-choice question (single or multi answer).
	KindChoice Kind = iota

	// KindRecall is a two-sided recall card (front prompt, back answer).
	KindRecall

	// KindCloze is a fill-in-the-blank template item.
	KindCloze
)

// String returns the kind name used in history records and content files.
func (k Kind) String() string {
	switch k {
	case KindChoice:
		return "choice"
	case KindRecall:
		return "recall"
	case KindCloze:
		return "cloze"
	}
	return "unknown"
}

// Item is the closed union of quiz content variants. Exactly three
// types implement it: ChoiceItem, RecallCard and ClozeItem. Consumers
// branch with an exhaustive type switch, never a mode string.
type Item interface {
	// Kind reports the item variant.
	Kind() Kind

	// Level reports the difficulty label (LevelNone if unclassified).
	Level() string
}

// ChoiceItem is a multiple-choice question. Answers holds the indices
// of the correct choices; a single entry means single-answer, two or
// more mean the learner must pick exactly that set.
type ChoiceItem struct {
	Difficulty  string
	Question    string
	Choices     []string
	Answers     []int
	Explanation string
}

func (it ChoiceItem) Kind() Kind    { return KindChoice }
func (it ChoiceItem) Level() string { return it.Difficulty }

// MultiAnswer reports whether this question expects more than one pick.
func (it ChoiceItem) MultiAnswer() bool { return len(it.Answers) > 1 }

// RecallCard is a front/back recall card. Back is the expected answer.
type RecallCard struct {
	Difficulty  string
	Front       string
	Back        string
	Explanation string
}

func (it RecallCard) Kind() Kind    { return KindRecall }
func (it RecallCard) Level() string { return it.Difficulty }

// ClozeItem is a fill-in-the-blank item. Template embeds the expected
// answers between {{ and }} delimiters; Prompt is optional lead-in text.
type ClozeItem struct {
	Difficulty string
	Prompt     string
	Template   string
}

func (it ClozeItem) Kind() Kind    { return KindCloze }
func (it ClozeItem) Level() string { return it.Difficulty }

// Subject is one loaded subject: its manifest entry, optional overview
// text, and the three typed pools.
type Subject struct {
	Slug     string
	Name     string
	Overview string
	Quiz     []Item // ChoiceItem pool
	Cards    []Item // RecallCard pool
	Cloze    []Item // ClozeItem pool

	// Skipped counts items dropped at load time for failing an
	// invariant. Surfaced to the UI, never fatal.
	Skipped int
}

// PoolFor returns the pool for the given kind.
func (s *Subject) PoolFor(k Kind) []Item {
	switch k {
	case KindChoice:
		return s.Quiz
	case KindRecall:
		return s.Cards
	case KindCloze:
		return s.Cloze
	}
	return nil
}
