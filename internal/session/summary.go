package session

// Summary is the read-only view of a completed session, sufficient for
// the results screen to render without touching session internals.
type Summary struct {
	// SessionID identifies the run on debug surfaces.
	SessionID string

	SubjectName string
	Level       string
	Score       int
	Total       int
	Percent     int
	Tally       map[string]Tally
	History     []Record

	// NoAnswers is set when the session ended before anything was
	// answered; the results screen shows a marker instead of a score.
	NoAnswers bool
}

// Summarize builds the summary for a completed session. Returns nil
// until the session reaches PhaseComplete.
func (s *Session) Summarize(subjectName string) *Summary {
	if s.phase != PhaseComplete {
		return nil
	}

	sum := &Summary{
		SessionID:   s.id,
		SubjectName: subjectName,
		Level:       s.level,
		Score:       s.score,
		Total:       s.deck.Len(),
		Tally:       s.TallyByLevel(),
		History:     s.History(),
		NoAnswers:   len(s.history) == 0,
	}
	if sum.Total > 0 {
		sum.Percent = (sum.Score*100 + sum.Total/2) / sum.Total
	}
	return sum
}
