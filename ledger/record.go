// Package ledger maintains the persisted history of focus sessions and the
// breaks between them.
package ledger

import (
	"time"
)

// Kind discriminates the two record variants stored in the history.
type Kind string

const (
	KindSession Kind = "session"
	KindBreak   Kind = "break"
)

// Difficulty is the user's post-hoc rating of a session.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulty ratings.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}

	return false
}

// SessionRecord is a completed focus session. It is immutable once archived
// except for the comment and distraction count, which may be amended
// afterwards.
type SessionRecord struct {
	StartTime    time.Time     `json:"start_time"`
	ID           string        `json:"id"`
	Goal         string        `json:"goal"`
	Comment      string        `json:"comment,omitempty"`
	Difficulty   Difficulty    `json:"difficulty,omitempty"`
	Posture      *int          `json:"posture_score,omitempty"`
	Duration     time.Duration `json:"duration"`
	Distractions int           `json:"distractions"`
}

// BreakRecord is the idle interval between two sessions. A zero EndTime
// marks the break as still ongoing.
type BreakRecord struct {
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time,omitzero"`
	ID        string        `json:"id"`
	Note      string        `json:"note,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// Open reports whether the break is still ongoing.
func (b *BreakRecord) Open() bool {
	return b.EndTime.IsZero()
}

// Record is the tagged union stored in the history. Exactly one of Session
// and Break is set, according to Kind.
type Record struct {
	Session *SessionRecord `json:"session,omitempty"`
	Break   *BreakRecord   `json:"break,omitempty"`
	Kind    Kind           `json:"kind"`
}

// ID returns the id of whichever variant the record holds.
func (r *Record) ID() string {
	switch r.Kind {
	case KindSession:
		if r.Session != nil {
			return r.Session.ID
		}
	case KindBreak:
		if r.Break != nil {
			return r.Break.ID
		}
	}

	return ""
}

// clone returns a deep copy so callers cannot mutate ledger state through
// returned records.
func (r Record) clone() Record {
	out := Record{Kind: r.Kind}

	if r.Session != nil {
		sess := *r.Session

		if r.Session.Posture != nil {
			score := *r.Session.Posture
			sess.Posture = &score
		}

		out.Session = &sess
	}

	if r.Break != nil {
		brk := *r.Break
		out.Break = &brk
	}

	return out
}
