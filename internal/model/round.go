package model

import "time"

// Choice is a team's per-round decision
type Choice string

const (
	ChoiceCooperate Choice = "cooperate"
	ChoiceSelfish   Choice = "selfish"
)

// ValidChoice reports whether c is one of the two legal choices
func ValidChoice(c Choice) bool {
	return c == ChoiceCooperate || c == ChoiceSelfish
}

// Round is the durable record of one simultaneous-choice iteration.
//
// Choices is write-once per team and may only change while Locked is false.
// Points is written exactly once, atomically with the false->true transition
// of Locked. Version is bumped on every stored mutation and backs the
// optimistic concurrency checks in the storage layer.
type Round struct {
	Number    int
	StartedAt time.Time
	Choices   map[TeamID]Choice
	Locked    bool
	LockedAt  time.Time
	Points    map[TeamID]int
	Version   int
}

// NewRound creates an empty, unlocked round record
func NewRound(number int, startedAt time.Time) *Round {
	return &Round{
		Number:    number,
		StartedAt: startedAt,
		Choices:   make(map[TeamID]Choice),
	}
}

// HasSubmitted reports whether the team has a recorded choice this round
func (r *Round) HasSubmitted(teamID TeamID) bool {
	_, ok := r.Choices[teamID]
	return ok
}

// SelfishCount returns the number of recorded selfish choices
func (r *Round) SelfishCount() int {
	count := 0
	for _, c := range r.Choices {
		if c == ChoiceSelfish {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the round
func (r *Round) Clone() *Round {
	clone := *r
	clone.Choices = make(map[TeamID]Choice, len(r.Choices))
	for id, c := range r.Choices {
		clone.Choices[id] = c
	}
	if r.Points != nil {
		clone.Points = make(map[TeamID]int, len(r.Points))
		for id, p := range r.Points {
			clone.Points[id] = p
		}
	}
	return &clone
}

// SubmissionOutcome describes the result of a submit-choice call
type SubmissionOutcome string

const (
	OutcomeAccepted         SubmissionOutcome = "submitted"
	OutcomeAlreadySubmitted SubmissionOutcome = "already_submitted"
)

// RoundStatusKind distinguishes the two status views
type RoundStatusKind string

const (
	RoundStatusWaiting  RoundStatusKind = "waiting"
	RoundStatusComplete RoundStatusKind = "complete"
)

// RoundStatus is the read-only per-team view of a round.
//
// The engine always fills in the true values; ShowScore models the narrative
// rule that totals are concealed from round 6 onward, and it is up to the
// presentation layer to honor it.
type RoundStatus struct {
	Status          RoundStatusKind
	PointsThisRound int
	TotalScore      int
	SelfishCount    int
	ShowScore       bool
}
