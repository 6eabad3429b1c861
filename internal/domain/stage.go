package domain

import "fmt"

// Stage is one of the three life stages a game progresses through.
type Stage string

const (
	StageYouth       Stage = "youth"
	StageMiddle      Stage = "middle"
	StageFulfillment Stage = "fulfillment"
)

// StageTransition is the result of a progression check.
type StageTransition struct {
	From    Stage  `json:"from"`
	To      Stage  `json:"to"`
	Changed bool   `json:"changed"`
	Message string `json:"message,omitempty"`
}

// CheckStageProgression maps (stage, turn) to the stage the game should be
// in. Pure: the caller applies the new stage and recomputes max vitality.
// Stages never move backwards.
func CheckStageProgression(b *Balance, stage Stage, turn int) StageTransition {
	target := stage
	switch stage {
	case StageYouth:
		if turn >= b.MiddleToFulfillmentTurn {
			target = StageFulfillment
		} else if turn >= b.YouthToMiddleTurn {
			target = StageMiddle
		}
	case StageMiddle:
		if turn >= b.MiddleToFulfillmentTurn {
			target = StageFulfillment
		}
	}

	if target == stage {
		return StageTransition{From: stage, To: stage}
	}
	return StageTransition{
		From:    stage,
		To:      target,
		Changed: true,
		Message: fmt.Sprintf("Entered the %s stage: max vitality is now %d", target, b.MaxVitality(target)),
	}
}
