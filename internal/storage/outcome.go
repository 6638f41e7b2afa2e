package storage

import "github.com/vovakirdan/gotchi/internal/pet"

// OutcomeOf builds the Outcome of a run that ended in snap with the given
// status label.
func OutcomeOf(snap pet.Snapshot, status string) Outcome {
	return Outcome{
		Status:     status,
		Ticks:      snap.Tick,
		Hunger:     snap.Hunger,
		Happiness:  snap.Happiness,
		Energy:     snap.Energy,
		Friendship: snap.Friendship,
		AwayUsed:   snap.AwayUsed,
	}
}
