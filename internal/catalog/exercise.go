package catalog

import "time"

type ExerciseType string

const (
	ExerciseTypeStrength   ExerciseType = "strength"
	ExerciseTypeCardio     ExerciseType = "cardio"
	ExerciseTypeBodyweight ExerciseType = "bodyweight"
)

func (et ExerciseType) Valid() bool {
	switch et {
	case ExerciseTypeStrength, ExerciseTypeCardio, ExerciseTypeBodyweight:
		return true
	}
	return false
}

// Exercise is reference data: either global (CreatedBy nil, visible to all
// users) or private to the user who created it.
type Exercise struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	MuscleGroup string       `json:"muscleGroup"`
	Type        ExerciseType `json:"exerciseType"`
	CreatedBy   *int         `json:"createdBy,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// Global reports whether the exercise is shared reference data.
func (e *Exercise) Global() bool {
	return e.CreatedBy == nil
}
