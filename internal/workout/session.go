package workout

import (
	"errors"
	"time"

	"github.com/dkovacevic/liftlog/internal/catalog"
)

var (
	ErrSessionNotFound         = errors.New("session not found")
	ErrSessionCompleted        = errors.New("session already completed")
	ErrSessionExerciseNotFound = errors.New("session exercise not found")
	ErrSetNotFound             = errors.New("set not found")
)

// Session is one workout, from date_started until completion. A nil
// DateCompleted means the session is still active and can be modified.
type Session struct {
	ID              int               `json:"id"`
	TemplateID      *int              `json:"templateId,omitempty"`
	Name            string            `json:"name"`
	DateStarted     time.Time         `json:"dateStarted"`
	DateCompleted   *time.Time        `json:"dateCompleted,omitempty"`
	DurationMinutes *int              `json:"durationMinutes,omitempty"`
	Notes           *string           `json:"notes,omitempty"`
	Exercises       []SessionExercise `json:"exercises,omitempty"`
}

func (s *Session) Completed() bool {
	return s.DateCompleted != nil
}

// SessionExercise is one exercise performed within a session, joined
// with the exercise reference data.
type SessionExercise struct {
	ID           int                  `json:"id"`
	OrderIndex   int                  `json:"orderIndex"`
	Notes        *string              `json:"notes,omitempty"`
	ExerciseID   int                  `json:"exerciseId"`
	ExerciseName string               `json:"exerciseName"`
	MuscleGroup  string               `json:"muscleGroup"`
	ExerciseType catalog.ExerciseType `json:"exerciseType"`
	Sets         []Set                `json:"sets"`
}

// Set is a single logged set. Reps and WeightKg are nil for pure
// cardio work, DurationSeconds nil for strength work.
type Set struct {
	ID              int      `json:"id"`
	SetNumber       int      `json:"setNumber"`
	Reps            *int     `json:"reps,omitempty"`
	WeightKg        *float64 `json:"weightKg,omitempty"`
	DurationSeconds *int     `json:"durationSeconds,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

type StartSessionParams struct {
	Name       string               `json:"name"`
	TemplateID *int                 `json:"templateId,omitempty"`
	Notes      *string              `json:"notes,omitempty"`
	Exercises  []SeedExerciseParams `json:"exercises,omitempty"`
}

// SeedExerciseParams pre-populates a session with the planned
// exercises, usually taken from a template.
type SeedExerciseParams struct {
	ExerciseID int     `json:"exerciseId"`
	Notes      *string `json:"notes,omitempty"`
}

type SetParams struct {
	SessionExerciseID int      `json:"sessionExerciseId"`
	SetNumber         int      `json:"setNumber"`
	Reps              *int     `json:"reps,omitempty"`
	WeightKg          *float64 `json:"weightKg,omitempty"`
	DurationSeconds   *int     `json:"durationSeconds,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
}
