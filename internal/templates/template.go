package templates

import (
	"time"

	"github.com/dkovacevic/liftlog/internal/catalog"
)

// Template is a reusable workout plan owned by a single user. Exercises
// is only populated when a single template is fetched.
type Template struct {
	ID        int                `json:"id"`
	Name      string             `json:"name"`
	Notes     *string            `json:"notes,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
	Exercises []TemplateExercise `json:"exercises,omitempty"`
}

// TemplateExercise is one planned exercise slot within a template,
// joined with the exercise reference data for display.
type TemplateExercise struct {
	ID           int                  `json:"id"`
	OrderIndex   int                  `json:"orderIndex"`
	Notes        *string              `json:"notes,omitempty"`
	ExerciseID   int                  `json:"exerciseId"`
	ExerciseName string               `json:"exerciseName"`
	MuscleGroup  string               `json:"muscleGroup"`
	ExerciseType catalog.ExerciseType `json:"exerciseType"`
}

type TemplateExerciseParams struct {
	ExerciseID int     `json:"exerciseId"`
	OrderIndex int     `json:"orderIndex"`
	Notes      *string `json:"notes,omitempty"`
}
