package records

import "time"

// PersonalRecord is the heaviest weight a user ever lifted for an
// exercise. One row per (user, exercise); max weight only ever goes up.
type PersonalRecord struct {
	ID           int       `json:"id"`
	ExerciseID   int       `json:"exerciseId"`
	ExerciseName string    `json:"exerciseName"`
	MaxWeightKg  float64   `json:"maxWeightKg"`
	AchievedAt   time.Time `json:"achievedAt"`
	SessionID    int       `json:"sessionId"`
}
