package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/dkovacevic/liftlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// CompletedSession is the slice of a session the analyzer needs.
type CompletedSession struct {
	ID              int       `json:"id"`
	DateCompleted   time.Time `json:"dateCompleted"`
	DurationMinutes int       `json:"durationMinutes"`
}

// WeightedSet is one set with both reps and weight, joined with the
// completion time of its session.
type WeightedSet struct {
	SessionID     int       `json:"sessionId"`
	DateCompleted time.Time `json:"dateCompleted"`
	Reps          int       `json:"reps"`
	WeightKg      float64   `json:"weightKg"`
}

// HistorySet is one logged set of a given exercise, with enough session
// context to render a history timeline.
type HistorySet struct {
	SessionID       int       `json:"sessionId"`
	SessionName     string    `json:"sessionName"`
	DateCompleted   time.Time `json:"dateCompleted"`
	SetNumber       int       `json:"setNumber"`
	Reps            *int      `json:"reps,omitempty"`
	WeightKg        *float64  `json:"weightKg,omitempty"`
	DurationSeconds *int      `json:"durationSeconds,omitempty"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// CompletedSessionsSince returns sessions completed at or after the
// given time. Sessions completed without a duration count as zero minutes.
func (r *Repo) CompletedSessionsSince(ctx context.Context, userID int, since time.Time) (_ []CompletedSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stats.completedSessionsSince")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, date_completed, COALESCE(duration_minutes, 0)
			FROM workout_sessions
			WHERE user_id = $1 AND date_completed >= $2
			ORDER BY date_completed ASC;`,
		userID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	sessions := make([]CompletedSession, 0)
	for rows.Next() {
		var s CompletedSession
		if err := rows.Scan(&s.ID, &s.DateCompleted, &s.DurationMinutes); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// WeightedSetsSince returns all sets with a weight from sessions
// completed at or after the given time. Sets without reps contribute no
// volume and are skipped.
func (r *Repo) WeightedSetsSince(ctx context.Context, userID int, since time.Time) (_ []WeightedSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stats.weightedSetsSince")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT ws.id, ws.date_completed, es.reps, es.weight_kg
			FROM exercise_sets es
				JOIN session_exercises se ON es.session_exercise_id = se.id
				JOIN workout_sessions ws ON se.session_id = ws.id
			WHERE ws.user_id = $1 AND ws.date_completed >= $2
				AND es.weight_kg IS NOT NULL AND es.reps IS NOT NULL;`,
		userID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	sets := make([]WeightedSet, 0)
	for rows.Next() {
		var s WeightedSet
		if err := rows.Scan(&s.SessionID, &s.DateCompleted, &s.Reps, &s.WeightKg); err != nil {
			return nil, err
		}
		sets = append(sets, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sets, nil
}

// ExerciseSets returns the user's sets of one exercise across completed
// sessions, newest session first, sets in set number order.
func (r *Repo) ExerciseSets(ctx context.Context, userID, exerciseID, limit int) (_ []HistorySet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stats.exerciseSets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise.id", exerciseID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT ws.id, ws.name, ws.date_completed, es.set_number, es.reps, es.weight_kg, es.duration_seconds
			FROM exercise_sets es
				JOIN session_exercises se ON es.session_exercise_id = se.id
				JOIN workout_sessions ws ON se.session_id = ws.id
			WHERE ws.user_id = $1 AND se.exercise_id = $2 AND ws.date_completed IS NOT NULL
			ORDER BY ws.date_completed DESC, ws.id DESC, es.set_number ASC
			LIMIT $3;`,
		userID, exerciseID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	sets := make([]HistorySet, 0)
	for rows.Next() {
		var s HistorySet
		if err := rows.Scan(
			&s.SessionID, &s.SessionName, &s.DateCompleted, &s.SetNumber, &s.Reps, &s.WeightKg, &s.DurationSeconds,
		); err != nil {
			return nil, err
		}
		sets = append(sets, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sets, nil
}
