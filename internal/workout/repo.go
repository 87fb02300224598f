package workout

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkovacevic/liftlog/internal/telemetry/tracing"
	"github.com/dkovacevic/liftlog/internal/workout/records"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type recordsDeriver interface {
	DeriveFromSession(ctx context.Context, q records.Querier, userID, sessionID int) (int64, error)
}

type Repo struct {
	db      *pgxpool.Pool
	records recordsDeriver
}

func NewRepo(db *pgxpool.Pool, records recordsDeriver) *Repo {
	return &Repo{
		db:      db,
		records: records,
	}
}

// List returns the user's sessions, newest first, without exercises.
func (r *Repo) List(ctx context.Context, userID int) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, template_id, name, date_started, date_completed, duration_minutes, notes
			FROM workout_sessions
			WHERE user_id = $1
			ORDER BY date_started DESC;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	sessions := make([]Session, 0)
	for rows.Next() {
		var s Session
		if err := rows.Scan(
			&s.ID, &s.TemplateID, &s.Name, &s.DateStarted, &s.DateCompleted, &s.DurationMinutes, &s.Notes,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// Get returns the full session: exercises in order, sets per exercise
// in set number order.
func (r *Repo) Get(ctx context.Context, userID, id int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var s Session
	err = r.db.QueryRow(
		ctx,
		`
			SELECT id, template_id, name, date_started, date_completed, duration_minutes, notes
			FROM workout_sessions
			WHERE id = $1 AND user_id = $2;`,
		id, userID,
	).Scan(&s.ID, &s.TemplateID, &s.Name, &s.DateStarted, &s.DateCompleted, &s.DurationMinutes, &s.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	s.Exercises, err = r.sessionExercises(ctx, id)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// LastCompletedForTemplate returns the most recently completed session
// for the template, or nil when the template was never completed.
func (r *Repo) LastCompletedForTemplate(ctx context.Context, userID, templateID int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.lastCompletedForTemplate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("template.id", templateID))

	var sessionID int
	err = r.db.QueryRow(
		ctx,
		`
			SELECT id FROM workout_sessions
			WHERE user_id = $1 AND template_id = $2 AND date_completed IS NOT NULL
			ORDER BY date_completed DESC, id DESC
			LIMIT 1;`,
		userID, templateID,
	).Scan(&sessionID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, userID, sessionID)
}

// Start creates an active session. Seed exercises get order indices
// 1..N in the given order.
func (r *Repo) Start(ctx context.Context, userID int, params StartSessionParams) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.start")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	var s Session
	s.Name = params.Name
	s.TemplateID = params.TemplateID
	s.Notes = params.Notes

	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(
			ctx,
			`
				INSERT INTO workout_sessions (user_id, template_id, name, date_started, notes)
					VALUES ($1, $2, $3, NOW(), $4)
				RETURNING id, date_started;`,
			userID, params.TemplateID, params.Name, params.Notes,
		).Scan(&s.ID, &s.DateStarted)
		if err != nil {
			return fmt.Errorf("insert session: %w", err)
		}

		for i, seed := range params.Exercises {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO session_exercises (session_id, exercise_id, order_index, notes) VALUES ($1, $2, $3, $4);`,
				s.ID, seed.ExerciseID, i+1, seed.Notes,
			)
			if err != nil {
				return fmt.Errorf("seed exercise %d: %w", seed.ExerciseID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("session.id", s.ID))

	// return the full view, seeded exercises included, so callers
	// know the session exercise ids to log sets against
	return r.Get(ctx, userID, s.ID)
}

// AddExercise appends an exercise to an active session, order index
// max(existing)+1.
func (r *Repo) AddExercise(ctx context.Context, userID, sessionID, exerciseID int, notes *string) (_ *SessionExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.addExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", sessionID))

	if err := r.checkSessionActive(ctx, userID, sessionID); err != nil {
		return nil, err
	}

	var seID int
	err = r.db.QueryRow(
		ctx,
		`
			INSERT INTO session_exercises (session_id, exercise_id, order_index, notes)
				VALUES (
					$1, $2,
					(SELECT COALESCE(MAX(order_index), 0) + 1 FROM session_exercises WHERE session_id = $1),
					$3
				)
			RETURNING id;`,
		sessionID, exerciseID, notes,
	).Scan(&seID)
	if err != nil {
		return nil, fmt.Errorf("insert session exercise: %w", err)
	}

	return r.sessionExercise(ctx, seID)
}

// Complete marks the session done and derives personal records from its
// weighted sets, both in one transaction. Completing twice fails with
// ErrSessionCompleted. Returns the number of records created or improved.
func (r *Repo) Complete(ctx context.Context, userID, sessionID, durationMinutes int) (prCount int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.complete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", sessionID))

	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(
			ctx,
			`
				UPDATE workout_sessions
				SET date_completed = NOW(), duration_minutes = $1
				WHERE id = $2 AND user_id = $3 AND date_completed IS NULL;`,
			durationMinutes, sessionID, userID,
		)
		if err != nil {
			return fmt.Errorf("complete session: %w", err)
		}
		if tag.RowsAffected() == 0 {
			var completed bool
			err := tx.QueryRow(
				ctx,
				`SELECT date_completed IS NOT NULL FROM workout_sessions WHERE id = $1 AND user_id = $2;`,
				sessionID, userID,
			).Scan(&completed)
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrSessionNotFound
			}
			if err != nil {
				return err
			}
			if completed {
				return ErrSessionCompleted
			}
			return ErrSessionNotFound
		}

		prCount, err = r.records.DeriveFromSession(ctx, tx, userID, sessionID)
		return err
	})
	if err != nil {
		return 0, err
	}

	span.SetAttributes(attribute.Int64("records.affected", prCount))
	return prCount, nil
}

// LogSet records a set against a session exercise of an active session.
func (r *Repo) LogSet(ctx context.Context, userID, sessionID int, params SetParams) (_ *Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.logSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", sessionID))

	if err := r.checkSessionActive(ctx, userID, sessionID); err != nil {
		return nil, err
	}

	var seID int
	err = r.db.QueryRow(
		ctx,
		`SELECT id FROM session_exercises WHERE id = $1 AND session_id = $2;`,
		params.SessionExerciseID, sessionID,
	).Scan(&seID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionExerciseNotFound
	}
	if err != nil {
		return nil, err
	}

	set := Set{
		SetNumber:       params.SetNumber,
		Reps:            params.Reps,
		WeightKg:        params.WeightKg,
		DurationSeconds: params.DurationSeconds,
		Notes:           params.Notes,
	}
	err = r.db.QueryRow(
		ctx,
		`
			INSERT INTO exercise_sets (session_exercise_id, set_number, reps, weight_kg, duration_seconds, notes)
				VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id;`,
		params.SessionExerciseID, params.SetNumber, params.Reps, params.WeightKg, params.DurationSeconds, params.Notes,
	).Scan(&set.ID)
	if err != nil {
		return nil, fmt.Errorf("insert set: %w", err)
	}

	return &set, nil
}

func (r *Repo) UpdateSet(ctx context.Context, userID, setID int, params SetParams) (_ *Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.updateSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("set.id", setID))

	set := Set{
		ID:              setID,
		SetNumber:       params.SetNumber,
		Reps:            params.Reps,
		WeightKg:        params.WeightKg,
		DurationSeconds: params.DurationSeconds,
		Notes:           params.Notes,
	}
	// owner and active-session guard folded into the write itself,
	// same shape as Complete
	tag, err := r.db.Exec(
		ctx,
		`
			UPDATE exercise_sets es
			SET set_number = $1, reps = $2, weight_kg = $3, duration_seconds = $4, notes = $5
			FROM session_exercises se
				JOIN workout_sessions ws ON se.session_id = ws.id
			WHERE es.id = $6
				AND es.session_exercise_id = se.id
				AND ws.user_id = $7
				AND ws.date_completed IS NULL;`,
		params.SetNumber, params.Reps, params.WeightKg, params.DurationSeconds, params.Notes, setID, userID,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, r.classifySetWriteMiss(ctx, userID, setID)
	}

	return &set, nil
}

func (r *Repo) DeleteSet(ctx context.Context, userID, setID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.deleteSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("set.id", setID))

	tag, err := r.db.Exec(
		ctx,
		`
			DELETE FROM exercise_sets es
			USING session_exercises se
				JOIN workout_sessions ws ON se.session_id = ws.id
			WHERE es.id = $1
				AND es.session_exercise_id = se.id
				AND ws.user_id = $2
				AND ws.date_completed IS NULL;`,
		setID, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.classifySetWriteMiss(ctx, userID, setID)
	}
	return nil
}

// checkSessionActive fails with ErrSessionNotFound when the session is
// absent or not owned, ErrSessionCompleted when it is already done.
func (r *Repo) checkSessionActive(ctx context.Context, userID, sessionID int) error {
	var completed bool
	err := r.db.QueryRow(
		ctx,
		`SELECT date_completed IS NOT NULL FROM workout_sessions WHERE id = $1 AND user_id = $2;`,
		sessionID, userID,
	).Scan(&completed)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrSessionNotFound
	}
	if err != nil {
		return err
	}
	if completed {
		return ErrSessionCompleted
	}
	return nil
}

// classifySetWriteMiss resolves why a guarded set write matched no
// rows: the set is gone (or not the user's), or its session is done.
func (r *Repo) classifySetWriteMiss(ctx context.Context, userID, setID int) error {
	var completed bool
	err := r.db.QueryRow(
		ctx,
		`
			SELECT ws.date_completed IS NOT NULL
			FROM exercise_sets es
				JOIN session_exercises se ON es.session_exercise_id = se.id
				JOIN workout_sessions ws ON se.session_id = ws.id
			WHERE es.id = $1 AND ws.user_id = $2;`,
		setID, userID,
	).Scan(&completed)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrSetNotFound
	}
	if err != nil {
		return err
	}
	if completed {
		return ErrSessionCompleted
	}
	return ErrSetNotFound
}

func (r *Repo) sessionExercise(ctx context.Context, id int) (*SessionExercise, error) {
	var se SessionExercise
	err := r.db.QueryRow(
		ctx,
		`
			SELECT se.id, se.order_index, se.notes,
				e.id, e.name, e.muscle_group, e.exercise_type
			FROM session_exercises se
				JOIN exercises e ON se.exercise_id = e.id
			WHERE se.id = $1;`,
		id,
	).Scan(
		&se.ID, &se.OrderIndex, &se.Notes,
		&se.ExerciseID, &se.ExerciseName, &se.MuscleGroup, &se.ExerciseType,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionExerciseNotFound
	}
	if err != nil {
		return nil, err
	}
	se.Sets = make([]Set, 0)
	return &se, nil
}

func (r *Repo) sessionExercises(ctx context.Context, sessionID int) ([]SessionExercise, error) {
	rows, err := r.db.Query(
		ctx,
		`
			SELECT se.id, se.order_index, se.notes,
				e.id, e.name, e.muscle_group, e.exercise_type
			FROM session_exercises se
				JOIN exercises e ON se.exercise_id = e.id
			WHERE se.session_id = $1
			ORDER BY se.order_index ASC;`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer rows.Close()

	exercises := make([]SessionExercise, 0)
	exerciseIdx := make(map[int]int)
	for rows.Next() {
		var se SessionExercise
		if err := rows.Scan(
			&se.ID, &se.OrderIndex, &se.Notes,
			&se.ExerciseID, &se.ExerciseName, &se.MuscleGroup, &se.ExerciseType,
		); err != nil {
			return nil, err
		}
		se.Sets = make([]Set, 0)
		exerciseIdx[se.ID] = len(exercises)
		exercises = append(exercises, se)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	setRows, err := r.db.Query(
		ctx,
		`
			SELECT es.id, es.session_exercise_id, es.set_number, es.reps, es.weight_kg, es.duration_seconds, es.notes
			FROM exercise_sets es
				JOIN session_exercises se ON es.session_exercise_id = se.id
			WHERE se.session_id = $1
			ORDER BY es.set_number ASC;`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query sets: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		var set Set
		var seID int
		if err := setRows.Scan(
			&set.ID, &seID, &set.SetNumber, &set.Reps, &set.WeightKg, &set.DurationSeconds, &set.Notes,
		); err != nil {
			return nil, err
		}
		if idx, ok := exerciseIdx[seID]; ok {
			exercises[idx].Sets = append(exercises[idx].Sets, set)
		}
	}
	if err := setRows.Err(); err != nil {
		return nil, err
	}

	return exercises, nil
}
