package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkovacevic/liftlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrNotExerciseOwner = errors.New("not the exercise owner")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// ListVisible returns global exercises plus the user's own ones,
// global first, then by name.
func (r *Repo) ListVisible(ctx context.Context, userID int) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.listVisible")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, name, muscle_group, exercise_type, created_by, created_at
			FROM exercises
			WHERE created_by IS NULL OR created_by = $1
			ORDER BY created_by IS NULL DESC, name ASC;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	return r.rows2exercises(rows)
}

// ListByMuscleGroup is like ListVisible, but for a single muscle group.
func (r *Repo) ListByMuscleGroup(ctx context.Context, userID int, muscleGroup string) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.listByMuscleGroup")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.String("muscle_group", muscleGroup))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, name, muscle_group, exercise_type, created_by, created_at
			FROM exercises
			WHERE muscle_group = $1 AND (created_by IS NULL OR created_by = $2)
			ORDER BY created_by IS NULL DESC, name ASC;`,
		muscleGroup, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	return r.rows2exercises(rows)
}

// Get returns the exercise if it is visible to the user (global or own).
func (r *Repo) Get(ctx context.Context, userID, id int) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var e Exercise
	err = r.db.QueryRow(
		ctx,
		`
			SELECT id, name, muscle_group, exercise_type, created_by, created_at
			FROM exercises
			WHERE id = $1 AND (created_by IS NULL OR created_by = $2);`,
		id, userID,
	).Scan(&e.ID, &e.Name, &e.MuscleGroup, &e.Type, &e.CreatedBy, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func (r *Repo) Add(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`
			INSERT INTO exercises (name, muscle_group, exercise_type, created_by, created_at)
				VALUES ($1, $2, $3, $4, $5)
			RETURNING id;`,
		exercise.Name, exercise.MuscleGroup, exercise.Type, exercise.CreatedBy, exercise.CreatedAt,
	).Scan(&exercise.ID)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("exercise.id", exercise.ID))
	return &exercise, nil
}

// Update changes name / muscle group / type; only the owner may update, and
// global exercises are immutable through this path.
func (r *Repo) Update(ctx context.Context, userID int, exercise *Exercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", exercise.ID))

	if err := r.checkOwnership(ctx, userID, exercise.ID); err != nil {
		return err
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE exercises SET name = $1, muscle_group = $2, exercise_type = $3 WHERE id = $4;`,
		exercise.Name, exercise.MuscleGroup, exercise.Type, exercise.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, userID, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	if err := r.checkOwnership(ctx, userID, id); err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM exercises WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

func (r *Repo) checkOwnership(ctx context.Context, userID, id int) error {
	var createdBy *int
	err := r.db.QueryRow(ctx, `SELECT created_by FROM exercises WHERE id = $1;`, id).Scan(&createdBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrExerciseNotFound
	}
	if err != nil {
		return err
	}
	if createdBy == nil || *createdBy != userID {
		return ErrNotExerciseOwner
	}
	return nil
}

func (r *Repo) rows2exercises(rows pgx.Rows) ([]Exercise, error) {
	var exercises []Exercise
	for rows.Next() {
		var e Exercise
		var createdAt time.Time
		if err := rows.Scan(&e.ID, &e.Name, &e.MuscleGroup, &e.Type, &e.CreatedBy, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt = createdAt
		exercises = append(exercises, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if exercises == nil {
		exercises = make([]Exercise, 0)
	}

	return exercises, nil
}
