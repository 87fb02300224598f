package templates

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkovacevic/liftlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrTemplateNotFound         = errors.New("template not found")
	ErrExerciseNotFound         = errors.New("exercise not found")
	ErrTemplateExerciseNotFound = errors.New("template exercise not found")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// List returns the user's templates, most recently updated first,
// without their exercises.
func (r *Repo) List(ctx context.Context, userID int) (_ []Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, name, notes, created_at, updated_at
			FROM workout_templates
			WHERE user_id = $1
			ORDER BY updated_at DESC;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	templates := make([]Template, 0)
	for rows.Next() {
		var t Template
		if err := rows.Scan(&t.ID, &t.Name, &t.Notes, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

// Get returns a single template together with its exercises in plan order.
func (r *Repo) Get(ctx context.Context, userID, id int) (_ *Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var t Template
	err = r.db.QueryRow(
		ctx,
		`SELECT id, name, notes, created_at, updated_at FROM workout_templates WHERE id = $1 AND user_id = $2;`,
		id, userID,
	).Scan(&t.ID, &t.Name, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT te.id, te.order_index, te.notes,
				e.id, e.name, e.muscle_group, e.exercise_type
			FROM template_exercises te
				JOIN exercises e ON te.exercise_id = e.id
			WHERE te.template_id = $1
			ORDER BY te.order_index ASC;`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer rows.Close()

	t.Exercises = make([]TemplateExercise, 0)
	for rows.Next() {
		var te TemplateExercise
		if err := rows.Scan(
			&te.ID, &te.OrderIndex, &te.Notes,
			&te.ExerciseID, &te.ExerciseName, &te.MuscleGroup, &te.ExerciseType,
		); err != nil {
			return nil, err
		}
		t.Exercises = append(t.Exercises, te)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *Repo) Add(ctx context.Context, userID int, name string, notes *string) (_ *Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var t Template
	t.Name = name
	t.Notes = notes
	err = r.db.QueryRow(
		ctx,
		`
			INSERT INTO workout_templates (user_id, name, notes)
				VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at;`,
		userID, name, notes,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("template.id", t.ID))
	return &t, nil
}

func (r *Repo) Update(ctx context.Context, userID, id int, name string, notes *string) (_ *Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var t Template
	t.Name = name
	t.Notes = notes
	err = r.db.QueryRow(
		ctx,
		`
			UPDATE workout_templates
			SET name = $1, notes = $2, updated_at = NOW()
			WHERE id = $3 AND user_id = $4
			RETURNING id, created_at, updated_at;`,
		name, notes, id, userID,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *Repo) Delete(ctx context.Context, userID, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM workout_templates WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

// AddExercise appends an exercise slot to the template. The exercise must
// be visible to the user (global or their own).
func (r *Repo) AddExercise(ctx context.Context, userID, templateID int, params TemplateExerciseParams) (_ *TemplateExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.addExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("template.id", templateID))

	if err := r.checkTemplate(ctx, userID, templateID); err != nil {
		return nil, err
	}

	var exerciseID int
	err = r.db.QueryRow(
		ctx,
		`SELECT id FROM exercises WHERE id = $1 AND (created_by IS NULL OR created_by = $2);`,
		params.ExerciseID, userID,
	).Scan(&exerciseID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		return nil, err
	}

	var teID int
	err = r.db.QueryRow(
		ctx,
		`
			INSERT INTO template_exercises (template_id, exercise_id, order_index, notes)
				VALUES ($1, $2, $3, $4)
			RETURNING id;`,
		templateID, params.ExerciseID, params.OrderIndex, params.Notes,
	).Scan(&teID)
	if err != nil {
		return nil, err
	}

	return r.getTemplateExercise(ctx, teID)
}

func (r *Repo) UpdateExercise(ctx context.Context, userID, templateID, templateExerciseID int, params TemplateExerciseParams) (_ *TemplateExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.updateExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("template.id", templateID))

	if err := r.checkTemplate(ctx, userID, templateID); err != nil {
		return nil, err
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE template_exercises SET order_index = $1, notes = $2 WHERE id = $3 AND template_id = $4;`,
		params.OrderIndex, params.Notes, templateExerciseID, templateID,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrTemplateExerciseNotFound
	}

	return r.getTemplateExercise(ctx, templateExerciseID)
}

func (r *Repo) RemoveExercise(ctx context.Context, userID, templateID, templateExerciseID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.removeExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("template.id", templateID))

	if err := r.checkTemplate(ctx, userID, templateID); err != nil {
		return err
	}

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM template_exercises WHERE id = $1 AND template_id = $2;`,
		templateExerciseID, templateID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateExerciseNotFound
	}
	return nil
}

func (r *Repo) checkTemplate(ctx context.Context, userID, templateID int) error {
	var id int
	err := r.db.QueryRow(
		ctx,
		`SELECT id FROM workout_templates WHERE id = $1 AND user_id = $2;`,
		templateID, userID,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrTemplateNotFound
	}
	return err
}

func (r *Repo) getTemplateExercise(ctx context.Context, id int) (*TemplateExercise, error) {
	var te TemplateExercise
	err := r.db.QueryRow(
		ctx,
		`
			SELECT te.id, te.order_index, te.notes,
				e.id, e.name, e.muscle_group, e.exercise_type
			FROM template_exercises te
				JOIN exercises e ON te.exercise_id = e.id
			WHERE te.id = $1;`,
		id,
	).Scan(
		&te.ID, &te.OrderIndex, &te.Notes,
		&te.ExerciseID, &te.ExerciseName, &te.MuscleGroup, &te.ExerciseType,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTemplateExerciseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &te, nil
}
