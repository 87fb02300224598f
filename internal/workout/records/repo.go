package records

import (
	"context"
	"fmt"
	"time"

	"github.com/dkovacevic/liftlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the
// derivation can run inside the session completion transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// DeriveFromSession upserts personal records from the weighted sets of
// one session: max weight per exercise, written only when it strictly
// beats the stored record. Returns the number of records created or
// improved.
func (r *Repo) DeriveFromSession(ctx context.Context, q Querier, userID, sessionID int) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.deriveFromSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", sessionID))

	tag, err := q.Exec(
		ctx,
		`
			INSERT INTO personal_records (user_id, exercise_id, max_weight, achieved_at, session_id)
			SELECT $1, se.exercise_id, MAX(es.weight_kg), NOW(), $2
			FROM session_exercises se
				JOIN exercise_sets es ON se.id = es.session_exercise_id
			WHERE se.session_id = $2 AND es.weight_kg IS NOT NULL
			GROUP BY se.exercise_id
			ON CONFLICT (user_id, exercise_id) DO UPDATE
				SET max_weight = EXCLUDED.max_weight,
					achieved_at = EXCLUDED.achieved_at,
					session_id = EXCLUDED.session_id
				WHERE personal_records.max_weight < EXCLUDED.max_weight;`,
		userID, sessionID,
	)
	if err != nil {
		return 0, fmt.Errorf("upsert records: %w", err)
	}

	span.SetAttributes(attribute.Int64("records.affected", tag.RowsAffected()))
	return tag.RowsAffected(), nil
}

// ListForUser returns all personal records, most recent first.
func (r *Repo) ListForUser(ctx context.Context, userID int) (_ []PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.listForUser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	return r.list(
		ctx,
		`
			SELECT pr.id, pr.exercise_id, e.name, pr.max_weight, pr.achieved_at, pr.session_id
			FROM personal_records pr
				JOIN exercises e ON pr.exercise_id = e.id
			WHERE pr.user_id = $1
			ORDER BY pr.achieved_at DESC;`,
		userID,
	)
}

// ListAchievedSince returns records achieved at or after the given time.
func (r *Repo) ListAchievedSince(ctx context.Context, userID int, since time.Time) (_ []PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.listAchievedSince")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	return r.list(
		ctx,
		`
			SELECT pr.id, pr.exercise_id, e.name, pr.max_weight, pr.achieved_at, pr.session_id
			FROM personal_records pr
				JOIN exercises e ON pr.exercise_id = e.id
			WHERE pr.user_id = $1 AND pr.achieved_at >= $2
			ORDER BY pr.achieved_at DESC;`,
		userID, since,
	)
}

func (r *Repo) list(ctx context.Context, query string, args ...any) ([]PersonalRecord, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	prs := make([]PersonalRecord, 0)
	for rows.Next() {
		var pr PersonalRecord
		if err := rows.Scan(
			&pr.ID, &pr.ExerciseID, &pr.ExerciseName, &pr.MaxWeightKg, &pr.AchievedAt, &pr.SessionID,
		); err != nil {
			return nil, err
		}
		prs = append(prs, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return prs, nil
}
