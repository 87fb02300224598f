package workout

import (
	"context"
	"fmt"

	"github.com/dkovacevic/liftlog/internal/telemetry/metrics"
	"github.com/dkovacevic/liftlog/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/codes"
)

type sessionsRepo interface {
	List(ctx context.Context, userID int) ([]Session, error)
	Get(ctx context.Context, userID, id int) (*Session, error)
	LastCompletedForTemplate(ctx context.Context, userID, templateID int) (*Session, error)
	Start(ctx context.Context, userID int, params StartSessionParams) (*Session, error)
	AddExercise(ctx context.Context, userID, sessionID, exerciseID int, notes *string) (*SessionExercise, error)
	Complete(ctx context.Context, userID, sessionID, durationMinutes int) (int64, error)
	LogSet(ctx context.Context, userID, sessionID int, params SetParams) (*Set, error)
	UpdateSet(ctx context.Context, userID, setID int, params SetParams) (*Set, error)
	DeleteSet(ctx context.Context, userID, setID int) error
}

// statsInvalidator drops cached aggregates for a user after any write
// that can change them.
type statsInvalidator interface {
	InvalidateFor(userID int)
}

type Service struct {
	repo    sessionsRepo
	stats   statsInvalidator
	metrics *metrics.Manager
}

func NewService(repo sessionsRepo, stats statsInvalidator, metrics *metrics.Manager) *Service {
	return &Service{
		repo:    repo,
		stats:   stats,
		metrics: metrics,
	}
}

func (s *Service) ListSessions(ctx context.Context, userID int) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workout.list")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	sessions, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (s *Service) GetSession(ctx context.Context, userID, sessionID int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workout.get")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	return s.repo.Get(ctx, userID, sessionID)
}

func (s *Service) LastCompletedForTemplate(ctx context.Context, userID, templateID int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workout.lastCompletedForTemplate")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	return s.repo.LastCompletedForTemplate(ctx, userID, templateID)
}

func (s *Service) StartSession(ctx context.Context, userID int, params StartSessionParams) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workout.start")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	session, err := s.repo.Start(ctx, userID, params)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	s.metrics.CounterSessionsStarted.Inc()
	s.stats.InvalidateFor(userID)
	return session, nil
}

func (s *Service) AddExerciseToSession(ctx context.Context, userID, sessionID, exerciseID int, notes *string) (_ *SessionExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workout.addExercise")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	sessionExercise, err := s.repo.AddExercise(ctx, userID, sessionID, exerciseID, notes)
	if err != nil {
		return nil, err
	}

	s.stats.InvalidateFor(userID)
	return sessionExercise, nil
}

// CompleteSession closes the session and reports how many personal
// records it produced.
func (s *Service) CompleteSession(ctx context.Context, userID, sessionID, durationMinutes int) (prCount int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workout.complete")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	prCount, err = s.repo.Complete(ctx, userID, sessionID, durationMinutes)
	if err != nil {
		return 0, err
	}

	s.metrics.CounterSessionsCompleted.Inc()
	s.metrics.CounterPersonalRecords.Add(float64(prCount))
	s.stats.InvalidateFor(userID)
	return prCount, nil
}

func (s *Service) LogSet(ctx context.Context, userID, sessionID int, params SetParams) (_ *Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workout.logSet")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	set, err := s.repo.LogSet(ctx, userID, sessionID, params)
	if err != nil {
		return nil, err
	}

	s.metrics.CounterSetsLogged.Inc()
	s.stats.InvalidateFor(userID)
	return set, nil
}

func (s *Service) UpdateSet(ctx context.Context, userID, setID int, params SetParams) (_ *Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workout.updateSet")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	set, err := s.repo.UpdateSet(ctx, userID, setID, params)
	if err != nil {
		return nil, err
	}

	s.stats.InvalidateFor(userID)
	return set, nil
}

func (s *Service) DeleteSet(ctx context.Context, userID, setID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workout.deleteSet")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := s.repo.DeleteSet(ctx, userID, setID); err != nil {
		return err
	}

	s.stats.InvalidateFor(userID)
	return nil
}
