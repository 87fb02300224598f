package stats

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dkovacevic/liftlog/internal/telemetry/tracing"
	"github.com/dkovacevic/liftlog/internal/workout/records"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	weeklyWindow = 7 * 24 * time.Hour
	trendMonths  = 6

	historyDefaultLimit = 50
	historyMaxLimit     = 1000
)

type statsRepo interface {
	CompletedSessionsSince(ctx context.Context, userID int, since time.Time) ([]CompletedSession, error)
	WeightedSetsSince(ctx context.Context, userID int, since time.Time) ([]WeightedSet, error)
	ExerciseSets(ctx context.Context, userID, exerciseID, limit int) ([]HistorySet, error)
}

type recordsLister interface {
	ListForUser(ctx context.Context, userID int) ([]records.PersonalRecord, error)
	ListAchievedSince(ctx context.Context, userID int, since time.Time) ([]records.PersonalRecord, error)
}

// WeeklySummary aggregates the trailing seven days of training. Values
// are zero, never null, when the week was quiet.
type WeeklySummary struct {
	WorkoutsCount int                      `json:"workoutsCount"`
	TotalMinutes  int                      `json:"totalMinutes"`
	TotalVolume   float64                  `json:"totalVolume"`
	NewRecords    []records.PersonalRecord `json:"newRecords"`
}

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type MonthVolume struct {
	Month  string  `json:"month"`
	Volume float64 `json:"volume"`
}

// MonthlyTrend holds per-month series over the trailing six months,
// keyed YYYY-MM ascending. Quiet months are simply absent.
type MonthlyTrend struct {
	MonthlyWorkouts []MonthCount  `json:"monthlyWorkouts"`
	MonthlyVolume   []MonthVolume `json:"monthlyVolume"`
}

type ExerciseHistory struct {
	ExerciseID int          `json:"exerciseId"`
	Sets       []HistorySet `json:"sets"`
}

type Analyzer struct {
	repo    statsRepo
	records recordsLister
	cache   *SummaryCache

	// NowFunc is swappable in tests
	NowFunc func() time.Time
}

func NewAnalyzer(repo statsRepo, records recordsLister, cache *SummaryCache) *Analyzer {
	return &Analyzer{
		repo:    repo,
		records: records,
		cache:   cache,
		NowFunc: time.Now,
	}
}

func (a *Analyzer) WeeklySummary(ctx context.Context, userID int) (_ *WeeklySummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.weeklySummary")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	if summary, ok := a.cache.Get(userID); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return summary, nil
	}

	since := a.NowFunc().Add(-weeklyWindow)

	sessions, err := a.repo.CompletedSessionsSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("completed sessions: %w", err)
	}
	sets, err := a.repo.WeightedSetsSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("weighted sets: %w", err)
	}
	newRecords, err := a.records.ListAchievedSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("new records: %w", err)
	}

	summary := &WeeklySummary{
		WorkoutsCount: len(sessions),
		NewRecords:    newRecords,
	}
	for _, s := range sessions {
		summary.TotalMinutes += s.DurationMinutes
	}
	for _, set := range sets {
		summary.TotalVolume += float64(set.Reps) * set.WeightKg
	}

	a.cache.Set(userID, summary)
	return summary, nil
}

func (a *Analyzer) MonthlyTrend(ctx context.Context, userID int) (_ *MonthlyTrend, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.monthlyTrend")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	since := a.NowFunc().AddDate(0, -trendMonths, 0)

	sessions, err := a.repo.CompletedSessionsSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("completed sessions: %w", err)
	}
	sets, err := a.repo.WeightedSetsSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("weighted sets: %w", err)
	}

	workoutsPerMonth := make(map[string]int)
	for _, s := range sessions {
		workoutsPerMonth[s.DateCompleted.Format("2006-01")]++
	}
	volumePerMonth := make(map[string]float64)
	for _, set := range sets {
		volumePerMonth[set.DateCompleted.Format("2006-01")] += float64(set.Reps) * set.WeightKg
	}

	trend := &MonthlyTrend{
		MonthlyWorkouts: make([]MonthCount, 0, len(workoutsPerMonth)),
		MonthlyVolume:   make([]MonthVolume, 0, len(volumePerMonth)),
	}
	for month, count := range workoutsPerMonth {
		trend.MonthlyWorkouts = append(trend.MonthlyWorkouts, MonthCount{Month: month, Count: count})
	}
	for month, volume := range volumePerMonth {
		trend.MonthlyVolume = append(trend.MonthlyVolume, MonthVolume{Month: month, Volume: volume})
	}
	sort.Slice(trend.MonthlyWorkouts, func(i, j int) bool {
		return trend.MonthlyWorkouts[i].Month < trend.MonthlyWorkouts[j].Month
	})
	sort.Slice(trend.MonthlyVolume, func(i, j int) bool {
		return trend.MonthlyVolume[i].Month < trend.MonthlyVolume[j].Month
	})

	return trend, nil
}

// ExerciseHistory lists the user's sets of one exercise across
// completed sessions. Limit is clamped to [1, 1000]; callers that want
// the default of 50 pass historyDefaultLimit themselves.
func (a *Analyzer) ExerciseHistory(ctx context.Context, userID, exerciseID, limit int) (_ *ExerciseHistory, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.exerciseHistory")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.Int("exercise.id", exerciseID))

	if limit < 1 {
		limit = 1
	}
	if limit > historyMaxLimit {
		limit = historyMaxLimit
	}

	sets, err := a.repo.ExerciseSets(ctx, userID, exerciseID, limit)
	if err != nil {
		return nil, fmt.Errorf("exercise sets: %w", err)
	}

	return &ExerciseHistory{
		ExerciseID: exerciseID,
		Sets:       sets,
	}, nil
}

func (a *Analyzer) PersonalRecords(ctx context.Context, userID int) (_ []records.PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.personalRecords")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	return a.records.ListForUser(ctx, userID)
}
