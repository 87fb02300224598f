package stats

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dkovacevic/liftlog/internal/auth"
	"github.com/dkovacevic/liftlog/internal/telemetry/tracing"
	"github.com/dkovacevic/liftlog/internal/workout/records"
	"github.com/dkovacevic/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type statsAnalyzer interface {
	WeeklySummary(ctx context.Context, userID int) (*WeeklySummary, error)
	MonthlyTrend(ctx context.Context, userID int) (*MonthlyTrend, error)
	ExerciseHistory(ctx context.Context, userID, exerciseID, limit int) (*ExerciseHistory, error)
	PersonalRecords(ctx context.Context, userID int) ([]records.PersonalRecord, error)
}

type RecordsListResponse struct {
	Records []records.PersonalRecord `json:"records"`
}

type Handler struct {
	analyzer statsAnalyzer
}

func NewHandler(analyzer statsAnalyzer) *Handler {
	return &Handler{
		analyzer: analyzer,
	}
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/stats/weekly-summary", h.HandleWeeklySummary).Methods("GET", "OPTIONS").Name("weekly-summary")
	router.HandleFunc("/stats/progress", h.HandleProgress).Methods("GET", "OPTIONS").Name("progress")
	router.HandleFunc("/stats/records", h.HandleRecords).Methods("GET", "OPTIONS").Name("personal-records")
	router.HandleFunc("/stats/exercises/{id}/history", h.HandleExerciseHistory).Methods("GET", "OPTIONS").Name("exercise-history")
}

func (h *Handler) HandleWeeklySummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.weeklySummary")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	summary, err := h.analyzer.WeeklySummary(ctx, userID)
	if err != nil {
		log.Errorf("weekly summary for user %d: %s", userID, err)
		http.Error(w, "failed to get weekly summary", http.StatusInternalServerError)
		return
	}

	summaryJson, err := json.Marshal(summary)
	if err != nil {
		log.Errorf("marshal weekly summary: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, summaryJson)
}

func (h *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.progress")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	trend, err := h.analyzer.MonthlyTrend(ctx, userID)
	if err != nil {
		log.Errorf("monthly trend for user %d: %s", userID, err)
		http.Error(w, "failed to get progress", http.StatusInternalServerError)
		return
	}

	trendJson, err := json.Marshal(trend)
	if err != nil {
		log.Errorf("marshal monthly trend: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, trendJson)
}

func (h *Handler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.records")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	prs, err := h.analyzer.PersonalRecords(ctx, userID)
	if err != nil {
		log.Errorf("personal records for user %d: %s", userID, err)
		http.Error(w, "failed to get personal records", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(RecordsListResponse{Records: prs})
	if err != nil {
		log.Errorf("marshal personal records: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (h *Handler) HandleExerciseHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.exerciseHistory")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	exerciseID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	// absent or junk limit falls back to the default; explicit values,
	// zero included, go through and get clamped by the analyzer
	limit := historyDefaultLimit
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		if parsed, err := strconv.Atoi(rawLimit); err == nil {
			limit = parsed
		}
	}

	history, err := h.analyzer.ExerciseHistory(ctx, userID, exerciseID, limit)
	if err != nil {
		log.Errorf("exercise history %d for user %d: %s", exerciseID, userID, err)
		http.Error(w, "failed to get exercise history", http.StatusInternalServerError)
		return
	}

	historyJson, err := json.Marshal(history)
	if err != nil {
		log.Errorf("marshal exercise history: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, historyJson)
}
