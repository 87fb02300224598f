package workout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dkovacevic/liftlog/internal/auth"
	"github.com/dkovacevic/liftlog/internal/telemetry/tracing"
	"github.com/dkovacevic/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=workout_test

type workoutService interface {
	ListSessions(ctx context.Context, userID int) ([]Session, error)
	GetSession(ctx context.Context, userID, sessionID int) (*Session, error)
	LastCompletedForTemplate(ctx context.Context, userID, templateID int) (*Session, error)
	StartSession(ctx context.Context, userID int, params StartSessionParams) (*Session, error)
	AddExerciseToSession(ctx context.Context, userID, sessionID, exerciseID int, notes *string) (*SessionExercise, error)
	CompleteSession(ctx context.Context, userID, sessionID, durationMinutes int) (int64, error)
	LogSet(ctx context.Context, userID, sessionID int, params SetParams) (*Set, error)
	UpdateSet(ctx context.Context, userID, setID int, params SetParams) (*Set, error)
	DeleteSet(ctx context.Context, userID, setID int) error
}

type SessionsListResponse struct {
	Sessions []Session `json:"sessions"`
}

type LastSessionResponse struct {
	LastSession *Session `json:"lastSession"`
}

type CompleteSessionResponse struct {
	NewRecords int64 `json:"newRecords"`
}

type addExerciseParams struct {
	ExerciseID int     `json:"exerciseId"`
	Notes      *string `json:"notes,omitempty"`
}

type completeParams struct {
	DurationMinutes int `json:"durationMinutes"`
}

type Handler struct {
	service workoutService
}

func NewHandler(service workoutService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/sessions", h.HandleList).Methods("GET", "OPTIONS").Name("list-sessions")
	router.HandleFunc("/sessions/start", h.HandleStart).Methods("POST", "OPTIONS").Name("start-session")
	router.HandleFunc("/sessions/template/{id}/last", h.HandleLastForTemplate).Methods("GET", "OPTIONS").Name("last-session-for-template")
	router.HandleFunc("/sessions/sets/{setId}", h.HandleUpdateSet).Methods("PUT", "OPTIONS").Name("update-set")
	router.HandleFunc("/sessions/sets/{setId}", h.HandleDeleteSet).Methods("DELETE", "OPTIONS").Name("delete-set")
	router.HandleFunc("/sessions/{id}", h.HandleGet).Methods("GET", "OPTIONS").Name("get-session")
	router.HandleFunc("/sessions/{id}/exercises", h.HandleAddExercise).Methods("POST", "OPTIONS").Name("add-session-exercise")
	router.HandleFunc("/sessions/{id}/complete", h.HandleComplete).Methods("POST", "OPTIONS").Name("complete-session")
	router.HandleFunc("/sessions/{id}/sets", h.HandleLogSet).Methods("POST", "OPTIONS").Name("log-set")
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	sessions, err := h.service.ListSessions(ctx, userID)
	if err != nil {
		log.Errorf("list sessions for user %d: %s", userID, err)
		http.Error(w, "failed to get sessions", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(SessionsListResponse{Sessions: sessions})
	if err != nil {
		log.Errorf("marshal sessions: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.get")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	session, err := h.service.GetSession(ctx, userID, id)
	if errors.Is(err, ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get session %d: %s", id, err)
		http.Error(w, "failed to get session", http.StatusInternalServerError)
		return
	}

	sessionJson, err := json.Marshal(session)
	if err != nil {
		log.Errorf("marshal session: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, sessionJson)
}

func (h *Handler) HandleLastForTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.lastForTemplate")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	templateID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	session, err := h.service.LastCompletedForTemplate(ctx, userID, templateID)
	if err != nil {
		log.Errorf("last session for template %d, user %d: %s", templateID, userID, err)
		http.Error(w, "failed to get last session", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(LastSessionResponse{LastSession: session})
	if err != nil {
		log.Errorf("marshal last session: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.start")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var params StartSessionParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Errorf("start session, unmarshal json params: %s", err)
		http.Error(w, "start session failed", http.StatusBadRequest)
		return
	}

	params.Name = strings.TrimSpace(params.Name)
	if params.Name == "" {
		http.Error(w, "error, session name empty", http.StatusBadRequest)
		return
	}

	session, err := h.service.StartSession(ctx, userID, params)
	if err != nil {
		log.Errorf("failed to start session [%s] for user %d: %s", params.Name, userID, err)
		http.Error(w, "error, failed to start session", http.StatusInternalServerError)
		return
	}

	log.Debugf("session started for user %d: [%s]: %d", userID, session.Name, session.ID)

	sessionJson, err := json.Marshal(session)
	if err != nil {
		log.Errorf("failed to marshal session: %s", err)
		http.Error(w, "error, failed to start session", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionJson, http.StatusCreated)
}

func (h *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.addExercise")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	sessionID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	var params addExerciseParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Errorf("add session exercise, unmarshal json params: %s", err)
		http.Error(w, "add exercise failed", http.StatusBadRequest)
		return
	}
	if params.ExerciseID <= 0 {
		http.Error(w, "error, exercise id missing", http.StatusBadRequest)
		return
	}

	sessionExercise, err := h.service.AddExerciseToSession(ctx, userID, sessionID, params.ExerciseID, params.Notes)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		http.Error(w, "session not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrSessionCompleted):
		http.Error(w, "cannot modify a completed session", http.StatusConflict)
		return
	case err != nil:
		log.Errorf("failed to add exercise to session %d: %s", sessionID, err)
		http.Error(w, "error, failed to add exercise to session", http.StatusInternalServerError)
		return
	}

	seJson, err := json.Marshal(sessionExercise)
	if err != nil {
		log.Errorf("failed to marshal session exercise: %s", err)
		http.Error(w, "error, failed to add exercise to session", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, seJson, http.StatusCreated)
}

func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.complete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	sessionID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	var params completeParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Errorf("complete session, unmarshal json params: %s", err)
		http.Error(w, "complete session failed", http.StatusBadRequest)
		return
	}
	if params.DurationMinutes <= 0 {
		http.Error(w, "error, duration missing", http.StatusBadRequest)
		return
	}

	newRecords, err := h.service.CompleteSession(ctx, userID, sessionID, params.DurationMinutes)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		http.Error(w, "session not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrSessionCompleted):
		http.Error(w, "session already completed", http.StatusConflict)
		return
	case err != nil:
		log.Errorf("failed to complete session %d: %s", sessionID, err)
		http.Error(w, "error, failed to complete session", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(CompleteSessionResponse{NewRecords: newRecords})
	if err != nil {
		log.Errorf("marshal complete response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (h *Handler) HandleLogSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.logSet")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	sessionID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	var params SetParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Errorf("log set, unmarshal json params: %s", err)
		http.Error(w, "log set failed", http.StatusBadRequest)
		return
	}
	if params.SessionExerciseID <= 0 || params.SetNumber <= 0 {
		http.Error(w, "error, session exercise id or set number missing", http.StatusBadRequest)
		return
	}

	set, err := h.service.LogSet(ctx, userID, sessionID, params)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		http.Error(w, "session not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrSessionExerciseNotFound):
		http.Error(w, "session exercise not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrSessionCompleted):
		http.Error(w, "cannot modify a completed session", http.StatusConflict)
		return
	case err != nil:
		log.Errorf("failed to log set for session %d: %s", sessionID, err)
		http.Error(w, "error, failed to log set", http.StatusInternalServerError)
		return
	}

	setJson, err := json.Marshal(set)
	if err != nil {
		log.Errorf("failed to marshal set: %s", err)
		http.Error(w, "error, failed to log set", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, setJson, http.StatusCreated)
}

func (h *Handler) HandleUpdateSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.updateSet")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	setID, err := strconv.Atoi(mux.Vars(r)["setId"])
	if err != nil {
		http.Error(w, "error, set id NaN", http.StatusBadRequest)
		return
	}

	var params SetParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Errorf("update set, unmarshal json params: %s", err)
		http.Error(w, "update set failed", http.StatusBadRequest)
		return
	}
	if params.SetNumber <= 0 {
		http.Error(w, "error, set number missing", http.StatusBadRequest)
		return
	}

	set, err := h.service.UpdateSet(ctx, userID, setID, params)
	switch {
	case errors.Is(err, ErrSetNotFound):
		http.Error(w, "set not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrSessionCompleted):
		http.Error(w, "cannot modify a completed session", http.StatusConflict)
		return
	case err != nil:
		log.Errorf("failed to update set %d: %s", setID, err)
		http.Error(w, "error, failed to update set", http.StatusInternalServerError)
		return
	}

	setJson, err := json.Marshal(set)
	if err != nil {
		log.Errorf("failed to marshal set: %s", err)
		http.Error(w, "error, failed to update set", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, setJson)
}

func (h *Handler) HandleDeleteSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.deleteSet")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	setID, err := strconv.Atoi(mux.Vars(r)["setId"])
	if err != nil {
		http.Error(w, "error, set id NaN", http.StatusBadRequest)
		return
	}

	err = h.service.DeleteSet(ctx, userID, setID)
	switch {
	case errors.Is(err, ErrSetNotFound):
		http.Error(w, "set not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrSessionCompleted):
		http.Error(w, "cannot modify a completed session", http.StatusConflict)
		return
	case err != nil:
		log.Errorf("failed to delete set %d: %s", setID, err)
		http.Error(w, "set not deleted", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"deletedId": `+strconv.Itoa(setID)+`}`)
}
