package templates

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

type templatesRepo interface {
	List(ctx context.Context, userID int) ([]Template, error)
	Get(ctx context.Context, userID, id int) (*Template, error)
	Add(ctx context.Context, userID int, name string, notes *string) (*Template, error)
	Update(ctx context.Context, userID, id int, name string, notes *string) (*Template, error)
	Delete(ctx context.Context, userID, id int) error
	AddExercise(ctx context.Context, userID, templateID int, params TemplateExerciseParams) (*TemplateExercise, error)
	UpdateExercise(ctx context.Context, userID, templateID, templateExerciseID int, params TemplateExerciseParams) (*TemplateExercise, error)
	RemoveExercise(ctx context.Context, userID, templateID, templateExerciseID int) error
}

type TemplatesListResponse struct {
	Templates []Template `json:"templates"`
}

type templateParams struct {
	Name  string  `json:"name"`
	Notes *string `json:"notes,omitempty"`
}

type Handler struct {
	repo templatesRepo
}

func NewHandler(repo templatesRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/templates", h.HandleList).Methods("GET", "OPTIONS").Name("list-templates")
	router.HandleFunc("/templates", h.HandleAdd).Methods("POST", "OPTIONS").Name("new-template")
	router.HandleFunc("/templates/{id}", h.HandleGet).Methods("GET", "OPTIONS").Name("get-template")
	router.HandleFunc("/templates/{id}", h.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-template")
	router.HandleFunc("/templates/{id}", h.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-template")
	router.HandleFunc("/templates/{id}/exercises", h.HandleAddExercise).Methods("POST", "OPTIONS").Name("add-template-exercise")
	router.HandleFunc("/templates/{id}/exercises/{exId}", h.HandleUpdateExercise).Methods("PUT", "OPTIONS").Name("update-template-exercise")
	router.HandleFunc("/templates/{id}/exercises/{exId}", h.HandleRemoveExercise).Methods("DELETE", "OPTIONS").Name("remove-template-exercise")
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	templates, err := h.repo.List(ctx, userID)
	if err != nil {
		log.Errorf("list templates for user %d: %s", userID, err)
		http.Error(w, "failed to get templates", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(TemplatesListResponse{Templates: templates})
	if err != nil {
		log.Errorf("marshal templates: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.get")
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

	template, err := h.repo.Get(ctx, userID, id)
	if errors.Is(err, ErrTemplateNotFound) {
		http.Error(w, "template not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get template %d: %s", id, err)
		http.Error(w, "failed to get template", http.StatusInternalServerError)
		return
	}

	templateJson, err := json.Marshal(template)
	if err != nil {
		log.Errorf("marshal template: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, templateJson)
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.add")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var params templateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Errorf("new template, unmarshal json params: %s", err)
		http.Error(w, "add template failed", http.StatusBadRequest)
		return
	}

	params.Name = strings.TrimSpace(params.Name)
	if params.Name == "" {
		http.Error(w, "error, template name empty", http.StatusBadRequest)
		return
	}

	template, err := h.repo.Add(ctx, userID, params.Name, params.Notes)
	if err != nil {
		log.Errorf("failed to add new template [%s]: %s", params.Name, err)
		http.Error(w, "error, failed to add new template", http.StatusInternalServerError)
		return
	}

	log.Debugf("new template added for user %d: [%s]: %d", userID, template.Name, template.ID)

	templateJson, err := json.Marshal(template)
	if err != nil {
		log.Errorf("failed to marshal new template: %s", err)
		http.Error(w, "error, failed to add new template", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, templateJson, http.StatusCreated)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.update")
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

	var params templateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Errorf("update template, unmarshal json params: %s", err)
		http.Error(w, "update template failed", http.StatusBadRequest)
		return
	}

	params.Name = strings.TrimSpace(params.Name)
	if params.Name == "" {
		http.Error(w, "error, template name empty", http.StatusBadRequest)
		return
	}

	template, err := h.repo.Update(ctx, userID, id, params.Name, params.Notes)
	if errors.Is(err, ErrTemplateNotFound) {
		http.Error(w, "template not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("failed to update template %d: %s", id, err)
		http.Error(w, "error, failed to update template", http.StatusInternalServerError)
		return
	}

	templateJson, err := json.Marshal(template)
	if err != nil {
		log.Errorf("failed to marshal template: %s", err)
		http.Error(w, "error, failed to update template", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, templateJson)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.delete")
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

	err = h.repo.Delete(ctx, userID, id)
	if errors.Is(err, ErrTemplateNotFound) {
		http.Error(w, "template not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("failed to delete template %d: %s", id, err)
		http.Error(w, "template not deleted", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"deletedId": `+strconv.Itoa(id)+`}`)
}

func (h *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.addExercise")
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

	var params TemplateExerciseParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Errorf("add template exercise, unmarshal json params: %s", err)
		http.Error(w, "add exercise failed", http.StatusBadRequest)
		return
	}
	if params.ExerciseID <= 0 {
		http.Error(w, "error, exercise id missing", http.StatusBadRequest)
		return
	}

	templateExercise, err := h.repo.AddExercise(ctx, userID, templateID, params)
	switch {
	case errors.Is(err, ErrTemplateNotFound):
		http.Error(w, "template not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrExerciseNotFound):
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	case err != nil:
		log.Errorf("failed to add exercise to template %d: %s", templateID, err)
		http.Error(w, "error, failed to add exercise to template", http.StatusInternalServerError)
		return
	}

	teJson, err := json.Marshal(templateExercise)
	if err != nil {
		log.Errorf("failed to marshal template exercise: %s", err)
		http.Error(w, "error, failed to add exercise to template", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, teJson, http.StatusCreated)
}

func (h *Handler) HandleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.updateExercise")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	templateID, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}
	templateExerciseID, err := strconv.Atoi(vars["exId"])
	if err != nil {
		http.Error(w, "error, exercise id NaN", http.StatusBadRequest)
		return
	}

	var params TemplateExerciseParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Errorf("update template exercise, unmarshal json params: %s", err)
		http.Error(w, "update exercise failed", http.StatusBadRequest)
		return
	}

	templateExercise, err := h.repo.UpdateExercise(ctx, userID, templateID, templateExerciseID, params)
	switch {
	case errors.Is(err, ErrTemplateNotFound):
		http.Error(w, "template not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrTemplateExerciseNotFound):
		http.Error(w, "template exercise not found", http.StatusNotFound)
		return
	case err != nil:
		log.Errorf("failed to update exercise %d in template %d: %s", templateExerciseID, templateID, err)
		http.Error(w, "error, failed to update template exercise", http.StatusInternalServerError)
		return
	}

	teJson, err := json.Marshal(templateExercise)
	if err != nil {
		log.Errorf("failed to marshal template exercise: %s", err)
		http.Error(w, "error, failed to update template exercise", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, teJson)
}

func (h *Handler) HandleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.removeExercise")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	templateID, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}
	templateExerciseID, err := strconv.Atoi(vars["exId"])
	if err != nil {
		http.Error(w, "error, exercise id NaN", http.StatusBadRequest)
		return
	}

	err = h.repo.RemoveExercise(ctx, userID, templateID, templateExerciseID)
	switch {
	case errors.Is(err, ErrTemplateNotFound):
		http.Error(w, "template not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrTemplateExerciseNotFound):
		http.Error(w, "template exercise not found", http.StatusNotFound)
		return
	case err != nil:
		log.Errorf("failed to remove exercise %d from template %d: %s", templateExerciseID, templateID, err)
		http.Error(w, "error, failed to remove template exercise", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"removedId": `+strconv.Itoa(templateExerciseID)+`}`)
}
