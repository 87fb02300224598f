package templates

import (
	"context"
	"sort"
	"time"

	"github.com/dkovacevic/liftlog/internal/catalog"
)

type mockExercise struct {
	id          int
	name        string
	muscleGroup string
	exType      catalog.ExerciseType
	createdBy   *int
}

type mockTemplateExercise struct {
	TemplateExercise
	templateID int
}

type repoMock struct {
	templates         map[int]*Template
	templateOwners    map[int]int
	templateExercises map[int]*mockTemplateExercise
	knownExercises    map[int]mockExercise
	nextID            int
}

func NewMockTemplatesRepo() *repoMock {
	return &repoMock{
		templates:         make(map[int]*Template),
		templateOwners:    make(map[int]int),
		templateExercises: make(map[int]*mockTemplateExercise),
		knownExercises:    make(map[int]mockExercise),
		nextID:            1,
	}
}

func (r *repoMock) addKnownExercise(e mockExercise) {
	r.knownExercises[e.id] = e
}

func (r *repoMock) List(_ context.Context, userID int) ([]Template, error) {
	templates := make([]Template, 0)
	for id, t := range r.templates {
		if r.templateOwners[id] == userID {
			templates = append(templates, *t)
		}
	}
	sort.Slice(templates, func(i, j int) bool {
		return templates[i].UpdatedAt.After(templates[j].UpdatedAt)
	})
	return templates, nil
}

func (r *repoMock) Get(_ context.Context, userID, id int) (*Template, error) {
	t, ok := r.templates[id]
	if !ok || r.templateOwners[id] != userID {
		return nil, ErrTemplateNotFound
	}
	result := *t
	result.Exercises = make([]TemplateExercise, 0)
	for _, te := range r.templateExercises {
		if te.templateID == id {
			result.Exercises = append(result.Exercises, te.TemplateExercise)
		}
	}
	sort.Slice(result.Exercises, func(i, j int) bool {
		return result.Exercises[i].OrderIndex < result.Exercises[j].OrderIndex
	})
	return &result, nil
}

func (r *repoMock) Add(_ context.Context, userID int, name string, notes *string) (*Template, error) {
	now := time.Now()
	t := &Template{
		ID:        r.nextID,
		Name:      name,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.nextID++
	r.templates[t.ID] = t
	r.templateOwners[t.ID] = userID
	return t, nil
}

func (r *repoMock) Update(_ context.Context, userID, id int, name string, notes *string) (*Template, error) {
	t, ok := r.templates[id]
	if !ok || r.templateOwners[id] != userID {
		return nil, ErrTemplateNotFound
	}
	t.Name = name
	t.Notes = notes
	t.UpdatedAt = time.Now()
	return t, nil
}

func (r *repoMock) Delete(_ context.Context, userID, id int) error {
	if _, ok := r.templates[id]; !ok || r.templateOwners[id] != userID {
		return ErrTemplateNotFound
	}
	delete(r.templates, id)
	delete(r.templateOwners, id)
	for teID, te := range r.templateExercises {
		if te.templateID == id {
			delete(r.templateExercises, teID)
		}
	}
	return nil
}

func (r *repoMock) AddExercise(_ context.Context, userID, templateID int, params TemplateExerciseParams) (*TemplateExercise, error) {
	if _, ok := r.templates[templateID]; !ok || r.templateOwners[templateID] != userID {
		return nil, ErrTemplateNotFound
	}
	e, ok := r.knownExercises[params.ExerciseID]
	if !ok || (e.createdBy != nil && *e.createdBy != userID) {
		return nil, ErrExerciseNotFound
	}
	te := &mockTemplateExercise{
		TemplateExercise: TemplateExercise{
			ID:           r.nextID,
			OrderIndex:   params.OrderIndex,
			Notes:        params.Notes,
			ExerciseID:   e.id,
			ExerciseName: e.name,
			MuscleGroup:  e.muscleGroup,
			ExerciseType: e.exType,
		},
		templateID: templateID,
	}
	r.nextID++
	r.templateExercises[te.ID] = te
	return &te.TemplateExercise, nil
}

func (r *repoMock) UpdateExercise(_ context.Context, userID, templateID, templateExerciseID int, params TemplateExerciseParams) (*TemplateExercise, error) {
	if _, ok := r.templates[templateID]; !ok || r.templateOwners[templateID] != userID {
		return nil, ErrTemplateNotFound
	}
	te, ok := r.templateExercises[templateExerciseID]
	if !ok || te.templateID != templateID {
		return nil, ErrTemplateExerciseNotFound
	}
	te.OrderIndex = params.OrderIndex
	te.Notes = params.Notes
	return &te.TemplateExercise, nil
}

func (r *repoMock) RemoveExercise(_ context.Context, userID, templateID, templateExerciseID int) error {
	if _, ok := r.templates[templateID]; !ok || r.templateOwners[templateID] != userID {
		return ErrTemplateNotFound
	}
	te, ok := r.templateExercises[templateExerciseID]
	if !ok || te.templateID != templateID {
		return ErrTemplateExerciseNotFound
	}
	delete(r.templateExercises, templateExerciseID)
	return nil
}
