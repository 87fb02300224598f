package catalog

import (
	"context"
	"sort"
)

type repoMock struct {
	exercises map[int]*Exercise
	nextID    int
}

func NewMockExercisesRepo() *repoMock {
	return &repoMock{
		exercises: make(map[int]*Exercise),
		nextID:    1,
	}
}

func (r *repoMock) ListVisible(_ context.Context, userID int) ([]Exercise, error) {
	exercises := make([]Exercise, 0)
	for _, e := range r.exercises {
		if e.CreatedBy == nil || *e.CreatedBy == userID {
			exercises = append(exercises, *e)
		}
	}
	sort.Slice(exercises, func(i, j int) bool {
		if exercises[i].Global() != exercises[j].Global() {
			return exercises[i].Global()
		}
		return exercises[i].Name < exercises[j].Name
	})
	return exercises, nil
}

func (r *repoMock) ListByMuscleGroup(ctx context.Context, userID int, muscleGroup string) ([]Exercise, error) {
	all, err := r.ListVisible(ctx, userID)
	if err != nil {
		return nil, err
	}
	exercises := make([]Exercise, 0)
	for _, e := range all {
		if e.MuscleGroup == muscleGroup {
			exercises = append(exercises, e)
		}
	}
	return exercises, nil
}

func (r *repoMock) Get(_ context.Context, userID, id int) (*Exercise, error) {
	e, ok := r.exercises[id]
	if !ok {
		return nil, ErrExerciseNotFound
	}
	if e.CreatedBy != nil && *e.CreatedBy != userID {
		return nil, ErrExerciseNotFound
	}
	return e, nil
}

func (r *repoMock) Add(_ context.Context, exercise Exercise) (*Exercise, error) {
	exercise.ID = r.nextID
	r.nextID++
	r.exercises[exercise.ID] = &exercise
	return &exercise, nil
}

func (r *repoMock) Update(_ context.Context, userID int, exercise *Exercise) error {
	existing, ok := r.exercises[exercise.ID]
	if !ok {
		return ErrExerciseNotFound
	}
	if existing.CreatedBy == nil || *existing.CreatedBy != userID {
		return ErrNotExerciseOwner
	}
	exercise.CreatedBy = existing.CreatedBy
	exercise.CreatedAt = existing.CreatedAt
	r.exercises[exercise.ID] = exercise
	return nil
}

func (r *repoMock) Delete(_ context.Context, userID, id int) error {
	existing, ok := r.exercises[id]
	if !ok {
		return ErrExerciseNotFound
	}
	if existing.CreatedBy == nil || *existing.CreatedBy != userID {
		return ErrNotExerciseOwner
	}
	delete(r.exercises, id)
	return nil
}
