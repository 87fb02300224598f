package workout

import (
	"context"
	"sort"
	"time"

	"github.com/dkovacevic/liftlog/internal/catalog"
)

type prKey struct {
	userID     int
	exerciseID int
}

type mockExercise struct {
	id          int
	name        string
	muscleGroup string
	exType      catalog.ExerciseType
}

// repoMock keeps sessions fully materialized in memory, including the
// personal record derivation on completion, so service semantics can be
// tested without a database.
type repoMock struct {
	sessions       map[int]*Session
	owners         map[int]int
	knownExercises map[int]mockExercise
	personalBests  map[prKey]float64
	nextID         int
}

func NewMockSessionsRepo() *repoMock {
	return &repoMock{
		sessions:       make(map[int]*Session),
		owners:         make(map[int]int),
		knownExercises: make(map[int]mockExercise),
		personalBests:  make(map[prKey]float64),
		nextID:         1,
	}
}

func (r *repoMock) addKnownExercise(e mockExercise) {
	r.knownExercises[e.id] = e
}

func (r *repoMock) List(_ context.Context, userID int) ([]Session, error) {
	sessions := make([]Session, 0)
	for id, s := range r.sessions {
		if r.owners[id] != userID {
			continue
		}
		listed := *s
		listed.Exercises = nil
		sessions = append(sessions, listed)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].DateStarted.After(sessions[j].DateStarted)
	})
	return sessions, nil
}

func (r *repoMock) Get(_ context.Context, userID, id int) (*Session, error) {
	s, ok := r.sessions[id]
	if !ok || r.owners[id] != userID {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (r *repoMock) LastCompletedForTemplate(_ context.Context, userID, templateID int) (*Session, error) {
	var last *Session
	for id, s := range r.sessions {
		if r.owners[id] != userID || s.TemplateID == nil || *s.TemplateID != templateID || !s.Completed() {
			continue
		}
		if last == nil || s.DateCompleted.After(*last.DateCompleted) ||
			(s.DateCompleted.Equal(*last.DateCompleted) && s.ID > last.ID) {
			last = s
		}
	}
	return last, nil
}

func (r *repoMock) Start(_ context.Context, userID int, params StartSessionParams) (*Session, error) {
	s := &Session{
		ID:          r.nextID,
		TemplateID:  params.TemplateID,
		Name:        params.Name,
		DateStarted: time.Now(),
		Notes:       params.Notes,
		Exercises:   make([]SessionExercise, 0),
	}
	r.nextID++
	for i, seed := range params.Exercises {
		e := r.knownExercises[seed.ExerciseID]
		s.Exercises = append(s.Exercises, SessionExercise{
			ID:           r.nextID,
			OrderIndex:   i + 1,
			Notes:        seed.Notes,
			ExerciseID:   seed.ExerciseID,
			ExerciseName: e.name,
			MuscleGroup:  e.muscleGroup,
			ExerciseType: e.exType,
			Sets:         make([]Set, 0),
		})
		r.nextID++
	}
	r.sessions[s.ID] = s
	r.owners[s.ID] = userID
	return s, nil
}

func (r *repoMock) AddExercise(_ context.Context, userID, sessionID, exerciseID int, notes *string) (*SessionExercise, error) {
	s, ok := r.sessions[sessionID]
	if !ok || r.owners[sessionID] != userID {
		return nil, ErrSessionNotFound
	}
	if s.Completed() {
		return nil, ErrSessionCompleted
	}

	maxOrder := 0
	for _, se := range s.Exercises {
		if se.OrderIndex > maxOrder {
			maxOrder = se.OrderIndex
		}
	}

	e := r.knownExercises[exerciseID]
	se := SessionExercise{
		ID:           r.nextID,
		OrderIndex:   maxOrder + 1,
		Notes:        notes,
		ExerciseID:   exerciseID,
		ExerciseName: e.name,
		MuscleGroup:  e.muscleGroup,
		ExerciseType: e.exType,
		Sets:         make([]Set, 0),
	}
	r.nextID++
	s.Exercises = append(s.Exercises, se)
	return &se, nil
}

func (r *repoMock) Complete(_ context.Context, userID, sessionID, durationMinutes int) (int64, error) {
	s, ok := r.sessions[sessionID]
	if !ok || r.owners[sessionID] != userID {
		return 0, ErrSessionNotFound
	}
	if s.Completed() {
		return 0, ErrSessionCompleted
	}

	now := time.Now()
	s.DateCompleted = &now
	s.DurationMinutes = &durationMinutes

	var affected int64
	for _, se := range s.Exercises {
		var maxWeight float64
		var weighted bool
		for _, set := range se.Sets {
			if set.WeightKg != nil && *set.WeightKg > maxWeight {
				maxWeight = *set.WeightKg
				weighted = true
			}
		}
		if !weighted {
			continue
		}
		key := prKey{userID: userID, exerciseID: se.ExerciseID}
		if best, ok := r.personalBests[key]; !ok || maxWeight > best {
			r.personalBests[key] = maxWeight
			affected++
		}
	}
	return affected, nil
}

func (r *repoMock) LogSet(_ context.Context, userID, sessionID int, params SetParams) (*Set, error) {
	s, ok := r.sessions[sessionID]
	if !ok || r.owners[sessionID] != userID {
		return nil, ErrSessionNotFound
	}
	if s.Completed() {
		return nil, ErrSessionCompleted
	}

	for i := range s.Exercises {
		if s.Exercises[i].ID != params.SessionExerciseID {
			continue
		}
		set := Set{
			ID:              r.nextID,
			SetNumber:       params.SetNumber,
			Reps:            params.Reps,
			WeightKg:        params.WeightKg,
			DurationSeconds: params.DurationSeconds,
			Notes:           params.Notes,
		}
		r.nextID++
		s.Exercises[i].Sets = append(s.Exercises[i].Sets, set)
		return &set, nil
	}
	return nil, ErrSessionExerciseNotFound
}

func (r *repoMock) UpdateSet(_ context.Context, userID, setID int, params SetParams) (*Set, error) {
	s, se, idx := r.findSet(userID, setID)
	if s == nil {
		return nil, ErrSetNotFound
	}
	if s.Completed() {
		return nil, ErrSessionCompleted
	}
	set := &se.Sets[idx]
	set.SetNumber = params.SetNumber
	set.Reps = params.Reps
	set.WeightKg = params.WeightKg
	set.DurationSeconds = params.DurationSeconds
	set.Notes = params.Notes
	return set, nil
}

func (r *repoMock) DeleteSet(_ context.Context, userID, setID int) error {
	s, se, idx := r.findSet(userID, setID)
	if s == nil {
		return ErrSetNotFound
	}
	if s.Completed() {
		return ErrSessionCompleted
	}
	se.Sets = append(se.Sets[:idx], se.Sets[idx+1:]...)
	return nil
}

func (r *repoMock) findSet(userID, setID int) (*Session, *SessionExercise, int) {
	for id, s := range r.sessions {
		if r.owners[id] != userID {
			continue
		}
		for i := range s.Exercises {
			for j := range s.Exercises[i].Sets {
				if s.Exercises[i].Sets[j].ID == setID {
					return s, &s.Exercises[i], j
				}
			}
		}
	}
	return nil, nil, 0
}
