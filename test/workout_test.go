package test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dkovacevic/liftlog/internal/workout"
	"github.com/dkovacevic/liftlog/internal/workout/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func (s *IntegrationTestSuite) TestWorkoutLifecycle() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t)

	// start a session seeded with bench press and squat
	startResp := request(ctx, t, token, "POST", "/sessions/start", workout.StartSessionParams{
		Name: "Monday Full Body",
		Exercises: []workout.SeedExerciseParams{
			{ExerciseID: 1},
			{ExerciseID: 2},
		},
	})
	require.Equal(t, http.StatusCreated, startResp.StatusCode)
	session := decodeBody[workout.Session](t, startResp)
	require.NotZero(t, session.ID)
	require.Len(t, session.Exercises, 2)
	assert.Equal(t, 1, session.Exercises[0].OrderIndex)
	assert.Equal(t, 2, session.Exercises[1].OrderIndex)
	assert.Nil(t, session.DateCompleted)

	benchExercise := session.Exercises[0]
	squatExercise := session.Exercises[1]

	// one more exercise mid-workout, appended at the end
	addExResp := request(ctx, t, token, "POST", fmt.Sprintf("/sessions/%d/exercises", session.ID), map[string]any{
		"exerciseId": 3,
	})
	require.Equal(t, http.StatusCreated, addExResp.StatusCode)
	deadliftExercise := decodeBody[workout.SessionExercise](t, addExResp)
	assert.Equal(t, 3, deadliftExercise.OrderIndex)

	logSet := func(params workout.SetParams) workout.Set {
		setResp := request(ctx, t, token, "POST", fmt.Sprintf("/sessions/%d/sets", session.ID), params)
		require.Equal(t, http.StatusCreated, setResp.StatusCode)
		return decodeBody[workout.Set](t, setResp)
	}

	logSet(workout.SetParams{SessionExerciseID: benchExercise.ID, SetNumber: 1, Reps: intPtr(8), WeightKg: floatPtr(100)})
	logSet(workout.SetParams{SessionExerciseID: benchExercise.ID, SetNumber: 2, Reps: intPtr(5), WeightKg: floatPtr(110)})
	squatSet := logSet(workout.SetParams{SessionExerciseID: squatExercise.ID, SetNumber: 1, Reps: intPtr(5), WeightKg: floatPtr(140)})

	// fix a typo in the squat set
	updateResp := request(ctx, t, token, "PUT", fmt.Sprintf("/sessions/sets/%d", squatSet.ID), workout.SetParams{
		SessionExerciseID: squatExercise.ID,
		SetNumber:         1,
		Reps:              intPtr(5),
		WeightKg:          floatPtr(142.5),
	})
	require.Equal(t, http.StatusOK, updateResp.StatusCode)
	updateResp.Body.Close()

	// complete: first lifts of both exercises, two fresh records
	completeResp := request(ctx, t, token, "POST", fmt.Sprintf("/sessions/%d/complete", session.ID), map[string]int{
		"durationMinutes": 60,
	})
	require.Equal(t, http.StatusOK, completeResp.StatusCode)
	completed := decodeBody[workout.CompleteSessionResponse](t, completeResp)
	assert.Equal(t, int64(2), completed.NewRecords)

	// completion is terminal
	doubleCompleteResp := request(ctx, t, token, "POST", fmt.Sprintf("/sessions/%d/complete", session.ID), map[string]int{
		"durationMinutes": 60,
	})
	assert.Equal(t, http.StatusConflict, doubleCompleteResp.StatusCode)
	doubleCompleteResp.Body.Close()

	lateSetResp := request(ctx, t, token, "POST", fmt.Sprintf("/sessions/%d/sets", session.ID), workout.SetParams{
		SessionExerciseID: benchExercise.ID,
		SetNumber:         3,
		Reps:              intPtr(8),
		WeightKg:          floatPtr(100),
	})
	assert.Equal(t, http.StatusConflict, lateSetResp.StatusCode)
	lateSetResp.Body.Close()

	// existing sets freeze with the session too
	lateUpdateResp := request(ctx, t, token, "PUT", fmt.Sprintf("/sessions/sets/%d", squatSet.ID), workout.SetParams{
		SessionExerciseID: squatExercise.ID,
		SetNumber:         1,
		Reps:              intPtr(5),
		WeightKg:          floatPtr(200),
	})
	assert.Equal(t, http.StatusConflict, lateUpdateResp.StatusCode)
	lateUpdateResp.Body.Close()

	lateDeleteResp := request(ctx, t, token, "DELETE", fmt.Sprintf("/sessions/sets/%d", squatSet.ID), nil)
	assert.Equal(t, http.StatusConflict, lateDeleteResp.StatusCode)
	lateDeleteResp.Body.Close()

	// a set that never existed is not a conflict
	missingSetResp := request(ctx, t, token, "DELETE", "/sessions/sets/999999", nil)
	assert.Equal(t, http.StatusNotFound, missingSetResp.StatusCode)
	missingSetResp.Body.Close()

	// the full session view carries exercises and their sets
	getResp := request(ctx, t, token, "GET", fmt.Sprintf("/sessions/%d", session.ID), nil)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	fetched := decodeBody[workout.Session](t, getResp)
	require.NotNil(t, fetched.DateCompleted)
	require.Len(t, fetched.Exercises, 3)
	assert.Len(t, fetched.Exercises[0].Sets, 2)
	require.Len(t, fetched.Exercises[1].Sets, 1)
	require.NotNil(t, fetched.Exercises[1].Sets[0].WeightKg)
	assert.Equal(t, 142.5, *fetched.Exercises[1].Sets[0].WeightKg)

	// a lighter session afterwards improves nothing
	secondStartResp := request(ctx, t, token, "POST", "/sessions/start", workout.StartSessionParams{
		Name:      "Tuesday Light",
		Exercises: []workout.SeedExerciseParams{{ExerciseID: 1}},
	})
	require.Equal(t, http.StatusCreated, secondStartResp.StatusCode)
	secondSession := decodeBody[workout.Session](t, secondStartResp)

	lightSetResp := request(ctx, t, token, "POST", fmt.Sprintf("/sessions/%d/sets", secondSession.ID), workout.SetParams{
		SessionExerciseID: secondSession.Exercises[0].ID,
		SetNumber:         1,
		Reps:              intPtr(10),
		WeightKg:          floatPtr(80),
	})
	require.Equal(t, http.StatusCreated, lightSetResp.StatusCode)
	lightSetResp.Body.Close()

	secondCompleteResp := request(ctx, t, token, "POST", fmt.Sprintf("/sessions/%d/complete", secondSession.ID), map[string]int{
		"durationMinutes": 30,
	})
	require.Equal(t, http.StatusOK, secondCompleteResp.StatusCode)
	secondCompleted := decodeBody[workout.CompleteSessionResponse](t, secondCompleteResp)
	assert.Equal(t, int64(0), secondCompleted.NewRecords)
}

func (s *IntegrationTestSuite) TestWorkoutStatsAndRecords() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t)

	startResp := request(ctx, t, token, "POST", "/sessions/start", workout.StartSessionParams{
		Name:      "Record Hunt",
		Exercises: []workout.SeedExerciseParams{{ExerciseID: 5}},
	})
	require.Equal(t, http.StatusCreated, startResp.StatusCode)
	session := decodeBody[workout.Session](t, startResp)

	setResp := request(ctx, t, token, "POST", fmt.Sprintf("/sessions/%d/sets", session.ID), workout.SetParams{
		SessionExerciseID: session.Exercises[0].ID,
		SetNumber:         1,
		DurationSeconds:   intPtr(90),
	})
	require.Equal(t, http.StatusCreated, setResp.StatusCode)
	setResp.Body.Close()

	completeResp := request(ctx, t, token, "POST", fmt.Sprintf("/sessions/%d/complete", session.ID), map[string]int{
		"durationMinutes": 15,
	})
	require.Equal(t, http.StatusOK, completeResp.StatusCode)
	completed := decodeBody[workout.CompleteSessionResponse](t, completeResp)
	// duration-only sets never make records
	assert.Equal(t, int64(0), completed.NewRecords)

	summaryResp := request(ctx, t, token, "GET", "/stats/weekly-summary", nil)
	require.Equal(t, http.StatusOK, summaryResp.StatusCode)
	summary := decodeBody[stats.WeeklySummary](t, summaryResp)
	assert.GreaterOrEqual(t, summary.WorkoutsCount, 1)
	assert.GreaterOrEqual(t, summary.TotalMinutes, 15)
	assert.NotNil(t, summary.NewRecords)

	progressResp := request(ctx, t, token, "GET", "/stats/progress", nil)
	require.Equal(t, http.StatusOK, progressResp.StatusCode)
	trend := decodeBody[stats.MonthlyTrend](t, progressResp)
	assert.NotEmpty(t, trend.MonthlyWorkouts)

	recordsResp := request(ctx, t, token, "GET", "/stats/records", nil)
	require.Equal(t, http.StatusOK, recordsResp.StatusCode)
	recordsList := decodeBody[stats.RecordsListResponse](t, recordsResp)
	for _, pr := range recordsList.Records {
		assert.NotEmpty(t, pr.ExerciseName)
		assert.Positive(t, pr.MaxWeightKg)
	}

	historyResp := request(ctx, t, token, "GET", "/stats/exercises/5/history?limit=10", nil)
	require.Equal(t, http.StatusOK, historyResp.StatusCode)
	history := decodeBody[stats.ExerciseHistory](t, historyResp)
	assert.Equal(t, 5, history.ExerciseID)
	require.NotEmpty(t, history.Sets)
	require.NotNil(t, history.Sets[0].DurationSeconds)
	assert.Equal(t, 90, *history.Sets[0].DurationSeconds)
}

func (s *IntegrationTestSuite) TestWorkoutLastForTemplate() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t)

	templateResp := request(ctx, t, token, "POST", "/templates", map[string]string{
		"name": "Leg Day",
	})
	require.Equal(t, http.StatusCreated, templateResp.StatusCode)
	template := decodeBody[struct {
		ID int `json:"id"`
	}](t, templateResp)

	// nothing completed for it yet
	lastResp := request(ctx, t, token, "GET", fmt.Sprintf("/sessions/template/%d/last", template.ID), nil)
	require.Equal(t, http.StatusOK, lastResp.StatusCode)
	last := decodeBody[workout.LastSessionResponse](t, lastResp)
	assert.Nil(t, last.LastSession)

	startResp := request(ctx, t, token, "POST", "/sessions/start", workout.StartSessionParams{
		Name:       "Leg Day",
		TemplateID: intPtr(template.ID),
		Exercises:  []workout.SeedExerciseParams{{ExerciseID: 2}},
	})
	require.Equal(t, http.StatusCreated, startResp.StatusCode)
	session := decodeBody[workout.Session](t, startResp)

	// still running, so still no last completed session
	lastResp = request(ctx, t, token, "GET", fmt.Sprintf("/sessions/template/%d/last", template.ID), nil)
	require.Equal(t, http.StatusOK, lastResp.StatusCode)
	last = decodeBody[workout.LastSessionResponse](t, lastResp)
	assert.Nil(t, last.LastSession)

	completeResp := request(ctx, t, token, "POST", fmt.Sprintf("/sessions/%d/complete", session.ID), map[string]int{
		"durationMinutes": 50,
	})
	require.Equal(t, http.StatusOK, completeResp.StatusCode)
	completeResp.Body.Close()

	lastResp = request(ctx, t, token, "GET", fmt.Sprintf("/sessions/template/%d/last", template.ID), nil)
	require.Equal(t, http.StatusOK, lastResp.StatusCode)
	last = decodeBody[workout.LastSessionResponse](t, lastResp)
	require.NotNil(t, last.LastSession)
	assert.Equal(t, session.ID, last.LastSession.ID)
}
