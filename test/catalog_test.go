package test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dkovacevic/liftlog/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestExercisesCatalog() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t)

	// seeded global exercises are visible
	listResp := request(ctx, t, token, "GET", "/exercises", nil)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	exercisesList := decodeBody[catalog.ExercisesListResponse](t, listResp)
	require.GreaterOrEqual(t, len(exercisesList.Exercises), 5)

	var benchPress *catalog.Exercise
	for i := range exercisesList.Exercises {
		if exercisesList.Exercises[i].Name == "Bench Press" {
			benchPress = &exercisesList.Exercises[i]
			break
		}
	}
	require.NotNil(t, benchPress)
	assert.Equal(t, "chest", benchPress.MuscleGroup)
	assert.Nil(t, benchPress.CreatedBy)

	// muscle group filter
	backResp := request(ctx, t, token, "GET", "/exercises/muscle/back", nil)
	require.Equal(t, http.StatusOK, backResp.StatusCode)
	backList := decodeBody[catalog.ExercisesListResponse](t, backResp)
	for _, e := range backList.Exercises {
		assert.Equal(t, "back", e.MuscleGroup)
	}

	// add a custom exercise, then update and delete it
	addResp := request(ctx, t, token, "POST", "/exercises", catalog.Exercise{
		Name:        "Cable Fly",
		MuscleGroup: "chest",
		Type:        catalog.ExerciseTypeStrength,
	})
	require.Equal(t, http.StatusCreated, addResp.StatusCode)
	added := decodeBody[catalog.Exercise](t, addResp)
	require.NotZero(t, added.ID)
	require.NotNil(t, added.CreatedBy)

	updateResp := request(ctx, t, token, "PUT", fmt.Sprintf("/exercises/%d", added.ID), catalog.Exercise{
		Name:        "Cable Fly (High)",
		MuscleGroup: "chest",
		Type:        catalog.ExerciseTypeStrength,
	})
	require.Equal(t, http.StatusOK, updateResp.StatusCode)
	updateResp.Body.Close()

	// global exercises are not editable
	notOwnerResp := request(ctx, t, token, "PUT", fmt.Sprintf("/exercises/%d", benchPress.ID), catalog.Exercise{
		Name:        "Bench Press Renamed",
		MuscleGroup: "chest",
		Type:        catalog.ExerciseTypeStrength,
	})
	assert.Equal(t, http.StatusForbidden, notOwnerResp.StatusCode)
	notOwnerResp.Body.Close()

	deleteResp := request(ctx, t, token, "DELETE", fmt.Sprintf("/exercises/%d", added.ID), nil)
	require.Equal(t, http.StatusOK, deleteResp.StatusCode)
	deleteResp.Body.Close()

	getDeletedResp := request(ctx, t, token, "GET", fmt.Sprintf("/exercises/%d", added.ID), nil)
	assert.Equal(t, http.StatusNotFound, getDeletedResp.StatusCode)
	getDeletedResp.Body.Close()
}
