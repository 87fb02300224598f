package test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dkovacevic/liftlog/internal/templates"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestTemplates() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t)

	addResp := request(ctx, t, token, "POST", "/templates", map[string]string{
		"name": "Push Day",
	})
	require.Equal(t, http.StatusCreated, addResp.StatusCode)
	template := decodeBody[templates.Template](t, addResp)
	require.NotZero(t, template.ID)
	assert.Equal(t, "Push Day", template.Name)

	// bench press (seeded exercise 1) goes first
	addExResp := request(ctx, t, token, "POST", fmt.Sprintf("/templates/%d/exercises", template.ID), templates.TemplateExerciseParams{
		ExerciseID: 1,
		OrderIndex: 1,
	})
	require.Equal(t, http.StatusCreated, addExResp.StatusCode)
	benchEntry := decodeBody[templates.TemplateExercise](t, addExResp)
	assert.Equal(t, "Bench Press", benchEntry.ExerciseName)

	addExResp = request(ctx, t, token, "POST", fmt.Sprintf("/templates/%d/exercises", template.ID), templates.TemplateExerciseParams{
		ExerciseID: 4,
		OrderIndex: 2,
	})
	require.Equal(t, http.StatusCreated, addExResp.StatusCode)
	pullUpEntry := decodeBody[templates.TemplateExercise](t, addExResp)

	getResp := request(ctx, t, token, "GET", fmt.Sprintf("/templates/%d", template.ID), nil)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	fetched := decodeBody[templates.Template](t, getResp)
	require.Len(t, fetched.Exercises, 2)
	assert.Equal(t, "Bench Press", fetched.Exercises[0].ExerciseName)
	assert.Equal(t, "Pull Up", fetched.Exercises[1].ExerciseName)

	// swap the order
	reorderResp := request(ctx, t, token, "PUT",
		fmt.Sprintf("/templates/%d/exercises/%d", template.ID, pullUpEntry.ID),
		templates.TemplateExerciseParams{ExerciseID: 4, OrderIndex: 0},
	)
	require.Equal(t, http.StatusOK, reorderResp.StatusCode)
	reorderResp.Body.Close()

	getResp = request(ctx, t, token, "GET", fmt.Sprintf("/templates/%d", template.ID), nil)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	fetched = decodeBody[templates.Template](t, getResp)
	require.Len(t, fetched.Exercises, 2)
	assert.Equal(t, "Pull Up", fetched.Exercises[0].ExerciseName)

	removeResp := request(ctx, t, token, "DELETE",
		fmt.Sprintf("/templates/%d/exercises/%d", template.ID, benchEntry.ID), nil)
	require.Equal(t, http.StatusOK, removeResp.StatusCode)
	removeResp.Body.Close()

	listResp := request(ctx, t, token, "GET", "/templates", nil)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	list := decodeBody[templates.TemplatesListResponse](t, listResp)
	require.NotEmpty(t, list.Templates)

	deleteResp := request(ctx, t, token, "DELETE", fmt.Sprintf("/templates/%d", template.ID), nil)
	require.Equal(t, http.StatusOK, deleteResp.StatusCode)
	deleteResp.Body.Close()

	getDeletedResp := request(ctx, t, token, "GET", fmt.Sprintf("/templates/%d", template.ID), nil)
	assert.Equal(t, http.StatusNotFound, getDeletedResp.StatusCode)
	getDeletedResp.Body.Close()
}
