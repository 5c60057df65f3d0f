package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperengineering/lifegrid/internal/api"
	"github.com/hyperengineering/lifegrid/internal/planner"
	"github.com/hyperengineering/lifegrid/internal/store"
	"github.com/hyperengineering/lifegrid/internal/types"
)

const apiKey = "e2e-test-key"

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	st, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	svc := planner.NewService(st, 2020)
	handler := api.NewHandler(svc, apiKey, "e2e")
	srv := httptest.NewServer(api.NewRouter(handler))
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path string, body any, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// TestPlanLifecycle walks a realistic month of planning over the HTTP API:
// set a goal, add items, push one down through week into a day time slot,
// complete the leaves and watch completion cascade back to the origin.
func TestPlanLifecycle(t *testing.T) {
	srv := newServer(t)

	// Set the month's goal.
	goal := "ship the beta"
	status := call(t, srv, http.MethodPut, "/api/v1/periods/m-2026-07/header",
		types.UpdateHeaderRequest{Goal: &goal}, nil)
	require.Equal(t, http.StatusOK, status)

	// Add a todo to the month.
	var added types.AddItemResponse
	status = call(t, srv, http.MethodPost, "/api/v1/periods/m-2026-07/items",
		types.AddItemRequest{Content: "finish onboarding flow", Type: types.ItemTypeTodo, Category: types.CategoryCareer}, &added)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, added.ItemID)

	// Assign it down to week 3 of July.
	var weekCopy types.AssignResponse
	status = call(t, srv, http.MethodPost, "/api/v1/periods/m-2026-07/items/"+added.ItemID+"/assign",
		types.AssignRequest{TargetPeriodID: "w-2026-07-3"}, &weekCopy)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, weekCopy.ItemID)

	// The week document was materialized by the assignment.
	var week types.Period
	status = call(t, srv, http.MethodGet, "/api/v1/periods/w-2026-07-3", nil, &week)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, types.LevelWeek, week.Level)

	// Completing the only copy completes the origin.
	var toggled types.ToggleResponse
	status = call(t, srv, http.MethodPost, "/api/v1/periods/m-2026-07/items/"+weekCopy.ItemID+"/toggle", nil, &toggled)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, toggled.Completed)

	var month types.Period
	status = call(t, srv, http.MethodGet, "/api/v1/periods/m-2026-07", nil, &month)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, goal, month.Goal)
	require.Len(t, month.Todos, 1)
	assert.True(t, month.Todos[0].Completed, "origin item should complete once its only child completes")

	// Summary reflects the cascade.
	var summary types.Summary
	status = call(t, srv, http.MethodGet, "/api/v1/periods/m-2026-07/summary", nil, &summary)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 100, summary.CompletionRate)
}

func TestDayRoutine(t *testing.T) {
	srv := newServer(t)

	var added types.AddItemResponse
	status := call(t, srv, http.MethodPost, "/api/v1/periods/d-2026-07-15/items",
		types.AddItemRequest{Content: "morning run", Type: types.ItemTypeRoutine, Category: types.CategoryHealth}, &added)
	require.Equal(t, http.StatusOK, status)

	// Schedule it into the dawn slot.
	var assigned types.AssignResponse
	status = call(t, srv, http.MethodPost, "/api/v1/periods/d-2026-07-15/items/"+added.ItemID+"/assign",
		types.AssignRequest{TimeSlot: types.TimeDawn}, &assigned)
	require.Equal(t, http.StatusOK, status)

	var day types.Period
	status = call(t, srv, http.MethodGet, "/api/v1/periods/d-2026-07-15", nil, &day)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, day.TimeSlots[types.TimeDawn], 1)
	assert.Equal(t, assigned.ItemID, day.TimeSlots[types.TimeDawn][0].ID)

	// Close out the day with a record.
	var rec types.DailyRecord
	status = call(t, srv, http.MethodPut, "/api/v1/periods/d-2026-07-15/record",
		types.UpdateRecordRequest{Content: "solid training day", Mood: types.MoodGreat, Highlights: []string{"5k PB"}}, &rec)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, types.MoodGreat, rec.Mood)

	var reloaded types.DailyRecord
	status = call(t, srv, http.MethodGet, "/api/v1/periods/d-2026-07-15/record", nil, &reloaded)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "solid training day", reloaded.Content)
	assert.Equal(t, []string{"5k PB"}, reloaded.Highlights)
}

func TestDeleteCascadesOverHTTP(t *testing.T) {
	srv := newServer(t)

	var added types.AddItemResponse
	status := call(t, srv, http.MethodPost, "/api/v1/periods/q-2026-3/items",
		types.AddItemRequest{Content: "quarterly OKRs", Type: types.ItemTypeTodo}, &added)
	require.Equal(t, http.StatusOK, status)

	// Fan out to two months of the quarter.
	for _, target := range []string{"m-2026-07", "m-2026-08"} {
		status = call(t, srv, http.MethodPost, "/api/v1/periods/q-2026-3/items/"+added.ItemID+"/assign",
			types.AssignRequest{TargetPeriodID: target}, nil)
		require.Equal(t, http.StatusOK, status)
	}

	var deleted types.DeleteItemResponse
	status = call(t, srv, http.MethodDelete, "/api/v1/periods/q-2026-3/items/"+added.ItemID, nil, &deleted)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 3, deleted.DeletedCount, "origin plus two copies")

	// Nothing referencing the item survives anywhere.
	var search types.SearchResponse
	status = call(t, srv, http.MethodGet, "/api/v1/search?q=OKRs", nil, &search)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, search.Matches)
}

func TestUnauthorizedWithoutKey(t *testing.T) {
	srv := newServer(t)

	resp, err := srv.Client().Get(srv.URL + "/api/v1/events")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Health stays open.
	resp2, err := srv.Client().Get(srv.URL + "/api/v1/health")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}
