package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/testhelpers"
	"github.com/pageza/recipebox/backend/internal/types"
)

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testhelpers.NewSQLiteDB(t)
	router := gin.New()
	NewHealthHandler(db).RegisterRoutes(router)

	w := performRequest(router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":"up"}`, w.Body.String())

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w = performRequest(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// setupRecipeFlowRouter wires the real service over sqlite
func setupRecipeFlowRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewRecipeHandler(service.NewRecipeService(testhelpers.NewSQLiteDB(t), nil), nil).RegisterRoutes(router)
	router.NoRoute(NoRoute)
	return router
}

func TestRecipeFlow(t *testing.T) {
	router := setupRecipeFlowRouter(t)

	// create with defaults
	w := performRequest(router, http.MethodPost, "/recipes", map[string]string{"title": "Soup", "category": "dinner"})
	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.NotEmpty(t, raw["id"])
	assert.Equal(t, float64(0), raw["ratings"])
	assert.Equal(t, float64(0), raw["favorites"])
	assert.Equal(t, []interface{}{}, raw["comments"])
	assert.Equal(t, []interface{}{}, raw["ingredients"])

	var created model.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	path := "/recipes/" + created.ID.String()

	// partial update leaves other fields alone
	w = performRequest(router, http.MethodPut, path, map[string]interface{}{"ratings": 5})
	require.Equal(t, http.StatusOK, w.Code)
	var updated model.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, float64(5), updated.Ratings)
	assert.Equal(t, "Soup", updated.Title)
	assert.Equal(t, "dinner", updated.Category)
	assert.True(t, created.DateAdded.Equal(updated.DateAdded))

	// favorites twice
	for i := 0; i < 2; i++ {
		w = performRequest(router, http.MethodPost, path+"/favorite", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	var favored model.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &favored))
	assert.Equal(t, int64(2), favored.Favorites)

	// one comment, dated by the server
	before := time.Now().Add(-time.Second)
	w = performRequest(router, http.MethodPost, path+"/comment", map[string]string{"user": "a", "comment": "b"})
	require.Equal(t, http.StatusOK, w.Code)
	var commented model.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &commented))
	require.Len(t, commented.Comments, 1)
	assert.True(t, commented.Comments[0].Date.After(before))

	// shows up in its category and top-rated
	w = performRequest(router, http.MethodGet, "/recipes/category/dinner", nil)
	assert.Contains(t, w.Body.String(), created.ID.String())
	w = performRequest(router, http.MethodGet, "/recipes/category/Dinner", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
	w = performRequest(router, http.MethodGet, "/recipes/top-rated", nil)
	assert.Contains(t, w.Body.String(), created.ID.String())

	// delete, then it is gone
	w = performRequest(router, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = performRequest(router, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Recipe not found", decodeMessage(t, w))

	// deleting again still succeeds
	w = performRequest(router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecipeFlowMissingRecipe(t *testing.T) {
	router := setupRecipeFlowRouter(t)
	path := "/recipes/" + uuid.NewString()

	for _, tc := range []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodGet, path, nil},
		{http.MethodPut, path, map[string]int{"ratings": 1}},
		{http.MethodPost, path + "/comment", map[string]string{"user": "a", "comment": "b"}},
		{http.MethodPost, path + "/favorite", nil},
	} {
		w := performRequest(router, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNotFound, w.Code, "%s %s", tc.method, tc.path)
		assert.Equal(t, "Recipe not found", decodeMessage(t, w))
	}
}

func TestNoRoute(t *testing.T) {
	router := setupRecipeFlowRouter(t)

	w := performRequest(router, http.MethodGet, "/nowhere", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp types.MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Not found", resp.Message)
}
