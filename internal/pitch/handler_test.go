package pitch

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pitchlink/internal/api"
	"pitchlink/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T, repo Repository, as auth.Identity) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, api.RegisterGinValidators())

	h := NewHandler(newTestService(repo))
	r := gin.New()
	r.Use(func(c *gin.Context) { auth.SetIdentity(c, as) })

	r.GET("/v1/pitches/:id", h.Get)
	r.POST("/v1/pitches", h.Create)
	r.DELETE("/v1/pitches/:id", h.Delete)
	r.GET("/api/pitches", h.APIList)
	r.POST("/api/pitches", h.APICreate)
	r.PUT("/api/pitches/:id", h.APIUpdate)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAPIListEnvelope(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListByOwner", mock.Anything, 1).Return([]Pitch{{ID: 10, OwnerID: 1, Name: "A"}}, nil)

	w := do(setupRouter(t, repo, ownerA), http.MethodGet, "/api/pitches?owner_id=1", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool    `json:"success"`
		Data    []Pitch `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data, 1)
}

func TestAPIListForeignOwnerID(t *testing.T) {
	w := do(setupRouter(t, new(MockRepository), ownerA), http.MethodGet, "/api/pitches?owner_id=2", "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestAPICreateValidation(t *testing.T) {
	w := do(setupRouter(t, new(MockRepository), ownerA), http.MethodPost, "/api/pitches",
		`{"name":"Turf","location":"Ikeja","price_per_hour":0,"is_active":true}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"price_per_hour"`)
}

func TestCreateAsPlayerForbidden(t *testing.T) {
	w := do(setupRouter(t, new(MockRepository), player), http.MethodPost, "/v1/pitches",
		`{"name":"Turf","location":"Ikeja","price_per_hour":5000,"is_active":true}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAPIUpdate(t *testing.T) {
	repo := new(MockRepository)
	name := "Renamed"
	repo.On("GetByID", mock.Anything, 10).Return(&Pitch{ID: 10, OwnerID: 1}, nil)
	repo.On("Update", mock.Anything, 10, UpdatePitchRequest{Name: &name}).Return(&Pitch{ID: 10, OwnerID: 1, Name: name}, nil)

	w := do(setupRouter(t, repo, ownerA), http.MethodPut, "/api/pitches/10", `{"name":"Renamed"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Renamed"`)
}

func TestGetBadID(t *testing.T) {
	w := do(setupRouter(t, new(MockRepository), ownerA), http.MethodGet, "/v1/pitches/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDelete(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, 10).Return(&Pitch{ID: 10, OwnerID: 1}, nil)
	repo.On("Delete", mock.Anything, 10).Return(nil)

	w := do(setupRouter(t, repo, ownerA), http.MethodDelete, "/v1/pitches/10", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}
