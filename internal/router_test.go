package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"app-pinger/apiv1"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	db := setupTestDB(t)

	// Register routes
	routerObj := NewRouter[apiv1.App](router, db)
	routerObj.Register("/api/v1/apps")

	return router, db
}

func TestRouter_CRUD(t *testing.T) {
	r, db := setupTestRouter(t)
	defer cleanupTestDB(t, db)

	// Test app creation
	app := apiv1.App{URL: "https://example.koyeb.app", Name: "example"}

	body, err := json.Marshal(app)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/apps", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var created apiv1.App
	err = json.NewDecoder(w.Body).Decode(&created)
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	// Test app retrieval
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", fmt.Sprintf("/api/v1/apps/%d", created.ID), nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var found apiv1.App
	err = json.NewDecoder(w.Body).Decode(&found)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, app.URL, found.URL)
	assert.Equal(t, app.Name, found.Name)

	// Test app update
	found.Name = "renamed"
	body, err = json.Marshal(found)
	assert.NoError(t, err)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("PUT", fmt.Sprintf("/api/v1/apps/%d", found.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Test app deletion
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("DELETE", fmt.Sprintf("/api/v1/apps/%d", found.ID), nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Verify deletion
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", fmt.Sprintf("/api/v1/apps/%d", found.ID), nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_Validation(t *testing.T) {
	router, db := setupTestRouter(t)
	defer cleanupTestDB(t, db)

	// Scheme other than http/https must be rejected
	app := &apiv1.App{URL: "ftp://example.com"}
	app.Kind = "App"
	app.APIVersion = "v1"
	body, _ := json.Marshal(app)
	req := httptest.NewRequest("POST", "/api/v1/apps", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing URL fails request binding
	body = []byte(`{"name":"no-url"}`)
	req = httptest.NewRequest("POST", "/api/v1/apps", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_List(t *testing.T) {
	router, db := setupTestRouter(t)
	defer cleanupTestDB(t, db)

	// Create test apps
	apps := []apiv1.App{
		{URL: "https://one.koyeb.app"},
		{URL: "https://two.koyeb.app"},
		{URL: "https://three.koyeb.app"},
	}

	for _, app := range apps {
		err := db.Create(&app).Error
		assert.NoError(t, err)
	}

	// Test listing apps
	req := httptest.NewRequest("GET", "/api/v1/apps", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []apiv1.App
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 3)
}

func TestRouter_Pagination(t *testing.T) {
	router, db := setupTestRouter(t)
	defer cleanupTestDB(t, db)

	for i := 0; i < 3; i++ {
		err := db.Create(&apiv1.App{URL: fmt.Sprintf("https://app%d.koyeb.app", i)}).Error
		assert.NoError(t, err)
	}

	// Test pagination
	req := httptest.NewRequest("GET", "/api/v1/apps?page=1&size=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []apiv1.App
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 2)
}

func TestRouter_Concurrent(t *testing.T) {
	router, db := setupTestRouter(t)
	defer cleanupTestDB(t, db)

	err := db.Create(&apiv1.App{URL: "https://example.koyeb.app"}).Error
	assert.NoError(t, err)

	// Test concurrent requests
	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			req := httptest.NewRequest("GET", "/api/v1/apps", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
