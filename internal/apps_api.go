package internal

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"app-pinger/apiv1"
)

// AppRequest is the wire format of the legacy registry endpoints
type AppRequest struct {
	URL string `json:"url" binding:"required"`
}

// AppsAPI serves the legacy flat registry endpoints kept for existing
// clients: bare URL lists and message responses instead of full resources.
type AppsAPI struct {
	db   *gorm.DB
	apps *DAO[apiv1.App]
}

// NewAppsAPI creates the legacy registry API on top of the given database
func NewAppsAPI(db *gorm.DB) *AppsAPI {
	return &AppsAPI{
		db:   db,
		apps: NewDAO[apiv1.App](db),
	}
}

// Register wires the legacy routes onto the engine. The optional auth
// middleware guards the mutating endpoints only.
func (a *AppsAPI) Register(router *gin.Engine, auth gin.HandlerFunc) {
	router.GET("/", a.Root)
	router.GET("/apps", a.ListURLs)

	mutating := router.Group("")
	if auth != nil {
		mutating.Use(auth)
	}
	mutating.POST("/apps", a.AddApp)
	mutating.DELETE("/apps", a.RemoveApp)

	router.GET("/api/v1/apps/:id/pings", a.ListPings)
}

// Root handles the health/banner endpoint
func (a *AppsAPI) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "App Pinger is running"})
}

// ListURLs returns the registered URLs as a flat JSON array
func (a *AppsAPI) ListURLs(c *gin.Context) {
	apps, err := a.apps.ListAll(nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	urls := make([]string, 0, len(apps))
	for _, app := range apps {
		urls = append(urls, app.URL)
	}
	c.JSON(http.StatusOK, urls)
}

// AddApp registers a URL for pinging, rejecting duplicates
func (a *AppsAPI) AddApp(c *gin.Context) {
	var req AppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app := apiv1.App{URL: req.URL}
	app.NormalizeURL()

	err := a.apps.Transaction(func(tx *gorm.DB) error {
		var existing apiv1.App
		err := tx.Where("url = ?", app.URL).First(&existing).Error
		if err == nil {
			return gorm.ErrDuplicatedKey
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		return tx.Create(&app).Error
	})
	if err != nil {
		if err == gorm.ErrDuplicatedKey {
			c.JSON(http.StatusBadRequest, gin.H{"error": "App already exists."})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "App added for pinging."})
}

// RemoveApp deletes a URL from the registry. Removal is idempotent,
// unknown URLs still get the success message.
func (a *AppsAPI) RemoveApp(c *gin.Context) {
	var req AppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := a.apps.DeleteWhere(map[string]interface{}{"url": req.URL}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "App removed from pinging."})
}

// ListPings returns the most recent ping records for an app, newest first
func (a *AppsAPI) ListPings(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if _, err := a.apps.Get(uint(id)); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 {
		limit = 20
	}
	if limit > 200 {
		limit = 200
	}

	var records []apiv1.PingRecord
	err = a.db.
		Where("app_id = ?", uint(id)).
		Order("id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}
