package apiv1

import (
	"testing"

	"app-pinger/meta"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	// Migrate app tables
	err = db.AutoMigrate(&App{}, &PingRecord{})
	assert.NoError(t, err)

	// Verify tables were created
	var tables []string
	err = db.Raw("SELECT name FROM sqlite_master WHERE type='table'").Scan(&tables).Error
	assert.NoError(t, err)
	assert.Contains(t, tables, "apps")
	assert.Contains(t, tables, "ping_records")

	return db
}

// cleanupTestDB closes the database connection
func cleanupTestDB(t *testing.T, db *gorm.DB) {
	sqlDB, err := db.DB()
	assert.NoError(t, err)
	err = sqlDB.Close()
	assert.NoError(t, err)
}

func TestApp_Creation(t *testing.T) {
	db := setupTestDB(t)
	defer cleanupTestDB(t, db)

	app := &App{
		URL:  "https://example.koyeb.app",
		Name: "example",
	}

	err := db.Create(app).Error
	assert.NoError(t, err)

	// Verify fields
	assert.NotEmpty(t, app.ID)
	assert.NotEmpty(t, app.UID)
	assert.Equal(t, "https://example.koyeb.app", app.URL)
	assert.Equal(t, "App", app.Kind)
	assert.Equal(t, "v1", app.APIVersion)
	assert.Equal(t, meta.PhasePending, app.Status.Phase)
	assert.True(t, app.IsEnabled())
}

func TestApp_UniqueURL(t *testing.T) {
	db := setupTestDB(t)
	defer cleanupTestDB(t, db)

	err := db.Create(&App{URL: "https://example.koyeb.app"}).Error
	assert.NoError(t, err)

	// Second registration of the same URL must fail
	err = db.Create(&App{URL: "https://example.koyeb.app"}).Error
	assert.Error(t, err)

	// Whitespace is trimmed before the uniqueness check
	err = db.Create(&App{URL: "  https://example.koyeb.app  "}).Error
	assert.Error(t, err)
}

func TestApp_Validate(t *testing.T) {
	base := meta.BaseResource{
		TypeMeta: meta.TypeMeta{
			Kind:       "App",
			APIVersion: "v1",
		},
	}

	tests := []struct {
		name    string
		app     App
		wantErr bool
	}{
		{
			name:    "valid https url",
			app:     App{URL: "https://example.com/health", BaseResource: base},
			wantErr: false,
		},
		{
			name:    "valid http url",
			app:     App{URL: "http://example.com:8000", BaseResource: base},
			wantErr: false,
		},
		{
			name:    "missing url",
			app:     App{BaseResource: base},
			wantErr: true,
		},
		{
			name:    "unsupported scheme",
			app:     App{URL: "ftp://example.com", BaseResource: base},
			wantErr: true,
		},
		{
			name:    "relative url",
			app:     App{URL: "/health", BaseResource: base},
			wantErr: true,
		},
		{
			name:    "missing host",
			app:     App{URL: "https://", BaseResource: base},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.app.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApp_Enabled(t *testing.T) {
	db := setupTestDB(t)
	defer cleanupTestDB(t, db)

	app := &App{URL: "https://example.koyeb.app"}
	err := db.Create(app).Error
	assert.NoError(t, err)
	assert.True(t, app.IsEnabled())

	// Disable the app
	disabled := false
	app.Enabled = &disabled
	err = db.Save(app).Error
	assert.NoError(t, err)

	var found App
	err = db.First(&found, app.ID).Error
	assert.NoError(t, err)
	assert.False(t, found.IsEnabled())
}

func TestApp_HealthStatus(t *testing.T) {
	db := setupTestDB(t)
	defer cleanupTestDB(t, db)

	app := &App{URL: "https://example.koyeb.app"}
	err := db.Create(app).Error
	assert.NoError(t, err)
	assert.Equal(t, meta.PhasePending, app.Status.Phase)

	app.MarkHealthy("responded with 200")
	err = db.Save(app).Error
	assert.NoError(t, err)

	var found App
	err = db.First(&found, app.ID).Error
	assert.NoError(t, err)
	assert.Equal(t, meta.PhaseHealthy, found.Status.Phase)
	assert.Equal(t, "PingSucceeded", found.Status.Reason)
}

func TestPingRecord_Creation(t *testing.T) {
	db := setupTestDB(t)
	defer cleanupTestDB(t, db)

	app := &App{URL: "https://example.koyeb.app"}
	err := db.Create(app).Error
	assert.NoError(t, err)

	record := &PingRecord{
		AppID:      app.ID,
		URL:        app.URL,
		StatusCode: 200,
		Success:    true,
		LatencyMs:  42,
	}
	err = db.Create(record).Error
	assert.NoError(t, err)
	assert.NotZero(t, record.ID)

	var count int64
	err = db.Model(&PingRecord{}).Where("app_id = ?", app.ID).Count(&count).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
