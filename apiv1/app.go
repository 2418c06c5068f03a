package apiv1

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"gorm.io/gorm"

	"app-pinger/meta"
)

// App represents an application URL registered for keep-alive pinging
type App struct {
	meta.BaseResource `json:",inline"`

	// URL is the unique endpoint that gets pinged
	URL string `gorm:"size:500;not null;unique" json:"url" binding:"required"`

	// Name is an optional human-readable label for the app
	Name string `gorm:"size:100" json:"name,omitempty"`

	// Enabled indicates whether the app is included in ping sweeps
	Enabled *bool `gorm:"default:true" json:"enabled,omitempty"`
}

// TableName specifies the table name for GORM
func (App) TableName() string {
	return "apps"
}

// IsEnabled reports whether the app should be swept. Nil means enabled.
func (a *App) IsEnabled() bool {
	return a.Enabled == nil || *a.Enabled
}

// Validate implements ResourceValidator interface. TypeMeta is not
// checked here, the create/update hooks stamp it server-side.
func (a *App) Validate() error {
	if a.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(a.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("url scheme must be http or https")
	}
	if u.Host == "" {
		return errors.New("url must be absolute")
	}

	return nil
}

// NormalizeURL trims surrounding whitespace so that equal URLs
// always hit the unique constraint.
func (a *App) NormalizeURL() {
	a.URL = strings.TrimSpace(a.URL)
}

// BeforeCreate is a GORM hook that runs before creating an app
func (a *App) BeforeCreate(tx *gorm.DB) error {
	// Set TypeMeta fields
	a.Kind = "App"
	a.APIVersion = "v1"

	a.NormalizeURL()

	// New apps stay Pending until the first sweep reaches them
	a.SetStatus(meta.PhasePending, "App registered, awaiting first ping", "Registered")

	if err := a.Validate(); err != nil {
		return err
	}

	// Call parent BeforeCreate
	return a.BaseResource.BeforeCreate(tx)
}

// BeforeUpdate is a GORM hook that runs before updating an app
func (a *App) BeforeUpdate(tx *gorm.DB) error {
	// Set TypeMeta fields
	a.Kind = "App"
	a.APIVersion = "v1"

	a.NormalizeURL()

	if err := a.Validate(); err != nil {
		return err
	}

	// Call parent BeforeUpdate
	return a.BaseResource.BeforeUpdate(tx)
}

// BeforeDelete is a GORM hook that runs before deleting an app
func (a *App) BeforeDelete(tx *gorm.DB) error {
	a.SetStatus(meta.PhaseDeleted, "App removed from pinging", "Deleted")

	// Call parent BeforeDelete
	return a.BaseResource.BeforeDelete(tx)
}
