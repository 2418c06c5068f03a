package apiv1

import "gorm.io/gorm"

// PingRecord stores the outcome of a single ping against an app
type PingRecord struct {
	gorm.Model

	// AppID references the app that was pinged
	AppID uint `gorm:"index;not null" json:"appId"`

	// URL is the target URL at the time of the ping
	URL string `gorm:"size:500;not null" json:"url"`

	// StatusCode is the HTTP status returned, 0 when the request failed
	StatusCode int `json:"statusCode"`

	// Success is true when the ping got a 2xx or 3xx response
	Success bool `json:"success"`

	// LatencyMs is the round-trip time in milliseconds
	LatencyMs int64 `json:"latencyMs"`

	// Error holds the failure reason when the request did not complete
	Error string `gorm:"size:500" json:"error,omitempty"`
}

// TableName specifies the table name for GORM
func (PingRecord) TableName() string {
	return "ping_records"
}
