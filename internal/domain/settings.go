package domain

import "time"

// DefaultSiteName is used when no settings record exists yet.
const DefaultSiteName = "Minbar"

// SiteSettings holds the single site-wide settings record
type SiteSettings struct {
	ID        string    `json:"id" db:"id"`
	LogoData  string    `json:"logo_data,omitempty" db:"logo_data"` // Base64 data URL
	LogoName  string    `json:"logo_name,omitempty" db:"logo_name"`
	SiteName  string    `json:"site_name" db:"site_name"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// LogoUpdateRequest represents a request to update the site logo
type LogoUpdateRequest struct {
	LogoData string `json:"logo_data"`
	LogoName string `json:"logo_name"`
}
