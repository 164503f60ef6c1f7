package domain

import "time"

// Section is a named category grouping articles
type Section struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" binding:"required,min=1,max=100"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Validate validates the section fields
func (s *Section) Validate() error {
	if s.Name == "" {
		return NewValidationError("name", "name is required")
	}
	if len(s.Name) > 100 {
		return NewValidationError("name", "name must be at most 100 characters")
	}
	return nil
}

// SectionCreateRequest represents a request to create a section
type SectionCreateRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description"`
}

// SectionSummary is the subset of section fields returned in search results
type SectionSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ToSummary converts a section to its search-result form
func (s *Section) ToSummary() *SectionSummary {
	return &SectionSummary{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
	}
}
