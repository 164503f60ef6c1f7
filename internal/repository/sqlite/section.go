package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/minbar-press/minbar/internal/domain"
)

// SectionRepo implements the SectionRepository interface using SQLite
type SectionRepo struct {
	db *DB
}

// NewSectionRepo creates a new section repository
func NewSectionRepo(db *DB) *SectionRepo {
	return &SectionRepo{db: db}
}

// Create creates a new section
func (r *SectionRepo) Create(ctx context.Context, section *domain.Section) error {
	query := `INSERT INTO sections (id, name, description, created_at) VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		section.ID,
		section.Name,
		section.Description,
		section.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create section: %w", err)
	}
	return nil
}

// GetByID retrieves a section by ID
func (r *SectionRepo) GetByID(ctx context.Context, id string) (*domain.Section, error) {
	query := `SELECT id, name, description, created_at FROM sections WHERE id = ?`

	var section domain.Section
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&section.ID,
		&section.Name,
		&section.Description,
		&section.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get section: %w", err)
	}
	return &section, nil
}

// List retrieves all sections in creation order
func (r *SectionRepo) List(ctx context.Context) ([]*domain.Section, error) {
	query := `SELECT id, name, description, created_at FROM sections ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	defer rows.Close()

	var sections []*domain.Section
	for rows.Next() {
		var section domain.Section
		if err := rows.Scan(&section.ID, &section.Name, &section.Description, &section.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		sections = append(sections, &section)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sections: %w", err)
	}
	return sections, nil
}

// Delete deletes a section by ID
func (r *SectionRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sections WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete section: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return domain.ErrSectionNotFound
	}
	return nil
}
