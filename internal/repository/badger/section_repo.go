package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/minbar-press/minbar/internal/domain"
)

// SectionRepo implements SectionRepository using BadgerDB
type SectionRepo struct {
	db *DB
}

// NewSectionRepo creates a new BadgerDB-based section repository
func NewSectionRepo(db *DB) *SectionRepo {
	return &SectionRepo{db: db}
}

func sectionIDKey(id string) []byte {
	return []byte(fmt.Sprintf("section:id:%s", id))
}

func sectionTimeKey(section *domain.Section) []byte {
	return []byte(fmt.Sprintf("section:time:%020d:%s", section.CreatedAt.UnixNano(), section.ID))
}

// Create creates a new section
func (r *SectionRepo) Create(ctx context.Context, section *domain.Section) error {
	return r.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(section)
		if err != nil {
			return err
		}
		if err := txn.Set(sectionIDKey(section.ID), data); err != nil {
			return err
		}
		return txn.Set(sectionTimeKey(section), []byte(section.ID))
	})
}

// GetByID retrieves a section by ID
func (r *SectionRepo) GetByID(ctx context.Context, id string) (*domain.Section, error) {
	var section domain.Section
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sectionIDKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrSectionNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &section)
		})
	})
	if err != nil {
		return nil, err
	}
	return &section, nil
}

// List retrieves all sections in creation order
func (r *SectionRepo) List(ctx context.Context) ([]*domain.Section, error) {
	var sections []*domain.Section
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchSize = 50
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte("section:time:")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var id string
			if err := it.Item().Value(func(val []byte) error {
				id = string(val)
				return nil
			}); err != nil {
				continue
			}

			item, err := txn.Get(sectionIDKey(id))
			if err != nil {
				continue
			}
			var section domain.Section
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &section)
			}); err != nil {
				continue
			}
			sections = append(sections, &section)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sections, nil
}

// Delete deletes a section by ID
func (r *SectionRepo) Delete(ctx context.Context, id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(sectionIDKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrSectionNotFound
			}
			return err
		}
		var section domain.Section
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &section)
		}); err != nil {
			return err
		}

		txn.Delete(sectionTimeKey(&section))
		return txn.Delete(sectionIDKey(id))
	})
}
