package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/condoriano/internal/models"
	"github.com/desertthunder/condoriano/internal/shared"
)

// ListRepository persists [models.ItemList] documents in SQLite.
type ListRepository struct {
	db    *sql.DB
	locks *KeyedMutex
}

// NewListRepository creates a new [ListRepository] with the given database connection
func NewListRepository(db *sql.DB) *ListRepository {
	return &ListRepository{db: db, locks: NewKeyedMutex()}
}

// querier is satisfied by both [sql.DB] and [sql.Tx].
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const selectList = `
	SELECT items, created_at, updated_at
	FROM item_lists
	WHERE kind = ? AND owner = ?
`

const upsertList = `
	INSERT INTO item_lists (id, kind, owner, items, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (kind, owner) DO UPDATE SET items = excluded.items, updated_at = excluded.updated_at
`

// GetList returns the list stored under key.
//
// Returns [shared.ErrListNotFound] when the list was never created and [shared.ErrStorage] for any other failure.
func (r *ListRepository) GetList(ctx context.Context, key models.ListKey) (*models.ItemList, error) {
	return r.get(ctx, r.db, key)
}

// SaveList upserts the full list under its key.
func (r *ListRepository) SaveList(ctx context.Context, list *models.ItemList) error {
	unlock := r.locks.Lock(list.Key.String())
	defer unlock()

	return r.save(ctx, r.db, list)
}

// UpdateList loads the list under key (an empty list when absent), applies fn, and saves the result atomically.
//
// When fn returns an error nothing is written and the error is returned as is.
func (r *ListRepository) UpdateList(ctx context.Context, key models.ListKey, fn func(list *models.ItemList) error) (*models.ItemList, error) {
	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}

	unlock := r.locks.Lock(key.String())
	defer unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to begin transaction: %w", shared.ErrStorage, err)
	}
	defer tx.Rollback()

	list, err := r.get(ctx, tx, key)
	if errors.Is(err, shared.ErrListNotFound) {
		list = models.NewItemList(key)
	} else if err != nil {
		return nil, err
	}

	if err := fn(list); err != nil {
		return list, err
	}

	if err := r.save(ctx, tx, list); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: failed to commit list %s: %w", shared.ErrStorage, key, err)
	}
	return list, nil
}

// List returns every list of the given kind ordered by owner.
func (r *ListRepository) List(ctx context.Context, kind models.ListKind) ([]*models.ItemList, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT owner, items, created_at, updated_at
		FROM item_lists
		WHERE kind = ?
		ORDER BY owner ASC
	`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query lists: %w", shared.ErrStorage, err)
	}
	defer rows.Close()

	var lists []*models.ItemList
	for rows.Next() {
		var (
			owner     string
			raw       string
			createdAt time.Time
			updatedAt time.Time
		)
		if err := rows.Scan(&owner, &raw, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: failed to scan list: %w", shared.ErrStorage, err)
		}

		list, err := decodeList(models.ListKey{Kind: kind, Owner: owner}, raw, createdAt, updatedAt)
		if err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: row iteration error: %w", shared.ErrStorage, err)
	}
	return lists, nil
}

func (r *ListRepository) get(ctx context.Context, q querier, key models.ListKey) (*models.ItemList, error) {
	var (
		raw       string
		createdAt time.Time
		updatedAt time.Time
	)

	err := q.QueryRowContext(ctx, selectList, string(key.Kind), key.Owner).Scan(&raw, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrListNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query list %s: %w", shared.ErrStorage, key, err)
	}

	return decodeList(key, raw, createdAt, updatedAt)
}

func (r *ListRepository) save(ctx context.Context, q querier, list *models.ItemList) error {
	if err := list.Key.Validate(); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}

	items := list.Items
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: failed to encode list %s: %w", shared.ErrStorage, list.Key, err)
	}

	now := time.Now()
	if list.CreatedAt.IsZero() {
		list.CreatedAt = now
	}
	list.UpdatedAt = now

	_, err = q.ExecContext(ctx, upsertList,
		shared.GenerateID(),
		string(list.Key.Kind),
		list.Key.Owner,
		string(raw),
		list.CreatedAt,
		list.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to save list %s: %w", shared.ErrStorage, list.Key, err)
	}
	return nil
}

func decodeList(key models.ListKey, raw string, createdAt, updatedAt time.Time) (*models.ItemList, error) {
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: corrupt items for %s: %w", shared.ErrStorage, key, err)
	}
	if items == nil {
		items = []string{}
	}
	return &models.ItemList{Key: key, Items: items, CreatedAt: createdAt, UpdatedAt: updatedAt}, nil
}
