package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/desertthunder/condoriano/internal/models"
	"github.com/desertthunder/condoriano/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	shared.ConfigureDatabase(db, 1, 1)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestListRepository(t *testing.T) {
	ctx := context.Background()
	userKey := models.ListKey{Kind: models.Reminders, Owner: "U1"}
	replyKey := models.ListKey{Kind: models.Replies, Owner: models.GlobalOwner}

	t.Run("GetList absent", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewListRepository(db)
		_, err := repo.GetList(ctx, userKey)
		if !errors.Is(err, shared.ErrListNotFound) {
			t.Fatalf("expected ErrListNotFound, got %v", err)
		}
	})

	t.Run("SaveList and GetList", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewListRepository(db)
		list := models.NewItemList(userKey)
		list.Append("buy pizza")
		list.Append("call mom")

		if err := repo.SaveList(ctx, list); err != nil {
			t.Fatalf("failed to save list: %v", err)
		}

		got, err := repo.GetList(ctx, userKey)
		if err != nil {
			t.Fatalf("failed to get list: %v", err)
		}
		if len(got.Items) != 2 || got.Items[0] != "buy pizza" || got.Items[1] != "call mom" {
			t.Errorf("unexpected items %v", got.Items)
		}
	})

	t.Run("SaveList stamps timestamps", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewListRepository(db)
		list := models.NewItemList(userKey)
		if err := repo.SaveList(ctx, list); err != nil {
			t.Fatalf("failed to save list: %v", err)
		}
		if list.CreatedAt.IsZero() || list.UpdatedAt.IsZero() {
			t.Errorf("expected save to stamp timestamps, got %v / %v", list.CreatedAt, list.UpdatedAt)
		}

		got, err := repo.GetList(ctx, userKey)
		if err != nil {
			t.Fatalf("failed to get list: %v", err)
		}
		if got.UpdatedAt.IsZero() {
			t.Error("expected stored updated_at")
		}
	})

	t.Run("SaveList overwrites", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewListRepository(db)
		first := models.NewItemList(replyKey)
		first.Append("hello guys")
		if err := repo.SaveList(ctx, first); err != nil {
			t.Fatalf("failed to save list: %v", err)
		}

		second := models.NewItemList(replyKey)
		if err := repo.SaveList(ctx, second); err != nil {
			t.Fatalf("failed to overwrite list: %v", err)
		}

		got, err := repo.GetList(ctx, replyKey)
		if err != nil {
			t.Fatalf("empty list should still exist: %v", err)
		}
		if len(got.Items) != 0 {
			t.Errorf("expected empty list, got %v", got.Items)
		}

		var rows int
		if err := db.QueryRow("SELECT COUNT(*) FROM item_lists").Scan(&rows); err != nil {
			t.Fatalf("failed to count rows: %v", err)
		}
		if rows != 1 {
			t.Errorf("expected a single singleton row, got %d", rows)
		}
	})

	t.Run("lists are isolated by key", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewListRepository(db)
		for _, owner := range []string{"U1", "U2"} {
			_, err := repo.UpdateList(ctx, models.ListKey{Kind: models.Reminders, Owner: owner}, func(l *models.ItemList) error {
				l.Append("note for " + owner)
				return nil
			})
			if err != nil {
				t.Fatalf("failed to update list: %v", err)
			}
		}

		got, err := repo.GetList(ctx, models.ListKey{Kind: models.Reminders, Owner: "U2"})
		if err != nil {
			t.Fatalf("failed to get list: %v", err)
		}
		if len(got.Items) != 1 || got.Items[0] != "note for U2" {
			t.Errorf("unexpected items %v", got.Items)
		}

		all, err := repo.List(ctx, models.Reminders)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(all) != 2 || all[0].Key.Owner != "U1" {
			t.Errorf("unexpected lists %+v", all)
		}
	})

	t.Run("UpdateList abort writes nothing", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewListRepository(db)
		abort := errors.New("abort")
		_, err := repo.UpdateList(ctx, userKey, func(l *models.ItemList) error {
			l.Append("never saved")
			return abort
		})
		if !errors.Is(err, abort) {
			t.Fatalf("expected abort error, got %v", err)
		}

		if _, err := repo.GetList(ctx, userKey); !errors.Is(err, shared.ErrListNotFound) {
			t.Errorf("expected list to remain absent, got %v", err)
		}
	})

	t.Run("UpdateList concurrent appends are not lost", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewListRepository(db)
		const writers = 25

		var wg sync.WaitGroup
		errs := make(chan error, writers)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := repo.UpdateList(ctx, replyKey, func(l *models.ItemList) error {
					l.Append(fmt.Sprintf("reply %d", i))
					return nil
				})
				errs <- err
			}(i)
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			if err != nil {
				t.Fatalf("concurrent update failed: %v", err)
			}
		}

		got, err := repo.GetList(ctx, replyKey)
		if err != nil {
			t.Fatalf("failed to get list: %v", err)
		}
		if len(got.Items) != writers {
			t.Errorf("expected %d items, got %d", writers, len(got.Items))
		}
		if n := repo.locks.size(); n != 0 {
			t.Errorf("expected lock entries to be released, %d remain", n)
		}
	})

	t.Run("invalid key", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewListRepository(db)
		err := repo.SaveList(ctx, models.NewItemList(models.ListKey{Kind: models.Reminders}))
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("closed database reports storage errors", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewListRepository(db)
		db.Close()

		if _, err := repo.GetList(ctx, userKey); !errors.Is(err, shared.ErrStorage) {
			t.Errorf("GetList: expected ErrStorage, got %v", err)
		}
		if err := repo.SaveList(ctx, models.NewItemList(userKey)); !errors.Is(err, shared.ErrStorage) {
			t.Errorf("SaveList: expected ErrStorage, got %v", err)
		}
		_, err := repo.UpdateList(ctx, userKey, func(*models.ItemList) error { return nil })
		if !errors.Is(err, shared.ErrStorage) {
			t.Errorf("UpdateList: expected ErrStorage, got %v", err)
		}
	})
}

func TestKeyedMutex(t *testing.T) {
	km := NewKeyedMutex()

	unlockA := km.Lock("a")
	unlockB := km.Lock("b")

	acquired := make(chan struct{})
	go func() {
		unlock := km.Lock("a")
		close(acquired)
		unlock()
	}()

	select {
	case <-acquired:
		t.Fatal("second lock on the same key should block")
	default:
	}

	unlockA()
	<-acquired
	unlockB()

	if n := km.size(); n != 0 {
		t.Errorf("expected no live entries, got %d", n)
	}
}
