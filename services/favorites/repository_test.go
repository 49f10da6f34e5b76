package favorites_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"calorease/internal/database"
	"calorease/models"
	"calorease/services/favorites"
)

func newSQLiteRepo(t *testing.T) *favorites.SQLiteRepository {
	t.Helper()

	db, err := database.NewDB(database.Config{DatabasePath: filepath.Join(t.TempDir(), "calorease.db")})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Conn().Exec(`
INSERT INTO users (id, username, password_hash, created_at, updated_at)
VALUES ('user-1', 'budi', 'x', datetime('now'), datetime('now')),
       ('user-2', 'sari', 'x', datetime('now'), datetime('now'))`); err != nil {
		t.Fatalf("seed users: %v", err)
	}

	return favorites.NewSQLiteRepository(db.Conn())
}

func sampleUpsert(recipeID, title string) models.FavoriteUpsert {
	return models.FavoriteUpsert{
		RecipeID:    recipeID,
		Title:       title,
		Description: "desc",
		Image:       "/recipe-image.jpg",
		Categories:  []string{"healthy"},
	}
}

func repos(t *testing.T) map[string]favorites.Repository {
	return map[string]favorites.Repository{
		"sqlite": newSQLiteRepo(t),
		"memory": favorites.NewMemoryRepository(),
	}
}

func TestAddAndList(t *testing.T) {
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			fav, err := repo.Add(ctx, "user-1", sampleUpsert("101", "Nasi Goreng"))
			if err != nil {
				t.Fatalf("add: %v", err)
			}
			if fav.ID == "" || !strings.Contains(fav.ID, "nasi-goreng") {
				t.Fatalf("expected slugified id, got %q", fav.ID)
			}

			list, err := repo.List(ctx, "user-1")
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(list) != 1 || list[0].Title != "Nasi Goreng" {
				t.Fatalf("unexpected list: %+v", list)
			}
			if len(list[0].Categories) != 1 || list[0].Categories[0] != "healthy" {
				t.Fatalf("categories not round-tripped: %+v", list[0].Categories)
			}
		})
	}
}

func TestDuplicateAddKeepsOneRecord(t *testing.T) {
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, err := repo.Add(ctx, "user-1", sampleUpsert("101", "Nasi Goreng")); err != nil {
				t.Fatalf("first add: %v", err)
			}
			if _, err := repo.Add(ctx, "user-1", sampleUpsert("101", "Nasi Goreng")); err != nil {
				t.Fatalf("second add: %v", err)
			}

			list, err := repo.List(ctx, "user-1")
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(list) != 1 {
				t.Fatalf("duplicate add should keep one record, got %d", len(list))
			}
		})
	}
}

func TestRemoveDeletesExactlyOne(t *testing.T) {
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			first, err := repo.Add(ctx, "user-1", sampleUpsert("101", "Nasi Goreng"))
			if err != nil {
				t.Fatalf("add: %v", err)
			}
			if _, err := repo.Add(ctx, "user-1", sampleUpsert("102", "Sayur Asem")); err != nil {
				t.Fatalf("add: %v", err)
			}

			if err := repo.Remove(ctx, "user-1", first.ID); err != nil {
				t.Fatalf("remove: %v", err)
			}

			list, err := repo.List(ctx, "user-1")
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(list) != 1 || list[0].Title != "Sayur Asem" {
				t.Fatalf("expected only the other favorite to remain, got %+v", list)
			}
		})
	}
}

func TestRemoveMissingReturnsNotFound(t *testing.T) {
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			if err := repo.Remove(context.Background(), "user-1", "no-such-id"); err != favorites.ErrNotFound {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestTitleLookups(t *testing.T) {
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, err := repo.Add(ctx, "user-1", sampleUpsert("101", "Nasi Goreng")); err != nil {
				t.Fatalf("add: %v", err)
			}

			fav, err := repo.GetByTitle(ctx, "user-1", "Nasi Goreng")
			if err != nil {
				t.Fatalf("get by title: %v", err)
			}
			if fav == nil || fav.RecipeID != "101" {
				t.Fatalf("unexpected favorite: %+v", fav)
			}

			ok, err := repo.IsFavorite(ctx, "user-1", "Nasi Goreng")
			if err != nil || !ok {
				t.Fatalf("expected title to be favorited, ok=%v err=%v", ok, err)
			}
			ok, err = repo.IsFavorite(ctx, "user-1", "Rendang")
			if err != nil || ok {
				t.Fatalf("expected missing title to not be favorited, ok=%v err=%v", ok, err)
			}
		})
	}
}

func TestSQLiteScopesFavoritesByUser(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	fav, err := repo.Add(ctx, "user-1", sampleUpsert("101", "Nasi Goreng"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	list, err := repo.List(ctx, "user-2")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no favorites for the other user, got %+v", list)
	}

	if err := repo.Remove(ctx, "user-2", fav.ID); err != favorites.ErrPermissionDenied {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestSQLiteRejectsUnauthenticated(t *testing.T) {
	repo := newSQLiteRepo(t)
	if _, err := repo.Add(context.Background(), "", sampleUpsert("101", "Nasi Goreng")); err != favorites.ErrNotAuthenticated {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}
