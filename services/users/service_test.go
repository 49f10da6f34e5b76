package users_test

import (
	"context"
	"path/filepath"
	"testing"

	"calorease/internal/database"
	"calorease/models"
	"calorease/services/users"
)

func newService(t *testing.T) *users.Service {
	t.Helper()

	db, err := database.NewDB(database.Config{DatabasePath: filepath.Join(t.TempDir(), "calorease.db")})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return users.NewService(db.Conn())
}

func TestSignupAndAuthenticate(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, "budi", "rahasia123")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected created user to have an id")
	}
	if created.PasswordHash == "rahasia123" {
		t.Fatalf("password stored in plaintext")
	}

	user, err := svc.Authenticate(ctx, "budi", "rahasia123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("authenticated wrong user: %s != %s", user.ID, created.ID)
	}

	if _, err := svc.Authenticate(ctx, "budi", "salah"); err != users.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "ghost", "rahasia123"); err != users.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestSignupRejectsDuplicateUsername(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "budi", "rahasia123"); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, err := svc.Signup(ctx, "budi", "lain456"); err != users.ErrUsernameExists {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}
}

func TestSignupRejectsEmptyCredentials(t *testing.T) {
	svc := newService(t)
	if _, err := svc.Signup(context.Background(), "", "x"); err == nil {
		t.Fatalf("expected error for empty username")
	}
	if _, err := svc.Signup(context.Background(), "budi", ""); err == nil {
		t.Fatalf("expected error for empty password")
	}
}

func TestSaveProfileDerivesCalorieFields(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, "budi", "rahasia123")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	user, err := svc.SaveProfile(ctx, created.ID, models.Biometrics{
		Name:          "Budi",
		Gender:        models.GenderMale,
		Age:           25,
		Weight:        70,
		Height:        170,
		ActivityLevel: models.ActivityModerate,
	})
	if err != nil {
		t.Fatalf("save profile: %v", err)
	}

	if user.DailyCalories != 2338 {
		t.Fatalf("expected daily target 2338, got %d", user.DailyCalories)
	}
	if user.BMR < 1700 || user.BMR > 1700.1 {
		t.Fatalf("unexpected BMR %.3f", user.BMR)
	}

	// Editing biometrics recomputes the target.
	user, err = svc.SaveProfile(ctx, created.ID, models.Biometrics{
		Name:          "Budi",
		Gender:        models.GenderMale,
		Age:           25,
		Weight:        70,
		Height:        170,
		ActivityLevel: models.ActivityHigh,
	})
	if err != nil {
		t.Fatalf("save profile: %v", err)
	}
	if user.DailyCalories != 2635 {
		t.Fatalf("expected recomputed target 2635, got %d", user.DailyCalories)
	}
}

func TestSaveProfileValidatesInputs(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, "budi", "rahasia123")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	bio := models.Biometrics{Gender: "other", Age: 25, Weight: 70, Height: 170, ActivityLevel: models.ActivityModerate}
	if _, err := svc.SaveProfile(ctx, created.ID, bio); err == nil {
		t.Fatalf("expected error for unknown gender")
	}

	bio = models.Biometrics{Gender: models.GenderMale, Age: 25, Weight: 70, Height: 170, ActivityLevel: "ekstrem"}
	if _, err := svc.SaveProfile(ctx, created.ID, bio); err == nil {
		t.Fatalf("expected error for unknown activity level")
	}
}
