package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"

	"calorease/models"
	"calorease/services/intake"
)

var (
	// ErrUsernameExists is returned when signing up with a taken username.
	ErrUsernameExists = errors.New("username already exists")
	// ErrInvalidCredentials is returned for a failed login.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrNotFound is returned when the account does not exist.
	ErrNotFound = errors.New("user not found")
)

// Service manages accounts and the biometric profile with its derived
// calorie fields.
type Service struct {
	db *sql.DB
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// Signup creates an account with a bcrypt password hash. The biometric
// profile starts empty; the profile-setup flow fills it in.
func (s *Service) Signup(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO users (id, username, password_hash, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.PasswordHash, now, now)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies a username/password pair and returns the account.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.getByUsername(ctx, username)
	if err == ErrNotFound {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Get loads an account by id.
func (s *Service) Get(ctx context.Context, userID string) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, userSelect+` WHERE id = ?`, userID))
}

func (s *Service) getByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, userSelect+` WHERE username = ?`, username))
}

// SaveProfile stores new biometrics and recomputes the derived BMR and daily
// calorie target, as both the profile-setup and profile-edit flows do.
func (s *Service) SaveProfile(ctx context.Context, userID string, bio models.Biometrics) (*models.User, error) {
	bmr, err := intake.CalculateBMR(bio.Gender, bio.Weight, bio.Height, bio.Age)
	if err != nil {
		return nil, err
	}
	dailyCalories, err := intake.DailyCalories(bmr, bio.ActivityLevel)
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx, `
UPDATE users SET name = ?, gender = ?, age = ?, weight = ?, height = ?,
  activity_level = ?, bmr = ?, daily_calories = ?, updated_at = ?
WHERE id = ?`,
		bio.Name, bio.Gender, bio.Age, bio.Weight, bio.Height,
		bio.ActivityLevel, bmr, dailyCalories, time.Now(), userID)
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}

	return s.Get(ctx, userID)
}

const userSelect = `
SELECT id, username, password_hash, name, gender, age, weight, height,
       activity_level, bmr, daily_calories, current_calories, created_at, updated_at
FROM users`

func (s *Service) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Name,
		&user.Gender, &user.Age, &user.Weight, &user.Height, &user.ActivityLevel,
		&user.BMR, &user.DailyCalories, &user.CurrentCalories, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}
