package intake

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"calorease/models"
)

// ErrUserNotFound is returned when the ledger owner does not exist.
var ErrUserNotFound = errors.New("user not found")

// Service maintains the per-day consumed-recipe ledger and the running
// calorie total stored on the user row. Total updates ride in the same
// transaction as the ledger write, so the counter cannot drift from the
// ledger and concurrent adds cannot lose updates.
type Service struct {
	db  *sql.DB
	now func() time.Time
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// SetClock overrides the service clock (used by tests).
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) today() string {
	return s.now().Format("2006-01-02")
}

// Add appends one consumed recipe to today's ledger and bumps the stored
// running total with an atomic in-database increment.
func (s *Service) Add(ctx context.Context, userID string, upsert models.IntakeUpsert) (*models.IntakeEntry, error) {
	now := s.now()
	entry := &models.IntakeEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		RecipeID:  upsert.RecipeID,
		Name:      upsert.Name,
		Calories:  upsert.Calories,
		Date:      now.Format("2006-01-02"),
		CreatedAt: now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin add intake: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO daily_intake (id, user_id, recipe_id, name, calories, date, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.RecipeID, entry.Name, entry.Calories, entry.Date, entry.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert intake entry: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
UPDATE users SET current_calories = current_calories + ?, updated_at = ? WHERE id = ?`,
		entry.Calories, now, userID)
	if err != nil {
		return nil, fmt.Errorf("increment calorie total: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrUserNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit add intake: %w", err)
	}
	return entry, nil
}

// Today returns the current day's ledger together with the stored totals.
func (s *Service) Today(ctx context.Context, userID string) (*models.DailyIntake, error) {
	date := s.today()

	var current, target int
	err := s.db.QueryRowContext(ctx,
		`SELECT current_calories, daily_calories FROM users WHERE id = ?`, userID).Scan(&current, &target)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user totals: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, recipe_id, name, calories, date, created_at
FROM daily_intake
WHERE user_id = ? AND date = ?
ORDER BY created_at ASC`, userID, date)
	if err != nil {
		return nil, fmt.Errorf("list intake entries: %w", err)
	}
	defer rows.Close()

	entries := make([]models.IntakeEntry, 0)
	for rows.Next() {
		var e models.IntakeEntry
		if err := rows.Scan(&e.ID, &e.RecipeID, &e.Name, &e.Calories, &e.Date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan intake entry: %w", err)
		}
		e.UserID = userID
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &models.DailyIntake{
		Date:            date,
		Entries:         entries,
		CurrentCalories: current,
		DailyCalories:   target,
	}, nil
}

// ReplaceDay commits staged consumption edits: within one transaction the
// day's rows are deleted, the staged entries inserted, and the stored total
// overwritten with their calorie sum.
func (s *Service) ReplaceDay(ctx context.Context, userID string, staged []models.IntakeUpsert) (*models.DailyIntake, error) {
	now := s.now()
	date := now.Format("2006-01-02")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin replace day: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM daily_intake WHERE user_id = ? AND date = ?`, userID, date); err != nil {
		return nil, fmt.Errorf("clear staged day: %w", err)
	}

	total := 0
	for _, upsert := range staged {
		total += upsert.Calories
		if _, err := tx.ExecContext(ctx, `
INSERT INTO daily_intake (id, user_id, recipe_id, name, calories, date, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), userID, upsert.RecipeID, upsert.Name, upsert.Calories, date, now); err != nil {
			return nil, fmt.Errorf("insert staged entry: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE users SET current_calories = ?, updated_at = ? WHERE id = ?`, total, now, userID)
	if err != nil {
		return nil, fmt.Errorf("overwrite calorie total: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrUserNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit replace day: %w", err)
	}

	return s.Today(ctx, userID)
}

// ClearDay removes today's ledger and zeroes the running total.
func (s *Service) ClearDay(ctx context.Context, userID string) error {
	_, err := s.ReplaceDay(ctx, userID, nil)
	return err
}

// ResetBefore clears ledger entries from days before the given date and
// zeroes the running total for one user. The rollover job drives this at
// midnight.
func (s *Service) ResetBefore(ctx context.Context, userID, date string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM daily_intake WHERE user_id = ? AND date < ?`, userID, date)
	if err != nil {
		return fmt.Errorf("clear stale ledger: %w", err)
	}
	removed, _ := res.RowsAffected()

	if _, err := tx.ExecContext(ctx, `
UPDATE users SET current_calories = COALESCE(
    (SELECT SUM(calories) FROM daily_intake WHERE user_id = ? AND date = ?), 0)
WHERE id = ?`, userID, date, userID); err != nil {
		return fmt.Errorf("recompute calorie total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}
	if removed > 0 {
		log.Printf("[intake] rolled over %d stale entries for user=%s", removed, userID)
	}
	return nil
}

// UserIDs lists every account id; the rollover job fans out over these.
func (s *Service) UserIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM users`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
