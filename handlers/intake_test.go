package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"calorease/models"
	intakesvc "calorease/services/intake"
)

type fakeIntakeService struct {
	day   *models.DailyIntake
	entry *models.IntakeEntry
	err   error

	addCalled     bool
	replaceStaged []models.IntakeUpsert
	clearCalled   bool
}

func (f *fakeIntakeService) Today(ctx context.Context, userID string) (*models.DailyIntake, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.day, nil
}

func (f *fakeIntakeService) Add(ctx context.Context, userID string, upsert models.IntakeUpsert) (*models.IntakeEntry, error) {
	f.addCalled = true
	if f.err != nil {
		return nil, f.err
	}
	return f.entry, nil
}

func (f *fakeIntakeService) ReplaceDay(ctx context.Context, userID string, staged []models.IntakeUpsert) (*models.DailyIntake, error) {
	f.replaceStaged = staged
	if f.err != nil {
		return nil, f.err
	}
	return f.day, nil
}

func (f *fakeIntakeService) ClearDay(ctx context.Context, userID string) error {
	f.clearCalled = true
	return f.err
}

func TestIntakeHandlerGet(t *testing.T) {
	handler := NewIntakeHandler(&fakeIntakeService{
		day: &models.DailyIntake{Date: "2026-08-28", CurrentCalories: 610, DailyCalories: 2338},
	})

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/users/intake", nil), "u-1")
	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp models.DailyIntake
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.CurrentCalories != 610 || resp.DailyCalories != 2338 {
		t.Fatalf("unexpected day: %+v", resp)
	}
}

func TestIntakeHandlerAdd(t *testing.T) {
	svc := &fakeIntakeService{
		entry: &models.IntakeEntry{ID: "e-1", Name: "Soto Ayam", Calories: 312},
	}
	handler := NewIntakeHandler(svc)

	buf, _ := json.Marshal(models.IntakeUpsert{RecipeID: "7", Name: "Soto Ayam", Calories: 312})
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/users/intake", bytes.NewReader(buf)), "u-1")
	rec := httptest.NewRecorder()
	handler.Add(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !svc.addCalled {
		t.Fatalf("expected service to be called")
	}
}

func TestIntakeHandlerAddValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"recipeId":"7","calories":100}`},
		{"negative calories", `{"recipeId":"7","name":"Soto","calories":-1}`},
		{"bad json", "not-json"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeIntakeService{}
			handler := NewIntakeHandler(svc)

			req := asUser(httptest.NewRequest(http.MethodPost, "/api/users/intake", bytes.NewBufferString(tc.body)), "u-1")
			rec := httptest.NewRecorder()
			handler.Add(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}
			if svc.addCalled {
				t.Fatalf("service should not be called on invalid input")
			}
		})
	}
}

func TestIntakeHandlerReplace(t *testing.T) {
	svc := &fakeIntakeService{
		day: &models.DailyIntake{Date: "2026-08-28", CurrentCalories: 540},
	}
	handler := NewIntakeHandler(svc)

	body := `{"entries":[{"recipeId":"1","name":"Soto","calories":310},{"recipeId":"2","name":"Pecel","calories":230}]}`
	req := asUser(httptest.NewRequest(http.MethodPut, "/api/users/intake", bytes.NewBufferString(body)), "u-1")
	rec := httptest.NewRecorder()
	handler.Replace(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(svc.replaceStaged) != 2 {
		t.Fatalf("expected 2 staged entries, got %d", len(svc.replaceStaged))
	}
}

func TestIntakeHandlerClear(t *testing.T) {
	svc := &fakeIntakeService{}
	handler := NewIntakeHandler(svc)

	req := asUser(httptest.NewRequest(http.MethodDelete, "/api/users/intake", nil), "u-1")
	rec := httptest.NewRecorder()
	handler.Clear(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !svc.clearCalled {
		t.Fatalf("expected service to be called")
	}
}

func TestIntakeHandlerUnknownUser(t *testing.T) {
	handler := NewIntakeHandler(&fakeIntakeService{err: intakesvc.ErrUserNotFound})

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/users/intake", nil), "ghost")
	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}
