package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"ecoquest/internal/models"
)

func TestRecommendationForAge(t *testing.T) {
	tests := []struct {
		name string
		age  int
		url  string
	}{
		{"young child", 8, "/games"},
		{"teen boundary", 17, "/games"},
		{"young adult", 18, "/feed"},
		{"upper young adult", 24, "/feed"},
		{"adult", 25, "/reports"},
		{"senior", 70, "/reports"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := recommendationForAge(tt.age)
			if rec.URL != tt.url {
				t.Errorf("recommendationForAge(%d).URL = %q, want %q", tt.age, rec.URL, tt.url)
			}
			if rec.Heading == "" || rec.Label == "" {
				t.Errorf("recommendationForAge(%d) has empty copy: %+v", tt.age, rec)
			}
		})
	}
}

func TestGetUserFromContext(t *testing.T) {
	if user := GetUserFromContext(context.Background()); user != nil {
		t.Errorf("empty context returned user %+v", user)
	}

	want := &models.User{ID: 7, Name: "Ivy"}
	ctx := withUser(context.Background(), want)
	if got := GetUserFromContext(ctx); got != want {
		t.Errorf("GetUserFromContext() = %+v, want %+v", got, want)
	}
}

func TestLoggingMiddlewarePassesThrough(t *testing.T) {
	called := false
	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/games", nil))

	if !called {
		t.Error("wrapped handler was not invoked")
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}
