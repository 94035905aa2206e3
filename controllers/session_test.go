package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ranking-uni/models"
	"ranking-uni/utils"
)

func TestResolveSession(t *testing.T) {
	t.Setenv("SECRET", "session-test-secret")

	access, err := utils.GenerateAccessToken(models.User{ID: 99, Email: "x@example.com"}, time.Minute)
	if err != nil {
		t.Fatalf("failed to mint access token: %v", err)
	}
	refresh, err := utils.GenerateRefreshToken(models.User{ID: 99}, time.Hour)
	if err != nil {
		t.Fatalf("failed to mint refresh token: %v", err)
	}
	expired, err := utils.GenerateAccessToken(models.User{ID: 99}, -time.Minute)
	if err != nil {
		t.Fatalf("failed to mint expired token: %v", err)
	}

	cases := []struct {
		name       string
		cookies    []*http.Cookie
		wantUserID int
		wantErr    bool
	}{
		{
			name: "valid_pair",
			cookies: []*http.Cookie{
				{Name: "access_token", Value: access},
				{Name: "refresh_token", Value: refresh},
			},
			wantUserID: 99,
		},
		{
			name:    "no_cookies",
			wantErr: true,
		},
		{
			name: "missing_refresh",
			cookies: []*http.Cookie{
				{Name: "access_token", Value: access},
			},
			wantErr: true,
		},
		{
			name: "garbage_access",
			cookies: []*http.Cookie{
				{Name: "access_token", Value: "not-a-token"},
				{Name: "refresh_token", Value: refresh},
			},
			wantErr: true,
		},
		{
			name: "expired_access",
			cookies: []*http.Cookie{
				{Name: "access_token", Value: expired},
				{Name: "refresh_token", Value: refresh},
			},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			for _, cookie := range tc.cookies {
				r.AddCookie(cookie)
			}

			userID, err := ResolveSession(r)
			if tc.wantErr {
				if err != models.ErrUnauthenticated {
					t.Fatalf("expected ErrUnauthenticated, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if userID != tc.wantUserID {
				t.Fatalf("resolved user %d, want %d", userID, tc.wantUserID)
			}
		})
	}
}

func TestClearSessionCookies(t *testing.T) {
	w := httptest.NewRecorder()
	ClearSessionCookies(w)

	cookies := w.Result().Cookies()
	if len(cookies) != 2 {
		t.Fatalf("expected both cookies cleared, got %d", len(cookies))
	}
	for _, cookie := range cookies {
		if cookie.Value != "" || cookie.MaxAge != -1 {
			t.Errorf("cookie %s not revoked: %+v", cookie.Name, cookie)
		}
	}
}
