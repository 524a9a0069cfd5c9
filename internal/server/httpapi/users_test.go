package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCreateUser_Validation(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()
	adminToken := login(t, router, testAdminEmail, testAdminPassword)

	cases := []struct {
		name   string
		body   map[string]any
		detail string
	}{
		{
			name:   "BadEmail",
			body:   map[string]any{"email": "not-an-email", "password": "longenough1"},
			detail: "invalid argument: email is not valid",
		},
		{
			name:   "ShortPassword",
			body:   map[string]any{"email": "short@example.com", "password": "short"},
			detail: "invalid argument: password must be between 8 and 128 characters",
		},
		{
			name:   "UnknownRole",
			body:   map[string]any{"email": "role@example.com", "password": "longenough1", "role": "auditor"},
			detail: `invalid argument: unknown role "auditor"`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/users", adminToken, tc.body)
			wantDetail(t, w, http.StatusBadRequest, tc.detail)
		})
	}
}

func TestCreateUser_InvalidJSON(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()
	adminToken := login(t, router, testAdminEmail, testAdminPassword)

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	wantDetail(t, w, http.StatusBadRequest, "invalid JSON body")
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()
	adminToken := login(t, router, testAdminEmail, testAdminPassword)

	registerUser(t, router, adminToken, "dave@example.com", "davepass99")

	w := doJSON(t, router, http.MethodPost, "/users", adminToken, map[string]any{
		"email":    "dave@example.com",
		"password": "davepass99",
	})

	wantDetail(t, w, http.StatusConflict, "Email already registered")
}

func TestCreateUser_AdminRole(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()
	adminToken := login(t, router, testAdminEmail, testAdminPassword)

	w := doJSON(t, router, http.MethodPost, "/users", adminToken, map[string]any{
		"email":    "second-admin@example.com",
		"password": "secondadmin1",
		"role":     "admin",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusCreated, w.Body.String())
	}
	var resp userResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Role != "admin" {
		t.Errorf("role = %q, want admin", resp.Role)
	}

	// The new admin can use admin endpoints.
	secondToken := login(t, router, "second-admin@example.com", "secondadmin1")
	registerUser(t, router, secondToken, "made-by-second@example.com", "someuserpw1")
}

func TestUsersMe(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	adminToken := login(t, router, testAdminEmail, testAdminPassword)
	carolID := registerUser(t, router, adminToken, "carol@example.com", "carolpass1")
	carolToken := login(t, router, "carol@example.com", "carolpass1")

	w := doJSON(t, router, http.MethodGet, "/users/me", carolToken, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}
	var resp userResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.ID != carolID {
		t.Errorf("id = %q, want %q", resp.ID, carolID)
	}
	if resp.Email != "carol@example.com" {
		t.Errorf("email = %q, want carol@example.com", resp.Email)
	}
	if resp.Role != "user" {
		t.Errorf("role = %q, want user", resp.Role)
	}
}
