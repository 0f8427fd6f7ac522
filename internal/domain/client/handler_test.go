package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTestRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/clients", h.Create)
	r.Get("/public/clients/{accessToken}", h.ResolvePublic)
	return r
}

func TestCreateClientResponseShape(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeFiles{})
	h := NewHandler(svc)
	router := newTestRouter(h)

	body, _ := json.Marshal(CreateClientRequest{Name: "Acme", Email: "a@acme.com"})
	req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	var out struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken  string  `json:"access_token"`
			CreatedAt    string  `json:"created_at"`
			LastAccessed *string `json:"last_accessed"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Data.AccessToken) < 16 {
		t.Fatalf("expected access token of at least 16 characters, got %q", out.Data.AccessToken)
	}
	if out.Data.CreatedAt == "" {
		t.Fatal("expected created_at to be set")
	}
	if out.Data.LastAccessed != nil {
		t.Fatal("expected last_accessed to be null")
	}
}

func TestResolvePublicUnknownTokenIs404(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeFiles{})
	h := NewHandler(svc)
	router := newTestRouter(h)

	// A never-issued 24-character token must yield 404, not 500
	req := httptest.NewRequest(http.MethodGet, "/public/clients/abcdefabcdefabcdefabcdef", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}

	// A malformed token must be indistinguishable from an absent one
	req2 := httptest.NewRequest(http.MethodGet, "/public/clients/%21bogus%21", nil)
	rr2 := httptest.NewRecorder()
	router.ServeHTTP(rr2, req2)

	if rr2.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for malformed token, got %d", rr2.Code)
	}
	if rr.Body.String() != rr2.Body.String() {
		t.Fatalf("expected identical bodies for absent and malformed tokens:\n%s\n%s", rr.Body.String(), rr2.Body.String())
	}
}

func TestResolvePublicHidesPrivateFields(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeFiles{})
	h := NewHandler(svc)
	router := newTestRouter(h)

	c, err := svc.Create(context.Background(), &CreateClientRequest{Name: "Acme", Email: "a@acme.com", Description: "spring shoot"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/public/clients/"+c.AccessToken, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var out struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Data["name"] != "Acme" {
		t.Fatalf("expected name Acme, got %v", out.Data["name"])
	}
	for _, private := range []string{"email", "access_token", "id"} {
		if _, ok := out.Data[private]; ok {
			t.Fatalf("public response must not expose %s", private)
		}
	}
}
