package video

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type fakeResolver struct {
	id  uuid.UUID
	err error
}

func (f *fakeResolver) ResolveClientID(ctx context.Context, accessToken string) (uuid.UUID, error) {
	return f.id, f.err
}

func newHandlerRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/public/clients/{accessToken}/videos", h.PublicList)
	return r
}

func TestPublicListUnknownToken(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeClients{known: map[uuid.UUID]bool{}})
	h := NewHandler(svc, &fakeResolver{err: ErrClientNotFound})
	router := newHandlerRouter(h)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/public/clients/abcdefabcdefabcdefabcdef/videos", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestPublicListBackendFailureIsNot404(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeClients{known: map[uuid.UUID]bool{}})
	h := NewHandler(svc, &fakeResolver{err: errors.New("db down")})
	router := newHandlerRouter(h)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/public/clients/abcdefabcdefabcdefabcdef/videos", nil))

	// A failing backend must not report a valid link as dead
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d body=%s", rr.Code, rr.Body.String())
	}

	var out struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Error.Code != "INTERNAL_ERROR" {
		t.Fatalf("expected INTERNAL_ERROR, got %s", out.Error.Code)
	}
}
