package video

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/framevault/framevault-api/internal/pkg/youtube"
)

type fakeRepo struct {
	mu     sync.Mutex
	videos map[uuid.UUID]*Video
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{videos: make(map[uuid.UUID]*Video)}
}

func (r *fakeRepo) Create(ctx context.Context, v *Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.videos[v.ID] = v
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.videos[id], nil
}

func (r *fakeRepo) List(ctx context.Context) ([]*Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Video, 0, len(r.videos))
	for _, v := range r.videos {
		out = append(out, v)
	}
	return out, nil
}

func (r *fakeRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Video
	for _, v := range r.videos {
		if v.ClientID == clientID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.videos), nil
}

func (r *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.videos, id)
	return nil
}

type fakeClients struct {
	known map[uuid.UUID]bool
}

func (c *fakeClients) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return c.known[id], nil
}

func TestCreateExtractsVideoID(t *testing.T) {
	clientID := uuid.New()
	svc := NewService(newFakeRepo(), &fakeClients{known: map[uuid.UUID]bool{clientID: true}})

	v, err := svc.Create(context.Background(), &CreateVideoRequest{
		Title:      "Highlights",
		ClientID:   clientID,
		YouTubeURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if v.YouTubeID != "dQw4w9WgXcQ" {
		t.Fatalf("expected video id dQw4w9WgXcQ, got %s", v.YouTubeID)
	}
	if v.YouTubeURL != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Fatal("original url must be kept")
	}
}

func TestCreateRejectsInvalidURL(t *testing.T) {
	clientID := uuid.New()
	repo := newFakeRepo()
	svc := NewService(repo, &fakeClients{known: map[uuid.UUID]bool{clientID: true}})

	for _, raw := range []string{"not a url", "https://vimeo.com/12345", "https://www.youtube.com/watch?v=short"} {
		_, err := svc.Create(context.Background(), &CreateVideoRequest{
			Title:      "Bad",
			ClientID:   clientID,
			YouTubeURL: raw,
		})
		if !errors.Is(err, youtube.ErrInvalidURL) {
			t.Fatalf("%q: expected ErrInvalidURL, got %v", raw, err)
		}
	}
	if n, _ := repo.Count(context.Background()); n != 0 {
		t.Fatalf("expected zero rows, got %d", n)
	}
}

func TestCreateUnknownClient(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeClients{known: map[uuid.UUID]bool{}})

	_, err := svc.Create(context.Background(), &CreateVideoRequest{
		Title:      "Orphan",
		ClientID:   uuid.New(),
		YouTubeURL: "https://youtu.be/dQw4w9WgXcQ",
	})
	if !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestDeleteUnknownVideo(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeClients{known: map[uuid.UUID]bool{}})

	if err := svc.Delete(context.Background(), uuid.New()); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
}

func TestResponseCarriesEmbedAndThumbnail(t *testing.T) {
	clientID := uuid.New()
	svc := NewService(newFakeRepo(), &fakeClients{known: map[uuid.UUID]bool{clientID: true}})

	v, err := svc.Create(context.Background(), &CreateVideoRequest{
		Title:      "Highlights",
		ClientID:   clientID,
		YouTubeURL: "https://www.youtube.com/shorts/dQw4w9WgXcQ",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	resp := VideoResponseFromEntity(v)
	if resp.EmbedURL != "https://www.youtube.com/embed/dQw4w9WgXcQ" {
		t.Fatalf("unexpected embed url %s", resp.EmbedURL)
	}
	if resp.ThumbnailURL == "" {
		t.Fatal("expected a thumbnail url")
	}
}
