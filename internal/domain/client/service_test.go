package client

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*Client
	byToken map[string]*Client

	touched    []uuid.UUID
	touchErr   error
	cascades   []uuid.UUID
	cascadeRes []StoredFile
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:    make(map[uuid.UUID]*Client),
		byToken: make(map[string]*Client),
	}
}

func (r *fakeRepo) add(c *Client) {
	r.byID[c.ID] = c
	r.byToken[c.AccessToken] = c
}

func (r *fakeRepo) Create(ctx context.Context, c *Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.add(c)
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id], nil
}

func (r *fakeRepo) GetByAccessToken(ctx context.Context, token string) (*Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byToken[token], nil
}

func (r *fakeRepo) List(ctx context.Context) ([]*Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Client, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeRepo) Update(ctx context.Context, c *Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.add(c)
	return nil
}

func (r *fakeRepo) DeleteCascade(ctx context.Context, id uuid.UUID) ([]StoredFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, ErrClientNotFound
	}
	delete(r.byID, id)
	delete(r.byToken, c.AccessToken)
	r.cascades = append(r.cascades, id)
	return r.cascadeRes, nil
}

func (r *fakeRepo) Touch(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.touchErr != nil {
		return r.touchErr
	}
	r.touched = append(r.touched, id)
	if c, ok := r.byID[id]; ok {
		now := time.Now()
		c.LastAccessed = &now
		c.AccessCount++
	}
	return nil
}

func (r *fakeRepo) touchCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.touched)
}

func (r *fakeRepo) Count(ctx context.Context) (int, error) {
	return len(r.byID), nil
}

func (r *fakeRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byID[id]
	return ok, nil
}

type fakeFiles struct {
	mu      sync.Mutex
	deleted []string
}

func (s *fakeFiles) Put(ctx context.Context, key string, reader io.Reader, contentType string) error {
	return nil
}

func (s *fakeFiles) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeFiles) URL(key string) string { return "/uploads/" + key }

func TestCreateGeneratesAccessToken(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeFiles{})

	c, err := svc.Create(context.Background(), &CreateClientRequest{
		Name:  "Acme",
		Email: "a@acme.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(c.AccessToken) < 16 {
		t.Fatalf("expected access token of at least 16 characters, got %d", len(c.AccessToken))
	}
	if c.LastAccessed != nil {
		t.Fatal("expected last_accessed to start null")
	}
	if c.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}
}

func TestResolveReturnsOwnClientOnly(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeFiles{})

	a, _ := svc.Create(context.Background(), &CreateClientRequest{Name: "A", Email: "a@x.com"})
	b, _ := svc.Create(context.Background(), &CreateClientRequest{Name: "B", Email: "b@x.com"})

	got, err := svc.Resolve(context.Background(), a.AccessToken)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.ID != a.ID {
		t.Fatalf("resolved wrong client: got %s, want %s", got.ID, a.ID)
	}
	if got.ID == b.ID {
		t.Fatal("resolved another client's record")
	}
}

func TestResolveUnknownTokenIsNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeFiles{})

	// Well-formed but never issued
	if _, err := svc.Resolve(context.Background(), "abcdef0123456789abcdef01"); !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
	// Malformed: the outcome must be indistinguishable
	if _, err := svc.Resolve(context.Background(), "!!not-a-token!!"); !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestResolveRecordsAccess(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeFiles{})

	c, _ := svc.Create(context.Background(), &CreateClientRequest{Name: "A", Email: "a@x.com"})

	if _, err := svc.Resolve(context.Background(), c.AccessToken); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	// The touch runs in the background
	deadline := time.Now().Add(2 * time.Second)
	for repo.touchCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("expected access to be recorded")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestConcurrentResolvesAllRecorded(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeFiles{})

	c, _ := svc.Create(context.Background(), &CreateClientRequest{Name: "A", Email: "a@x.com"})

	const resolvers = 20
	var wg sync.WaitGroup
	for i := 0; i < resolvers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Resolve(context.Background(), c.AccessToken); err != nil {
				t.Errorf("resolve: %v", err)
			}
		}()
	}
	wg.Wait()

	// Every resolution records its access, eventually
	deadline := time.Now().Add(2 * time.Second)
	for repo.touchCount() < resolvers {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d recorded accesses, got %d", resolvers, repo.touchCount())
		}
		time.Sleep(10 * time.Millisecond)
	}

	got, err := repo.GetByID(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.AccessCount != resolvers {
		t.Fatalf("expected access count %d, got %d", resolvers, got.AccessCount)
	}
	if got.LastAccessed == nil {
		t.Fatal("expected last_accessed to be set")
	}
}

func TestResolveSucceedsWhenTouchFails(t *testing.T) {
	repo := newFakeRepo()
	repo.touchErr = errors.New("db down")
	svc := NewService(repo, &fakeFiles{})

	c, _ := svc.Create(context.Background(), &CreateClientRequest{Name: "A", Email: "a@x.com"})

	got, err := svc.Resolve(context.Background(), c.AccessToken)
	if err != nil {
		t.Fatalf("resolve must not fail when access recording fails: %v", err)
	}
	if got.ID != c.ID {
		t.Fatalf("resolved wrong client")
	}
}

func TestUpdateKeepsAccessToken(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeFiles{})

	c, _ := svc.Create(context.Background(), &CreateClientRequest{Name: "A", Email: "a@x.com"})
	before := c.AccessToken

	updated, err := svc.Update(context.Background(), c.ID, &UpdateClientRequest{
		Name:  "A renamed",
		Email: "new@x.com",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.AccessToken != before {
		t.Fatal("access token must be immutable")
	}
}

func TestDeleteCascadeRemovesStoredFiles(t *testing.T) {
	repo := newFakeRepo()
	repo.cascadeRes = []StoredFile{
		{Filename: "aa.jpg", ThumbFilename: "aa_thumb.jpg"},
		{Filename: "bb.svg"},
	}
	files := &fakeFiles{}
	svc := NewService(repo, files)

	c, _ := svc.Create(context.Background(), &CreateClientRequest{Name: "A", Email: "a@x.com"})

	if err := svc.Delete(context.Background(), c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	want := map[string]bool{"aa.jpg": true, "aa_thumb.jpg": true, "bb.svg": true}
	if len(files.deleted) != len(want) {
		t.Fatalf("expected %d file removals, got %d (%v)", len(want), len(files.deleted), files.deleted)
	}
	for _, key := range files.deleted {
		if !want[key] {
			t.Fatalf("unexpected file removed: %s", key)
		}
	}
}

func TestDeleteUnknownClient(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeFiles{})

	if err := svc.Delete(context.Background(), uuid.New()); !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}
