package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/gigcircle/gigcircle/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Credential store
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	nextID  int64
	byEmail map[string]*domain.User

	findErr   error
	createErr error
	// gate, when set, blocks FindByEmail until closed so concurrent
	// registrations all pass the pre-check before any insert happens.
	gate chan struct{}
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.gate != nil {
		<-r.gate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byEmail {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Create enforces email uniqueness the way a UNIQUE constraint would.
func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	stored.CreatedAt = time.Now().UTC()
	r.byEmail[stored.Email] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) count(email string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, u := range r.byEmail {
		if u.Email == email {
			n++
		}
	}
	return n
}

func (r *stubUserRepo) delete(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for email, u := range r.byEmail {
		if u.ID == id {
			delete(r.byEmail, email)
		}
	}
}

// ---------------------------------------------------------------------------
// Hasher
// ---------------------------------------------------------------------------

type stubHasher struct {
	hashErr   error
	verifyErr error
}

func (h *stubHasher) Hash(_ context.Context, plaintext string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + plaintext, nil
}

func (h *stubHasher) Verify(_ context.Context, plaintext, hash string) (bool, error) {
	if h.verifyErr != nil {
		return false, h.verifyErr
	}
	return hash == "hashed:"+plaintext, nil
}

// ---------------------------------------------------------------------------
// Media
// ---------------------------------------------------------------------------

type stubMedia struct {
	mu        sync.Mutex
	removed   []string
	removeErr error
}

func (m *stubMedia) Save(context.Context, string, string, io.Reader) (string, error) {
	return "", errors.New("not used")
}

func (m *stubMedia) Remove(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, path)
	return m.removeErr
}

// ---------------------------------------------------------------------------
// Session store
// ---------------------------------------------------------------------------

type stubSessionStore struct {
	mu        sync.Mutex
	sessions  map[string]domain.Principal
	saveErr   error
	lookupErr error
	deleteErr error
	lastTTL   time.Duration
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.Principal)}
}

func (s *stubSessionStore) Save(_ context.Context, sid string, p domain.Principal, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.sessions[sid] = p
	s.lastTTL = ttl
	return nil
}

func (s *stubSessionStore) Lookup(_ context.Context, sid string) (domain.Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lookupErr != nil {
		return domain.Principal{}, s.lookupErr
	}
	p, ok := s.sessions[sid]
	if !ok {
		return domain.Principal{}, domain.ErrSessionNotFound
	}
	return p, nil
}

func (s *stubSessionStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.sessions, sid)
	return nil
}

func (s *stubSessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

type stubBandRepo struct {
	bands       []domain.Band
	memberships map[int64][]int64 // user id -> band ids
	err         error
	memberCalls int
}

func (r *stubBandRepo) List(context.Context) ([]domain.Band, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.bands, nil
}

func (r *stubBandRepo) ListByMember(_ context.Context, userID int64) ([]domain.Band, error) {
	r.memberCalls++
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.Band
	for _, id := range r.memberships[userID] {
		for _, b := range r.bands {
			if b.ID == id {
				out = append(out, b)
			}
		}
	}
	return out, nil
}

type stubEventRepo struct {
	events         []domain.Event
	err            error
	createErr      error
	organizerCalls int
}

func (r *stubEventRepo) List(context.Context) ([]domain.Event, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.events, nil
}

func (r *stubEventRepo) ListByOrganizer(_ context.Context, organizerID int64) ([]domain.Event, error) {
	r.organizerCalls++
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.Event
	for _, e := range r.events {
		if e.OrganizerID != nil && *e.OrganizerID == organizerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubEventRepo) Create(_ context.Context, e *domain.Event) (*domain.Event, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	created := *e
	created.ID = int64(len(r.events) + 1)
	r.events = append(r.events, created)
	return &created, nil
}

type stubArtistRepo struct {
	artists []domain.Artist
	err     error
}

func (r *stubArtistRepo) List(context.Context) ([]domain.Artist, error) {
	return r.artists, r.err
}
