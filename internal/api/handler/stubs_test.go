package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/gigcircle/gigcircle/internal/core/domain"
	"github.com/gigcircle/gigcircle/internal/core/ports"
)

type stubAuthService struct {
	registerFn     func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	authenticateFn func(ctx context.Context, email, password string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	return s.authenticateFn(ctx, email, password)
}

type stubSessionService struct {
	establishFn func(ctx context.Context, user *domain.User) (string, error)
	resolveFn   func(ctx context.Context, token string) (*domain.User, error)
	destroyFn   func(ctx context.Context, token string) error
}

func (s *stubSessionService) ToPrincipal(user *domain.User) domain.Principal {
	return domain.Principal{UserID: user.ID}
}

func (s *stubSessionService) FromPrincipal(context.Context, domain.Principal) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubSessionService) Establish(ctx context.Context, user *domain.User) (string, error) {
	if s.establishFn == nil {
		return "token", nil
	}
	return s.establishFn(ctx, user)
}

func (s *stubSessionService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	return s.resolveFn(ctx, token)
}

func (s *stubSessionService) Destroy(ctx context.Context, token string) error {
	if s.destroyFn == nil {
		return nil
	}
	return s.destroyFn(ctx, token)
}

type memMedia struct {
	mu        sync.Mutex
	files     map[string]string
	saveErr   error
	removeErr error
	removed   []string
}

func newMemMedia() *memMedia {
	return &memMedia{files: make(map[string]string)}
}

func (m *memMedia) Save(_ context.Context, field, originalName string, r io.Reader) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	path := field + "/" + originalName
	m.files[path] = string(data)
	return path, nil
}

func (m *memMedia) Remove(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, path)
	if m.removeErr != nil {
		return m.removeErr
	}
	delete(m.files, path)
	return nil
}

type stubProfileService struct {
	resolveFn func(ctx context.Context, user *domain.User) (*domain.RenderModel, error)
}

func (s *stubProfileService) Resolve(ctx context.Context, user *domain.User) (*domain.RenderModel, error) {
	return s.resolveFn(ctx, user)
}

type stubCatalogService struct {
	artists   []domain.Artist
	bands     []domain.Band
	events    []domain.Event
	err       error
	addEvents []ports.AddEventInput
	addErr    error
}

func (s *stubCatalogService) ListArtists(context.Context) ([]domain.Artist, error) {
	return s.artists, s.err
}

func (s *stubCatalogService) ListBands(context.Context) ([]domain.Band, error) {
	return s.bands, s.err
}

func (s *stubCatalogService) ListEvents(context.Context) ([]domain.Event, error) {
	return s.events, s.err
}

func (s *stubCatalogService) AddEvent(_ context.Context, in ports.AddEventInput) (*domain.Event, error) {
	if s.addErr != nil {
		return nil, s.addErr
	}
	s.addEvents = append(s.addEvents, in)
	return &domain.Event{ID: int64(len(s.addEvents)), Title: in.Title}, nil
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e.Renderer = r
	return e
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

// multipartRequest builds a multipart body with the given fields and files
// (field name -> file name -> content).
func multipartRequest(t *testing.T, target string, fields map[string]string, files map[string][2]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for field, file := range files {
		fw, err := w.CreateFormFile(field, file[0])
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte(file[1])); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}
