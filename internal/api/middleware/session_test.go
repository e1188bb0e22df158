package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gigcircle/gigcircle/internal/api/handler"
	"github.com/gigcircle/gigcircle/internal/core/domain"
)

type stubSessions struct {
	resolveFn func(ctx context.Context, token string) (*domain.User, error)
}

func (s *stubSessions) ToPrincipal(u *domain.User) domain.Principal {
	return domain.Principal{UserID: u.ID}
}

func (s *stubSessions) FromPrincipal(context.Context, domain.Principal) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubSessions) Establish(context.Context, *domain.User) (string, error) {
	return "", nil
}

func (s *stubSessions) Resolve(ctx context.Context, token string) (*domain.User, error) {
	return s.resolveFn(ctx, token)
}

func (s *stubSessions) Destroy(context.Context, string) error { return nil }

var cookieCfg = handler.CookieConfig{Name: handler.DefaultCookieName}

// run passes a request through Session and reports the user the next
// handler saw.
func run(t *testing.T, sessions *stubSessions, cookie string) (*domain.User, *httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: handler.DefaultCookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *domain.User
	next := func(c echo.Context) error {
		seen, _ = handler.CurrentUser(c)
		return c.NoContent(http.StatusOK)
	}
	err := Session(sessions, cookieCfg, zerolog.Nop())(next)(c)
	return seen, rec, err
}

func TestSession_ValidCookie(t *testing.T) {
	alice := &domain.User{ID: 1, Email: "alice@example.com"}
	sessions := &stubSessions{
		resolveFn: func(_ context.Context, token string) (*domain.User, error) {
			if token != "good" {
				t.Fatalf("unexpected token %q", token)
			}
			return alice, nil
		},
	}

	seen, rec, err := run(t, sessions, "good")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen != alice {
		t.Fatalf("expected alice on the context, got %+v", seen)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("valid session must not touch the cookie")
	}
}

func TestSession_NoCookie(t *testing.T) {
	sessions := &stubSessions{
		resolveFn: func(context.Context, string) (*domain.User, error) {
			t.Fatal("resolve must not be called without a cookie")
			return nil, nil
		},
	}

	seen, _, err := run(t, sessions, "")
	if err != nil || seen != nil {
		t.Fatalf("expected anonymous request, got user=%v err=%v", seen, err)
	}
}

func TestSession_StaleCookieIsCleared(t *testing.T) {
	sessions := &stubSessions{
		resolveFn: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrUnauthenticated
		},
	}

	seen, rec, err := run(t, sessions, "stale")
	if err != nil || seen != nil {
		t.Fatalf("expected anonymous request, got user=%v err=%v", seen, err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != handler.DefaultCookieName || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected cleared session cookie, got %+v", cookies)
	}
}

func TestSession_StoreError(t *testing.T) {
	boom := errors.New("redis down")
	sessions := &stubSessions{
		resolveFn: func(context.Context, string) (*domain.User, error) { return nil, boom },
	}

	_, _, err := run(t, sessions, "token")
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestRequireAuth(t *testing.T) {
	e := echo.New()
	mw := RequireAuth("/login")
	ok := func(c echo.Context) error { return c.String(http.StatusOK, "secret") }

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/profile", nil), rec)
	if err := mw(ok)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected 303 /login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/profile", nil), rec)
	handler.SetCurrentUser(c, &domain.User{ID: 1})
	if err := mw(ok)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK || rec.Body.String() != "secret" {
		t.Fatalf("expected handler to run, got %d %q", rec.Code, rec.Body.String())
	}
}
