package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/zanith/zanith-api/internal/core/domain"
	"github.com/zanith/zanith-api/internal/core/ports"
)

type stubAuthenticator struct {
	sessions map[string]string
	err      error
	seen     []string
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (ports.Identity, error) {
	s.seen = append(s.seen, token)
	if s.err != nil {
		return ports.Identity{}, s.err
	}
	username, ok := s.sessions[token]
	if !ok || token == "" {
		return ports.Identity{}, domain.ErrSessionNotFound
	}
	return ports.Identity{Username: username, Token: token}, nil
}

func TestSession_ValidCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "tok-1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Session(&stubAuthenticator{sessions: map[string]string{"tok-1": "alice"}})
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get(ContextUsername) != "alice" {
			t.Fatalf("username not set")
		}
		if c.Get(ContextSessionID) != "tok-1" {
			t.Fatalf("session id not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSession_FindsTokenAmongOtherCookies(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", "theme=dark; sessionId=tok-2; lang=en")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	auth := &stubAuthenticator{sessions: map[string]string{"tok-2": "bob"}}
	handler := Session(auth)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(auth.seen) != 1 || auth.seen[0] != "tok-2" {
		t.Fatalf("expected token tok-2 to be looked up, got %v", auth.seen)
	}
}

func TestSession_MissingCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session(&stubAuthenticator{})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestSession_UnknownToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session(&stubAuthenticator{sessions: map[string]string{"tok-1": "alice"}})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestSession_StoreErrorPropagates(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "tok-1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	storeErr := errors.New("connection refused")
	handler := Session(&stubAuthenticator{err: storeErr})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		t.Fatalf("store failure must not be reported as an auth rejection")
	}
}

func TestOptionalSession_UnknownTokenPassesWithoutIdentity(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale"})
	c := e.NewContext(req, httptest.NewRecorder())

	reached := false
	handler := OptionalSession(&stubAuthenticator{sessions: map[string]string{"tok-1": "alice"}})(func(c echo.Context) error {
		reached = true
		if c.Get(ContextUsername) != nil {
			t.Fatalf("no identity expected, got %v", c.Get(ContextUsername))
		}
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reached {
		t.Fatalf("next was not called")
	}
}

func TestOptionalSession_ValidCookieSetsIdentity(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "tok-1"})
	c := e.NewContext(req, httptest.NewRecorder())

	handler := OptionalSession(&stubAuthenticator{sessions: map[string]string{"tok-1": "alice"}})(func(c echo.Context) error {
		if c.Get(ContextUsername) != "alice" || c.Get(ContextSessionID) != "tok-1" {
			t.Fatalf("identity not injected")
		}
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOptionalSession_StoreErrorPropagates(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "tok-1"})
	c := e.NewContext(req, httptest.NewRecorder())

	storeErr := errors.New("connection refused")
	handler := OptionalSession(&stubAuthenticator{err: storeErr})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}
