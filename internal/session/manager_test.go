package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GregMSThompson/bank-portal/internal/dto"
	"github.com/GregMSThompson/bank-portal/internal/errs"
	"github.com/GregMSThompson/bank-portal/pkg/helpers"
)

func requestWithCookies(cookies []*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestLoginThenResolve(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, CookieOptions{})
	m.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	w := httptest.NewRecorder()
	got, err := m.Login(helpers.TestCtx(), w, httptest.NewRequest(http.MethodPost, "/login", nil),
		Identity{UserID: "42", Role: dto.RoleCustomer})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be stamped")
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName || !cookies[0].HttpOnly {
		t.Fatalf("unexpected cookies %+v", cookies)
	}

	id, err := m.Resolve(helpers.TestCtx(), requestWithCookies(cookies))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.UserID != "42" || !id.IsCustomer() {
		t.Fatalf("unexpected identity %+v", id)
	}
}

func TestResolveWithoutCookie(t *testing.T) {
	m := NewManager(NewMemoryStore(), CookieOptions{})
	_, err := m.Resolve(helpers.TestCtx(), httptest.NewRequest(http.MethodGet, "/", nil))
	var ue *errs.UnauthenticatedError
	if !errors.As(err, &ue) {
		t.Fatalf("expected unauthenticated error, got %v", err)
	}
}

func TestLogoutClearsIdentity(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, CookieOptions{Secure: true})

	w := httptest.NewRecorder()
	if _, err := m.Login(helpers.TestCtx(), w, httptest.NewRequest(http.MethodPost, "/login", nil),
		Identity{UserID: "7", Role: dto.RoleEmployee}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cookies := w.Result().Cookies()

	out := httptest.NewRecorder()
	if err := m.Logout(helpers.TestCtx(), out, requestWithCookies(cookies)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cleared := out.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 {
		t.Fatalf("expected expired cookie, got %+v", cleared)
	}
	if len(store.data) != 0 {
		t.Fatalf("expected store to be empty, got %d", len(store.data))
	}
	if _, err := m.Resolve(helpers.TestCtx(), requestWithCookies(cookies)); err == nil {
		t.Fatal("expected old session to be gone")
	}
}

func TestLoginReplacesPreviousSession(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, CookieOptions{})

	first := httptest.NewRecorder()
	if _, err := m.Login(helpers.TestCtx(), first, httptest.NewRequest(http.MethodPost, "/login", nil),
		Identity{UserID: "1", Role: dto.RoleCustomer}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := httptest.NewRecorder()
	if _, err := m.Login(helpers.TestCtx(), second, requestWithCookies(first.Result().Cookies()),
		Identity{UserID: "2", Role: dto.RoleCustomer}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.data) != 1 {
		t.Fatalf("expected one stored session, got %d", len(store.data))
	}
}

func TestFromContext(t *testing.T) {
	if _, ok := FromContext(helpers.TestCtx()); ok {
		t.Fatal("expected no identity")
	}
	ctx := ToContext(helpers.TestCtx(), Identity{UserID: "5", Role: dto.RoleCustomer})
	id, ok := FromContext(ctx)
	if !ok || id.UserID != "5" {
		t.Fatalf("unexpected identity %+v", id)
	}
}
