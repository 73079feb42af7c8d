// Package auth signs console users in against the helpdesk API and guards
// routes with the resulting Redis-backed session.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
	"github.com/kloudinfotech/helpdesk-console/internal/helpdeskapi"
	"github.com/kloudinfotech/helpdesk-console/internal/pkg/httputil"
	"github.com/kloudinfotech/helpdesk-console/internal/pkg/logger"
	"github.com/kloudinfotech/helpdesk-console/internal/service/access"
	"github.com/kloudinfotech/helpdesk-console/internal/session"
)

// Authenticator exchanges credentials for an API token and reads the
// token owner's profile.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, domain.User, error)
	Me(ctx context.Context) (domain.User, error)
}

// SessionStore persists sessions.
type SessionStore interface {
	Create(ctx context.Context, token string, user domain.User) (*domain.Session, error)
	Get(ctx context.Context, id string) (*domain.Session, error)
	UpdateUser(ctx context.Context, id string, user domain.User) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	MaxAge int
	Secure bool
}

// Manager handles login, logout and session lookup.
type Manager struct {
	api      Authenticator
	sessions SessionStore
	cookie   CookieConfig
}

// NewManager creates an auth manager.
func NewManager(api Authenticator, sessions SessionStore, cookie CookieConfig) *Manager {
	if cookie.Name == "" {
		cookie.Name = "helpdesk_session"
	}
	return &Manager{api: api, sessions: sessions, cookie: cookie}
}

type sessionKey struct{}

// WithSession returns ctx carrying the session and its API token.
func WithSession(ctx context.Context, s *domain.Session) context.Context {
	ctx = context.WithValue(ctx, sessionKey{}, s)
	return helpdeskapi.ContextWithToken(ctx, s.Token)
}

// FromContext returns the request's session, or nil.
func FromContext(ctx context.Context) *domain.Session {
	s, _ := ctx.Value(sessionKey{}).(*domain.Session)
	return s
}

// ResolverFrom returns the feature resolver for the request's session.
func ResolverFrom(ctx context.Context) *access.Resolver {
	return access.ForSession(FromContext(ctx))
}

// UserView is the signed-in user as the browser sees it.
type UserView struct {
	Authenticated bool                       `json:"authenticated"`
	User          *domain.User               `json:"user,omitempty"`
	Plan          domain.Plan                `json:"plan,omitempty"`
	Features      map[domain.FeatureKey]bool `json:"features,omitempty"`
}

func viewOf(s *domain.Session) UserView {
	r := access.ForSession(s)
	u := s.User
	return UserView{Authenticated: true, User: &u, Plan: r.Plan(), Features: r.Features()}
}

// HandleLogin signs in with {email, password}.
func (m *Manager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !httputil.Decode(w, r, &in) {
		return
	}
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		httputil.BadRequest(w, "email and password are required")
		return
	}

	token, user, err := m.api.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		switch {
		case httputil.Abandoned(r, err):
		case errors.Is(err, helpdeskapi.ErrUnauthorized):
			logger.Info("login rejected", "email", in.Email)
			httputil.ErrorCode(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", nil)
		case errors.Is(err, helpdeskapi.ErrNetwork):
			httputil.BadGateway(w, err)
		default:
			if apiErr, ok := helpdeskapi.Rejected(err); ok {
				httputil.BadRequest(w, apiErr.Message)
				return
			}
			httputil.BadGateway(w, err)
		}
		return
	}

	sess, err := m.sessions.Create(r.Context(), token, user)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	logger.Info("user logged in", "email", user.Email, "role", string(user.Role), "plan", string(user.Plan))

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie.Name,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   m.cookie.MaxAge,
		HttpOnly: true,
		Secure:   m.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	httputil.OK(w, viewOf(sess))
}

// HandleLogout ends the session.
func (m *Manager) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(m.cookie.Name); err == nil && c.Value != "" {
		if err := m.sessions.Delete(r.Context(), c.Value); err != nil {
			logger.Warn("logout: failed to delete session", "error", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cookie.Secure,
	})
	httputil.NoContent(w)
}

// HandleUserInfo returns the current user, plan and feature map.
func (m *Manager) HandleUserInfo(w http.ResponseWriter, r *http.Request) {
	sess := m.GetSession(r)
	if sess == nil {
		httputil.JSON(w, http.StatusUnauthorized, UserView{})
		return
	}
	httputil.OK(w, viewOf(sess))
}

// HandleRefresh reloads the user from the API so a plan bought after
// login takes effect without signing in again. It must run after
// RequireAuth.
func (m *Manager) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	sess := FromContext(r.Context())
	if sess == nil {
		httputil.Unauthorized(w)
		return
	}
	user, err := m.api.Me(r.Context())
	if err != nil {
		switch {
		case httputil.Abandoned(r, err):
		case errors.Is(err, helpdeskapi.ErrUnauthorized):
			httputil.ErrorCode(w, http.StatusUnauthorized, "session_expired", "your helpdesk session has expired, please sign in again", nil)
		default:
			httputil.BadGateway(w, err)
		}
		return
	}
	updated, err := m.sessions.UpdateUser(r.Context(), sess.ID, user)
	if err != nil {
		if !httputil.Abandoned(r, err) {
			httputil.InternalError(w, err)
		}
		return
	}
	if updated.User.Plan != sess.User.Plan {
		logger.Info("plan changed", "email", user.Email, "from", string(sess.User.Plan), "to", string(user.Plan))
	}
	httputil.OK(w, viewOf(updated))
}

// GetSession returns the session for the request, or nil if not
// authenticated.
func (m *Manager) GetSession(r *http.Request) *domain.Session {
	if s := FromContext(r.Context()); s != nil {
		return s
	}
	c, err := r.Cookie(m.cookie.Name)
	if err != nil || c.Value == "" {
		return nil
	}
	s, err := m.sessions.Get(r.Context(), c.Value)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) && r.Context().Err() == nil {
			logger.Warn("session lookup failed", "error", err)
		}
		return nil
	}
	return s
}

// Optional attaches the session when there is one and never rejects.
func (m *Manager) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s := m.GetSession(r); s != nil {
			r = r.WithContext(WithSession(r.Context(), s))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects requests without a valid session with 401.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := m.GetSession(r)
		if s == nil {
			httputil.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

// RequireAdmin rejects non-admin sessions with 403. It must run after
// RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := FromContext(r.Context())
		if s == nil {
			httputil.Unauthorized(w)
			return
		}
		if !s.User.Role.IsAdmin() {
			httputil.Forbidden(w, "administrator access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
