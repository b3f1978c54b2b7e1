// Package auth gates the dashboard behind Google sign-in and an email
// allowlist, with in-memory cookie sessions.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	sessionCookie = "fleetwatch_session"
	stateCookie   = "fleetwatch_oauth_state"

	userinfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
)

type contextKey struct{}

// Config holds everything the login gate needs.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// AllowedEmails is matched exactly, case-sensitive. Whitespace around
	// entries is trimmed when the list comes from a comma-joined variable.
	AllowedEmails []string

	SessionTTL time.Duration
}

// Authenticator implements the OAuth login flow and the allowlist check.
type Authenticator struct {
	oauth    *oauth2.Config
	allowed  map[string]bool
	sessions *SessionStore
	log      *log.Logger

	// userinfo endpoint, overridable in tests.
	userinfo string
}

// New creates an Authenticator from config.
func New(cfg Config, logger *log.Logger) *Authenticator {
	allowed := make(map[string]bool, len(cfg.AllowedEmails))
	for _, email := range cfg.AllowedEmails {
		if e := strings.TrimSpace(email); e != "" {
			allowed[e] = true
		}
	}

	return &Authenticator{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		allowed:  allowed,
		sessions: NewSessionStore(cfg.SessionTTL),
		log:      logger,
		userinfo: userinfoURL,
	}
}

// Allowed reports whether the email is on the allowlist. Matching is exact.
func (a *Authenticator) Allowed(email string) bool {
	return a.allowed[email]
}

// HandleStart begins the authorization-code flow.
func (a *Authenticator) HandleStart(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, a.oauth.AuthCodeURL(state), http.StatusFound)
}

// HandleCallback finishes the flow: verifies state, exchanges the code,
// resolves the email, and opens a session when the email is allowed.
func (a *Authenticator) HandleCallback(w http.ResponseWriter, r *http.Request) {
	stateC, err := r.Cookie(stateCookie)
	if err != nil || stateC.Value == "" || r.URL.Query().Get("state") != stateC.Value {
		http.Error(w, "state mismatch", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing authorization code", http.StatusBadRequest)
		return
	}

	token, err := a.oauth.Exchange(r.Context(), code)
	if err != nil {
		a.log.Warn("token exchange failed", "err", err)
		http.Error(w, "authentication failed", http.StatusBadGateway)
		return
	}

	email, err := a.fetchEmail(r.Context(), token)
	if err != nil {
		a.log.Warn("userinfo fetch failed", "err", err)
		http.Error(w, "authentication failed", http.StatusBadGateway)
		return
	}

	if !a.Allowed(email) {
		a.log.Warn("access denied", "email", email)
		http.Error(w, fmt.Sprintf("access denied: %s is not allowed", email), http.StatusForbidden)
		return
	}

	a.log.Info("user logged in", "email", email)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    a.sessions.Create(email),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

// HandleLogout closes the current session.
func (a *Authenticator) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		a.sessions.Delete(c.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusFound)
}

// RequireUser guards a handler behind a valid session. Browser routes are
// redirected to /login; API routes get a plain 401.
func (a *Authenticator) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(sessionCookie)
		if err == nil {
			if email, ok := a.sessions.Email(c.Value); ok {
				next.ServeHTTP(w, r.WithContext(WithEmail(r.Context(), email)))
				return
			}
		}
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		http.Redirect(w, r, "/login", http.StatusFound)
	})
}

func (a *Authenticator) fetchEmail(ctx context.Context, token *oauth2.Token) (string, error) {
	resp, err := a.oauth.Client(ctx, token).Get(a.userinfo)
	if err != nil {
		return "", fmt.Errorf("userinfo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("userinfo: %s", resp.Status)
	}

	var info struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("userinfo: %w", err)
	}
	if info.Email == "" {
		return "", fmt.Errorf("userinfo: no email in response")
	}
	return info.Email, nil
}

// WithEmail stores the logged-in email on the context.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, contextKey{}, email)
}

// EmailFromContext returns the logged-in email, if any.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(contextKey{}).(string)
	return email, ok
}
