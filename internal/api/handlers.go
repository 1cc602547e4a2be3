package api

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shikshamitra/platform/internal/auth"
	"github.com/shikshamitra/platform/internal/config"
	"github.com/shikshamitra/platform/internal/core"
	"github.com/shikshamitra/platform/internal/forms"
	"github.com/shikshamitra/platform/internal/site"
	"github.com/shikshamitra/platform/internal/store"
)

const (
	sessionCookieName = "platform_session"
	chatCookieName    = "platform_chat"

	// Error indicator appended to the login route when an authorization
	// code exchange fails.
	confirmationFailedError = "confirmation_failed"
)

// ContactStore is the persistence surface for contact submissions. A nil
// store leaves the contact form display-only.
type ContactStore interface {
	CreateContactMessage(msg *store.ContactMessage) error
}

type Handler struct {
	cfg      *config.Config
	bridge   *auth.Bridge
	sessions *core.SessionRegistry
	renderer *site.Renderer
	contacts ContactStore
}

func NewHandler(cfg *config.Config, bridge *auth.Bridge, sessions *core.SessionRegistry, renderer *site.Renderer, contacts ContactStore) *Handler {
	return &Handler{
		cfg:      cfg,
		bridge:   bridge,
		sessions: sessions,
		renderer: renderer,
		contacts: contacts,
	}
}

// --- Pages ---

// PageHandler renders one brand-parameterized page.
func (h *Handler) PageHandler(page string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := site.PageData{
			Active: page,
			Error:  errorMessage(r.URL.Query().Get("error")),
		}
		if claims := h.sessionClaims(r); claims != nil {
			data.SignedIn = true
			data.Email = claims.Email
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := h.renderer.Render(w, page, data); err != nil {
			log.Printf("Error rendering page %s: %v", page, err)
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
		}
	}
}

// RequireSession guards a page behind a valid session cookie; without one
// the user is sent to the login page.
func (h *Handler) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.sessionClaims(r) == nil {
			http.Redirect(w, r, auth.LoginRoute, http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

func (h *Handler) sessionClaims(r *http.Request) *auth.TokenClaims {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	claims, err := auth.VerifyAccessToken(cookie.Value, h.cfg.AuthJWTSecret)
	if err != nil {
		return nil
	}
	return claims
}

// --- Form actions ---

func (h *Handler) SignInAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, auth.LoginRoute, "invalid form submission")
		return
	}

	session, err := h.bridge.SignIn(r.Context(), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		redirectWithError(w, r, auth.LoginRoute, err.Error())
		return
	}

	h.setSessionCookie(w, session.AccessToken, session.ExpiresIn)
	http.Redirect(w, r, auth.LandingRoute, http.StatusSeeOther)
}

func (h *Handler) SignUpAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, "/signup", "invalid form submission")
		return
	}

	outcome, err := h.bridge.SignUp(r.Context(), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		redirectWithError(w, r, "/signup", err.Error())
		return
	}

	if outcome.PendingConfirmation {
		// Created but not signed in; tell the user to check their mailbox.
		http.Redirect(w, r, "/confirm", http.StatusSeeOther)
		return
	}

	h.setSessionCookie(w, outcome.Session.AccessToken, outcome.Session.ExpiresIn)
	http.Redirect(w, r, auth.LandingRoute, http.StatusSeeOther)
}

func (h *Handler) SignOutAction(w http.ResponseWriter, r *http.Request) {
	token := ""
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		token = cookie.Value
	}

	if err := h.bridge.SignOut(r.Context(), token); err != nil {
		redirectWithError(w, r, auth.LandingRoute, "signout_failed")
		return
	}

	h.clearSessionCookie(w)
	http.Redirect(w, r, auth.LoginRoute, http.StatusSeeOther)
}

// OAuthStartHandler redirects to the auth service's hosted OAuth flow.
func (h *Handler) OAuthStartHandler(w http.ResponseWriter, r *http.Request) {
	provider := auth.OAuthProvider(chi.URLParam(r, "provider"))

	target, err := h.bridge.SignInWithOAuth(provider, h.callbackURL())
	if err != nil {
		redirectWithError(w, r, auth.LoginRoute, "unsupported_provider")
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// AuthConfirmHandler exchanges an authorization code for a session. A
// failed exchange redirects to the login route with the fixed error
// indicator; success (or an absent code) redirects to the requested next
// destination.
func (h *Handler) AuthConfirmHandler(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	next := sanitizeNext(r.URL.Query().Get("next"))

	if code != "" {
		session, err := h.bridge.ExchangeCode(r.Context(), code)
		if err != nil {
			redirectWithError(w, r, auth.LoginRoute, confirmationFailedError)
			return
		}
		h.setSessionCookie(w, session.AccessToken, session.ExpiresIn)
	}

	http.Redirect(w, r, next, http.StatusSeeOther)
}

// --- JSON API ---

type chatRequest struct {
	Message string `json:"message"`
	APIKey  string `json:"api_key"`
}

type chatResponse struct {
	Accepted   bool        `json:"accepted"`
	Transcript []core.Turn `json:"transcript"`
}

func (h *Handler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	chat := h.sessions.Get(h.chatSessionID(w, r))
	if req.APIKey != "" {
		chat.SetCredential(req.APIKey)
	}

	accepted := chat.Submit(r.Context(), req.Message)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(chatResponse{
		Accepted:   accepted,
		Transcript: chat.Transcript(),
	})
}

type contactResponse struct {
	Submitted bool `json:"submitted"`
}

func (h *Handler) ContactHandler(w http.ResponseWriter, r *http.Request) {
	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	form := forms.NewContactForm()
	for _, name := range forms.ContactFields {
		form.SetField(name, fields[name])
	}
	record := form.Submit()
	// The confirmation countdown runs client-side; this form object is
	// request-scoped, so cancel its revert timer once the response is out.
	defer form.Dismiss()

	if h.contacts != nil {
		msg := &store.ContactMessage{
			Name:    record["name"],
			Email:   record["email"],
			Subject: record["subject"],
			Message: record["message"],
		}
		if err := h.contacts.CreateContactMessage(msg); err != nil {
			// Display-only contract: confirm to the user either way.
			log.Printf("Failed to persist contact message: %v", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(contactResponse{Submitted: form.Submitted()})
}

// --- helpers ---

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	if maxAge <= 0 {
		maxAge = 3600
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// chatSessionID returns the chat session cookie value, minting one (and
// setting the cookie) on first use.
func (h *Handler) chatSessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(chatCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := h.sessions.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     chatCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// callbackURL builds the post-auth redirect target from the configured
// public base URL, never from request headers the client controls.
func (h *Handler) callbackURL() string {
	return strings.TrimRight(h.cfg.PublicBaseURL, "/") + "/auth/confirm"
}

func redirectWithError(w http.ResponseWriter, r *http.Request, path, message string) {
	http.Redirect(w, r, path+"?error="+url.QueryEscape(message), http.StatusSeeOther)
}

// sanitizeNext keeps redirects on-site.
func sanitizeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return auth.LandingRoute
	}
	return next
}

// errorMessage turns the query-string error indicator into display text.
func errorMessage(code string) string {
	switch code {
	case "":
		return ""
	case confirmationFailedError:
		return "We couldn't confirm your sign-in. Please try again."
	case "unsupported_provider":
		return "That sign-in provider isn't supported."
	case "signout_failed":
		return "Sign out failed. Please try again."
	default:
		return code
	}
}
