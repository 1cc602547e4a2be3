package auth

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// Routes the HTTP layer redirects to after bridge operations. Navigation
// happens only at the explicit call sites; the state-change mirror
// (ApplyAuthChange) never navigates.
const (
	LandingRoute = "/"
	LoginRoute   = "/login"
)

// MinPasswordLength is enforced locally before the auth service is ever
// contacted.
const MinPasswordLength = 6

// ValidationError is a local, pre-network failure: the auth service was
// never contacted.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// AuthEvent is a state-change notification kind from the auth service.
type AuthEvent string

const (
	EventSignedIn       AuthEvent = "SIGNED_IN"
	EventSignedOut      AuthEvent = "SIGNED_OUT"
	EventTokenRefreshed AuthEvent = "TOKEN_REFRESHED"
)

// OAuthProvider names a supported redirect-based OAuth provider.
type OAuthProvider string

const (
	ProviderGoogle   OAuthProvider = "google"
	ProviderFacebook OAuthProvider = "facebook"
)

// SignUpOutcome reports how a successful sign-up resolved. When the
// identity requires email confirmation, Session is nil and
// PendingConfirmation is true; the caller must not navigate to the landing
// route in that case.
type SignUpOutcome struct {
	User                *User
	Session             *Session
	PendingConfirmation bool
}

// Bridge presents one reactive "current identity" value and the
// identity-mutating operations, backed by the auth collaborator. The held
// identity always reflects the most recent notification applied; it is
// never cached across a contradicting one.
type Bridge struct {
	collab Collaborator

	mu      sync.Mutex
	user    *User
	loading bool
}

func NewBridge(collab Collaborator) *Bridge {
	return &Bridge{collab: collab}
}

// CurrentUser returns the mirrored identity, or nil when signed out.
func (b *Bridge) CurrentUser() *User {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.user
}

// Loading reports whether an auth operation is in flight.
func (b *Bridge) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

func (b *Bridge) setLoading(v bool) {
	b.mu.Lock()
	b.loading = v
	b.mu.Unlock()
}

func (b *Bridge) setUser(u *User) {
	b.mu.Lock()
	b.user = u
	b.mu.Unlock()
}

// SignIn authenticates with email and password. Collaborator failures are
// logged and propagated so the caller can surface the message. On success
// the identity is mirrored and the caller should navigate to LandingRoute.
func (b *Bridge) SignIn(ctx context.Context, email, password string) (*Session, error) {
	b.setLoading(true)
	defer b.setLoading(false)

	session, err := b.collab.SignInWithPassword(ctx, email, password)
	if err != nil {
		log.Printf("Sign in failed for %s: %v", email, err)
		return nil, err
	}

	b.setUser(session.User)
	return session, nil
}

// SignUp registers a new identity. Local validation runs first: empty
// email or password, or a password under MinPasswordLength characters,
// fails with a ValidationError before the collaborator is contacted.
func (b *Bridge) SignUp(ctx context.Context, email, password string) (*SignUpOutcome, error) {
	if email == "" || password == "" {
		return nil, &ValidationError{Reason: "Email and password are required"}
	}
	if len(password) < MinPasswordLength {
		return nil, &ValidationError{Reason: fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength)}
	}

	b.setLoading(true)
	defer b.setLoading(false)

	result, err := b.collab.SignUp(ctx, email, password)
	if err != nil {
		log.Printf("Sign up failed for %s: %v", email, err)
		return nil, err
	}

	if result.Session == nil {
		// Identity created but awaiting email confirmation. Resolve without
		// navigating; the surrounding flow tells the user to check their
		// mailbox.
		return &SignUpOutcome{User: result.User, PendingConfirmation: true}, nil
	}

	b.setUser(result.Session.User)
	return &SignUpOutcome{User: result.Session.User, Session: result.Session}, nil
}

// SignOut ends the session held by accessToken. On success the caller
// should navigate to LoginRoute.
func (b *Bridge) SignOut(ctx context.Context, accessToken string) error {
	b.setLoading(true)
	defer b.setLoading(false)

	if err := b.collab.SignOut(ctx, accessToken); err != nil {
		log.Printf("Sign out failed: %v", err)
		return err
	}

	b.setUser(nil)
	return nil
}

// SignInWithOAuth returns the collaborator's authorize URL for a
// redirect-based OAuth flow. The bridge does not handle the callback; the
// confirm route exchanges the resulting code.
func (b *Bridge) SignInWithOAuth(provider OAuthProvider, redirectTo string) (string, error) {
	switch provider {
	case ProviderGoogle, ProviderFacebook:
	default:
		return "", &ValidationError{Reason: fmt.Sprintf("unsupported OAuth provider %q", provider)}
	}

	b.setLoading(true)
	defer b.setLoading(false)

	target, err := b.collab.AuthorizeURL(string(provider), redirectTo)
	if err != nil {
		log.Printf("OAuth sign in via %s failed: %v", provider, err)
		return "", err
	}
	return target, nil
}

// ExchangeCode swaps an authorization code for a session and mirrors the
// resulting identity. Used by the auth confirm route.
func (b *Bridge) ExchangeCode(ctx context.Context, code string) (*Session, error) {
	session, err := b.collab.ExchangeCode(ctx, code)
	if err != nil {
		log.Printf("Auth code exchange failed: %v", err)
		return nil, err
	}
	b.setUser(session.User)
	return session, nil
}

// ApplyAuthChange mirrors one state-change notification from the auth
// service into the reactive value. Notifications are applied in arrival
// order; this method only updates state and never triggers navigation.
func (b *Bridge) ApplyAuthChange(event AuthEvent, session *Session) {
	switch event {
	case EventSignedIn, EventTokenRefreshed:
		if session != nil {
			b.setUser(session.User)
		} else {
			b.setUser(nil)
		}
	case EventSignedOut:
		b.setUser(nil)
	}
}
