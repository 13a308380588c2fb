package session

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"
)

// Endpoints and hosts involved in the authentication dance. Package
// variables so tests can point them at a local server.
var (
	baseURL     = "https://ufora.ugent.be"
	loginURL    = "https://elosp.ugent.be/welcome/uforalogin?"
	loggedInURL = "https://ufora.ugent.be/d2l/home"
	idpHost     = "elosp.ugent.be"
)

const probeTimeout = 10 * time.Second

// Credentials are what the interactive login needs from the user
type Credentials struct {
	Email       string
	Password    string
	TwoFAMethod string // "app" or "sms"
}

// CredentialFunc asks the user for their credentials. The presentation
// layer supplies one so this package stays promptless.
type CredentialFunc func() (Credentials, error)

// Automator drives a real browser through the identity provider's login
// flow. It is an interface so the session logic can be tested with a fake.
type Automator interface {
	// InteractiveLogin performs the full password + 2FA flow and returns
	// the browser's cookies on success.
	InteractiveLogin(creds Credentials) ([]*http.Cookie, error)
	// SilentRefresh reuses long-lived identity-provider cookies to mint a
	// fresh portal session without prompting. An error means the attempt
	// failed; the caller degrades, it never aborts.
	SilentRefresh(existing []*http.Cookie) ([]*http.Cookie, error)
}

// Session owns the authenticated HTTP client and its cookie set
type Session struct {
	client *http.Client
	// cookies mirrors the full cookie set as last returned by a browser
	// flow (or loaded from disk), including attributes the jar does not
	// expose back. This is what gets persisted.
	cookies []*http.Cookie
	auto    Automator
}

// New creates a session with an empty cookie jar and the given automator.
func New(auto Automator) *Session {
	jar, _ := cookiejar.New(nil)
	return &Session{
		client: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
		auto: auto,
	}
}

// Get issues an authenticated GET request with browser-like headers.
func (s *Session) Get(url string) (*http.Response, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	setBrowserHeaders(req)

	return s.client.Do(req)
}

// setBrowserHeaders mimics a desktop browser; the portal serves different
// markup (and the IdP blocks outright) on unfamiliar user agents.
func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "nl-BE,nl;q=0.9,en;q=0.8")
	req.Header.Set("DNT", "1")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
}

// IsAuthenticated probes the portal root. We are logged in exactly when the
// request does not end up redirected to the identity provider. Transport
// errors count as "not authenticated" and are only reported, never returned.
func (s *Session) IsAuthenticated() bool {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", baseURL, nil)
	if err != nil {
		return false
	}
	setBrowserHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		fmt.Printf("Error checking authentication: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	// resp.Request holds the final request after redirects
	return resp.Request.URL.Host != idpHost
}

// Login runs the full interactive browser login and persists the resulting
// cookies on success.
func (s *Session) Login(prompt CredentialFunc) error {
	creds, err := prompt()
	if err != nil {
		return err
	}

	cookies, err := s.auto.InteractiveLogin(creds)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	s.adoptCookies(cookies)
	if err := s.SaveCookies(); err != nil {
		return fmt.Errorf("login succeeded but cookies could not be saved: %w", err)
	}
	return nil
}

// Refresh attempts a cookie-only re-authentication. It never returns an
// error; a failed attempt just reports false so the caller can fall back
// to the interactive login.
func (s *Session) Refresh() bool {
	fmt.Println("Refreshing session with saved cookies...")

	cookies, err := s.auto.SilentRefresh(s.cookies)
	if err != nil {
		fmt.Printf("Session refresh failed: %v\n", err)
		return false
	}

	s.adoptCookies(cookies)
	if err := s.SaveCookies(); err != nil {
		fmt.Printf("Warning: could not save refreshed cookies: %v\n", err)
	}
	return true
}

// EnsureAuthenticated makes sure the session is usable, trying the cheapest
// path first: stored cookies, then a silent refresh, then the full
// interactive login.
func (s *Session) EnsureAuthenticated(prompt CredentialFunc) error {
	if s.LoadCookies() {
		if s.IsAuthenticated() {
			return nil
		}
		fmt.Println("Session expired...")
		if s.Refresh() {
			return nil
		}
		fmt.Println("Need to re-login with password/2FA")
	}

	return s.Login(prompt)
}
