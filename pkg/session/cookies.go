package session

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// cookieRecord is the on-disk form of a single cookie. The jar cannot give
// back domain/path/expiry attributes, so the session keeps the full set
// around and this is what gets written.
type cookieRecord struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Domain  string    `json:"domain"`
	Path    string    `json:"path"`
	Secure  bool      `json:"secure,omitempty"`
	Expires time.Time `json:"expires,omitempty"` // zero for session cookies
}

func cookiesPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	dir := filepath.Join(homeDir, ".config", "uforactl")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("could not create config directory: %w", err)
	}
	return filepath.Join(dir, "cookies.json"), nil
}

// LoadCookies reads the persisted cookie set into the live client.
// Returns whether a cookie file was found at all.
func (s *Session) LoadCookies() bool {
	path, err := cookiesPath()
	if err != nil {
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false // no file yet
	}

	var records []cookieRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return false
	}

	cookies := make([]*http.Cookie, 0, len(records))
	for _, r := range records {
		cookies = append(cookies, &http.Cookie{
			Name:    r.Name,
			Value:   r.Value,
			Domain:  r.Domain,
			Path:    r.Path,
			Secure:  r.Secure,
			Expires: r.Expires,
		})
	}

	s.adoptCookies(cookies)
	return true
}

// SaveCookies persists the current cookie set to disk.
func (s *Session) SaveCookies() error {
	path, err := cookiesPath()
	if err != nil {
		return err
	}

	records := make([]cookieRecord, 0, len(s.cookies))
	for _, c := range s.cookies {
		records = append(records, cookieRecord{
			Name:    c.Name,
			Value:   c.Value,
			Domain:  c.Domain,
			Path:    c.Path,
			Secure:  c.Secure,
			Expires: c.Expires,
		})
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// adoptCookies replaces the session's cookie set and loads it into the
// client's jar, grouped per cookie domain.
func (s *Session) adoptCookies(cookies []*http.Cookie) {
	s.cookies = cookies

	byDomain := make(map[string][]*http.Cookie)
	for _, c := range cookies {
		domain := strings.TrimPrefix(c.Domain, ".")
		if domain == "" {
			u, err := url.Parse(baseURL)
			if err != nil {
				continue
			}
			domain = u.Host
		}
		byDomain[domain] = append(byDomain[domain], c)
	}

	for domain, group := range byDomain {
		u := &url.URL{Scheme: "https", Host: domain, Path: "/"}
		s.client.Jar.SetCookies(u, group)
	}
}
