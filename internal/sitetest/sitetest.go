// Package sitetest serves a fake StreamingCommunity site for tests.
//
// The site mirrors the real request flow: the landing page sets session cookies and carries
// the Inertia version, title pages refuse requests without that session (409), and the player
// refuses requests that do not look like an iframe navigation (403).
package sitetest

import (
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

// Version is the Inertia version the landing page advertises.
const Version = "7e1f3a9c5d2b"

// Session cookies set by the landing page, in order.
var Cookies = []*http.Cookie{
	{Name: "XSRF-TOKEN", Value: "xsrf-8d1c"},
	{Name: "streamingcommunity_session", Value: "sess-52af"},
}

// ServerURL is replaced with the server's base URL in frame pages.
const ServerURL = "{{server}}"

// Site is a fake catalogue. Maps may be edited before requests are made.
type Site struct {
	*httptest.Server

	// Searches maps a query to the raw search response body.
	Searches map[string]string
	// Pages maps a title id to its Inertia JSON page.
	Pages map[int]string
	// Frames maps a title id to the embed frame HTML.
	Frames map[int]string
	// Players maps a player id to its HTML.
	Players map[int]string

	// FailLanding is the number of landing requests answered with 503 before succeeding.
	FailLanding int
	// NoVersion drops the data-page attribute from the landing page.
	NoVersion bool

	mu       sync.Mutex
	landings int
	requests []string
}

// New starts a site with the Marvel catalogue. It is closed when the caller closes it.
func New() *Site {
	s := &Site{
		Searches: map[string]string{},
		Pages:    map[int]string{},
		Frames:   map[int]string{},
		Players:  map[int]string{},
	}
	s.seed()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /it", s.landing)
	mux.HandleFunc("GET /archive", s.landing)
	mux.HandleFunc("GET /api/search", s.search)
	mux.HandleFunc("GET /it/titles/{ref}", s.title)
	mux.HandleFunc("GET /it/iframe/{id}", s.frame)
	mux.HandleFunc("GET /embed/{id}", s.player)

	s.Server = httptest.NewServer(s.record(mux))
	return s
}

// Landings reports how many landing requests were served.
func (s *Site) Landings() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.landings
}

// Requests returns the request paths in the order they arrived.
func (s *Site) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Site) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.URL.Path)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Site) landing(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.landings++
	fail := s.landings <= s.FailLanding
	s.mu.Unlock()

	if fail {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	if r.Header.Get("X-Inertia") != "" {
		w.Header().Set("X-Inertia-Location", r.URL.String())
		w.WriteHeader(http.StatusConflict)
		return
	}

	for _, c := range Cookies {
		http.SetCookie(w, c)
	}

	page := fmt.Sprintf(`{"component":"Home","props":{},"url":"/it","version":%q}`, Version)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if s.NoVersion {
		fmt.Fprint(w, `<!DOCTYPE html><html><body><div id="app"></div></body></html>`)
		return
	}
	fmt.Fprintf(w, `<!DOCTYPE html><html><body><div id="app" data-page="%s"></div></body></html>`, html.EscapeString(page))
}

func (s *Site) search(w http.ResponseWriter, r *http.Request) {
	body, ok := s.Searches[r.URL.Query().Get("q")]
	if !ok {
		body = `{"data":[]}`
	}

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, body)
}

func (s *Site) authorized(r *http.Request) bool {
	if r.Header.Get("X-Inertia-Version") != Version {
		return false
	}

	cookie := r.Header.Get("Cookie")
	for _, c := range Cookies {
		if !strings.Contains(cookie, c.Name+"="+c.Value) {
			return false
		}
	}

	return true
}

func (s *Site) title(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		w.WriteHeader(http.StatusConflict)
		return
	}

	ref := r.PathValue("ref")
	id, err := strconv.Atoi(strings.SplitN(ref, "-", 2)[0])
	if err != nil {
		http.NotFound(w, r)
		return
	}

	page, ok := s.Pages[id]
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Inertia", "true")
	fmt.Fprint(w, page)
}

func (s *Site) frame(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	page, ok := s.Frames[id]
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, strings.ReplaceAll(page, ServerURL, s.URL))
}

func (s *Site) player(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Referer") == "" || r.Header.Get("Sec-Fetch-Dest") != "iframe" {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	page, ok := s.Players[id]
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, page)
}
