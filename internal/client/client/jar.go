package client

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"golang.org/x/net/publicsuffix"
)

// sessionJar is a cookie jar that can be emptied in place.
type sessionJar struct {
	mu  sync.RWMutex
	jar *cookiejar.Jar
}

func newSessionJar() *sessionJar {
	return &sessionJar{jar: newCookieJar()}
}

func newCookieJar() *cookiejar.Jar {
	// cookiejar.New never returns an error.
	j, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return j
}

func (s *sessionJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.jar.SetCookies(u, cookies)
}

func (s *sessionJar) Cookies(u *url.URL) []*http.Cookie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jar.Cookies(u)
}

func (s *sessionJar) Reset() {
	s.mu.Lock()
	s.jar = newCookieJar()
	s.mu.Unlock()
}
