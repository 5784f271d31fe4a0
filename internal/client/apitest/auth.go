package apitest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type ctxKey struct{}

// AddUser seeds an account and returns it with its id.
func (s *Server) AddUser(u models.User, password string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	s.accounts[u.ID] = &account{user: u, password: hashPassword(password)}
	return u
}

// SessionToken signs a session for userID, as login does.
func (s *Server) SessionToken(userID string) string {
	now := s.Now()
	tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
	}).SignedString(s.secret)
	return tok
}

func (s *Server) setSession(w http.ResponseWriter, userID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    s.SessionToken(userID),
		Path:     "/",
		HttpOnly: true,
		Expires:  s.Now().Add(sessionTTL),
	})
}

func (s *Server) userFromRequest(r *http.Request) (models.User, error) {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return models.User{}, err
	}
	claims := jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(c.Value, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.Now))
	if err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[claims.Subject]
	if !ok {
		return models.User{}, errors.New("unknown user")
	}
	return a.user, nil
}

func (s *Server) authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := s.userFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, u)))
	})
}

func currentUser(r *http.Request) models.User {
	u, _ := r.Context().Value(ctxKey{}).(models.User)
	return u
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in models.RegisterInput
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.Name == "" || in.Email == "" || len(in.Password) < 6 {
		writeError(w, http.StatusBadRequest, "Name, email and a password of at least 6 characters are required")
		return
	}
	if in.Role != models.RoleCandidate && in.Role != models.RoleEmployer {
		writeError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	s.mu.Lock()
	for _, a := range s.accounts {
		if strings.EqualFold(a.user.Email, in.Email) {
			s.mu.Unlock()
			writeError(w, http.StatusConflict, "Email already registered")
			return
		}
	}
	s.mu.Unlock()

	u := s.AddUser(models.User{Name: in.Name, Email: in.Email, Role: in.Role, Company: in.Company}, in.Password)
	s.setSession(w, u.ID)
	writeData(w, http.StatusCreated, models.AuthPayload{User: u}, nil)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in models.LoginInput
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	var found *account
	for _, a := range s.accounts {
		if strings.EqualFold(a.user.Email, in.Email) && a.password.matches(in.Password) {
			found = a
			break
		}
	}
	s.mu.Unlock()

	if found == nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	s.setSession(w, found.user.ID)
	writeData(w, http.StatusOK, models.AuthPayload{User: found.user}, nil)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	writeData(w, http.StatusOK, nil, nil)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, models.AuthPayload{User: currentUser(r)}, nil)
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
