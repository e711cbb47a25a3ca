// Package fakeapi is an in-process implementation of the user API's wire contract. It serves
// the same fixed users as the public service, so the test suites can run without network
// access.
package fakeapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/yjuanrodriguez/pw-api-testing/httpclient"
	"github.com/yjuanrodriguez/pw-api-testing/servicedef"
)

const (
	defaultPage    = 1
	defaultPerPage = 6

	timestampFormat = "2006-01-02T15:04:05.000Z"

	errMissingAPIKey       = "Missing API key"
	errMissingPassword     = "Missing password"
	errMissingEmail        = "Missing email or username"
	errUndefinedUser       = "Note: Only defined users succeed registration"
	errUserNotFound        = "user not found"
	homePageHTML           = "<!DOCTYPE html>\n<html><head><title>Users</title></head><body><h1>Users</h1></body></html>\n"
	tokenNamespaceEmailURL = "https://reqres.in/api/users/"
)

// Config controls optional behavior of the API.
type Config struct {
	// APIKey, if not empty, must be sent in the x-api-key header of every /api request.
	APIKey string
	// Logger receives one entry per request. If nil, nothing is logged.
	Logger logrus.FieldLogger
	// Now is the clock used for createdAt and updatedAt. If nil, time.Now is used.
	Now func() time.Time
}

type server struct {
	users  []servicedef.User
	apiKey string
	logger logrus.FieldLogger
	now    func() time.Time
}

// NewHandler returns the HTTP handler for the API.
func NewHandler(config Config) http.Handler {
	s := &server{
		users:  Users(),
		apiKey: config.APIKey,
		logger: config.Logger,
		now:    config.Now,
	}
	if s.logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		s.logger = discard
	}
	if s.now == nil {
		s.now = time.Now
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.home)
	r.Route("/api", func(r chi.Router) {
		r.Use(s.requireAPIKey)
		r.Get("/users", s.listUsers)
		r.Post("/users", s.createUser)
		r.Get("/users/{id}", s.getUser)
		r.Put("/users/{id}", s.updateUser)
		r.Patch("/users/{id}", s.updateUser)
		r.Delete("/users/{id}", s.deleteUser)
		r.Post("/register", s.register)
		r.Post("/login", s.login)
	})
	return r
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start),
		}).Info("request served")
	})
}

func (s *server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey != "" && r.Header.Get(httpclient.APIKeyHeader) != s.apiKey {
			writeError(w, http.StatusUnauthorized, errMissingAPIKey)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *server) home(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(homePageHTML))
}

func (s *server) listUsers(w http.ResponseWriter, r *http.Request) {
	page := intParam(r, servicedef.PageParam, defaultPage)
	perPage := intParam(r, servicedef.PerPageParam, defaultPerPage)
	writeJSON(w, http.StatusOK, servicedef.UsersListResponse{
		Page:       page,
		PerPage:    perPage,
		Total:      len(s.users),
		TotalPages: totalPages(s.users, perPage),
		Data:       pageOf(s.users, page, perPage),
	})
}

func (s *server) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err == nil {
		if user, ok := findUserByID(s.users, id); ok {
			writeJSON(w, http.StatusOK, struct {
				Data servicedef.User `json:"data"`
			}{user})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, struct{}{})
}

func (s *server) createUser(w http.ResponseWriter, r *http.Request) {
	body := readJSONObject(r)
	body.Set("id", ldvalue.String(strconv.Itoa(gofakeit.Number(1, 1000))))
	body.Set("createdAt", ldvalue.String(s.timestamp()))
	writeJSON(w, http.StatusCreated, body.Build())
}

func (s *server) updateUser(w http.ResponseWriter, r *http.Request) {
	body := readJSONObject(r)
	body.Set("updatedAt", ldvalue.String(s.timestamp()))
	writeJSON(w, http.StatusOK, body.Build())
}

func (s *server) deleteUser(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) register(w http.ResponseWriter, r *http.Request) {
	creds, ok := s.readCredentials(w, r)
	if !ok {
		return
	}
	user, found := findUserByEmail(s.users, creds.Email)
	if !found {
		writeError(w, http.StatusBadRequest, errUndefinedUser)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		ID    int    `json:"id"`
		Token string `json:"token"`
	}{user.ID, tokenFor(user.Email)})
}

func (s *server) login(w http.ResponseWriter, r *http.Request) {
	creds, ok := s.readCredentials(w, r)
	if !ok {
		return
	}
	user, found := findUserByEmail(s.users, creds.Email)
	if !found {
		writeError(w, http.StatusBadRequest, errUserNotFound)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Token string `json:"token"`
	}{tokenFor(user.Email)})
}

// readCredentials decodes the request body and writes an error response if the email or
// password is missing.
func (s *server) readCredentials(w http.ResponseWriter, r *http.Request) (servicedef.Credentials, bool) {
	var creds servicedef.Credentials
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&creds)
	}
	switch {
	case creds.Email == "":
		writeError(w, http.StatusBadRequest, errMissingEmail)
		return creds, false
	case creds.Password == "":
		writeError(w, http.StatusBadRequest, errMissingPassword)
		return creds, false
	}
	return creds, true
}

func (s *server) timestamp() string {
	return s.now().UTC().Format(timestampFormat)
}

// tokenFor returns the session token for a user. The same email always gets the same token.
func tokenFor(email string) string {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(tokenNamespaceEmailURL+strings.ToLower(email)))
	return strings.ReplaceAll(id.String(), "-", "")
}

func intParam(r *http.Request, name string, defaultValue int) int {
	if n, err := strconv.Atoi(r.URL.Query().Get(name)); err == nil && n > 0 {
		return n
	}
	return defaultValue
}

// readJSONObject starts a builder with the properties of the request body, if it is a JSON
// object.
func readJSONObject(r *http.Request) ldvalue.ObjectBuilder {
	b := ldvalue.ObjectBuild()
	if r.Body == nil {
		return b
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return b
	}
	value := ldvalue.Parse(data)
	for _, k := range value.Keys() {
		b.Set(k, value.GetByKey(k))
	}
	return b
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
