package proxy

import (
	"SteamProfile/apperrors"
	models "SteamProfile/models/postgres"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
)

const requestTimeout = 30 * time.Second

// ClientSession is the authentication state of one API client. Login fills it,
// Logout clears it. It is safe for concurrent use.
type ClientSession struct {
	mu        sync.RWMutex
	token     string
	sessionID string
	user      *models.User
}

func NewClientSession() *ClientSession {
	return &ClientSession{}
}

// Set stores the bearer token and the signed in user
func (s *ClientSession) Set(token, sessionID string, user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.sessionID = sessionID
	s.user = user
}

func (s *ClientSession) Clear() {
	s.Set("", "", nil)
}

func (s *ClientSession) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *ClientSession) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// User returns a copy of the signed in user, or nil
func (s *ClientSession) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

type sessionKey struct{}

// WithSession attaches a session to ctx. Proxies prefer it over their default
// session, which lets one process act for several users.
func WithSession(ctx context.Context, session *ClientSession) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFrom returns the session attached to ctx, if any
func SessionFrom(ctx context.Context) (*ClientSession, bool) {
	session, ok := ctx.Value(sessionKey{}).(*ClientSession)
	return session, ok && session != nil
}

// ServiceProxy is the HTTP plumbing shared by every service proxy
type ServiceProxy struct {
	baseURL string
	client  *http.Client
	session *ClientSession
}

// NewServiceProxy targets baseURL (e.g. "http://localhost:8080/") and falls
// back to session when a call carries none
func NewServiceProxy(baseURL string, session *ClientSession, client *http.Client) *ServiceProxy {
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}
	if session == nil {
		session = NewClientSession()
	}
	return &ServiceProxy{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
		session: session,
	}
}

// Session returns the session used for ctx
func (p *ServiceProxy) Session(ctx context.Context) *ClientSession {
	if session, ok := SessionFrom(ctx); ok {
		return session
	}
	return p.session
}

func (p *ServiceProxy) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return p.do(ctx, http.MethodGet, path, query, nil, out)
}

func (p *ServiceProxy) post(ctx context.Context, path string, query url.Values, body, out interface{}) error {
	return p.do(ctx, http.MethodPost, path, query, body, out)
}

func (p *ServiceProxy) put(ctx context.Context, path string, query url.Values, body, out interface{}) error {
	return p.do(ctx, http.MethodPut, path, query, body, out)
}

func (p *ServiceProxy) delete(ctx context.Context, path string, query url.Values, body, out interface{}) error {
	return p.do(ctx, http.MethodDelete, path, query, body, out)
}

func (p *ServiceProxy) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	target := p.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewInternal(err, "could not encode request body")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return apperrors.NewInternal(err, "could not build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := p.Session(ctx).Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return apperrors.NewTransient(err, "%s %s failed", method, path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewTransient(err, "could not read response from %s %s", method, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.NewInternal(err, "could not decode response from %s %s", method, path)
	}
	return nil
}

// errorFromResponse maps a failed response to the shared error type. The API
// writes {"error": "..."}; anything else keeps the raw body.
func errorFromResponse(status int, body []byte) error {
	message := gjson.GetBytes(body, "error").String()
	if message == "" {
		message = gjson.GetBytes(body, "message").String()
	}
	return apperrors.FromStatus(status, message, string(body))
}

func idPath(format string, ids ...interface{}) string {
	return fmt.Sprintf(format, ids...)
}

func userQuery(userID uint) url.Values {
	return url.Values{"userId": {fmt.Sprint(userID)}}
}
