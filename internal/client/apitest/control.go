package apitest

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/posadmin/internal/client/models"
)

// AddUser registers an account that can log in with password. A missing id
// is assigned.
func (s *Server) AddUser(u models.User, password string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID.IsZero() {
		u.ID = models.ID(strconv.Itoa(s.nextUserID))
		s.nextUserID++
	}
	u.Token = ""
	s.accounts[strings.ToLower(u.Email)] = &account{user: u, password: password}
	return u
}

// IssueToken signs a token for u that is valid for validity.
func (s *Server) IssueToken(u models.User, validity time.Duration) (string, error) {
	s.mu.Lock()
	secret := s.secret
	s.mu.Unlock()
	return GenerateToken(u.ID.String(), u.Role, secret, validity)
}

// AcceptToken makes token a valid bearer credential as is.
func (s *Server) AcceptToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staticTokens[token] = true
}

// RevokeTokens invalidates every token issued so far.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secret = append([]byte("rotated-"), s.secret...)
	s.staticTokens = make(map[string]bool)
}

// SetTokenTTL changes the validity of tokens issued from now on.
func (s *Server) SetTokenTTL(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenTTL = d
}

func (s *Server) SetLoginShape(shape LoginShape) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loginShape = shape
}

func (s *Server) SetRegisterShape(shape RegisterShape) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registerShape = shape
}

// SetRegisterRole sets the role given to newly registered users.
func (s *Server) SetRegisterRole(role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registerRole = role
}

// SetNextID sets the id the next created record of k receives.
func (s *Server) SetNextID(k models.Kind, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[k.Path].nextID = id
}

// Seed stores records of kind k in order and returns their ids. Records
// without an id get the next free one.
func (s *Server) Seed(k models.Kind, records ...any) []models.ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	col := s.collections[k.Path]
	ids := make([]models.ID, 0, len(records))
	for _, r := range records {
		raw, err := json.Marshal(r)
		if err != nil {
			panic(err)
		}
		var item map[string]any
		if err := json.Unmarshal(raw, &item); err != nil {
			panic(err)
		}

		if v, ok := item[k.IDField]; !ok || v == "" {
			item[k.IDField] = col.nextID
			col.nextID++
		} else if n, ok := v.(float64); ok && int(n) >= col.nextID {
			col.nextID = int(n) + 1
		}

		col.items = append(col.items, item)
		ids = append(ids, models.ID(jsonString(item[k.IDField])))
	}
	return ids
}

// Records returns a copy of the stored records of kind k.
func (s *Server) Records(k models.Kind) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.collections[k.Path].items
	out := make([]map[string]any, len(items))
	for i, item := range items {
		cp := make(map[string]any, len(item))
		for key, v := range item {
			cp[key] = v
		}
		out[i] = cp
	}
	return out
}

// Fail answers the next method+path request (path without BasePath) with
// status and body instead of handling it. A string body is sent as plain
// text, anything else as JSON.
func (s *Server) Fail(method, path string, status int, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, body: body}
}

// Requests returns everything received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent request, or the zero Request.
func (s *Server) LastRequest() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}
	}
	return s.requests[len(s.requests)-1]
}

// ResetRequests forgets captured requests.
func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

func jsonString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}
