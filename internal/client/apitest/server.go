package apitest

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/posadmin/internal/client/models"
	"github.com/gin-gonic/gin"
)

// BasePath prefixes every route.
const BasePath = "/api"

// LoginShape selects how a successful login is answered.
type LoginShape int

const (
	// LoginNested answers {"user": {...}, "token": "..."}.
	LoginNested LoginShape = iota
	// LoginFlat answers the user object with token and role inline.
	LoginFlat
)

// RegisterShape selects how a successful registration is answered.
type RegisterShape int

const (
	// RegisterMessage answers {"message": "User created successfully", "userId": n}.
	RegisterMessage RegisterShape = iota
	// RegisterUser answers {"user": {...}, "token": "..."}.
	RegisterUser
)

// Request is a captured inbound request. Path excludes BasePath.
type Request struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
	Body          []byte
}

type account struct {
	user     models.User
	password string
}

type failure struct {
	status int
	body   any
}

type collection struct {
	kind   models.Kind
	items  []map[string]any
	nextID int
}

// Server is the fake API. Its methods are safe for concurrent use.
type Server struct {
	*httptest.Server

	mu            sync.Mutex
	secret        []byte
	tokenTTL      time.Duration
	staticTokens  map[string]bool
	accounts      map[string]*account
	nextUserID    int
	collections   map[string]*collection
	requests      []Request
	failures      map[string]failure
	loginShape    LoginShape
	registerShape RegisterShape
	registerRole  string
}

// New starts a Server and closes it when tb finishes.
func New(tb testing.TB) *Server {
	tb.Helper()
	s := NewServer()
	tb.Cleanup(s.Close)
	return s
}

// NewServer starts a Server. The caller must Close it.
func NewServer() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		secret:       []byte("apitest-secret"),
		tokenTTL:     time.Hour,
		staticTokens: make(map[string]bool),
		accounts:     make(map[string]*account),
		nextUserID:   1,
		collections:  make(map[string]*collection),
		failures:     make(map[string]failure),
		registerRole: models.RoleAdmin,
	}
	for _, k := range models.Kinds {
		s.collections[k.Path] = &collection{kind: k, nextID: 1}
	}

	s.Server = httptest.NewServer(s.routes())
	return s
}

// BaseURL is the API origin plus BasePath.
func (s *Server) BaseURL() string {
	return s.URL + BasePath
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.capture, s.injectFailure)

	api := r.Group(BasePath)
	api.POST("/user/login", s.login)
	api.POST("/user/register", s.register)

	authed := api.Group("", s.requireBearer)
	for _, k := range models.Kinds {
		p := "/" + k.Path
		authed.GET(p, s.list(k))
		authed.POST(p, s.create(k))
		authed.PUT(p+"/:id", s.update(k))
		authed.DELETE(p+"/:id", s.remove(k))
	}
	return r
}

func (s *Server) capture(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:        c.Request.Method,
		Path:          strings.TrimPrefix(c.Request.URL.Path, BasePath),
		Authorization: c.GetHeader("Authorization"),
		RequestID:     c.GetHeader("X-Request-ID"),
		Body:          body,
	})
	s.mu.Unlock()

	c.Next()
}

func (s *Server) injectFailure(c *gin.Context) {
	key := c.Request.Method + " " + strings.TrimPrefix(c.Request.URL.Path, BasePath)

	s.mu.Lock()
	f, ok := s.failures[key]
	delete(s.failures, key)
	s.mu.Unlock()

	if !ok {
		c.Next()
		return
	}
	if raw, isRaw := f.body.(string); isRaw {
		c.Data(f.status, "text/plain", []byte(raw))
	} else {
		c.JSON(f.status, f.body)
	}
	c.Abort()
}

func (s *Server) requireBearer(c *gin.Context) {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization token missing"})
		return
	}

	s.mu.Lock()
	static := s.staticTokens[token]
	secret := s.secret
	s.mu.Unlock()

	if static {
		c.Next()
		return
	}
	if _, err := ParseToken(token, secret); err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
		return
	}
	c.Next()
}

func (s *Server) login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	s.mu.Lock()
	acc, ok := s.accounts[strings.ToLower(creds.Email)]
	shape := s.loginShape
	s.mu.Unlock()

	if !ok || acc.password != creds.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	token, err := s.IssueToken(acc.user, s.ttl())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	u := acc.user
	switch shape {
	case LoginFlat:
		u.Token = token
		c.JSON(http.StatusOK, u)
	default:
		c.JSON(http.StatusOK, gin.H{"user": u, "token": token})
	}
}

func (s *Server) register(c *gin.Context) {
	var p models.RegisterProfile
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if p.Email == "" || p.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	s.mu.Lock()
	if _, exists := s.accounts[strings.ToLower(p.Email)]; exists {
		s.mu.Unlock()
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
		return
	}
	u := models.User{
		ID:        models.ID(strconv.Itoa(s.nextUserID)),
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Mobile:    p.Mobile,
		Role:      s.registerRole,
	}
	s.nextUserID++
	s.accounts[strings.ToLower(p.Email)] = &account{user: u, password: p.Password}
	shape := s.registerShape
	s.mu.Unlock()

	if shape == RegisterMessage {
		id, _ := strconv.Atoi(u.ID.String())
		c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "userId": id})
		return
	}

	token, err := s.IssueToken(u, s.ttl())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": u, "token": token})
}

func (s *Server) list(k models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		col := s.collections[k.Path]
		items := make([]map[string]any, len(col.items))
		copy(items, col.items)
		s.mu.Unlock()

		c.JSON(http.StatusOK, gin.H{k.Envelope: items})
	}
}

func (s *Server) create(k models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item map[string]any
		if err := c.ShouldBindJSON(&item); err != nil || item == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		s.mu.Lock()
		col := s.collections[k.Path]
		delete(item, k.IDField)
		item[k.IDField] = col.nextID
		col.nextID++
		col.items = append(col.items, item)
		s.mu.Unlock()

		c.JSON(http.StatusCreated, item)
	}
}

func (s *Server) update(k models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch map[string]any
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		col := s.collections[k.Path]
		i := col.indexOf(c.Param("id"))
		if i < 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": notFound(k)})
			return
		}
		for key, v := range patch {
			if key != k.IDField {
				col.items[i][key] = v
			}
		}
		c.JSON(http.StatusOK, col.items[i])
	}
}

func (s *Server) remove(k models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()

		col := s.collections[k.Path]
		i := col.indexOf(c.Param("id"))
		if i < 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": notFound(k)})
			return
		}
		col.items = append(col.items[:i], col.items[i+1:]...)
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s deleted successfully", k.Name)})
	}
}

func (col *collection) indexOf(id string) int {
	for i, item := range col.items {
		if jsonString(item[col.kind.IDField]) == id {
			return i
		}
	}
	return -1
}

func notFound(k models.Kind) string {
	return fmt.Sprintf("%s not found", k.Name)
}

func (s *Server) ttl() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenTTL
}
