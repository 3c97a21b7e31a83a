package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/safarhub/backoffice/internal/api"
	"github.com/safarhub/backoffice/internal/config"
	"github.com/safarhub/backoffice/internal/models"
	"github.com/safarhub/backoffice/internal/platform"
	"github.com/safarhub/backoffice/internal/repository"
	"github.com/safarhub/backoffice/internal/service"
	"github.com/safarhub/backoffice/internal/utils"
)

// UpstreamStub is a fake booking platform. Tests install a handler per
// scenario and can inspect which calls the screens issued.
type UpstreamStub struct {
	Server *httptest.Server

	mu       sync.Mutex
	handler  http.HandlerFunc
	requests []string
}

// NewUpstreamStub starts a stub platform that answers 404 until a
// handler is installed
func NewUpstreamStub() *UpstreamStub {
	u := &UpstreamStub{}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		u.requests = append(u.requests, r.Method+" "+r.URL.Path)
		handler := u.handler
		u.mu.Unlock()

		if handler == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler(w, r)
	}))
	return u
}

// SetHandler installs the scenario handler
func (u *UpstreamStub) SetHandler(h http.HandlerFunc) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.handler = h
}

// Requests returns every call seen so far as "METHOD /path"
func (u *UpstreamStub) Requests() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]string, len(u.requests))
	copy(out, u.requests)
	return out
}

// RequestCount returns the number of upstream calls seen so far
func (u *UpstreamStub) RequestCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.requests)
}

// MemoryRepository is an in-memory Repository for tests
type MemoryRepository struct {
	mu     sync.Mutex
	users  map[string]*models.AdminUser
	events []models.AuditEvent
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: map[string]*models.AdminUser{}}
}

func (r *MemoryRepository) CreateAdminUser(_ context.Context, user *models.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	copied := *user
	r.users[user.Email] = &copied
	return nil
}

func (r *MemoryRepository) GetAdminUserByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *MemoryRepository) GetAdminUserByID(_ context.Context, id string) (*models.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) InsertAuditEvent(_ context.Context, event *models.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	r.events = append(r.events, *event)
	return nil
}

func (r *MemoryRepository) ListAuditEvents(_ context.Context, limit int) ([]models.AuditEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.AuditEvent, 0, len(r.events))
	for i := len(r.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.events[i])
	}
	return out, nil
}

var _ repository.Repository = (*MemoryRepository)(nil)

// TestContext holds all dependencies for tests
type TestContext struct {
	Router      *gin.Engine
	Upstream    *UpstreamStub
	Repository  *MemoryRepository
	Screens     *service.Screens
	JWTSecret   []byte
	TestUserJWT string
}

// SetupTestContext creates a new test context with a fake upstream
// platform and an in-memory local store
func SetupTestContext(t *testing.T) *TestContext {
	jwtSecret := "test-secret-key"

	upstream := NewUpstreamStub()
	client := platform.NewClient(upstream.Server.URL, "")
	logger := utils.NewLogger()
	repo := NewMemoryRepository()

	screens := service.NewScreens(client, logger)
	ledger := service.NewLedgerService(client, logger)
	exports := service.NewExportService(client)
	lookups := service.NewLookupService(client, nil, logger)
	auth := service.NewAuthService(repo, jwtSecret)
	audit := service.NewAuditService(repo, logger)
	mailer := service.NewMailer(config.SMTPConfig{})

	err := auth.EnsureOperator(context.Background(), "testuser@example.com", "Test User", "testpassword")
	assert.NoError(t, err, "Failed to create test user")

	handler := api.NewHandler(screens, ledger, exports, lookups, auth, audit, mailer, logger)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(jwtSecret))
		c.Next()
	})

	handler.SetupRoutes(router)

	user, err := repo.GetAdminUserByEmail(context.Background(), "testuser@example.com")
	assert.NoError(t, err)
	assert.NotNil(t, user)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	})
	tokenString, err := token.SignedString([]byte(jwtSecret))
	assert.NoError(t, err, "Failed to generate JWT token")

	return &TestContext{
		Router:      router,
		Upstream:    upstream,
		Repository:  repo,
		Screens:     screens,
		JWTSecret:   []byte(jwtSecret),
		TestUserJWT: tokenString,
	}
}

// CleanupTestContext cleans up test resources
func CleanupTestContext(t *TestContext) {
	if t.Upstream != nil {
		t.Upstream.Server.Close()
	}
}

// PerformRequest executes an HTTP request against the router
func PerformRequest(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer

	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// AuthHeaders returns headers with Authorization token
func AuthHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	}
}
