package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Srinu-likitha/store-management-mvp/internal/config"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/entity"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/handler"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/numbering"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/repository"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/service"
)

const JWTSecret = "store-management-test-secret"

// TestEnv holds an in-memory database and a fully wired router.
type TestEnv struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Repos    *repository.Repositories
	Services *service.Services
	T        *testing.T
}

// SetupTestDB opens an isolated in-memory database with the full schema
// migrated and document counters seeded at zero.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.MaterialInvoice{},
		&entity.InvoiceMaterialItem{},
		&entity.DcEntry{},
		&entity.DocumentCounter{},
	); err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	counters := repository.NewCounterRepository(db)
	for _, kind := range numbering.Kinds() {
		if err := counters.Seed(context.Background(), kind, 0); err != nil {
			t.Fatalf("Failed to seed counter %s: %v", kind, err)
		}
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	})

	return db
}

// TestConfig returns a config suitable for tests: no redis, no MinIO.
func TestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:             JWTSecret,
			AccessTokenExpire:  time.Hour,
			RefreshTokenExpire: 24 * time.Hour,
			Issuer:             "store-management",
		},
	}
}

// SetupEnv wires repositories, services, handlers and routes against an
// in-memory database.
func SetupEnv(t *testing.T) *TestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := SetupTestDB(t)
	cfg := TestConfig()
	repos := repository.NewRepositories(db)
	svcs := service.NewServices(db, repos, nil, cfg, zap.NewNop())
	handlers := handler.NewHandlers(svcs, zap.NewNop())

	r := gin.New()
	r.Use(gin.Recovery())
	handler.RegisterRoutes(r, handlers, repos, cfg)

	return &TestEnv{DB: db, Router: r, Repos: repos, Services: svcs, T: t}
}

// SeedUser creates a user with the given role. The password is "secret123".
func (e *TestEnv) SeedUser(email string, role entity.Role) *entity.User {
	e.T.Helper()
	hash, err := service.HashPassword("secret123")
	if err != nil {
		e.T.Fatalf("Failed to hash password: %v", err)
	}
	user := &entity.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := e.DB.Create(user).Error; err != nil {
		e.T.Fatalf("Failed to seed user %s: %v", email, err)
	}
	return user
}

// Token signs an access token for the given user with the test secret.
func (e *TestEnv) Token(user *entity.User) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"uid":   user.ID,
		"email": user.Email,
		"iss":   "store-management",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
		"jti":   fmt.Sprintf("test-jti-%d", now.UnixNano()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte(JWTSecret))
	return signed
}

// DoRequest executes an HTTP request against the test router.
func (e *TestEnv) DoRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

// ParseResponse decodes the envelope into a generic map.
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}
