package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aerocode/internal/config"
	"aerocode/internal/database"
	"aerocode/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestEnv holds test environment resources
type TestEnv struct {
	DB     *gorm.DB
	Router *gin.Engine
	T      *testing.T
}

// SetupTestDB opens a private in-memory SQLite database with foreign keys
// enforced, migrates it and installs it as database.DB for the test.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get test database handle: %v", err)
	}
	// a single connection keeps the in-memory database alive and serialises writers
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	previous := database.DB
	database.DB = db

	t.Cleanup(func() {
		database.DB = previous
		sqlDB.Close()
	})
	return db
}

// TestConfig is a config good enough to build the router.
func TestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            "0",
			ShutdownTimeout: time.Second,
		},
		Session: config.SessionConfig{Secret: "test-secret", Name: "aerocode_test"},
		Admin:   config.AdminConfig{ID: "ADM-001", Username: "admin", Password: "Admin123!"},
	}
}

// Setup creates the test database and the full API router on top of it.
func Setup(t *testing.T) *TestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := SetupTestDB(t)
	router := server.NewRouter(TestConfig(), zap.NewNop())
	return &TestEnv{DB: db, Router: router, T: t}
}

// DoRequest executes an HTTP request against the test router
func DoRequest(r http.Handler, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse decodes a JSON object body.
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// ParseList decodes a JSON array body.
func ParseList(w *httptest.ResponseRecorder) []map[string]interface{} {
	var result []map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// ErrorCode extracts error.code from an error envelope.
func ErrorCode(w *httptest.ResponseRecorder) string {
	body := ParseResponse(w)
	e, _ := body["error"].(map[string]interface{})
	code, _ := e["code"].(string)
	return code
}
