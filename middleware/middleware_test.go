package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/quickcare/quickcare-api/config"
	"github.com/quickcare/quickcare-api/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newInMemoryDB creates an in-memory sqlite DB and runs required migrations for tests.
func newInMemoryDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Session{}, &model.Role{}); err != nil {
		t.Fatalf("failed to auto-migrate: %v", err)
	}
	return db
}

type testSessionParams struct {
	roleID    uint32
	token     string
	expiresAt time.Time
}

// createTestUserAndSession creates a user and associated session in the provided DB.
func createTestUserAndSession(t *testing.T, db *gorm.DB, params testSessionParams) (model.User, model.Session) {
	user := model.User{
		Username: "test.user",
		Password: "hashedpassword",
		RoleID:   params.roleID,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	if params.expiresAt.IsZero() {
		params.expiresAt = time.Now().Add(time.Hour)
	}
	session := model.Session{
		SessionToken: params.token,
		UserID:       user.ID,
		ExpiresAt:    params.expiresAt,
		ClientIP:     "127.0.0.1",
		Browser:      "test-browser",
	}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("failed to create test session: %v", err)
	}
	return user, session
}

func runValidateLoginTokenRequest(db *gorm.DB, token string, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	if db != nil {
		r.Use(DatabaseMiddleware(db))
	}
	r.GET("/test", ValidateLoginToken(), handler)
	req := httptest.NewRequest("GET", "/test", nil)
	if token != "" {
		req.Header.Set("session-token", token)
	}
	r.ServeHTTP(w, req)
	return w
}

func setGinTestMode() {
	gin.SetMode(gin.TestMode)
}

func setupRedisMock(t *testing.T) redismock.ClientMock {
	rdb, mock := redismock.NewClientMock()
	config.SetRedisClientForTest(rdb)
	t.Cleanup(func() {
		config.ResetRedisClientForTest()
	})
	return mock
}

func TestSetCorsHeadersDefaults(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest("GET", "/", nil)
	c.Request = req

	setCorsHeaders(c)

	if got := c.Writer.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Fatalf("expected Access-Control-Allow-Origin header to be set")
	}
	if got := c.Writer.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Fatalf("expected Access-Control-Allow-Methods header to be set")
	}
}

func TestTokenValidator(t *testing.T) {
	setGinTestMode()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	// OPTIONS should bypass token validation
	c.Request = httptest.NewRequest("OPTIONS", "/", nil)
	if !tokenValidator(c, "anything") {
		t.Fatalf("expected tokenValidator to allow OPTIONS method")
	}

	expected := "Bearer secret-token"
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.Header.Set("Authorization", expected)
	if !tokenValidator(c, expected) {
		t.Fatalf("expected tokenValidator to accept matching token")
	}

	// mismatch should abort and return false
	c2w := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(c2w)
	c2.Request = httptest.NewRequest("GET", "/", nil)
	c2.Request.Header.Set("Authorization", "Bearer bad")
	if tokenValidator(c2, expected) {
		t.Fatalf("expected tokenValidator to reject bad token")
	}
	if c2w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 on bad token, got %d", c2w.Code)
	}
}

func TestDatabaseMiddlewareAndGetDB(t *testing.T) {
	setGinTestMode()

	r := gin.New()
	db := &gorm.DB{}
	r.Use(DatabaseMiddleware(db))
	r.GET("/testdb", func(c *gin.Context) {
		got := GetDB(c)
		if got == nil || got != db {
			c.AbortWithStatus(500)
			return
		}
		c.Status(200)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/testdb", nil)
	r.ServeHTTP(w, req)
	if w.Code != 200 {
		t.Fatalf("expected 200 from handler with DB set, got %d", w.Code)
	}
}

func TestValidateLoginToken_MissingSessionToken(t *testing.T) {
	setGinTestMode()

	db := &gorm.DB{}
	w := runValidateLoginTokenRequest(db, "", func(c *gin.Context) {
		c.Status(200)
	})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when session token missing, got %d", w.Code)
	}
}

func TestValidateLoginToken_MissingDatabase(t *testing.T) {
	setGinTestMode()

	w := runValidateLoginTokenRequest(nil, "test-token", func(c *gin.Context) {
		c.Status(200)
	})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when database missing, got %d", w.Code)
	}
}

func TestValidateLoginToken_RedisFastPath(t *testing.T) {
	setGinTestMode()

	mock := setupRedisMock(t)
	mock.ExpectGet("session:fast-token").SetVal("42:2")

	w := runValidateLoginTokenRequest(&gorm.DB{}, "fast-token", func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok || userID != 42 {
			c.AbortWithStatus(500)
			return
		}
		roleID, ok := GetRoleID(c)
		if !ok || roleID != 2 {
			c.AbortWithStatus(500)
			return
		}
		c.Status(200)
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 via Redis fast path, got %d", w.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("redis expectations not met: %v", err)
	}
}

func TestValidateLoginToken_RedisMalformedFallsBackToDB(t *testing.T) {
	setGinTestMode()

	db := newInMemoryDB(t)
	user, session := createTestUserAndSession(t, db, testSessionParams{roleID: 3, token: "db-token"})

	mock := setupRedisMock(t)
	mock.ExpectGet("session:db-token").SetVal("not-a-pair")

	w := runValidateLoginTokenRequest(db, session.SessionToken, func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok || userID != user.ID {
			c.AbortWithStatus(500)
			return
		}
		roleID, ok := GetRoleID(c)
		if !ok || roleID != user.RoleID {
			c.AbortWithStatus(500)
			return
		}
		c.Status(200)
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 via DB fallback, got %d", w.Code)
	}
}

func TestValidateLoginToken_DBFallback(t *testing.T) {
	setGinTestMode()

	db := newInMemoryDB(t)
	user, session := createTestUserAndSession(t, db, testSessionParams{roleID: 1, token: "session-db-only"})

	w := runValidateLoginTokenRequest(db, session.SessionToken, func(c *gin.Context) {
		userID, _ := GetUserID(c)
		roleID, _ := GetRoleID(c)
		if userID != user.ID || roleID != user.RoleID {
			c.AbortWithStatus(500)
			return
		}
		c.Status(200)
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 via DB lookup, got %d", w.Code)
	}
}

func TestValidateLoginToken_ExpiredSession(t *testing.T) {
	setGinTestMode()

	db := newInMemoryDB(t)
	_, session := createTestUserAndSession(t, db, testSessionParams{
		roleID:    1,
		token:     "expired-token",
		expiresAt: time.Now().Add(-time.Hour),
	})

	w := runValidateLoginTokenRequest(db, session.SessionToken, func(c *gin.Context) {
		c.Status(200)
	})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired session, got %d", w.Code)
	}
}

func TestValidateLoginToken_UnknownToken(t *testing.T) {
	setGinTestMode()

	db := newInMemoryDB(t)

	w := runValidateLoginTokenRequest(db, "never-issued", func(c *gin.Context) {
		c.Status(200)
	})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown token, got %d", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	setGinTestMode()

	db := newInMemoryDB(t)
	if err := db.Create(&model.Role{ID: 3, Name: model.RoleDoctor}).Error; err != nil {
		t.Fatalf("failed to seed role: %v", err)
	}

	run := func(roleID interface{}) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		_, r := gin.CreateTestContext(w)
		r.Use(DatabaseMiddleware(db))
		r.GET("/test", func(c *gin.Context) {
			if roleID != nil {
				c.Set(RoleIDKey, roleID)
			}
			c.Next()
		}, RequireRole(model.RoleDoctor), func(c *gin.Context) {
			c.Status(200)
		})
		req := httptest.NewRequest("GET", "/test", nil)
		r.ServeHTTP(w, req)
		return w
	}

	if w := run(uint32(3)); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for doctor role, got %d", w.Code)
	}
	if w := run(uint32(1)); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-doctor role, got %d", w.Code)
	}
	if w := run(nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when role missing, got %d", w.Code)
	}
}

func TestRateLimiter_FailsOpenWithoutRedis(t *testing.T) {
	setGinTestMode()

	config.ResetRedisClientForTest()

	r := gin.New()
	r.GET("/limited", RateLimiter(RateLimitConfig{Limit: 1, Window: time.Minute, KeyPrefix: "test"}), func(c *gin.Context) {
		c.Status(200)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/limited", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200 without Redis, got %d", i, w.Code)
		}
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	setGinTestMode()

	mock := setupRedisMock(t)
	key := "ratelimit:test:192.0.2.1"
	for i := 1; i <= 3; i++ {
		mock.ExpectTxPipeline()
		mock.ExpectIncr(key).SetVal(int64(i))
		mock.ExpectExpire(key, time.Minute).SetVal(true)
		mock.ExpectTxPipelineExec()
	}

	r := gin.New()
	r.GET("/limited", RateLimiter(RateLimitConfig{Limit: 2, Window: time.Minute, KeyPrefix: "test"}), func(c *gin.Context) {
		c.Status(200)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/limited", nil)
		req.Header.Set("X-Forwarded-For", "192.0.2.1")
		req.RemoteAddr = "192.0.2.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("expected first two requests to pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected third request to be limited, got %v", codes)
	}
}

func TestGetUserIDWrongType(t *testing.T) {
	setGinTestMode()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(UserIDKey, fmt.Sprintf("%d", 42))

	if _, ok := GetUserID(c); ok {
		t.Fatalf("expected GetUserID to reject non-uint value")
	}
}
