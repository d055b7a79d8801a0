package endpoint

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/quickcare/quickcare-api/config"
	"github.com/quickcare/quickcare-api/middleware"
	"github.com/quickcare/quickcare-api/model"
	"github.com/quickcare/quickcare-api/util"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// endpointTestModels defines the standard set of models migrated for endpoint tests.
var endpointTestModels = []interface{}{
	&model.User{},
	&model.Role{},
	&model.Session{},
	&model.Doctor{},
	&model.Appointment{},
	&model.Contact{},
	&model.EmergencyRequest{},
	&model.LabBooking{},
	&model.SecurityLog{},
}

// setupEndpointTestDB initializes a test database with all standard models migrated.
// Cleanup is automatically registered via t.Cleanup().
func setupEndpointTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	t.Setenv("APPENV", "test")
	t.Setenv("JWTSECRET", "test-secret-123")
	util.SetJWTSecret("test-secret-123")

	db, err := config.ConnectDatabase()
	if err != nil {
		t.Fatalf("failed to connect test DB: %v", err)
	}

	if err := db.AutoMigrate(endpointTestModels...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	for _, m := range endpointTestModels {
		db.Where("1 = 1").Delete(m)
	}

	t.Cleanup(func() {
		for _, m := range endpointTestModels {
			_ = db.Migrator().DropTable(m)
		}
	})

	return db
}

// setupEndpointTest returns a Gin engine and database connection configured for endpoint tests.
func setupEndpointTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupEndpointTestDB(t)
	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))
	return r, db
}

// asUser returns a middleware that injects an authenticated identity, standing
// in for ValidateLoginToken in handler tests.
func asUser(userID uint, roleID uint32) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Set(middleware.RoleIDKey, roleID)
		c.Next()
	}
}

func seedRolesOrFail(t *testing.T, db *gorm.DB) {
	t.Helper()
	if err := model.SeedRoles(db); err != nil {
		t.Fatalf("failed to seed roles: %v", err)
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username, password string, roleID uint32) model.User {
	t.Helper()

	salt, err := util.GenerateSalt()
	if err != nil {
		t.Fatalf("failed to generate salt: %v", err)
	}
	hash, err := util.HashPasswordArgon2(password, salt)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := model.User{
		Username:     username,
		Password:     hash,
		PasswordSalt: salt,
		RoleID:       roleID,
		FullName:     "Test User",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createTestDoctor(t *testing.T, db *gorm.DB, username, name, speciality string) model.Doctor {
	t.Helper()

	doctor := model.Doctor{
		Username:     username,
		Name:         name,
		Speciality:   speciality,
		Fees:         1000,
		Availability: "Mon,Wed,Fri",
		Rating:       4.5,
	}
	if err := db.Create(&doctor).Error; err != nil {
		t.Fatalf("failed to create doctor: %v", err)
	}
	return doctor
}

func performJSON(r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newRequestWithSession(method, path, token string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("session-token", token)
	}
	return req
}

func serveRequest(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// legacyUser creates an account carrying the pre-Argon2 HMAC password hash.
func legacyUser(t *testing.T, db *gorm.DB, username, password string) model.User {
	t.Helper()

	user := model.User{
		Username: username,
		Password: util.HashPasswordLegacy(password),
		RoleID:   2,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create legacy user: %v", err)
	}
	return user
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return resp
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, w.Code)
}

func assertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, response map[string]interface{}) {
	t.Helper()
	assert.Equal(t, http.StatusOK, w.Code)
	if response == nil {
		return
	}
	if success, ok := response["success"].(bool); ok {
		assert.True(t, success)
	}
}
