package middleware

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quickcare/quickcare-api/config"
	"github.com/quickcare/quickcare-api/model"
	"github.com/quickcare/quickcare-api/util"
	"gorm.io/gorm"
)

// Context keys set by the middleware chain.
const (
	DBKey     = "db"
	UserIDKey = "user_id"
	RoleIDKey = "role_id"
)

func setCorsHeaders(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE, PATCH")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Authorization, session-token")
	c.Writer.Header().Set("Access-Control-Max-Age", "86400")
	c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
	c.Writer.Header().Set("Content-Type", "application/json")
}

// CORSMiddleware configures CORS headers for incoming requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		setCorsHeaders(c)

		// For preflight requests, respond with 204 and abort further processing.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// DatabaseMiddleware injects the shared gorm DB handle into the request context.
func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(DBKey, db)
		c.Next()
	}
}

// GetDB returns the request-scoped DB handle, or nil when it was not injected.
func GetDB(c *gin.Context) *gorm.DB {
	val, exists := c.Get(DBKey)
	if !exists {
		return nil
	}
	db, ok := val.(*gorm.DB)
	if !ok {
		return nil
	}
	return db
}

// GetUserID returns the authenticated user's id from the context.
func GetUserID(c *gin.Context) (uint, bool) {
	val, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := val.(uint)
	return id, ok
}

// GetRoleID returns the authenticated user's role id from the context.
func GetRoleID(c *gin.Context) (uint32, bool) {
	val, exists := c.Get(RoleIDKey)
	if !exists {
		return 0, false
	}
	id, ok := val.(uint32)
	return id, ok
}

// tokenValidator checks the static API token on the Authorization header.
// OPTIONS requests bypass validation so CORS preflights succeed.
func tokenValidator(c *gin.Context, expected string) bool {
	if c.Request.Method == "OPTIONS" {
		return true
	}
	if c.GetHeader("Authorization") != expected {
		util.CallUserNotAuthorized(c, util.APIErrorParams{
			Msg: "Invalid API token",
			Err: fmt.Errorf("authorization header mismatch"),
		})
		c.Abort()
		return false
	}
	return true
}

// APITokenMiddleware guards endpoints with the static APITOKEN env value.
func APITokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := "Bearer " + os.Getenv("APITOKEN")
		if !tokenValidator(c, expected) {
			return
		}
		c.Next()
	}
}

// lookupSessionInRedis resolves a session token from the Redis fast path.
// The cached value is "userID:roleID".
func lookupSessionInRedis(token string) (uint, uint32, bool) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return 0, 0, false
	}
	val, err := rdb.Get(context.Background(), fmt.Sprintf("session:%s", token)).Result()
	if err != nil {
		return 0, 0, false
	}
	parts := strings.SplitN(val, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	userID, err1 := strconv.ParseUint(parts[0], 10, 32)
	roleID, err2 := strconv.ParseUint(parts[1], 10, 32)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return uint(userID), uint32(roleID), true
}

// lookupSessionInDB resolves a session token against the sessions table,
// joining users for the role id, enforcing expiry.
func lookupSessionInDB(db *gorm.DB, token string) (uint, uint32, error) {
	var row struct {
		UserID uint
		RoleID uint32
	}
	err := db.Table("sessions").
		Select("sessions.user_id, users.role_id").
		Joins("JOIN users ON users.id = sessions.user_id").
		Where("sessions.session_token = ? AND sessions.expires_at > ? AND sessions.deleted_at IS NULL", token, time.Now()).
		First(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.UserID, row.RoleID, nil
}

// ValidateLoginToken authenticates requests via the session-token header.
// Redis is consulted first; the sessions table is authoritative when Redis is
// unavailable or misses. On success the user and role ids are stored in the
// request context.
func ValidateLoginToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("session-token")
		if token == "" {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Session token not provided",
				Err: fmt.Errorf("session token not provided"),
			})
			c.Abort()
			return
		}

		if userID, roleID, ok := lookupSessionInRedis(token); ok {
			c.Set(UserIDKey, userID)
			c.Set(RoleIDKey, roleID)
			c.Next()
			return
		}

		db := GetDB(c)
		if db == nil {
			util.CallServerError(c, util.APIErrorParams{
				Msg: "Database connection not available",
				Err: fmt.Errorf("db is nil"),
			})
			c.Abort()
			return
		}

		userID, roleID, err := lookupSessionInDB(db, token)
		if err != nil {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Session not found or has expired",
				Err: fmt.Errorf("invalid session token"),
			})
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(RoleIDKey, roleID)
		c.Next()
	}
}

// RequireRole gates an endpoint to callers whose role matches the given name.
// Must run after ValidateLoginToken.
func RequireRole(roleName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleID, ok := GetRoleID(c)
		if !ok {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "User not authenticated",
				Err: fmt.Errorf("role id not found in context"),
			})
			c.Abort()
			return
		}

		db := GetDB(c)
		if db == nil {
			util.CallServerError(c, util.APIErrorParams{
				Msg: "Database connection not available",
				Err: fmt.Errorf("db is nil"),
			})
			c.Abort()
			return
		}

		var role model.Role
		if err := db.Where("id = ?", roleID).First(&role).Error; err != nil || role.Name != roleName {
			util.CallUserForbidden(c, util.APIErrorParams{
				Msg: fmt.Sprintf("%s role required", roleName),
				Err: fmt.Errorf("insufficient role"),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
