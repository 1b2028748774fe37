package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Srinu-likitha/store-management-mvp/internal/store/entity"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/repository"
)

// ContextUserID is the gin context key holding the authenticated user ID.
const ContextUserID = "user_id"

// ContextUser is the gin context key holding the loaded user row.
const ContextUser = "user"

// Logger logs one line per request with zap.
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", latency),
			zap.String("request_id", c.GetString("request_id")),
		}

		if userID := c.GetString(ContextUserID); userID != "" {
			fields = append(fields, zap.String("user_id", userID))
		}

		if status >= 500 {
			logger.Error("Server error", fields...)
		} else if status >= 400 {
			logger.Warn("Client error", fields...)
		} else {
			logger.Info("Request", fields...)
		}
	}
}

// CORS allows the SPA frontend to call the API from another origin.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestID assigns or propagates an X-Request-ID per request.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.Request.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// Claims is the access-token payload.
type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func abortJSON(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
	c.Abort()
}

// JWTAuth verifies the bearer token and stores the user ID on the context.
// Roles are NOT taken from the token; VerifyUser loads them from the users
// table so a role change applies on the next request without a new token.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			abortJSON(c, http.StatusUnauthorized, "Auth Token Not Provided")
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(*Claims)
		if !ok || !token.Valid {
			abortJSON(c, http.StatusUnauthorized, "Invalid token claims")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// VerifyUser loads the authenticated user's row and checks its stored role
// against the required one. RoleAny passes any user that still exists; a
// valid token whose user was deleted is rejected with 401.
func VerifyUser(users *repository.UserRepository, required entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(ContextUserID)
		if userID == "" {
			abortJSON(c, http.StatusUnauthorized, "Auth Token Not Provided")
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "User not found")
			return
		}
		c.Set(ContextUser, user)

		if required == entity.RoleAny {
			c.Next()
			return
		}
		if user.Role != required {
			abortJSON(c, http.StatusForbidden, "User Verification Failed")
			return
		}
		c.Next()
	}
}

// RequireAction is VerifyUser keyed by the permission table instead of a
// literal role.
func RequireAction(users *repository.UserRepository, action entity.Action) gin.HandlerFunc {
	return VerifyUser(users, entity.RoleFor(action))
}
