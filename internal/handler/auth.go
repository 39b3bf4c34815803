package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/mindcare/internal/db"
)

const (
	contextUserIDKey = "__user_id"
	contextRoleKey   = "__user_role"

	tokenTTL = 24 * time.Hour
)

// Claims 是签入访问令牌的身份信息
type Claims struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`

	jwt.RegisteredClaims
}

// generateToken 为用户签发 HS256 访问令牌，有效期 24 小时
func (a *API) generateToken(user *db.User) (string, error) {
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtSecret)
}

func (a *API) parseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return a.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// AuthRequired 校验 Bearer 令牌并把用户身份写入请求上下文。
// 缺少令牌回 401，令牌无效或过期回 403。
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || token == "" || token == header {
			respondError(c, http.StatusUnauthorized, "缺少访问令牌")
			c.Abort()
			return
		}

		claims, err := a.parseToken(token)
		if err != nil {
			respondError(c, http.StatusForbidden, "访问令牌无效或已过期")
			c.Abort()
			return
		}

		c.Set(contextUserIDKey, claims.UserID)
		c.Set(contextRoleKey, claims.Role)
		c.Next()
	}
}

// currentUserID 读取中间件写入的用户 ID
func currentUserID(c *gin.Context) uint {
	if value, exists := c.Get(contextUserIDKey); exists {
		if id, ok := value.(uint); ok {
			return id
		}
	}
	return 0
}

func currentRole(c *gin.Context) string {
	if value, exists := c.Get(contextRoleKey); exists {
		if role, ok := value.(string); ok {
			return role
		}
	}
	return ""
}
