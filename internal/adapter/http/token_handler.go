package http

import (
	"net/http"
	"time"

	"github.com/FernandoNarvaez1904/ecommerce-expo/configs"
	"github.com/FernandoNarvaez1904/ecommerce-expo/internal/security"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type TokenHandler struct {
	cfg configs.Config
}

func NewTokenHandler(cfg configs.Config) *TokenHandler {
	return &TokenHandler{cfg: cfg}
}

// POST /v1/token (form)
// Accepts: user_id, user_secret. Issues a short-lived HS256 JWT carrying
// the subject and the isAdmin capability flag.
func (h *TokenHandler) IssueToken(c *gin.Context) {
	userID := c.PostForm("user_id")
	userSecret := c.PostForm("user_secret")
	if userID == "" || userSecret == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	u, ok := security.Users[userID]
	if !ok || u.Disabled || userSecret != u.Secret {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":     h.cfg.Security.Issuer,
		"aud":     h.cfg.Security.Audience,
		"iat":     now.Unix(),
		"nbf":     now.Unix(),
		"exp":     now.Add(h.cfg.Security.TTL).Unix(),
		"sub":     u.ID,
		"isAdmin": u.IsAdmin,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.Security.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": signed,
		"token_type":   "Bearer",
		"expires_in":   int64(h.cfg.Security.TTL.Seconds()),
	})
}
