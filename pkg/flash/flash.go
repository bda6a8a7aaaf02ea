// Package flash carries one-shot user messages across redirects in a
// signed cookie. Messages added during a request are also visible to a
// template rendered by the same request.
package flash

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"movielist-backend/pkg/logger"
)

type Category string

const (
	CategorySuccess Category = "success"
	CategoryInfo    Category = "info"
	CategoryError   Category = "error"
)

const (
	DefaultCookieName = "flash"
	pendingKey        = "flash.pending"
	defaultTTL        = 5 * time.Minute
)

// Message is a single flash entry.
type Message struct {
	Category Category `json:"category"`
	Text     string   `json:"text"`
}

// Claims is the signed cookie payload.
type Claims struct {
	Messages []Message `json:"messages"`
	jwt.RegisteredClaims
}

// Manager signs and verifies flash cookies with the application secret key.
type Manager struct {
	secret     []byte
	cookieName string
	secure     bool
	ttl        time.Duration
}

// NewManager creates a flash manager. secure marks the cookie HTTPS-only.
func NewManager(secret string, secure bool) *Manager {
	return &Manager{
		secret:     []byte(secret),
		cookieName: DefaultCookieName,
		secure:     secure,
		ttl:        defaultTTL,
	}
}

// Encode signs messages into a token.
func (m *Manager) Encode(messages []Message) (string, error) {
	now := time.Now()
	claims := Claims{
		Messages: messages,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Decode verifies a token and returns its messages.
func (m *Manager) Decode(tokenString string) ([]Message, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid flash token")
	}

	return claims.Messages, nil
}

// Add queues a message for the current request and for the next one.
func (m *Manager) Add(c *gin.Context, category Category, text string) {
	messages := append(m.pending(c), Message{Category: category, Text: text})
	c.Set(pendingKey, messages)

	token, err := m.Encode(messages)
	if err != nil {
		logger.Error("failed to sign flash cookie", err)
		return
	}
	m.writeCookie(c, token, int(m.ttl.Seconds()))
}

// Pop returns every queued message and clears the cookie.
func (m *Manager) Pop(c *gin.Context) []Message {
	messages := m.pending(c)
	c.Set(pendingKey, []Message{})

	if _, err := c.Cookie(m.cookieName); err == nil || len(messages) > 0 {
		m.writeCookie(c, "", -1)
	}
	return messages
}

// pending loads queued messages, reading the cookie once per request.
func (m *Manager) pending(c *gin.Context) []Message {
	if v, ok := c.Get(pendingKey); ok {
		if messages, ok := v.([]Message); ok {
			return messages
		}
	}

	var messages []Message
	if raw, err := c.Cookie(m.cookieName); err == nil && raw != "" {
		decoded, err := m.Decode(raw)
		if err != nil {
			logger.Warn("discarding invalid flash cookie", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			messages = decoded
		}
	}
	c.Set(pendingKey, messages)
	return messages
}

func (m *Manager) writeCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, value, maxAge, "/", "", m.secure, true)
}
