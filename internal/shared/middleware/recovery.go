package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"movielist-backend/internal/shared/response"
)

// Recovery turns a panic into a 500. JSON API callers get the usual error
// envelope, browsers get a plain text page.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString("request_id")).
					Str("path", c.Request.URL.Path).
					Interface("error", err).
					Msg("Panic recovered")

				if strings.HasPrefix(c.Request.URL.Path, "/api/") {
					response.InternalServerError(c, "Internal server error")
				} else {
					c.String(http.StatusInternalServerError, "Internal Server Error")
				}
				c.Abort()
			}
		}()

		c.Next()
	}
}
