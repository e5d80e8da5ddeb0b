package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"todo-app/internal/domain"
	"todo-app/internal/metrics"
	"todo-app/internal/service"
)

const sessionUserKey = "session_user"

// SessionAuthMiddleware deja pasar solo requests con una sesion autenticada.
// Guarda el snapshot del usuario en el contexto.
func SessionAuthMiddleware(
	logger *zap.Logger,
	authServ *service.AuthService,
	signer *service.CookieSigner,
	cookieName string,
	m *metrics.Metrics,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authServ == nil || signer == nil {
			respondError(c, http.StatusInternalServerError, "session auth not configured", "")
			c.Abort()
			return
		}

		token, err := signer.Verify(sessionCookieValue(c, cookieName))
		if err == nil {
			var user domain.SessionUser
			user, err = authServ.Authorize(c.Request.Context(), token)
			if err == nil {
				m.RecordAuth("session", metrics.OutcomeSuccess)
				c.Set(sessionUserKey, user)
				c.Next()
				return
			}
		}

		if service.IsDenied(err) {
			m.RecordAuth("session", metrics.OutcomeRejected)
			respondError(c, http.StatusUnauthorized, "please login again", "unauthorized")
			c.Abort()
			return
		}
		logger.Error("session lookup failed", zap.Error(err))
		m.RecordAuth("session", metrics.OutcomeError)
		respondInternal(c)
		c.Abort()
	}
}

func sessionCookieValue(c *gin.Context, cookieName string) string {
	if value, err := c.Cookie(cookieName); err == nil && value != "" {
		return value
	}
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(header) > len("Bearer ") && strings.EqualFold(header[:len("Bearer ")], "bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return ""
}

// GetSessionUser obtiene el usuario de la sesion desde el contexto.
func GetSessionUser(c *gin.Context) (domain.SessionUser, bool) {
	val, ok := c.Get(sessionUserKey)
	if !ok {
		return domain.SessionUser{}, false
	}
	user, ok := val.(domain.SessionUser)
	return user, ok
}
