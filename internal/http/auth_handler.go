package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"todo-app/internal/metrics"
	"todo-app/internal/service"
)

// CookieOptions configura la cookie de sesion y el destino post-login.
type CookieOptions struct {
	Name          string
	Secure        bool
	LoginRedirect string
}

// AuthHandler mantiene dependencias para signup, login y dashboard.
type AuthHandler struct {
	logger   *zap.Logger
	authServ *service.AuthService
	signer   *service.CookieSigner
	metrics  *metrics.Metrics
	cookie   CookieOptions
}

// NewAuthHandler crea una instancia de AuthHandler con dependencias necesarias.
func NewAuthHandler(
	logger *zap.Logger,
	authServ *service.AuthService,
	signer *service.CookieSigner,
	m *metrics.Metrics,
	cookie CookieOptions,
) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "session_id"
	}
	if cookie.LoginRedirect == "" {
		cookie.LoginRedirect = "/dashboard"
	}
	return &AuthHandler{
		logger:   logger,
		authServ: authServ,
		signer:   signer,
		metrics:  m,
		cookie:   cookie,
	}
}

// Signup maneja POST /signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	form, err := readSignupForm(c)
	if err != nil {
		h.logger.Warn("invalid signup request", zap.Error(err))
		h.metrics.RecordAuth("signup", metrics.OutcomeRejected)
		respondError(c, http.StatusBadRequest, "invalid request", "")
		return
	}

	user, err := h.authServ.Signup(c.Request.Context(), form)
	if err != nil {
		if service.IsClientError(err) {
			h.metrics.RecordAuth("signup", metrics.OutcomeRejected)
			respondError(c, http.StatusBadRequest, "signup failed", err.Error())
			return
		}
		h.logger.Error("signup failed", zap.Error(err))
		h.metrics.RecordAuth("signup", metrics.OutcomeError)
		respondInternal(c)
		return
	}

	h.metrics.RecordAuth("signup", metrics.OutcomeSuccess)
	respondOK(c, http.StatusCreated, "user created successfully", user)
}

// Login maneja POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		LoginID  string `json:"loginId" form:"loginId"`
		Password string `json:"password" form:"password"`
	}
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		h.metrics.RecordAuth("login", metrics.OutcomeRejected)
		respondError(c, http.StatusBadRequest, "invalid request", "")
		return
	}

	res, err := h.authServ.Login(c.Request.Context(), req.LoginID, req.Password)
	if err != nil {
		if service.IsClientError(err) {
			h.metrics.RecordAuth("login", metrics.OutcomeRejected)
			respondError(c, http.StatusBadRequest, "login failed", err.Error())
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		h.metrics.RecordAuth("login", metrics.OutcomeError)
		respondInternal(c)
		return
	}

	value, err := h.signer.Sign(res.Token, res.Session.ExpiresAt)
	if err != nil {
		h.logger.Error("sign session cookie failed", zap.Error(err))
		h.metrics.RecordAuth("login", metrics.OutcomeError)
		respondInternal(c)
		return
	}

	maxAge := int(time.Until(res.Session.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
	h.metrics.RecordAuth("login", metrics.OutcomeSuccess)
	c.Redirect(http.StatusFound, h.cookie.LoginRedirect)
}

// Dashboard maneja GET /dashboard; requiere SessionAuthMiddleware.
func (h *AuthHandler) Dashboard(c *gin.Context) {
	user, ok := GetSessionUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "please login again", "unauthorized")
		return
	}
	respondOK(c, http.StatusOK, "dashboard", user)
}

// readSignupForm bindea a un map para conservar los tipos del JSON; el
// validador es el que rechaza campos que no son texto.
func readSignupForm(c *gin.Context) (service.SignupForm, error) {
	form := service.SignupForm{}
	if c.ContentType() == binding.MIMEJSON {
		if err := c.ShouldBindJSON(&form); err != nil {
			return nil, err
		}
		return form, nil
	}
	for _, field := range []string{"name", "email", "username", "password"} {
		if v, ok := c.GetPostForm(field); ok {
			form[field] = v
		}
	}
	return form, nil
}
