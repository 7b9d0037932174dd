// internal/api/handlers/auth_handler.go
package handlers

import (
	"net/http"

	"tusep-web/internal/api/middleware"
	"tusep-web/internal/auth"
	"tusep-web/internal/models"
	"tusep-web/internal/notify"
	"tusep-web/internal/validation"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Registry *auth.Registry
	Cookie   middleware.CookieOptions
}

// LoginPage tells the front end which roles can register.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	roles := make([]gin.H, 0, len(models.Roles))
	for _, r := range models.Roles {
		roles = append(roles, gin.H{"value": r, "label": r.Label()})
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"roles": roles}})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validation.Struct(req, nil); err != nil {
		respondError(c, err, notify.Error(err, notify.FillAllFields))
		return
	}

	s := middleware.CurrentSession(c)
	user, err := s.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, notify.Error(err, notify.LoginFailed))
		return
	}
	h.Registry.Remember(s)
	respondSuccess(c, notify.Success(notify.LoginSucceeded), gin.H{"user": user, "redirect": "/"})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.Registration
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validation.Struct(req, nil); err != nil {
		respondError(c, err, notify.Error(err, notify.FillAllFields))
		return
	}

	s := middleware.CurrentSession(c)
	user, err := s.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, notify.Error(err, notify.RegisterFailed))
		return
	}
	h.Registry.Remember(s)
	respondSuccess(c, notify.Success(notify.RegisterSucceeded), gin.H{"user": user, "redirect": "/"})
}

// Logout drops the session locally. The browser also gets a fresh cookie
// so the old id cannot be replayed.
func (h *AuthHandler) Logout(c *gin.Context) {
	s := middleware.CurrentSession(c)
	if s != nil {
		s.Logout(c.Request.Context())
		h.Registry.Forget(s.Key())
	}
	c.SetCookie(h.Cookie.Name, "", -1, "/", "", h.Cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{"status": "success", "redirect": middleware.LoginPath})
}
