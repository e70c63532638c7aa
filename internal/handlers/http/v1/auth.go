package v1

import (
	"net/http"

	"github.com/gfdmit/web-forum/community-service/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *handler) register(c *gin.Context) {
	var in service.RegisterInput
	if !bindJSON(c, &in) {
		return
	}

	user, token, err := h.svc.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	h.startSession(c, token)
	c.JSON(http.StatusCreated, gin.H{"message": "registration complete", "user": user})
}

func (h *handler) login(c *gin.Context) {
	var in service.LoginInput
	if !bindJSON(c, &in) {
		return
	}

	user, token, err := h.svc.Login(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	h.startSession(c, token)
	c.JSON(http.StatusOK, gin.H{"message": "logged in", "user": user})
}

func (h *handler) logout(c *gin.Context) {
	http.SetCookie(c.Writer, h.sessions.ClearCookie())
	c.JSON(http.StatusOK, message("logged out"))
}

func (h *handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, actorOf(c))
}

func (h *handler) updateMe(c *gin.Context) {
	var in service.ProfileInput
	if !bindJSON(c, &in) {
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), actorOf(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *handler) startSession(c *gin.Context, token string) {
	http.SetCookie(c.Writer, h.sessions.Cookie(token))
}

