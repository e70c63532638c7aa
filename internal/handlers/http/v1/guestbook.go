package v1

import (
	"net/http"

	"github.com/gfdmit/web-forum/community-service/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *handler) listGuestbook(c *gin.Context) {
	entries, err := h.svc.ListGuestbook(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *handler) createGuestbookEntry(c *gin.Context) {
	var in service.GuestbookInput
	if !bindJSON(c, &in) {
		return
	}

	entry, err := h.svc.CreateGuestbookEntry(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *handler) adminListGuestbook(c *gin.Context) {
	entries, err := h.svc.AdminListGuestbook(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *handler) setGuestbookApproval(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in service.ApprovalInput
	if !bindJSON(c, &in) {
		return
	}

	entry, err := h.svc.SetGuestbookApproval(c.Request.Context(), id, *in.IsApproved)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *handler) approveAllGuestbook(c *gin.Context) {
	n, err := h.svc.ApproveAllGuestbook(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "entries approved", "approved": n})
}

func (h *handler) deleteGuestbookEntry(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteGuestbookEntry(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("entry deleted"))
}
