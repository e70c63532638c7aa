package v1

import (
	"net/http"

	"github.com/gfdmit/web-forum/community-service/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *handler) listBoards(c *gin.Context) {
	boards, err := h.svc.ListBoards(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, boards)
}

func (h *handler) getBoard(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	board, err := h.svc.GetBoard(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *handler) adminListBoards(c *gin.Context) {
	boards, err := h.svc.AdminListBoards(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, boards)
}

func (h *handler) createBoard(c *gin.Context) {
	var in service.BoardInput
	if !bindJSON(c, &in) {
		return
	}

	board, err := h.svc.CreateBoard(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, board)
}

func (h *handler) updateBoard(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in service.BoardUpdateInput
	if !bindJSON(c, &in) {
		return
	}

	board, err := h.svc.UpdateBoard(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *handler) deleteBoard(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteBoard(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("board deleted"))
}
