package v1

import (
	"net/http"

	"github.com/gfdmit/web-forum/community-service/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *handler) listTodos(c *gin.Context) {
	todos, err := h.svc.ListTodos(c.Request.Context(), actorOf(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

func (h *handler) createTodo(c *gin.Context) {
	var in service.TodoInput
	if !bindJSON(c, &in) {
		return
	}

	todo, err := h.svc.CreateTodo(c.Request.Context(), actorOf(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, todo)
}

func (h *handler) updateTodo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in service.TodoInput
	if !bindJSON(c, &in) {
		return
	}

	todo, err := h.svc.UpdateTodo(c.Request.Context(), actorOf(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

func (h *handler) deleteTodo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteTodo(c.Request.Context(), actorOf(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("todo deleted"))
}
