package v1

import (
	"net/http"

	"github.com/gfdmit/web-forum/community-service/internal/service"
	"github.com/gin-gonic/gin"
)

func page(c *gin.Context) (service.Page, bool) {
	limit, ok := queryInt(c, "limit")
	if !ok {
		return service.Page{}, false
	}
	offset, ok := queryInt(c, "offset")
	if !ok {
		return service.Page{}, false
	}
	return service.Page{Limit: limit, Offset: offset}, true
}

func (h *handler) listPosts(c *gin.Context) {
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, ok := page(c)
	if !ok {
		return
	}

	posts, err := h.svc.ListPosts(c.Request.Context(), boardID, p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *handler) getPost(c *gin.Context) {
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}

	post, err := h.svc.ReadPost(c.Request.Context(), boardID, postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *handler) createPost(c *gin.Context) {
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in service.PostInput
	if !bindJSON(c, &in) {
		return
	}

	post, err := h.svc.CreatePost(c.Request.Context(), claimsOf(c), boardID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *handler) updatePost(c *gin.Context) {
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}
	var in service.PostUpdateInput
	if !bindJSON(c, &in) {
		return
	}

	post, err := h.svc.UpdatePost(c.Request.Context(), actorOf(c), boardID, postID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *handler) deletePost(c *gin.Context) {
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}

	if err := h.svc.DeletePost(c.Request.Context(), actorOf(c), boardID, postID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("post deleted"))
}

func (h *handler) listComments(c *gin.Context) {
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}
	p, ok := page(c)
	if !ok {
		return
	}

	comments, err := h.svc.ListComments(c.Request.Context(), boardID, postID, p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *handler) createComment(c *gin.Context) {
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}
	var in service.CommentInput
	if !bindJSON(c, &in) {
		return
	}

	comment, err := h.svc.CreateComment(c.Request.Context(), claimsOf(c), boardID, postID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *handler) deleteComment(c *gin.Context) {
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	if err := h.svc.DeleteComment(c.Request.Context(), actorOf(c), boardID, postID, commentID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("comment deleted"))
}
