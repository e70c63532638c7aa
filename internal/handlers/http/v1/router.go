package v1

import (
	"net/http"
	"time"

	"github.com/gfdmit/web-forum/community-service/config"
	"github.com/gfdmit/web-forum/community-service/internal/auth"
	gql "github.com/gfdmit/web-forum/community-service/internal/handlers/http/v1/graphql"
	"github.com/gfdmit/web-forum/community-service/internal/repository"
	"github.com/gfdmit/web-forum/community-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type handler struct {
	svc      *service.Service
	sessions *auth.Sessions
}

func New(svc *service.Service, sessions *auth.Sessions, conf config.App) (*gin.Engine, error) {
	var (
		router = gin.New()
		h      = &handler{svc: svc, sessions: sessions}
	)

	registerValidators()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", requestIDHeader},
		ExposeHeaders:    []string{"Link", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300 * time.Second,
	}))

	gqlHandler, err := gql.New(svc)
	if err != nil {
		return nil, err
	}

	apiGroup := router.Group("/api/v1")
	{
		apiGroup.Use(gin.Logger(), gin.Recovery(), requestID(), h.session())

		apiGroup.Any("/graphql", gin.WrapH(gqlHandler))

		apiGroup.GET("/ping", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", h.register)
			authGroup.POST("/login", h.login)
			authGroup.POST("/logout", h.logout)
			authGroup.GET("/me", h.requireUser(), h.me)
			authGroup.PUT("/me", h.requireUser(), h.updateMe)
		}

		boardGroup := apiGroup.Group("/boards")
		{
			boardGroup.GET("", h.listBoards)
			boardGroup.POST("", h.requireRole(repository.RoleAdmin), h.createBoard)
			boardGroup.GET("/:id", h.getBoard)

			boardGroup.GET("/:id/posts", h.listPosts)
			boardGroup.POST("/:id/posts", h.createPost)
			boardGroup.GET("/:id/posts/:postId", h.getPost)
			boardGroup.PUT("/:id/posts/:postId", h.requireUser(), h.updatePost)
			boardGroup.DELETE("/:id/posts/:postId", h.requireUser(), h.deletePost)

			boardGroup.GET("/:id/posts/:postId/comments", h.listComments)
			boardGroup.POST("/:id/posts/:postId/comments", h.createComment)
			boardGroup.DELETE("/:id/posts/:postId/comments/:commentId", h.requireUser(), h.deleteComment)
		}

		todoGroup := apiGroup.Group("/todos", h.requireUser())
		{
			todoGroup.GET("", h.listTodos)
			todoGroup.POST("", h.createTodo)
			todoGroup.PUT("/:id", h.updateTodo)
			todoGroup.DELETE("/:id", h.deleteTodo)
		}

		guestbookGroup := apiGroup.Group("/guestbook")
		{
			guestbookGroup.GET("", h.listGuestbook)
			guestbookGroup.POST("", h.createGuestbookEntry)
		}

		adminGroup := apiGroup.Group("/admin", h.requireRole(repository.RoleAdmin))
		{
			adminGroup.GET("/users", h.listUsers)
			adminGroup.POST("/users", h.createUser)
			adminGroup.PUT("/users/:id", h.updateUser)
			adminGroup.DELETE("/users/:id", h.deleteUser)

			adminGroup.GET("/boards", h.adminListBoards)
			adminGroup.POST("/boards", h.createBoard)
			adminGroup.PUT("/boards/:id", h.updateBoard)
			adminGroup.DELETE("/boards/:id", h.deleteBoard)

			adminGroup.GET("/stats", h.stats)

			adminGroup.GET("/guestbook", h.adminListGuestbook)
			adminGroup.POST("/guestbook/approve-all", h.approveAllGuestbook)
			adminGroup.PUT("/guestbook/:id", h.setGuestbookApproval)
			adminGroup.DELETE("/guestbook/:id", h.deleteGuestbookEntry)
		}
	}

	return router, nil
}
