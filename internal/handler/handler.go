package handler

import (
	"context"
	"errors"

	"github.com/UniPortal/feed-service/internal/model"
	"github.com/UniPortal/feed-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Handler struct {
	logger   *zap.Logger
	services *service.Service
}

func New(logger *zap.Logger, services *service.Service) *Handler {
	return &Handler{
		logger:   logger,
		services: services,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{viper.GetString("client.origin")},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.authLogin)
			auth.GET("/session", h.authMiddleware, h.authSession)
			auth.POST("/logout", h.authMiddleware, h.authLogout)
		}

		posts := v1.Group("/posts")
		{
			posts.GET("", h.postsGetList)
			posts.POST("", h.authMiddleware, h.postsCreate)

			post := posts.Group("/:postID")
			{
				post.GET("/comments", h.commentsGet)
				post.GET("/comments/tree", h.commentsGetTree)
				post.POST("/comments", h.authMiddleware, h.commentsCreate)
				post.POST("/like", h.authMiddleware, h.postsLike)
			}
		}

		v1.POST("/users/:userID/follow", h.authMiddleware, h.usersFollow)

		feed := v1.Group("/feed")
		{
			feed.GET("", h.notRequiredAuthMiddleware, h.feedGet)
			feed.POST("/viewer-state", h.authMiddleware, h.feedViewerState)
		}

		notifications := v1.Group("/notifications", h.authMiddleware)
		{
			notifications.GET("", h.notificationsGet)
			notifications.PATCH("/read", h.notificationsMarkRead)
		}

		catalog := v1.Group("/catalog")
		{
			catalog.GET("/faculties", h.catalogFaculties)
			catalog.GET("/faculties/:id/departments", h.catalogDepartments)
			catalog.GET("/departments/:id/papers", h.catalogPapers)
		}
	}

	return r
}

func (h *Handler) getUserDataFromClaims(ctx context.Context, claims jwt.MapClaims, accessToken string) (*model.CachedUser, error) {
	idString, ok := claims["id"].(string)
	if !ok {
		return nil, errNotAuthorized
	}
	id, err := uuid.Parse(idString)
	if err != nil {
		return nil, errNotAuthorized
	}

	user, err := h.services.UserCache.CreateOrGet(ctx, id, accessToken)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (h *Handler) getCachedUserFromRequest(c *gin.Context) *model.CachedUser {
	userReq, exists := c.Get(cachedUserKey)
	if !exists {
		return nil
	}

	user, ok := userReq.(model.CachedUser)
	if !ok {
		return nil
	}

	return &user
}

// viewerID is uuid.Nil for anonymous requests.
func (h *Handler) viewerID(c *gin.Context) uuid.UUID {
	if user := h.getCachedUserFromRequest(c); user != nil {
		return user.ID
	}
	return uuid.Nil
}

func isNotAuthorized(err error) bool {
	return errors.Is(err, errNotAuthorized)
}
