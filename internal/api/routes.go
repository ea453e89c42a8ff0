package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"surge/internal/api/handlers"
	"surge/internal/api/middleware"
	"surge/internal/metrics"
)

type Router struct {
	graphqlHandler *handlers.GraphQLHandler
}

func NewRouter(graphqlHandler *handlers.GraphQLHandler) *Router {
	return &Router{graphqlHandler: graphqlHandler}
}

func (r *Router) Setup(engine *gin.Engine) {
	engine.Use(
		gin.Recovery(),
		middleware.CORS(),
		middleware.RequestID(),
		middleware.AccessLog(),
		metrics.Middleware(),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", metrics.Handler())

	engine.POST("/", r.graphqlHandler.Query)

	gql := engine.Group("/graphql")
	{
		gql.POST("", r.graphqlHandler.Query)
		gql.POST("/mutations", r.graphqlHandler.Mutation)
		gql.GET("/subscriptions/:type", r.graphqlHandler.Subscription)
	}
}
