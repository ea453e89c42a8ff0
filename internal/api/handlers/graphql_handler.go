package handlers

import (
	"github.com/gin-gonic/gin"

	"surge/internal/graphql"
)

// GraphQLHandler adapts the operation router to gin. It only decodes the
// transport; naming, dispatch and error mapping live in the router.
type GraphQLHandler struct {
	router *graphql.Router
}

func NewGraphQLHandler(router *graphql.Router) *GraphQLHandler {
	return &GraphQLHandler{router: router}
}

// Query handles POST / and POST /graphql
func (h *GraphQLHandler) Query(c *gin.Context) {
	h.serveBody(c, graphql.KindQuery)
}

// Mutation handles POST /graphql/mutations
func (h *GraphQLHandler) Mutation(c *gin.Context) {
	h.serveBody(c, graphql.KindMutation)
}

// Subscription handles GET /graphql/subscriptions/:type. Query string
// parameters become the operation variables.
func (h *GraphQLHandler) Subscription(c *gin.Context) {
	vars := graphql.Variables{}
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			vars[key] = values[0]
		}
	}

	op := graphql.Operation{
		Name:      c.Param("type"),
		Kind:      graphql.KindSubscription,
		Variables: vars,
	}
	h.write(c, h.router.Dispatch(c.Request.Context(), op))
}

// serveBody decodes a {query, operationName, variables} body. A body that is
// not valid JSON resolves to no operation and is reported as unknown.
func (h *GraphQLHandler) serveBody(c *gin.Context, kind graphql.Kind) {
	var req graphql.Request
	_ = c.ShouldBindJSON(&req)

	op := h.router.Resolve(kind, req)
	h.write(c, h.router.Dispatch(c.Request.Context(), op))
}

func (h *GraphQLHandler) write(c *gin.Context, res graphql.Result) {
	c.JSON(res.Status, res.Body)
}
