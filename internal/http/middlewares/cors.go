package middlewares

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const corsMaxAge = 10 * 60

// CORS lets the listed browser origins call the API. The allowed methods
// come from the routes actually registered, see AllowRoutes.
type CORS struct {
	origins map[string]struct{}
	methods string
}

func NewCORS(allowedOrigins []string) *CORS {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origins[origin] = struct{}{}
	}

	return &CORS{
		origins: origins,
		methods: strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}, ","),
	}
}

// AllowRoutes advertises exactly the methods of routes, plus OPTIONS. Call
// it once after all routes are registered and before serving.
func (c *CORS) AllowRoutes(routes gin.RoutesInfo) {
	methods := make([]string, 0, 4)
	for _, r := range routes {
		if r.Method != http.MethodOptions && !slices.Contains(methods, r.Method) {
			methods = append(methods, r.Method)
		}
	}
	slices.Sort(methods)

	c.methods = strings.Join(append(methods, http.MethodOptions), ",")
}

func (c *CORS) Handler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		origin := ctx.GetHeader("Origin")

		if origin != "" {
			ctx.Writer.Header().Add("Vary", "Origin")

			if _, ok := c.origins[origin]; ok {
				ctx.Header("Access-Control-Allow-Origin", origin)
				ctx.Header("Access-Control-Allow-Credentials", "true")
				ctx.Header("Access-Control-Allow-Methods", c.methods)
				ctx.Header("Access-Control-Allow-Headers", "Authorization,Content-Type,If-None-Match,X-Request-Id")
				// the client reads the ETag for conditional GETs and the id for support
				ctx.Header("Access-Control-Expose-Headers", "ETag,X-Request-Id")
				ctx.Header("Access-Control-Max-Age", strconv.Itoa(corsMaxAge))
			}
		}

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}

		ctx.Next()
	}
}
