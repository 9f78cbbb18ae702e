package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartkiosk/console/internal/http/middleware"
)

// APIError is what a handler returns to fail a request.
type APIError struct {
	Code    int
	Message string
}

// AuthHandlerFunc runs after the session middleware; operator is the
// display name of the authenticated operator.
type AuthHandlerFunc func(ctx *gin.Context, operator string) (any, *APIError)

// HandlerFunc is for public endpoints.
type HandlerFunc func(ctx *gin.Context) (any, *APIError)

// ResolveEndpointWithAuth adapts an AuthHandlerFunc to gin, rejecting
// requests that carry no resolved session.
func ResolveEndpointWithAuth(h AuthHandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		operator, ok := middleware.CurrentOperator(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		result, apiErr := h(ctx, operator)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}
		ctx.JSON(http.StatusOK, result)
	}
}

// ResolveEndpoint adapts a public HandlerFunc to gin.
func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}
		ctx.JSON(http.StatusOK, result)
	}
}
