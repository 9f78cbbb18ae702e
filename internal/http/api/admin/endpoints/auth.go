package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/smartkiosk/console/internal/gateway"
	"github.com/smartkiosk/console/internal/http/api"
	"github.com/smartkiosk/console/internal/http/api/admin/packets"
	"github.com/smartkiosk/console/internal/http/middleware"
	"github.com/smartkiosk/console/internal/session"
)

// AuthPublicModule mounts the public login endpoint.
func AuthPublicModule(gate *session.Gate) api.Module {
	ctl := &authController{gate: gate}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/auth/login", ctl.login)
	})
}

// AuthSessionModule mounts session endpoints that require auth.
func AuthSessionModule(gate *session.Gate) api.Module {
	ctl := &authController{gate: gate}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/auth/logout", ctl.logout)
		c.GET("/auth/session", ctl.currentSession)
	})
}

type authController struct {
	gate *session.Gate
}

// POST /api/admin/auth/login
//
// An unreachable gateway and a wrong password are different failures and
// must stay different on the wire.
func (a *authController) login(ctx *gin.Context) (any, *api.APIError) {
	var request packets.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	token, name, err := a.gate.Authenticate(ctx.Request.Context(), request.Email, request.Password)
	if errors.Is(err, session.ErrInvalidCredentials) {
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: "invalid email or password"}
	}
	if err != nil {
		if gateway.IsTransport(err) {
			log.Error().Err(err).Msg("[auth] login: gateway unavailable")
			return nil, &api.APIError{Code: http.StatusBadGateway, Message: "kiosk service unreachable"}
		}
		// Store or signing failure: local, not a connectivity problem.
		log.Error().Err(err).Msg("[auth] login: could not establish session")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not sign in"}
	}

	return packets.LoginResponse{Token: token, Name: name}, nil
}

// POST /api/admin/auth/logout
func (a *authController) logout(ctx *gin.Context, _ string) (any, *api.APIError) {
	token, ok := middleware.SessionToken(ctx)
	if !ok {
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: "unauthorized"}
	}
	if err := a.gate.Logout(ctx.Request.Context(), token); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not clear session"}
	}
	return nil, nil
}

// GET /api/admin/auth/session
func (a *authController) currentSession(_ *gin.Context, operator string) (any, *api.APIError) {
	return packets.SessionResponse{Name: operator}, nil
}
