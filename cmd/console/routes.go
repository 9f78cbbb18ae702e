package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/smartkiosk/console/internal/accounts"
	"github.com/smartkiosk/console/internal/http/api"
	"github.com/smartkiosk/console/internal/http/api/admin/endpoints"
	"github.com/smartkiosk/console/internal/playlist"
	"github.com/smartkiosk/console/internal/session"
)

// RegisterRoutes sets up all console routes. The browser UI is a static
// app served elsewhere, so CORS stays wide open for it.
func RegisterRoutes(r *gin.Engine, gate *session.Gate, engine *playlist.Engine, directory *accounts.Directory, uploads endpoints.Uploader) {
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	},
		endpoints.AuthPublicModule(gate),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   true,
		Gate:   gate,
	},
		endpoints.PlaylistModule(engine, uploads),
		endpoints.UsersModule(directory),
		endpoints.AuthSessionModule(gate),
	)
}
