package endpoints

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/smartkiosk/console/internal/gateway"
	"github.com/smartkiosk/console/internal/http/api"
	"github.com/smartkiosk/console/internal/http/api/admin/packets"
	"github.com/smartkiosk/console/internal/playlist"
)

// Uploader forwards a video binary to the gateway's upload endpoint.
type Uploader interface {
	UploadVideo(ctx context.Context, label, filename string, r io.Reader) (*gateway.UploadResult, error)
}

type playlistController struct {
	engine  *playlist.Engine
	uploads Uploader
}

// PlaylistModule mounts all authenticated /playlist endpoints.
func PlaylistModule(engine *playlist.Engine, uploads Uploader) api.Module {
	ctl := &playlistController{engine: engine, uploads: uploads}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/playlist", ctl.getView)
		c.POST("/playlist/items", ctl.createItem)
		c.PUT("/playlist/items/:id", ctl.updateItem)
		c.DELETE("/playlist/items/:id", ctl.removeItem)
		c.POST("/playlist/upload", ctl.upload)
	})
}

// GET /api/admin/playlist?search=&page=
//
// Every view request fetches the collection fresh; a failed fetch leaves
// the previously loaded list in place and reports connectivity.
func (p *playlistController) getView(ctx *gin.Context, _ string) (any, *api.APIError) {
	if err := p.engine.Load(ctx.Request.Context()); err != nil {
		return nil, &api.APIError{Code: http.StatusBadGateway, Message: "kiosk service unreachable"}
	}

	p.engine.Search(ctx.Query("search"))
	if raw := ctx.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid page"}
		}
		p.engine.SetPage(n)
	}

	view := p.engine.View()
	// The engine exposes TotalPages but does not clamp; bounding the page
	// is this layer's job.
	if view.TotalPages > 0 && view.Page > view.TotalPages {
		p.engine.SetPage(view.TotalPages)
		view = p.engine.View()
	}
	return mapPlaylistView(view), nil
}

// POST /api/admin/playlist/items
func (p *playlistController) createItem(ctx *gin.Context, _ string) (any, *api.APIError) {
	var req packets.CreateMediaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	err := p.engine.Create(ctx.Request.Context(), playlist.Draft{
		Key:             req.Key,
		DurationSeconds: req.DurationSeconds,
		SourceURL:       req.SourceURL,
	})
	if apiErr := mapMutationError(err); apiErr != nil {
		return nil, apiErr
	}
	return mapPlaylistView(p.engine.View()), nil
}

// PUT /api/admin/playlist/items/:id
func (p *playlistController) updateItem(ctx *gin.Context, _ string) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	var req packets.UpdateMediaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	err = p.engine.Update(ctx.Request.Context(), id, playlist.Patch{
		Key:             req.Key,
		Folder:          req.Folder,
		FileName:        req.FileName,
		DurationSeconds: req.DurationSeconds,
	})
	if apiErr := mapMutationError(err); apiErr != nil {
		return nil, apiErr
	}
	return mapPlaylistView(p.engine.View()), nil
}

// DELETE /api/admin/playlist/items/:id
func (p *playlistController) removeItem(ctx *gin.Context, _ string) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	if apiErr := mapMutationError(p.engine.Remove(ctx.Request.Context(), id)); apiErr != nil {
		return nil, apiErr
	}
	return mapPlaylistView(p.engine.View()), nil
}

// POST /api/admin/playlist/upload (multipart: videoFile + key)
func (p *playlistController) upload(ctx *gin.Context, _ string) (any, *api.APIError) {
	label := ctx.PostForm("key")
	if label == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "missing key field"}
	}
	fileHeader, err := ctx.FormFile("videoFile")
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "missing video file"}
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not read upload"}
	}
	defer f.Close()

	result, err := p.uploads.UploadVideo(ctx.Request.Context(), label, fileHeader.Filename, f)
	if err != nil {
		log.Error().Err(err).Str("key", label).Msg("[playlist] upload failed")
		if gateway.IsTransport(err) {
			return nil, &api.APIError{Code: http.StatusBadGateway, Message: "kiosk service unreachable"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "upload failed"}
	}
	return packets.UploadResponse{URL: result.URL}, nil
}

// mapMutationError sorts an engine error into the validation,
// connectivity or generic-save class; nil stays nil. The classes are
// never collapsed: a dead gateway must not read like a rejected save.
func mapMutationError(err error) *api.APIError {
	if err == nil {
		return nil
	}
	if errors.Is(err, playlist.ErrValidation) {
		return &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if gateway.IsTransport(err) {
		return &api.APIError{Code: http.StatusBadGateway, Message: "kiosk service unreachable"}
	}
	return &api.APIError{Code: http.StatusInternalServerError, Message: "could not save playlist"}
}

func mapPlaylistView(v playlist.View) packets.PlaylistViewResponse {
	items := make([]packets.MediaItemResponse, len(v.Items))
	for i, it := range v.Items {
		items[i] = packets.MediaItemResponse{
			ID:              it.ID,
			Key:             it.Key,
			Source:          it.Source,
			Kind:            it.Kind,
			DurationSeconds: it.DurationMs / 1000,
			Position:        it.Position,
			Active:          it.Active,
		}
	}
	return packets.PlaylistViewResponse{
		Items:         items,
		Page:          v.Page,
		TotalPages:    v.TotalPages,
		TotalFiltered: v.TotalFiltered,
		TotalMedia:    v.Stats.Total,
		ActiveMedia:   v.Stats.Active,
		CycleMinutes:  v.Stats.CycleMinutes,
	}
}
