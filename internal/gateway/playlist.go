package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/smartkiosk/console/internal/model"
)

// FetchPlaylist returns the full media collection in whatever order the
// gateway stores it; callers are responsible for sorting by position.
func (c *Client) FetchPlaylist(ctx context.Context) ([]model.MediaItem, error) {
	var items []model.MediaItem
	if err := c.getJSON(ctx, "/playlist-items", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ReplacePlaylist submits the entire ordered collection as the new
// authoritative state. The gateway's playlist endpoint has bulk-replace
// semantics; there is no per-item patch call.
func (c *Client) ReplacePlaylist(ctx context.Context, items []model.MediaItem) error {
	if items == nil {
		items = []model.MediaItem{}
	}
	return c.sendJSON(ctx, http.MethodPost, "/playlist-items", items, nil)
}

// UploadResult is the gateway's answer to a video upload: the stored
// asset's path, later embedded as a MediaItem source.
type UploadResult struct {
	URL string `json:"url"`
}

// UploadVideo streams a video file to the gateway's upload endpoint.
// label is the operator-facing key sent alongside the binary.
func (c *Client) UploadVideo(ctx context.Context, label, filename string, r io.Reader) (*UploadResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("key", label); err != nil {
		return nil, fmt.Errorf("encode upload form: %w", err)
	}
	part, err := w.CreateFormFile("videoFile", filename)
	if err != nil {
		return nil, fmt.Errorf("encode upload form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("read upload body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("encode upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/playlist-items/upload", &buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var result UploadResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
