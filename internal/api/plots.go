package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/existflow/plotline/internal/model"
)

// Upload is one image attached to a plot creation
type Upload struct {
	Filename string
	Content  io.Reader
}

// ListPlots returns the summary list of every plot. No authentication.
func (c *Client) ListPlots(ctx context.Context) ([]model.Plot, error) {
	var result struct {
		Plots []model.Plot `json:"plots"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/plots"}, &result); err != nil {
		return nil, err
	}
	if result.Plots == nil {
		result.Plots = []model.Plot{}
	}
	return result.Plots, nil
}

// GetPlot returns the full record of one plot
func (c *Client) GetPlot(ctx context.Context, token, id string) (model.Plot, error) {
	if token == "" {
		return model.Plot{}, model.ErrNoToken
	}

	var result struct {
		Plot model.Plot `json:"plot"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/plots/" + url.PathEscape(id), token: token}, &result); err != nil {
		return model.Plot{}, err
	}
	return result.Plot, nil
}

// UpdatePlot replaces the editable fields of a plot
func (c *Client) UpdatePlot(ctx context.Context, token, id string, patch model.PlotPatch) error {
	if token == "" {
		return model.ErrNoToken
	}

	req, err := jsonRequest(http.MethodPut, "/admin/plots/"+url.PathEscape(id), token, patch)
	if err != nil {
		return err
	}
	return c.do(ctx, req, nil)
}

// DeletePlot removes a plot
func (c *Client) DeletePlot(ctx context.Context, token, id string) error {
	if token == "" {
		return model.ErrNoToken
	}
	return c.do(ctx, request{
		method:      http.MethodDelete,
		path:        "/admin/plots/" + url.PathEscape(id),
		token:       token,
		contentType: "application/json",
	}, nil)
}

// CreatePlot submits the plot fields and images as one multipart form
func (c *Client) CreatePlot(ctx context.Context, token string, patch model.PlotPatch, images []Upload) (model.Plot, error) {
	if token == "" {
		return model.Plot{}, model.ErrNoToken
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, field := range patch.FormFields() {
		if err := mw.WriteField(field[0], field[1]); err != nil {
			return model.Plot{}, fmt.Errorf("failed to encode %s: %w", field[0], err)
		}
	}
	for _, img := range images {
		part, err := mw.CreateFormFile("images", img.Filename)
		if err != nil {
			return model.Plot{}, fmt.Errorf("failed to attach %s: %w", img.Filename, err)
		}
		if _, err := io.Copy(part, img.Content); err != nil {
			return model.Plot{}, fmt.Errorf("failed to read %s: %w", img.Filename, err)
		}
	}
	if err := mw.Close(); err != nil {
		return model.Plot{}, err
	}

	var raw jsonListOrObject
	err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/admin/plots",
		token:       token,
		body:        &buf,
		contentType: mw.FormDataContentType(),
	}, &raw)
	if err != nil {
		return model.Plot{}, err
	}

	var plot model.Plot
	if err := raw.decode("plot", &plot); err != nil {
		return model.Plot{}, err
	}
	return plot, nil
}

// jsonListOrObject holds a body that is either the value itself or an
// object wrapping it under one key, e.g. [..] or {"users": [..]}
type jsonListOrObject json.RawMessage

func (j *jsonListOrObject) UnmarshalJSON(data []byte) error {
	*j = append((*j)[:0], data...)
	return nil
}

func (j jsonListOrObject) decode(key string, out any) error {
	if len(j) == 0 {
		return nil
	}
	if j[0] == '{' {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(j, &wrapped); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		if inner, ok := wrapped[key]; ok {
			return json.Unmarshal(inner, out)
		}
	}
	if err := json.Unmarshal(j, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
