package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/existflow/plotline/internal/logger"
	"github.com/existflow/plotline/internal/model"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleListPlots(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]model.Plot{"plots": s.state.listPlots()})
}

func (s *Server) handleGetPlot(c echo.Context) error {
	p, ok := s.state.plot(c.Param("id"))
	if !ok {
		return fail(c, http.StatusNotFound, errNoPlot.Error())
	}
	return c.JSON(http.StatusOK, map[string]model.Plot{"plot": p})
}

// handleCreatePlot reads a multipart form: plot fields plus repeated "images" files
func (s *Server) handleCreatePlot(c echo.Context) error {
	patch, err := patchFromForm(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	if err := model.Validate(patch); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	var images []string
	if form, err := c.MultipartForm(); err == nil {
		for _, fh := range form.File["images"] {
			uri, err := s.saveUpload(fh)
			if err != nil {
				logger.Error("Failed to store upload", logger.F("file", fh.Filename), logger.F("error", err))
				return fail(c, http.StatusInternalServerError, "Failed to store image")
			}
			images = append(images, uri)
		}
	}

	p := model.Plot{
		Name:        patch.Name,
		Location:    patch.Location,
		Address:     patch.Address,
		Price:       patch.Price,
		SquareFeet:  patch.SquareFeet,
		Facing:      patch.Facing,
		Boundary:    patch.Boundary,
		Description: patch.Description,
		Amenities:   patch.Amenities,
		Images:      images,
	}
	if len(images) > 0 {
		p.Image = images[0]
	}
	p = s.state.addPlot(p)
	s.metrics.plotsCreatedTotal.Inc()

	logger.Info("Plot created", logger.F("id", p.ID), logger.F("images", len(images)))
	return c.JSON(http.StatusCreated, map[string]model.Plot{"plot": p})
}

func (s *Server) handleUpdatePlot(c echo.Context) error {
	var patch model.PlotPatch
	if err := c.Bind(&patch); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request")
	}
	patch.Name = strings.TrimSpace(patch.Name)
	if err := model.Validate(patch); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	p, err := s.state.updatePlot(c.Param("id"), patch)
	if errors.Is(err, errNoPlot) {
		return fail(c, http.StatusNotFound, err.Error())
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, map[string]model.Plot{"plot": p})
}

func (s *Server) handleDeletePlot(c echo.Context) error {
	if err := s.state.deletePlot(c.Param("id")); err != nil {
		return fail(c, http.StatusNotFound, err.Error())
	}
	logger.Info("Plot deleted", logger.F("id", c.Param("id")))
	return c.JSON(http.StatusOK, map[string]string{"message": "Plot deleted successfully"})
}

func (s *Server) handleUpload(c echo.Context) error {
	u, ok := s.state.getUpload(c.Param("name"))
	if !ok {
		return fail(c, http.StatusNotFound, "File not found")
	}
	return c.Blob(http.StatusOK, u.contentType, u.data)
}

// patchFromForm reads the plot fields of a multipart or urlencoded form.
// Amenities arrive as one comma-separated value.
func patchFromForm(c echo.Context) (model.PlotPatch, error) {
	squareFeet, err := formNumber(c, "squareFeet")
	if err != nil {
		return model.PlotPatch{}, err
	}
	price, err := formNumber(c, "price")
	if err != nil {
		return model.PlotPatch{}, err
	}
	return model.PlotPatch{
		Name:        strings.TrimSpace(c.FormValue("name")),
		Address:     c.FormValue("address"),
		SquareFeet:  squareFeet,
		Location:    c.FormValue("location"),
		Price:       price,
		Facing:      c.FormValue("facing"),
		Boundary:    c.FormValue("boundary"),
		Description: c.FormValue("description"),
		Amenities:   model.SplitAmenities(c.FormValue("amenities")),
	}, nil
}

func formNumber(c echo.Context, field string) (float64, error) {
	raw := strings.TrimSpace(c.FormValue(field))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", field)
	}
	return v, nil
}

// saveUpload keeps the file in memory and returns its public path
func (s *Server) saveUpload(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	s.state.putUpload(name, upload{contentType: contentType, data: data})
	return "/uploads/" + name, nil
}
