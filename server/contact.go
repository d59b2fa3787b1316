package server

import (
	"net/http"
	"strings"

	"github.com/existflow/plotline/internal/logger"
	"github.com/existflow/plotline/internal/model"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleContact(c echo.Context) error {
	var req model.Inquiry
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := model.Validate(req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	s.state.addInquiry(req)
	s.metrics.inquiriesTotal.Inc()

	logger.Info("Inquiry received", logger.F("email", req.Email), logger.F("plot", req.InterestedPlot))
	return c.JSON(http.StatusOK, map[string]string{"message": "Thank you! We will contact you soon."})
}

// handleListInquiries returns recorded contact requests, oldest first
func (s *Server) handleListInquiries(c echo.Context) error {
	return c.JSON(http.StatusOK, s.state.listInquiries())
}
