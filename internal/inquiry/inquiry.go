// Package inquiry submits the "I'm interested" contact form
package inquiry

import (
	"context"
	"strings"

	"github.com/existflow/plotline/internal/logger"
	"github.com/existflow/plotline/internal/model"
)

// Sender posts an inquiry to the backend
type Sender interface {
	SubmitInquiry(ctx context.Context, inquiry model.Inquiry) error
}

type Service struct {
	sender Sender
}

func New(sender Sender) *Service {
	return &Service{sender: sender}
}

// Submit trims and validates the form before sending it. No token is needed.
func (s *Service) Submit(ctx context.Context, in model.Inquiry) model.Result[struct{}] {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Location = strings.TrimSpace(in.Location)

	if err := model.Validate(in); err != nil {
		return model.Fail[struct{}](err)
	}

	if err := s.sender.SubmitInquiry(ctx, in); err != nil {
		logger.Error("Failed to submit inquiry", logger.F("plot", in.InterestedPlot), logger.F("error", err))
		return model.Fail[struct{}](err)
	}

	logger.Info("Inquiry submitted", logger.F("plot", in.InterestedPlot))
	return model.Ok(struct{}{})
}
