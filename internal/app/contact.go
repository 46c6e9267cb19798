package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bonsplans/internal/domain"
)

var ErrInvalidInquiry = errors.New("invalid inquiry")

// ContactRequest is the payload of the contact form.
type ContactRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	Email         string `json:"email" validate:"required,email,max=320"`
	Phone         string `json:"phone" validate:"max=50"`
	Establishment string `json:"establishment" validate:"required,max=200"`
	Message       string `json:"message" validate:"required,max=5000"`
}

// ContactService archives inquiries and relays them by email.
type ContactService struct {
	repo     domain.InquiryRepository // optional
	mailer   domain.Mailer
	validate *validator.Validate
	now      func() time.Time
}

func NewContactService(repo domain.InquiryRepository, m domain.Mailer) *ContactService {
	return &ContactService{repo: repo, mailer: m, validate: validator.New(), now: time.Now}
}

// Submit validates and relays one inquiry. Archiving is best effort; a relay
// failure is returned to the caller.
func (s *ContactService) Submit(ctx context.Context, req ContactRequest) (domain.Inquiry, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Establishment = strings.TrimSpace(req.Establishment)
	req.Message = strings.TrimSpace(req.Message)

	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return domain.Inquiry{}, fmt.Errorf("%w: %s failed on %s", ErrInvalidInquiry, strings.ToLower(verrs[0].Field()), verrs[0].Tag())
		}
		return domain.Inquiry{}, fmt.Errorf("%w: %v", ErrInvalidInquiry, err)
	}

	in := domain.Inquiry{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Establishment: req.Establishment,
		Message:       req.Message,
		CreatedAt:     s.now().UTC(),
	}

	archived := false
	if s.repo != nil {
		if err := s.repo.SaveInquiry(ctx, in); err != nil {
			log.Error().Err(err).Str("inquiry", in.ID).Msg("archive inquiry failed")
		} else {
			archived = true
		}
	}

	sendErr := s.mailer.SendInquiry(ctx, in)
	if archived {
		detail := ""
		if sendErr != nil {
			detail = sendErr.Error()
		}
		if err := s.repo.MarkDelivery(ctx, in.ID, sendErr == nil, detail); err != nil {
			log.Error().Err(err).Str("inquiry", in.ID).Msg("record delivery failed")
		}
	}
	if sendErr != nil {
		return in, fmt.Errorf("relay inquiry %s: %w", in.ID, sendErr)
	}
	log.Info().Str("inquiry", in.ID).Str("establishment", in.Establishment).Msg("inquiry relayed")
	return in, nil
}
