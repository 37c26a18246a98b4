// Package inquiry stores contact form submissions and alerts staff.
package inquiry

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/samber/lo"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/devopscommunity/storefront/internal/app/apperr"
	"github.com/devopscommunity/storefront/internal/app/service/notifier"
	"github.com/devopscommunity/storefront/internal/models"
	"github.com/devopscommunity/storefront/pkg/ids"
	"github.com/devopscommunity/storefront/pkg/logctx"
)

const maxMessageLen = 5000

var knownTypes = []models.InquiryType{
	models.InquiryTypeGeneral,
	models.InquiryTypeTraining,
	models.InquiryTypeCorporate,
	models.InquiryTypeMentoring,
}

type CreateRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (r *CreateRequest) validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	r.Message = strings.TrimSpace(r.Message)
	if r.Type == "" {
		r.Type = string(models.InquiryTypeGeneral)
	}
	switch {
	case r.Name == "":
		return apperr.Validation("name is required")
	case r.Email == "":
		return apperr.Validation("email is required")
	case !strings.Contains(r.Email, "@"):
		return apperr.Validation("email is invalid")
	case r.Message == "":
		return apperr.Validation("message is required")
	case utf8.RuneCountInString(r.Message) > maxMessageLen:
		return apperr.Validation(fmt.Sprintf("message exceeds %d characters", maxMessageLen))
	case !lo.Contains(knownTypes, models.InquiryType(r.Type)):
		return apperr.Validation(fmt.Sprintf("unknown inquiry type %q", r.Type))
	}
	return nil
}

type Service struct {
	db       *gorm.DB
	notifier notifier.Notifier
	log      *zap.SugaredLogger
}

func New(db *gorm.DB, n notifier.Notifier, log *zap.SugaredLogger) *Service {
	return &Service{db: db, notifier: n, log: log}
}

// Create saves the inquiry, then alerts staff. The alert is best-effort: a
// stored inquiry is never reported as failed because email did.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*models.Inquiry, error) {
	if req == nil {
		return nil, apperr.Validation("empty request")
	}
	if err := req.validate(); err != nil {
		return nil, err
	}
	inq := &models.Inquiry{
		ID:        ids.NewV7(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Type:      models.InquiryType(req.Type),
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(inq).Error; err != nil {
		return nil, apperr.Internal("failed to save inquiry", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("inquiry_saved", "id", inq.ID, "type", inq.Type)

	_ = s.notifier.SendInquiryAlert(ctx, notifier.InquiryAlert{
		Name:        inq.Name,
		Email:       inq.Email,
		Phone:       inq.Phone,
		Type:        string(inq.Type),
		Message:     inq.Message,
		SubmittedAt: inq.CreatedAt,
	}, notifier.FailureSwallow)
	return inq, nil
}

var Module = fx.Options(
	fx.Provide(New),
)
