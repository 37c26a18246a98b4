// Package webhooklog keeps an audit trail of webhook deliveries.
package webhooklog

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/devopscommunity/storefront/internal/models"
	"github.com/devopscommunity/storefront/pkg/ids"
	"github.com/devopscommunity/storefront/pkg/logctx"
)

// Recorder is what the webhook processor writes to.
type Recorder interface {
	Save(ctx context.Context, entry *models.PaymentWebhookLog)
}

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
	wg  sync.WaitGroup
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service { return &Service{db: db, log: log} }

// Save asynchronously persists a webhook log entry. Nil input is ignored.
func (s *Service) Save(ctx context.Context, entry *models.PaymentWebhookLog) {
	if entry == nil {
		return
	}
	if entry.ID == "" {
		entry.ID = ids.NewV7()
	}
	if entry.TraceID == "" {
		entry.TraceID = logctx.TraceID(ctx)
	}
	lg := logctx.FromCtx(ctx, s.log)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		// the request context is cancelled once the response is written
		if err := s.db.WithContext(context.WithoutCancel(ctx)).Save(entry).Error; err != nil {
			lg.Errorf("failed to save webhook log: %v", err)
		}
	}()
}

// Wait blocks until pending writes finish. The HTTP server calls it after
// shutdown has drained in-flight requests, so no Save can follow it.
func (s *Service) Wait() { s.wg.Wait() }

// ResultJSON marshals v for the result column, nil when v cannot be encoded.
func ResultJSON(v any) *datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	j := datatypes.JSON(b)
	return &j
}

var Module = fx.Options(
	fx.Provide(
		New,
		func(s *Service) Recorder { return s },
	),
)
