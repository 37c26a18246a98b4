// Package blog reads published posts for the site.
package blog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/devopscommunity/storefront/internal/app/apperr"
	"github.com/devopscommunity/storefront/internal/models"
	"github.com/devopscommunity/storefront/pkg/logctx"
)

const (
	DefaultPageSize = 9
	MaxPageSize     = 50
)

var ErrPostNotFound = apperr.NotFound("post not found")

type ListRequest struct {
	Category string `form:"category"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

func (r *ListRequest) normalize() {
	r.Category = strings.TrimSpace(r.Category)
	if strings.EqualFold(r.Category, "all") {
		r.Category = ""
	}
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize <= 0 {
		r.PageSize = DefaultPageSize
	}
	if r.PageSize > MaxPageSize {
		r.PageSize = MaxPageSize
	}
}

type ListResponse struct {
	Items    []*models.BlogPost `json:"items"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
	now func() time.Time
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log, now: time.Now}
}

// published excludes posts scheduled for the future.
func (s *Service) published(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.BlogPost{}).Where("published_at <= ?", s.now())
}

// List returns posts newest first without their content.
func (s *Service) List(ctx context.Context, req *ListRequest) (*ListResponse, error) {
	if req == nil {
		req = &ListRequest{}
	}
	req.normalize()

	tx := s.published(ctx)
	if req.Category != "" {
		tx = tx.Where("category = ?", req.Category)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	rows := make([]*models.BlogPost, 0, req.PageSize)
	q := tx.Omit("content").
		Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "published_at"}, Desc: true}}}).
		Limit(req.PageSize).
		Offset((req.Page - 1) * req.PageSize)
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	logctx.FromCtx(ctx, s.log).Debugw("blog_list", "category", req.Category, "page", req.Page, "total", total)
	return &ListResponse{Items: rows, Total: total, Page: req.Page, PageSize: req.PageSize}, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrPostNotFound
	}
	var post models.BlogPost
	if err := s.published(ctx).Where("slug = ?", slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post %q: %w", slug, err)
	}
	return &post, nil
}

var Module = fx.Options(
	fx.Provide(New),
)
