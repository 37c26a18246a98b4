package models

import (
	"time"

	"github.com/lib/pq"
)

// BlogPost is a published article. Content is stored as authored markdown and
// returned untouched. The table is maintained by the site's CMS and is only
// read here.
type BlogPost struct {
	ID          string         `gorm:"column:id;primary_key" json:"id"`
	Slug        string         `gorm:"column:slug" json:"slug"`
	Title       string         `gorm:"column:title" json:"title"`
	Summary     string         `gorm:"column:summary" json:"summary"`
	Category    string         `gorm:"column:category" json:"category"`
	PublishedAt time.Time      `gorm:"column:published_at" json:"published_at"`
	ReadingTime string         `gorm:"column:reading_time" json:"reading_time"`
	CoverImage  string         `gorm:"column:cover_image" json:"cover_image"`
	Content     string         `gorm:"column:content" json:"content,omitempty"`
	Tags        pq.StringArray `gorm:"column:tags;type:text[]" json:"tags" swaggertype:"array,string"`
	Authors     pq.StringArray `gorm:"column:authors;type:text[]" json:"authors" swaggertype:"array,string"`
}

func (BlogPost) TableName() string { return "blog_posts" }
