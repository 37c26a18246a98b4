package models

import (
	"time"

	"gorm.io/datatypes"
)

type PaymentWebhookLogStatus string

const (
	PaymentWebhookLogStatusProcessed PaymentWebhookLogStatus = "processed"
	PaymentWebhookLogStatusDuplicate PaymentWebhookLogStatus = "duplicate"
	PaymentWebhookLogStatusIgnored   PaymentWebhookLogStatus = "ignored"
	PaymentWebhookLogStatusRejected  PaymentWebhookLogStatus = "rejected"
	PaymentWebhookLogStatusFailed    PaymentWebhookLogStatus = "failed"
)

// PaymentWebhookLog is an audit row per webhook delivery. Data holds the raw
// body only once its signature has been verified.
type PaymentWebhookLog struct {
	ID        string                  `gorm:"column:id;type:uuid;primary_key" json:"id"`
	TraceID   string                  `gorm:"column:trace_id;type:varchar(128)" json:"trace_id"`
	Event     string                  `gorm:"column:event;type:varchar(64)" json:"event"`
	PaymentID string                  `gorm:"column:payment_id;type:varchar(64);index" json:"payment_id"`
	Status    PaymentWebhookLogStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`
	Data      datatypes.JSON          `gorm:"column:data;type:jsonb" json:"data"`
	Result    *datatypes.JSON         `gorm:"column:result;type:jsonb" json:"result"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

func (PaymentWebhookLog) TableName() string { return "payment_webhook_log" }
