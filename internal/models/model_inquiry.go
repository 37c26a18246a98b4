package models

import "time"

type InquiryType string

const (
	InquiryTypeGeneral   InquiryType = "general"
	InquiryTypeTraining  InquiryType = "training"
	InquiryTypeCorporate InquiryType = "corporate"
	InquiryTypeMentoring InquiryType = "mentoring"
)

// Inquiry is a contact form submission.
type Inquiry struct {
	ID        string      `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Name      string      `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email     string      `gorm:"column:email;type:varchar(255);not null" json:"email"`
	Phone     string      `gorm:"column:phone;type:varchar(32)" json:"phone"`
	Type      InquiryType `gorm:"column:type;type:varchar(32);not null" json:"type"`
	Message   string      `gorm:"column:message;type:text;not null" json:"message"`
	CreatedAt time.Time   `gorm:"index" json:"created_at"`
}

func (Inquiry) TableName() string { return "inquiries" }
