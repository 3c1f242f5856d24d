package models

import (
	"github.com/packmart/backend/internal/domain/contact"
)

// ContactMessageModel is the persistence model for the contact Message entity.
type ContactMessageModel struct {
	BaseModel
	Name    string                `gorm:"type:varchar(200);not null"`
	Email   string                `gorm:"type:varchar(200);not null;index"`
	Phone   string                `gorm:"type:varchar(50)"`
	Company string                `gorm:"type:varchar(200)"`
	Subject string                `gorm:"type:varchar(300)"`
	Body    string                `gorm:"type:text;not null"`
	Status  contact.MessageStatus `gorm:"type:varchar(20);not null;default:'unread';index"`
}

// TableName returns the table name for GORM
func (ContactMessageModel) TableName() string {
	return "contact_messages"
}

// ToDomain converts the persistence model to a domain Message entity.
func (m *ContactMessageModel) ToDomain() *contact.Message {
	return &contact.Message{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		Company:    m.Company,
		Subject:    m.Subject,
		Body:       m.Body,
		Status:     m.Status,
	}
}

// FromDomain populates the persistence model from a domain Message entity.
func (m *ContactMessageModel) FromDomain(msg *contact.Message) {
	m.FromDomainBaseEntity(msg.BaseEntity)
	m.Name = msg.Name
	m.Email = msg.Email
	m.Phone = msg.Phone
	m.Company = msg.Company
	m.Subject = msg.Subject
	m.Body = msg.Body
	m.Status = msg.Status
}

// ContactMessageModelFromDomain creates a new persistence model from a domain Message entity.
func ContactMessageModelFromDomain(msg *contact.Message) *ContactMessageModel {
	m := &ContactMessageModel{}
	m.FromDomain(msg)
	return m
}
