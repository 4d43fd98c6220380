package patients

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the pacientes table.
type Patient struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	FullName       string     `db:"full_name" json:"full_name"`
	Email          *string    `db:"email" json:"email,omitempty"`
	Phone          *string    `db:"phone" json:"phone,omitempty"`
	WhatsAppNumber *string    `db:"whatsapp_number" json:"whatsapp_number,omitempty"`
	CPF            *string    `db:"cpf" json:"cpf,omitempty"`
	BirthDate      *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Gender         *string    `db:"gender" json:"gender,omitempty"`
	Address        *string    `db:"address" json:"address,omitempty"`
	Observations   *string    `db:"observations" json:"observations,omitempty"`
	Tags           []string   `db:"tags" json:"tags,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// PatientUpdate carries the optional fields of a partial update.
type PatientUpdate struct {
	FullName       *string    `json:"full_name,omitempty"`
	Email          *string    `json:"email,omitempty"`
	Phone          *string    `json:"phone,omitempty"`
	WhatsAppNumber *string    `json:"whatsapp_number,omitempty"`
	CPF            *string    `json:"cpf,omitempty"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	Gender         *string    `json:"gender,omitempty"`
	Address        *string    `json:"address,omitempty"`
	Observations   *string    `json:"observations,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
}

// Apply copies the non-nil update fields onto the patient.
func (u *PatientUpdate) Apply(p *Patient) {
	if u.FullName != nil {
		p.FullName = *u.FullName
	}
	if u.Email != nil {
		p.Email = u.Email
	}
	if u.Phone != nil {
		p.Phone = u.Phone
	}
	if u.WhatsAppNumber != nil {
		p.WhatsAppNumber = u.WhatsAppNumber
	}
	if u.CPF != nil {
		p.CPF = u.CPF
	}
	if u.BirthDate != nil {
		p.BirthDate = u.BirthDate
	}
	if u.Gender != nil {
		p.Gender = u.Gender
	}
	if u.Address != nil {
		p.Address = u.Address
	}
	if u.Observations != nil {
		p.Observations = u.Observations
	}
	if u.Tags != nil {
		p.Tags = u.Tags
	}
}
