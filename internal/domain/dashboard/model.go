package dashboard

import (
	"time"

	"github.com/google/uuid"
)

// Stats is the headline dashboard panel.
type Stats struct {
	AppointmentsToday    int                    `json:"appointments_today"`
	RevenueMonth         float64                `json:"revenue_month"`
	NewPatientsMonth     int                    `json:"new_patients_month"`
	UpcomingAppointments []*UpcomingAppointment `json:"upcoming_appointments"`
}

// UpcomingAppointment is a denormalized row for the dashboard agenda list.
type UpcomingAppointment struct {
	ID            uuid.UUID `db:"id" json:"id"`
	StartTime     time.Time `db:"start_time" json:"start_time"`
	Status        string    `db:"status" json:"status"`
	PatientName   string    `db:"patient_name" json:"patient_name"`
	ProcedureName string    `db:"procedure_name" json:"procedure_name"`
}

// RevenuePoint is one month of paid income for the revenue chart.
type RevenuePoint struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

// ProcedureCount ranks procedures by booking volume.
type ProcedureCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
