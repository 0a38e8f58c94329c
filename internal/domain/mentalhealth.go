package domain

import (
	"strings"
	"time"
)

// DefaultCounsellorSlots is advertised when a counsellor has no open slot rows.
var DefaultCounsellorSlots = []string{"10:00 AM", "2:00 PM", "4:00 PM"}

type Counsellor struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name" validate:"required,max=200"`
	Specialization string    `json:"specialization" validate:"max=200"`
	Avatar         string    `json:"avatar" validate:"max=10"`
	Rating         float64   `json:"rating" validate:"gte=0,lte=9.9"`
	Bio            string    `json:"bio"`
	IsAvailable    bool      `json:"is_available"`
	CreatedAt      time.Time `json:"-"`
	AvailableSlots []string  `json:"available_slots,omitempty"`
}

// Initials derives the avatar text used when none was given.
func (c *Counsellor) Initials() string {
	if c.Name == "" {
		return "??"
	}
	r := []rune(c.Name)
	if len(r) > 2 {
		r = r[:2]
	}
	return strings.ToUpper(string(r))
}

type CounsellorSlot struct {
	ID           int64  `json:"id"`
	CounsellorID int64  `json:"counsellor_id"`
	TimeSlot     string `json:"time_slot"`
	Day          string `json:"day"`
	IsAvailable  bool   `json:"is_available"`
}

// CounsellorPatch overwrites only the non-nil fields.
type CounsellorPatch struct {
	Name           *string
	Specialization *string
	Bio            *string
	Rating         *float64
	IsAvailable    *bool
	Avatar         *string
}

func (p CounsellorPatch) Apply(c *Counsellor) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Specialization != nil {
		c.Specialization = *p.Specialization
	}
	if p.Bio != nil {
		c.Bio = *p.Bio
	}
	if p.Rating != nil {
		c.Rating = *p.Rating
	}
	if p.IsAvailable != nil {
		c.IsAvailable = *p.IsAvailable
	}
	if p.Avatar != nil {
		c.Avatar = *p.Avatar
	}
}

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID             int64             `json:"id"`
	CounsellorID   int64             `json:"counsellor_id"`
	CounsellorName string            `json:"counsellor"`
	Specialization string            `json:"specialization"`
	UserEmail      string            `json:"user_email"`
	Slot           string            `json:"slot"`
	Date           string            `json:"date"`
	Status         AppointmentStatus `json:"status"`
	Notes          string            `json:"notes"`
	CreatedAt      time.Time         `json:"-"`
}
