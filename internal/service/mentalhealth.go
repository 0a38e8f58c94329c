package service

import (
	"context"
	"strings"

	"unimitr-backend/internal/domain"
	"unimitr-backend/internal/logger"
	"unimitr-backend/internal/repository"
)

type mentalHealthService struct {
	counsellors  repository.CounsellorRepository
	appointments repository.AppointmentRepository
}

func NewMentalHealthService(counsellors repository.CounsellorRepository, appointments repository.AppointmentRepository) MentalHealthService {
	return &mentalHealthService{counsellors: counsellors, appointments: appointments}
}

// ListCounsellors attaches open slots. Counsellors without any advertise the default slots.
func (s *mentalHealthService) ListCounsellors(ctx context.Context) ([]domain.Counsellor, error) {
	list, err := s.counsellors.List(ctx)
	if err != nil {
		return nil, err
	}
	slots, err := s.counsellors.AvailableSlots(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		c := &list[i]
		if c.Avatar == "" {
			c.Avatar = c.Initials()
		}
		if open := slots[c.ID]; len(open) > 0 {
			c.AvailableSlots = open
		} else {
			c.AvailableSlots = append([]string(nil), domain.DefaultCounsellorSlots...)
		}
	}
	return list, nil
}

func (s *mentalHealthService) GetCounsellor(ctx context.Context, id int64) (*domain.Counsellor, error) {
	return s.counsellors.GetByID(ctx, id)
}

func (s *mentalHealthService) CreateCounsellor(ctx context.Context, c *domain.Counsellor) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return domain.NewValidationError("name", "name is required")
	}
	if c.Specialization == "" {
		c.Specialization = "General Wellness"
	}
	if c.Avatar == "" {
		c.Avatar = c.Initials()
	}
	if err := domain.Validate(c); err != nil {
		return err
	}
	return s.counsellors.Create(ctx, c)
}

func (s *mentalHealthService) UpdateCounsellor(ctx context.Context, id int64, patch domain.CounsellorPatch) (*domain.Counsellor, error) {
	c, err := s.counsellors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(c)
	if err := domain.Validate(c); err != nil {
		return nil, err
	}
	if err := s.counsellors.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *mentalHealthService) DeleteCounsellor(ctx context.Context, id int64) error {
	return s.counsellors.Delete(ctx, id)
}

// BookAppointment confirms a slot with a counsellor for today.
func (s *mentalHealthService) BookAppointment(ctx context.Context, counsellorID int64, slot, email string) (*domain.Appointment, error) {
	logger.EnterMethod("mentalHealthService.BookAppointment", "counsellorID", counsellorID, "email", email)
	slot, email = strings.TrimSpace(slot), strings.TrimSpace(email)
	if counsellorID == 0 || slot == "" || email == "" {
		return nil, domain.NewValidationError("", "counsellor_id, slot, and email are required")
	}

	c, err := s.counsellors.GetByID(ctx, counsellorID)
	if err != nil {
		logger.ExitMethodWithError("mentalHealthService.BookAppointment", err, "counsellorID", counsellorID)
		return nil, err
	}
	a := &domain.Appointment{
		CounsellorID:   c.ID,
		CounsellorName: c.Name,
		Specialization: c.Specialization,
		UserEmail:      email,
		Slot:           slot,
		Status:         domain.AppointmentConfirmed,
	}
	if err := s.appointments.Create(ctx, a); err != nil {
		return nil, err
	}
	logger.ExitMethod("mentalHealthService.BookAppointment", "appointmentID", a.ID)
	return a, nil
}

// ListAppointments returns every appointment when all is set or no email is given.
func (s *mentalHealthService) ListAppointments(ctx context.Context, email string, all bool) ([]domain.Appointment, error) {
	if all {
		email = ""
	}
	return s.appointments.List(ctx, strings.TrimSpace(email))
}

var appointmentStatuses = map[domain.AppointmentStatus]bool{
	domain.AppointmentPending:   true,
	domain.AppointmentConfirmed: true,
	domain.AppointmentCompleted: true,
	domain.AppointmentCancelled: true,
}

func (s *mentalHealthService) UpdateAppointment(ctx context.Context, id int64, status *domain.AppointmentStatus, notes *string) (*domain.Appointment, error) {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if status != nil {
		if !appointmentStatuses[*status] {
			return nil, domain.NewValidationError("status", "\""+string(*status)+"\" is not a valid choice")
		}
		a.Status = *status
	}
	if notes != nil {
		a.Notes = *notes
	}
	if err := s.appointments.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *mentalHealthService) DeleteAppointment(ctx context.Context, id int64) error {
	return s.appointments.Delete(ctx, id)
}
