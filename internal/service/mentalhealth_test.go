package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"unimitr-backend/internal/chat"
	"unimitr-backend/internal/domain"
	"unimitr-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMentalHealthService_ListCounsellors(t *testing.T) {
	ctx := context.Background()
	counsellors := new(MockCounsellorRepo)
	svc := service.NewMentalHealthService(counsellors, new(MockAppointmentRepo))

	counsellors.On("List", ctx).Return([]domain.Counsellor{
		{ID: 1, Name: "Dr. Sharma", Avatar: "DS"},
		{ID: 2, Name: "priya"},
	}, nil)
	counsellors.On("AvailableSlots", ctx).Return(map[int64][]string{1: {"9:00 AM"}}, nil)

	list, err := svc.ListCounsellors(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []string{"9:00 AM"}, list[0].AvailableSlots)
	assert.Equal(t, domain.DefaultCounsellorSlots, list[1].AvailableSlots)
	assert.Equal(t, "PR", list[1].Avatar)
}

func TestMentalHealthService_CreateCounsellor(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults", func(t *testing.T) {
		counsellors := new(MockCounsellorRepo)
		counsellors.On("Create", ctx, mock.AnythingOfType("*domain.Counsellor")).Return(nil)
		svc := service.NewMentalHealthService(counsellors, new(MockAppointmentRepo))

		c := &domain.Counsellor{Name: "Anil Mehta", Rating: 4.5, IsAvailable: true}
		require.NoError(t, svc.CreateCounsellor(ctx, c))
		assert.Equal(t, "General Wellness", c.Specialization)
		assert.Equal(t, "AN", c.Avatar)
	})

	t.Run("Name required", func(t *testing.T) {
		svc := service.NewMentalHealthService(new(MockCounsellorRepo), new(MockAppointmentRepo))
		err := svc.CreateCounsellor(ctx, &domain.Counsellor{Name: "  "})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Rating out of range", func(t *testing.T) {
		svc := service.NewMentalHealthService(new(MockCounsellorRepo), new(MockAppointmentRepo))
		err := svc.CreateCounsellor(ctx, &domain.Counsellor{Name: "X", Rating: 12})
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "rating", ve.Field)
	})
}

func TestMentalHealthService_BookAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("Confirmed with counsellor details", func(t *testing.T) {
		counsellors := new(MockCounsellorRepo)
		appointments := new(MockAppointmentRepo)
		counsellors.On("GetByID", ctx, int64(1)).Return(&domain.Counsellor{ID: 1, Name: "Dr. Sharma", Specialization: "Anxiety"}, nil)
		appointments.On("Create", ctx, mock.AnythingOfType("*domain.Appointment")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Appointment).ID = 11
		}).Return(nil)
		svc := service.NewMentalHealthService(counsellors, appointments)

		a, err := svc.BookAppointment(ctx, 1, "10:00 AM", "s@uni.edu")
		require.NoError(t, err)
		assert.Equal(t, int64(11), a.ID)
		assert.Equal(t, domain.AppointmentConfirmed, a.Status)
		assert.Equal(t, "Dr. Sharma", a.CounsellorName)
		assert.Equal(t, "Anxiety", a.Specialization)
	})

	t.Run("Missing fields", func(t *testing.T) {
		svc := service.NewMentalHealthService(new(MockCounsellorRepo), new(MockAppointmentRepo))
		for _, tc := range []struct {
			id          int64
			slot, email string
		}{{0, "10:00 AM", "a@b.c"}, {1, "", "a@b.c"}, {1, "10:00 AM", ""}} {
			_, err := svc.BookAppointment(ctx, tc.id, tc.slot, tc.email)
			assert.ErrorIs(t, err, domain.ErrValidation)
		}
	})

	t.Run("Unknown counsellor", func(t *testing.T) {
		counsellors := new(MockCounsellorRepo)
		counsellors.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrNotFound)
		svc := service.NewMentalHealthService(counsellors, new(MockAppointmentRepo))

		_, err := svc.BookAppointment(ctx, 99, "10:00 AM", "a@b.c")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestMentalHealthService_Appointments(t *testing.T) {
	ctx := context.Background()

	t.Run("All ignores email", func(t *testing.T) {
		appointments := new(MockAppointmentRepo)
		appointments.On("List", ctx, "").Return([]domain.Appointment{{ID: 1}, {ID: 2}}, nil)
		svc := service.NewMentalHealthService(new(MockCounsellorRepo), appointments)

		list, err := svc.ListAppointments(ctx, "a@b.c", true)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("Invalid status", func(t *testing.T) {
		appointments := new(MockAppointmentRepo)
		appointments.On("GetByID", ctx, int64(1)).Return(&domain.Appointment{ID: 1, Status: domain.AppointmentConfirmed}, nil)
		svc := service.NewMentalHealthService(new(MockCounsellorRepo), appointments)

		bad := domain.AppointmentStatus("lost")
		_, err := svc.UpdateAppointment(ctx, 1, &bad, nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
		appointments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Notes only", func(t *testing.T) {
		appointments := new(MockAppointmentRepo)
		existing := &domain.Appointment{ID: 1, Status: domain.AppointmentConfirmed}
		appointments.On("GetByID", ctx, int64(1)).Return(existing, nil)
		appointments.On("Update", ctx, existing).Return(nil)
		svc := service.NewMentalHealthService(new(MockCounsellorRepo), appointments)

		notes := "follow up next week"
		got, err := svc.UpdateAppointment(ctx, 1, nil, &notes)
		require.NoError(t, err)
		assert.Equal(t, domain.AppointmentConfirmed, got.Status)
		assert.Equal(t, notes, got.Notes)
	})
}

func TestChatService_Reply(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty message", func(t *testing.T) {
		svc := service.NewChatService(new(MockChatClient))
		_, err := svc.Reply(ctx, "   ")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Prompt wraps message", func(t *testing.T) {
		client := new(MockChatClient)
		client.On("Generate", ctx, mock.MatchedBy(func(p string) bool {
			return strings.Contains(p, "Kind Friend") && strings.Contains(p, "User message: 'I feel low'")
		})).Return(&chat.Completion{Text: "I'm here for you 💙"}, nil)
		svc := service.NewChatService(client)

		got, err := svc.Reply(ctx, "I feel low")
		require.NoError(t, err)
		assert.Equal(t, "I'm here for you 💙", got.Text)
	})

	t.Run("Provider error passes through", func(t *testing.T) {
		client := new(MockChatClient)
		perr := &chat.ProviderError{Status: 429, Details: "quota"}
		client.On("Generate", ctx, mock.Anything).Return(nil, perr)
		svc := service.NewChatService(client)

		_, err := svc.Reply(ctx, "hi")
		var got *chat.ProviderError
		require.True(t, errors.As(err, &got))
		assert.Equal(t, 429, got.Status)
	})

	t.Run("No client configured", func(t *testing.T) {
		svc := service.NewChatService(nil)
		_, err := svc.Reply(ctx, "hi")
		assert.ErrorIs(t, err, service.ErrChatUnavailable)
	})
}
