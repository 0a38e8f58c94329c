package jobs

import (
	"context"

	"unimitr-backend/internal/domain"
	"unimitr-backend/internal/logger"
	"unimitr-backend/internal/workflow"
)

// CloseExpiredInternships closes approved internships whose application
// deadline has passed.
func (jr *JobRunner) CloseExpiredInternships() {
	jr.runWithRecovery("CloseExpiredInternships", func() {
		n, err := closePast(context.Background(), jr.engines.Internships, jr.today(),
			func(i *domain.Internship) string { return i.ApplicationDeadline })
		if err != nil {
			logger.Error("Failed to close expired internships", "error", err)
			return
		}
		logger.Info("Closed expired internships", "count", n)
	})
}

// CloseFinishedVolunteering closes approved opportunities dated before today.
func (jr *JobRunner) CloseFinishedVolunteering() {
	jr.runWithRecovery("CloseFinishedVolunteering", func() {
		n, err := closePast(context.Background(), jr.engines.Volunteering, jr.today(),
			func(o *domain.VolunteeringOpportunity) string { return o.Date })
		if err != nil {
			logger.Error("Failed to close finished volunteering", "error", err)
			return
		}
		logger.Info("Closed finished volunteering opportunities", "count", n)
	})
}

// CompletePastAppointments marks confirmed appointments from earlier days as completed.
func (jr *JobRunner) CompletePastAppointments() {
	jr.runWithRecovery("CompletePastAppointments", func() {
		n, err := jr.completePastAppointments(context.Background())
		if err != nil {
			logger.Error("Failed to complete past appointments", "error", err)
			return
		}
		logger.Info("Completed past appointments", "count", n)
	})
}

// closePast goes through the engine so list caches are invalidated.
// A failed transition is logged and skipped.
func closePast[R domain.Resource, A domain.Action](ctx context.Context, e *workflow.Engine[R, A], cutoff string, dateOf func(R) string) (int, error) {
	live, err := e.ListResources(ctx, domain.StatusApproved)
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, r := range live {
		if d := dateOf(r); d == "" || d >= cutoff {
			continue
		}
		id := r.Core().ID
		if _, err := e.TransitionResource(ctx, id, domain.TransitionClose); err != nil {
			logger.Error("Failed to close record", "id", id, "error", err)
			continue
		}
		closed++
	}
	return closed, nil
}

func (jr *JobRunner) completePastAppointments(ctx context.Context) (int, error) {
	all, err := jr.appointments.List(ctx, "")
	if err != nil {
		return 0, err
	}

	cutoff := jr.today()
	count := 0
	for i := range all {
		a := &all[i]
		if a.Status != domain.AppointmentConfirmed || a.Date >= cutoff {
			continue
		}
		a.Status = domain.AppointmentCompleted
		if err := jr.appointments.Update(ctx, a); err != nil {
			logger.Error("Failed to complete appointment", "id", a.ID, "error", err)
			continue
		}
		count++
	}
	return count, nil
}
