package workflow

import (
	"slices"

	"unimitr-backend/internal/domain"
)

var publishable = []domain.Status{
	domain.StatusDraft,
	domain.StatusPublished,
	domain.StatusPending,
	domain.StatusApproved,
	domain.StatusRejected,
}

func reviewTransitions() map[domain.Transition]domain.Status {
	return map[domain.Transition]domain.Status{
		domain.TransitionApprove: domain.StatusApproved,
		domain.TransitionReject:  domain.StatusRejected,
	}
}

func with(base map[domain.Transition]domain.Status, t domain.Transition, s domain.Status) map[domain.Transition]domain.Status {
	base[t] = s
	return base
}

var (
	Events = Definition{
		Kind:                domain.KindEvents,
		InitialStatus:       domain.StatusDraft,
		Statuses:            publishable,
		ResourceTransitions: reviewTransitions(),
		ActionTransitions:   reviewTransitions(),
	}

	Clubs = Definition{
		Kind:                domain.KindClubs,
		InitialStatus:       domain.StatusPending,
		Statuses:            []domain.Status{domain.StatusPending, domain.StatusApproved, domain.StatusRejected},
		ResourceTransitions: reviewTransitions(),
		ActionTransitions:   reviewTransitions(),
		PhoneOptional:       true,
	}

	Volunteering = Definition{
		Kind:                domain.KindVolunteering,
		InitialStatus:       domain.StatusDraft,
		Statuses:            append(slices.Clone(publishable), domain.StatusClosed),
		ResourceTransitions: with(reviewTransitions(), domain.TransitionClose, domain.StatusClosed),
		ActionTransitions:   reviewTransitions(),
	}

	Internships = Definition{
		Kind:                domain.KindInternships,
		InitialStatus:       domain.StatusDraft,
		Statuses:            append(slices.Clone(publishable), domain.StatusClosed),
		ResourceTransitions: with(reviewTransitions(), domain.TransitionClose, domain.StatusClosed),
		ActionTransitions:   with(reviewTransitions(), domain.TransitionShortlist, domain.StatusShortlisted),
	}

	Workshops = Definition{
		Kind:                domain.KindWorkshops,
		InitialStatus:       domain.StatusDraft,
		Statuses:            append(slices.Clone(publishable), domain.StatusCompleted),
		ResourceTransitions: with(reviewTransitions(), domain.TransitionComplete, domain.StatusCompleted),
		ActionTransitions:   with(reviewTransitions(), domain.TransitionMarkAttended, domain.StatusAttended),
	}
)

