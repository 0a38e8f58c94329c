package postgres

import (
	"database/sql"

	"unimitr-backend/internal/domain"
	"unimitr-backend/internal/repository"
)

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return newWorkflowRepository(db,
		resourceTable[*domain.Event]{
			name: "events",
			columns: []column{
				col("title"), col("description"), textCol("date"), textCol("time"),
				col("location"), col("category"), col("banner_url"),
			},
			newRow: func() *domain.Event { return &domain.Event{} },
			fields: func(e *domain.Event) []any {
				return []any{&e.Title, &e.Description, &e.Date, &e.Time, &e.Location, &e.Category, &e.BannerURL}
			},
		},
		actionTable[*domain.EventRegistration]{
			name:   "event_registrations",
			parent: "event_id",
			newRow: func() *domain.EventRegistration { return &domain.EventRegistration{} },
			fields: func(*domain.EventRegistration) []any { return nil },
		},
	)
}

func NewClubRepository(db *sql.DB) repository.ClubRepository {
	return newWorkflowRepository(db,
		resourceTable[*domain.Club]{
			name:    "clubs",
			columns: []column{col("name"), col("description")},
			newRow:  func() *domain.Club { return &domain.Club{} },
			fields: func(c *domain.Club) []any {
				return []any{&c.Name, &c.Description}
			},
		},
		actionTable[*domain.ClubJoinRequest]{
			name:   "club_join_requests",
			parent: "club_id",
			extra:  []column{col("reason")},
			newRow: func() *domain.ClubJoinRequest { return &domain.ClubJoinRequest{} },
			fields: func(r *domain.ClubJoinRequest) []any { return []any{&r.Reason} },
		},
	)
}

func NewVolunteeringRepository(db *sql.DB) repository.VolunteeringRepository {
	return newWorkflowRepository(db,
		resourceTable[*domain.VolunteeringOpportunity]{
			name: "volunteering_opportunities",
			columns: []column{
				col("title"), col("description"), col("organization"), col("location"),
				textCol("date"), textCol("time"), col("duration_hours"), col("required_volunteers"),
				col("category"), col("banner_url"),
			},
			newRow: func() *domain.VolunteeringOpportunity { return &domain.VolunteeringOpportunity{} },
			fields: func(o *domain.VolunteeringOpportunity) []any {
				return []any{
					&o.Title, &o.Description, &o.Organization, &o.Location,
					&o.Date, &o.Time, &o.DurationHours, &o.RequiredVolunteers,
					&o.Category, &o.BannerURL,
				}
			},
		},
		actionTable[*domain.VolunteeringApplication]{
			name:   "volunteering_applications",
			parent: "opportunity_id",
			extra:  []column{col("motivation")},
			newRow: func() *domain.VolunteeringApplication { return &domain.VolunteeringApplication{} },
			fields: func(a *domain.VolunteeringApplication) []any { return []any{&a.Motivation} },
		},
	)
}

func NewInternshipRepository(db *sql.DB) repository.InternshipRepository {
	return newWorkflowRepository(db,
		resourceTable[*domain.Internship]{
			name: "internships",
			columns: []column{
				col("title"), col("company"), col("description"), col("requirements"), col("location"),
				col("internship_type"), col("duration_months"), col("stipend"),
				textCol("application_deadline"), col("category"), col("banner_url"),
			},
			newRow: func() *domain.Internship { return &domain.Internship{} },
			fields: func(i *domain.Internship) []any {
				return []any{
					&i.Title, &i.Company, &i.Description, &i.Requirements, &i.Location,
					&i.InternshipType, &i.DurationMonths, &i.Stipend,
					&i.ApplicationDeadline, &i.Category, &i.BannerURL,
				}
			},
		},
		actionTable[*domain.InternshipApplication]{
			name:   "internship_applications",
			parent: "internship_id",
			extra:  []column{col("resume_url"), col("cover_letter")},
			newRow: func() *domain.InternshipApplication { return &domain.InternshipApplication{} },
			fields: func(a *domain.InternshipApplication) []any { return []any{&a.ResumeURL, &a.CoverLetter} },
		},
	)
}

func NewWorkshopRepository(db *sql.DB) repository.WorkshopRepository {
	return newWorkflowRepository(db,
		resourceTable[*domain.Workshop]{
			name: "workshops",
			columns: []column{
				col("title"), col("description"), col("instructor"), col("organization"),
				textCol("date"), textCol("time"), col("duration_hours"), col("location"),
				col("mode"), col("max_participants"), col("fee"), col("category"), col("banner_url"),
			},
			newRow: func() *domain.Workshop { return &domain.Workshop{} },
			fields: func(w *domain.Workshop) []any {
				return []any{
					&w.Title, &w.Description, &w.Instructor, &w.Organization,
					&w.Date, &w.Time, &w.DurationHours, &w.Location,
					&w.Mode, &w.MaxParticipants, &w.Fee, &w.Category, &w.BannerURL,
				}
			},
		},
		actionTable[*domain.WorkshopRegistration]{
			name:   "workshop_registrations",
			parent: "workshop_id",
			extra:  []column{col("expectations")},
			newRow: func() *domain.WorkshopRegistration { return &domain.WorkshopRegistration{} },
			fields: func(r *domain.WorkshopRegistration) []any { return []any{&r.Expectations} },
		},
	)
}
