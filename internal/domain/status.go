package domain

// Status is the lifecycle value shared by resources and action records.
type Status string

const (
	StatusDraft       Status = "draft"
	StatusPublished   Status = "published"
	StatusPending     Status = "pending"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusClosed      Status = "closed"
	StatusCompleted   Status = "completed"
	StatusShortlisted Status = "shortlisted"
	StatusAttended    Status = "attended"
)

// Transition names an operation that overwrites a record's status.
type Transition string

const (
	TransitionApprove      Transition = "approve"
	TransitionReject       Transition = "reject"
	TransitionClose        Transition = "close"
	TransitionComplete     Transition = "complete"
	TransitionShortlist    Transition = "shortlist"
	TransitionMarkAttended Transition = "mark-attended"
)

// Kind identifies a content domain. The value doubles as the URL segment.
type Kind string

const (
	KindEvents       Kind = "events"
	KindClubs        Kind = "clubs"
	KindVolunteering Kind = "volunteering"
	KindInternships  Kind = "internships"
	KindWorkshops    Kind = "workshops"
)

// Kinds lists every content domain in a stable order.
var Kinds = []Kind{KindEvents, KindClubs, KindVolunteering, KindInternships, KindWorkshops}
