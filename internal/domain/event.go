package domain

type Event struct {
	ResourceMeta
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string  `json:"time" validate:"required"`
	Location    string  `json:"location" validate:"required,max=200"`
	Category    string  `json:"category" validate:"required,max=50"`
	BannerURL   *string `json:"bannerUrl" validate:"omitempty,bannerurl"`
}

type EventRegistration struct {
	Submission
	EventID int64 `json:"event"`
}

func (r *EventRegistration) ParentID() int64      { return r.EventID }
func (r *EventRegistration) SetParentID(id int64) { r.EventID = id }
