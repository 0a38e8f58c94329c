package domain

type Workshop struct {
	ResourceMeta
	Title           string  `json:"title" validate:"required,max=200"`
	Description     string  `json:"description"`
	Instructor      string  `json:"instructor" validate:"required,max=200"`
	Organization    string  `json:"organization" validate:"max=200"`
	Date            string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time            string  `json:"time" validate:"required"`
	DurationHours   int     `json:"durationHours" validate:"gte=0"`
	Location        string  `json:"location" validate:"required,max=200"`
	Mode            string  `json:"mode" validate:"omitempty,oneof=online offline hybrid"`
	MaxParticipants int     `json:"maxParticipants" validate:"gte=0"`
	Fee             string  `json:"fee" validate:"max=100"`
	Category        string  `json:"category" validate:"required,max=50"`
	BannerURL       *string `json:"bannerUrl" validate:"omitempty,bannerurl"`
}

func (w *Workshop) ApplyDefaults() {
	if w.DurationHours == 0 {
		w.DurationHours = 2
	}
	if w.Mode == "" {
		w.Mode = "offline"
	}
	if w.MaxParticipants == 0 {
		w.MaxParticipants = 50
	}
}

type WorkshopRegistration struct {
	Submission
	WorkshopID   int64  `json:"workshop"`
	Expectations string `json:"expectations"`
}

func (r *WorkshopRegistration) ParentID() int64      { return r.WorkshopID }
func (r *WorkshopRegistration) SetParentID(id int64) { r.WorkshopID = id }
