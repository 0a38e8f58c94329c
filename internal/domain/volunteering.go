package domain

type VolunteeringOpportunity struct {
	ResourceMeta
	Title              string  `json:"title" validate:"required,max=200"`
	Description        string  `json:"description"`
	Organization       string  `json:"organization" validate:"required,max=200"`
	Location           string  `json:"location" validate:"required,max=200"`
	Date               string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time               string  `json:"time" validate:"required"`
	DurationHours      int     `json:"durationHours" validate:"gte=0"`
	RequiredVolunteers int     `json:"requiredVolunteers" validate:"gte=0"`
	Category           string  `json:"category" validate:"required,max=50"`
	BannerURL          *string `json:"bannerUrl" validate:"omitempty,bannerurl"`
}

func (o *VolunteeringOpportunity) ApplyDefaults() {
	if o.DurationHours == 0 {
		o.DurationHours = 1
	}
	if o.RequiredVolunteers == 0 {
		o.RequiredVolunteers = 1
	}
}

type VolunteeringApplication struct {
	Submission
	OpportunityID int64  `json:"opportunity"`
	Motivation    string `json:"motivation"`
}

func (a *VolunteeringApplication) ParentID() int64      { return a.OpportunityID }
func (a *VolunteeringApplication) SetParentID(id int64) { a.OpportunityID = id }
