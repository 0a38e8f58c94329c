package domain

type Internship struct {
	ResourceMeta
	Title               string  `json:"title" validate:"required,max=200"`
	Company             string  `json:"company" validate:"required,max=200"`
	Description         string  `json:"description"`
	Requirements        string  `json:"requirements"`
	Location            string  `json:"location" validate:"required,max=200"`
	InternshipType      string  `json:"internshipType" validate:"omitempty,oneof=full-time part-time remote hybrid"`
	DurationMonths      int     `json:"durationMonths" validate:"gte=0"`
	Stipend             string  `json:"stipend" validate:"max=100"`
	ApplicationDeadline string  `json:"applicationDeadline" validate:"required,datetime=2006-01-02"`
	Category            string  `json:"category" validate:"required,max=50"`
	BannerURL           *string `json:"bannerUrl" validate:"omitempty,bannerurl"`
}

func (i *Internship) ApplyDefaults() {
	if i.InternshipType == "" {
		i.InternshipType = "full-time"
	}
	if i.DurationMonths == 0 {
		i.DurationMonths = 3
	}
}

type InternshipApplication struct {
	Submission
	InternshipID int64  `json:"internship"`
	ResumeURL    string `json:"resumeUrl" validate:"omitempty,url"`
	CoverLetter  string `json:"coverLetter"`
}

func (a *InternshipApplication) ParentID() int64      { return a.InternshipID }
func (a *InternshipApplication) SetParentID(id int64) { a.InternshipID = id }
