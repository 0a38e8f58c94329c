package domain

// Club has no draft stage; new clubs wait as pending.
type Club struct {
	ResourceMeta
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description"`
}

type ClubJoinRequest struct {
	Submission
	ClubID int64  `json:"club"`
	Reason string `json:"reason"`
}

func (r *ClubJoinRequest) ParentID() int64      { return r.ClubID }
func (r *ClubJoinRequest) SetParentID(id int64) { r.ClubID = id }
