package domain

import "time"

// ResourceMeta carries the lifecycle columns every content resource has.
type ResourceMeta struct {
	ID        int64     `json:"id"`
	Status    Status    `json:"status"`
	CreatedBy *int64    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *ResourceMeta) Core() *ResourceMeta { return m }

// Submission carries the submitter identity every action record has.
type Submission struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"fullName" validate:"required,max=200"`
	StudentID string    `json:"studentId" validate:"required,max=100"`
	Email     string    `json:"email" validate:"required,email"`
	Phone     string    `json:"phone" validate:"max=30"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Submission) Core() *Submission { return s }

// Resource is a content item with a status lifecycle.
type Resource interface {
	Core() *ResourceMeta
}

// Action is a user's request against exactly one Resource.
type Action interface {
	Core() *Submission
	ParentID() int64
	SetParentID(id int64)
}

// Defaulter is implemented by records that fill unset optional fields on create.
type Defaulter interface {
	ApplyDefaults()
}
