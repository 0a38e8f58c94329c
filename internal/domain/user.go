package domain

import (
	"strings"
	"time"
)

type User struct {
	ID           int64        `json:"id"`
	Username     string       `json:"username" validate:"required,max=150"`
	Email        string       `json:"email" validate:"omitempty,email"`
	PasswordHash *string      `json:"-"`
	FirstName    string       `json:"first_name" validate:"max=150"`
	LastName     string       `json:"last_name" validate:"max=150"`
	IsStaff      bool         `json:"is_staff"`
	LastLogin    *time.Time   `json:"last_login"`
	DateJoined   time.Time    `json:"date_joined"`
	Profile      *UserProfile `json:"profile"`
}

// HasUsablePassword reports whether the account can log in with a password.
func (u *User) HasUsablePassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// DisplayName falls back to the username when no name is set.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// SetName splits a full name on whitespace: first word, then the rest.
// A single word keeps the stored last name.
func (u *User) SetName(name string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return
	}
	u.FirstName = parts[0]
	if len(parts) > 1 {
		u.LastName = strings.Join(parts[1:], " ")
	}
}

type UserProfile struct {
	UserID       int64     `json:"-"`
	Phone        string    `json:"phone"`
	CollegeName  string    `json:"college_name"`
	Branch       string    `json:"branch"`
	RollNumber   string    `json:"roll_number"`
	Semester     string    `json:"semester"`
	DateOfBirth  *string   `json:"date_of_birth"`
	Gender       string    `json:"gender"`
	ProfileImage string    `json:"profile_image"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// ProfileUpdate holds a partial profile write. A nil field was absent from the request.
type ProfileUpdate struct {
	Email        string
	Name         *string
	Phone        *string
	CollegeName  *string
	Branch       *string
	RollNumber   *string
	Semester     *string
	Gender       *string
	ProfileImage *string
	DateOfBirth  *string
}

// ActivityStats counts approved participation for one email address.
type ActivityStats struct {
	EventsAttended      int `json:"eventsAttended"`
	WorkshopsCompleted  int `json:"workshopsCompleted"`
	VolunteeringHours   int `json:"volunteeringHours"`
	ChallengesCompleted int `json:"challengesCompleted"`
}
