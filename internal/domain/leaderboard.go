package domain

import "time"

type LeaderboardCategory string

const (
	LeaderboardGlobal     LeaderboardCategory = "global"
	LeaderboardUniversity LeaderboardCategory = "university"
	LeaderboardFriends    LeaderboardCategory = "friends"
	LeaderboardAll        LeaderboardCategory = "all"
)

const DefaultLeaderboardEmoji = "⭐"

type LeaderboardEntry struct {
	ID                int64               `json:"id"`
	Name              string              `json:"name"`
	University        string              `json:"university"`
	Points            int                 `json:"points"`
	Avatar            string              `json:"avatar"`
	Emoji             string              `json:"emoji"`
	Category          LeaderboardCategory `json:"category"`
	IsUniversityEntry bool                `json:"is_university_entry"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// RankedEntry is a leaderboard row with its 1-based position in a read.
type RankedEntry struct {
	Rank int
	LeaderboardEntry
}

// LeaderboardPatch overwrites only the non-nil fields.
type LeaderboardPatch struct {
	Name              *string
	University        *string
	Points            *int
	Avatar            *string
	Emoji             *string
	Category          *LeaderboardCategory
	IsUniversityEntry *bool
}

func (p LeaderboardPatch) Apply(e *LeaderboardEntry) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.University != nil {
		e.University = *p.University
	}
	if p.Points != nil {
		e.Points = *p.Points
	}
	if p.Avatar != nil {
		e.Avatar = *p.Avatar
	}
	if p.Emoji != nil {
		e.Emoji = *p.Emoji
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.IsUniversityEntry != nil {
		e.IsUniversityEntry = *p.IsUniversityEntry
	}
}
