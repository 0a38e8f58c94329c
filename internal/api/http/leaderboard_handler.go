package http

import (
	"net/http"

	"unimitr-backend/internal/domain"
	"unimitr-backend/internal/service"
)

type LeaderboardHandler struct {
	svc service.LeaderboardService
}

func NewLeaderboardHandler(svc service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc}
}

type leaderboardRow struct {
	ID                int64                      `json:"id"`
	Rank              int                        `json:"rank"`
	Name              string                     `json:"name"`
	University        string                     `json:"university"`
	Points            int                        `json:"points"`
	Avatar            string                     `json:"avatar"`
	Emoji             string                     `json:"emoji"`
	Category          domain.LeaderboardCategory `json:"category"`
	IsUniversity      bool                       `json:"isUniversity"`
	IsUniversityEntry bool                       `json:"is_university_entry"`
}

type leaderboardRequest struct {
	Name              *string                     `json:"name"`
	University        *string                     `json:"university"`
	Points            *int                        `json:"points"`
	Avatar            *string                     `json:"avatar"`
	Emoji             *string                     `json:"emoji"`
	Category          *domain.LeaderboardCategory `json:"category"`
	IsUniversityEntry *bool                       `json:"is_university_entry"`
}

func (req leaderboardRequest) patch() domain.LeaderboardPatch {
	return domain.LeaderboardPatch{
		Name:              req.Name,
		University:        req.University,
		Points:            req.Points,
		Avatar:            req.Avatar,
		Emoji:             req.Emoji,
		Category:          req.Category,
		IsUniversityEntry: req.IsUniversityEntry,
	}
}

func (h *LeaderboardHandler) List(w http.ResponseWriter, r *http.Request) {
	category := domain.LeaderboardCategory(r.URL.Query().Get("category"))
	ranked, err := h.svc.List(r.Context(), category)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rows := make([]leaderboardRow, len(ranked))
	for i, e := range ranked {
		rows[i] = leaderboardRow{
			ID:                e.ID,
			Rank:              e.Rank,
			Name:              e.Name,
			University:        e.University,
			Points:            e.Points,
			Avatar:            e.Avatar,
			Emoji:             e.Emoji,
			Category:          e.Category,
			IsUniversity:      e.IsUniversityEntry,
			IsUniversityEntry: e.IsUniversityEntry,
		}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *LeaderboardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req leaderboardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	entry := &domain.LeaderboardEntry{}
	req.patch().Apply(entry)
	if err := h.svc.Create(r.Context(), entry); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": entry.ID, "message": "Created successfully"})
}

func (h *LeaderboardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req leaderboardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	entry, err := h.svc.Update(r.Context(), id, req.patch())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": entry.ID, "message": "Updated successfully"})
}

func (h *LeaderboardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted successfully"})
}
