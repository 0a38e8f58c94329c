package http

import (
	"errors"
	"net/http"

	"unimitr-backend/internal/chat"
	"unimitr-backend/internal/domain"
	"unimitr-backend/internal/service"
)

type MentalHealthHandler struct {
	svc     service.MentalHealthService
	chatSvc service.ChatService
}

func NewMentalHealthHandler(svc service.MentalHealthService, chatSvc service.ChatService) *MentalHealthHandler {
	return &MentalHealthHandler{svc: svc, chatSvc: chatSvc}
}

type counsellorRequest struct {
	Name           *string  `json:"name"`
	Specialization *string  `json:"specialization"`
	Bio            *string  `json:"bio"`
	Rating         *float64 `json:"rating"`
	IsAvailable    *bool    `json:"is_available"`
	Avatar         *string  `json:"avatar"`
}

func (req counsellorRequest) patch() domain.CounsellorPatch {
	return domain.CounsellorPatch{
		Name:           req.Name,
		Specialization: req.Specialization,
		Bio:            req.Bio,
		Rating:         req.Rating,
		IsAvailable:    req.IsAvailable,
		Avatar:         req.Avatar,
	}
}

func (h *MentalHealthHandler) ListCounsellors(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListCounsellors(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *MentalHealthHandler) CreateCounsellor(w http.ResponseWriter, r *http.Request) {
	var req counsellorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	c := &domain.Counsellor{Rating: 4.5, IsAvailable: true}
	req.patch().Apply(c)
	if err := h.svc.CreateCounsellor(r.Context(), c); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *MentalHealthHandler) GetCounsellor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.svc.GetCounsellor(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *MentalHealthHandler) UpdateCounsellor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req counsellorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.svc.UpdateCounsellor(r.Context(), id, req.patch())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *MentalHealthHandler) DeleteCounsellor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.DeleteCounsellor(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MentalHealthHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.svc.ListAppointments(r.Context(), q.Get("email"), q.Get("all") == "true")
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *MentalHealthHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CounsellorID flexibleID `json:"counsellor_id"`
		Slot         string     `json:"slot"`
		Email        string     `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	a, err := h.svc.BookAppointment(r.Context(), int64(req.CounsellorID), req.Slot, req.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":         a.ID,
		"message":    "Appointment booked successfully",
		"counsellor": a.CounsellorName,
		"slot":       a.Slot,
	})
}

func (h *MentalHealthHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req struct {
		Status *domain.AppointmentStatus `json:"status"`
		Notes  *string                   `json:"notes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	a, err := h.svc.UpdateAppointment(r.Context(), id, req.Status, req.Notes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": a.ID, "status": a.Status, "notes": a.Notes})
}

func (h *MentalHealthHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.DeleteAppointment(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Chat relays the provider's response body unchanged on success.
func (h *MentalHealthHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	completion, err := h.chatSvc.Reply(r.Context(), req.Message)
	var perr *chat.ProviderError
	switch {
	case err == nil && len(completion.Raw) == 0:
		writeJSON(w, http.StatusOK, map[string]string{"text": completion.Text})
	case err == nil:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(completion.Raw)
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No message provided"})
	case errors.As(err, &perr):
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "Gemini API error",
			"status":  perr.Status,
			"details": perr.Details,
		})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
