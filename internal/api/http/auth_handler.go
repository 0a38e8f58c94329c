package http

import (
	"errors"
	"net/http"
	"time"

	"unimitr-backend/internal/domain"
	"unimitr-backend/internal/service"
)

type AuthHandler struct {
	authSvc    service.AuthService
	profileSvc service.ProfileService
}

func NewAuthHandler(authSvc service.AuthService, profileSvc service.ProfileService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, profileSvc: profileSvc}
}

type sessionResponse struct {
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	User    *domain.User `json:"user"`
}

func writeSession(w http.ResponseWriter, s *service.Session) {
	writeJSON(w, http.StatusOK, sessionResponse{Access: s.Access, Refresh: s.Refresh, User: s.User})
}

func (h *AuthHandler) authError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		writeDetail(w, http.StatusUnauthorized, err.Error())
	default:
		writeError(w, r, err)
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	identifier := req.Email
	if identifier == "" {
		identifier = req.Username
	}
	session, err := h.authSvc.Login(r.Context(), identifier, req.Password)
	if err != nil {
		h.authError(w, r, err)
		return
	}
	writeSession(w, session)
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.authSvc.Signup(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	access, err := h.authSvc.Refresh(r.Context(), req.Refresh)
	if err != nil {
		h.authError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"access": access})
}

func (h *AuthHandler) CompatLogin(w http.ResponseWriter, r *http.Request) {
	var req service.CompatLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	session, err := h.authSvc.CompatLogin(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSession(w, session)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	user, err := h.authSvc.Me(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.authSvc.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

type profileSummary struct {
	Phone       string `json:"phone"`
	CollegeName string `json:"collegeName"`
	Branch      string `json:"branch"`
	RollNumber  string `json:"rollNumber"`
	Semester    string `json:"semester"`
}

type dashboardUser struct {
	ID          int64           `json:"id"`
	Username    string          `json:"username"`
	Email       string          `json:"email"`
	Name        string          `json:"name"`
	IsStaff     bool            `json:"isStaff"`
	DateJoined  string          `json:"dateJoined"`
	LastLogin   string          `json:"lastLogin"`
	HasPassword bool            `json:"hasPassword"`
	Profile     *profileSummary `json:"profile"`
}

// AllUsers is the admin dashboard view of every account.
func (h *AuthHandler) AllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.authSvc.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]dashboardUser, 0, len(users))
	for _, u := range users {
		d := dashboardUser{
			ID:          u.ID,
			Username:    u.Username,
			Email:       u.Email,
			Name:        u.DisplayName(),
			IsStaff:     u.IsStaff,
			DateJoined:  u.DateJoined.Format(time.RFC3339),
			HasPassword: u.HasUsablePassword(),
		}
		if u.LastLogin != nil {
			d.LastLogin = u.LastLogin.Format(time.RFC3339)
		}
		if p := u.Profile; p != nil {
			d.Profile = &profileSummary{
				Phone:       p.Phone,
				CollegeName: p.CollegeName,
				Branch:      p.Branch,
				RollNumber:  p.RollNumber,
				Semester:    p.Semester,
			}
		}
		out = append(out, d)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *AuthHandler) ActivityStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.profileSvc.ActivityStats(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type profileView struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	CollegeName  string `json:"collegeName"`
	Branch       string `json:"branch"`
	RollNumber   string `json:"rollNumber"`
	Semester     string `json:"semester"`
	DateOfBirth  string `json:"dateOfBirth"`
	Gender       string `json:"gender"`
	ProfileImage string `json:"profileImage"`
}

func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.profileSvc.GetProfile(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	p := user.Profile
	view := profileView{
		Name:         user.DisplayName(),
		Email:        user.Email,
		Phone:        p.Phone,
		CollegeName:  p.CollegeName,
		Branch:       p.Branch,
		RollNumber:   p.RollNumber,
		Semester:     p.Semester,
		Gender:       p.Gender,
		ProfileImage: p.ProfileImage,
	}
	if p.DateOfBirth != nil {
		view.DateOfBirth = *p.DateOfBirth
	}
	writeJSON(w, http.StatusOK, view)
}

// UpdateProfile keeps the absent/empty distinction: a missing or null key
// decodes to nil and leaves the stored value alone.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email        string  `json:"email"`
		Name         *string `json:"name"`
		Phone        *string `json:"phone"`
		CollegeName  *string `json:"collegeName"`
		Branch       *string `json:"branch"`
		RollNumber   *string `json:"rollNumber"`
		Semester     *string `json:"semester"`
		DateOfBirth  *string `json:"dateOfBirth"`
		Gender       *string `json:"gender"`
		ProfileImage *string `json:"profileImage"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.profileSvc.UpdateProfile(r.Context(), domain.ProfileUpdate{
		Email:        req.Email,
		Name:         req.Name,
		Phone:        req.Phone,
		CollegeName:  req.CollegeName,
		Branch:       req.Branch,
		RollNumber:   req.RollNumber,
		Semester:     req.Semester,
		DateOfBirth:  req.DateOfBirth,
		Gender:       req.Gender,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	p := user.Profile
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Profile saved successfully",
		"saved": map[string]string{
			"phone":       p.Phone,
			"collegeName": p.CollegeName,
			"branch":      p.Branch,
		},
	})
}
