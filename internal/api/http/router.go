package http

import (
	"net/http"

	"unimitr-backend/internal/service"

	"github.com/gorilla/mux"
)

// Registrar mounts one content domain's routes.
type Registrar interface {
	Register(router *mux.Router, mw *AuthMiddleware)
}

// Handlers bundles everything the router mounts. Upload is optional.
type Handlers struct {
	Auth         *AuthHandler
	Leaderboard  *LeaderboardHandler
	MentalHealth *MentalHealthHandler
	Upload       *UploadHandler
	Domains      []Registrar
}

func NewHandlers(
	authSvc service.AuthService,
	profileSvc service.ProfileService,
	leaderboardSvc service.LeaderboardService,
	mentalHealthSvc service.MentalHealthService,
	chatSvc service.ChatService,
	upload *UploadHandler,
	domains ...Registrar,
) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(authSvc, profileSvc),
		Leaderboard:  NewLeaderboardHandler(leaderboardSvc),
		MentalHealth: NewMentalHealthHandler(mentalHealthSvc, chatSvc),
		Upload:       upload,
		Domains:      domains,
	}
}

// NewRouter wires every route. Paths are registered without their trailing
// slash; StripTrailingSlash makes both spellings match.
func NewRouter(h *Handlers, mw *AuthMiddleware) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not found.")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method \""+r.Method+"\" not allowed.")
	})

	router.HandleFunc("/", index).Methods(http.MethodGet)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}).Methods(http.MethodGet)

	auth := router.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	auth.HandleFunc("/signup", h.Auth.Signup).Methods(http.MethodPost)
	auth.HandleFunc("/refresh", h.Auth.Refresh).Methods(http.MethodPost)
	auth.HandleFunc("/compat-login", h.Auth.CompatLogin).Methods(http.MethodPost)
	auth.HandleFunc("/me", mw.RequireUser(h.Auth.Me)).Methods(http.MethodGet)
	auth.HandleFunc("/users", h.Auth.Users).Methods(http.MethodGet)
	auth.HandleFunc("/all-users", h.Auth.AllUsers).Methods(http.MethodGet)
	auth.HandleFunc("/activity-stats", h.Auth.ActivityStats).Methods(http.MethodGet)
	auth.HandleFunc("/profile", h.Auth.GetProfile).Methods(http.MethodGet)
	auth.HandleFunc("/profile", h.Auth.UpdateProfile).Methods(http.MethodPost)
	auth.HandleFunc("/leaderboard", h.Leaderboard.List).Methods(http.MethodGet)
	auth.HandleFunc("/leaderboard", h.Leaderboard.Create).Methods(http.MethodPost)
	auth.HandleFunc("/leaderboard/{id:[0-9]+}", h.Leaderboard.Update).Methods(http.MethodPut)
	auth.HandleFunc("/leaderboard/{id:[0-9]+}", h.Leaderboard.Delete).Methods(http.MethodDelete)

	for _, d := range h.Domains {
		d.Register(router, mw)
	}

	mh := router.PathPrefix("/api/mental-health").Subrouter()
	mh.HandleFunc("/counsellors", h.MentalHealth.ListCounsellors).Methods(http.MethodGet)
	mh.HandleFunc("/counsellors", h.MentalHealth.CreateCounsellor).Methods(http.MethodPost)
	mh.HandleFunc("/counsellors/{id:[0-9]+}", h.MentalHealth.GetCounsellor).Methods(http.MethodGet)
	mh.HandleFunc("/counsellors/{id:[0-9]+}", h.MentalHealth.UpdateCounsellor).Methods(http.MethodPut)
	mh.HandleFunc("/counsellors/{id:[0-9]+}", h.MentalHealth.DeleteCounsellor).Methods(http.MethodDelete)
	mh.HandleFunc("/appointments", h.MentalHealth.ListAppointments).Methods(http.MethodGet)
	mh.HandleFunc("/appointments", h.MentalHealth.BookAppointment).Methods(http.MethodPost)
	mh.HandleFunc("/appointments/{id:[0-9]+}", h.MentalHealth.UpdateAppointment).Methods(http.MethodPut)
	mh.HandleFunc("/appointments/{id:[0-9]+}", h.MentalHealth.DeleteAppointment).Methods(http.MethodDelete)
	mh.HandleFunc("/chat", h.MentalHealth.Chat).Methods(http.MethodPost)

	if h.Upload != nil {
		router.HandleFunc("/api/uploads/banner", mw.RequireUser(h.Upload.UploadBanner)).Methods(http.MethodPost)
		router.HandleFunc("/media/banners/{key}", h.Upload.ServeBanner).Methods(http.MethodGet)
		router.HandleFunc("/media/banners/{key}", mw.RequireStaff(h.Upload.DeleteBanner)).Methods(http.MethodDelete)
	}

	return StripTrailingSlash(AccessLog(mw.Authenticate(router)))
}

func index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "UniMitr API",
		"auth": map[string]string{
			"login":   "/api/auth/login/",
			"signup":  "/api/auth/signup/",
			"refresh": "/api/auth/refresh/",
			"users":   "/api/auth/users/",
		},
		"events":       "/api/events/",
		"clubs":        "/api/clubs/",
		"volunteering": "/api/volunteering/",
		"internships":  "/api/internships/",
		"workshops":    "/api/workshops/",
		"mentalHealth": "/api/mental-health/",
		"health":       "/health/",
	})
}
