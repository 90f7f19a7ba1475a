package gateway

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"launchpad/pkg/db"
)

// Routes constructs the chi router containing all gateway endpoints.
func (g *Gateway) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	allowed := g.config.AllowedOrigins
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           int((10 * time.Minute).Seconds()),
	}))
	r.Use(httprate.Limit(100, time.Minute))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", g.handleReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login/company", g.handleLoginCompany)
			r.Post("/login/recruiter", g.handleLoginRecruiter)
			r.Post("/register/company", g.handleRegisterCompany)
			r.Post("/forgot-password", g.handleForgotPassword)
			r.Post("/verify-reset-token", g.handleVerifyResetToken)
			r.Post("/reset-password", g.handleResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(g.withSession)
				r.Post("/register/recruiter", g.handleRegisterRecruiter)
				r.Post("/logout", g.handleLogout)
			})
		})

		r.Get("/companies/verified", g.handleVerifiedCompanies)
		r.Get("/leaderboard", g.handleLeaderboard)

		r.Group(func(r chi.Router) {
			r.Use(g.withSession)

			r.Get("/profile", g.handleProfile)
			r.Get("/interest-groups", g.handleInterestGroups)

			r.Get("/jobs", g.handleListJobs)
			r.Post("/jobs", g.handleCreateJob)
			r.Get("/jobs/{jobID}/candidates", g.handleEligibleCandidates)
			r.Post("/jobs/{jobID}/candidates/{candidateID}/invite", g.handleSendInvite)

			r.Get("/invites", g.handleListInvites)
			r.Post("/invites/{inviteID}/interview", g.handleScheduleInterview)
			r.Post("/invites/{inviteID}/hire", g.handleHire)
			r.Post("/invites/{inviteID}/reject", g.handleReject)

			r.Get("/hire-requests", g.handleHireRequests)
			r.Get("/hire-requests/export", g.handleExportHireRequests)
			r.Get("/stats", g.handleStats)
		})
	})

	return r
}

func (g *Gateway) handleReady(w http.ResponseWriter, r *http.Request) {
	if g.store.DB != nil {
		if err := db.Ping(r.Context(), g.store.DB); err != nil {
			respondError(w, http.StatusServiceUnavailable, err)
			return
		}
	}
	if g.store.Redis != nil {
		if err := g.store.Redis.Ping(r.Context()).Err(); err != nil {
			respondError(w, http.StatusServiceUnavailable, err)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
