package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/csrf"

	"github.com/kloudinfotech/helpdesk-console/internal/auth"
	"github.com/kloudinfotech/helpdesk-console/internal/domain"
	"github.com/kloudinfotech/helpdesk-console/internal/pkg/logger"
)

// RouterConfig holds what SetupRoutes wires together.
type RouterConfig struct {
	Handlers *Handlers
	Auth     *auth.Manager
	Health   *HealthChecker

	AllowedOrigins []string
	// CSRFKey signs the tokens of the HTML form pages. It must be 32 bytes.
	CSRFKey []byte
	// Secure marks cookies Secure and enforces the TLS origin check.
	Secure bool
}

// SetupRoutes configures all console routes.
func SetupRoutes(rc RouterConfig) *chi.Mux {
	h, am := rc.Handlers, rc.Auth
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: logger.Zerolog(), NoColor: true}))
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)

	// CORS - credentials are needed for the session cookie, so origins
	// must be explicit.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rc.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if rc.Health != nil {
		r.Get("/health", rc.Health.HandleHealth)
		r.Get("/health/live", rc.Health.HandleLiveness)
		r.Get("/health/ready", rc.Health.HandleReadiness)
	}

	// Public HTML pages
	r.Get("/", h.Landing)
	r.With(am.Optional).Get("/upgrade/required", h.UpgradeRequiredPage)
	r.Group(func(r chi.Router) {
		if !rc.Secure {
			r.Use(plaintext)
		}
		r.Use(csrf.Protect(rc.CSRFKey,
			csrf.Secure(rc.Secure),
			csrf.Path("/"),
			csrf.SameSite(csrf.SameSiteLaxMode),
			csrf.ErrorHandler(http.HandlerFunc(csrfFailure)),
		))
		r.Use(am.Optional)
		r.Get("/upgrade", h.UpgradePage)
		r.With(am.RequireAuth).Post("/upgrade/confirm", h.ConfirmUpgradeForm)
	})

	// Auth
	r.Post("/auth/login", am.HandleLogin)
	r.Post("/auth/logout", am.HandleLogout)
	r.Get("/auth/user", am.HandleUserInfo)
	r.With(am.RequireAuth).Post("/auth/refresh", am.HandleRefresh)

	r.Route("/api", func(r chi.Router) {
		r.Use(am.RequireAuth)

		r.Get("/nav", h.GetNav)
		r.Post("/nav/select", h.SelectNav)
		r.Get("/features", h.GetFeatures)
		r.Get("/upgrade/prompt", h.GetUpgradePrompt)
		r.Post("/upgrade/requests", h.SubmitUpgradeRequest)

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAdmin)

			r.Route("/domain-rules", func(r chi.Router) {
				r.Use(h.requireFeature(domain.FeatureDomainRules))
				r.Get("/", h.OpenDomainRules)
				r.Get("/draft", h.GetDomainRulesDraft)
				r.Delete("/draft", h.DiscardDomainRulesDraft)
				r.Put("/enabled", h.SetDomainRulesEnabled)
				r.Post("/save", h.SaveDomainRules)
				r.Post("/evaluate", h.EvaluateSender)
				r.Post("/rejection-preview", h.PreviewRejection)
				r.Post("/{list}", h.AddDomain)
				r.Delete("/{list}/{domain}", h.RemoveDomain)
			})

			r.Route("/email-automation", func(r chi.Router) {
				r.Use(h.requireFeature(domain.FeatureEmailAutomation))
				r.Get("/", h.ListAutomations)
				r.Post("/", h.CreateAutomation)
				r.Get("/defaults", h.AutomationDefaults)
				r.Post("/draft/type", h.ShapeAutomationType)
				r.Put("/{id}", h.UpdateAutomation)
				r.Delete("/{id}", h.DeleteAutomation)
				r.Post("/{id}/run", h.RunAutomation)
				r.Post("/{id}/toggle", h.ToggleAutomation)
			})

			r.Route("/sso", func(r chi.Router) {
				r.Use(h.requireFeature(domain.FeatureSSOIntegration))
				r.Get("/", h.ListSSO)
				r.Put("/", h.UpdateSSO)
				r.Post("/{provider}/toggle", h.ToggleSSO)
				r.Post("/{provider}/probe", h.ProbeSSO)
				r.Get("/{provider}/login-url", h.SSOLoginURL)
			})

			// Only creating a custom role is plan-gated; the service
			// checks that.
			r.Route("/roles", func(r chi.Router) {
				r.Get("/", h.ListRoles)
				r.Post("/", h.CreateRole)
				r.Post("/permissions/toggle", h.TogglePermission)
				r.Put("/{id}", h.UpdateRole)
				r.Delete("/{id}", h.DeleteRole)
			})

			r.Get("/ticket-id", h.GetTicketID)
			r.Put("/ticket-id", h.SetTicketID)
			r.Delete("/ticket-id", h.ClearTicketID)

			r.Get("/audit", h.ListAudit)
		})
	})

	return r
}

// plaintext tells the CSRF middleware the request came over plain HTTP so
// it skips the TLS referer check. Only used when cookies are not Secure.
func plaintext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}
