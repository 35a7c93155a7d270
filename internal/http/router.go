package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/agencianexo/backoffice/internal/auth"
	"github.com/agencianexo/backoffice/internal/catalog"
	"github.com/agencianexo/backoffice/internal/config"
	"github.com/agencianexo/backoffice/internal/crm"
	"github.com/agencianexo/backoffice/internal/directus"
	httpmiddleware "github.com/agencianexo/backoffice/internal/http/middleware"
	"github.com/agencianexo/backoffice/internal/portal"
	"github.com/agencianexo/backoffice/internal/session"
	"github.com/agencianexo/backoffice/internal/tickets"
)

// NewRouter monta o router completo do back-office: pilha de middlewares,
// rotas públicas de autenticação e as duas áreas particionadas por papel.
func NewRouter(cfg *config.Config, redisClient *redis.Client, base *directus.Client) http.Handler {
	elevated := base.WithToken(cfg.DirectusStaticToken)

	exchanger := auth.NewExchanger(base, elevated, cfg.AccessTokenTTL)
	refresher := auth.NewRefresher(base, cfg.AccessTokenTTL)
	codec := session.NewCodec(cfg.SessionSecret, cfg.SessionTTL, cfg.SessionUpdateAge)
	manager := session.NewManager(codec, refresher, !cfg.DevCookies())

	catalogService := catalog.NewService(elevated, redisClient, cfg.CatalogCacheTTL)

	var notifier tickets.Notifier
	if webhook := tickets.NewWebhookNotifier(cfg.TicketWebhookURL); webhook != nil {
		notifier = webhook
	}
	ticketService := tickets.NewService(base, catalogService, notifier)
	crmService := crm.NewService(base, elevated)
	portalService := portal.NewService(base, ticketService)

	authHandler := NewAuthHandler(exchanger, manager, base, elevated)
	catalogHandler := NewCatalogHandler(catalogService)
	ticketHandler := tickets.NewHandler(ticketService)
	crmHandler := crm.NewHandler(crmService)
	portalHandler := portal.NewHandler(portalService)

	publicLimiter := httpmiddleware.NewRateLimiter(cfg.RateLimitPublic.RequestsPerSecond, cfg.RateLimitPublic.Burst)
	authLimiter := httpmiddleware.NewRateLimiter(cfg.RateLimitAuth.RequestsPerSecond, cfg.RateLimitAuth.Burst)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpmiddleware.Logging)
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.CORS(cfg.AllowOrigins))
	r.Use(httpmiddleware.Gate(manager, nil))

	r.Group(func(r chi.Router) {
		r.Use(httpmiddleware.IPRateLimit(publicLimiter))
		r.Get("/health", handleHealth)
		r.Get("/ready", handleReady(redisClient))
		r.Get("/login", handleLoginRequired)
	})

	r.Group(func(r chi.Router) {
		r.Use(httpmiddleware.IPRateLimit(authLimiter))
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.Get("/auth/session", authHandler.HandleSession)
	})

	r.Get("/", handleHome)
	r.Get("/me", authHandler.HandleMe)

	r.Route("/dashboard", func(r chi.Router) {
		r.Use(httpmiddleware.SessionRateLimit(authLimiter))

		r.Get("/", handleAreaRoot("dashboard"))
		r.Get("/users", catalogHandler.HandleListStaffUsers)
		r.Get("/statuses", catalogHandler.HandleListStatuses)
		r.Get("/priorities", catalogHandler.HandleListPriorities)
		r.Get("/service-packages", catalogHandler.HandleListServicePackages)

		r.Route("/crm", func(r chi.Router) {
			crm.Mount(r, crmHandler)
		})
		r.Route("/tickets", func(r chi.Router) {
			r.Get("/categories", catalogHandler.HandleListTicketCategories)
			tickets.Mount(r, ticketHandler)
		})
	})

	r.Route("/portal", func(r chi.Router) {
		r.Use(httpmiddleware.SessionRateLimit(authLimiter))

		r.Get("/", handleAreaRoot("portal"))
		portal.Mount(r, portalHandler)
	})

	return r
}

// handleHome encaminha o usuário autenticado para a área do seu papel.
func handleHome(w http.ResponseWriter, r *http.Request) {
	s := httpmiddleware.GetSession(r.Context())
	if s == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, s.Role.HomePath(), http.StatusSeeOther)
}

// handleLoginRequired atende os redirects do Gate quando não há frontend
// servido pelo próprio processo.
func handleLoginRequired(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{"loginRequired": true}
	if callback := r.URL.Query().Get("callbackUrl"); callback != "" {
		payload["callbackUrl"] = callback
	}
	if errCode := r.URL.Query().Get("error"); errCode != "" {
		payload["error"] = errCode
	}
	WriteJSON(w, http.StatusOK, payload)
}

func handleAreaRoot(area string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := httpmiddleware.GetSession(r.Context())
		if s == nil {
			WriteError(w, http.StatusUnauthorized, "AUTH", "sessão inválida")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{
			"area": area,
			"user": sessionUser{ID: s.UserID, Role: s.Role.String()},
		})
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func handleReady(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			WriteError(w, http.StatusServiceUnavailable, "NOT_READY", "redis indisponível")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"status": "ready"})
	}
}
