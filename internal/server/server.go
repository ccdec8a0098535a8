package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/babygoats/BabyGoats_Go/internal/achievement"
	"github.com/babygoats/BabyGoats_Go/internal/challenge"
	"github.com/babygoats/BabyGoats_Go/internal/eventlog"
	"github.com/babygoats/BabyGoats_Go/internal/guide"
	"github.com/babygoats/BabyGoats_Go/internal/handler"
	"github.com/babygoats/BabyGoats_Go/internal/logger"
	"github.com/babygoats/BabyGoats_Go/internal/metrics"
	"github.com/babygoats/BabyGoats_Go/internal/progression"
	"github.com/babygoats/BabyGoats_Go/internal/scenario"
	"github.com/babygoats/BabyGoats_Go/internal/sse"
	"github.com/babygoats/BabyGoats_Go/internal/stats"
	"github.com/babygoats/BabyGoats_Go/internal/user"
)

type Server struct {
	httpServer         *http.Server
	db                 *pgxpool.Pool
	userService        user.Service
	statsService       stats.Service
	achievementService achievement.Service
	challengeService   challenge.Service
	eventlogService    eventlog.Service
	catalog            *progression.Catalog
	guideLoader        *guide.Loader
	scenarioEngine     *scenario.Engine
	hub                *sse.Hub
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, db *pgxpool.Pool, userService user.Service, statsService stats.Service, achievementService achievement.Service, challengeService challenge.Service, eventlogService eventlog.Service, catalog *progression.Catalog, guideLoader *guide.Loader, rollover handler.RolloverRunner, scenarioEngine *scenario.Engine, hub *sse.Hub) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	monitor := NewAbuseMonitor()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, monitor))
	r.Use(RateLimitMiddleware(trustedProxies, monitor))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(db))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Athlete routes
		r.Route("/athletes", func(r chi.Router) {
			r.Post("/", handler.HandleRegisterAthlete(userService))
			r.Get("/search", handler.HandleSearchAthletes(userService))
			r.Get("/by-username/{username}", handler.HandleGetAthleteByUsername(userService))

			r.Route("/{userID}", func(r chi.Router) {
				r.Get("/", handler.HandleGetAthlete(userService))
				r.Put("/", handler.HandleUpdateAthlete(userService))
				r.Delete("/", handler.HandleDeleteAthlete(userService))
				r.Get("/profile", handler.HandleGetProfile(userService))

				r.Get("/counters", handler.HandleGetCounters(statsService))
				r.Get("/stats", handler.HandleGetUserStats(statsService))
				r.Get("/events", handler.HandleGetUserEvents(statsService))

				r.Get("/achievements", handler.HandleGetUserAchievements(achievementService))
				r.Post("/achievements/evaluate", handler.HandleEvaluateAchievements(achievementService))
				r.Get("/levels", handler.HandleGetUserLevels(achievementService))
			})
		})

		// Activity recording
		r.Post("/activities", handler.HandleRecordActivity(statsService))

		// Stats routes
		r.Route("/stats", func(r chi.Router) {
			r.Get("/system", handler.HandleGetSystemStats(statsService))
		})
		r.Get("/leaderboard", handler.HandleGetLeaderboard(statsService))

		// Achievement catalog browse
		r.Get("/achievements", handler.HandleBrowseCatalog(achievementService))

		// Progression routes
		r.Route("/progression", func(r chi.Router) {
			r.Get("/levels", handler.HandleGetLevelTable(catalog))
		})

		// Challenge routes
		r.Route("/challenges", func(r chi.Router) {
			r.Get("/today", handler.HandleGetDailyChallenges(challengeService))
			r.Post("/complete", handler.HandleCompleteChallenge(challengeService))
		})

		// Guide routes
		r.Route("/guides", func(r chi.Router) {
			r.Get("/", handler.HandleGetAllGuides(guideLoader))
			r.Get("/{pillar}", handler.HandleGetGuide(guideLoader))
		})

		// Live event feed (SSE)
		r.Get("/events/stream", sse.Handler(hub))

		// Admin routes
		rolloverHandler := handler.NewAdminRolloverHandler(rollover)
		cacheHandler := handler.NewAdminCacheHandler(userService)
		eventsHandler := handler.NewAdminEventsHandler(eventlogService)
		scenarioHandler := handler.NewScenarioHandler(scenarioEngine)
		r.Route("/admin", func(r chi.Router) {
			r.Post("/rollover", rolloverHandler.HandleTriggerRollover)

			r.Route("/cache", func(r chi.Router) {
				r.Get("/stats", cacheHandler.HandleGetCacheStats)
			})

			r.Route("/events", func(r chi.Router) {
				r.Get("/", eventsHandler.HandleGetEvents)
				r.Post("/cleanup", eventsHandler.HandleCleanupEvents)
			})

			r.Route("/simulate", func(r chi.Router) {
				r.Get("/capabilities", scenarioHandler.HandleGetCapabilities)
				r.Get("/scenarios", scenarioHandler.HandleGetScenarios)
				r.Get("/scenario", scenarioHandler.HandleGetScenario)
				r.Post("/run", scenarioHandler.HandleRunScenario)
				r.Post("/run-custom", scenarioHandler.HandleRunCustomScenario)
			})
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		db:                 db,
		userService:        userService,
		statsService:       statsService,
		achievementService: achievementService,
		challengeService:   challengeService,
		eventlogService:    eventlogService,
		catalog:            catalog,
		guideLoader:        guideLoader,
		scenarioEngine:     scenarioEngine,
		hub:                hub,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
