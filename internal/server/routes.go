package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/middleware"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

// defaultAllowedOrigins is used when the configuration lists no origins.
var defaultAllowedOrigins = []string{"http://localhost:5173", "https://localhost:5173"}

// SetupRoutes configures the routes for the application.
//
// The configured routes include:
// - Health check, version and route listing (never rate limited)
// - Settings, presets and statistics
// - Preview and exports (download, copy, share) with a tighter export limit
// - History, gallery and session end
// - Simulated accounts and the contact form
// - The websocket event stream
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	allowedOrigins := getAllowedOrigins(s.Config.CORS.AllowedOrigins)
	r.Use(corsMiddleware(allowedOrigins, s.Config.CORS.AllowCredentials))

	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery())
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders())
	if s.Config.Logging.RequestLog {
		r.Use(middleware.RequestLogging())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.Error(w, constants.StatusNotFound, constants.CodeNotFound, constants.MsgResourceNotFound, nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.Error(w, constants.StatusMethodNotAllowed, constants.CodeMethodNotAllowed, constants.MsgMethodNotAllowed, nil)
	})

	r.Get(constants.HealthPath, s.healthCheck)
	r.Get(constants.VersionPath, func(w http.ResponseWriter, r *http.Request) {
		utils.JSON(w, constants.StatusOK, map[string]string{
			"version":     s.Config.App.Version,
			"environment": s.Config.App.Environment,
		})
	})
	r.Get(constants.RoutesPath, s.GetAPIRoutes)
	r.Get(constants.EventsPath, s.Handlers.EventsHandler.Stream)

	r.Group(func(r chi.Router) {
		if s.limiters != nil {
			r.Use(middleware.RateLimit(s.limiters, constants.RateLimitCategoryAPI))
		}

		// Settings
		r.Get(constants.SettingsBasePath, s.Handlers.SettingsHandler.GetSettings)
		r.Put(constants.SettingsBasePath, s.Handlers.SettingsHandler.UpdateSettings)
		r.Patch(constants.SettingsFieldPath, s.Handlers.SettingsHandler.UpdateField)
		r.Post(constants.SettingsResetPath, s.Handlers.SettingsHandler.ResetSettings)
		r.Get(constants.SettingsPresetsPath, s.Handlers.SettingsHandler.ListPresets)
		r.Post(constants.SettingsPresetPath, s.Handlers.SettingsHandler.ApplyPreset)
		r.Get(constants.SettingsSizePresetsPath, s.Handlers.SettingsHandler.ListSizePresets)
		r.Post(constants.SettingsSizePresetPath, s.Handlers.SettingsHandler.ApplySizePreset)
		r.Get(constants.SettingsStatisticsPath, s.Handlers.SettingsHandler.GetStatistics)

		// Preview
		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.NoCache)
			r.Get(constants.QRPreviewPath, s.Handlers.GeneratorHandler.GetPreview)
			r.Get(constants.QRPreviewPNGPath, s.Handlers.GeneratorHandler.GetPreviewPNG)
		})

		// Exports
		r.Group(func(r chi.Router) {
			if s.limiters != nil {
				r.Use(middleware.RateLimit(s.limiters, constants.RateLimitCategoryExport))
			}
			r.Get(constants.QRDownloadPath, s.Handlers.GeneratorHandler.Download)
			r.Post(constants.QRCopyPath, s.Handlers.GeneratorHandler.Copy)
			r.Post(constants.QRSharePath, s.Handlers.GeneratorHandler.Share)
		})

		// History
		r.Get(constants.HistoryBasePath, s.Handlers.HistoryHandler.GetHistory)
		r.Delete(constants.HistoryBasePath, s.Handlers.HistoryHandler.ClearHistory)
		r.Delete(constants.HistoryDetailPath, s.Handlers.HistoryHandler.RemoveHistoryItem)
		r.Get(constants.GalleryPath, s.Handlers.HistoryHandler.GetGallery)
		r.Post(constants.SessionEndPath, s.Handlers.HistoryHandler.EndSession)

		// Account
		r.Post(constants.AuthSignInPath, s.Handlers.AuthHandler.SignIn)
		r.Post(constants.AuthSignUpPath, s.Handlers.AuthHandler.SignUp)
		r.Post(constants.AuthSignOutPath, s.Handlers.AuthHandler.SignOut)
		r.Get(constants.AuthMePath, s.Handlers.AuthHandler.GetCurrentUser)
		r.Post(constants.ContactPath, s.Handlers.AuthHandler.SubmitContact)
	})

	s.router = r
}

// GetRouter returns the configured router.
func (s *Server) GetRouter() chi.Router {
	return s.router
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.DBHealthCheckTimeout)
	defer cancel()

	if err := s.Store.HealthCheck(ctx); err != nil {
		log.Error().Err(err).Msg("Health check failed")
		utils.Error(w, constants.StatusServiceUnavailable, constants.CodeServiceUnavailable, constants.MsgServiceUnhealthy, nil)
		return
	}

	utils.JSON(w, constants.StatusOK, map[string]string{
		"status":  "healthy",
		"version": s.Config.App.Version,
		"storage": s.Config.Storage.Driver,
	})
}

func handlePreflight(w http.ResponseWriter, origin string, allowCredentials bool) {
	w.Header().Set("Access-Control-Allow-Origin", origin)
	if allowCredentials {
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, "+constants.HeaderXRequestID)
	w.Header().Set("Access-Control-Max-Age", "300")
	w.WriteHeader(http.StatusNoContent)
}

func corsMiddleware(allowedOrigins []string, allowCredentials bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get(constants.HeaderOrigin)
			if origin == "" || !originAllowed(allowedOrigins, origin) {
				next.ServeHTTP(w, r)
				return
			}

			if r.Method == http.MethodOptions {
				handlePreflight(w, origin, allowCredentials)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			if allowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			w.Header().Add("Vary", "Origin")
			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(allowedOrigins []string, origin string) bool {
	for _, allowed := range allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// getAllowedOrigins trims the configured origins, falling back to the local
// development UI when none are configured.
func getAllowedOrigins(configured []string) []string {
	origins := make([]string, 0, len(configured))
	for _, origin := range configured {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	if len(origins) == 0 {
		log.Info().Strs("allowed_origins", defaultAllowedOrigins).Msg("Using default CORS allowed origins")
		return defaultAllowedOrigins
	}

	log.Info().Strs("allowed_origins", origins).Msg("Using configured CORS allowed origins")
	return origins
}

// routeDoc describes one endpoint in the route listing.
type routeDoc struct {
	Description string            `json:"description"`
	Query       map[string]string `json:"query_params,omitempty"`
	Body        map[string]string `json:"body,omitempty"`
}

// GetAPIRoutes lists every endpoint grouped by area.
func (s *Server) GetAPIRoutes(w http.ResponseWriter, r *http.Request) {
	routes := map[string]map[string]routeDoc{
		"settings": {
			"GET " + constants.SettingsBasePath: {Description: "Get the current generator settings"},
			"PUT " + constants.SettingsBasePath: {
				Description: "Update several settings at once; omitted fields keep their value",
				Body: map[string]string{
					"content":         "string (optional) - Text to encode",
					"type":            "string (optional) - Content type",
					"size":            "int (optional) - Output size in pixels",
					"darkColor":       "string (optional) - #RRGGBB",
					"lightColor":      "string (optional) - #RRGGBB",
					"errorCorrection": "string (optional) - L, M, Q or H",
					"format":          "string (optional) - png, jpg or svg",
				},
			},
			"PATCH " + constants.SettingsFieldPath: {
				Description: "Update one settings field",
				Body:        map[string]string{"value": "string - New field value"},
			},
			"POST " + constants.SettingsResetPath:       {Description: "Restore the default settings"},
			"GET " + constants.SettingsPresetsPath:      {Description: "List the color presets"},
			"POST " + constants.SettingsPresetPath:      {Description: "Apply a color preset"},
			"GET " + constants.SettingsSizePresetsPath:  {Description: "List the size presets"},
			"POST " + constants.SettingsSizePresetPath:  {Description: "Apply a size preset"},
			"GET " + constants.SettingsStatisticsPath:   {Description: "Estimate version and capacity for the current content"},
		},
		"generator": {
			"GET " + constants.QRPreviewPath:    {Description: "Get the current preview or the render error"},
			"GET " + constants.QRPreviewPNGPath: {Description: "Get the current preview as PNG"},
			"GET " + constants.QRDownloadPath:   {Description: "Export in the selected format and record it in history"},
			"POST " + constants.QRCopyPath:      {Description: "Copy the PNG to the clipboard and record it in history"},
			"POST " + constants.QRSharePath:     {Description: "Share the PNG and record it in history"},
		},
		"history": {
			"GET " + constants.HistoryBasePath: {Description: "Get the history panel"},
			"DELETE " + constants.HistoryBasePath: {
				Description: "Clear the history",
				Query:       map[string]string{constants.QueryParamConfirm: "bool - Must be true"},
			},
			"DELETE " + constants.HistoryDetailPath: {Description: "Remove one history item"},
			"GET " + constants.GalleryPath:          {Description: "Get the gallery view"},
			"POST " + constants.SessionEndPath:      {Description: "Persist settings and history"},
		},
		"account": {
			"POST " + constants.AuthSignInPath: {
				Description: "Sign in",
				Body:        map[string]string{"email": "string", "password": "string"},
			},
			"POST " + constants.AuthSignUpPath: {
				Description: "Create an account and sign in",
				Body: map[string]string{
					"name":            "string",
					"email":           "string",
					"password":        "string - At least 6 characters",
					"confirmPassword": "string - Must match password",
				},
			},
			"POST " + constants.AuthSignOutPath: {Description: "Sign out"},
			"GET " + constants.AuthMePath:       {Description: "Get the signed-in user"},
			"POST " + constants.ContactPath: {
				Description: "Send a contact message",
				Body:        map[string]string{"name": "string", "email": "string", "message": "string"},
			},
		},
		"system": {
			"GET " + constants.HealthPath:  {Description: "Storage health"},
			"GET " + constants.VersionPath: {Description: "Application version"},
			"GET " + constants.EventsPath:  {Description: "Websocket stream of state changes"},
		},
	}

	utils.JSON(w, constants.StatusOK, routes)
}
