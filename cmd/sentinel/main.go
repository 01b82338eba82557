package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/project-sentinel/sentinel-client/internal/analytics"
	"github.com/project-sentinel/sentinel-client/internal/api"
	"github.com/project-sentinel/sentinel-client/internal/app"
	"github.com/project-sentinel/sentinel-client/internal/assistant"
	"github.com/project-sentinel/sentinel-client/internal/campaigns"
	"github.com/project-sentinel/sentinel-client/internal/config"
	"github.com/project-sentinel/sentinel-client/internal/dashboard"
	"github.com/project-sentinel/sentinel-client/internal/export"
	"github.com/project-sentinel/sentinel-client/internal/models"
	"github.com/project-sentinel/sentinel-client/internal/notifications"
	"github.com/project-sentinel/sentinel-client/internal/realtime"
	"github.com/project-sentinel/sentinel-client/internal/scheduler"
	"github.com/project-sentinel/sentinel-client/internal/session"
	"github.com/project-sentinel/sentinel-client/internal/store"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting Sentinel dashboard client")

	// Local persistence: session plus chat history
	db, err := store.New(cfg.DBPath)
	if err != nil {
		logrus.Fatalf("Failed to open local store: %v", err)
	}
	defer db.Close()

	// Session store restores any persisted credential
	sessions := session.NewStore(db)

	// Backend client; a 401 anywhere purges the session
	apiClient := api.NewClient(cfg.APIBaseURL, sessions, sessions.Clear)

	// Dashboard state and derived metrics
	state := dashboard.NewState(cfg.AlertWindow, cfg.LiveAlertCount)
	aggregator := analytics.NewAggregator(analytics.NewRandomEstimator())
	aggregator.AIShare = cfg.AIGeneratedShare
	aggregator.AccuracyPct = cfg.DetectionAccuracy

	// SentinelAI chat session
	completer := assistant.NewOpenAICompleter(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel)
	chat := assistant.NewManager(completer, db)

	// Evidence pack export: blob storage when configured, local directory
	// otherwise
	var packer *export.Packer
	if cfg.StorageAccount != "" {
		azure, err := export.NewAzureStorage(cfg.StorageAccount, cfg.StorageContainer)
		if err != nil {
			logrus.Fatalf("Failed to initialize export storage: %v", err)
		}
		packer = export.NewPacker(azure)
	} else {
		local, err := export.NewLocalStorage(cfg.ExportDir)
		if err != nil {
			logrus.Fatalf("Failed to initialize export storage: %v", err)
		}
		packer = export.NewPacker(local)
	}

	// Alert notifications are optional
	var notifier notifications.NotificationInterface
	if cfg.AlertWebhookURL != "" || cfg.NotificationEmail != "" {
		notifier = notifications.NewService(cfg)
	}

	service := app.NewService(cfg, apiClient, state, aggregator, chat, packer, notifier)

	// Seed the alert feed and prime the dashboard
	var alertSource dashboard.AlertSource
	if cfg.DemoAlerts {
		source := dashboard.NewDemoSource()
		alertSource = source
		state.MergeAlerts(source.Initial(time.Now()))
	}
	if err := service.RefreshDashboard(); err != nil {
		logrus.Warnf("Initial dashboard refresh incomplete: %v", err)
	}

	// Realtime socket feeds the same state container
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	socket := realtime.NewClient(cfg.SocketURL, sessions, service.RealtimeHandlers())
	go func() {
		if err := socket.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logrus.Errorf("Realtime client stopped: %v", err)
		}
	}()

	// Periodic tasks: alert rotation, timestamp refresh, dashboard re-poll
	schedulerService := scheduler.NewService(cfg, state, alertSource, service)
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	// HTTP surface for the view layer
	router := mux.NewRouter()
	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	router.HandleFunc("/api/login", loginHandler(apiClient, sessions)).Methods("POST")
	router.HandleFunc("/api/logout", logoutHandler(sessions)).Methods("POST")
	router.HandleFunc("/api/profile", profileHandler(sessions)).Methods("GET")
	router.HandleFunc("/api/profile", updateProfileHandler(sessions)).Methods("PUT")

	router.HandleFunc("/api/dashboard", dashboardHandler(service)).Methods("GET")
	router.HandleFunc("/api/analytics", analyticsHandler(service)).Methods("GET")
	router.HandleFunc("/api/campaigns", campaignsHandler(service)).Methods("GET")
	router.HandleFunc("/api/campaigns/{id}", campaignDetailHandler(service)).Methods("GET")
	router.HandleFunc("/api/campaigns/{id}/export", exportHandler(service)).Methods("POST")

	router.HandleFunc("/api/chat", chatHandler(service)).Methods("POST")
	router.HandleFunc("/api/chat/history", chatHistoryHandler(service)).Methods("GET")
	router.HandleFunc("/api/chat/save", chatSaveHandler(service)).Methods("POST")
	router.HandleFunc("/api/chat/clear", chatClearHandler(service)).Methods("POST")

	router.HandleFunc("/api/search", searchHandler(service)).Methods("POST")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server in a goroutine
	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func loginHandler(apiClient *api.Client, sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		token, user, err := apiClient.Login(r.Context(), body.Email, body.Password)
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		if err := sessions.SetSession(token, user); err != nil {
			logrus.Errorf("Failed to persist session: %v", err)
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{"user": sessions.User()})
	}
}

func logoutHandler(sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions.Clear()
		writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
	}
}

func profileHandler(sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := sessions.User()
		if user == nil {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
	}
}

func updateProfileHandler(sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !sessions.Authenticated() {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		var user models.User
		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := sessions.UpdateProfile(user); err != nil {
			logrus.Errorf("Failed to persist profile: %v", err)
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"user": sessions.User()})
	}
}

func dashboardHandler(service *app.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := service.State()
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"overview":  state.Overview(),
			"campaigns": state.Campaigns(),
			"alerts":    state.Alerts(),
		})
	}
}

func analyticsHandler(service *app.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.Analytics(time.Now()))
	}
}

func campaignsHandler(service *app.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		filters := campaigns.ListFilters{
			TimeRange: q.Get("timeRange"),
			Search:    q.Get("search"),
			Status:    splitParam(q.Get("status")),
			Priority:  splitParam(q.Get("priority")),
			Platforms: splitParam(q.Get("platforms")),
			Tags:      splitParam(q.Get("tags")),
		}

		writeJSON(w, http.StatusOK, service.Campaigns(filters, pageParam(q.Get("page")), time.Now()))
	}
}

func campaignDetailHandler(service *app.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		q := r.URL.Query()

		detail, err := service.CampaignDetail(r.Context(), id, q.Get("sort"), q.Get("platform"), time.Now())
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, detail)
	}
}

func exportHandler(service *app.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename, err := service.ExportCampaign(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"filename": filename})
	}
}

func chatHandler(service *app.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		reply, sent := service.Assistant().Send(r.Context(), body.Query)
		if !sent {
			writeError(w, http.StatusConflict, "a message is already in flight")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"reply": reply})
	}
}

func chatHistoryHandler(service *app.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chat := service.Assistant()

		saved, err := chat.SearchSaved(r.URL.Query().Get("search"))
		if err != nil {
			logrus.Errorf("Failed to list saved conversations: %v", err)
		}
		recents, err := chat.Recents()
		if err != nil {
			logrus.Errorf("Failed to list recent conversations: %v", err)
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"messages": chat.Messages(),
			"saved":    saved,
			"recent":   recents,
		})
	}
}

func chatSaveHandler(service *app.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conv, err := service.Assistant().SaveCurrent()
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"conversation": conv})
	}
}

func chatClearHandler(service *app.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service.Assistant().Clear()
		writeJSON(w, http.StatusOK, map[string]interface{}{"messages": service.Assistant().Messages()})
	}
}

func searchHandler(service *app.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		results, err := service.Search(r.Context(), body.Query)
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, results)
	}
}

// pageParam parses the page query parameter, falling back to the first
// page on anything that is not a number.
func pageParam(value string) int {
	page, err := strconv.Atoi(value)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func splitParam(value string) []string {
	if value == "" {
		return nil
	}
	var parts []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, api.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, api.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
