package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/dietlog/internal/backup"
	"github.com/dukerupert/dietlog/internal/handler"
	"github.com/dukerupert/dietlog/internal/middleware"
	"github.com/dukerupert/dietlog/internal/stats"
	"github.com/dukerupert/dietlog/internal/store"
	ws "github.com/dukerupert/dietlog/internal/websocket"
)

// Options configures routing and the components built by New.
type Options struct {
	APIPrefix      string
	StoreTimeout   time.Duration
	TrustProxy     bool
	Backup         backup.Config
	OriginPatterns []string
}

type Server struct {
	db            *sql.DB
	hub           *ws.Hub
	prefix        string
	origins       []string
	mealH         *handler.MealHandler
	exerciseH     *handler.ExerciseHandler
	statsH        *handler.StatsHandler
	backupH       *handler.BackupHandler
	backupManager *backup.Manager
	backupLimiter *middleware.Limiter
	logger        *slog.Logger
}

func New(db *sql.DB, opts Options, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	mealStore := store.NewMealStore(db)
	exerciseStore := store.NewExerciseStore(db)
	backupStore := store.NewBackupStore(db)

	backupLimiter := middleware.NewLimiter(6, time.Hour)
	backupLimiter.TrustProxy = opts.TrustProxy

	aggregator := stats.New(mealStore, exerciseStore, stats.WithStoreTimeout(opts.StoreTimeout))

	backupMgr := backup.NewManager(opts.Backup, db, backupStore, func(s backup.Status) {
		hub.Broadcast(ws.Message{
			Type:   "backup_status",
			Entity: "backup",
			Action: string(s.State),
			Extra: map[string]any{
				"inProgress": s.InProgress,
				"error":      s.Error,
			},
		})
	}, logger.With("component", "backup"))

	return &Server{
		db:            db,
		hub:           hub,
		prefix:        opts.APIPrefix,
		origins:       opts.OriginPatterns,
		mealH:         handler.NewMealHandler(mealStore, hub, logger.With("component", "meal")),
		exerciseH:     handler.NewExerciseHandler(exerciseStore, hub, logger.With("component", "exercise")),
		statsH:        handler.NewStatsHandler(aggregator, logger.With("component", "stats")),
		backupH:       handler.NewBackupHandler(backupMgr, logger.With("component", "backup_handler")),
		backupManager: backupMgr,
		backupLimiter: backupLimiter,
		logger:        logger,
	}
}

// BackupManager returns the backup manager.
func (s *Server) BackupManager() *backup.Manager {
	return s.backupManager
}

// Hub returns the websocket hub.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket"), s.origins...))

	s.registerAPIRoutes(mux)

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Error("health check", "error", err)
		status, code = "unavailable", http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}

func (s *Server) registerAPIRoutes(mux *http.ServeMux) {
	p := s.prefix

	// Meals
	mux.HandleFunc("GET "+p+"/meals", s.mealH.List)
	mux.HandleFunc("POST "+p+"/meals", s.mealH.Create)
	mux.HandleFunc("PUT "+p+"/meals/{id}", s.mealH.Update)
	mux.HandleFunc("DELETE "+p+"/meals/{id}", s.mealH.Delete)

	// Exercises
	mux.HandleFunc("GET "+p+"/exercises", s.exerciseH.List)
	mux.HandleFunc("POST "+p+"/exercises", s.exerciseH.Create)
	mux.HandleFunc("PUT "+p+"/exercises/{id}", s.exerciseH.Update)
	mux.HandleFunc("DELETE "+p+"/exercises/{id}", s.exerciseH.Delete)

	mux.HandleFunc("GET "+p+"/stats", s.statsH.Get)

	// Backups
	mux.HandleFunc("GET "+p+"/backups", s.backupH.List)
	mux.Handle("POST "+p+"/backups", middleware.Throttle(s.backupLimiter)(http.HandlerFunc(s.backupH.Create)))
	mux.HandleFunc("GET "+p+"/backups/{id}/download", s.backupH.Download)
}
