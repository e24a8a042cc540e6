package router

import (
	"net/http"

	_ "blood-ledger/docs"
	"blood-ledger/internal/domain/audit"
	"blood-ledger/internal/domain/donors"
	"blood-ledger/internal/domain/requests"
	"blood-ledger/internal/domain/shared"
	"blood-ledger/internal/domain/stock"
	"blood-ledger/internal/middleware"
	"blood-ledger/internal/platform/logger"
	"blood-ledger/internal/platform/metrics"
	"blood-ledger/internal/ports/auth"
	"blood-ledger/internal/ports/directory"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Store es lo que tiene que ofrecer cualquier backend (memory, sqlite, postgres).
type Store interface {
	stock.TxRunner
	audit.TxRunner
	requests.TxRunner
	donors.TxRunner
	Close() error
}

type Options struct {
	Store     Store
	Directory directory.FacilityDirectory

	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcionales.
	Publisher audit.Publisher
	Metrics   *metrics.Recorder
	Logger    logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.AccessLog(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var obs shared.Observer = shared.NopObserver()
	if opts.Metrics != nil {
		obs = opts.Metrics
		r.Handle("/metrics", opts.Metrics.Handler())
	}

	var notify *audit.Notifier
	if opts.Publisher != nil {
		notify = audit.NewNotifier(opts.Publisher, log.With(map[string]any{"component": "audit_publisher"}))
	}

	// Services por módulo
	stockSvc := stock.NewService(opts.Store, obs, notify)
	auditSvc := audit.NewService(opts.Store, obs, notify)
	requestsSvc := requests.NewService(opts.Store, opts.Directory, obs, notify)
	donorsSvc := donors.NewService(opts.Store, obs, notify)

	// Rutas por módulo
	stock.RegisterRoutes(r, stockSvc)
	requests.RegisterRoutes(r, requestsSvc)
	donors.RegisterRoutes(r, donorsSvc)
	audit.RegisterRoutes(r, auditSvc)

	return r
}
