package router

import (
	"context"
	"fmt"

	"blood-ledger/internal/adapters/auth/jwtauth"
	"blood-ledger/internal/adapters/directory/remote"
	"blood-ledger/internal/adapters/directory/static"
	kafkapub "blood-ledger/internal/adapters/publisher/kafka"
	"blood-ledger/internal/adapters/storage/memory"
	pg "blood-ledger/internal/adapters/storage/postgres"
	"blood-ledger/internal/adapters/storage/seed"
	"blood-ledger/internal/adapters/storage/sqlite"
	"blood-ledger/internal/config"
	"blood-ledger/internal/platform/logger"
	"blood-ledger/internal/ports/auth"
	"blood-ledger/internal/ports/directory"
)

// OpenStore abre el backend elegido por config y aplica migraciones.
func OpenStore(ctx context.Context, cfg config.Config, log logger.Logger) (Store, error) {
	switch cfg.Store {
	case config.StorePostgres:
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := pg.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		log.Info("store ready", map[string]any{"store": "postgres"})
		return pg.NewStore(db), nil

	case config.StoreSQLite:
		db, err := sqlite.Open(ctx, sqlite.Config{Path: cfg.SQLitePath})
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		log.Info("store ready", map[string]any{"store": "sqlite", "path": cfg.SQLitePath})
		return sqlite.NewStore(db), nil

	default:
		log.Info("store ready", map[string]any{"store": "memory"})
		return memory.NewStore(), nil
	}
}

// Seed carga donantes y stock inicial de los proveedores aprobados.
func Seed(ctx context.Context, store Store, cfg config.Config, log logger.Logger) error {
	if !cfg.SeedDev {
		return nil
	}
	if err := seed.Dev(ctx, store, seed.DevOptions{Suppliers: cfg.ApprovedSuppliers}); err != nil {
		return err
	}
	log.Info("dev seed loaded", map[string]any{"suppliers": len(cfg.ApprovedSuppliers)})
	return nil
}

// Directory: el servicio remoto si hay DIRECTORY_URL, si no la lista de env.
func Directory(cfg config.Config) (directory.FacilityDirectory, error) {
	if cfg.DirectoryURL == "" {
		return static.New(cfg.ApprovedSuppliers...), nil
	}
	c, err := remote.NewClient(remote.Config{
		BaseURL: cfg.DirectoryURL,
		APIKey:  cfg.DirectoryAPIKey,
		Timeout: cfg.DirectoryTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("facility directory: %w", err)
	}
	return c, nil
}

// Verifier devuelve nil sin JWT_SECRET (modo dev con headers X-Debug-*).
func Verifier(cfg config.Config) auth.AuthVerifier {
	if cfg.JWTSecret == "" {
		return nil
	}
	return jwtauth.NewVerifier(cfg.JWTSecret)
}

// AuditPublisher devuelve nil sin KAFKA_BROKERS.
func AuditPublisher(cfg config.Config) *kafkapub.AuditPublisher {
	if len(cfg.KafkaBrokers) == 0 {
		return nil
	}
	return kafkapub.NewAuditPublisher(cfg.KafkaBrokers, cfg.KafkaAuditTopic)
}
