package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"blood-ledger/internal/domain/shared"
	"blood-ledger/internal/platform/logger"
)

type Store string

const (
	StoreMemory   Store = "memory"
	StoreSQLite   Store = "sqlite"
	StorePostgres Store = "postgres"
)

type Config struct {
	HTTPAddr string
	Env      string // "dev" | "prod"

	// Storage
	Store      Store
	DBDSN      string // postgres
	SQLitePath string
	SeedDev    bool

	// Identidad. Sin secreto se aceptan los headers X-Debug-*.
	JWTSecret string

	// Directorio de instalaciones: estático desde env o servicio remoto.
	ApprovedSuppliers []shared.OwnerRef
	DirectoryURL      string
	DirectoryAPIKey   string
	DirectoryTimeout  time.Duration

	// Kafka (opcional)
	KafkaBrokers    []string
	KafkaAuditTopic string

	LogLevel  logger.Level
	LogFormat logger.Format
	AppName   string

	ShutdownTimeout time.Duration
}

func FromEnv() (Config, error) {
	addr := getenvDefault("HTTP_ADDR", ":8080")
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		addr = ":" + port
	}

	env := strings.ToLower(getenvDefault("APP_ENV", "dev"))
	if env != "dev" && env != "prod" {
		// fail-soft: desconocido = dev
		env = "dev"
	}

	dsn := os.Getenv("DB_DSN")
	store := Store(strings.ToLower(getenvDefault("STORE", "")))
	switch store {
	case "":
		store = StoreMemory
		if strings.TrimSpace(dsn) != "" {
			store = StorePostgres
		}
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if strings.TrimSpace(dsn) == "" {
			return Config{}, fmt.Errorf("config: STORE=postgres requires DB_DSN")
		}
	default:
		return Config{}, fmt.Errorf("config: unknown STORE %q", store)
	}

	var suppliers []shared.OwnerRef
	for _, raw := range splitCSV(os.Getenv("APPROVED_SUPPLIERS")) {
		ref, err := shared.ParseOwnerRef(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config: APPROVED_SUPPLIERS: %w", err)
		}
		suppliers = append(suppliers, ref)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if env == "prod" && strings.TrimSpace(jwtSecret) == "" {
		return Config{}, fmt.Errorf("config: JWT_SECRET required when APP_ENV=prod")
	}

	return Config{
		HTTPAddr: addr,
		Env:      env,

		Store:      store,
		DBDSN:      dsn,
		SQLitePath: getenvDefault("SQLITE_PATH", "./data/blood-ledger.db"),
		SeedDev:    getenvBool("SEED_DEV", env == "dev"),

		JWTSecret: jwtSecret,

		ApprovedSuppliers: suppliers,
		DirectoryURL:      strings.TrimSpace(os.Getenv("DIRECTORY_URL")),
		DirectoryAPIKey:   os.Getenv("DIRECTORY_API_KEY"),
		DirectoryTimeout:  time.Duration(getenvInt("DIRECTORY_TIMEOUT_MS", 3000)) * time.Millisecond,

		KafkaBrokers:    splitCSV(os.Getenv("KAFKA_BROKERS")),
		KafkaAuditTopic: getenvDefault("KAFKA_AUDIT_TOPIC", "blood-ledger.audit"),

		LogLevel:  logger.ParseLevel(getenvDefault("LOG_LEVEL", "info")),
		LogFormat: logger.ParseFormat(getenvDefault("LOG_FORMAT", "text")),
		AppName:   getenvDefault("APP_NAME", "blood-ledger"),

		ShutdownTimeout: time.Duration(getenvInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}, nil
}

// Logger arma el logger según LOG_LEVEL/LOG_FORMAT/APP_NAME.
func (c Config) Logger() logger.Logger {
	return logger.New(logger.Options{
		Level:  c.LogLevel,
		Format: c.LogFormat,
		App:    c.AppName,
	})
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func getenvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return strings.EqualFold(v, "true") || v == "1"
}

func splitCSV(v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
