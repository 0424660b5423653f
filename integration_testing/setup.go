//go:build integration_test || all_tests

package integration_testing

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/2beens/workoutmap/internal"
	"github.com/2beens/workoutmap/internal/config"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

const (
	serverHost   = "127.0.0.1"
	postgresDB   = "workouts"
	postgresPass = "postgres"
)

type environment struct {
	DB         *sql.DB
	dockerPool *dockertest.Pool
	redisPort  string
	pgPort     string
	teardown   []func()
}

func newEnvironment() (*environment, error) {
	var err error
	env := &environment{
		teardown: make([]func(), 0),
	}

	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	env.dockerPool, err = dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("could not create new dockertest pool: %w", err)
	}
	env.dockerPool.MaxWait = time.Minute

	// uses pool to try to connect to Docker
	if err = env.dockerPool.Client.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping dockertest pool: %w", err)
	}

	if env.redisPort, err = env.redisSetup(); err != nil {
		env.cleanup()
		return nil, fmt.Errorf("failed to setup redis: %w", err)
	}

	if env.pgPort, err = env.postgresSetup(); err != nil {
		env.cleanup()
		return nil, fmt.Errorf("failed to setup postgres: %w", err)
	}

	return env, nil
}

func (e *environment) cleanup() {
	if e.DB != nil {
		_ = e.DB.Close()
	}
	for _, teardown := range e.teardown {
		teardown()
	}
}

func (e *environment) config(backend string, port int) *config.Config {
	cfg := &config.Config{
		Environment:           "development",
		Host:                  serverHost,
		Port:                  port,
		PrometheusMetricsHost: serverHost,
		PrometheusMetricsPort: fmt.Sprintf("%d", port+1),
		StoreBackend:          backend,
		StorageKey:            "workouts",
		LabelLocale:           "en-US",
		LabelTimezone:         "UTC",
		AddRateLimitPerMin:    3,
		MemoryStoreSizeMB:     8,
		ShutdownWaitSeconds:   5,
		RedisHost:             "localhost",
		RedisPort:             e.redisPort,
		PostgresHost:          "localhost",
		PostgresPort:          e.pgPort,
		PostgresDBName:        postgresDB,
		PostgresUser:          "postgres",
	}
	return cfg
}

// startServer starts a service over the given backend and waits until it answers.
func (e *environment) startServer(ctx context.Context, cfg *config.Config, writeSecretHash string) (*internal.Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	server, err := internal.NewServer(ctx, internal.NewServerParams{
		Config:           cfg,
		VersionInfo:      "test-version-info",
		WriteSecretHash:  writeSecretHash,
		PostgresPassword: postgresPass,
	})
	if err != nil {
		return nil, fmt.Errorf("new server: %w", err)
	}

	server.Serve(cfg.Host, cfg.Port)
	return server, nil
}

func (e *environment) redisSetup() (string, error) {
	redisResource, err := e.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "6.2",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	if err != nil {
		return "", fmt.Errorf("run redis: %w", err)
	}

	e.teardown = append(e.teardown, func() {
		if err := redisResource.Close(); err != nil {
			log.Printf("close redis resource: %s", err)
		}
	})

	return redisResource.GetPort("6379/tcp"), nil
}

func (e *environment) postgresSetup() (string, error) {
	pgResource, err := e.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=" + postgresPass,
			"POSTGRES_DB=" + postgresDB,
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return "", fmt.Errorf("dockerpool run postgres: %w", err)
	}

	e.teardown = append(e.teardown, func() {
		if err := pgResource.Close(); err != nil {
			log.Printf("close postgres resource: %s", err)
		}
	})

	pgPort := pgResource.GetPort("5432/tcp")
	dsn := fmt.Sprintf("postgres://postgres:%s@localhost:%s/%s?sslmode=disable", postgresPass, pgPort, postgresDB)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return "", fmt.Errorf("open db conn: %w", err)
	}
	e.DB = db

	if err := e.dockerPool.Retry(db.Ping); err != nil {
		return "", fmt.Errorf("ping db: %w", err)
	}

	if _, err := db.Exec(initSQL); err != nil {
		return "", fmt.Errorf("run init script: %w", err)
	}

	return pgPort, nil
}

// same table the service creates on startup, created up front so the tests
// can read it before the first service starts
const initSQL = `
CREATE TABLE IF NOT EXISTS workouts_kv
(
    key        TEXT PRIMARY KEY,
    value      BYTEA                    NOT NULL,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
);
`
