package integration_testing

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/dkovacevic/liftlog/internal"
	"github.com/dkovacevic/liftlog/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	serverPort = 9001
	serverHost = "localhost"
)

var serverEndpoint = fmt.Sprintf("http://%s:%d", serverHost, serverPort)

func getTestConfig(redisPort, postgresPort string) *config.Config {
	return &config.Config{
		Environment:                 "testing",
		Host:                        serverHost,
		Port:                        serverPort,
		RedisHost:                   "localhost",
		RedisPort:                   redisPort,
		PostgresHost:                "localhost",
		PostgresPort:                postgresPort,
		PostgresDBName:              "liftlog",
		PrometheusMetricsHost:       "localhost",
		PrometheusMetricsPort:       "2113",
		LoginRateLimitAllowedPerMin: 100,
	}
}

func redisSetup(pool *dockertest.Pool) (string, func(), error) {
	redisResource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Name:       "redis-liftlog-smoke",
		Tag:        "6.2",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	if err != nil {
		return "", nil, fmt.Errorf("run redis: %s", err)
	}

	redisPort := redisResource.GetPort("6379/tcp")
	return redisPort, func() {
		redisResource.Close()
	}, nil
}

func postgresSetup(ctx context.Context, pool *dockertest.Pool) (string, func(), error) {
	pgResource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=liftlog",
			"POSTGRES_HOST_AUTH_METHOD=trust",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return "", nil, fmt.Errorf("dockerpool run postgres: %s", err)
	}
	cleanup := func() {
		pgResource.Close()
	}

	pgPort := pgResource.GetPort("5432/tcp")
	dsn := fmt.Sprintf("postgres://postgres@localhost:%s/liftlog?sslmode=disable", pgPort)
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return "", cleanup, fmt.Errorf("create connection pool: %w", err)
	}
	defer db.Close()

	if err := pool.Retry(func() error {
		return db.Ping(ctx)
	}); err != nil {
		return "", cleanup, fmt.Errorf("connect to db: %s", err)
	}

	return pgPort, cleanup, nil
}

func serverSetup(ctx context.Context) (*internal.Server, func(), error) {
	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, nil, fmt.Errorf("could not create new dockertest pool: %s", err)
	}

	// uses pool to try to connect to Docker
	if err = pool.Client.Ping(); err != nil {
		return nil, nil, fmt.Errorf("could not ping dockertest pool: %s", err)
	}

	redisPort, redisCleanup, err := redisSetup(pool)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to setup redis: %s", err.Error())
	}

	pgPort, pgCleanup, err := postgresSetup(ctx, pool)
	if err != nil {
		redisCleanup()
		return nil, nil, fmt.Errorf("failed to setup postgres: %s", err)
	}

	cfg := getTestConfig(redisPort, pgPort)
	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             "test-version-info",
			RedisPassword:           "",
			HoneycombTracingEnabled: false,
		},
	)
	if err != nil {
		redisCleanup()
		pgCleanup()
		return nil, nil, err
	}

	server.Serve(cfg.Host, cfg.Port)

	return server, func() {
		server.GracefulShutdown()
		redisCleanup()
		pgCleanup()
	}, nil
}

func Test_NewServer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, cleanupFunc, err := serverSetup(ctx)
	require.NoError(t, err)
	defer cleanupFunc()

	require.NotNil(t, server)

	resp, err := http.Get(serverEndpoint + "/version")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "test-version-info", string(respBytes))
}
