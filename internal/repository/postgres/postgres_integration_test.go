package postgres_test

import (
	"context"
	"database/sql"
	"math/rand"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"user-seeding-service/config"
	"user-seeding-service/internal/entities"
	"user-seeding-service/internal/generator"
	"user-seeding-service/internal/repository/postgres"
	"user-seeding-service/internal/usecase/domain"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRepositoryIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, db, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := postgres.New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	gen := generator.New(rand.New(rand.NewSource(11)))
	users := make([]entities.User, 0, 10)
	flagged := int64(0)
	for i := 0; i < 10; i++ {
		u := gen.UserAt(i)
		if u.HasProblems {
			flagged++
		}
		users = append(users, u)
	}

	written, err := repo.CopyUsers(ctx, users)
	require.NoError(t, err)
	require.EqualValues(t, 10, written)

	var total int64
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&total))
	require.EqualValues(t, 10, total)

	var males int64
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users WHERE gender = 'Male'`).Scan(&males))
	require.EqualValues(t, 5, males)

	cnt, err := repo.CountUsersWithProblems(ctx)
	require.NoError(t, err)
	require.Equal(t, flagged, cnt)

	reset, err := repo.ResetProblems(ctx)
	require.NoError(t, err)
	require.Equal(t, flagged, reset)

	// Idempotent in effect: nothing left to transition.
	reset2, err := repo.ResetProblems(ctx)
	require.NoError(t, err)
	require.Zero(t, reset2)

	cnt, err = repo.CountUsersWithProblems(ctx)
	require.NoError(t, err)
	require.Zero(t, cnt)

	// Empty batch is a no-op.
	written, err = repo.CopyUsers(ctx, nil)
	require.NoError(t, err)
	require.Zero(t, written)
}

func TestSeedAndResetEndToEnd(t *testing.T) {
	ctx := context.Background()

	cfg, db, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := postgres.New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	uc := domain.New(testLogger(t), ctx, repo, cfg, func() rand.Source {
		return rand.NewSource(23)
	})

	totalBefore := countRows(t, db, `SELECT COUNT(*) FROM users`)

	total := 10
	res, err := uc.SeedUsers(ctx, &total)
	require.NoError(t, err)
	require.EqualValues(t, 10, res.Inserted)
	require.NotEmpty(t, res.RunID)

	require.Equal(t, totalBefore+10, countRows(t, db, `SELECT COUNT(*) FROM users`))
	require.EqualValues(t, 5, countRows(t, db, `SELECT COUNT(*) FROM users WHERE gender = 'Male'`))

	flagged, err := repo.CountUsersWithProblems(ctx)
	require.NoError(t, err)

	reset, err := uc.ResetProblems(ctx)
	require.NoError(t, err)
	require.Equal(t, flagged, reset)

	reset2, err := uc.ResetProblems(ctx)
	require.NoError(t, err)
	require.Zero(t, reset2)

	require.Zero(t, countRows(t, db, `SELECT COUNT(*) FROM users WHERE has_problems`))
}

func TestResetProblemsSnapshotConsistentWithConcurrentWriter(t *testing.T) {
	ctx := context.Background()

	cfg, db, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := postgres.New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	gen := generator.New(rand.New(rand.NewSource(31)))
	users := make([]entities.User, 0, 10)
	for i := 0; i < 10; i++ {
		u := gen.UserAt(i)
		u.HasProblems = true
		users = append(users, u)
	}
	written, err := repo.CopyUsers(ctx, users)
	require.NoError(t, err)
	require.EqualValues(t, 10, written)

	// Writer clears one flagged row and holds the lock uncommitted.
	tx, err := db.Begin()
	require.NoError(t, err)
	var clearedID int64
	require.NoError(t, tx.QueryRow(
		`UPDATE users SET has_problems = FALSE WHERE id = (SELECT MIN(id) FROM users WHERE has_problems) RETURNING id`,
	).Scan(&clearedID))

	type result struct {
		n   int64
		err error
	}
	resCh := make(chan result, 1)
	go func() {
		n, err := repo.ResetProblems(ctx)
		resCh <- result{n: n, err: err}
	}()

	// The reset must wait on the writer's row lock, not count past it.
	time.Sleep(200 * time.Millisecond)
	select {
	case <-resCh:
		t.Fatal("reset finished before concurrent writer committed")
	default:
	}

	require.NoError(t, tx.Commit())

	res := <-resCh
	require.NoError(t, res.err)
	// The writer already cleared one row; only the remaining nine
	// transitioned in this invocation.
	require.EqualValues(t, 9, res.n)
	require.Zero(t, countRows(t, db, `SELECT COUNT(*) FROM users WHERE has_problems`))

	// A flip the writer has not committed yet is invisible to the reset and
	// stays flagged for the next invocation.
	tx2, err := db.Begin()
	require.NoError(t, err)
	_, err = tx2.Exec(`UPDATE users SET has_problems = TRUE WHERE id = $1`, clearedID)
	require.NoError(t, err)

	midReset, err := repo.ResetProblems(ctx)
	require.NoError(t, err)
	require.Zero(t, midReset)

	require.NoError(t, tx2.Commit())

	lateReset, err := repo.ResetProblems(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, lateReset)
	require.Zero(t, countRows(t, db, `SELECT COUNT(*) FROM users WHERE has_problems`))
}

func countRows(t *testing.T, db *sql.DB, query string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.QueryRow(query).Scan(&n))
	return n
}

func setupPostgres(t *testing.T) (*config.Config, *sql.DB, func()) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=user_seeding_db",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
	})
	require.NoError(t, err)

	hostPort := resource.GetPort("5432/tcp")

	port, err := strconv.Atoi(hostPort)
	require.NoError(t, err)
	migrationsDir, err := filepath.Abs(filepath.Join("..", "..", "..", "db", "migrations"))
	require.NoError(t, err)
	require.DirExists(t, migrationsDir)

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "0.0.0.0", Port: 8080, ShutdownTimeout: 5 * time.Second},
		HTTP:   config.HTTPConfig{RequestTimeout: 5 * time.Second},
		Postgres: config.PostgresConfig{
			Host:           "localhost",
			Port:           port,
			User:           "postgres",
			Password:       "postgres",
			DBName:         "user_seeding_db",
			SSLMode:        "disable",
			MigrationsDir:  migrationsDir,
			QueryTimeout:   10 * time.Second,
			MigrateTimeout: 20 * time.Second,
			MaxConns:       4,
			MinConns:       1,
		},
		Seeder: config.SeederConfig{
			DefaultTotal: 1000000,
			BatchSize:    4,
			Workers:      2,
			RunTimeout:   time.Minute,
		},
		FlagReset: config.FlagResetConfig{
			MaxRetries:     3,
			RetryBaseDelay: 50 * time.Millisecond,
		},
	}

	var db *sql.DB
	require.NoError(t, pool.Retry(func() error {
		var err error
		db, err = sql.Open("postgres", "host=localhost port="+hostPort+" user=postgres password=postgres dbname=user_seeding_db sslmode=disable")
		if err != nil {
			return err
		}
		return db.Ping()
	}))

	cleanup := func() {
		_ = db.Close()
		_ = pool.Purge(resource)
	}

	return cfg, db, cleanup
}

func testLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()
	l, _ := zap.NewDevelopment()
	t.Cleanup(func() { _ = l.Sync() })
	return l.Sugar()
}
