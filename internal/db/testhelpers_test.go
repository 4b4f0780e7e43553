package db

import (
	"context"
	"flag"
	"log"
	"os"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// testDB is shared by every test in the package.
var testDB *DB

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Fatalf("starting postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("building dsn: %v", err)
	}
	if err := RunMigrations(ctx, dsn); err != nil {
		log.Fatalf("running migrations: %v", err)
	}
	testDB, err = New(ctx, dsn)
	if err != nil {
		log.Fatalf("connecting to test db: %v", err)
	}

	code := m.Run()

	testDB.Close()
	if err := testcontainers.TerminateContainer(container); err != nil {
		log.Printf("terminating container: %v", err)
	}
	os.Exit(code)
}

// setupTestDB returns the shared DB with empty tables.
func setupTestDB(tb testing.TB) *DB {
	tb.Helper()
	if testDB == nil {
		tb.Skip("database tests disabled in short mode")
	}

	if _, err := testDB.Pool().Exec(context.Background(), "TRUNCATE spawns, species CASCADE"); err != nil {
		tb.Fatalf("truncating tables: %v", err)
	}
	return testDB
}
