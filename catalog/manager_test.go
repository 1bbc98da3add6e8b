//go:build integration
// +build integration

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/liamcoop/projectforge/planner"
)

// setupTestDB creates a PostgreSQL testcontainer and runs migrations
func setupTestDB(t *testing.T) (*sql.DB, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_PASSWORD": "password",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	postgres, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}

	host, err := postgres.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := postgres.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	connStr := fmt.Sprintf("postgres://postgres:password@%s:%s/testdb?sslmode=disable", host, port.Port())

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	for i := 0; i < 30; i++ {
		if err := db.Ping(); err == nil {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	migrationSQL, err := os.ReadFile("../migrations/000001_initial_schema.up.sql")
	if err != nil {
		t.Fatalf("Failed to read migration file: %v", err)
	}
	if _, err := db.Exec(string(migrationSQL)); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	cleanup := func() {
		db.Close()
		postgres.Terminate(ctx)
	}

	return db, cleanup
}

func insertTenant(t *testing.T, db *sql.DB, name string) string {
	t.Helper()

	var id string
	if err := db.QueryRow(`INSERT INTO tenants (name) VALUES ($1) RETURNING id`, name).Scan(&id); err != nil {
		t.Fatalf("Failed to insert tenant: %v", err)
	}
	return id
}

func TestManagerLoadAllTenants(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	idA := insertTenant(t, db, "Tenant A")
	idB := insertTenant(t, db, "Tenant B")

	manager := NewManager(db)
	if err := manager.LoadAllTenants(); err != nil {
		t.Fatalf("LoadAllTenants() failed: %v", err)
	}

	tenants := manager.ListTenants()
	if len(tenants) != 2 {
		t.Fatalf("expected 2 tenants, got %d", len(tenants))
	}

	for _, id := range []string{idA, idB} {
		if _, err := manager.GetEngine(id); err != nil {
			t.Errorf("GetEngine(%s) failed: %v", id, err)
		}
	}
}

func TestManagerGetEngineUnknownTenant(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	manager := NewManager(db)
	if err := manager.LoadAllTenants(); err != nil {
		t.Fatalf("LoadAllTenants() failed: %v", err)
	}

	if _, err := manager.GetEngine("00000000-0000-0000-0000-000000000000"); err == nil {
		t.Error("GetEngine() on unknown tenant should return an error")
	}
}

func TestManagerTenantEnginesAreIsolated(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	idA := insertTenant(t, db, "Tenant A")
	idB := insertTenant(t, db, "Tenant B")

	manager := NewManager(db)
	if err := manager.LoadAllTenants(); err != nil {
		t.Fatalf("LoadAllTenants() failed: %v", err)
	}

	engineA, err := manager.GetEngine(idA)
	if err != nil {
		t.Fatalf("GetEngine(A) failed: %v", err)
	}
	engineB, err := manager.GetEngine(idB)
	if err != nil {
		t.Fatalf("GetEngine(B) failed: %v", err)
	}

	if err := engineA.AddProjectType(&planner.ProjectType{ID: "pt-1", Name: "Seulement A", Active: true}); err != nil {
		t.Fatalf("AddProjectType() failed: %v", err)
	}

	catA, err := engineA.Catalog()
	if err != nil {
		t.Fatalf("Catalog(A) failed: %v", err)
	}
	if catA.ProjectType("pt-1") == nil {
		t.Error("tenant A should see its own project type")
	}

	catB, err := engineB.Catalog()
	if err != nil {
		t.Fatalf("Catalog(B) failed: %v", err)
	}
	if catB.ProjectType("pt-1") != nil {
		t.Error("tenant B must not see tenant A's project type")
	}
}

func TestManagerDeleteTenant(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	id := insertTenant(t, db, "Tenant A")

	manager := NewManager(db)
	if err := manager.LoadAllTenants(); err != nil {
		t.Fatalf("LoadAllTenants() failed: %v", err)
	}

	if err := manager.DeleteTenant(id); err != nil {
		t.Fatalf("DeleteTenant() failed: %v", err)
	}
	if _, err := manager.GetEngine(id); err == nil {
		t.Error("GetEngine() after DeleteTenant() should fail")
	}
	if err := manager.DeleteTenant(id); err == nil {
		t.Error("second DeleteTenant() should fail")
	}
}
