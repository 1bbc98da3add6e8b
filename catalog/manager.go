package catalog

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/liamcoop/projectforge/planner"
)

// TenantEngine wraps a planner.Engine with tenant metadata
type TenantEngine struct {
	TenantID string
	Name     string
	Engine   *planner.Engine
}

// Manager holds one planner engine per tenant, each backed by
// tenant-scoped PostgreSQL stores
type Manager struct {
	engines map[string]*TenantEngine
	db      *sql.DB
	mu      sync.RWMutex
}

// NewManager creates a new manager instance
func NewManager(db *sql.DB) *Manager {
	return &Manager{
		engines: make(map[string]*TenantEngine),
		db:      db,
	}
}

// LoadAllTenants loads all tenants from the database and initializes
// their engines, warming each tenant's catalog cache
func (m *Manager) LoadAllTenants() error {
	rows, err := m.db.Query(`
		SELECT id, name
		FROM tenants
		ORDER BY created_at ASC
	`)
	if err != nil {
		return fmt.Errorf("failed to fetch tenants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tenantID, name string
		if err := rows.Scan(&tenantID, &name); err != nil {
			return fmt.Errorf("failed to scan tenant row: %w", err)
		}

		if err := m.CreateTenant(tenantID, name); err != nil {
			return fmt.Errorf("failed to initialize tenant %s: %w", tenantID, err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating tenant rows: %w", err)
	}

	return nil
}

// CreateTenant builds an engine over the tenant's stores and registers
// it. The tenant row itself must already exist.
func (m *Manager) CreateTenant(tenantID, name string) error {
	ptStore := planner.NewPostgresProjectTypeStore(m.db, tenantID)
	tplStore := planner.NewPostgresTemplateStore(m.db, tenantID)

	engine, err := planner.NewEngine(ptStore, tplStore)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	m.mu.Lock()
	m.engines[tenantID] = &TenantEngine{
		TenantID: tenantID,
		Name:     name,
		Engine:   engine,
	}
	m.mu.Unlock()

	return nil
}

// GetEngine retrieves the engine for a specific tenant
func (m *Manager) GetEngine(tenantID string) (*planner.Engine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	te, exists := m.engines[tenantID]
	if !exists {
		return nil, fmt.Errorf("tenant %s not found", tenantID)
	}

	return te.Engine, nil
}

// ListTenants returns all loaded tenant IDs
func (m *Manager) ListTenants() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tenants := make([]string, 0, len(m.engines))
	for tenantID := range m.engines {
		tenants = append(tenants, tenantID)
	}
	return tenants
}

// DeleteTenant removes a tenant's engine from the manager.
// Note: this does not delete the tenant from the database.
func (m *Manager) DeleteTenant(tenantID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.engines[tenantID]; !exists {
		return fmt.Errorf("tenant %s not found", tenantID)
	}

	delete(m.engines, tenantID)
	return nil
}
