package planner

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresProjectTypeStore implements ProjectTypeStore backed by
// PostgreSQL. The full configuration (options, questions, rules,
// schedules) lives in a JSONB definition column; id, name and active
// are promoted to columns for filtering.
type PostgresProjectTypeStore struct {
	db       *sql.DB
	tenantID string
}

// NewPostgresProjectTypeStore creates a PostgreSQL-backed store scoped
// to a single tenant
func NewPostgresProjectTypeStore(db *sql.DB, tenantID string) *PostgresProjectTypeStore {
	return &PostgresProjectTypeStore{
		db:       db,
		tenantID: tenantID,
	}
}

// Add inserts a new project type
func (s *PostgresProjectTypeStore) Add(pt *ProjectType) error {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM project_types WHERE id = $1 AND tenant_id = $2)
	`, pt.ID, s.tenantID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check project type existence: %w", err)
	}
	if exists {
		return fmt.Errorf("project type with ID %s already exists", pt.ID)
	}

	now := time.Now()
	pt.CreatedAt = now
	pt.UpdatedAt = now

	definition, err := json.Marshal(pt)
	if err != nil {
		return fmt.Errorf("failed to marshal project type: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO project_types (id, tenant_id, name, active, definition, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, pt.ID, s.tenantID, pt.Name, pt.Active, definition, pt.CreatedAt, pt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert project type: %w", err)
	}

	return nil
}

// Get retrieves a project type by ID
func (s *PostgresProjectTypeStore) Get(id string) (*ProjectType, error) {
	var definition []byte
	err := s.db.QueryRow(`
		SELECT definition
		FROM project_types
		WHERE id = $1 AND tenant_id = $2
	`, id, s.tenantID).Scan(&definition)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project type %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project type: %w", err)
	}

	return unmarshalProjectType(definition)
}

// ListActive returns all active project types for the tenant
func (s *PostgresProjectTypeStore) ListActive() ([]*ProjectType, error) {
	rows, err := s.db.Query(`
		SELECT definition
		FROM project_types
		WHERE tenant_id = $1 AND active = true
		ORDER BY created_at ASC
	`, s.tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active project types: %w", err)
	}
	defer rows.Close()

	var projectTypes []*ProjectType
	for rows.Next() {
		var definition []byte
		if err := rows.Scan(&definition); err != nil {
			return nil, fmt.Errorf("failed to scan project type: %w", err)
		}
		pt, err := unmarshalProjectType(definition)
		if err != nil {
			return nil, err
		}
		projectTypes = append(projectTypes, pt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project types: %w", err)
	}

	return projectTypes, nil
}

// Update modifies an existing project type
func (s *PostgresProjectTypeStore) Update(pt *ProjectType) error {
	existing, err := s.Get(pt.ID)
	if err != nil {
		return err
	}

	pt.CreatedAt = existing.CreatedAt
	pt.UpdatedAt = time.Now()

	definition, err := json.Marshal(pt)
	if err != nil {
		return fmt.Errorf("failed to marshal project type: %w", err)
	}

	result, err := s.db.Exec(`
		UPDATE project_types
		SET name = $1, active = $2, definition = $3, updated_at = $4
		WHERE id = $5 AND tenant_id = $6
	`, pt.Name, pt.Active, definition, pt.UpdatedAt, pt.ID, s.tenantID)
	if err != nil {
		return fmt.Errorf("failed to update project type: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("project type %s not found", pt.ID)
	}

	return nil
}

// Delete removes a project type from the database
func (s *PostgresProjectTypeStore) Delete(id string) error {
	result, err := s.db.Exec(`
		DELETE FROM project_types
		WHERE id = $1 AND tenant_id = $2
	`, id, s.tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete project type: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("project type %s not found", id)
	}

	return nil
}

func unmarshalProjectType(definition []byte) (*ProjectType, error) {
	var pt ProjectType
	if err := json.Unmarshal(definition, &pt); err != nil {
		return nil, fmt.Errorf("invalid project type definition: %w", err)
	}
	return &pt, nil
}

// PostgresTemplateStore implements TemplateStore backed by PostgreSQL
type PostgresTemplateStore struct {
	db       *sql.DB
	tenantID string
}

// NewPostgresTemplateStore creates a PostgreSQL-backed template store
// scoped to a single tenant
func NewPostgresTemplateStore(db *sql.DB, tenantID string) *PostgresTemplateStore {
	return &PostgresTemplateStore{
		db:       db,
		tenantID: tenantID,
	}
}

// Add inserts a new template
func (s *PostgresTemplateStore) Add(tpl *Template) error {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM templates WHERE id = $1 AND tenant_id = $2)
	`, tpl.ID, s.tenantID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check template existence: %w", err)
	}
	if exists {
		return fmt.Errorf("template with ID %s already exists", tpl.ID)
	}

	now := time.Now()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now

	_, err = s.db.Exec(`
		INSERT INTO templates (id, tenant_id, type, name, content, email_subject, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, tpl.ID, s.tenantID, string(tpl.Type), tpl.Name, tpl.Content, tpl.EmailSubject,
		tpl.CreatedAt, tpl.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert template: %w", err)
	}

	return nil
}

// Get retrieves a template by ID
func (s *PostgresTemplateStore) Get(id string) (*Template, error) {
	var tpl Template
	err := s.db.QueryRow(`
		SELECT id, type, name, content, email_subject, created_at, updated_at
		FROM templates
		WHERE id = $1 AND tenant_id = $2
	`, id, s.tenantID).Scan(
		&tpl.ID,
		&tpl.Type,
		&tpl.Name,
		&tpl.Content,
		&tpl.EmailSubject,
		&tpl.CreatedAt,
		&tpl.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("template %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	return &tpl, nil
}

// List returns the whole template catalog for the tenant
func (s *PostgresTemplateStore) List() ([]*Template, error) {
	rows, err := s.db.Query(`
		SELECT id, type, name, content, email_subject, created_at, updated_at
		FROM templates
		WHERE tenant_id = $1
		ORDER BY created_at ASC
	`, s.tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []*Template
	for rows.Next() {
		var tpl Template
		if err := rows.Scan(&tpl.ID, &tpl.Type, &tpl.Name, &tpl.Content,
			&tpl.EmailSubject, &tpl.CreatedAt, &tpl.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, &tpl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating templates: %w", err)
	}

	return templates, nil
}

// Update modifies an existing template
func (s *PostgresTemplateStore) Update(tpl *Template) error {
	existing, err := s.Get(tpl.ID)
	if err != nil {
		return err
	}

	tpl.CreatedAt = existing.CreatedAt
	tpl.UpdatedAt = time.Now()

	result, err := s.db.Exec(`
		UPDATE templates
		SET type = $1, name = $2, content = $3, email_subject = $4, updated_at = $5
		WHERE id = $6 AND tenant_id = $7
	`, string(tpl.Type), tpl.Name, tpl.Content, tpl.EmailSubject, tpl.UpdatedAt,
		tpl.ID, s.tenantID)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("template %s not found", tpl.ID)
	}

	return nil
}

// Delete removes a template from the database
func (s *PostgresTemplateStore) Delete(id string) error {
	result, err := s.db.Exec(`
		DELETE FROM templates
		WHERE id = $1 AND tenant_id = $2
	`, id, s.tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("template %s not found", id)
	}

	return nil
}
