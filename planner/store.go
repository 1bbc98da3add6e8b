package planner

import (
	"fmt"
	"sync"
	"time"
)

// ProjectTypeStore manages project type persistence and retrieval
type ProjectTypeStore interface {
	// Add a new project type
	Add(pt *ProjectType) error

	// Get a project type by ID
	Get(id string) (*ProjectType, error)

	// List all active project types
	ListActive() ([]*ProjectType, error)

	// Update an existing project type
	Update(pt *ProjectType) error

	// Delete a project type
	Delete(id string) error
}

// TemplateStore manages template catalog persistence and retrieval
type TemplateStore interface {
	// Add a new template
	Add(tpl *Template) error

	// Get a template by ID
	Get(id string) (*Template, error)

	// List the whole catalog
	List() ([]*Template, error)

	// Update an existing template
	Update(tpl *Template) error

	// Delete a template
	Delete(id string) error
}

// InMemoryProjectTypeStore implements ProjectTypeStore using an
// in-memory map. Thread-safe with RWMutex.
type InMemoryProjectTypeStore struct {
	projectTypes map[string]*ProjectType
	mu           sync.RWMutex
}

// NewInMemoryProjectTypeStore creates a new in-memory project type store
func NewInMemoryProjectTypeStore() *InMemoryProjectTypeStore {
	return &InMemoryProjectTypeStore{
		projectTypes: make(map[string]*ProjectType),
	}
}

// Add adds a new project type, enforcing unique IDs and setting timestamps
func (s *InMemoryProjectTypeStore) Add(pt *ProjectType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projectTypes[pt.ID]; exists {
		return fmt.Errorf("project type with ID %s already exists", pt.ID)
	}

	now := time.Now()
	pt.CreatedAt = now
	pt.UpdatedAt = now
	s.projectTypes[pt.ID] = pt
	return nil
}

// Get retrieves a project type by ID
func (s *InMemoryProjectTypeStore) Get(id string) (*ProjectType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pt, exists := s.projectTypes[id]
	if !exists {
		return nil, fmt.Errorf("project type with ID %s not found", id)
	}
	return pt, nil
}

// ListActive returns all active project types
func (s *InMemoryProjectTypeStore) ListActive() ([]*ProjectType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var active []*ProjectType
	for _, pt := range s.projectTypes {
		if pt.Active {
			active = append(active, pt)
		}
	}
	return active, nil
}

// Update updates an existing project type, preserving CreatedAt
func (s *InMemoryProjectTypeStore) Update(pt *ProjectType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.projectTypes[pt.ID]
	if !exists {
		return fmt.Errorf("project type with ID %s not found", pt.ID)
	}

	pt.CreatedAt = existing.CreatedAt
	pt.UpdatedAt = time.Now()
	s.projectTypes[pt.ID] = pt
	return nil
}

// Delete removes a project type from the store
func (s *InMemoryProjectTypeStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projectTypes[id]; !exists {
		return fmt.Errorf("project type with ID %s not found", id)
	}

	delete(s.projectTypes, id)
	return nil
}

// InMemoryTemplateStore implements TemplateStore using an in-memory map.
// Thread-safe with RWMutex.
type InMemoryTemplateStore struct {
	templates map[string]*Template
	mu        sync.RWMutex
}

// NewInMemoryTemplateStore creates a new in-memory template store
func NewInMemoryTemplateStore() *InMemoryTemplateStore {
	return &InMemoryTemplateStore{
		templates: make(map[string]*Template),
	}
}

// Add adds a new template, enforcing unique IDs and setting timestamps
func (s *InMemoryTemplateStore) Add(tpl *Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.templates[tpl.ID]; exists {
		return fmt.Errorf("template with ID %s already exists", tpl.ID)
	}

	now := time.Now()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now
	s.templates[tpl.ID] = tpl
	return nil
}

// Get retrieves a template by ID
func (s *InMemoryTemplateStore) Get(id string) (*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tpl, exists := s.templates[id]
	if !exists {
		return nil, fmt.Errorf("template with ID %s not found", id)
	}
	return tpl, nil
}

// List returns the whole template catalog
func (s *InMemoryTemplateStore) List() ([]*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []*Template
	for _, tpl := range s.templates {
		all = append(all, tpl)
	}
	return all, nil
}

// Update updates an existing template, preserving CreatedAt
func (s *InMemoryTemplateStore) Update(tpl *Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.templates[tpl.ID]
	if !exists {
		return fmt.Errorf("template with ID %s not found", tpl.ID)
	}

	tpl.CreatedAt = existing.CreatedAt
	tpl.UpdatedAt = time.Now()
	s.templates[tpl.ID] = tpl
	return nil
}

// Delete removes a template from the store
func (s *InMemoryTemplateStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.templates[id]; !exists {
		return fmt.Errorf("template with ID %s not found", id)
	}

	delete(s.templates, id)
	return nil
}
