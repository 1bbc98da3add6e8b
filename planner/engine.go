package planner

import "fmt"

// Engine ties the project type store, the template catalog and the
// read cache together so callers recompute plans and timelines without
// touching persistence. All rule resolution itself is delegated to the
// pure builders; the engine holds no derived state of its own.
// Thread-safe for concurrent reads (stores and cache carry the locks).
type Engine struct {
	ptStore  ProjectTypeStore
	tplStore TemplateStore
	cache    CatalogCache
	clock    Clock
}

// NewEngine creates an engine over the given stores and warms the
// catalog cache
func NewEngine(ptStore ProjectTypeStore, tplStore TemplateStore) (*Engine, error) {
	return NewEngineWithClock(ptStore, tplStore, SystemClock{})
}

// NewEngineWithClock creates an engine with an explicit clock. Tests
// pass a fixed clock so generate-on-workflow dates are deterministic.
func NewEngineWithClock(ptStore ProjectTypeStore, tplStore TemplateStore, clock Clock) (*Engine, error) {
	en := &Engine{
		ptStore:  ptStore,
		tplStore: tplStore,
		cache:    NewInMemoryCatalogCache(DefaultCacheConfig()),
		clock:    clock,
	}

	if _, err := en.loadCatalog(); err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	return en, nil
}

// Catalog returns the cached catalog, reloading from the stores on a
// cache miss
func (en *Engine) Catalog() (*Catalog, error) {
	if c := en.cache.Get(); c != nil {
		return c, nil
	}
	return en.loadCatalog()
}

func (en *Engine) loadCatalog() (*Catalog, error) {
	projectTypes, err := en.ptStore.ListActive()
	if err != nil {
		return nil, err
	}
	templates, err := en.tplStore.List()
	if err != nil {
		return nil, err
	}

	c := &Catalog{ProjectTypes: projectTypes, Templates: templates}
	en.cache.Set(c)
	return c, nil
}

func (en *Engine) projectType(id string) (*ProjectType, *Catalog, error) {
	c, err := en.Catalog()
	if err != nil {
		return nil, nil, err
	}
	pt := c.ProjectType(id)
	if pt == nil {
		return nil, nil, fmt.Errorf("project type %s not found", id)
	}
	return pt, c, nil
}

// Questions returns the prerequisite questions active for the given
// selection, in configuration order
func (en *Engine) Questions(projectTypeID string, selectedOptionIDs []string) ([]*PrerequisiteQuestion, error) {
	pt, _, err := en.projectType(projectTypeID)
	if err != nil {
		return nil, err
	}
	return ActiveQuestions(pt.Questions, SelectedSet(selectedOptionIDs)), nil
}

// Plan returns the immediate generation plan for the given selection
// and client values
func (en *Engine) Plan(projectTypeID string, selectedOptionIDs []string, clientValues map[string]string) ([]GeneratedFile, error) {
	pt, c, err := en.projectType(projectTypeID)
	if err != nil {
		return nil, err
	}
	return BuildGenerationPlan(pt, selectedOptionIDs, clientValues, c.Templates), nil
}

// Timeline returns the three scheduled timelines anchored to the given
// deployment date
func (en *Engine) Timeline(projectTypeID, deploymentDate string, clientValues map[string]string) (*Timeline, error) {
	pt, c, err := en.projectType(projectTypeID)
	if err != nil {
		return nil, err
	}
	return &Timeline{
		Emails:    BuildScheduledEmails(pt, deploymentDate, clientValues, c.Templates, en.clock),
		Documents: BuildScheduledDocuments(pt, deploymentDate, c.Templates, en.clock),
		Questions: BuildScheduledQuestions(pt, deploymentDate, en.clock),
	}, nil
}

// AddProjectType validates and stores a new project type
func (en *Engine) AddProjectType(pt *ProjectType) error {
	if err := ValidateProjectType(pt); err != nil {
		return fmt.Errorf("project type validation failed: %w", err)
	}

	if err := en.ptStore.Add(pt); err != nil {
		return err
	}

	en.cache.Invalidate()
	return nil
}

// UpdateProjectType validates and updates an existing project type
func (en *Engine) UpdateProjectType(pt *ProjectType) error {
	if err := ValidateProjectType(pt); err != nil {
		return fmt.Errorf("project type validation failed: %w", err)
	}

	if err := en.ptStore.Update(pt); err != nil {
		return err
	}

	en.cache.Invalidate()
	return nil
}

// DeleteProjectType removes a project type. Schedule rules elsewhere
// that referenced its rules simply stop resolving; the builders drop
// them rather than erroring.
func (en *Engine) DeleteProjectType(id string) error {
	if err := en.ptStore.Delete(id); err != nil {
		return err
	}

	en.cache.Invalidate()
	return nil
}

// GetProjectType retrieves one project type from the backing store,
// bypassing the active-only catalog
func (en *Engine) GetProjectType(id string) (*ProjectType, error) {
	return en.ptStore.Get(id)
}

// AddTemplate validates and stores a new template
func (en *Engine) AddTemplate(tpl *Template) error {
	if err := ValidateTemplate(tpl); err != nil {
		return fmt.Errorf("template validation failed: %w", err)
	}

	if err := en.tplStore.Add(tpl); err != nil {
		return err
	}

	en.cache.Invalidate()
	return nil
}

// UpdateTemplate validates and updates an existing template
func (en *Engine) UpdateTemplate(tpl *Template) error {
	if err := ValidateTemplate(tpl); err != nil {
		return fmt.Errorf("template validation failed: %w", err)
	}

	if err := en.tplStore.Update(tpl); err != nil {
		return err
	}

	en.cache.Invalidate()
	return nil
}

// DeleteTemplate removes a template. Generation rules that still
// reference it fail open: their files and scheduled documents drop out
// of the outputs, scheduled emails keep a sentinel template name.
func (en *Engine) DeleteTemplate(id string) error {
	if err := en.tplStore.Delete(id); err != nil {
		return err
	}

	en.cache.Invalidate()
	return nil
}

// GetTemplate retrieves one template from the backing store
func (en *Engine) GetTemplate(id string) (*Template, error) {
	return en.tplStore.Get(id)
}
