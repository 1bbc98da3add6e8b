package planner

import (
	"testing"
	"time"
)

func newTestEngine(t *testing.T) (*Engine, *InMemoryProjectTypeStore, *InMemoryTemplateStore) {
	t.Helper()

	ptStore := NewInMemoryProjectTypeStore()
	tplStore := NewInMemoryTemplateStore()

	for _, tpl := range testTemplates() {
		if err := tplStore.Add(tpl); err != nil {
			t.Fatalf("failed to seed template: %v", err)
		}
	}

	pt := scheduleFixture()
	pt.Active = true
	if err := ptStore.Add(pt); err != nil {
		t.Fatalf("failed to seed project type: %v", err)
	}

	clock := fixedClock{now: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)}
	engine, err := NewEngineWithClock(ptStore, tplStore, clock)
	if err != nil {
		t.Fatalf("NewEngineWithClock() failed: %v", err)
	}

	return engine, ptStore, tplStore
}

func TestNewEngineWarmsCatalog(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	if !engine.cache.IsValid() {
		t.Error("engine should warm the catalog cache on construction")
	}

	c, err := engine.Catalog()
	if err != nil {
		t.Fatalf("Catalog() failed: %v", err)
	}
	if len(c.ProjectTypes) != 1 || len(c.Templates) != 4 {
		t.Errorf("catalog has %d project types and %d templates", len(c.ProjectTypes), len(c.Templates))
	}
}

func TestEngineQuestions(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	questions, err := engine.Questions("pt-1", nil)
	if err != nil {
		t.Fatalf("Questions() failed: %v", err)
	}
	if len(questions) != 1 || questions[0].ID != "q1" {
		t.Errorf("Questions() = %+v", questions)
	}
}

func TestEngineQuestionsUnknownProjectType(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	if _, err := engine.Questions("absent", nil); err == nil {
		t.Error("Questions() on unknown project type should return an error")
	}
}

func TestEnginePlan(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	files, err := engine.Plan("pt-1", nil, map[string]string{"nom_client": "Acme"})
	if err != nil {
		t.Fatalf("Plan() failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files (1 document + 1 email), got %d", len(files))
	}
	if files[0].Name != "Acme_contrat.docx" {
		t.Errorf("files[0].Name = %q", files[0].Name)
	}
	if files[1].Type != TemplateEmail {
		t.Errorf("files[1].Type = %q, email files come after documents", files[1].Type)
	}
}

func TestEngineTimeline(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	timeline, err := engine.Timeline("pt-1", "2026-03-10", map[string]string{"contact_email": "ops@acme.example"})
	if err != nil {
		t.Fatalf("Timeline() failed: %v", err)
	}
	if len(timeline.Emails) != 1 || len(timeline.Documents) != 1 || len(timeline.Questions) != 1 {
		t.Fatalf("timeline = %d emails, %d documents, %d questions",
			len(timeline.Emails), len(timeline.Documents), len(timeline.Questions))
	}
	if timeline.Emails[0].Recipient != "ops@acme.example" {
		t.Errorf("Recipient = %q", timeline.Emails[0].Recipient)
	}
}

func TestEngineTimelineWithoutDeploymentDate(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	timeline, err := engine.Timeline("pt-1", "", nil)
	if err != nil {
		t.Fatalf("Timeline() failed: %v", err)
	}
	if len(timeline.Emails) != 0 || len(timeline.Documents) != 0 || len(timeline.Questions) != 0 {
		t.Error("timeline without a deployment date should be empty")
	}
}

func TestEngineMutationsInvalidateCache(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	// Deleting the email template must be visible on the next plan:
	// the email file disappears, the document file survives.
	if err := engine.DeleteTemplate("t3"); err != nil {
		t.Fatalf("DeleteTemplate() failed: %v", err)
	}

	files, err := engine.Plan("pt-1", nil, map[string]string{"nom_client": "Acme"})
	if err != nil {
		t.Fatalf("Plan() failed: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file after template deletion, got %d", len(files))
	}
	if files[0].Name != "Acme_contrat.docx" {
		t.Errorf("surviving file = %q", files[0].Name)
	}

	// And the scheduled email keeps the sentinel template name
	timeline, err := engine.Timeline("pt-1", "2026-03-10", nil)
	if err != nil {
		t.Fatalf("Timeline() failed: %v", err)
	}
	if len(timeline.Emails) != 1 || timeline.Emails[0].TemplateName != UnknownTemplateName {
		t.Errorf("scheduled email after template deletion = %+v", timeline.Emails)
	}
}

func TestEngineAddProjectTypeValidates(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	err := engine.AddProjectType(&ProjectType{ID: "", Name: "Sans id"})
	if err == nil {
		t.Error("AddProjectType() should reject an empty id")
	}

	err = engine.AddProjectType(&ProjectType{
		ID:   "pt-2",
		Name: "Question invalide",
		Questions: []*PrerequisiteQuestion{
			{ID: "q1", Label: "Type ?", AnswerType: "checkbox"},
		},
	})
	if err == nil {
		t.Error("AddProjectType() should reject an unknown answer type")
	}
}

func TestEngineAddProjectTypeVisibleInCatalog(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	pt := &ProjectType{ID: "pt-2", Name: "Migration", Active: true}
	if err := engine.AddProjectType(pt); err != nil {
		t.Fatalf("AddProjectType() failed: %v", err)
	}

	c, err := engine.Catalog()
	if err != nil {
		t.Fatalf("Catalog() failed: %v", err)
	}
	if c.ProjectType("pt-2") == nil {
		t.Error("new project type should appear in the catalog")
	}
}

func TestEngineAddTemplateValidates(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	if err := engine.AddTemplate(&Template{ID: "t9", Name: "Mauvais type", Type: "ODT"}); err == nil {
		t.Error("AddTemplate() should reject an unknown template type")
	}
}
