package planner

import (
	"strings"
	"testing"
)

func validProjectType() *ProjectType {
	return &ProjectType{
		ID:     "pt-1",
		Name:   "Déploiement standard",
		Active: true,
		Options: []*Option{
			{ID: "opt-vpn", Label: "Accès VPN"},
		},
		Questions: []*PrerequisiteQuestion{
			{ID: "q1", Label: "Nom du contact", AnswerType: AnswerText},
			{ID: "q2", Label: "Environnement", AnswerType: AnswerDropdown, DropdownOptions: []string{"dev", "prod"}},
		},
		DocumentRules: []*DocumentRule{
			{ID: "d1", TemplateID: "t1", OutputPattern: "{{nom_client}}_contrat", Active: true},
		},
		EmailRules: []*EmailRule{
			{ID: "e1", TemplateID: "t3", Recipient: "{{contact_email}}", Active: true},
		},
		EmailSchedules: []*EmailScheduleRule{
			{ID: "se1", EmailRuleID: "e1", DaysBeforeDeployment: -7, Label: "Annonce J-7"},
		},
		DocumentSchedules: []*DocumentScheduleRule{
			{ID: "sd1", DocumentRuleID: "d1", Label: "Contrat jour J"},
		},
		QuestionSchedules: []*QuestionScheduleRule{
			{ID: "sq1", QuestionID: "q1", DaysBeforeDeployment: 5, Label: "Relance contact"},
		},
	}
}

func TestValidateProjectTypeValid(t *testing.T) {
	if err := ValidateProjectType(validProjectType()); err != nil {
		t.Errorf("valid project type rejected: %v", err)
	}
}

func TestValidateProjectType(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(pt *ProjectType)
		wantErr string
	}{
		{"Empty id", func(pt *ProjectType) { pt.ID = "" }, "id cannot be empty"},
		{"Empty name", func(pt *ProjectType) { pt.Name = "" }, "name cannot be empty"},
		{"Option without id", func(pt *ProjectType) { pt.Options[0].ID = "" }, "empty id"},
		{"Option without label", func(pt *ProjectType) { pt.Options[0].Label = "" }, "empty label"},
		{"Question without label", func(pt *ProjectType) { pt.Questions[0].Label = "" }, "empty label"},
		{"Invalid answer type", func(pt *ProjectType) { pt.Questions[0].AnswerType = "checkbox" }, "invalid answer type"},
		{"Dropdown without options", func(pt *ProjectType) { pt.Questions[1].DropdownOptions = nil }, "no options"},
		{"Document rule without template", func(pt *ProjectType) { pt.DocumentRules[0].TemplateID = "" }, "empty template id"},
		{"Email rule without template", func(pt *ProjectType) { pt.EmailRules[0].TemplateID = "" }, "empty template id"},
		{"Email schedule without owner", func(pt *ProjectType) { pt.EmailSchedules[0].EmailRuleID = "" }, "empty email rule id"},
		{"Email schedule without label", func(pt *ProjectType) { pt.EmailSchedules[0].Label = "" }, "empty label"},
		{"Document schedule without owner", func(pt *ProjectType) { pt.DocumentSchedules[0].DocumentRuleID = "" }, "empty document rule id"},
		{"Question schedule without owner", func(pt *ProjectType) { pt.QuestionSchedules[0].QuestionID = "" }, "empty question id"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pt := validProjectType()
			tc.mutate(pt)

			err := ValidateProjectType(pt)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestValidateProjectTypeDanglingReferencesAllowed(t *testing.T) {
	// Referential integrity is not validation's job: the builders fail
	// open on dangling references so configuration can be edited in any
	// order.
	pt := validProjectType()
	pt.EmailSchedules[0].EmailRuleID = "not-yet-created"
	pt.DocumentRules[0].TemplateID = "deleted-template"

	if err := ValidateProjectType(pt); err != nil {
		t.Errorf("dangling references should pass presence validation: %v", err)
	}
}

func TestValidateTemplate(t *testing.T) {
	testCases := []struct {
		name    string
		tpl     *Template
		wantErr bool
	}{
		{"Valid DOCX", &Template{ID: "t1", Type: TemplateDOCX, Name: "Contrat"}, false},
		{"Valid EMAIL", &Template{ID: "t2", Type: TemplateEmail, Name: "Annonce", EmailSubject: "Go-live"}, false},
		{"Nil", nil, true},
		{"Empty id", &Template{Type: TemplatePDF, Name: "X"}, true},
		{"Empty name", &Template{ID: "t3", Type: TemplatePDF}, true},
		{"Unknown type", &Template{ID: "t4", Type: "ODT", Name: "X"}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTemplate(tc.tpl)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateTemplate(%+v) error = %v, wantErr %v", tc.tpl, err, tc.wantErr)
			}
		})
	}
}
