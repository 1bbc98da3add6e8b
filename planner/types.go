package planner

import "time"

// AnswerType identifies the input widget a prerequisite question uses
type AnswerType string

const (
	AnswerText     AnswerType = "text"
	AnswerYesNo    AnswerType = "yes-no"
	AnswerDropdown AnswerType = "dropdown"
	AnswerNumber   AnswerType = "number"
)

// TemplateType identifies the binary format a template renders to
type TemplateType string

const (
	TemplateDOCX  TemplateType = "DOCX"
	TemplateXLSX  TemplateType = "XLSX"
	TemplatePDF   TemplateType = "PDF"
	TemplateEmail TemplateType = "EMAIL"
)

// FileExtension returns the extension (including the dot) for files
// generated from a template of this type
func (t TemplateType) FileExtension() string {
	switch t {
	case TemplateDOCX:
		return ".docx"
	case TemplateXLSX:
		return ".xlsx"
	case TemplatePDF:
		return ".pdf"
	case TemplateEmail:
		return ".eml"
	default:
		return ""
	}
}

// Option is a selectable feature flag on a project type
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Condition gates a question or generation rule on a single option.
// A nil *Condition means "always active"; compound conditions do not exist.
type Condition struct {
	OptionID string `json:"optionId"`
}

// PrerequisiteQuestion is asked before a project can be instantiated
type PrerequisiteQuestion struct {
	ID              string     `json:"id"`
	Label           string     `json:"label"`
	AnswerType      AnswerType `json:"answerType"`
	Required        bool       `json:"required"`
	Condition       *Condition `json:"condition,omitempty"`
	DropdownOptions []string   `json:"dropdownOptions,omitempty"`
}

// DocumentRule maps a template to an output file name pattern and a
// destination path, optionally gated by a condition
type DocumentRule struct {
	ID              string     `json:"id"`
	Condition       *Condition `json:"condition,omitempty"`
	TemplateID      string     `json:"templateId"`
	OutputPattern   string     `json:"outputPattern"`
	DestinationPath string     `json:"destinationPath"`
	Active          bool       `json:"active"`
}

// EmailRule is a generation rule for email files; the recipient is
// itself a pattern resolved against client values
type EmailRule struct {
	ID              string     `json:"id"`
	Condition       *Condition `json:"condition,omitempty"`
	TemplateID      string     `json:"templateId"`
	OutputPattern   string     `json:"outputPattern"`
	DestinationPath string     `json:"destinationPath"`
	Recipient       string     `json:"recipient"`
	Active          bool       `json:"active"`
}

// EmailScheduleRule attaches a time offset to an email rule
type EmailScheduleRule struct {
	ID                   string `json:"id"`
	EmailRuleID          string `json:"emailRuleId"`
	DaysBeforeDeployment int    `json:"daysBeforeDeployment"`
	Label                string `json:"label"`
	Description          string `json:"description,omitempty"`
	GenerateOnWorkflow   bool   `json:"generateOnWorkflow,omitempty"`
}

// DocumentScheduleRule attaches a time offset to a document rule
type DocumentScheduleRule struct {
	ID                   string `json:"id"`
	DocumentRuleID       string `json:"documentRuleId"`
	DaysBeforeDeployment int    `json:"daysBeforeDeployment"`
	Label                string `json:"label"`
	Description          string `json:"description,omitempty"`
	RequiresAction       bool   `json:"requiresAction,omitempty"`
	GenerateOnWorkflow   bool   `json:"generateOnWorkflow,omitempty"`
}

// QuestionScheduleRule attaches a time offset to a prerequisite question
type QuestionScheduleRule struct {
	ID                   string `json:"id"`
	QuestionID           string `json:"questionId"`
	DaysBeforeDeployment int    `json:"daysBeforeDeployment"`
	Label                string `json:"label"`
	Description          string `json:"description,omitempty"`
	RequiresAction       bool   `json:"requiresAction,omitempty"`
	GenerateOnWorkflow   bool   `json:"generateOnWorkflow,omitempty"`
}

// Template is an entry in the template catalog. The engine only reads
// ID, Type and Name; Content and EmailSubject are carried for the
// document/email encoders downstream.
type Template struct {
	ID           string       `json:"id"`
	Type         TemplateType `json:"type"`
	Name         string       `json:"name"`
	Content      string       `json:"content,omitempty"`
	EmailSubject string       `json:"emailSubject,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// ProjectType bundles options, questions, generation rules and schedule
// rules into a reusable configuration
type ProjectType struct {
	ID                string                  `json:"id"`
	Name              string                  `json:"name"`
	Active            bool                    `json:"active"`
	Options           []*Option               `json:"options,omitempty"`
	Questions         []*PrerequisiteQuestion `json:"questions,omitempty"`
	DocumentRules     []*DocumentRule         `json:"documentRules,omitempty"`
	EmailRules        []*EmailRule            `json:"emailRules,omitempty"`
	EmailSchedules    []*EmailScheduleRule    `json:"emailSchedules,omitempty"`
	DocumentSchedules []*DocumentScheduleRule `json:"documentSchedules,omitempty"`
	QuestionSchedules []*QuestionScheduleRule `json:"questionSchedules,omitempty"`
	CreatedAt         time.Time               `json:"createdAt"`
	UpdatedAt         time.Time               `json:"updatedAt"`
}

// GeneratedFile is one artifact of the immediate generation plan.
// Recomputed on every call, never persisted by the engine.
type GeneratedFile struct {
	Name            string       `json:"name"`
	Type            TemplateType `json:"type"`
	TemplateID      string       `json:"templateId"`
	DestinationPath string       `json:"destinationPath"`
}

// ScheduledEmail is a future-dated email in the project timeline
type ScheduledEmail struct {
	ID                 string    `json:"id"`
	Date               time.Time `json:"date"`
	Label              string    `json:"label"`
	Description        string    `json:"description,omitempty"`
	TemplateID         string    `json:"templateId"`
	TemplateName       string    `json:"templateName"`
	Recipient          string    `json:"recipient"`
	GenerateOnWorkflow bool      `json:"generateOnWorkflow"`
}

// ScheduledDocument is a future-dated document in the project timeline
type ScheduledDocument struct {
	ID                 string    `json:"id"`
	Date               time.Time `json:"date"`
	Label              string    `json:"label"`
	Description        string    `json:"description,omitempty"`
	DocumentRuleID     string    `json:"documentRuleId"`
	OutputPattern      string    `json:"outputPattern"`
	RequiresAction     bool      `json:"requiresAction"`
	GenerateOnWorkflow bool      `json:"generateOnWorkflow"`
}

// ScheduledQuestion is a future-dated question reminder in the project timeline
type ScheduledQuestion struct {
	ID                 string    `json:"id"`
	Date               time.Time `json:"date"`
	Label              string    `json:"label"`
	Description        string    `json:"description,omitempty"`
	QuestionID         string    `json:"questionId"`
	QuestionLabel      string    `json:"questionLabel"`
	RequiresAction     bool      `json:"requiresAction"`
	GenerateOnWorkflow bool      `json:"generateOnWorkflow"`
}

// Timeline groups the three schedule variants for one deployment date
type Timeline struct {
	Emails    []ScheduledEmail    `json:"emails"`
	Documents []ScheduledDocument `json:"documents"`
	Questions []ScheduledQuestion `json:"questions"`
}
