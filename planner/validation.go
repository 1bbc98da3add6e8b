package planner

import "fmt"

// ValidateProjectType performs presence checks on a project type
// configuration before it is stored. Referential integrity (template
// ids resolving, schedule owners existing) is deliberately not checked
// here: the builders fail open on dangling references so configuration
// can be edited in any order.
func ValidateProjectType(pt *ProjectType) error {
	if pt == nil {
		return fmt.Errorf("project type cannot be nil")
	}
	if pt.ID == "" {
		return fmt.Errorf("project type id cannot be empty")
	}
	if pt.Name == "" {
		return fmt.Errorf("project type name cannot be empty")
	}

	for _, opt := range pt.Options {
		if opt.ID == "" {
			return fmt.Errorf("option label %q has empty id", opt.Label)
		}
		if opt.Label == "" {
			return fmt.Errorf("option %s has empty label", opt.ID)
		}
	}

	for _, q := range pt.Questions {
		if q.ID == "" {
			return fmt.Errorf("question %q has empty id", q.Label)
		}
		if q.Label == "" {
			return fmt.Errorf("question %s has empty label", q.ID)
		}
		if !isValidAnswerType(q.AnswerType) {
			return fmt.Errorf("question %s has invalid answer type %q (must be one of: text, yes-no, dropdown, number)", q.ID, q.AnswerType)
		}
		if q.AnswerType == AnswerDropdown && len(q.DropdownOptions) == 0 {
			return fmt.Errorf("dropdown question %s has no options", q.ID)
		}
	}

	for _, r := range pt.DocumentRules {
		if r.ID == "" {
			return fmt.Errorf("document rule has empty id")
		}
		if r.TemplateID == "" {
			return fmt.Errorf("document rule %s has empty template id", r.ID)
		}
	}

	for _, r := range pt.EmailRules {
		if r.ID == "" {
			return fmt.Errorf("email rule has empty id")
		}
		if r.TemplateID == "" {
			return fmt.Errorf("email rule %s has empty template id", r.ID)
		}
	}

	for _, sr := range pt.EmailSchedules {
		if sr.ID == "" {
			return fmt.Errorf("email schedule rule has empty id")
		}
		if sr.EmailRuleID == "" {
			return fmt.Errorf("email schedule rule %s has empty email rule id", sr.ID)
		}
		if sr.Label == "" {
			return fmt.Errorf("email schedule rule %s has empty label", sr.ID)
		}
	}

	for _, sr := range pt.DocumentSchedules {
		if sr.ID == "" {
			return fmt.Errorf("document schedule rule has empty id")
		}
		if sr.DocumentRuleID == "" {
			return fmt.Errorf("document schedule rule %s has empty document rule id", sr.ID)
		}
		if sr.Label == "" {
			return fmt.Errorf("document schedule rule %s has empty label", sr.ID)
		}
	}

	for _, sr := range pt.QuestionSchedules {
		if sr.ID == "" {
			return fmt.Errorf("question schedule rule has empty id")
		}
		if sr.QuestionID == "" {
			return fmt.Errorf("question schedule rule %s has empty question id", sr.ID)
		}
		if sr.Label == "" {
			return fmt.Errorf("question schedule rule %s has empty label", sr.ID)
		}
	}

	return nil
}

// ValidateTemplate performs presence checks on a catalog template
func ValidateTemplate(tpl *Template) error {
	if tpl == nil {
		return fmt.Errorf("template cannot be nil")
	}
	if tpl.ID == "" {
		return fmt.Errorf("template id cannot be empty")
	}
	if tpl.Name == "" {
		return fmt.Errorf("template %s has empty name", tpl.ID)
	}
	if !isValidTemplateType(tpl.Type) {
		return fmt.Errorf("template %s has invalid type %q (must be one of: DOCX, XLSX, PDF, EMAIL)", tpl.ID, tpl.Type)
	}
	return nil
}

func isValidAnswerType(t AnswerType) bool {
	switch t {
	case AnswerText, AnswerYesNo, AnswerDropdown, AnswerNumber:
		return true
	}
	return false
}

func isValidTemplateType(t TemplateType) bool {
	switch t {
	case TemplateDOCX, TemplateXLSX, TemplatePDF, TemplateEmail:
		return true
	}
	return false
}
