package planner

import (
	"sort"
	"time"
)

// DeploymentDateLayout is the wire format for deployment dates
const DeploymentDateLayout = "2006-01-02"

// UnknownTemplateName is emitted for scheduled emails whose template
// has been deleted from the catalog. The document variant drops such
// items instead; both behaviors are load-bearing for callers.
const UnknownTemplateName = "Template inconnu"

// Clock supplies the wall-clock instant used for generate-on-workflow
// items. Injecting it keeps the schedule builders deterministic under
// test; production callers pass SystemClock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// parseDeploymentDate interprets the deployment date as midnight UTC.
// All calendar offsets are applied in UTC so a schedule never shifts
// across daylight-saving boundaries.
func parseDeploymentDate(deploymentDate string) (time.Time, bool) {
	if deploymentDate == "" {
		return time.Time{}, false
	}
	anchor, err := time.Parse(DeploymentDateLayout, deploymentDate)
	if err != nil {
		return time.Time{}, false
	}
	return anchor, true
}

// scheduleDate computes the due date for one schedule rule: the
// wall-clock instant when generateOnWorkflow is set (the offset is
// ignored in that mode), otherwise the anchor plus the signed offset
// in calendar days.
func scheduleDate(anchor time.Time, offsetDays int, generateOnWorkflow bool, clock Clock) time.Time {
	if generateOnWorkflow {
		return clock.Now()
	}
	return anchor.AddDate(0, 0, offsetDays)
}

// buildScheduled runs the shared schedule-rule loop: each rule is
// mapped to an item by build (which returns false to drop rules whose
// owner cannot be resolved), then the result is stably sorted by date
// so items sharing an instant keep their input order.
func buildScheduled[R, T any](rules []*R, build func(*R) (T, bool), date func(T) time.Time) []T {
	var items []T
	for _, rule := range rules {
		item, ok := build(rule)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return date(items[i]).Before(date(items[j]))
	})
	return items
}

// BuildScheduledEmails computes the future email timeline for a project
// type. Schedule rules whose email rule is gone are dropped; a missing
// template keeps the item with UnknownTemplateName as its label.
func BuildScheduledEmails(pt *ProjectType, deploymentDate string, clientValues map[string]string, templates []*Template, clock Clock) []ScheduledEmail {
	if pt == nil || len(pt.EmailSchedules) == 0 {
		return nil
	}
	anchor, ok := parseDeploymentDate(deploymentDate)
	if !ok {
		return nil
	}

	owners := make(map[string]*EmailRule, len(pt.EmailRules))
	for _, r := range pt.EmailRules {
		owners[r.ID] = r
	}
	byID := templateIndex(templates)

	return buildScheduled(pt.EmailSchedules,
		func(rule *EmailScheduleRule) (ScheduledEmail, bool) {
			owner, ok := owners[rule.EmailRuleID]
			if !ok {
				return ScheduledEmail{}, false
			}
			templateName := UnknownTemplateName
			if tpl, ok := byID[owner.TemplateID]; ok {
				templateName = tpl.Name
			}
			return ScheduledEmail{
				ID:                 rule.ID,
				Date:               scheduleDate(anchor, rule.DaysBeforeDeployment, rule.GenerateOnWorkflow, clock),
				Label:              rule.Label,
				Description:        rule.Description,
				TemplateID:         owner.TemplateID,
				TemplateName:       templateName,
				Recipient:          Resolve(owner.Recipient, clientValues),
				GenerateOnWorkflow: rule.GenerateOnWorkflow,
			}, true
		},
		func(item ScheduledEmail) time.Time { return item.Date })
}

// BuildScheduledDocuments computes the future document timeline.
// Schedule rules whose document rule is gone, or whose document rule
// references a template missing from the catalog, are dropped.
func BuildScheduledDocuments(pt *ProjectType, deploymentDate string, templates []*Template, clock Clock) []ScheduledDocument {
	if pt == nil || len(pt.DocumentSchedules) == 0 {
		return nil
	}
	anchor, ok := parseDeploymentDate(deploymentDate)
	if !ok {
		return nil
	}

	owners := make(map[string]*DocumentRule, len(pt.DocumentRules))
	for _, r := range pt.DocumentRules {
		owners[r.ID] = r
	}
	byID := templateIndex(templates)

	return buildScheduled(pt.DocumentSchedules,
		func(rule *DocumentScheduleRule) (ScheduledDocument, bool) {
			owner, ok := owners[rule.DocumentRuleID]
			if !ok {
				return ScheduledDocument{}, false
			}
			if _, ok := byID[owner.TemplateID]; !ok {
				return ScheduledDocument{}, false
			}
			return ScheduledDocument{
				ID:                 rule.ID,
				Date:               scheduleDate(anchor, rule.DaysBeforeDeployment, rule.GenerateOnWorkflow, clock),
				Label:              rule.Label,
				Description:        rule.Description,
				DocumentRuleID:     owner.ID,
				OutputPattern:      owner.OutputPattern,
				RequiresAction:     rule.RequiresAction,
				GenerateOnWorkflow: rule.GenerateOnWorkflow,
			}, true
		},
		func(item ScheduledDocument) time.Time { return item.Date })
}

// BuildScheduledQuestions computes the future question-reminder
// timeline. Schedule rules whose question is gone are dropped.
func BuildScheduledQuestions(pt *ProjectType, deploymentDate string, clock Clock) []ScheduledQuestion {
	if pt == nil || len(pt.QuestionSchedules) == 0 {
		return nil
	}
	anchor, ok := parseDeploymentDate(deploymentDate)
	if !ok {
		return nil
	}

	owners := make(map[string]*PrerequisiteQuestion, len(pt.Questions))
	for _, q := range pt.Questions {
		owners[q.ID] = q
	}

	return buildScheduled(pt.QuestionSchedules,
		func(rule *QuestionScheduleRule) (ScheduledQuestion, bool) {
			owner, ok := owners[rule.QuestionID]
			if !ok {
				return ScheduledQuestion{}, false
			}
			return ScheduledQuestion{
				ID:                 rule.ID,
				Date:               scheduleDate(anchor, rule.DaysBeforeDeployment, rule.GenerateOnWorkflow, clock),
				Label:              rule.Label,
				Description:        rule.Description,
				QuestionID:         owner.ID,
				QuestionLabel:      owner.Label,
				RequiresAction:     rule.RequiresAction,
				GenerateOnWorkflow: rule.GenerateOnWorkflow,
			}, true
		},
		func(item ScheduledQuestion) time.Time { return item.Date })
}
