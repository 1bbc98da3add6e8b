package planner

// SelectedSet converts a slice of selected option ids into a set for
// O(1) membership checks across all condition call sites
func SelectedSet(optionIDs []string) map[string]bool {
	set := make(map[string]bool, len(optionIDs))
	for _, id := range optionIDs {
		set[id] = true
	}
	return set
}

// IsActive reports whether an item gated by cond is active for the
// given selection. A nil condition is always active; an unknown option
// id never matches.
func IsActive(cond *Condition, selected map[string]bool) bool {
	if cond == nil {
		return true
	}
	return selected[cond.OptionID]
}

// ActiveQuestions filters questions down to those whose condition
// matches the selection, preserving input order
func ActiveQuestions(questions []*PrerequisiteQuestion, selected map[string]bool) []*PrerequisiteQuestion {
	var active []*PrerequisiteQuestion
	for _, q := range questions {
		if IsActive(q.Condition, selected) {
			active = append(active, q)
		}
	}
	return active
}

// ActiveDocumentRules filters document rules by condition and by the
// rule's own active flag, preserving input order
func ActiveDocumentRules(rules []*DocumentRule, selected map[string]bool) []*DocumentRule {
	var active []*DocumentRule
	for _, r := range rules {
		if r.Active && IsActive(r.Condition, selected) {
			active = append(active, r)
		}
	}
	return active
}

// ActiveEmailRules filters email rules by condition and by the rule's
// own active flag, preserving input order
func ActiveEmailRules(rules []*EmailRule, selected map[string]bool) []*EmailRule {
	var active []*EmailRule
	for _, r := range rules {
		if r.Active && IsActive(r.Condition, selected) {
			active = append(active, r)
		}
	}
	return active
}
