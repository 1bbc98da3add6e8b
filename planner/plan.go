package planner

import (
	"regexp"
	"strings"
)

// fallbackNameFilter keeps letters, digits, whitespace, dash and
// underscore, plus the accented letters of the target locale, for the
// synthesized fallback file name
var fallbackNameFilter = regexp.MustCompile(`[^A-Za-z0-9\s\-_àâäéèêëîïôöùûüçÀÂÄÉÈÊËÎÏÔÖÙÛÜÇ]`)

// BuildGenerationPlan computes the files to generate at workflow-submit
// time: every active document rule first, then every active email rule,
// each group preserving rule order. A rule whose template is missing
// from the catalog contributes nothing.
func BuildGenerationPlan(pt *ProjectType, selectedOptionIDs []string, clientValues map[string]string, templates []*Template) []GeneratedFile {
	if pt == nil {
		return nil
	}

	byID := templateIndex(templates)
	selected := SelectedSet(selectedOptionIDs)

	var files []GeneratedFile
	for _, rule := range ActiveDocumentRules(pt.DocumentRules, selected) {
		tpl, ok := byID[rule.TemplateID]
		if !ok {
			continue
		}
		files = append(files, newGeneratedFile(rule.OutputPattern, rule.DestinationPath, tpl, clientValues))
	}
	for _, rule := range ActiveEmailRules(pt.EmailRules, selected) {
		tpl, ok := byID[rule.TemplateID]
		if !ok {
			continue
		}
		files = append(files, newGeneratedFile(rule.OutputPattern, rule.DestinationPath, tpl, clientValues))
	}
	return files
}

func newGeneratedFile(outputPattern, destinationPath string, tpl *Template, clientValues map[string]string) GeneratedFile {
	name := ResolveOutputFileName(outputPattern, clientValues)
	if name == "" {
		name = fallbackFileName(clientValues, tpl)
	}

	return GeneratedFile{
		Name:            name + tpl.Type.FileExtension(),
		Type:            tpl.Type,
		TemplateID:      tpl.ID,
		DestinationPath: Resolve(destinationPath, clientValues),
	}
}

// fallbackFileName synthesizes "<client> - <template name>" when the
// output pattern resolved to nothing, so the plan never emits an empty
// file name
func fallbackFileName(clientValues map[string]string, tpl *Template) string {
	client := clientValues["nom_client"]
	if client == "" {
		client = "Document"
	}
	name := fallbackNameFilter.ReplaceAllString(client+" - "+tpl.Name, "")
	return strings.TrimSpace(name)
}

func templateIndex(templates []*Template) map[string]*Template {
	byID := make(map[string]*Template, len(templates))
	for _, tpl := range templates {
		byID[tpl.ID] = tpl
	}
	return byID
}
