package planner

import (
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	values := map[string]string{
		"nom_client": "Acme",
		"projet":     "Refonte SI",
		"env-cible":  "prod",
		"annee_2026": "2026",
	}

	testCases := []struct {
		name    string
		pattern string
		want    string
	}{
		{"No tokens", "plain text", "plain text"},
		{"Single token", "{{nom_client}}_contrat", "Acme_contrat"},
		{"Multiple tokens", "{{nom_client}}/{{projet}}", "Acme/Refonte SI"},
		{"Whitespace inside braces", "{{ nom_client }} - {{  projet  }}", "Acme - Refonte SI"},
		{"Dash in key", "deploy-{{env-cible}}", "deploy-prod"},
		{"Underscore and digits in key", "{{annee_2026}}", "2026"},
		{"Unknown key left verbatim", "{{inconnu}}_doc", "{{inconnu}}_doc"},
		{"Known and unknown mixed", "{{nom_client}}_{{inconnu}}", "Acme_{{inconnu}}"},
		{"Empty pattern", "", ""},
		{"Braces without valid key", "{{ }}", "{{ }}"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Resolve(tc.pattern, values)
			if got != tc.want {
				t.Errorf("Resolve(%q) = %q, want %q", tc.pattern, got, tc.want)
			}
		})
	}
}

func TestResolveNoOpWithEmptyValues(t *testing.T) {
	patterns := []string{
		"",
		"no tokens at all",
		"{{unresolvable}}",
		"a {{x}} b {{y}} c",
	}

	for _, p := range patterns {
		if got := Resolve(p, map[string]string{}); got != p {
			t.Errorf("Resolve(%q, {}) = %q, want input unchanged", p, got)
		}
	}
}

func TestResolveIsNotRecursive(t *testing.T) {
	// A substituted value must never be re-scanned for tokens
	values := map[string]string{
		"a": "{{b}}",
		"b": "BOOM",
	}

	got := Resolve("{{a}}", values)
	if got != "{{b}}" {
		t.Errorf("Resolve should insert values verbatim without re-scanning, got %q", got)
	}
}

func TestResolveRoundTripLeavesNoTokens(t *testing.T) {
	values := map[string]string{
		"nom_client": "Acme",
		"projet":     "Refonte",
		"env":        "prod",
	}

	out := Resolve("{{nom_client}}/{{ projet }}/{{env}}", values)
	if strings.Contains(out, "{{") || strings.Contains(out, "}}") {
		t.Errorf("output %q still contains placeholder braces", out)
	}
}

func TestResolveOutputFileName(t *testing.T) {
	values := map[string]string{
		"nom_client": "Acme",
		"chemin":     `a/b\c`,
	}

	testCases := []struct {
		name    string
		pattern string
		want    string
	}{
		{"Plain", "{{nom_client}}_contrat", "Acme_contrat"},
		{"Spaces collapse to underscore", "Acme   contrat final", "Acme_contrat_final"},
		{"Forbidden characters stripped", `a\b/c:d*e?f"g<h>i|j`, "abcdefghij"},
		{"Separators from values stripped", "{{chemin}}", "abc"},
		{"Tabs and newlines collapse", "a\t b\nc", "a_b_c"},
		{"Surrounding whitespace trimmed", "  Acme contrat  ", "Acme_contrat"},
		{"Whitespace only resolves empty", "   ", ""},
		{"Forbidden characters around whitespace resolve empty", ` * ? `, ""},
		{"Empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveOutputFileName(tc.pattern, values)
			if got != tc.want {
				t.Errorf("ResolveOutputFileName(%q) = %q, want %q", tc.pattern, got, tc.want)
			}
		})
	}
}

func TestResolveOutputFileNameNeverContainsUnsafeCharacters(t *testing.T) {
	patterns := []string{
		`{{nom_client}} / rapport * final ?`,
		`"{{nom_client}}" <{{projet}}> | v2`,
		`c:\Users\share\doc`,
	}
	values := map[string]string{"nom_client": `A/c:m*e`, "projet": "P?1"}

	for _, p := range patterns {
		got := ResolveOutputFileName(p, values)
		if strings.ContainsAny(got, `\/:*?"<>| `) {
			t.Errorf("ResolveOutputFileName(%q) = %q contains an unsafe character", p, got)
		}
	}
}
