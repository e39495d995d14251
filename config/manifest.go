package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/bsc-lang/scopegraph/diag"
)

// Manifest is the decoded form of a bsconfig-style configuration file:
//
//	{
//	  "plugins": ["telemetry", "lint-extra"],
//	  "diagnosticFilters": { "W_LOCAL_VAR_SHADOWS_STDLIB": "hint" }
//	}
//
// Plugins names this core's own operation: which pluginbus.Plugin
// implementations a host should register. diagnosticFilters remaps a
// code's effective severity (including "off" to suppress it entirely)
// before a host surfaces a Validate result.
type Manifest struct {
	Plugins           []string
	DiagnosticFilters map[string]SeverityOverride
}

// SeverityOverride is the effective severity a diagnosticFilters entry
// assigns to a code, or Off to suppress the code entirely.
type SeverityOverride struct {
	Severity diag.Severity
	Off      bool
}

// rawManifest mirrors the on-disk JSON shape before filter values are
// resolved to SeverityOverride.
type rawManifest struct {
	Plugins           []string          `json:"plugins"`
	DiagnosticFilters map[string]string `json:"diagnosticFilters"`
}

// Load parses a bsconfig-style manifest. Input is preprocessed with
// tidwall/jsonc so comments and trailing commas are tolerated, matching
// the teacher's adapter/json convention for human-edited JSON.
func Load(data []byte) (*Manifest, error) {
	processed := jsonc.ToJSON(data)

	var raw rawManifest
	dec := json.NewDecoder(strings.NewReader(string(processed)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("config: parsing manifest: %w", err)
	}

	for _, name := range raw.Plugins {
		if strings.TrimSpace(name) == "" {
			return nil, ErrEmptyPluginName
		}
	}

	filters := make(map[string]SeverityOverride, len(raw.DiagnosticFilters))
	for code, sev := range raw.DiagnosticFilters {
		override, err := parseSeverityOverride(sev)
		if err != nil {
			return nil, fmt.Errorf("config: diagnosticFilters[%q]: %w", code, err)
		}
		filters[code] = override
	}

	return &Manifest{Plugins: raw.Plugins, DiagnosticFilters: filters}, nil
}

func parseSeverityOverride(s string) (SeverityOverride, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off":
		return SeverityOverride{Off: true}, nil
	case "fatal":
		return SeverityOverride{Severity: diag.Fatal}, nil
	case "error":
		return SeverityOverride{Severity: diag.Error}, nil
	case "warning", "warn":
		return SeverityOverride{Severity: diag.Warning}, nil
	case "info":
		return SeverityOverride{Severity: diag.Info}, nil
	case "hint":
		return SeverityOverride{Severity: diag.Hint}, nil
	default:
		return SeverityOverride{}, ErrUnknownSeverity
	}
}

// IsSuppressed reports whether issue's code is filtered to "off" by
// m.DiagnosticFilters. It is the diagnosticIsSuppressed predicate a host
// passes to Scope.GetDiagnostics (spec.md §6 "Downstream (exposed)").
func (m *Manifest) IsSuppressed(issue diag.Issue) bool {
	if m == nil {
		return false
	}
	override, ok := m.DiagnosticFilters[issue.Code().String()]
	return ok && override.Off
}

// Apply filters issues per m.DiagnosticFilters: "off" codes are dropped,
// others are returned with their span/message/related unchanged (severity
// remapping is a host-side presentation concern layered on top of the
// Issue's original severity via [Manifest.EffectiveSeverity], not a
// mutation of the immutable Issue itself).
func (m *Manifest) Apply(issues []diag.Issue) []diag.Issue {
	if m == nil || len(m.DiagnosticFilters) == 0 {
		return issues
	}
	out := make([]diag.Issue, 0, len(issues))
	for _, issue := range issues {
		if m.IsSuppressed(issue) {
			continue
		}
		out = append(out, issue)
	}
	return out
}

// EffectiveSeverity returns the severity a host should report an issue at,
// honoring any non-Off override in m.DiagnosticFilters.
func (m *Manifest) EffectiveSeverity(issue diag.Issue) diag.Severity {
	if m == nil {
		return issue.Severity()
	}
	if override, ok := m.DiagnosticFilters[issue.Code().String()]; ok && !override.Off {
		return override.Severity
	}
	return issue.Severity()
}
