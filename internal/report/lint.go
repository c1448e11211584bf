// Package report renders validation findings and catalog documentation.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/uniques/internal/ruleset"
	"github.com/cory-johannsen/uniques/internal/validation"
)

// Format selects how a report is written.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatYAML, FormatText:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown report format %q (want yaml or text)", s)
}

// Finding is one serialisable validation finding.
type Finding struct {
	Severity string `yaml:"severity"`
	Kind     string `yaml:"kind"`
	File     string `yaml:"file,omitempty"`
	Object   string `yaml:"object,omitempty"`
	Target   string `yaml:"target,omitempty"`
	Unique   string `yaml:"unique,omitempty"`
	Message  string `yaml:"message"`
}

// Summary counts findings by severity.
type Summary struct {
	OK      int `yaml:"ok"`
	Warning int `yaml:"warning"`
	Error   int `yaml:"error"`
}

// LintReport is the outcome of validating one ruleset.
type LintReport struct {
	Ruleset  string    `yaml:"ruleset"`
	ID       string    `yaml:"id"`
	Base     bool      `yaml:"base"`
	Summary  Summary   `yaml:"summary"`
	Findings []Finding `yaml:"findings"`
}

// NewLintReport builds a report from errs, keeping findings of at least
// minSeverity. Findings are ordered worst first, then by file and object.
func NewLintReport(rs *ruleset.Ruleset, errs validation.ErrorList, minSeverity validation.Severity) LintReport {
	r := LintReport{Findings: []Finding{}}
	if rs != nil {
		r.Ruleset = rs.Name
		r.ID = rs.ID.String()
		r.Base = rs.IsBaseRuleset
	}

	counts := errs.CountBySeverity()
	r.Summary = Summary{
		OK:      counts[validation.SeverityOK],
		Warning: counts[validation.SeverityWarning],
		Error:   counts[validation.SeverityError],
	}

	kept := errs.AtLeast(minSeverity)
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Severity != kept[j].Severity {
			return kept[i].Severity > kept[j].Severity
		}
		return objectKey(kept[i]) < objectKey(kept[j])
	})
	for _, e := range kept {
		f := Finding{Severity: e.Severity.String(), Kind: e.Kind.String(), Message: e.Message}
		if e.Object != nil {
			f.File = e.Object.File
			f.Object = e.Object.Name
			f.Target = e.Object.Target.String()
		}
		if e.Unique != nil {
			f.Unique = e.Unique.Text()
		}
		r.Findings = append(r.Findings, f)
	}
	return r
}

func objectKey(e validation.RulesetError) string {
	if e.Object == nil {
		return ""
	}
	return e.Object.File + "\x00" + e.Object.Name
}

// Write renders r to w in format f.
func (r LintReport) Write(w io.Writer, f Format) error {
	switch f {
	case FormatText:
		return r.writeText(w)
	case FormatYAML:
		return writeYAML(w, r)
	}
	return fmt.Errorf("unknown report format %q", f)
}

func (r LintReport) writeText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", r.Ruleset, r.ID)
	for _, f := range r.Findings {
		where := ""
		if f.File != "" {
			where = f.File + ": "
		}
		fmt.Fprintf(&b, "%-7s %-26s %s%s\n", f.Severity, f.Kind, where, f.Message)
	}
	fmt.Fprintf(&b, "%d error(s), %d warning(s), %d note(s)\n", r.Summary.Error, r.Summary.Warning, r.Summary.OK)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("serialising report: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
