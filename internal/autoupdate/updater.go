// Package autoupdate migrates deprecated unique texts in ruleset files to
// their current form.
package autoupdate

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/uniques/internal/ruleset"
	"github.com/cory-johannsen/uniques/internal/unique"
	"github.com/cory-johannsen/uniques/internal/validation"
)

// Options configures an Updater.
type Options struct {
	// MaxChainSteps bounds deprecation resolution per unique. Zero or less
	// means the catalog size.
	MaxChainSteps int
	// DryRun reports which files would change without writing them.
	DryRun bool
}

// Updater computes and applies deprecated unique replacements.
//
// An Updater must not run concurrently against the same folder.
type Updater struct {
	logger *zap.Logger
	opts   Options
}

// New returns an Updater. A nil logger is replaced with a no-op one.
func New(logger *zap.Logger, opts Options) *Updater {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxChainSteps <= 0 {
		opts.MaxChainSteps = len(unique.AllTypes())
	}
	return &Updater{logger: logger, opts: opts}
}

// DeprecatedReplaceableUniques maps every deprecated unique and modifier text
// in rs to its fully resolved replacement.
//
// Candidates that fail validation are logged and left out. Chains that do not
// settle within MaxChainSteps are reported as DeprecationChainUnresolved.
//
// Postcondition: No value in the map is itself deprecated.
func (up *Updater) DeprecatedReplaceableUniques(rs *ruleset.Ruleset) (map[string]string, validation.ErrorList) {
	out := make(map[string]string)
	var errs validation.ErrorList
	v := validation.New(rs, up.logger)
	specific := rs != nil && rs.IsBaseRuleset

	var deprecated []*unique.Unique
	for _, u := range rs.AllUniques() {
		if u.IsDeprecated() {
			deprecated = append(deprecated, u)
		}
	}
	for _, u := range rs.AllUniques() {
		for _, m := range u.Modifiers() {
			if m.IsDeprecated() {
				deprecated = append(deprecated, m)
			}
		}
	}

	seen := make(map[string]bool)
	for _, u := range deprecated {
		if seen[u.Text()] {
			continue
		}
		seen[u.Text()] = true

		alternatives, ok := up.resolve(u)
		if !ok {
			errs = append(errs, validation.RulesetError{
				Severity: validation.SeverityError,
				Kind:     validation.KindDeprecationChainUnresolved,
				Message:  fmt.Sprintf("%q did not resolve to a current unique within %d steps", u.Text(), up.opts.MaxChainSteps),
				Unique:   u,
			})
			continue
		}
		for i := range alternatives {
			for _, m := range u.Modifiers() {
				alternatives[i] += " <" + m.Text() + ">"
			}
		}

		if findings := up.candidateErrors(v, u, alternatives, specific); len(findings) > 0 {
			for _, f := range findings {
				up.logger.Warn("discarding replacement",
					zap.String("unique", u.Text()),
					zap.Strings("replacement", alternatives),
					zap.Stringer("kind", f.Kind),
					zap.String("finding", f.Message),
				)
			}
			continue
		}

		// Several alternatives become several list entries in the JSON source.
		replacement := strings.Join(alternatives, `", "`)
		out[u.Text()] = replacement
		up.logger.Debug("replacement found",
			zap.String("unique", u.Text()),
			zap.String("replacement", replacement),
		)
	}
	return out, errs
}

// resolve follows the deprecation chain of u. The result excludes u's own
// modifiers.
func (up *Updater) resolve(u *unique.Unique) ([]string, bool) {
	var out []string
	for _, text := range u.ReplacementTexts() {
		resolved, ok := up.resolveText(text, u.IsConditional(), 1)
		if !ok {
			return nil, false
		}
		out = append(out, resolved...)
	}
	return out, len(out) > 0
}

func (up *Updater) resolveText(text string, conditional bool, steps int) ([]string, bool) {
	cur := parseRole(text, conditional)
	if !cur.IsDeprecated() {
		return []string{text}, true
	}
	if steps >= up.opts.MaxChainSteps {
		return nil, false
	}
	var out []string
	for _, next := range cur.ReplacementTexts() {
		for _, m := range cur.Modifiers() {
			next += " <" + m.Text() + ">"
		}
		resolved, ok := up.resolveText(next, conditional, steps+1)
		if !ok {
			return nil, false
		}
		out = append(out, resolved...)
	}
	return out, len(out) > 0
}

// candidateErrors validates each alternative and returns the findings that
// disqualify it.
func (up *Updater) candidateErrors(v *validation.Validator, original *unique.Unique, alternatives []string, specific bool) validation.ErrorList {
	var out validation.ErrorList
	for _, alt := range alternatives {
		candidate := parseRole(alt, original.IsConditional())
		if !candidate.HasType() {
			out = append(out, validation.RulesetError{
				Severity: validation.SeverityError,
				Kind:     validation.KindParseUnrecognized,
				Message:  fmt.Sprintf("replacement %q is not a known unique", alt),
				Unique:   candidate,
			})
			continue
		}
		for _, e := range v.CheckUnique(candidate, nil, specific, false) {
			if e.Severity > validation.SeverityOK && e.Kind != validation.KindDeprecated {
				out = append(out, e)
			}
		}
	}
	return out
}

func parseRole(text string, conditional bool) *unique.Unique {
	if conditional {
		return unique.ParseConditional(text, nil, "")
	}
	return unique.Parse(text, nil, "")
}
