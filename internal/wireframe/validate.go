package wireframe

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance; it caches struct metadata.
var validate = validator.New()

var kebabCaseRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidationReport is the outcome of checking a document. A document with
// errors is still usable; callers decide whether to accept it.
type ValidationReport struct {
	IsValid  bool     `json:"isValid" yaml:"isValid"`
	Errors   []string `json:"errors" yaml:"errors"`
	Warnings []string `json:"warnings" yaml:"warnings"`
}

// ErrorSummary joins all errors into one line.
func (r ValidationReport) ErrorSummary() string {
	return strings.Join(r.Errors, "; ")
}

type reportBuilder struct {
	errors   []string
	warnings []string
}

func (b *reportBuilder) errorf(format string, args ...any) {
	b.errors = append(b.errors, fmt.Sprintf(format, args...))
}

func (b *reportBuilder) warnf(format string, args ...any) {
	b.warnings = append(b.warnings, fmt.Sprintf(format, args...))
}

func (b *reportBuilder) report() ValidationReport {
	r := ValidationReport{
		Errors:   b.errors,
		Warnings: b.warnings,
	}
	if r.Errors == nil {
		r.Errors = []string{}
	}
	if r.Warnings == nil {
		r.Warnings = []string{}
	}
	r.IsValid = len(r.Errors) == 0
	return r
}

// Validate runs every structural and referential check and collects the
// problems. It never stops at the first failure and never panics on
// missing sections.
//
// Errors: missing app or app name, missing nav or unknown nav type, no
// screens, duplicate screen names, screens without a name or component
// list, unknown component types, and dangling screen references.
// Everything else (icons, colours, naming style, required data keys) is a
// warning.
func Validate(doc *Document) ValidationReport {
	b := &reportBuilder{}
	if doc == nil {
		b.errorf("document is missing")
		return b.report()
	}

	nameTypeMismatch := false
	for _, issue := range doc.typeIssues {
		if issue.Field == "app.name" {
			nameTypeMismatch = true
			b.errorf("App name must be a string, got %s", issue.Got)
			continue
		}
		b.warnf("Field %s has the wrong type and was ignored", issue)
	}

	validateApp(b, doc.App, nameTypeMismatch)

	names := validateScreens(b, doc.Screens)

	validateReferences(b, doc, names)

	return b.report()
}

func validateApp(b *reportBuilder, app *App, nameTypeMismatch bool) {
	if app == nil {
		b.errorf("Missing app configuration")
		b.errorf("Missing app navigation")
		return
	}

	if strings.TrimSpace(app.Name) == "" && !nameTypeMismatch {
		b.errorf("App name is required")
	}

	if app.Nav == nil {
		b.errorf("Missing app navigation")
	} else if !IsNavType(app.Nav.Type) {
		b.errorf("Invalid navigation type %q (allowed: %s)", app.Nav.Type, strings.Join(NavTypes, ", "))
	}

	if app.Nav != nil {
		for i, item := range app.Nav.Items {
			if item.Icon != "" && !IsIcon(item.Icon) {
				b.warnf("Navigation item %d (%s) uses unknown icon %q", i+1, item.Name, item.Icon)
			}
		}
	}

	if err := validate.Struct(app.Theme); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				b.warnf("Theme color %s is not a valid hex color: %v", fe.Field(), fe.Value())
			}
		}
	}
}

// validateScreens checks per-screen structure and returns the set of
// declared screen names.
func validateScreens(b *reportBuilder, screens []Screen) map[string]bool {
	names := make(map[string]bool, len(screens))

	if len(screens) == 0 {
		b.errorf("At least one screen is required")
		return names
	}

	counts := make(map[string]int, len(screens))
	var order []string
	for i, screen := range screens {
		label := screenLabel(screen, i)

		if strings.TrimSpace(screen.Name) == "" {
			b.errorf("Screen %d is missing a name", i+1)
		} else {
			if counts[screen.Name] == 0 {
				order = append(order, screen.Name)
			}
			counts[screen.Name]++
			names[screen.Name] = true
			if !kebabCaseRegex.MatchString(screen.Name) {
				b.warnf("Screen name %q should be kebab-case", screen.Name)
			}
		}

		if screen.Components == nil {
			b.errorf("Screen %s is missing its components list", label)
			continue
		}

		seenIDs := make(map[string]bool, len(screen.Components))
		for j, c := range screen.Components {
			validateComponent(b, label, j, c)
			if c.ID != "" {
				if seenIDs[c.ID] {
					b.warnf("Screen %s has duplicate component id %q", label, c.ID)
				}
				seenIDs[c.ID] = true
			}
		}
	}

	for _, name := range order {
		if counts[name] > 1 {
			b.errorf("Duplicate screen name %q (%d occurrences)", name, counts[name])
		}
	}

	return names
}

func validateComponent(b *reportBuilder, screen string, index int, c Component) {
	ref := c.ID
	if ref == "" {
		ref = fmt.Sprintf("#%d", index+1)
	}

	rule, known := RuleFor(c.Type)
	if !known {
		b.errorf("Screen %s component %s has invalid type %q", screen, ref, c.Type)
	}

	if c.DataProperties == nil {
		b.warnf("Screen %s component %s is missing dataProperties", screen, ref)
	} else if known {
		for _, key := range rule.RequiredData {
			if _, ok := c.DataProperties[key]; !ok {
				b.warnf("Screen %s component %s (%s) is missing dataProperties.%s", screen, ref, c.Type, key)
			}
		}
	}

	if c.DesignProperties == nil {
		b.warnf("Screen %s component %s is missing designProperties", screen, ref)
	}
}

// validateReferences reports every screen reference that does not resolve.
// Each dangling target is reported once, however many places point at it.
func validateReferences(b *reportBuilder, doc *Document, names map[string]bool) {
	dangling := make(map[string][]string)

	if doc.App != nil && doc.App.Nav != nil {
		for i, item := range doc.App.Nav.Items {
			if !names[item.Screen] {
				dangling[item.Screen] = append(dangling[item.Screen], fmt.Sprintf("navigation item %d", i+1))
			}
		}
	}

	for i, screen := range doc.Screens {
		label := screenLabel(screen, i)
		for j, c := range screen.Components {
			target, ok := c.ScreenRef()
			if !ok || names[target] {
				continue
			}
			ref := c.ID
			if ref == "" {
				ref = fmt.Sprintf("#%d", j+1)
			}
			dangling[target] = append(dangling[target], fmt.Sprintf("screen %s component %s", label, ref))
		}
	}

	targets := make([]string, 0, len(dangling))
	for t := range dangling {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	for _, t := range targets {
		b.errorf("Reference to unknown screen %q from %s", t, strings.Join(dangling[t], ", "))
	}
}

func screenLabel(s Screen, index int) string {
	if s.Name != "" {
		return fmt.Sprintf("%q", s.Name)
	}
	return fmt.Sprintf("#%d", index+1)
}
