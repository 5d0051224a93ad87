// Package wireframe defines the generated wireframe document, its fixed
// vocabularies, and the defaults and validation passes applied to a freshly
// parsed model reply.
package wireframe

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Document is a generated wireframe: app-level theme and navigation plus
// the screens and their typed components.
type Document struct {
	App      *App      `json:"app,omitempty" yaml:"app,omitempty"`
	Screens  []Screen  `json:"screens" yaml:"screens"`
	Metadata *Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// typeIssues records fields whose JSON type did not match the schema.
	// encoding/json leaves such fields zero and keeps decoding the rest.
	typeIssues []TypeIssue
}

// App holds app-wide settings.
type App struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Theme       Theme  `json:"theme" yaml:"theme"`
	Nav         *Nav   `json:"nav,omitempty" yaml:"nav,omitempty"`
}

// Theme is the fixed ten-role colour palette. Values are hex strings.
type Theme struct {
	Primary       string `json:"primary,omitempty" yaml:"primary,omitempty" validate:"omitempty,hexcolor"`
	Secondary     string `json:"secondary,omitempty" yaml:"secondary,omitempty" validate:"omitempty,hexcolor"`
	Accent        string `json:"accent,omitempty" yaml:"accent,omitempty" validate:"omitempty,hexcolor"`
	Background    string `json:"background,omitempty" yaml:"background,omitempty" validate:"omitempty,hexcolor"`
	Surface       string `json:"surface,omitempty" yaml:"surface,omitempty" validate:"omitempty,hexcolor"`
	Text          string `json:"text,omitempty" yaml:"text,omitempty" validate:"omitempty,hexcolor"`
	TextSecondary string `json:"textSecondary,omitempty" yaml:"textSecondary,omitempty" validate:"omitempty,hexcolor"`
	Border        string `json:"border,omitempty" yaml:"border,omitempty" validate:"omitempty,hexcolor"`
	Success       string `json:"success,omitempty" yaml:"success,omitempty" validate:"omitempty,hexcolor"`
	Error         string `json:"error,omitempty" yaml:"error,omitempty" validate:"omitempty,hexcolor"`
}

// DefaultTheme is the documented palette used for missing roles.
var DefaultTheme = Theme{
	Primary:       "#3B82F6",
	Secondary:     "#6366F1",
	Accent:        "#F59E0B",
	Background:    "#FFFFFF",
	Surface:       "#F9FAFB",
	Text:          "#111827",
	TextSecondary: "#6B7280",
	Border:        "#E5E7EB",
	Success:       "#10B981",
	Error:         "#EF4444",
}

// roles returns pointers to each palette slot keyed by its JSON name.
func (t *Theme) roles() []themeRole {
	return []themeRole{
		{"primary", &t.Primary},
		{"secondary", &t.Secondary},
		{"accent", &t.Accent},
		{"background", &t.Background},
		{"surface", &t.Surface},
		{"text", &t.Text},
		{"textSecondary", &t.TextSecondary},
		{"border", &t.Border},
		{"success", &t.Success},
		{"error", &t.Error},
	}
}

type themeRole struct {
	name  string
	value *string
}

// ColorRole is one named palette entry.
type ColorRole struct {
	Name  string
	Value string
}

// Palette returns the theme's roles in their fixed order.
func (t Theme) Palette() []ColorRole {
	roles := t.roles()
	out := make([]ColorRole, len(roles))
	for i, r := range roles {
		out[i] = ColorRole{Name: r.name, Value: *r.value}
	}
	return out
}

// Nav describes app-level navigation.
type Nav struct {
	Type  string    `json:"type" yaml:"type"`
	Items []NavItem `json:"items" yaml:"items"`
}

// NavItem is one navigation entry pointing at a screen by name.
type NavItem struct {
	Name   string `json:"name" yaml:"name"`
	Icon   string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Screen string `json:"screen" yaml:"screen"`
}

// Screen is one generated page.
type Screen struct {
	Name             string      `json:"name" yaml:"name"`
	Title            string      `json:"title,omitempty" yaml:"title,omitempty"`
	Description      string      `json:"description,omitempty" yaml:"description,omitempty"`
	WorkflowPosition int         `json:"workflowPosition,omitempty" yaml:"workflowPosition,omitempty"`
	IsStartPoint     bool        `json:"isStartPoint" yaml:"isStartPoint"`
	NextScreens      []string    `json:"nextScreens,omitempty" yaml:"nextScreens,omitempty"`
	Components       []Component `json:"components" yaml:"components"`
}

// Component is a typed UI element. Content lives in DataProperties,
// styling in DesignProperties.
type Component struct {
	ID               string         `json:"id,omitempty" yaml:"id,omitempty"`
	Type             ComponentType  `json:"type" yaml:"type"`
	DataProperties   map[string]any `json:"dataProperties,omitempty" yaml:"dataProperties,omitempty"`
	DesignProperties map[string]any `json:"designProperties,omitempty" yaml:"designProperties,omitempty"`
}

// ScreenRef returns dataProperties.screen when it is a non-empty string.
func (c Component) ScreenRef() (string, bool) {
	if c.DataProperties == nil {
		return "", false
	}
	s, ok := c.DataProperties["screen"].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Metadata describes how a document was produced.
type Metadata struct {
	GeneratedAt  string `json:"generatedAt" yaml:"generatedAt"`
	Description  string `json:"description" yaml:"description"`
	RequestID    string `json:"requestId,omitempty" yaml:"requestId,omitempty"`
	TargetScreen string `json:"targetScreen,omitempty" yaml:"targetScreen,omitempty"`
}

// TypeIssue is a field whose JSON value had the wrong type.
type TypeIssue struct {
	Field    string
	Expected string
	Got      string
}

func (i TypeIssue) String() string {
	return fmt.Sprintf("%s: expected %s, got %s", i.Field, i.Expected, i.Got)
}

// TypeIssues returns the type mismatches recorded while decoding.
func (d *Document) TypeIssues() []TypeIssue {
	return d.typeIssues
}

// Parse decodes a wireframe document. Syntax errors are returned as errors;
// a value of the wrong type is recorded on the document instead, so the
// validator can report it alongside everything else.
func Parse(data []byte) (*Document, error) {
	var doc Document
	err := json.Unmarshal(data, &doc)
	if err == nil {
		return &doc, nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		doc.typeIssues = append(doc.typeIssues, TypeIssue{
			Field:    typeErr.Field,
			Expected: typeErr.Type.String(),
			Got:      typeErr.Value,
		})
		return &doc, nil
	}
	return nil, err
}
