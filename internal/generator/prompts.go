package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/wireframe"
)

// Placeholders used when a workflow screen is missing fields.
const (
	placeholderTitle       = "Untitled Screen"
	placeholderDescription = "No description provided"
	placeholderNext        = "(none)"
)

var (
	wireframeTmpl = template.Must(template.New("wireframe").Parse(wireframePromptTemplate))
	pagesTmpl     = template.Must(template.New("pages").Parse(pagesPromptTemplate))

	titleCaser = cases.Title(language.English)

	// examplePrompt is computed once; the example document is fixed.
	examplePrompt = mustExampleJSON()
)

// PromptInput is everything the wireframe prompt is built from.
type PromptInput struct {
	Description string
	Workflow    []WorkflowScreen
	Target      *WorkflowScreen
}

// screenView is a WorkflowScreen with every field filled in for display.
type screenView struct {
	ID          string
	Title       string
	Description string
	Position    int
	Next        string // human list or (none)
	NextJSON    string // JSON array literal
}

// ordinal is the 1-based slot used to name a screen that has neither id nor title.
func newScreenView(s WorkflowScreen, ordinal int) screenView {
	v := screenView{
		ID:          strings.TrimSpace(s.ID),
		Title:       strings.TrimSpace(s.Title),
		Description: strings.TrimSpace(s.Description),
		Position:    s.Position,
	}
	if v.Position <= 0 {
		v.Position = 1
	}
	if v.Title == "" {
		if v.ID != "" {
			v.Title = titleCaser.String(strings.NewReplacer("-", " ", "_", " ").Replace(v.ID))
		} else {
			v.Title = placeholderTitle
		}
	}
	if v.ID == "" {
		v.ID = slugify(v.Title)
		if v.ID == "" || v.Title == placeholderTitle {
			v.ID = fmt.Sprintf("screen-%d", ordinal)
		}
	}
	if v.Description == "" {
		v.Description = placeholderDescription
	}

	next := make([]string, 0, len(s.NextScreens))
	for _, n := range s.NextScreens {
		if n = strings.TrimSpace(n); n != "" {
			next = append(next, n)
		}
	}
	if len(next) == 0 {
		v.Next = placeholderNext
	} else {
		v.Next = strings.Join(next, ", ")
	}
	nextJSON, _ := json.Marshal(next)
	v.NextJSON = string(nextJSON)
	return v
}

// Slug returns a file-name-safe name for the screen: the id the prompt uses
// for it, reduced to lowercase alphanumeric runs joined by hyphens. A screen
// whose id and title hold no such runs is "screen-{ordinal}".
func (s WorkflowScreen) Slug(ordinal int) string {
	if slug := slugify(newScreenView(s, ordinal).ID); slug != "" {
		return slug
	}
	return fmt.Sprintf("screen-%d", ordinal)
}

// slugify lowercases s and joins its alphanumeric runs with hyphens.
func slugify(s string) string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	return strings.Join(words, "-")
}

// BuildWireframePrompt renders the wireframe prompt. It never fails: missing
// fields degrade to placeholders.
func BuildWireframePrompt(in PromptInput) string {
	data := map[string]any{
		"Description": orPlaceholder(in.Description),
		"Components":  strings.TrimRight(wireframe.DescribeVocabulary(), "\n"),
		"NavTypes":    strings.Join(wireframe.NavTypes, ", "),
		"Icons":       strings.Join(wireframe.Icons, ", "),
		"Theme":       wireframe.DefaultTheme.Palette(),
		"Example":     examplePrompt,
	}

	if in.Target != nil {
		t := newScreenView(*in.Target, max(in.Target.Position, 1))
		data["Target"] = &t
	} else if len(in.Workflow) > 0 {
		views := make([]screenView, len(in.Workflow))
		for i, s := range in.Workflow {
			views[i] = newScreenView(s, i+1)
		}
		data["Workflow"] = views
	}

	return render(wireframeTmpl, data)
}

// BuildPagesPrompt renders the prompt asking for a flat workflow screen list.
func BuildPagesPrompt(description string) string {
	return render(pagesTmpl, map[string]any{
		"Description": orPlaceholder(description),
	})
}

func render(tmpl *template.Template, data map[string]any) string {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		// Templates are static and data is always complete.
		panic(fmt.Sprintf("execute %s template: %v", tmpl.Name(), err))
	}
	return buf.String()
}

func orPlaceholder(description string) string {
	if d := strings.TrimSpace(description); d != "" {
		return d
	}
	return placeholderDescription
}

// exampleDocument is the worked example embedded in every prompt. It is a
// valid document under Validate.
func exampleDocument() *wireframe.Document {
	return &wireframe.Document{
		App: &wireframe.App{
			Name:        "Fresh Market",
			Description: "Order groceries for same-day delivery",
			Theme:       wireframe.DefaultTheme,
			Nav: &wireframe.Nav{
				Type: wireframe.NavTabs,
				Items: []wireframe.NavItem{
					{Name: "Home", Icon: "home", Screen: "home"},
					{Name: "Cart", Icon: "cart", Screen: "cart"},
				},
			},
		},
		Screens: []wireframe.Screen{
			{
				Name:             "home",
				Title:            "Home",
				Description:      "Browse featured products",
				WorkflowPosition: 1,
				IsStartPoint:     true,
				NextScreens:      []string{"cart"},
				Components: []wireframe.Component{
					{
						ID:               "header-1",
						Type:             wireframe.ComponentHeader,
						DataProperties:   map[string]any{"title": "Fresh Market"},
						DesignProperties: map[string]any{"backgroundColor": "primary"},
					},
					{
						ID:               "searchbar-2",
						Type:             wireframe.ComponentSearchBar,
						DataProperties:   map[string]any{"placeholder": "Search products"},
						DesignProperties: map[string]any{},
					},
					{
						ID:               "button-3",
						Type:             wireframe.ComponentButton,
						DataProperties:   map[string]any{"label": "View cart", "screen": "cart"},
						DesignProperties: map[string]any{"variant": "primary"},
					},
				},
			},
			{
				Name:             "cart",
				Title:            "Cart",
				Description:      "Review items before checkout",
				WorkflowPosition: 2,
				NextScreens:      []string{},
				Components: []wireframe.Component{
					{
						ID:               "list-1",
						Type:             wireframe.ComponentList,
						DataProperties:   map[string]any{"items": []string{"Apples", "Bread"}},
						DesignProperties: map[string]any{},
					},
				},
			},
		},
	}
}

func mustExampleJSON() string {
	out, err := json.MarshalIndent(exampleDocument(), "", "  ")
	if err != nil {
		panic(fmt.Sprintf("marshal example document: %v", err))
	}
	return string(out)
}

const wireframePromptTemplate = `You are a senior product designer producing a mobile app wireframe as structured JSON.

APP DESCRIPTION:
{{.Description}}
{{- if .Target}}

TARGET SCREEN:
- id: {{.Target.ID}}
- title: {{.Target.Title}}
- description: {{.Target.Description}}
- position: {{.Target.Position}}
- next screens: {{.Target.Next}}
{{- else if .Workflow}}

WORKFLOW SCREENS (produce one screen per entry, in this order):
{{- range .Workflow}}
- {{.ID}}: {{.Title}} (position {{.Position}}) - {{.Description}}; next: {{.Next}}
{{- end}}
{{- end}}

COMPONENT TYPES (use only these, exact spelling):
{{.Components}}

NAVIGATION TYPES: {{.NavTypes}}

ICONS: {{.Icons}}

THEME PALETTE (hex colors):
{{- range .Theme}}
- {{.Name}}: {{.Value}}
{{- end}}

EXAMPLE OUTPUT:
{{.Example}}

RULES:
- "app" must have a "name", a "theme" and a "nav" whose "type" is one of the navigation types
- Screen "name" values are unique kebab-case ids
- Every nav item "screen" and every component dataProperties "screen" must name a screen in "screens"
- Every component has "type", "dataProperties" and "designProperties"
- Theme values are hex colors like #3B82F6
{{- if .Target}}

CONSTRAINTS FOR THIS REQUEST:
- Output exactly one screen
- The screen "name" must be "{{.Target.ID}}"
- Set "title" to "{{.Target.Title}}", "description" to "{{.Target.Description}}", "workflowPosition" to {{.Target.Position}} and "nextScreens" to {{.Target.NextJSON}}
- Set "isStartPoint": true
- app.nav.items[0].screen must be "{{.Target.ID}}"
- Nav items and components must not reference any screen other than "{{.Target.ID}}"
{{- end}}
- Output ONLY valid JSON, no markdown or explanation

Generate the wireframe JSON now:`

const pagesPromptTemplate = `You are a senior product designer planning the screens of a mobile app.

APP DESCRIPTION:
{{.Description}}

INSTRUCTIONS:
List the screens a user moves through, as a JSON array with this schema:

[
  {
    "id": "kebab-case-id",
    "title": "Screen title",
    "description": "What the user does on this screen",
    "position": 1,
    "nextScreens": ["id-of-a-following-screen"]
  }
]

RULES:
- ids are unique kebab-case strings
- positions start at 1 and follow the main user journey
- nextScreens only contains ids from this list
- Output ONLY the JSON array, no markdown or explanation

Generate the screen list JSON now:`
