package wireframe

import (
	"encoding/json"
	"strings"
)

// ComponentType names one of the fixed UI element kinds a screen may contain.
type ComponentType string

// Component vocabulary. The generator prompt, the defaults applier and the
// validator all derive from componentRules below.
const (
	ComponentHeader     ComponentType = "Header"
	ComponentText       ComponentType = "Text"
	ComponentButton     ComponentType = "Button"
	ComponentInput      ComponentType = "Input"
	ComponentTextArea   ComponentType = "TextArea"
	ComponentImage      ComponentType = "Image"
	ComponentCard       ComponentType = "Card"
	ComponentList       ComponentType = "List"
	ComponentForm       ComponentType = "Form"
	ComponentCheckbox   ComponentType = "Checkbox"
	ComponentToggle     ComponentType = "Toggle"
	ComponentDropdown   ComponentType = "Dropdown"
	ComponentDatePicker ComponentType = "DatePicker"
	ComponentSearchBar  ComponentType = "SearchBar"
	ComponentAvatar     ComponentType = "Avatar"
	ComponentBadge      ComponentType = "Badge"
	ComponentTabs       ComponentType = "Tabs"
	ComponentMap        ComponentType = "Map"
	ComponentChart      ComponentType = "Chart"
	ComponentDivider    ComponentType = "Divider"
	ComponentSpacer     ComponentType = "Spacer"
)

// ComponentRule is one row of the per-type table: what the type is for,
// which dataProperties keys it needs to render meaningfully, and the
// defaults a renderer falls back to.
type ComponentRule struct {
	Type          ComponentType
	Description   string
	RequiredData  []string
	DefaultData   map[string]any
	DefaultDesign map[string]any
}

var componentRules = []ComponentRule{
	{
		Type:          ComponentHeader,
		Description:   "screen title bar, optional back button",
		RequiredData:  []string{"title"},
		DefaultData:   map[string]any{"title": "Title", "showBack": false},
		DefaultDesign: map[string]any{"height": 56, "backgroundColor": "primary", "textColor": "#FFFFFF"},
	},
	{
		Type:          ComponentText,
		Description:   "static paragraph or label",
		RequiredData:  []string{"content"},
		DefaultData:   map[string]any{"content": "Text"},
		DefaultDesign: map[string]any{"fontSize": 16, "fontWeight": "normal", "color": "text"},
	},
	{
		Type:          ComponentButton,
		Description:   "tappable action; set dataProperties.screen to navigate",
		RequiredData:  []string{"label"},
		DefaultData:   map[string]any{"label": "Button", "action": "none"},
		DefaultDesign: map[string]any{"variant": "primary", "borderRadius": 8, "fullWidth": false},
	},
	{
		Type:          ComponentInput,
		Description:   "single-line text field",
		RequiredData:  []string{"placeholder"},
		DefaultData:   map[string]any{"label": "", "placeholder": "Enter text", "inputType": "text"},
		DefaultDesign: map[string]any{"borderRadius": 6, "borderColor": "border"},
	},
	{
		Type:          ComponentTextArea,
		Description:   "multi-line text field",
		RequiredData:  []string{"placeholder"},
		DefaultData:   map[string]any{"label": "", "placeholder": "Enter text", "rows": 4},
		DefaultDesign: map[string]any{"borderRadius": 6, "borderColor": "border"},
	},
	{
		Type:          ComponentImage,
		Description:   "image or illustration placeholder",
		RequiredData:  []string{"alt"},
		DefaultData:   map[string]any{"src": "", "alt": "Image"},
		DefaultDesign: map[string]any{"height": 200, "borderRadius": 0, "fit": "cover"},
	},
	{
		Type:          ComponentCard,
		Description:   "grouped content block with title and subtitle",
		RequiredData:  []string{"title"},
		DefaultData:   map[string]any{"title": "Card", "subtitle": ""},
		DefaultDesign: map[string]any{"padding": 16, "borderRadius": 12, "shadow": true},
	},
	{
		Type:          ComponentList,
		Description:   "vertical list of items",
		RequiredData:  []string{"items"},
		DefaultData:   map[string]any{"items": []any{}},
		DefaultDesign: map[string]any{"dividers": true, "itemHeight": 56},
	},
	{
		Type:          ComponentForm,
		Description:   "group of fields with a submit action",
		RequiredData:  []string{"fields"},
		DefaultData:   map[string]any{"fields": []any{}, "submitLabel": "Submit"},
		DefaultDesign: map[string]any{"spacing": 12},
	},
	{
		Type:          ComponentCheckbox,
		Description:   "boolean choice with label",
		RequiredData:  []string{"label"},
		DefaultData:   map[string]any{"label": "Option", "checked": false},
		DefaultDesign: map[string]any{"color": "primary"},
	},
	{
		Type:          ComponentToggle,
		Description:   "on/off switch with label",
		RequiredData:  []string{"label"},
		DefaultData:   map[string]any{"label": "Setting", "enabled": false},
		DefaultDesign: map[string]any{"activeColor": "primary"},
	},
	{
		Type:          ComponentDropdown,
		Description:   "select one of several options",
		RequiredData:  []string{"options"},
		DefaultData:   map[string]any{"label": "", "options": []any{}},
		DefaultDesign: map[string]any{"borderRadius": 6},
	},
	{
		Type:          ComponentDatePicker,
		Description:   "date or time selection",
		RequiredData:  []string{"label"},
		DefaultData:   map[string]any{"label": "Date", "mode": "date"},
		DefaultDesign: map[string]any{"borderRadius": 6},
	},
	{
		Type:          ComponentSearchBar,
		Description:   "search field with icon",
		RequiredData:  []string{"placeholder"},
		DefaultData:   map[string]any{"placeholder": "Search"},
		DefaultDesign: map[string]any{"borderRadius": 20, "backgroundColor": "surface"},
	},
	{
		Type:          ComponentAvatar,
		Description:   "user picture or initials",
		DefaultData:   map[string]any{"name": "", "src": ""},
		DefaultDesign: map[string]any{"size": 48, "shape": "circle"},
	},
	{
		Type:          ComponentBadge,
		Description:   "small status label",
		RequiredData:  []string{"text"},
		DefaultData:   map[string]any{"text": "New"},
		DefaultDesign: map[string]any{"color": "accent", "borderRadius": 10},
	},
	{
		Type:          ComponentTabs,
		Description:   "in-screen tab switcher",
		RequiredData:  []string{"tabs"},
		DefaultData:   map[string]any{"tabs": []any{}, "activeTab": 0},
		DefaultDesign: map[string]any{"indicatorColor": "primary"},
	},
	{
		Type:          ComponentMap,
		Description:   "map view with optional markers",
		DefaultData:   map[string]any{"markers": []any{}},
		DefaultDesign: map[string]any{"height": 240},
	},
	{
		Type:          ComponentChart,
		Description:   "line, bar or pie chart",
		RequiredData:  []string{"chartType"},
		DefaultData:   map[string]any{"chartType": "bar", "series": []any{}},
		DefaultDesign: map[string]any{"height": 220},
	},
	{
		Type:          ComponentDivider,
		Description:   "horizontal separator",
		DefaultData:   map[string]any{},
		DefaultDesign: map[string]any{"color": "border", "thickness": 1},
	},
	{
		Type:          ComponentSpacer,
		Description:   "empty vertical space",
		DefaultData:   map[string]any{},
		DefaultDesign: map[string]any{"height": 16},
	},
}

var rulesByType = func() map[ComponentType]ComponentRule {
	m := make(map[ComponentType]ComponentRule, len(componentRules))
	for _, r := range componentRules {
		m[r.Type] = r
	}
	return m
}()

// RuleFor looks up the table row for a component type.
func RuleFor(t ComponentType) (ComponentRule, bool) {
	r, ok := rulesByType[t]
	return r, ok
}

// Navigation types.
const (
	NavTabs   = "tabs"
	NavDrawer = "drawer"
	NavStack  = "stack"
)

// NavTypes lists the allowed values of app.nav.type.
var NavTypes = []string{NavTabs, NavDrawer, NavStack}

// IsNavType reports whether t is an allowed navigation type.
func IsNavType(t string) bool {
	for _, n := range NavTypes {
		if n == t {
			return true
		}
	}
	return false
}

// Icons lists the icon names renderers know how to draw.
var Icons = []string{
	"home", "search", "user", "settings", "bell",
	"heart", "star", "calendar", "map", "camera",
	"cart", "chat", "mail", "phone", "plus",
	"list", "grid", "bookmark", "info", "logout",
}

// IsIcon reports whether name is in the icon vocabulary.
func IsIcon(name string) bool {
	for _, i := range Icons {
		if i == name {
			return true
		}
	}
	return false
}

// ComponentTypeNames returns the vocabulary as plain strings, in table order.
func ComponentTypeNames() []string {
	names := make([]string, 0, len(componentRules))
	for _, r := range componentRules {
		names = append(names, string(r.Type))
	}
	return names
}

// DescribeVocabulary renders one line per component type for the generator
// prompt: "Type: description (dataProperties: ...)" followed by the default
// data and design objects the model should start from.
func DescribeVocabulary() string {
	var sb strings.Builder
	for _, r := range componentRules {
		sb.WriteString("- ")
		sb.WriteString(string(r.Type))
		sb.WriteString(": ")
		sb.WriteString(r.Description)
		if len(r.RequiredData) > 0 {
			sb.WriteString(" (dataProperties: ")
			sb.WriteString(strings.Join(r.RequiredData, ", "))
			sb.WriteString(")")
		}
		if len(r.DefaultData) > 0 {
			sb.WriteString("; default data ")
			sb.WriteString(compactJSON(r.DefaultData))
		}
		if len(r.DefaultDesign) > 0 {
			sb.WriteString("; default design ")
			sb.WriteString(compactJSON(r.DefaultDesign))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// compactJSON renders a defaults map on one line. Map keys come out sorted.
func compactJSON(m map[string]any) string {
	b, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(b)
}
