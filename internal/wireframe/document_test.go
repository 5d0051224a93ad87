package wireframe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "app": {
    "name": "Drone Booking",
    "theme": {"primary": "#3B82F6"},
    "nav": {"type": "tabs", "items": [{"name": "Dashboard", "icon": "home", "screen": "dashboard"}]}
  },
  "screens": [
    {
      "name": "dashboard",
      "title": "Dashboard",
      "workflowPosition": 1,
      "isStartPoint": true,
      "nextScreens": ["login"],
      "components": [
        {"type": "Header", "dataProperties": {"title": "Dashboard"}, "designProperties": {}},
        {"type": "Button", "dataProperties": {"label": "Book"}}
      ]
    }
  ]
}`

func TestParse_DecodesDocument(t *testing.T) {
	doc, err := Parse([]byte(sampleJSON))
	require.NoError(t, err)

	require.NotNil(t, doc.App)
	assert.Equal(t, "Drone Booking", doc.App.Name)
	require.NotNil(t, doc.App.Nav)
	assert.Equal(t, NavTabs, doc.App.Nav.Type)
	require.Len(t, doc.Screens, 1)
	assert.True(t, doc.Screens[0].IsStartPoint)
	assert.Equal(t, []string{"login"}, doc.Screens[0].NextScreens)
	require.Len(t, doc.Screens[0].Components, 2)
	assert.Equal(t, ComponentHeader, doc.Screens[0].Components[0].Type)
	assert.Nil(t, doc.Screens[0].Components[1].DesignProperties)
	assert.Empty(t, doc.TypeIssues())
}

func TestParse_SyntaxErrorFails(t *testing.T) {
	_, err := Parse([]byte(`{"app": {"name": "x",}}`))
	assert.Error(t, err)
}

func TestParse_TypeMismatchIsRecorded(t *testing.T) {
	doc, err := Parse([]byte(`{"screens": [{"name": "home", "isStartPoint": "yes", "components": []}]}`))
	require.NoError(t, err)

	require.Len(t, doc.TypeIssues(), 1)
	assert.Equal(t, "screens.isStartPoint", doc.TypeIssues()[0].Field)
	require.Len(t, doc.Screens, 1)
	assert.Equal(t, "home", doc.Screens[0].Name)
}

func TestParse_DistinguishesMissingComponentList(t *testing.T) {
	doc, err := Parse([]byte(`{"screens": [{"name": "a"}, {"name": "b", "components": []}]}`))
	require.NoError(t, err)

	assert.Nil(t, doc.Screens[0].Components)
	assert.NotNil(t, doc.Screens[1].Components)
}

func TestComponent_ScreenRef(t *testing.T) {
	tests := []struct {
		name string
		c    Component
		want string
		ok   bool
	}{
		{"no data", Component{}, "", false},
		{"string ref", Component{DataProperties: map[string]any{"screen": "home"}}, "home", true},
		{"empty ref", Component{DataProperties: map[string]any{"screen": ""}}, "", false},
		{"non-string ref", Component{DataProperties: map[string]any{"screen": 3}}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.c.ScreenRef()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestMarshal_YAML(t *testing.T) {
	out, err := Marshal(validDocument(), FormatYAML)
	require.NoError(t, err)

	assert.Contains(t, string(out), "name: Drone Booking")
	assert.Contains(t, string(out), "isStartPoint: true")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestVocabulary_Sizes(t *testing.T) {
	assert.Len(t, ComponentTypeNames(), 21)
	assert.Len(t, NavTypes, 3)
	assert.Len(t, Icons, 20)
	assert.Len(t, DefaultTheme.roles(), 10)
	_, ok := RuleFor("Sidebar")
	assert.False(t, ok)
	_, ok = RuleFor("DatePicker")
	assert.True(t, ok)
	_, ok = RuleFor("button")
	assert.False(t, ok)
}

func TestDescribeVocabulary_ListsDefaults(t *testing.T) {
	desc := DescribeVocabulary()
	lines := strings.Split(strings.TrimRight(desc, "\n"), "\n")
	require.Len(t, lines, len(ComponentTypeNames()))

	assert.Equal(t,
		`- Header: screen title bar, optional back button (dataProperties: title); `+
			`default data {"showBack":false,"title":"Title"}; `+
			`default design {"backgroundColor":"primary","height":56,"textColor":"#FFFFFF"}`,
		lines[0])
	for _, line := range lines {
		assert.Contains(t, line, "; default design {", line)
	}
}
