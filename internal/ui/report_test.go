package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/generator"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/wireframe"
)

func TestColorEnabled_NotATerminal(t *testing.T) {
	assert.False(t, ColorEnabled(&bytes.Buffer{}))
	assert.False(t, NewRenderer(&bytes.Buffer{}).color)
}

func TestRenderer_Report(t *testing.T) {
	r := NewPlainRenderer()

	valid := r.Report(wireframe.ValidationReport{
		IsValid:  true,
		Errors:   []string{},
		Warnings: []string{"Screen \"home\": no components"},
	})
	assert.Equal(t, "✓ valid (0 errors, 1 warning)\n  ! Screen \"home\": no components\n", valid)

	invalid := r.Report(wireframe.ValidationReport{
		IsValid: false,
		Errors:  []string{"app.name is required", "screens must not be empty"},
	})
	lines := strings.Split(strings.TrimRight(invalid, "\n"), "\n")
	assert.Equal(t, "✗ invalid (2 errors, 0 warnings)", lines[0])
	assert.Equal(t, "  ✗ app.name is required", lines[1])
	assert.Equal(t, "  ✗ screens must not be empty", lines[2])
}

func TestRenderer_Document(t *testing.T) {
	r := NewPlainRenderer()
	doc := &wireframe.Document{
		App: &wireframe.App{
			Name:  "Fresh Market",
			Theme: wireframe.DefaultTheme,
			Nav:   &wireframe.Nav{Type: "bottom-tabs"},
		},
		Screens: []wireframe.Screen{
			{Name: "home", Title: "Home", IsStartPoint: true, NextScreens: []string{"cart"},
				Components: []wireframe.Component{{Type: "header"}, {Type: "list"}}},
			{Name: "cart", Title: "Cart"},
		},
	}

	out := r.Document(doc)

	assert.Contains(t, out, "Fresh Market  nav: bottom-tabs")
	assert.Contains(t, out, "primary=#3B82F6")
	assert.Contains(t, out, "error=#EF4444")
	assert.Contains(t, out, "home")
	assert.Contains(t, out, "yes")
	assert.NotContains(t, out, "\x1b[")
	assert.Empty(t, r.Document(nil))
}

func TestRenderer_Result(t *testing.T) {
	r := NewPlainRenderer()
	res := &generator.Result{
		Success:    true,
		Wireframe:  &wireframe.Document{Screens: []wireframe.Screen{{Name: "home"}}},
		Validation: wireframe.ValidationReport{IsValid: true},
		Metadata: generator.ResultMetadata{
			RequestID: "req-1",
			Repaired:  true,
			Duration:  1500 * time.Millisecond,
		},
	}

	out := r.Result(res)

	assert.Contains(t, out, "✓ valid")
	assert.Contains(t, out, "request req-1 · 1.5s · repaired")
	assert.Empty(t, r.Result(nil))
}

func TestRenderer_Workflow(t *testing.T) {
	r := NewPlainRenderer()

	out := r.Workflow([]generator.WorkflowScreen{
		{ID: "home", Title: "Home", Position: 1, NextScreens: []string{"cart", "search"}},
		{ID: "cart", Title: "Cart", Position: 2},
	})

	assert.True(t, strings.HasPrefix(out, "Workflow\n"))
	assert.Contains(t, out, "cart, search")
	assert.Contains(t, out, " 2  cart")
}
