package cmd

import (
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/generator"
)

const pagesReply = "```json\n" + `[
  {"id": "home", "title": "Home", "description": "Featured produce", "position": 1, "nextScreens": ["cart"]},
  {"id": "cart", "title": "Cart", "description": "Items and checkout", "position": 2, "nextScreens": []},
]` + "\n```"

func TestPages_PrintsWorkflow(t *testing.T) {
	setupCLI(t, &fakeCompleter{reply: pagesReply})

	stdout, _, err := runCLI(t, "", "pages", "a grocery app")
	require.NoError(t, err)

	var res generator.PagesResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	require.Len(t, res.Workflow, 2)
	assert.Equal(t, "home", res.Workflow[0].ID)
	assert.Equal(t, []string{"cart"}, res.Workflow[0].NextScreens)
}

func TestPages_OutputFeedsGenerate(t *testing.T) {
	fs := setupCLI(t, &fakeCompleter{reply: pagesReply})

	stdout, _, err := runCLI(t, "", "pages", "a grocery app", "--out", "flow.yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Saved 2 screens to flow.yaml")
	assert.Contains(t, stdout, "Cart")

	ok, err := afero.Exists(fs, "flow.yaml")
	require.NoError(t, err)
	require.True(t, ok)

	screens, err := loadWorkflow(pagesCmd, "flow.yaml")
	require.NoError(t, err)
	require.Len(t, screens, 2)
	assert.Equal(t, "cart", screens[1].ID)
	assert.Equal(t, 2, screens[1].Position)
}

func TestPages_UnparsableReply(t *testing.T) {
	setupCLI(t, &fakeCompleter{reply: "I would suggest a home screen and a cart."})

	_, _, err := runCLI(t, "", "pages", "a grocery app")
	assert.True(t, generator.IsUnparsableJSON(err), "got %v", err)
}
