package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "fenced block with leading prose",
			input: "Sure! ```json\n{\"app\": {\"name\": \"x\"}}\n```",
			want:  `{"app": {"name": "x"}}`,
		},
		{
			name:  "fenced block with trailing prose",
			input: "```json\n{\"a\": 1}\n```\nLet me know if you need changes.",
			want:  `{"a": 1}`,
		},
		{
			name:  "uppercase fence tag",
			input: "```JSON\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "first fenced block wins",
			input: "```json\n{\"a\": 1}\n```\nor\n```json\n{\"a\": 2}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "outer brace span",
			input: `Here you go: {"a": {"b": 2}} hope it helps`,
			want:  `{"a": {"b": 2}}`,
		},
		{
			name:  "bare fence falls back to brace span",
			input: "```\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "no braces returns trimmed text",
			input: "   I cannot help with that.  ",
			want:  "I cannot help with that.",
		},
		{
			name:  "closing brace before opening brace",
			input: "} oops {",
			want:  "} oops {",
		},
		{
			name:  "backticks inside a string do not close the fence",
			input: "```json\n{\"code\": \"```js\"}\n```",
			want:  "{\"code\": \"```js\"}",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.input))
		})
	}
}

func TestExtractJSON_FenceRoundTrip(t *testing.T) {
	docs := []string{
		`{}`,
		`{"a":1}`,
		`{"screens":[{"name":"home","components":[]}]}`,
		`{"text":"braces } and { inside"}`,
		"{\n  \"nested\": {\"list\": [1, 2, 3]}\n}",
		"{\"code\":\"```js\"}",
		"{\"snippet\": \"```json\\nx\\n```\"}",
	}
	for _, j := range docs {
		require.True(t, json.Valid([]byte(j)), j)
		assert.Equal(t, j, ExtractJSON("```json\n"+j+"\n```"))
	}
}

func TestExtractJSONArray(t *testing.T) {
	assert.Equal(t, `[{"id":"a"}]`, ExtractJSONArray("Pages:\n```json\n[{\"id\":\"a\"}]\n```"))
	assert.Equal(t, `[1, [2]]`, ExtractJSONArray(`result: [1, [2]] done`))
	assert.Equal(t, "nothing", ExtractJSONArray(" nothing "))
}

func TestRepairJSON_Patterns(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trailing comma in object",
			input: `{"a": 1, "b": 2,}`,
			want:  `{"a": 1, "b": 2}`,
		},
		{
			name:  "trailing comma in array",
			input: `{"a": [1, 2, ]}`,
			want:  `{"a": [1, 2]}`,
		},
		{
			name:  "comma inside string untouched",
			input: `{"a": "x,]"}`,
			want:  `{"a": "x,]"}`,
		},
		{
			name:  "single quoted keys and values",
			input: `{'name': 'home'}`,
			want:  `{"name": "home"}`,
		},
		{
			name:  "escaped single quote",
			input: `{'title': 'Bob\'s app'}`,
			want:  `{"title": "Bob's app"}`,
		},
		{
			name:  "double quote inside single quoted string",
			input: `{'title': 'say "hi"'}`,
			want:  `{"title": "say \"hi\""}`,
		},
		{
			name:  "apostrophe inside double quoted string untouched",
			input: `{"title": "Don't panic, it's fine"}`,
			want:  `{"title": "Don't panic, it's fine"}`,
		},
		{
			name:  "run of trailing commas",
			input: `{"a": [1, 2,,], "b": 3 , ,}`,
			want:  `{"a": [1, 2], "b": 3 }`,
		},
		{
			name:  "unquoted keys",
			input: `{name: "home", isStartPoint: true, nextScreens: ["a"]}`,
			want:  `{"name": "home", "isStartPoint": true, "nextScreens": ["a"]}`,
		},
		{
			name:  "key-like text inside string untouched",
			input: `{"note": "first, then: second"}`,
			want:  `{"note": "first, then: second"}`,
		},
		{
			name:  "literals in arrays stay unquoted",
			input: `{"flags": [true, false, null]}`,
			want:  `{"flags": [true, false, null]}`,
		},
		{
			name:  "newlines collapsed",
			input: "{\n  \"a\": \"line one\nline two\"\n}",
			want:  `{ "a": "line one line two" }`,
		},
		{
			name:  "all patterns together",
			input: "{\n  app: {'name': 'Shop',},\n  screens: [],\n}",
			want:  `{ "app": {"name": "Shop"}, "screens": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RepairJSON(tt.input))
		})
	}
}

func TestRepairJSON_ProducesValidJSON(t *testing.T) {
	input := "{\n  app: {\n    'name': 'Drone Booking',\n    nav: {type: 'tabs', items: [{name: 'Home', icon: 'home', screen: 'home'},],},\n  },\n  screens: [{name: 'home', components: [],},],\n}"

	repaired := RepairJSON(input)

	assert.True(t, json.Valid([]byte(repaired)), repaired)
}

func TestRepairJSON_Idempotent(t *testing.T) {
	inputs := []string{
		`{'a': 'b',}`,
		"{\n  key: 'value',\n  list: [1, 2,],\n}",
		`{name: 'Bob\'s', "keep": "it's, fine:", other: [ 'x' , ], }`,
		`{'unterminated: 1}`,
		`{"already": "valid"}`,
		"{'multi':\n'line\nvalue',}",
		`{"a": [1, 2,,]}`,
		"{\"a\": 1,\n ,\n}",
		`[{"x": [,,]},, ]`,
	}
	for _, in := range inputs {
		once := RepairJSON(in)
		assert.Equal(t, once, RepairJSON(once), "input: %q", in)
	}
}

func TestParseWithRepair(t *testing.T) {
	parse := func(b []byte) (map[string]any, error) {
		var m map[string]any
		err := json.Unmarshal(b, &m)
		return m, err
	}

	t.Run("valid input not repaired", func(t *testing.T) {
		m, repaired, err := ParseWithRepair(`{"a": 1}`, parse)
		require.NoError(t, err)
		assert.False(t, repaired)
		assert.Equal(t, float64(1), m["a"])
	})

	t.Run("repairable input", func(t *testing.T) {
		m, repaired, err := ParseWithRepair(`{a: 'b',}`, parse)
		require.NoError(t, err)
		assert.True(t, repaired)
		assert.Equal(t, "b", m["a"])
	})

	t.Run("prose fails", func(t *testing.T) {
		_, repaired, err := ParseWithRepair(`I cannot help with that.`, parse)
		require.Error(t, err)
		assert.False(t, repaired)
	})

	t.Run("repair not enough", func(t *testing.T) {
		_, _, err := ParseWithRepair(`{"a": }`, parse)
		require.Error(t, err)
	})
}
