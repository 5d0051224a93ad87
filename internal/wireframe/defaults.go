package wireframe

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxDescriptionExcerpt bounds the description copied into metadata.
const MaxDescriptionExcerpt = 100

// ApplyDefaults fills in what the model commonly leaves out. It only writes
// empty slots, so running it again changes nothing:
//   - component ids become "{lowercased type}-{1-based index in screen}",
//     with a further "-N" suffix when that id is already taken in the screen
//   - missing metadata is synthesized with a timestamp and description excerpt
//   - missing theme roles take the DefaultTheme value
func ApplyDefaults(doc *Document, description string, now time.Time) {
	if doc == nil {
		return
	}

	for si := range doc.Screens {
		assignComponentIDs(doc.Screens[si].Components)
	}

	if doc.App != nil {
		defaults := DefaultTheme
		fallback := defaults.roles()
		for i, role := range doc.App.Theme.roles() {
			if strings.TrimSpace(*role.value) == "" {
				*role.value = *fallback[i].value
			}
		}
	}

	if doc.Metadata == nil {
		doc.Metadata = &Metadata{
			GeneratedAt: now.UTC().Format(time.RFC3339),
			Description: Excerpt(description, MaxDescriptionExcerpt),
		}
	}
}

func assignComponentIDs(components []Component) {
	taken := make(map[string]bool, len(components))
	for _, c := range components {
		if id := strings.TrimSpace(c.ID); id != "" {
			taken[id] = true
		}
	}
	for ci := range components {
		if strings.TrimSpace(components[ci].ID) != "" {
			continue
		}
		prefix := strings.ToLower(strings.TrimSpace(string(components[ci].Type)))
		if prefix == "" {
			prefix = "component"
		}
		id := fmt.Sprintf("%s-%d", prefix, ci+1)
		for n := 2; taken[id]; n++ {
			id = fmt.Sprintf("%s-%d-%d", prefix, ci+1, n)
		}
		taken[id] = true
		components[ci].ID = id
	}
}

// Excerpt truncates s to at most max runes without splitting a character.
func Excerpt(s string, max int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
