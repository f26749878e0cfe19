// Package docs serves the embedded help topics shown by the `docs`
// command and the TUI help overlay.
package docs

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed content/*.md
var contentFS embed.FS

// Topics lists the available topic names, sorted.
func Topics() []string {
	entries, err := fs.ReadDir(contentFS, "content")
	if err != nil {
		return []string{}
	}
	var topics []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".md") {
			continue
		}
		topic := strings.TrimSuffix(name, ".md")
		if topic != "" {
			topics = append(topics, topic)
		}
	}
	sort.Strings(topics)
	return topics
}

// Get returns the markdown body for a topic. Topic names are
// case-insensitive.
func Get(topic string) (string, bool) {
	topic = strings.TrimSpace(strings.ToLower(topic))
	if topic == "" {
		return "", false
	}
	b, err := contentFS.ReadFile("content/" + topic + ".md")
	if err != nil {
		return "", false
	}
	return string(b), true
}
