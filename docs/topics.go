// Package docs serves the embedded documentation topics.
package docs

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed *.md
var docs embed.FS

// Get returns the content of a documentation topic.
func Get(topic string) (string, error) {
	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// All returns the sorted list of available topics.
func All() []string {
	entries, err := docs.ReadDir(".")
	if err != nil {
		return nil
	}
	var topics []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".md") {
			continue
		}
		topics = append(topics, strings.TrimSuffix(name, ".md"))
	}
	sort.Strings(topics)
	return topics
}
