// Package fallback produces deterministic answers when a remote model is
// unconfigured or fails.
//
// Everything here is pure: the reply table is parsed once from the embedded
// replies.yaml and every function derives its output only from its inputs.
// Nothing in this package returns an error.
package fallback

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joyal-jij0/pragati/internal/language"
)

//go:embed replies.yaml
var repliesYAML []byte

// Topic is one keyword-routed canned reply.
type Topic struct {
	Name        string   `yaml:"name"`
	Keywords    []string `yaml:"keywords"`
	MatchImages bool     `yaml:"match_images"`
	Reply       string   `yaml:"reply"`
}

// Replies holds the canned replies for one language.
type Replies struct {
	Topics  []Topic `yaml:"topics"`
	Generic string  `yaml:"generic"`
}

// Table maps canonical language codes to their replies.
type Table struct {
	FallbackLanguage string             `yaml:"fallback_language"`
	Languages        map[string]Replies `yaml:"languages"`
}

var table = mustParse(repliesYAML)

// ParseTable decodes and validates a reply table.
func ParseTable(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing reply table: %w", err)
	}
	fb, ok := t.Languages[t.FallbackLanguage]
	if !ok || fb.Generic == "" {
		return nil, fmt.Errorf("fallback language %q has no generic reply", t.FallbackLanguage)
	}
	for code, r := range t.Languages {
		if r.Generic == "" {
			return nil, fmt.Errorf("language %q has no generic reply", code)
		}
		for _, topic := range r.Topics {
			if topic.Reply == "" {
				return nil, fmt.Errorf("language %q topic %q has no reply", code, topic.Name)
			}
		}
	}
	return &t, nil
}

func mustParse(data []byte) *Table {
	t, err := ParseTable(data)
	if err != nil {
		panic(err)
	}
	return t
}

// Reply picks the canned reply for an utterance in the given language. The
// first topic with a keyword contained in the lower-cased text wins; topics
// marked match_images also win when images are attached. Unmatched input gets
// the language's generic reply.
func Reply(text, lang string, hasImages bool) string {
	return table.Reply(text, lang, hasImages)
}

// Reply is the table-scoped form of the package-level Reply.
func (t *Table) Reply(text, lang string, hasImages bool) string {
	r, ok := t.Languages[lang]
	if !ok {
		r = t.Languages[t.FallbackLanguage]
	}

	lower := strings.ToLower(text)
	for _, topic := range r.Topics {
		if topic.MatchImages && hasImages {
			return topic.Reply
		}
		for _, kw := range topic.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return topic.Reply
			}
		}
	}
	return r.Generic
}

// Topics returns the topic names routed for a language, in match order.
func Topics(lang string) []string {
	r, ok := table.Languages[lang]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(r.Topics))
	for _, t := range r.Topics {
		names = append(names, t.Name)
	}
	return names
}

// Covers reports whether every canonical language has a reply entry.
func Covers() bool {
	for _, code := range language.Codes() {
		if _, ok := table.Languages[code]; !ok {
			return false
		}
	}
	return true
}
