// Package language holds the canonical language table and the [LANG:xx]
// directive convention used to request a response language.
//
// Every language-dependent behaviour in the gateway (prompt pinning, fallback
// replies, speech locales) is keyed by the two-letter canonical code.
package language

import (
	"regexp"
	"strings"

	"github.com/joyal-jij0/pragati/internal/message"
)

// Default is the canonical code used when no directive is present or the
// requested code is not in the table.
const Default = "hi"

type entry struct {
	name   string // display name used in prompts
	locale string // Google speech locale
}

var table = map[string]entry{
	"hi": {name: "Hindi (हिंदी)", locale: "hi-IN"},
	"pa": {name: "Punjabi (ਪੰਜਾਬੀ)", locale: "pa-IN"},
	"bn": {name: "Bengali (বাংলা)", locale: "bn-IN"},
	"te": {name: "Telugu (తెలుగు)", locale: "te-IN"},
	"ta": {name: "Tamil (தமிழ்)", locale: "ta-IN"},
	"mr": {name: "Marathi (मराठी)", locale: "mr-IN"},
	"gu": {name: "Gujarati (ગુજરાતી)", locale: "gu-IN"},
	"kn": {name: "Kannada (ಕನ್ನಡ)", locale: "kn-IN"},
	"en": {name: "English", locale: "en-US"},
}

// order is the stable listing order for Codes.
var order = []string{"hi", "pa", "bn", "te", "ta", "mr", "gu", "kn", "en"}

var directiveRe = regexp.MustCompile(`\[LANG:([a-z]{2})\]\s*`)

// Extract finds the first [LANG:xx] directive in text and returns the
// canonical code together with the text stripped of that directive.
// Unknown or absent codes yield Default. Extract never fails.
func Extract(text string) (code, cleaned string) {
	loc := directiveRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return Default, text
	}
	code = text[loc[2]:loc[3]]
	cleaned = strings.TrimSpace(text[:loc[0]] + text[loc[1]:])
	if !Known(code) {
		code = Default
	}
	return code, cleaned
}

// Find reports the code of the first directive in text, if any. Unlike
// Extract it distinguishes "no directive" from "directive for the default".
func Find(text string) (code string, ok bool) {
	m := directiveRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	if !Known(m[1]) {
		return Default, true
	}
	return m[1], true
}

// Strip removes the first directive from text.
func Strip(text string) string {
	_, cleaned := Extract(text)
	return cleaned
}

// Directive renders the directive for code.
func Directive(code string) string {
	return "[LANG:" + code + "]"
}

// Known reports whether code is in the canonical table.
func Known(code string) bool {
	_, ok := table[code]
	return ok
}

// Normalize returns code if known, else Default.
func Normalize(code string) string {
	if Known(code) {
		return code
	}
	return Default
}

// DisplayName returns the prompt display name for code.
func DisplayName(code string) string {
	return table[Normalize(code)].name
}

// Locale returns the provider speech locale (e.g. "hi-IN") for code.
func Locale(code string) string {
	return table[Normalize(code)].locale
}

// Codes lists all canonical codes in a stable order.
func Codes() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// FromConversation scans user messages newest-first and returns the code of
// the first directive found, or Default.
func FromConversation(messages []message.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		if m.Role != message.RoleUser || m.Content == nil {
			continue
		}
		if code, ok := Find(m.Content.Body()); ok {
			return code
		}
	}
	return Default
}
