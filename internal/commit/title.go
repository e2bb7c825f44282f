// Package commit parses structured commit titles of the form
//
//	(<hash>) <type>[<sep>][<component>]: <summary>
//
// where <type> is a three-letter change code, <sep> is an optional ',' or '!'
// ('!' marks a breaking change) and <component> is an optional scope.
// Lines that do not follow the convention are not an error; Parse reports
// them as a no-match so callers can route them elsewhere.
package commit

import (
	"fmt"
	"regexp"
)

// titlePattern is anchored on both ends so that a partial match (for example
// a four-letter type read as type + component) is impossible.
var titlePattern = regexp.MustCompile(`^\(([a-zA-Z0-9]+)\) ([a-zA-Z]{3})(?:([,!])([a-zA-Z/]*))?: (.+)$`)

const (
	groupHash = iota + 1
	groupType
	groupSep
	groupComponent
	groupSummary
	groupCount
)

// BreakingMarker is the separator that flags a breaking change.
const BreakingMarker = "!"

// Title is a commit title that matched the convention.
// Values are only produced by Parse and are not modified afterwards.
type Title struct {
	Hash      string
	Type      string
	Breaking  bool
	Component string // empty when the title has no component
	Summary   string
}

// Parse matches a single log line against the title convention.
// The boolean is false when the line does not follow it.
func Parse(line string) (Title, bool) {
	m := titlePattern.FindStringSubmatch(line)
	if len(m) != groupCount {
		return Title{}, false
	}

	if m[groupHash] == "" || m[groupType] == "" || m[groupSummary] == "" {
		return Title{}, false
	}

	return Title{
		Hash:      m[groupHash],
		Type:      m[groupType],
		Breaking:  m[groupSep] == BreakingMarker,
		Component: m[groupComponent],
		Summary:   m[groupSummary],
	}, true
}

// HasComponent reports whether the title names a component.
func (t Title) HasComponent() bool {
	return t.Component != ""
}

// Category classifies the title. Breaking changes take precedence over the type code.
func (t Title) Category() Category {
	if t.Breaking {
		return Breaking
	}
	return CategoryForType(t.Type)
}

// Line renders the title as a changelog bullet.
func (t Title) Line() string {
	if t.HasComponent() {
		return fmt.Sprintf("* %s: %s", t.Component, t.Summary)
	}
	return fmt.Sprintf("* %s", t.Summary)
}

// String returns a multi-line description of every field, used for debug output.
func (t Title) String() string {
	component := t.Component
	if !t.HasComponent() {
		component = "No Component"
	}
	return fmt.Sprintf("Commit Information:\nHash: %s\nType: %s\nComponent: %s\nSummary: %s\nIs Breaking Change: %t",
		t.Hash, t.Type, component, t.Summary, t.Breaking)
}
