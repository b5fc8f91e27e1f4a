package css

import (
	"strings"
)

// ======================================================================================
// CSS PARSER
// ======================================================================================

// Origin identifies where a rule came from; it orders the cascade before
// specificity.
type Origin int

const (
	OriginUserAgent Origin = iota
	OriginAuthor
	OriginInline
)

// Declaration represents a single CSS property: value pair
type Declaration struct {
	Property string
	Value    string
}

// Rule represents a CSS rule with selectors and declarations
type Rule struct {
	Selectors    []Selector
	Declarations []Declaration
	Origin       Origin
}

// Stylesheet represents a collection of CSS rules
type Stylesheet struct {
	Rules  []Rule
	Origin Origin
}

// ParseDeclarations parses a declaration block like
// "color: red; font-size: 16px;". Bad declarations are skipped silently.
func ParseDeclarations(block string) []Declaration {
	var declarations []Declaration

	for _, part := range strings.Split(block, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		colonIdx := strings.Index(part, ":")
		if colonIdx == -1 {
			continue
		}

		property := strings.ToLower(strings.TrimSpace(part[:colonIdx]))
		value := strings.TrimSpace(part[colonIdx+1:])
		// !important is tolerated but carries no extra cascade weight here.
		value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(value, "!important"), "!IMPORTANT"))

		if property == "" || value == "" {
			continue
		}

		declarations = append(declarations, Declaration{Property: property, Value: value})
	}

	return declarations
}

// ParseStylesheet parses a stylesheet: a sequence of
// `selector-list { declaration-list }` rules. Malformed rules are skipped;
// the parser never aborts.
func ParseStylesheet(source string, origin Origin) *Stylesheet {
	sheet := &Stylesheet{Origin: origin}
	source = removeComments(source)

	pos := 0
	for pos < len(source) {
		for pos < len(source) && isWhitespace(source[pos]) {
			pos++
		}
		if pos >= len(source) {
			break
		}

		braceStart := strings.Index(source[pos:], "{")
		if braceStart == -1 {
			break
		}
		braceStart += pos

		selectorText := strings.TrimSpace(source[pos:braceStart])

		braceEnd := findMatchingBrace(source, braceStart)
		if braceEnd == -1 {
			break
		}

		if selectorText != "" && !strings.HasPrefix(selectorText, "@") {
			selectors := ParseSelectorList(selectorText)
			declarations := ParseDeclarations(source[braceStart+1 : braceEnd])
			if len(selectors) > 0 && len(declarations) > 0 {
				sheet.Rules = append(sheet.Rules, Rule{
					Selectors:    selectors,
					Declarations: declarations,
					Origin:       origin,
				})
			}
		}

		pos = braceEnd + 1
	}

	return sheet
}

// removeComments strips /* ... */ comments. Nesting is not supported.
func removeComments(source string) string {
	var result strings.Builder
	i := 0
	for i < len(source) {
		if i+1 < len(source) && source[i] == '/' && source[i+1] == '*' {
			end := strings.Index(source[i+2:], "*/")
			if end == -1 {
				break
			}
			i = i + 2 + end + 2
		} else {
			result.WriteByte(source[i])
			i++
		}
	}
	return result.String()
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func findMatchingBrace(source string, start int) int {
	depth := 1
	for i := start + 1; i < len(source); i++ {
		if source[i] == '{' {
			depth++
		} else if source[i] == '}' {
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
