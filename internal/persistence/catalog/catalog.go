// Package catalog holds the immutable statement catalog: every piece of SQL
// the store executes, keyed by operation name and parsed once at startup.
package catalog

import (
	"bufio"
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/magearena/server/internal/persistence"
	apperrors "github.com/magearena/server/internal/platform/errors"
)

//go:embed queries.sql
var queriesSQL string

const nameMarker = "-- name:"

var paramPattern = regexp.MustCompile(`@([A-Za-z_][A-Za-z0-9_]*)`)

// Template is one parameterized statement: SQL text plus the ordered list of
// distinct named parameters it expects. Identifiers in the text are
// catalog-time constants; only parameter values are ever bound.
type Template struct {
	Name   string
	SQL    string
	Params []string
}

// Catalog is the immutable name-to-template mapping.
type Catalog struct {
	templates map[string]Template
}

// Load parses the embedded statement definitions. Called once at process
// start; the result never changes afterwards.
func Load() (*Catalog, error) {
	return parse(queriesSQL)
}

func parse(src string) (*Catalog, error) {
	templates := make(map[string]Template)

	var name string
	var body strings.Builder
	flush := func() error {
		if name == "" {
			return nil
		}
		sqlText := strings.TrimSpace(body.String())
		if sqlText == "" {
			return fmt.Errorf("query %s has no statement body", name)
		}
		if _, exists := templates[name]; exists {
			return fmt.Errorf("query %s defined twice", name)
		}
		templates[name] = Template{
			Name:   name,
			SQL:    sqlText,
			Params: extractParams(sqlText),
		}
		return nil
	}

	scanner := bufio.NewScanner(strings.NewReader(src))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), nameMarker) {
			if err := flush(); err != nil {
				return nil, err
			}
			name = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), nameMarker))
			if name == "" {
				return nil, fmt.Errorf("query section with empty name")
			}
			body.Reset()
			continue
		}
		if name == "" {
			// Header comments before the first section.
			continue
		}
		body.WriteString(line)
		body.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan query definitions: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("no query definitions found")
	}

	return &Catalog{templates: templates}, nil
}

// extractParams returns the distinct @named placeholders in first-use order.
func extractParams(sqlText string) []string {
	matches := paramPattern.FindAllStringSubmatch(sqlText, -1)
	seen := make(map[string]bool, len(matches))
	params := make([]string, 0, len(matches))
	for _, m := range matches {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		params = append(params, m[1])
	}
	return params
}

// Get resolves a template by name. An unknown name is a misconfiguration,
// surfaced as ErrUnknownQuery and meant to be fatal at startup.
func (c *Catalog) Get(name string) (Template, error) {
	tpl, ok := c.templates[name]
	if !ok {
		return Template{}, apperrors.Wrap(
			apperrors.CodeUnknownQuery,
			fmt.Sprintf("query %s is not defined in the catalog", name),
			persistence.ErrUnknownQuery,
		)
	}
	return tpl, nil
}

// MustGet resolves a template by name and panics on misconfiguration.
// Intended only for startup paths that have already validated the catalog.
func (c *Catalog) MustGet(name string) Template {
	tpl, err := c.Get(name)
	if err != nil {
		panic(err)
	}
	return tpl
}

// Names lists every defined query name in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.templates))
	for name := range c.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
