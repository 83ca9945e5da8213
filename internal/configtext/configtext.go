// Package configtext tokenizes ensemble configuration text into keyword
// statements with positional arguments and KEY:VALUE option maps, applying
// the per-keyword arity schema before the statements reach the registry.
package configtext

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Keywords understood by the ensemble configuration.
const (
	KeywordGenKWTagFormat = "GEN_KW_TAG_FORMAT"
	KeywordGenKW          = "GEN_KW"
	KeywordGenParam       = "GEN_PARAM"
	KeywordGenData        = "GEN_DATA"
	KeywordSummary        = "SUMMARY"
	KeywordSurface        = "SURFACE"
	KeywordField          = "FIELD"
	KeywordContainer      = "CONTAINER"
)

// Option keys recognized in KEY:VALUE tokens.
const (
	OptionInputFormat     = "INPUT_FORMAT"
	OptionOutputFormat    = "OUTPUT_FORMAT"
	OptionInitFiles       = "INIT_FILES"
	OptionTemplate        = "TEMPLATE"
	OptionKey             = "KEY"
	OptionResultFile      = "RESULT_FILE"
	OptionMinStd          = "MIN_STD"
	OptionEclFile         = "ECL_FILE"
	OptionOutputFile      = "OUTPUT_FILE"
	OptionBaseSurface     = "BASE_SURFACE"
	OptionMin             = "MIN"
	OptionMax             = "MAX"
	OptionInitTransform   = "INIT_TRANSFORM"
	OptionOutputTransform = "OUTPUT_TRANSFORM"
	OptionInputTransform  = "INPUT_TRANSFORM"
)

// commentPrefix starts a comment running to end of line.
const commentPrefix = "--"

var recognizedOptions = map[string]struct{}{
	OptionInputFormat:     {},
	OptionOutputFormat:    {},
	OptionInitFiles:       {},
	OptionTemplate:        {},
	OptionKey:             {},
	OptionResultFile:      {},
	OptionMinStd:          {},
	OptionEclFile:         {},
	OptionOutputFile:      {},
	OptionBaseSurface:     {},
	OptionMin:             {},
	OptionMax:             {},
	OptionInitTransform:   {},
	OptionOutputTransform: {},
	OptionInputTransform:  {},
}

// schemaItem bounds the positional argument count for one keyword and
// controls whether trailing KEY:VALUE tokens are collected as options.
type schemaItem struct {
	minArgs      int
	maxArgs      int // <0 means unbounded
	takesOptions bool
}

var schema = map[string]schemaItem{
	KeywordGenKWTagFormat: {minArgs: 1, maxArgs: 1},
	KeywordGenKW:          {minArgs: 4, maxArgs: 4, takesOptions: true},
	KeywordGenParam:       {minArgs: 2, maxArgs: 2, takesOptions: true},
	KeywordGenData:        {minArgs: 1, maxArgs: 1, takesOptions: true},
	KeywordSummary:        {minArgs: 1, maxArgs: -1},
	KeywordSurface:        {minArgs: 1, maxArgs: 1, takesOptions: true},
	KeywordField:          {minArgs: 2, maxArgs: 4, takesOptions: true},
	KeywordContainer:      {minArgs: 2, maxArgs: -1},
}

// Statement is one parsed configuration line: a keyword, its positional
// arguments and its option map.
type Statement struct {
	Keyword string
	Args    []string
	Options map[string]string
}

// Option returns the option value for key, or the empty string.
func (s Statement) Option(key string) string {
	return s.Options[key]
}

// HasOption reports whether key was given on the statement.
func (s Statement) HasOption(key string) bool {
	_, ok := s.Options[key]
	return ok
}

// Config is an ordered collection of parsed statements, grouped by keyword
// for occurrence iteration.
type Config struct {
	statements []Statement
	byKeyword  map[string][]Statement
}

// Statements returns every statement in input order.
func (c *Config) Statements() []Statement {
	out := make([]Statement, len(c.statements))
	copy(out, c.statements)
	return out
}

// Occurrences returns every statement for keyword, in input order.
func (c *Config) Occurrences(keyword string) []Statement {
	return c.byKeyword[keyword]
}

// Value returns the single argument of the last occurrence of a key-value
// keyword such as GEN_KW_TAG_FORMAT.
func (c *Config) Value(keyword string) (string, bool) {
	occ := c.byKeyword[keyword]
	if len(occ) == 0 {
		return "", false
	}
	last := occ[len(occ)-1]
	if len(last.Args) == 0 {
		return "", false
	}
	return last.Args[0], true
}

// Parse reads configuration text into statements, enforcing the keyword
// arity schema. Blank lines and "--" comments are skipped; an unknown
// keyword or an argument count outside the schema bounds is an error
// naming the offending line.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{byKeyword: make(map[string][]Statement)}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if idx := strings.Index(line, commentPrefix); idx >= 0 {
			line = line[:idx]
		}
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		stmt, err := parseStatement(tokens)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		cfg.statements = append(cfg.statements, stmt)
		cfg.byKeyword[stmt.Keyword] = append(cfg.byKeyword[stmt.Keyword], stmt)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseStatement(tokens []string) (Statement, error) {
	keyword := tokens[0]
	item, ok := schema[keyword]
	if !ok {
		return Statement{}, fmt.Errorf("unrecognized keyword %q", keyword)
	}

	stmt := Statement{Keyword: keyword, Options: make(map[string]string)}
	for _, token := range tokens[1:] {
		if item.takesOptions {
			if name, value, isOpt := splitOption(token); isOpt {
				stmt.Options[name] = value
				continue
			}
		}
		stmt.Args = append(stmt.Args, token)
	}

	if len(stmt.Args) < item.minArgs {
		return Statement{}, fmt.Errorf("%s requires at least %d arguments, got %d", keyword, item.minArgs, len(stmt.Args))
	}
	if item.maxArgs >= 0 && len(stmt.Args) > item.maxArgs {
		return Statement{}, fmt.Errorf("%s accepts at most %d arguments, got %d", keyword, item.maxArgs, len(stmt.Args))
	}
	return stmt, nil
}

// splitOption recognizes KEY:VALUE tokens whose key is one of the known
// option names. Other colon-bearing tokens (e.g. summary keys like
// WOPR:OP_1) stay positional.
func splitOption(token string) (name, value string, ok bool) {
	idx := strings.Index(token, ":")
	if idx <= 0 {
		return "", "", false
	}
	name = token[:idx]
	if _, recognized := recognizedOptions[name]; !recognized {
		return "", "", false
	}
	return name, token[idx+1:], true
}
