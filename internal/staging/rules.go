package staging

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/vvka-141/wsup/internal/files/filesystem"
	"github.com/vvka-141/wsup/pkg/wsup"
)

// Decision is the outcome of evaluating one layer of rules for an entry.
type Decision int

const (
	// DecisionNone means the layer has no opinion about the entry.
	DecisionNone Decision = iota
	// DecisionInclude means the entry is staged.
	DecisionInclude
	// DecisionExclude means the entry is left out; directories are pruned.
	DecisionExclude
)

func (d Decision) String() string {
	switch d {
	case DecisionInclude:
		return "include"
	case DecisionExclude:
		return "exclude"
	default:
		return "none"
	}
}

// RuleInput is everything BuildRules needs besides the protected file.
type RuleInput struct {
	// Globs are override patterns in registration order.
	Globs []string
	// IgnoreFiles are host paths of explicit ignore files in registration order.
	IgnoreFiles []string
	// FS reads IgnoreFiles. Defaults to the host filesystem.
	FS billy.Basic
}

type overrideRule struct {
	glob string
	// patterns holds one compiled pattern per brace alternative.
	patterns []gitignore.Pattern
	exclude  bool
	// protect marks the implicit metadata-file rule.
	protect bool
	// targetsProtected marks user rules that name the metadata file literally.
	targetsProtected bool
}

// RuleSet is the compiled filter used by Walk. It is immutable once built and
// may be shared between walks.
type RuleSet struct {
	overrides       []overrideRule
	allowList       bool
	explicit        []gitignore.Pattern
	ignoreFileNames []string
}

// BuildRules compiles the override layer and the explicit ignore files.
//
// The metadata-protection override is registered first; input.Globs follow in
// order. Fails with a *PatternError on invalid syntax and an *IgnoreFileError
// when an explicit ignore file cannot be read. Nothing is written.
func BuildRules(input RuleInput) (*RuleSet, error) {
	rs := &RuleSet{
		ignoreFileNames: wsup.IgnoreFileNames,
	}

	rs.overrides = append(rs.overrides, overrideRule{
		glob:     "/" + wsup.MetadataFileName,
		patterns: []gitignore.Pattern{gitignore.ParsePattern("/"+wsup.MetadataFileName, nil)},
		protect:  true,
	})

	for _, glob := range input.Globs {
		rule, err := compileOverride(glob)
		if err != nil {
			return nil, err
		}
		if !rule.exclude {
			rs.allowList = true
		}
		rs.overrides = append(rs.overrides, rule)
	}

	fsys := input.FS
	if fsys == nil {
		fsys = filesystem.Host()
	}

	for _, path := range input.IgnoreFiles {
		content, err := filesystem.ReadFile(fsys, path)
		if err != nil {
			return nil, &IgnoreFileError{Path: path, Err: err}
		}

		patterns, errs := parseIgnore(bytes.NewReader(content), nil, path)
		if len(errs) > 0 {
			return nil, errs[0]
		}
		rs.explicit = append(rs.explicit, patterns...)
	}

	return rs, nil
}

// compileOverride parses one user glob. A leading "!" makes it an exclusion;
// "\!" keeps a literal leading "!".
func compileOverride(glob string) (overrideRule, error) {
	body := glob
	exclude := false
	if strings.HasPrefix(body, "!") {
		exclude = true
		body = body[1:]
	}

	if strings.TrimSpace(body) == "" {
		return overrideRule{}, &PatternError{Pattern: glob, Source: "override", Reason: "empty pattern"}
	}
	if err := validatePattern(body); err != nil {
		return overrideRule{}, &PatternError{Pattern: glob, Source: "override", Reason: err.Error()}
	}

	rule := overrideRule{glob: glob, exclude: exclude}
	for _, alt := range expandBraces(body) {
		rule.patterns = append(rule.patterns, gitignore.ParsePattern(alt, nil))
		if strings.TrimPrefix(alt, "/") == wsup.MetadataFileName {
			rule.targetsProtected = true
		}
	}
	return rule, nil
}

func (r overrideRule) matches(parts []string, isDir bool) bool {
	for _, p := range r.patterns {
		if p.Match(parts, isDir) != gitignore.NoMatch {
			return true
		}
	}
	return false
}

// expandBraces rewrites {a,b} alternations into one glob per alternative.
// The gitignore matcher has no alternation syntax. Escaped braces and braces
// inside character classes are literal.
func expandBraces(glob string) []string {
	open, end := -1, -1
	depth := 0
	var commas []int

scan:
	for i := 0; i < len(glob); i++ {
		switch glob[i] {
		case '\\':
			i++
		case '[':
			if j := classEnd(glob, i); j > 0 {
				i = j
			}
		case '{':
			if depth == 0 {
				open = i
				commas = commas[:0]
			}
			depth++
		case ',':
			if depth == 1 {
				commas = append(commas, i)
			}
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				end = i
				break scan
			}
		}
	}
	if end < 0 {
		return []string{glob}
	}

	prefix, suffix := glob[:open], glob[end+1:]
	var out []string
	start := open + 1
	for _, sep := range append(commas, end) {
		out = append(out, expandBraces(prefix+glob[start:sep]+suffix)...)
		start = sep + 1
	}
	return out
}

// classEnd returns the index of the "]" closing the class opened at i, or -1.
func classEnd(glob string, i int) int {
	j := i + 1
	if j < len(glob) && (glob[j] == '!' || glob[j] == '^') {
		j++
	}
	if j < len(glob) && glob[j] == ']' {
		j++
	}
	for ; j < len(glob); j++ {
		switch glob[j] {
		case '\\':
			j++
		case ']':
			return j
		}
	}
	return -1
}

// validatePattern rejects malformed globs (unclosed classes or alternations,
// dangling escapes) before they are compiled, since the gitignore matcher
// would silently never match them.
func validatePattern(body string) error {
	body = strings.TrimSuffix(body, "/")
	if !doublestar.ValidatePattern(body) {
		return fmt.Errorf("malformed glob syntax")
	}
	return nil
}

// parseIgnore reads ignore-file lines scoped to domain. Blank lines and
// comments are skipped. Invalid lines are returned as errors and left out of
// the pattern list so the caller decides whether they are fatal.
func parseIgnore(r io.Reader, domain []string, source string) ([]gitignore.Pattern, []error) {
	var (
		patterns []gitignore.Pattern
		errs     []error
	)

	s := bufio.NewScanner(r)
	lineNo := 0
	for s.Scan() {
		lineNo++
		line := strings.TrimRight(s.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		line = trimTrailingSpaces(line)
		negate := ""
		body := line
		if strings.HasPrefix(body, "!") {
			negate, body = "!", body[1:]
		}
		if err := validatePattern(body); err != nil {
			errs = append(errs, &PatternError{Pattern: line, Source: source, Line: lineNo, Reason: err.Error()})
			continue
		}

		for _, alt := range expandBraces(body) {
			patterns = append(patterns, gitignore.ParsePattern(negate+alt, domain))
		}
	}
	if err := s.Err(); err != nil {
		errs = append(errs, &IgnoreFileError{Path: source, Err: err})
	}

	return patterns, errs
}

// trimTrailingSpaces drops trailing spaces unless the last one is escaped
// with a backslash, which keeps it.
func trimTrailingSpaces(line string) string {
	end := len(line)
	for end > 0 && line[end-1] == ' ' {
		slashes := 0
		for i := end - 2; i >= 0 && line[i] == '\\'; i-- {
			slashes++
		}
		if slashes%2 == 1 {
			break
		}
		end--
	}
	return line[:end]
}

// Override evaluates the override layer for a slash-separated path relative
// to the content root.
func (rs *RuleSet) Override(path string, isDir bool) Decision {
	return rs.override(splitPath(path), isDir)
}

func (rs *RuleSet) override(parts []string, isDir bool) Decision {
	decision := DecisionNone
	protected := false

	for _, rule := range rs.overrides {
		if !rule.matches(parts, isDir) {
			continue
		}

		switch {
		case rule.protect:
			protected = true
			decision = DecisionInclude
		case protected && !rule.targetsProtected:
			// only a rule naming the metadata file can undo its protection
		case rule.exclude:
			decision = DecisionExclude
		default:
			decision = DecisionInclude
		}
	}

	if decision == DecisionNone && rs.allowList && !isDir {
		return DecisionExclude
	}
	return decision
}

// decide combines the override layer with the ignore patterns in scope.
func (rs *RuleSet) decide(parts []string, isDir bool, ignores gitignore.Matcher) (Decision, string) {
	if d := rs.override(parts, isDir); d != DecisionNone {
		return d, "override"
	}
	if ignores != nil && ignores.Match(parts, isDir) {
		return DecisionExclude, "ignore"
	}
	return DecisionInclude, ""
}

// Globs returns the override globs in evaluation order, the protected
// metadata rule first.
func (rs *RuleSet) Globs() []string {
	out := make([]string, 0, len(rs.overrides))
	for _, rule := range rs.overrides {
		out = append(out, rule.glob)
	}
	return out
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" || path == "." {
		return nil
	}
	return strings.Split(path, "/")
}
