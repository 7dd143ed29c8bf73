package manifest

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/arthur-debert/konsave/pkg/logging"
	"github.com/arthur-debert/konsave/pkg/types"
)

// TokenSymbol introduces every token in a location.
const TokenSymbol = "$"

// Function names recognised inside ${NAME='arg'} tokens.
const (
	FuncEndsWith   = "ENDS_WITH"
	FuncBeginsWith = "BEGINS_WITH"
)

// funcPattern matches ${NAME='arg'} and ${NAME="arg"}. Groups: name, argument.
var funcPattern = regexp.MustCompile(`\$\{(\w+)=(?:"|')(\S+?)(?:"|')\}`)

// matchFunc decides whether a directory entry satisfies a function argument.
type matchFunc func(entry, arg string) bool

var functions = map[string]matchFunc{
	FuncEndsWith:   strings.HasSuffix,
	FuncBeginsWith: strings.HasPrefix,
}

// Resolver expands tokens in manifest locations.
type Resolver struct {
	fs       types.FS
	keywords map[string]string
	order    []string
}

// NewResolver creates a resolver. keywords maps names (without the token
// symbol) to their values; fsys is probed by function tokens.
func NewResolver(fsys types.FS, keywords map[string]string) *Resolver {
	order := make([]string, 0, len(keywords))
	for name := range keywords {
		order = append(order, name)
	}
	// Longest first so a keyword that prefixes another never shadows it
	sort.Slice(order, func(i, j int) bool {
		if len(order[i]) != len(order[j]) {
			return len(order[i]) > len(order[j])
		}
		return order[i] < order[j]
	})
	return &Resolver{fs: fsys, keywords: keywords, order: order}
}

// Resolve expands keywords, then functions. It returns the resolved string
// and the function tokens that could not be resolved, which are left in
// place.
func (r *Resolver) Resolve(raw string) (string, []string) {
	return r.ExpandFunctions(r.ExpandKeywords(raw))
}

// ExpandKeywords replaces every $NAME occurrence of every keyword.
// Values are not expanded again.
func (r *Resolver) ExpandKeywords(raw string) string {
	if !strings.Contains(raw, TokenSymbol) {
		return raw
	}
	for _, name := range r.order {
		raw = strings.ReplaceAll(raw, TokenSymbol+name, r.keywords[name])
	}
	return raw
}

// ExpandFunctions replaces function tokens left to right. Each token is
// resolved by listing the directory formed by everything before it and
// substituting the first entry accepted by the function. Tokens with no
// match are kept and reported; unknown function names are kept silently.
func (r *Resolver) ExpandFunctions(s string) (string, []string) {
	logger := logging.GetLogger("manifest.resolver")
	var unresolved []string

	pos := 0
	for pos < len(s) {
		loc := funcPattern.FindStringSubmatchIndex(s[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		token := s[start:end]
		name := s[pos+loc[2] : pos+loc[3]]
		arg := s[pos+loc[4] : pos+loc[5]]

		match, known := functions[name]
		if !known {
			pos = end
			continue
		}

		entry, ok := r.probe(s[:start], arg, match)
		if !ok {
			logger.Warn().
				Str("token", token).
				Str("dir", probeDir(s[:start])).
				Msg("No directory entry matches token, leaving it unresolved")
			unresolved = append(unresolved, token)
			pos = end
			continue
		}

		logger.Debug().Str("token", token).Str("entry", entry).Msg("Resolved function token")
		s = s[:start] + entry + s[end:]
		pos = start + len(entry)
	}

	return s, unresolved
}

// probe lists dir and returns the first entry accepted by match.
func (r *Resolver) probe(prefix, arg string, match matchFunc) (string, bool) {
	entries, err := r.fs.ReadDir(probeDir(prefix))
	if err != nil {
		logger := logging.GetLogger("manifest.resolver")
		logger.Debug().
			Err(err).
			Str("dir", probeDir(prefix)).
			Msg("Cannot list directory for token")
		return "", false
	}
	for _, e := range entries {
		if match(e.Name(), arg) {
			return e.Name(), true
		}
	}
	return "", false
}

func probeDir(prefix string) string {
	if prefix == "" {
		return "."
	}
	return filepath.Clean(prefix)
}

// HasToken reports whether s still contains keyword or function syntax.
func HasToken(s string) bool {
	return funcPattern.MatchString(s)
}
