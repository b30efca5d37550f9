package core

import (
	"fmt"
	"regexp"
	"strings"

	pep440 "github.com/aquasecurity/go-pep440-version"
	debversion "github.com/knqyf263/go-deb-version"

	"composer-reconcile/internal/shared"
)

// wildcardSegment is what Composer normalises an "x" or "*" release
// segment to, so "1.x-dev" sorts above every 1.N release.
const wildcardSegment = "9999999"

var (
	alternativeSplit = regexp.MustCompile(`\s*\|\|?\s*`)
	rangeSplit       = regexp.MustCompile(`[\s,]+`)
	coreCompatPrefix = regexp.MustCompile(`^\d+\.x-(\d)`)
	numericCore      = regexp.MustCompile(`^(\d+|[xX*])(\.(\d+|[xX*]))*`)
	stabilitySuffix  = regexp.MustCompile(`^[-_.]?(stable|beta|b|rc|alpha|a|patch|pl|p)?[-_.]?(\d+)?((?:[.-]\d+)*)?([-_.]?dev)?$`)
)

// opPrefixes is the ordered list of constraint operators stripped before
// parsing. Longer tokens must precede shorter ones (">=" before ">").
var opPrefixes = []string{">=", "<=", "!=", "==", "^", "~", ">", "<", "="}

// Version is the comparable form of a composer version or constraint
// string. Parsing keeps the numeric core of the constraint: operators,
// @stability flags and Drupal core-compatibility prefixes ("8.x-") are
// dropped, and for "||" alternatives the highest alternative wins.
type Version struct {
	Raw        string
	Normalized string
	pep        pep440.Version
	pepOK      bool
	deb        debversion.Version
	debOK      bool
}

// ParseVersion parses raw into a Version. It fails with a parse error
// when raw has no recognisable numeric form or carries a stability
// qualifier Composer does not know.
func ParseVersion(raw string) (Version, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Version{}, shared.ParseError("empty version constraint", nil)
	}
	var best Version
	found := false
	for _, alternative := range alternativeSplit.Split(trimmed, -1) {
		if strings.TrimSpace(alternative) == "" {
			continue
		}
		parsed, err := parseTerm(raw, alternative)
		if err != nil {
			return Version{}, err
		}
		if !found {
			best, found = parsed, true
			continue
		}
		cmp, err := compareParsed(parsed, best)
		if err != nil {
			return Version{}, err
		}
		if cmp > 0 {
			best = parsed
		}
	}
	if !found {
		return Version{}, shared.ParseError(fmt.Sprintf("version %q has no constraint", raw), nil)
	}
	return best, nil
}

// parseTerm parses one alternative of a constraint. For ranges ("1.0 - 2.0",
// ">=1.0 <2.0", ">=1.0,<2.0") the first term is kept.
func parseTerm(raw string, alternative string) (Version, error) {
	fields := rangeSplit.Split(strings.TrimSpace(alternative), -1)
	term := stripOperators(fields[0])
	if len(fields) > 1 && term == "" {
		term = stripOperators(fields[1])
	}
	if idx := strings.Index(term, "@"); idx >= 0 {
		term = term[:idx]
	}
	if len(term) > 1 && (term[0] == 'v' || term[0] == 'V') && term[1] >= '0' && term[1] <= '9' {
		term = term[1:]
	}
	term = coreCompatPrefix.ReplaceAllString(term, "${1}")

	core := numericCore.FindString(term)
	if core == "" {
		return Version{}, shared.ParseError(fmt.Sprintf("version %q has no numeric form", raw), nil)
	}
	suffix := term[len(core):]
	if idx := strings.Index(suffix, "+"); idx >= 0 {
		suffix = suffix[:idx]
	}
	core = expandWildcards(core)

	pepForm, ok := pep440Form(core, suffix)
	if !ok {
		return Version{}, shared.ParseError(fmt.Sprintf("version %q has an unknown stability qualifier %q", raw, suffix), nil)
	}
	version := Version{Raw: raw, Normalized: core + suffix}
	if parsed, err := pep440.Parse(pepForm); err == nil {
		version.pep, version.pepOK = parsed, true
		version.Normalized = pepForm
	}
	if parsed, err := debversion.NewVersion(debianForm(core, suffix)); err == nil {
		version.deb, version.debOK = parsed, true
	}
	if !version.pepOK && !version.debOK {
		return Version{}, shared.ParseError(fmt.Sprintf("version %q is not comparable", raw), nil)
	}
	return version, nil
}

func stripOperators(term string) string {
	term = strings.TrimSpace(term)
	for {
		stripped := false
		for _, op := range opPrefixes {
			if strings.HasPrefix(term, op) {
				term = strings.TrimSpace(term[len(op):])
				stripped = true
				break
			}
		}
		if !stripped {
			return term
		}
	}
}

func expandWildcards(core string) string {
	segments := strings.Split(core, ".")
	for i, segment := range segments {
		if segment == "x" || segment == "X" || segment == "*" {
			segments[i] = wildcardSegment
		}
	}
	return strings.Join(segments, ".")
}

// pep440Form maps Composer stability suffixes onto PEP 440 qualifiers,
// which order the same way: dev < alpha < beta < RC < stable < patch.
func pep440Form(core string, suffix string) (string, bool) {
	match := stabilitySuffix.FindStringSubmatch(strings.ToLower(suffix))
	if match == nil {
		return "", false
	}
	stability, number, dev := match[1], match[2], match[4]
	var builder strings.Builder
	builder.WriteString(core)
	switch stability {
	case "alpha", "a":
		builder.WriteString("a" + numberOrZero(number))
	case "beta", "b":
		builder.WriteString("b" + numberOrZero(number))
	case "rc":
		builder.WriteString("rc" + numberOrZero(number))
	case "patch", "pl", "p":
		builder.WriteString(".post" + numberOrZero(number))
	case "", "stable":
		if number != "" {
			return "", false
		}
	}
	if dev != "" {
		builder.WriteString(".dev0")
	}
	return builder.String(), true
}

// debianForm spells a recognised stability suffix so Debian ordering
// agrees with PEP 440: pre-releases sort below the release via "~",
// patch levels above it via "+".
func debianForm(core string, suffix string) string {
	qualifier := strings.TrimLeft(suffix, "-_.")
	lower := strings.ToLower(qualifier)
	switch {
	case lower == "" || lower == "stable":
		return core
	case strings.HasPrefix(lower, "p"):
		return core + "+" + qualifier
	default:
		return core + "~" + qualifier
	}
}

func numberOrZero(number string) string {
	if number == "" {
		return "0"
	}
	return number
}

// compareParsed orders two parsed versions. PEP 440 ordering is used when
// both sides have it, Debian ordering on both sides otherwise. Versions with identical
// normalized text compare equal even when neither comparator applies.
func compareParsed(a Version, b Version) (int, error) {
	if a.pepOK && b.pepOK {
		return sign(a.pep.Compare(b.pep)), nil
	}
	if a.debOK && b.debOK {
		return sign(a.deb.Compare(b.deb)), nil
	}
	if a.Normalized == b.Normalized {
		return 0, nil
	}
	return 0, shared.ParseError(fmt.Sprintf("versions %q and %q cannot be compared", a.Raw, b.Raw), nil)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// CompareVersions returns -1, 0, or 1 comparing two version strings.
func CompareVersions(a string, b string) (int, error) {
	return newVersionCache().compare(a, b)
}

// versionCache memoizes parsed versions so repeated ratchet comparisons
// against the same held value parse it once.
type versionCache struct {
	parsed map[string]Version
}

func newVersionCache() *versionCache {
	return &versionCache{parsed: map[string]Version{}}
}

// version returns a parsed version, caching the result.
func (c *versionCache) version(value string) (Version, error) {
	if parsed, ok := c.parsed[value]; ok {
		return parsed, nil
	}
	parsed, err := ParseVersion(value)
	if err != nil {
		return Version{}, err
	}
	c.parsed[value] = parsed
	return parsed, nil
}

func (c *versionCache) compare(a string, b string) (int, error) {
	v1, err := c.version(a)
	if err != nil {
		return 0, err
	}
	v2, err := c.version(b)
	if err != nil {
		return 0, err
	}
	return compareParsed(v1, v2)
}
