package validation

import (
	"html"
	"regexp"
	"strings"
)

// xssPatterns are matched case-insensitively against free text.
var xssPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script[^>]*>.*?</script\s*>`),
	regexp.MustCompile(`(?i)</?\s*script[^>]*>?`),
	regexp.MustCompile(`(?i)javascript\s*:`),
	regexp.MustCompile(`(?i)vbscript\s*:`),
	regexp.MustCompile(`(?i)\bon[a-z]+\s*=`),
	regexp.MustCompile(`(?i)\beval\s*\(`),
	regexp.MustCompile(`(?i)\bexpression\s*\(`),
	regexp.MustCompile(`(?i)document\s*\.\s*(cookie|write)`),
	regexp.MustCompile(`(?i)window\s*\.\s*location`),
	regexp.MustCompile(`(?i)<\s*/?\s*(iframe|object|embed|applet|meta|link|style|svg)\b[^>]*>?`),
}

var sqlPatterns = []*regexp.Regexp{
	// quote sequences
	regexp.MustCompile(`(?i)'\s*(or|and)\b`),
	regexp.MustCompile(`'\s*(;|--|\))`),
	regexp.MustCompile(`''`),
	// statement terminator followed by another statement
	regexp.MustCompile(`(?i);\s*(select|insert|update|delete|drop|union|alter|create|truncate|exec|execute|declare)\b`),
	// comment markers
	regexp.MustCompile(`--|/\*|\*/`),
	// keyword tokens
	sqlKeywordRe,
}

var sqlKeywordRe = regexp.MustCompile(`(?i)\b(select|insert|update|delete|drop|union|alter|create|truncate|exec|execute|declare)\b`)

// sqlStripPatterns are removed by SanitizeInput. Quotes and semicolons are
// not stripped; quotes are entity-encoded instead.
var sqlStripPatterns = []*regexp.Regexp{
	regexp.MustCompile(`--|/\*|\*/`),
	sqlKeywordRe,
}

// ContainsXSS reports whether s carries a markup or script injection signature.
func ContainsXSS(s string) bool {
	return matchAny(xssPatterns, s)
}

// ContainsSQLInjection reports whether s carries SQL control syntax.
func ContainsSQLInjection(s string) bool {
	return matchAny(sqlPatterns, s)
}

// ContainsThreat is ContainsXSS || ContainsSQLInjection.
func ContainsThreat(s string) bool {
	return ContainsXSS(s) || ContainsSQLInjection(s)
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	if s == "" {
		return false
	}
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

var entityEncoder = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// SanitizeInput decodes entities, strips script and SQL fragments until
// nothing more matches, trims, then entity-encodes & < > " ' and /.
// Applying it twice yields the same string as applying it once.
func SanitizeInput(s string) string {
	s = html.UnescapeString(s)
	for {
		stripped := strip(s)
		if stripped == s {
			break
		}
		s = stripped
	}
	return entityEncoder.Replace(strings.TrimSpace(s))
}

func strip(s string) string {
	for _, re := range xssPatterns {
		s = re.ReplaceAllString(s, "")
	}
	for _, re := range sqlStripPatterns {
		s = re.ReplaceAllString(s, "")
	}
	return s
}
