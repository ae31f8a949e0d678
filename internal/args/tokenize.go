package args

import (
	"regexp"
	"strconv"
	"strings"
)

// groupRegex matches a single innermost group: an opening delimiter followed
// by text containing no group delimiters at all, then the closing one.
var groupRegex = regexp.MustCompile(`\([^(){}\[\]]*\)|\{[^(){}\[\]]*\}|\[[^(){}\[\]]*\]`)

// placeholders records the original text of every hidden span. Token n refers
// to spans[n], and a span may itself contain tokens of lower index.
type placeholders struct {
	sep   string
	token *regexp.Regexp
	spans []string
}

// newPlaceholders picks a run of NUL bytes that does not occur in input as
// the token delimiter, so hidden spans never collide with source text.
func newPlaceholders(input string) *placeholders {
	sep := "\x00"
	for strings.Contains(input, sep) {
		sep += "\x00"
	}
	return &placeholders{
		sep:   sep,
		token: regexp.MustCompile(sep + `(\d+)` + sep),
	}
}

func (p *placeholders) hide(span string) string {
	p.spans = append(p.spans, span)
	return p.sep + strconv.Itoa(len(p.spans)-1) + p.sep
}

// restore expands tokens below limit. Span n is restored with limit n, so
// every expansion step strictly lowers the limit and the recursion ends.
func (p *placeholders) restore(s string, limit int) string {
	return p.token.ReplaceAllStringFunc(s, func(token string) string {
		idx, err := strconv.Atoi(strings.Trim(token, "\x00"))
		if err != nil || idx < 0 || idx >= limit {
			return token
		}
		return p.restore(p.spans[idx], idx)
	})
}
// hideQuoted replaces every terminated '...' or "..." literal with a token. A
// backslash escapes the following byte. An unterminated quote is left as is.
func (p *placeholders) hideQuoted(input string) string {
	var sb strings.Builder
	for i := 0; i < len(input); i++ {
		ch := input[i]
		if ch != '\'' && ch != '"' {
			sb.WriteByte(ch)
			continue
		}
		end := -1
		for j := i + 1; j < len(input); j++ {
			if input[j] == '\\' {
				j++
				continue
			}
			if input[j] == ch {
				end = j
				break
			}
		}
		if end < 0 {
			sb.WriteString(input[i:])
			break
		}
		sb.WriteString(p.hide(input[i : end+1]))
		i = end
	}
	return sb.String()
}

// Tokenize splits the raw argument text of a directive call on top-level
// commas and trims every piece. Commas inside quoted strings and inside
// (), {} or [] groups do not split.
//
// An empty argument list yields a single empty string; callers treat a lone
// blank element as "no arguments".
func Tokenize(input string) []string {
	p := newPlaceholders(input)
	input = p.hideQuoted(input)

	for groupRegex.MatchString(input) {
		input = groupRegex.ReplaceAllStringFunc(input, p.hide)
	}

	pieces := strings.Split(input, ",")
	for i, piece := range pieces {
		pieces[i] = p.restore(strings.TrimSpace(piece), len(p.spans))
	}
	return pieces
}
