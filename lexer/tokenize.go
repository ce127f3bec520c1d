package lexer

import (
	"github.com/freeeve/sqltoken/sqlerr"
	"github.com/freeeve/sqltoken/token"
)

// Lexemes tokenizes the full input and returns the resulting lexeme
// sequence, or a LexError at the position of the first ILLEGAL token. This
// is the strict, stable snapshot form promised at the library boundary:
// the same input always yields the same lexeme sequence with the same
// attached comments.
//
// Unlike Next/Peek, Lexemes performs the full leading/trailing comment
// attachment contract: any comments left pending after the last
// non-comment lexeme are attached as TrailingComments on that lexeme
// instead of being dropped.
func Lexemes(input string) ([]token.Item, error) {
	l := New(input)
	var out []token.Item
	var trailingPending []string

	for {
		raw := l.scan()
		if raw.Type == token.ILLEGAL {
			return nil, sqlerr.NewLexError(raw.Pos.Offset, illegalReason(raw.Value))
		}
		if raw.Type == token.COMMENT {
			if text := commentText(raw.Value); text != "" {
				trailingPending = append(trailingPending, text)
			}
			continue
		}
		if raw.Type == token.EOF && len(trailingPending) > 0 && len(out) > 0 {
			out[len(out)-1].TrailingComments = trailingPending
			trailingPending = nil
		}
		if len(trailingPending) > 0 {
			raw.LeadingComments = trailingPending
			trailingPending = nil
		}
		out = append(out, raw)
		if raw.Type == token.EOF {
			break
		}
	}

	if len(trailingPending) > 0 && len(out) > 0 {
		out[len(out)-1].TrailingComments = trailingPending
	}

	return out, nil
}

// illegalReason produces a short human-readable reason for an ILLEGAL
// lexeme, distinguishing the handful of cases spec.md names explicitly.
func illegalReason(value string) string {
	switch {
	case len(value) == 0:
		return "unrecognized character"
	case value[0] == '\'' || value[0] == '"' || value[0] == '`':
		return "unterminated string or quoted identifier"
	case len(value) >= 2 && value[0] == '/' && value[1] == '*':
		return "unterminated block comment"
	case isDigit(value[0]):
		return "invalid numeric literal"
	default:
		return "unrecognized character: " + value
	}
}
