package lexer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scan(t *testing.T, src string) ([]Token, string) {
	t.Helper()
	var diag bytes.Buffer
	l := New(src)
	l.SetDiag(&diag)
	return l.Tokenize(), diag.String()
}

func types(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func TestTokenizeStatement(t *testing.T) {
	tokens, diag := scan(t, `PLEASE SET x TO 2 + 3 * 4`)
	assert.Empty(t, diag)
	assert.Equal(t, []TokenType{
		Please, Set, Ident, To, Integer, Plus, Integer, Multiply, Integer, EOF,
	}, types(tokens))
	assert.Equal(t, "x", tokens[2].Lit)
	assert.Equal(t, "2", tokens[4].Lit)
}

func TestKeywordTable(t *testing.T) {
	for lit, want := range keywords {
		tokens, diag := scan(t, lit)
		require.Len(t, tokens, 2, lit)
		assert.Equal(t, want, tokens[0].Type, lit)
		assert.Equal(t, lit, tokens[0].Lit, lit)
		assert.Empty(t, diag)
	}
}

func TestKeywordsAreCaseSensitive(t *testing.T) {
	tokens, _ := scan(t, "please")
	assert.Equal(t, Ident, tokens[0].Type)
}

func TestBangStartsIdentifier(t *testing.T) {
	tokens, _ := scan(t, "!GLORY")
	assert.Equal(t, Ident, tokens[0].Type)
	assert.Equal(t, "!GLORY", tokens[0].Lit)

	tokens, _ = scan(t, "!I_LOVE_GOVERNMENT")
	assert.Equal(t, Header, tokens[0].Type)
}

func TestPositions(t *testing.T) {
	tokens, _ := scan(t, "PRAISE_LEADER x\nPRAISE_LEADER y")
	require.Equal(t, []TokenType{
		PraiseLeader, Ident, Newline, PraiseLeader, Ident, EOF,
	}, types(tokens))

	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 1, tokens[0].Column)
	assert.Equal(t, 1, tokens[1].Line)
	assert.Equal(t, 15, tokens[1].Column)
	assert.Equal(t, 1, tokens[2].Line) // the newline itself
	assert.Equal(t, 2, tokens[3].Line)
	assert.Equal(t, 1, tokens[3].Column)
	assert.Equal(t, 2, tokens[4].Line)
	assert.Equal(t, 15, tokens[4].Column)
}

func TestStringLiteral(t *testing.T) {
	tokens, diag := scan(t, `PRAISE_LEADER "Hello, Citizen"`)
	assert.Empty(t, diag)
	require.Equal(t, []TokenType{PraiseLeader, String, EOF}, types(tokens))
	assert.Equal(t, "Hello, Citizen", tokens[1].Lit)
}

func TestStringWithEmbeddedNewline(t *testing.T) {
	tokens, _ := scan(t, "\"two\nlines\" x")
	require.Equal(t, []TokenType{String, Ident, EOF}, types(tokens))
	assert.Equal(t, "two\nlines", tokens[0].Lit)
	assert.Equal(t, 2, tokens[1].Line)
}

func TestStringKeepsBackslashVerbatim(t *testing.T) {
	tokens, _ := scan(t, `"a\nb"`)
	assert.Equal(t, `a\nb`, tokens[0].Lit)
}

func TestUnterminatedString(t *testing.T) {
	tokens, diag := scan(t, `PRAISE_LEADER "oops`)
	assert.Contains(t, diag, "Unterminated string at line 1")
	require.NotEmpty(t, tokens)
	assert.Equal(t, EOF, tokens[len(tokens)-1].Type)
}

func TestLineComment(t *testing.T) {
	tokens, diag := scan(t, "PRAISE_LEADER 1 // citizens need not read this\nPRAISE_LEADER 2")
	assert.Empty(t, diag)
	assert.Equal(t, []TokenType{
		PraiseLeader, Integer, Newline, PraiseLeader, Integer, EOF,
	}, types(tokens))
}

func TestCommentKeywordsAreTokens(t *testing.T) {
	tokens, _ := scan(t, "OBEY_PARTY_LINE this is fine\nDENOUNCE_IMPERIALIST_ERRORS")
	assert.Equal(t, ObeyPartyLine, tokens[0].Type)
	last := tokens[len(tokens)-2]
	assert.Equal(t, DenounceImperialistErrors, last.Type)
}

func TestPunctuationAndOperators(t *testing.T) {
	tokens, diag := scan(t, "( ) [ ] + - * /")
	assert.Empty(t, diag)
	assert.Equal(t, []TokenType{
		LParen, RParen, LBracket, RBracket, Plus, Minus, Multiply, Divide, EOF,
	}, types(tokens))
}

func TestUnexpectedCharacter(t *testing.T) {
	tokens, diag := scan(t, "x @ y")
	assert.Contains(t, diag, "Unexpected character")
	assert.Contains(t, diag, "at line 1")
	assert.Equal(t, []TokenType{Ident, Ident, EOF}, types(tokens))
}

func TestMaximalDigitRun(t *testing.T) {
	tokens, _ := scan(t, "1234567 89")
	assert.Equal(t, "1234567", tokens[0].Lit)
	assert.Equal(t, "89", tokens[1].Lit)
}

func TestExactlyOneEOF(t *testing.T) {
	for _, src := range []string{
		"",
		"\n\n\n",
		"PRAISE_LEADER 1",
		`"unterminated`,
		"@@@@",
		"   // just a comment",
	} {
		tokens, _ := scan(t, src)
		count := 0
		for _, tok := range tokens {
			if tok.Type == EOF {
				count++
			}
		}
		assert.Equal(t, 1, count, "source %q", src)
		assert.Equal(t, EOF, tokens[len(tokens)-1].Type, "source %q", src)
	}
}

func TestWhitespaceVariants(t *testing.T) {
	tokens, diag := scan(t, "PRAISE_LEADER\t1\r\nPRAISE_LEADER 2")
	assert.Empty(t, diag)
	assert.Equal(t, []TokenType{
		PraiseLeader, Integer, Newline, PraiseLeader, Integer, EOF,
	}, types(tokens))
}
