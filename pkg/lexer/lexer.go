package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type TokenType uint8

const (
	_ = TokenType(iota)
	// brackets and separators
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	LEFT_BRACKET
	RIGHT_BRACKET
	COMMA
	SEMICOLON
	DOT
	DOT_QUESTION
	COLON
	DOUBLE_COLON
	// sigils
	HASH
	DOLLAR
	AT
	QUESTION
	TILDE
	DOUBLE_TILDE
	PRINT
	RETURN
	LEFT_ARROW
	FAT_ARROW
	// operators
	EQUAL
	BANG_EQUAL
	BANG
	LESS
	LESS_EQUAL
	GREATER
	GREATER_EQUAL
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	AND
	OR
	// literals
	IDENTIFIER
	NUMBER
	STRING
	TEMPLATE
	// keywords
	YES
	NO
	NULL
	// meta
	EOF
)

var tokenNames = map[TokenType]string{
	LEFT_PAREN:    "(",
	RIGHT_PAREN:   ")",
	LEFT_BRACE:    "{",
	RIGHT_BRACE:   "}",
	LEFT_BRACKET:  "[",
	RIGHT_BRACKET: "]",
	COMMA:         ",",
	SEMICOLON:     ";",
	DOT:           ".",
	DOT_QUESTION:  ".?",
	COLON:         ":",
	DOUBLE_COLON:  "::",
	HASH:          "#",
	DOLLAR:        "$",
	AT:            "@",
	QUESTION:      "?",
	TILDE:         "~",
	DOUBLE_TILDE:  "~~",
	PRINT:         "<:",
	RETURN:        "<<",
	LEFT_ARROW:    "<-",
	FAT_ARROW:     "=>",
	EQUAL:         "=",
	BANG_EQUAL:    "!=",
	BANG:          "!",
	LESS:          "<",
	LESS_EQUAL:    "<=",
	GREATER:       ">",
	GREATER_EQUAL: ">=",
	PLUS:          "+",
	MINUS:         "-",
	STAR:          "*",
	SLASH:         "/",
	PERCENT:       "%",
	AND:           "&",
	OR:            "|",
	IDENTIFIER:    "identifier",
	NUMBER:        "number",
	STRING:        "string",
	TEMPLATE:      "template",
	YES:           "yes",
	NO:            "no",
	NULL:          "_",
	EOF:           "end of input",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", uint8(t))
}

var keywords = map[string]TokenType{
	"yes": YES,
	"no":  NO,
	"_":   NULL,
}

type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any // float64 for NUMBER, string for STRING, []TemplatePart for TEMPLATE
	Line    int
	Column  int

	// SpaceBefore is set when whitespace or a comment separates this token from
	// the previous one. Postfix `.`, `[` and `(` only bind when it is false.
	SpaceBefore bool
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%d %s %q", t.Line, t.Column, t.Type, t.Lexeme)
}

// TemplatePart is one segment of a template literal: either literal text or
// the source of an embedded `{expr}`.
type TemplatePart struct {
	Text   string
	Expr   bool
	Line   int
	Column int
}

type Error struct {
	Filename string
	Line     int
	Column   int
	Message  string
}

func (e *Error) Error() string { return e.String() }
func (e *Error) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Message)
}

type Lexer struct {
	Filename string
	Tokens   []Token
	Errors   []Error

	source   string
	current  int
	line     int
	column   int // in runes
	start    int
	startLn  int
	startCol int
	spaced   bool
	stop     bool
}

func New(filename string, source string) *Lexer {
	return &Lexer{
		Filename: filename,
		source:   source,
		Tokens:   []Token{},
		line:     1,
		column:   1,
		startLn:  1,
		startCol: 1,
		spaced:   true,
	}
}

// NewAt starts a lexer whose positions are offset, for sources embedded in
// another file such as template expressions.
func NewAt(filename string, source string, line, column int) *Lexer {
	l := New(filename, source)
	l.line, l.column = line, column
	l.startLn, l.startCol = line, column
	return l
}

func (l *Lexer) isAtEnd() bool { return l.current >= len(l.source) }

func (l *Lexer) advance() rune {
	r, w := utf8.DecodeRuneInString(l.source[l.current:])
	if r == utf8.RuneError && w <= 1 {
		l.error("invalid utf8 input at byte %d", l.current)
		l.stop = true
	}
	l.current += w
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func (l *Lexer) peek() rune {
	if l.stop || l.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.current:])
	return r
}

func (l *Lexer) peekNext() rune {
	if l.stop || l.isAtEnd() {
		return 0
	}
	_, w := utf8.DecodeRuneInString(l.source[l.current:])
	if l.current+w >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.current+w:])
	return r
}

func (l *Lexer) match(ch rune) bool {
	if l.peek() != ch {
		return false
	}
	l.advance()
	return true
}

// ScanTokens lexes the whole source. The token list always ends with EOF.
func (l *Lexer) ScanTokens() {
	for !l.stop && !l.isAtEnd() && len(l.Errors) <= 10 {
		l.start = l.current
		l.scanToken()
	}
	l.Tokens = append(l.Tokens, Token{Type: EOF, Line: l.line, Column: l.column, SpaceBefore: true})
}

func (l *Lexer) scanToken() {
	ch := l.advance()
	if l.stop {
		return
	}
	switch ch {
	case ' ', '\t', '\r', '\n':
		for isWhiteSpace(l.peek()) {
			l.advance()
		}
		l.skip()
	case '(':
		l.emit(LEFT_PAREN)
	case ')':
		l.emit(RIGHT_PAREN)
	case '{':
		l.emit(LEFT_BRACE)
	case '}':
		l.emit(RIGHT_BRACE)
	case '[':
		l.emit(LEFT_BRACKET)
	case ']':
		l.emit(RIGHT_BRACKET)
	case ',':
		l.emit(COMMA)
	case ';':
		l.emit(SEMICOLON)
	case '.':
		if l.match('?') {
			l.emit(DOT_QUESTION)
		} else {
			l.emit(DOT)
		}
	case ':':
		if l.match(':') {
			l.emit(DOUBLE_COLON)
		} else {
			l.emit(COLON)
		}
	case '#':
		l.emit(HASH)
	case '$':
		l.emit(DOLLAR)
	case '@':
		l.emit(AT)
	case '?':
		l.emit(QUESTION)
	case '~':
		if l.match('~') {
			l.emit(DOUBLE_TILDE)
		} else {
			l.emit(TILDE)
		}
	case '<':
		switch {
		case l.match(':'):
			l.emit(PRINT)
		case l.match('<'):
			l.emit(RETURN)
		case l.match('-'):
			l.emit(LEFT_ARROW)
		case l.match('='):
			l.emit(LESS_EQUAL)
		default:
			l.emit(LESS)
		}
	case '>':
		if l.match('=') {
			l.emit(GREATER_EQUAL)
		} else {
			l.emit(GREATER)
		}
	case '=':
		if l.match('>') {
			l.emit(FAT_ARROW)
		} else {
			l.match('=')
			l.emit(EQUAL)
		}
	case '!':
		if l.match('=') {
			l.emit(BANG_EQUAL)
		} else {
			l.emit(BANG)
		}
	case '+':
		l.emit(PLUS)
	case '-':
		l.emit(MINUS)
	case '*':
		l.emit(STAR)
	case '%':
		l.emit(PERCENT)
	case '&':
		l.match('&')
		l.emit(AND)
	case '|':
		l.match('|')
		l.emit(OR)
	case '/':
		switch {
		case l.match('/'):
			for l.peek() != '\n' && !l.stop && !l.isAtEnd() {
				l.advance()
			}
			l.skip()
		case l.match('*'):
			l.lexBlockComment()
		default:
			l.emit(SLASH)
		}
	case '"':
		l.lexString()
	case '`':
		l.lexTemplate()
	default:
		if isDigit(ch) {
			l.lexNumber()
		} else if isAlpha(ch) {
			l.lexIdentifier()
		} else {
			l.error("unexpected character %U %q", ch, ch)
		}
	}
}

func (l *Lexer) lexBlockComment() {
	for !l.stop && !l.isAtEnd() {
		if l.peek() == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()
			l.skip()
			return
		}
		l.advance()
	}
	l.error("unterminated comment")
}

func (l *Lexer) lexIdentifier() {
	for isIdentifier(l.peek()) {
		l.advance()
	}
	word := l.source[l.start:l.current]
	if typ, ok := keywords[word]; ok {
		l.emit(typ)
	} else {
		l.emitLiteral(IDENTIFIER, word)
	}
}

func (l *Lexer) lexNumber() {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	num, err := strconv.ParseFloat(l.source[l.start:l.current], 64)
	if err != nil {
		l.error("%s", err.Error())
	}
	l.emitLiteral(NUMBER, num)
}

func (l *Lexer) lexString() {
	var buf strings.Builder
	esc := false
	for !l.isAtEnd() {
		ch := l.advance()
		if l.stop {
			return
		}
		if esc {
			switch ch {
			case 'n':
				buf.WriteRune('\n')
			case 't':
				buf.WriteRune('\t')
			case 'r':
				buf.WriteRune('\r')
			case '"', '\\':
				buf.WriteRune(ch)
			default:
				l.error("invalid escape in string literal: %q", "\\"+string(ch))
			}
			esc = false
			continue
		}
		switch ch {
		case '\\':
			esc = true
		case '"':
			l.emitLiteral(STRING, buf.String())
			return
		default:
			buf.WriteRune(ch)
		}
	}
	l.error("unterminated string")
}

func (l *Lexer) lexTemplate() {
	var (
		parts []TemplatePart
		buf   strings.Builder
	)
	flush := func() {
		if buf.Len() > 0 {
			parts = append(parts, TemplatePart{Text: buf.String()})
			buf.Reset()
		}
	}
	for !l.isAtEnd() {
		ch := l.advance()
		if l.stop {
			return
		}
		switch ch {
		case '\\':
			if l.isAtEnd() {
				l.error("unterminated template")
				return
			}
			switch esc := l.advance(); esc {
			case 'n':
				buf.WriteRune('\n')
			case 't':
				buf.WriteRune('\t')
			default:
				buf.WriteRune(esc)
			}
		case '`':
			flush()
			l.emitLiteral(TEMPLATE, parts)
			return
		case '{':
			flush()
			line, col := l.line, l.column
			src, ok := l.templateExpression()
			if !ok {
				return
			}
			parts = append(parts, TemplatePart{Text: src, Expr: true, Line: line, Column: col})
		default:
			buf.WriteRune(ch)
		}
	}
	l.error("unterminated template")
}

// templateExpression consumes up to the `}` closing an embedded expression,
// skipping nested braces and string literals.
func (l *Lexer) templateExpression() (string, bool) {
	begin := l.current
	depth := 0
	for !l.isAtEnd() {
		ch := l.peek()
		switch ch {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				src := l.source[begin:l.current]
				l.advance()
				return src, true
			}
			depth--
		case '"':
			l.advance()
			for !l.isAtEnd() && l.peek() != '"' {
				if l.advance() == '\\' && !l.isAtEnd() {
					l.advance()
				}
			}
			if l.isAtEnd() {
				continue
			}
		}
		if l.stop {
			return "", false
		}
		l.advance()
	}
	l.error("unterminated template expression")
	return "", false
}

// skip drops the current lexeme and marks the next token as space-separated.
func (l *Lexer) skip() {
	l.start = l.current
	l.startLn = l.line
	l.startCol = l.column
	l.spaced = true
}

func (l *Lexer) emit(typ TokenType) { l.emitLiteral(typ, nil) }
func (l *Lexer) emitLiteral(typ TokenType, lit any) {
	l.Tokens = append(l.Tokens, Token{
		Type:        typ,
		Lexeme:      l.source[l.start:l.current],
		Literal:     lit,
		Line:        l.startLn,
		Column:      l.startCol,
		SpaceBefore: l.spaced,
	})
	l.start = l.current
	l.startLn = l.line
	l.startCol = l.column
	l.spaced = false
}

func (l *Lexer) error(s string, args ...any) {
	l.Errors = append(l.Errors, Error{
		Filename: l.Filename,
		Line:     l.line,
		Column:   l.column,
		Message:  fmt.Sprintf(s, args...),
	})
}

func isWhiteSpace(ch rune) bool { return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' }
func isIdentifier(ch rune) bool { return isAlpha(ch) || isDigit(ch) }
func isAlpha(ch rune) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || (ch > utf8.RuneSelf && unicode.IsLetter(ch))
}
func isDigit(ch rune) bool { return '0' <= ch && ch <= '9' }
