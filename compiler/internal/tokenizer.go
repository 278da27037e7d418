package internal

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/xiaobogaga/sol25/util"
)

// A simple Tokenizer for SOL25.

// SOL25 language has those elements:
// * KeyWord: class. The other reserved words (self, super, nil, true, false) are lexed as identifiers.
// * Symbol: {, }, [, ], (, ), |, ., :, :=.
// * Constant: integer ([+-]?(0|[1-9][0-9]*)), string ('xxx' with \\, \n, \' escapes).
// * Identifier: id, id: (selector part), :id (block parameter), ClassId.
// * Comment: "xxx", may span lines. The first one is the program description.

type TokenType int

const (
	ClassTP              TokenType = iota // class
	ClassIdTP                             // Main
	IdentifierTP                          // x
	SelectorIdTP                          // at:
	ParamIdTP                             // :x
	IntegerTP                             // -12
	StringTP                              // 'xxx'
	AssignTP                              // :=
	ColonTP                               // :
	LeftBraceTP                           // {
	RightBraceTP                          // }
	LeftSquareBracketTP                   // [
	RightSquareBracketTP                  // ]
	LeftParenthesesTP                     // (
	RightParenthesesTP                    // )
	PipeTP                                // |
	DotTP                                 // .
)

var tokenTypeNames = map[TokenType]string{
	ClassTP:              "class",
	ClassIdTP:            "class name",
	IdentifierTP:         "identifier",
	SelectorIdTP:         "selector",
	ParamIdTP:            "parameter",
	IntegerTP:            "integer",
	StringTP:             "string",
	AssignTP:             ":=",
	ColonTP:              ":",
	LeftBraceTP:          "{",
	RightBraceTP:         "}",
	LeftSquareBracketTP:  "[",
	RightSquareBracketTP: "]",
	LeftParenthesesTP:    "(",
	RightParenthesesTP:   ")",
	PipeTP:               "|",
	DotTP:                ".",
}

func (tp TokenType) String() string {
	return tokenTypeNames[tp]
}

// simpleSymbolTokenTPMap is the mapping from single character symbols to the corresponding TokenTP.
// ':' is not here, it can start a parameter or an assignment.
var simpleSymbolTokenTPMap = map[byte]TokenType{
	'{': LeftBraceTP,
	'}': RightBraceTP,
	'[': LeftSquareBracketTP,
	']': RightSquareBracketTP,
	'(': LeftParenthesesTP,
	')': RightParenthesesTP,
	'|': PipeTP,
	'.': DotTP,
}

type Token struct {
	content  string
	line     int
	startPos int
	endPos   int
	tp       TokenType
}

func (t *Token) Content() string {
	return t.content
}

func (t *Token) Line() int {
	return t.line
}

func (t *Token) Type() TokenType {
	return t.tp
}

type Tokenizer struct {
	currentPos  int
	currentLine int
	input       []byte
	tokens      []*Token
	description string
	hasComment  bool
}

// Tokenize accepts a source `rd` and tokenizes its content according to SOL25 rules.
// This method is the main method of this tokenizer.
func (tokenizer *Tokenizer) Tokenize(rd io.Reader) (tokens []*Token, err error) {
	input, err := ioutil.ReadAll(rd)
	if err != nil {
		return nil, newError(InputError, 0, "cannot read source: %v", err)
	}
	tokenizer.input, tokenizer.currentPos, tokenizer.currentLine = input, 0, 1
	for {
		token, err := tokenizer.getNextToken()
		if err != nil {
			return nil, err
		}
		if token == nil {
			return tokenizer.tokens, nil
		}
		tokenizer.tokens = append(tokenizer.tokens, token)
	}
}

// Description returns the content of the first comment in the source, if any.
func (tokenizer *Tokenizer) Description() (string, bool) {
	return tokenizer.description, tokenizer.hasComment
}

// getNextToken returns the next token, or nil when the input is exhausted.
func (tokenizer *Tokenizer) getNextToken() (*Token, error) {
	err := tokenizer.skipSpaceAndComments()
	if err != nil {
		return nil, err
	}
	if !tokenizer.hasRemainCharacters() {
		return nil, nil
	}
	c := tokenizer.input[tokenizer.currentPos]
	switch {
	case c == ':':
		return tokenizer.tokenColon()
	case c == '\'':
		return tokenizer.tokenString()
	case c == '+' || c == '-':
		return tokenizer.tokenSignedNumber()
	case util.IsNumber(c):
		return tokenizer.tokenNumber(tokenizer.currentPos)
	case util.IsUpperLetter(c):
		return tokenizer.tokenClassId()
	case util.IsIdentifierStart(c):
		return tokenizer.toKeywordOrIdentifier()
	}
	if tp, ok := simpleSymbolTokenTPMap[c]; ok {
		return tokenizer.tokenSimpleSymbol(tp), nil
	}
	return nil, tokenizer.makeError("unexpected character %q", c)
}

func (tokenizer *Tokenizer) hasRemainCharacters() bool {
	return tokenizer.currentPos < len(tokenizer.input)
}

func (tokenizer *Tokenizer) peek(offset int) (byte, bool) {
	pos := tokenizer.currentPos + offset
	if pos >= len(tokenizer.input) {
		return 0, false
	}
	return tokenizer.input[pos], true
}

// skipSpaceAndComments steps forward through the input, skipping white space and "comments",
// and remembers the first comment as the program description.
func (tokenizer *Tokenizer) skipSpaceAndComments() error {
	for tokenizer.hasRemainCharacters() {
		c := tokenizer.input[tokenizer.currentPos]
		if c == '\n' {
			tokenizer.currentLine++
		}
		if util.IsSpace(c) {
			tokenizer.currentPos++
			continue
		}
		if c != '"' {
			return nil
		}
		err := tokenizer.skipComment()
		if err != nil {
			return err
		}
	}
	return nil
}

func (tokenizer *Tokenizer) skipComment() error {
	startLine := tokenizer.currentLine
	end := bytes.IndexByte(tokenizer.input[tokenizer.currentPos+1:], '"')
	if end < 0 {
		return newError(LexicalError, startLine, "unterminated comment")
	}
	content := tokenizer.input[tokenizer.currentPos+1 : tokenizer.currentPos+1+end]
	if !tokenizer.hasComment {
		tokenizer.description, tokenizer.hasComment = string(content), true
	}
	tokenizer.currentLine += bytes.Count(content, []byte{'\n'})
	tokenizer.currentPos += end + 2
	return nil
}

func (tokenizer *Tokenizer) tokenSimpleSymbol(tp TokenType) *Token {
	token := &Token{
		content:  string(tokenizer.input[tokenizer.currentPos]),
		line:     tokenizer.currentLine,
		tp:       tp,
		startPos: tokenizer.currentPos,
		endPos:   tokenizer.currentPos + 1,
	}
	tokenizer.currentPos++
	return token
}

// tokenColon handles ':=', ':param' and a bare ':'.
func (tokenizer *Tokenizer) tokenColon() (*Token, error) {
	startPos := tokenizer.currentPos
	next, ok := tokenizer.peek(1)
	if ok && next == '=' {
		tokenizer.currentPos += 2
		return tokenizer.makeToken(AssignTP, startPos), nil
	}
	if ok && util.IsIdentifierStart(next) {
		tokenizer.currentPos++
		tokenizer.skipIdentifierCharacters()
		return tokenizer.makeToken(ParamIdTP, startPos), nil
	}
	tokenizer.currentPos++
	return tokenizer.makeToken(ColonTP, startPos), nil
}

func (tokenizer *Tokenizer) tokenString() (*Token, error) {
	// Looking forward through input to find a closing quote.
	startPos := tokenizer.currentPos
	tokenizer.currentPos++
	for tokenizer.hasRemainCharacters() {
		c := tokenizer.input[tokenizer.currentPos]
		switch {
		case c == '\'':
			tokenizer.currentPos++
			return tokenizer.makeToken(StringTP, startPos), nil
		case c == '\\':
			escaped, ok := tokenizer.peek(1)
			if !ok || (escaped != '\\' && escaped != 'n' && escaped != '\'') {
				return nil, tokenizer.makeError("invalid escape sequence in string literal")
			}
			tokenizer.currentPos += 2
		case util.IsControl(c):
			return nil, tokenizer.makeError("control character %q in string literal", c)
		default:
			tokenizer.currentPos++
		}
	}
	return nil, tokenizer.makeError("unterminated string literal")
}

func (tokenizer *Tokenizer) tokenSignedNumber() (*Token, error) {
	next, ok := tokenizer.peek(1)
	if !ok || !util.IsNumber(next) {
		return nil, tokenizer.makeError("unexpected character %q", tokenizer.input[tokenizer.currentPos])
	}
	startPos := tokenizer.currentPos
	tokenizer.currentPos++
	return tokenizer.tokenNumber(startPos)
}

// tokenNumber reads digits starting at the current position. A leading zero ends the number, so
// "012" becomes two tokens and is rejected by the parser.
func (tokenizer *Tokenizer) tokenNumber(startPos int) (*Token, error) {
	if !util.IsNumberAndLargerThanZero(tokenizer.input[tokenizer.currentPos]) {
		tokenizer.currentPos++
		return tokenizer.makeToken(IntegerTP, startPos), nil
	}
	for tokenizer.hasRemainCharacters() && util.IsNumber(tokenizer.input[tokenizer.currentPos]) {
		tokenizer.currentPos++
	}
	return tokenizer.makeToken(IntegerTP, startPos), nil
}

func (tokenizer *Tokenizer) tokenClassId() (*Token, error) {
	startPos := tokenizer.currentPos
	for tokenizer.hasRemainCharacters() && util.IsLetterOrNumber(tokenizer.input[tokenizer.currentPos]) {
		tokenizer.currentPos++
	}
	return tokenizer.makeToken(ClassIdTP, startPos), nil
}

// toKeywordOrIdentifier reads an identifier. If a colon follows immediately (and it's not ':='),
// the colon belongs to the token and makes it a selector part.
func (tokenizer *Tokenizer) toKeywordOrIdentifier() (*Token, error) {
	startPos := tokenizer.currentPos
	tokenizer.skipIdentifierCharacters()
	c, ok := tokenizer.peek(0)
	if ok && c == ':' {
		next, hasNext := tokenizer.peek(1)
		if !hasNext || next != '=' {
			tokenizer.currentPos++
			return tokenizer.makeToken(SelectorIdTP, startPos), nil
		}
	}
	if string(tokenizer.input[startPos:tokenizer.currentPos]) == "class" {
		return tokenizer.makeToken(ClassTP, startPos), nil
	}
	return tokenizer.makeToken(IdentifierTP, startPos), nil
}

func (tokenizer *Tokenizer) skipIdentifierCharacters() {
	for tokenizer.hasRemainCharacters() && util.IsLetterOrUnderscoreOrNumber(tokenizer.input[tokenizer.currentPos]) {
		tokenizer.currentPos++
	}
}

func (tokenizer *Tokenizer) makeToken(tp TokenType, startPos int) *Token {
	return &Token{
		content:  string(tokenizer.input[startPos:tokenizer.currentPos]),
		line:     tokenizer.currentLine,
		startPos: startPos,
		endPos:   tokenizer.currentPos,
		tp:       tp,
	}
}

func (tokenizer *Tokenizer) makeError(format string, msg ...interface{}) error {
	return newError(LexicalError, tokenizer.currentLine, format, msg...)
}

func (tokenizer *Tokenizer) Reset() {
	tokenizer.currentPos, tokenizer.currentLine = 0, 0
	tokenizer.input, tokenizer.tokens = nil, nil
	tokenizer.description, tokenizer.hasComment = "", false
}
