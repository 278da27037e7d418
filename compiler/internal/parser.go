package internal

import (
	"bytes"
	"io"
	"strings"
)

type Parser struct {
	currentTokenPos int
	currentTokens   []*Token
}

// Parse tokenizes and parses a whole SOL25 program from rd.
func (parser *Parser) Parse(rd io.Reader) (*ProgramNode, error) {
	parser.reset()
	tokenizer := &Tokenizer{}
	tokens, err := tokenizer.Tokenize(rd)
	if err != nil {
		return nil, err
	}
	parser.currentTokens = tokens
	program, err := parser.ParseProgram()
	if err != nil {
		return nil, err
	}
	program.Description, _ = tokenizer.Description()
	return program, nil
}

func (parser *Parser) ParseString(source string) (*ProgramNode, error) {
	return parser.Parse(bytes.NewReader([]byte(source)))
}

func (parser *Parser) reset() {
	parser.currentTokenPos, parser.currentTokens = 0, nil
}

// program := class_def*
func (parser *Parser) ParseProgram() (*ProgramNode, error) {
	program := &ProgramNode{}
	for parser.hasRemainTokens() {
		classNode, err := parser.ParseClassDeclaration()
		if err != nil {
			return nil, err
		}
		program.Classes = append(program.Classes, classNode)
	}
	return program, nil
}

// class ClassId : ClassId {
//    methods
// }
func (parser *Parser) ParseClassDeclaration() (*ClassNode, error) {
	classToken, match := parser.expectToken(ClassTP, true)
	if !match {
		return nil, parser.makeError(true, ClassTP)
	}
	classNameToken, match := parser.expectToken(ClassIdTP, true)
	if !match {
		return nil, parser.makeError(true, ClassIdTP)
	}
	if !parser.expectTokens(ColonTP) {
		return nil, parser.makeError(true, ColonTP)
	}
	parentToken, match := parser.expectToken(ClassIdTP, true)
	if !match {
		return nil, parser.makeError(true, ClassIdTP)
	}
	methods, err := parser.ParseClassBody()
	if err != nil {
		return nil, err
	}
	return &ClassNode{
		Name:    classNameToken.content,
		Parent:  parentToken.content,
		Methods: methods,
		Line:    classToken.line,
	}, nil
}

// ClassBody contains method definitions only.
func (parser *Parser) ParseClassBody() (methods []*MethodNode, err error) {
	_, match := parser.expectToken(LeftBraceTP, true)
	if !match {
		return nil, parser.makeError(true, LeftBraceTP)
	}
	for {
		token, err := parser.getCurrentToken()
		if err != nil {
			return nil, err
		}
		if token.tp == RightBraceTP {
			parser.stepForward()
			return methods, nil
		}
		method, err := parser.ParseMethodDeclaration()
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}
}

// method := (id | selectorId+) block
func (parser *Parser) ParseMethodDeclaration() (*MethodNode, error) {
	token, err := parser.getCurrentToken()
	if err != nil {
		return nil, err
	}
	method := &MethodNode{Line: token.line}
	switch token.tp {
	case IdentifierTP:
		parser.stepForward()
		method.SelectorParts = []string{token.content}
	case SelectorIdTP:
		for {
			selectorToken, match := parser.expectToken(SelectorIdTP, true)
			if !match {
				break
			}
			method.SelectorParts = append(method.SelectorParts, selectorToken.content)
		}
	default:
		return nil, parser.makeError(true, IdentifierTP, SelectorIdTP, RightBraceTP)
	}
	method.Block, err = parser.ParseBlock()
	if err != nil {
		return nil, err
	}
	return method, nil
}

// [ :param* | (id := expr .)* ]
func (parser *Parser) ParseBlock() (*BlockNode, error) {
	leftToken, match := parser.expectToken(LeftSquareBracketTP, true)
	if !match {
		return nil, parser.makeError(true, LeftSquareBracketTP)
	}
	block := &BlockNode{Line: leftToken.line}
	for {
		paramToken, match := parser.expectToken(ParamIdTP, true)
		if !match {
			break
		}
		block.Params = append(block.Params, strings.TrimPrefix(paramToken.content, ":"))
	}
	if !parser.expectTokens(PipeTP) {
		return nil, parser.makeError(true, ParamIdTP, PipeTP)
	}
	statements, err := parser.parseStatements()
	if err != nil {
		return nil, err
	}
	block.Statements = statements
	return block, nil
}

func (parser *Parser) parseStatements() (stms []*StatementNode, err error) {
	for {
		token, err := parser.getCurrentToken()
		if err != nil {
			return nil, err
		}
		if token.tp == RightSquareBracketTP {
			parser.stepForward()
			return stms, nil
		}
		statement, err := parser.parseStatement()
		if err != nil {
			return nil, err
		}
		stms = append(stms, statement)
	}
}

// id := expr .
func (parser *Parser) parseStatement() (*StatementNode, error) {
	varToken, match := parser.expectToken(IdentifierTP, true)
	if !match {
		return nil, parser.makeError(true, IdentifierTP, RightSquareBracketTP)
	}
	if !parser.expectTokens(AssignTP) {
		return nil, parser.makeError(true, AssignTP)
	}
	expr, err := parser.parseExpression()
	if err != nil {
		return nil, err
	}
	if !parser.expectTokens(DotTP) {
		return nil, parser.makeError(true, DotTP)
	}
	return &StatementNode{VarName: varToken.content, Expr: expr, Line: varToken.line}, nil
}

// expr := expr_base (id | selectorId expr_base)*
func (parser *Parser) parseExpression() (*ExprNode, error) {
	base, err := parser.parseExpressionBase()
	if err != nil {
		return nil, err
	}
	expr := &ExprNode{Base: base, Line: base.Line}
	for parser.hasRemainTokens() {
		token, _ := parser.getCurrentToken()
		switch token.tp {
		case IdentifierTP:
			parser.stepForward()
			expr.Tail = append(expr.Tail, &SelectorPartNode{Name: token.content, Line: token.line})
			continue
		case SelectorIdTP:
			parser.stepForward()
			arg, err := parser.parseExpressionBase()
			if err != nil {
				return nil, err
			}
			expr.Tail = append(expr.Tail, &SelectorPartNode{Name: token.content, Arg: arg, Line: token.line})
			continue
		}
		break
	}
	return expr, nil
}

// expr_base := integer | string | id | ClassId | block | ( expr )
func (parser *Parser) parseExpressionBase() (*ExprBaseNode, error) {
	token, err := parser.getCurrentToken()
	if err != nil {
		return nil, err
	}
	base := &ExprBaseNode{Value: token.content, Line: token.line}
	switch token.tp {
	case IntegerTP:
		base.Type = IntegerBaseType
	case StringTP:
		base.Type = StringBaseType
	case IdentifierTP:
		base.Type = IdentifierBaseType
	case ClassIdTP:
		base.Type = ClassRefBaseType
	case LeftSquareBracketTP:
		base.Type, base.Value = BlockBaseType, ""
		base.Block, err = parser.ParseBlock()
		if err != nil {
			return nil, err
		}
		return base, nil
	case LeftParenthesesTP:
		parser.stepForward()
		base.Type, base.Value = SubExpressionBaseType, ""
		base.Expr, err = parser.parseExpression()
		if err != nil {
			return nil, err
		}
		if !parser.expectTokens(RightParenthesesTP) {
			return nil, parser.makeError(true, RightParenthesesTP)
		}
		return base, nil
	default:
		return nil, parser.makeError(true, IntegerTP, StringTP, IdentifierTP, ClassIdTP,
			LeftSquareBracketTP, LeftParenthesesTP)
	}
	parser.stepForward()
	return base, nil
}

func (parser *Parser) getCurrentToken() (*Token, error) {
	if !parser.hasRemainTokens() {
		return nil, parser.makeError(true)
	}
	return parser.currentTokens[parser.currentTokenPos], nil
}

func (parser *Parser) stepForward() {
	parser.currentTokenPos++
}

func (parser *Parser) hasRemainTokens() bool {
	return parser.currentTokenPos < len(parser.currentTokens)
}

func (parser *Parser) expectTokens(expectedTokenTPs ...TokenType) bool {
	for _, tokenType := range expectedTokenTPs {
		_, ok := parser.expectToken(tokenType, true)
		if !ok {
			return false
		}
	}
	return true
}

func (parser *Parser) expectToken(expectedTokenTp TokenType, walk bool) (*Token, bool) {
	if parser.currentTokenPos >= len(parser.currentTokens) || parser.currentTokens[parser.currentTokenPos].tp !=
		expectedTokenTp {
		return nil, false
	}
	token := parser.currentTokens[parser.currentTokenPos]
	if walk {
		parser.currentTokenPos++
	}
	return token, true
}

func (parser *Parser) makeError(useCurrentPos bool, expected ...TokenType) error {
	currentPos := parser.currentTokenPos
	if !useCurrentPos {
		currentPos--
	}
	expectedNames := make([]string, 0, len(expected))
	for _, tp := range expected {
		expectedNames = append(expectedNames, tp.String())
	}
	expectation := ""
	if len(expectedNames) > 0 {
		expectation = ", expected " + strings.Join(expectedNames, " or ")
	}
	if currentPos < 0 || currentPos >= len(parser.currentTokens) {
		line := 0
		if len(parser.currentTokens) > 0 {
			line = parser.currentTokens[len(parser.currentTokens)-1].line
		}
		return newError(SyntaxError, line, "unexpected end of input%s", expectation)
	}
	currentToken := parser.currentTokens[currentPos]
	return newError(SyntaxError, currentToken.line, "unexpected %s %q%s", currentToken.tp,
		currentToken.content, expectation)
}
