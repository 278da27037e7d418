package internal

import (
	"strings"
)

// singletonLiterals maps the identifiers that denote literal values to their class.
var singletonLiterals = map[string]string{
	"nil":   NilLiteralClass,
	"true":  TrueLiteralClass,
	"false": FalseLiteralClass,
}

// AstBuilder turns a checked parse tree into the abstract syntax tree. It doesn't validate
// anything, CheckProgram must have accepted the tree before.
type AstBuilder struct {
	language    string
	description string
}

func NewAstBuilder(language string, description string) *AstBuilder {
	if language == "" {
		language = LanguageName
	}
	return &AstBuilder{language: language, description: description}
}

func (builder *AstBuilder) BuildProgram(program *ProgramNode) *ProgramAst {
	programAst := &ProgramAst{Language: builder.language, Description: builder.description}
	for _, classNode := range program.Classes {
		programAst.Classes = append(programAst.Classes, builder.buildClass(classNode))
	}
	return programAst
}

func (builder *AstBuilder) buildClass(classNode *ClassNode) *ClassAst {
	classAst := &ClassAst{Name: classNode.Name, Parent: classNode.Parent}
	for _, method := range classNode.Methods {
		classAst.Methods = append(classAst.Methods, builder.buildMethod(method))
	}
	return classAst
}

// The block arity of a method is taken from its selector. The checker made sure it equals the
// parameter count.
func (builder *AstBuilder) buildMethod(method *MethodNode) *MethodAst {
	selector := strings.Join(method.SelectorParts, "")
	blockAst := builder.buildBlock(method.Block)
	blockAst.Arity = SelectorArity(selector)
	return &MethodAst{Selector: selector, Block: blockAst}
}

func (builder *AstBuilder) buildBlock(block *BlockNode) *BlockAst {
	blockAst := &BlockAst{Arity: len(block.Params)}
	for i, param := range block.Params {
		blockAst.Parameters = append(blockAst.Parameters, &ParameterAst{Order: i + 1, Name: param})
	}
	order := 0
	for _, statement := range block.Statements {
		if statement == nil {
			continue
		}
		order++
		blockAst.Assigns = append(blockAst.Assigns, &AssignAst{
			Order: order,
			Var:   &VarAst{Name: statement.VarName},
			Expr:  builder.buildExpression(statement.Expr),
		})
	}
	return blockAst
}

// buildExpression never nests expressions needlessly: without a tail the base is returned as is
// (a primitive base gets wrapped once by buildExpressionBase), with a tail the base becomes the
// receiver of a single send.
func (builder *AstBuilder) buildExpression(expr *ExprNode) *ExprAst {
	base := builder.buildExpressionBase(expr.Base)
	if len(expr.Tail) == 0 {
		return base
	}
	return &ExprAst{Type: SendExprType, Send: builder.buildSend(base, expr.Tail)}
}

// buildSend joins all tail parts into one selector. Unary parts contribute only their name, so two
// unary parts make one send named by both names, not two chained sends.
func (builder *AstBuilder) buildSend(receiver *ExprAst, tail []*SelectorPartNode) *SendAst {
	send := &SendAst{Selector: tailSelector(tail), Receiver: receiver}
	if !strings.Contains(send.Selector, ":") {
		return send
	}
	for _, part := range tail {
		if part.Arg == nil {
			continue
		}
		send.Args = append(send.Args, &ArgAst{Order: len(send.Args) + 1, Expr: builder.buildExpressionBase(part.Arg)})
	}
	return send
}

// buildExpressionBase returns a primitive wrapped in one expr, or the expression of a parenthesized
// base unchanged.
func (builder *AstBuilder) buildExpressionBase(base *ExprBaseNode) *ExprAst {
	switch base.Type {
	case SubExpressionBaseType:
		return builder.buildExpression(base.Expr)
	case BlockBaseType:
		return &ExprAst{Type: BlockExprType, Block: builder.buildBlock(base.Block)}
	case IntegerBaseType:
		return literalExpr(IntegerLiteralClass, base.Value)
	case StringBaseType:
		return literalExpr(StringLiteralClass, stripQuotes(base.Value))
	case ClassRefBaseType:
		return literalExpr(ClassLiteralClass, base.Value)
	}
	if class, ok := singletonLiterals[base.Value]; ok {
		return literalExpr(class, base.Value)
	}
	return &ExprAst{Type: VarExprType, Var: &VarAst{Name: base.Value}}
}

func literalExpr(class string, value string) *ExprAst {
	return &ExprAst{Type: LiteralExprType, Literal: &LiteralAst{Class: class, Value: value}}
}

// stripQuotes removes the enclosing quotes of a string literal. Escapes are kept as written.
func stripQuotes(literal string) string {
	if len(literal) >= 2 && literal[0] == '\'' && literal[len(literal)-1] == '\'' {
		return literal[1 : len(literal)-1]
	}
	return literal
}
