package internal

// In this file, we defined the parse tree of SOL25 programs according to the grammar. The parser
// produces it, the semantic checker and the ast builder only read it. Every node keeps the line it
// starts at for diagnostics.

type ProgramNode struct {
	Classes []*ClassNode
	// Content of the first comment in the source, empty if there is none.
	Description string
}

// class Name : Parent { methods }
type ClassNode struct {
	Name    string
	Parent  string
	Methods []*MethodNode
	Line    int
}

// A method is a selector followed by a block. SelectorParts is either one unary identifier, or
// one or more colon terminated keyword parts.
type MethodNode struct {
	SelectorParts []string
	Block         *BlockNode
	Line          int
}

// [ :p1 :p2 | statements ]
type BlockNode struct {
	// Parameter names without the leading colon.
	Params     []string
	Statements []*StatementNode
	Line       int
}

// varName := expr .
type StatementNode struct {
	VarName string
	Expr    *ExprNode
	Line    int
}

type ExprNode struct {
	Base *ExprBaseNode
	Tail []*SelectorPartNode
	Line int
}

type ExprBaseType int

const (
	// For constant values, Value in ExprBaseNode keeps the literal text, for example:
	// * For 5, value is 5
	// * For 'hello', value is 'hello' (quotes included)
	IntegerBaseType ExprBaseType = iota
	StringBaseType
	// For identifiers (including self, super, nil, true, false), Value is the name.
	IdentifierBaseType
	// For class references, Value is the class name.
	ClassRefBaseType
	// For blocks, Block is set.
	BlockBaseType
	// For (expr), Expr is set.
	SubExpressionBaseType
)

type ExprBaseNode struct {
	Type  ExprBaseType
	Value string
	Block *BlockNode
	Expr  *ExprNode
	Line  int
}

// A part of a message in an expression tail. Unary parts have no colon and no Arg,
// keyword parts end with a colon and carry their argument.
type SelectorPartNode struct {
	Name string
	Arg  *ExprBaseNode
	Line int
}

func (part *SelectorPartNode) IsKeyword() bool {
	return part.Arg != nil
}
