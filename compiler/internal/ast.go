package internal

import "encoding/xml"

// In this file, we defined the abstract syntax tree produced for a checked SOL25 program. The xml
// tags give the element and attribute names of the serialized form.

const LanguageName = "SOL25"

type ProgramAst struct {
	XMLName     xml.Name    `xml:"program"`
	Language    string      `xml:"language,attr"`
	Description string      `xml:"description,attr,omitempty"`
	Classes     []*ClassAst `xml:"class"`
}

type ClassAst struct {
	Name    string       `xml:"name,attr"`
	Parent  string       `xml:"parent,attr"`
	Methods []*MethodAst `xml:"method"`
}

type MethodAst struct {
	Selector string    `xml:"selector,attr"`
	Block    *BlockAst `xml:"block"`
}

type BlockAst struct {
	Arity      int             `xml:"arity,attr"`
	Parameters []*ParameterAst `xml:"parameter"`
	Assigns    []*AssignAst    `xml:"assign"`
}

type ParameterAst struct {
	Order int    `xml:"order,attr"`
	Name  string `xml:"name,attr"`
}

type AssignAst struct {
	Order int      `xml:"order,attr"`
	Var   *VarAst  `xml:"var"`
	Expr  *ExprAst `xml:"expr"`
}

type VarAst struct {
	Name string `xml:"name,attr"`
}

type ExprType int

const (
	LiteralExprType ExprType = iota
	VarExprType
	BlockExprType
	SendExprType
)

// ExprAst holds exactly one of Literal, Var, Block or Send, as told by Type.
type ExprAst struct {
	Type    ExprType    `xml:"-"`
	Literal *LiteralAst `xml:"literal"`
	Var     *VarAst     `xml:"var"`
	Block   *BlockAst   `xml:"block"`
	Send    *SendAst    `xml:"send"`
}

// SendAst is a message: its receiver comes first, then the arguments in order.
type SendAst struct {
	Selector string    `xml:"selector,attr"`
	Receiver *ExprAst  `xml:"expr"`
	Args     []*ArgAst `xml:"arg"`
}

type ArgAst struct {
	Order int      `xml:"order,attr"`
	Expr  *ExprAst `xml:"expr"`
}

// Class attribute values of literals.
const (
	IntegerLiteralClass = "Integer"
	StringLiteralClass  = "String"
	NilLiteralClass     = "Nil"
	TrueLiteralClass    = "True"
	FalseLiteralClass   = "False"
	ClassLiteralClass   = "class"
)

type LiteralAst struct {
	Class string `xml:"class,attr"`
	Value string `xml:"value,attr"`
}
