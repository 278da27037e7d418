package internal

import (
	"strings"
)

// checkContext is the state of a semantic check: the class table, the scopes of the blocks being
// checked and the class whose body is being checked. Every check step receives it explicitly.
type checkContext struct {
	table        *ClassTable
	scopes       *ScopeStack
	currentClass string
}

func newCheckContext(table *ClassTable) *checkContext {
	return &checkContext{table: table, scopes: &ScopeStack{}}
}

// CheckProgram runs all semantic checks on program and stops at the first violation. The class
// table must already hold every class of program (see BuildClassTable). The checks are:
// [1] parent definition and circular inheritance of every class,
// [2] keyword collision and arity of method selectors,
// [3] definition and initialization of variables, parameter redefinition and variable/parameter collision,
// [4] definition of referenced classes and of class methods sent to them,
// [5] existence of the entry class and its entry instance method.
func CheckProgram(program *ProgramNode, table *ClassTable, entryClass string, entryMethod string) error {
	ctx := newCheckContext(table)
	for _, classNode := range program.Classes {
		err := ctx.checkClass(classNode)
		if err != nil {
			return err
		}
	}
	return ctx.checkEntryPoint(entryClass, entryMethod)
}

// BuildClassTable creates the class table of program, built-ins included.
func BuildClassTable(program *ProgramNode) (*ClassTable, error) {
	table := NewClassTable()
	err := table.buildClassTable(program)
	if err != nil {
		return nil, err
	}
	return table, nil
}

func (ctx *checkContext) checkEntryPoint(entryClass string, entryMethod string) error {
	if !ctx.table.isClassNameExist(entryClass) || !ctx.table.HasInstanceMethod(entryClass, entryMethod) {
		return newError(MissingEntryPointError, 0, "missing class %s or its instance method %s",
			entryClass, entryMethod)
	}
	return nil
}

func (ctx *checkContext) checkClass(classNode *ClassNode) error {
	ctx.currentClass = classNode.Name
	err := ctx.table.checkInheritance(classNode.Name, classNode.Line)
	if err != nil {
		return err
	}
	for _, method := range classNode.Methods {
		err = ctx.checkMethod(method)
		if err != nil {
			return err
		}
	}
	return nil
}

func (ctx *checkContext) checkMethod(method *MethodNode) error {
	selector := strings.Join(method.SelectorParts, "")
	if isKeyword(selector) {
		return newError(ReservedIdentifierError, method.Line, "%s is reserved identifier", selector)
	}
	err := ctx.table.RecordInstanceMethod(ctx.currentClass, selector)
	if err != nil {
		return err
	}
	if SelectorArity(selector) != len(method.Block.Params) {
		return newError(ArityError, method.Line, "method %s.%s expects %d parameters, block has %d",
			ctx.currentClass, selector, SelectorArity(selector), len(method.Block.Params))
	}
	return ctx.checkBlock(method.Block)
}

func (ctx *checkContext) checkBlock(block *BlockNode) error {
	ctx.scopes.Enter()
	defer ctx.scopes.Leave()
	err := ctx.scopes.DeclareParameters(block.Params, block.Line)
	if err != nil {
		return err
	}
	for _, statement := range block.Statements {
		err = ctx.checkStatement(statement)
		if err != nil {
			return err
		}
	}
	return nil
}

// The assigned variable is only initialized after its whole statement is checked, so it can't be
// used in its own right-hand side unless a previous statement already initialized it.
func (ctx *checkContext) checkStatement(statement *StatementNode) error {
	err := ctx.scopes.BeginStatement(statement.VarName, statement.Line)
	if err != nil {
		return err
	}
	err = ctx.checkExpression(statement.Expr)
	if err != nil {
		return err
	}
	ctx.scopes.EndStatement()
	return nil
}

func (ctx *checkContext) checkExpression(expr *ExprNode) error {
	if expr.Base.Type == ClassRefBaseType {
		err := ctx.checkClassMessage(expr)
		if err != nil {
			return err
		}
	}
	err := ctx.checkExpressionBase(expr.Base)
	if err != nil {
		return err
	}
	for _, part := range expr.Tail {
		if isKeyword(part.Name) {
			return newError(ReservedIdentifierError, part.Line, "%s is reserved identifier", part.Name)
		}
		if part.Arg == nil {
			continue
		}
		err = ctx.checkExpressionBase(part.Arg)
		if err != nil {
			return err
		}
	}
	return nil
}

// A message sent to a class must be a class method of that class or of one of its ancestors.
func (ctx *checkContext) checkClassMessage(expr *ExprNode) error {
	className := expr.Base.Value
	if !ctx.table.isClassNameExist(className) {
		return newError(UndefinedReferenceError, expr.Base.Line, "undefined class '%s'", className)
	}
	selector := tailSelector(expr.Tail)
	if selector == "" {
		return nil
	}
	if !ctx.table.HasClassMethod(className, selector) {
		return newError(UndefinedReferenceError, expr.Line, "undefined class method %s.%s", className, selector)
	}
	return nil
}

func (ctx *checkContext) checkExpressionBase(base *ExprBaseNode) error {
	switch base.Type {
	case IntegerBaseType, StringBaseType:
		return nil
	case IdentifierBaseType:
		return ctx.checkVariableUse(base)
	case ClassRefBaseType:
		if !ctx.table.isClassNameExist(base.Value) {
			return newError(UndefinedReferenceError, base.Line, "undefined class '%s'", base.Value)
		}
		return nil
	case BlockBaseType:
		return ctx.checkBlock(base.Block)
	case SubExpressionBaseType:
		return ctx.checkExpression(base.Expr)
	}
	return newError(InternalError, base.Line, "unknown expression base type %d", base.Type)
}

func (ctx *checkContext) checkVariableUse(base *ExprBaseNode) error {
	if pseudoVariables[base.Value] {
		return nil
	}
	switch ctx.scopes.Resolve(base.Value) {
	case Undefined:
		return newError(UndefinedReferenceError, base.Line, "undefined variable '%s'", base.Value)
	case Uninitialized:
		return newError(UndefinedReferenceError, base.Line, "uninitialised variable '%s'", base.Value)
	}
	return nil
}

// SelectorArity is the number of arguments a selector takes, one per colon.
func SelectorArity(selector string) int {
	return strings.Count(selector, ":")
}

// tailSelector joins the names of all parts of an expression tail into one selector.
func tailSelector(tail []*SelectorPartNode) string {
	var builder strings.Builder
	for _, part := range tail {
		builder.WriteString(part.Name)
	}
	return builder.String()
}
