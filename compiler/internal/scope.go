package internal

// Keywords can't be used as variable, parameter or method selector names.
var keywords = map[string]bool{
	"class": true,
	"self":  true,
	"super": true,
	"nil":   true,
	"true":  true,
	"false": true,
}

// pseudoVariables are keywords that can be used as values without being declared.
var pseudoVariables = map[string]bool{
	"self":  true,
	"super": true,
	"nil":   true,
	"true":  true,
	"false": true,
}

func isKeyword(name string) bool {
	return keywords[name]
}

type SymbolKind int

const (
	VariableSymbolKind SymbolKind = iota
	ParameterSymbolKind
)

type SymbolDesc struct {
	name        string
	kind        SymbolKind
	initialized bool
}

// Scope holds the names bound by one block or method body. Lookups never fall through to the
// enclosing scope.
type Scope struct {
	symbols map[string]*SymbolDesc
	// The target of the statement being checked in this scope, empty between statements.
	currentVar string
}

func newScope() *Scope {
	return &Scope{
		symbols: map[string]*SymbolDesc{
			"self":  {name: "self", kind: VariableSymbolKind, initialized: true},
			"super": {name: "super", kind: VariableSymbolKind, initialized: true},
		},
	}
}

func (scope *Scope) lookUp(name string) *SymbolDesc {
	return scope.symbols[name]
}

type Resolution int

const (
	Resolved Resolution = iota
	Undefined
	Uninitialized
)

// ScopeStack keeps one Scope per block being checked, the innermost on top.
type ScopeStack struct {
	scopes []*Scope
}

func (stack *ScopeStack) Enter() {
	stack.scopes = append(stack.scopes, newScope())
}

func (stack *ScopeStack) Leave() {
	if len(stack.scopes) == 0 {
		return
	}
	stack.scopes = stack.scopes[:len(stack.scopes)-1]
}

func (stack *ScopeStack) Depth() int {
	return len(stack.scopes)
}

func (stack *ScopeStack) current() *Scope {
	if len(stack.scopes) == 0 {
		return nil
	}
	return stack.scopes[len(stack.scopes)-1]
}

// DeclareParameters binds the block parameters in the current scope.
func (stack *ScopeStack) DeclareParameters(names []string, line int) error {
	scope := stack.current()
	if scope == nil {
		return newError(InternalError, line, "parameters declared outside of a block")
	}
	for _, name := range names {
		if isKeyword(name) {
			return newError(ReservedIdentifierError, line, "%s is reserved identifier", name)
		}
		symbol := scope.lookUp(name)
		if symbol != nil && symbol.kind == ParameterSymbolKind {
			return newError(RedefinitionError, line, "parameter redefinition of '%s'", name)
		}
		scope.symbols[name] = &SymbolDesc{name: name, kind: ParameterSymbolKind, initialized: true}
	}
	return nil
}

// BeginStatement makes name the target of the statement being checked. An unknown name becomes an
// uninitialized variable, it's initialized by EndStatement.
func (stack *ScopeStack) BeginStatement(name string, line int) error {
	scope := stack.current()
	if scope == nil {
		return newError(InternalError, line, "statement outside of a block")
	}
	if isKeyword(name) {
		return newError(ReservedIdentifierError, line, "%s is reserved identifier", name)
	}
	scope.currentVar = name
	symbol := scope.lookUp(name)
	if symbol == nil {
		scope.symbols[name] = &SymbolDesc{name: name, kind: VariableSymbolKind}
		return nil
	}
	if symbol.kind == ParameterSymbolKind {
		return newError(CollisionError, line, "variable '%s' collides with a parameter", name)
	}
	return nil
}

// EndStatement marks the target of the current statement as initialized.
func (stack *ScopeStack) EndStatement() {
	scope := stack.current()
	if scope == nil || scope.currentVar == "" {
		return
	}
	if symbol := scope.lookUp(scope.currentVar); symbol != nil {
		symbol.initialized = true
	}
	scope.currentVar = ""
}

// Resolve tells whether name can be used as a value in the current scope.
func (stack *ScopeStack) Resolve(name string) Resolution {
	scope := stack.current()
	if scope == nil {
		return Undefined
	}
	symbol := scope.lookUp(name)
	if symbol == nil {
		return Undefined
	}
	if !symbol.initialized {
		return Uninitialized
	}
	return Resolved
}

// Kind returns the kind name is bound as in the current scope.
func (stack *ScopeStack) Kind(name string) (SymbolKind, bool) {
	scope := stack.current()
	if scope == nil {
		return VariableSymbolKind, false
	}
	symbol := scope.lookUp(name)
	if symbol == nil {
		return VariableSymbolKind, false
	}
	return symbol.kind, true
}
