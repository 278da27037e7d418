package internal

// RootClassName is the class every hierarchy ends at. It's the only class without a parent.
const RootClassName = "Object"

// ClassSymbolTable is the entry of a single class in the ClassTable.
type ClassSymbolTable struct {
	ClassName string
	// Empty for the root class.
	ParentName string
	// Class methods can only come from built-in classes.
	ClassMethods map[string]bool
	// Instance methods in declaration order. A selector may appear more than once.
	InstanceMethods []string
	Line            int
	BuiltIn         bool
}

func (classSymbolTable *ClassSymbolTable) HasParent() bool {
	return classSymbolTable.ParentName != ""
}

// ClassTable is the whole-program mapping from class name to its entry. It's built once per run,
// before any class body is checked, and is only extended with instance methods afterwards.
type ClassTable struct {
	classes map[string]*ClassSymbolTable
	// Declaration order, built-ins first.
	order []string
}

func NewClassTable() *ClassTable {
	table := &ClassTable{classes: map[string]*ClassSymbolTable{}}
	table.initStandardLibrary()
	return table
}

func (table *ClassTable) initStandardLibrary() {
	table.addStandardClass(RootClassName, "", []string{"new", "from:"})
	table.addStandardClass("Nil", RootClassName, nil)
	table.addStandardClass("Integer", RootClassName, nil)
	table.addStandardClass("String", RootClassName, []string{"read"})
	table.addStandardClass("Block", RootClassName, nil)
	table.addStandardClass("True", RootClassName, nil)
	table.addStandardClass("False", RootClassName, nil)
}

func (table *ClassTable) addStandardClass(className string, parentName string, classMethods []string) {
	classSymbolTable := &ClassSymbolTable{
		ClassName:    className,
		ParentName:   parentName,
		ClassMethods: map[string]bool{},
		BuiltIn:      true,
	}
	for _, method := range classMethods {
		classSymbolTable.ClassMethods[method] = true
	}
	table.classes[className] = classSymbolTable
	table.order = append(table.order, className)
}

// Register adds a user class. Redefining any class, built-ins included, is an error.
func (table *ClassTable) Register(className string, parentName string, line int) error {
	if _, ok := table.classes[className]; ok {
		return newError(RedefinitionError, line, "redefinition of class '%s'", className)
	}
	table.classes[className] = &ClassSymbolTable{
		ClassName:    className,
		ParentName:   parentName,
		ClassMethods: map[string]bool{},
		Line:         line,
	}
	table.order = append(table.order, className)
	return nil
}

// RecordInstanceMethod appends selector to the instance methods of className. Redefinition in the
// same class is allowed and just extends the list.
func (table *ClassTable) RecordInstanceMethod(className string, selector string) error {
	classSymbolTable := table.lookUpClass(className)
	if classSymbolTable == nil {
		return newError(InternalError, 0, "cannot record method %s on unknown class %s", selector, className)
	}
	classSymbolTable.InstanceMethods = append(classSymbolTable.InstanceMethods, selector)
	return nil
}

// buildClassTable runs the whole-program pre-pass: every class declared in program is registered
// before any class body is looked at, so classes can refer to classes declared later.
func (table *ClassTable) buildClassTable(program *ProgramNode) error {
	for _, classNode := range program.Classes {
		err := table.Register(classNode.Name, classNode.Parent, classNode.Line)
		if err != nil {
			return err
		}
	}
	return nil
}

func (table *ClassTable) lookUpClass(className string) *ClassSymbolTable {
	return table.classes[className]
}

func (table *ClassTable) Lookup(className string) (*ClassSymbolTable, bool) {
	classSymbolTable, ok := table.classes[className]
	return classSymbolTable, ok
}

func (table *ClassTable) isClassNameExist(className string) bool {
	return table.classes[className] != nil
}

// HasClassMethod looks selector up among the class methods of className and its ancestors.
func (table *ClassTable) HasClassMethod(className string, selector string) bool {
	if !table.isClassNameExist(className) {
		return false
	}
	for _, name := range append([]string{className}, table.Ancestors(className)...) {
		classSymbolTable := table.lookUpClass(name)
		if classSymbolTable == nil {
			return false
		}
		if classSymbolTable.ClassMethods[selector] {
			return true
		}
	}
	return false
}

// HasInstanceMethod only looks at the methods declared directly in className.
func (table *ClassTable) HasInstanceMethod(className string, selector string) bool {
	classSymbolTable := table.lookUpClass(className)
	if classSymbolTable == nil {
		return false
	}
	for _, method := range classSymbolTable.InstanceMethods {
		if method == selector {
			return true
		}
	}
	return false
}

// Ancestors returns the parents of className, nearest first. It stops at a missing class or when a
// class repeats, the inheritance validator reports those.
func (table *ClassTable) Ancestors(className string) []string {
	var ancestors []string
	visited := map[string]bool{className: true}
	classSymbolTable := table.lookUpClass(className)
	for classSymbolTable != nil && classSymbolTable.HasParent() {
		parent := classSymbolTable.ParentName
		if visited[parent] {
			break
		}
		visited[parent] = true
		ancestors = append(ancestors, parent)
		classSymbolTable = table.lookUpClass(parent)
	}
	return ancestors
}

// Classes returns all entries, built-ins first, then user classes in declaration order.
func (table *ClassTable) Classes() []*ClassSymbolTable {
	classes := make([]*ClassSymbolTable, 0, len(table.order))
	for _, className := range table.order {
		classes = append(classes, table.classes[className])
	}
	return classes
}
