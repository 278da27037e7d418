package internal

// checkInheritance validates the parent chain of className: the declared parent must exist and
// walking parents must reach the root without seeing a parent twice.
func (table *ClassTable) checkInheritance(className string, line int) error {
	classSymbolTable := table.lookUpClass(className)
	if classSymbolTable == nil {
		return newError(UndefinedReferenceError, line, "undefined class '%s'", className)
	}
	if classSymbolTable.HasParent() && !table.isClassNameExist(classSymbolTable.ParentName) {
		return newError(UndefinedReferenceError, line, "undefined class '%s'", classSymbolTable.ParentName)
	}
	var parents []string
	seen := map[string]bool{}
	for classSymbolTable.HasParent() {
		parent := classSymbolTable.ParentName
		if seen[parent] {
			return newError(RedefinitionError, line, "circular inheritance in class '%s' (%s)", className,
				formatInheritanceChain(className, parents))
		}
		seen[parent] = true
		parents = append(parents, parent)
		classSymbolTable = table.lookUpClass(parent)
		if classSymbolTable == nil {
			return newError(UndefinedReferenceError, line, "undefined class '%s' in ancestors of '%s'",
				parent, className)
		}
	}
	return nil
}

func formatInheritanceChain(className string, parents []string) string {
	chain := className
	for _, parent := range parents {
		chain += " -> " + parent
	}
	return chain
}
