package internal

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestClassTable_StandardLibrary(t *testing.T) {
	table := NewClassTable()
	var names []string
	for _, classSymbolTable := range table.Classes() {
		names = append(names, classSymbolTable.ClassName)
		assert.True(t, classSymbolTable.BuiltIn)
	}
	assert.Equal(t, []string{"Object", "Nil", "Integer", "String", "Block", "True", "False"}, names)

	object, ok := table.Lookup("Object")
	require.True(t, ok)
	assert.False(t, object.HasParent())
	integer, ok := table.Lookup("Integer")
	require.True(t, ok)
	assert.Equal(t, "Object", integer.ParentName)
	_, ok = table.Lookup("Main")
	assert.False(t, ok)
}

func TestClassTable_Register(t *testing.T) {
	table := NewClassTable()
	assert.Nil(t, table.Register("Main", "Object", 1))
	assert.Nil(t, table.Register("Later", "Undeclared", 2))

	testData := []string{"Main", "Object", "Integer", "True"}
	for _, className := range testData {
		err := table.Register(className, "Object", 5)
		kind, _ := KindOf(err)
		assert.Equal(t, RedefinitionError, kind, className)
		assert.Equal(t, 35, ExitCode(err), className)
	}
	classes := table.Classes()
	assert.Equal(t, "Later", classes[len(classes)-1].ClassName)
	assert.False(t, classes[len(classes)-1].BuiltIn)
}

func TestClassTable_HasClassMethod(t *testing.T) {
	table := NewClassTable()
	require.Nil(t, table.Register("Text", "String", 1))
	require.Nil(t, table.Register("Main", "Text", 2))
	testData := []struct {
		className string
		selector  string
		expected  bool
	}{
		{className: "Object", selector: "new", expected: true},
		{className: "Object", selector: "from:", expected: true},
		{className: "Object", selector: "read", expected: false},
		{className: "String", selector: "read", expected: true},
		{className: "String", selector: "new", expected: true},
		{className: "Integer", selector: "read", expected: false},
		{className: "Text", selector: "read", expected: true},
		{className: "Main", selector: "from:", expected: true},
		{className: "Main", selector: "run", expected: false},
		{className: "Unknown", selector: "new", expected: false},
	}
	for _, data := range testData {
		assert.Equal(t, data.expected, table.HasClassMethod(data.className, data.selector), data)
	}
}

func TestClassTable_HasInstanceMethod(t *testing.T) {
	table := NewClassTable()
	require.Nil(t, table.Register("Base", "Object", 1))
	require.Nil(t, table.Register("Main", "Base", 2))
	require.Nil(t, table.RecordInstanceMethod("Base", "run"))
	require.Nil(t, table.RecordInstanceMethod("Main", "at:put:"))
	require.Nil(t, table.RecordInstanceMethod("Main", "at:put:"))

	assert.True(t, table.HasInstanceMethod("Base", "run"))
	assert.False(t, table.HasInstanceMethod("Main", "run"))
	assert.True(t, table.HasInstanceMethod("Main", "at:put:"))
	assert.False(t, table.HasInstanceMethod("Unknown", "run"))

	main, _ := table.Lookup("Main")
	assert.Equal(t, []string{"at:put:", "at:put:"}, main.InstanceMethods)

	err := table.RecordInstanceMethod("Unknown", "run")
	kind, _ := KindOf(err)
	assert.Equal(t, InternalError, kind)
}

func TestClassTable_Ancestors(t *testing.T) {
	table := NewClassTable()
	require.Nil(t, table.Register("A", "Object", 1))
	require.Nil(t, table.Register("B", "A", 2))
	require.Nil(t, table.Register("X", "Y", 3))
	require.Nil(t, table.Register("Y", "X", 4))
	assert.Equal(t, []string{"A", "Object"}, table.Ancestors("B"))
	assert.Empty(t, table.Ancestors("Object"))
	assert.Equal(t, []string{"Y"}, table.Ancestors("X"))
}

func TestClassTable_checkInheritance(t *testing.T) {
	table := NewClassTable()
	require.Nil(t, table.Register("Main", "Base", 1))
	require.Nil(t, table.Register("Base", "Object", 2))
	require.Nil(t, table.Register("Orphan", "Missing", 3))
	require.Nil(t, table.Register("A", "B", 4))
	require.Nil(t, table.Register("B", "C", 5))
	require.Nil(t, table.Register("C", "A", 6))
	require.Nil(t, table.Register("Self", "Self", 7))
	require.Nil(t, table.Register("Child", "Orphan", 8))
	testData := []struct {
		className    string
		expectedKind ErrorKind
		expectedOk   bool
	}{
		{className: "Main"},
		{className: "Base"},
		{className: "Object"},
		{className: "Integer"},
		{className: "Orphan", expectedKind: UndefinedReferenceError, expectedOk: true},
		{className: "Child", expectedKind: UndefinedReferenceError, expectedOk: true},
		{className: "A", expectedKind: RedefinitionError, expectedOk: true},
		{className: "C", expectedKind: RedefinitionError, expectedOk: true},
		{className: "Self", expectedKind: RedefinitionError, expectedOk: true},
	}
	for _, data := range testData {
		err := table.checkInheritance(data.className, 1)
		kind, ok := KindOf(err)
		assert.Equal(t, data.expectedOk, ok, data.className)
		if data.expectedOk {
			assert.Equal(t, data.expectedKind, kind, data.className)
		}
	}

	err := table.checkInheritance("A", 4)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "A -> B -> C -> A")
}
