package main

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const program = `class Main : Object {
	run [ | x := 1. ]
}
`

func runTest(args []string, stdin string) (int, string, string) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	code := run(args, strings.NewReader(stdin), stdout, stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun(t *testing.T) {
	code, stdout, stderr := runTest(nil, program)
	assert.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, `<program language="SOL25">`)
	assert.Contains(t, stdout, `<method selector="run">`)
}

func TestRun_Help(t *testing.T) {
	for _, arg := range []string{"-h", "-help", "--help"} {
		code, stdout, stderr := runTest([]string{arg}, "")
		assert.Equal(t, 0, code, arg)
		assert.Empty(t, stdout, arg)
		assert.Contains(t, stderr, "Usage: parse", arg)
	}
}

func TestRun_ArgumentError(t *testing.T) {
	testData := [][]string{
		{"-unknown"},
		{"file.sol"},
		{"-v", "extra"},
	}
	for _, args := range testData {
		code, stdout, _ := runTest(args, program)
		assert.Equal(t, 10, code, args)
		assert.Empty(t, stdout, args)
	}
}

func TestRun_CompileError(t *testing.T) {
	code, stdout, stderr := runTest(nil, "class Main : Object { run [ | x := y. ] }")
	assert.Equal(t, 32, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Semantic error (32)")
	assert.NotContains(t, stderr, "\x1b[31m")
}

func TestRun_Source(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.sol25")
	require.Nil(t, os.WriteFile(path, []byte(program), 0644))
	code, stdout, _ := runTest([]string{"-source", path}, "")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, `<class name="Main" parent="Object">`)

	code, stdout, _ = runTest([]string{"-source", filepath.Join(dir, "missing.sol25")}, "")
	assert.Equal(t, 11, code)
	assert.Empty(t, stdout)
}

func TestRun_Config(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sol25.yaml")
	require.Nil(t, os.WriteFile(path, []byte("entry_class: App\nentry_method: start\ncolor: always\n"), 0644))

	code, _, stderr := runTest([]string{"-config", path}, program)
	assert.Equal(t, 31, code)
	assert.Contains(t, stderr, "\x1b[31m")

	code, _, _ = runTest([]string{"-config", path}, "class App : Object { start [ | ] }")
	assert.Equal(t, 0, code)

	code, _, _ = runTest([]string{"-config", filepath.Join(dir, "missing.yaml")}, program)
	assert.Equal(t, 11, code)

	bad := filepath.Join(dir, "bad.yaml")
	require.Nil(t, os.WriteFile(bad, []byte("color: sometimes\n"), 0644))
	code, _, _ = runTest([]string{"-config", bad}, program)
	assert.Equal(t, 11, code)
}

func TestRun_Verbose(t *testing.T) {
	code, _, stderr := runTest([]string{"-v"}, program)
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "compiler: start parser")
}

func TestUseColor(t *testing.T) {
	assert.True(t, useColor("always", &bytes.Buffer{}))
	assert.False(t, useColor("never", os.Stderr))
	assert.False(t, useColor("auto", &bytes.Buffer{}))
	t.Setenv("NO_COLOR", "1")
	assert.False(t, useColor("auto", os.Stderr))
}
