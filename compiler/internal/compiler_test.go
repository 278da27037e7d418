package internal

import (
	"bytes"
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"
	"strings"
	"testing"
)

const helloProgram = `"Prints nothing yet"
class Main : Object {
	run [ |
		greeting := 'Hello'.
		x := greeting print.
	]
}
`

func TestCompiler_Compile(t *testing.T) {
	compiler := NewCompiler(nil, nil)
	ast, err := compiler.CompileString(context.Background(), helloProgram)
	require.Nil(t, err)
	assert.Equal(t, "Prints nothing yet", ast.Description)
	require.Equal(t, 1, len(ast.Classes))
	assert.Equal(t, 2, len(ast.Classes[0].Methods[0].Block.Assigns))
}

func TestCompiler_CompileError(t *testing.T) {
	testData := []struct {
		source   string
		exitCode int
	}{
		{source: "class Main : Object { run [ | x := 'a. ] }", exitCode: 21},
		{source: "class Main : Object { run [ | x := 1 ] }", exitCode: 22},
		{source: "class Main : Object { run [ | self := 1. ] }", exitCode: 22},
		{source: "class Foo : Object { run [ | ] }", exitCode: 31},
		{source: "class Main : Object { run [ | x := y. ] }", exitCode: 32},
		{source: "class Main : Object { run [ :a | ] }", exitCode: 33},
		{source: "class Main : Object { run [ | ] foo: [ :a | a := 1. ] }", exitCode: 34},
		{source: "class Main : Object { run [ | ] } class Main : Object { }", exitCode: 35},
	}
	compiler := NewCompiler(DefaultConfig(), nil)
	for _, data := range testData {
		out := &bytes.Buffer{}
		err := compiler.CompileTo(context.Background(), strings.NewReader(data.source), out)
		assert.Equal(t, data.exitCode, ExitCode(err), data.source)
		assert.Equal(t, 0, out.Len(), data.source)
	}
}

func TestCompiler_CompileTo(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Indent = " "
	compiler := NewCompiler(cfg, nil)
	out := &bytes.Buffer{}
	require.Nil(t, compiler.CompileTo(context.Background(), strings.NewReader(helloProgram), out))
	assert.True(t, strings.HasPrefix(out.String(), `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out.String(), "\n <class name=\"Main\" parent=\"Object\">")
	assert.Contains(t, out.String(), `<send selector="print">`)
	assert.Contains(t, out.String(), `<literal class="String" value="Hello"></literal>`)
}

func TestCompiler_EntryPoint(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EntryClass, cfg.EntryMethod = "App", "start"
	compiler := NewCompiler(cfg, nil)
	_, err := compiler.CompileString(context.Background(), "class App : Object { start [ | ] }")
	assert.Nil(t, err)
	_, err = compiler.CompileString(context.Background(), helloProgram)
	assert.Equal(t, 31, ExitCode(err))
}

func TestCompiler_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	compiler := NewCompiler(nil, nil)
	_, err := compiler.CompileString(ctx, helloProgram)
	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, InternalError, kind)
	assert.True(t, strings.Contains(err.Error(), context.Canceled.Error()))
}

func TestCompiler_Logging(t *testing.T) {
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	compiler := NewCompiler(nil, logger)
	_, err := compiler.CompileString(context.Background(), helloProgram)
	require.Nil(t, err)
	assert.Contains(t, logs.String(), "compiler: start parser")
	assert.Contains(t, logs.String(), "compiler: start building ast")
	assert.Contains(t, logs.String(), "run=")

	logs.Reset()
	_, err = compiler.CompileString(context.Background(), "class Main : Object { run [ | x := y. ] }")
	var e *Error
	assert.True(t, errors.As(err, &e))
	assert.Contains(t, logs.String(), "phase=\"semantic checker\"")
	assert.Contains(t, logs.String(), "code=32")
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestCompiler_WriteFailure(t *testing.T) {
	compiler := NewCompiler(nil, nil)
	err := compiler.CompileTo(context.Background(), strings.NewReader(helloProgram), failingWriter{})
	assert.Equal(t, 99, ExitCode(err))
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestCompiler_ReadFailure(t *testing.T) {
	compiler := NewCompiler(nil, nil)
	_, err := compiler.Compile(context.Background(), failingReader{})
	assert.Equal(t, 11, ExitCode(err))
}
