package internal

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// Compiler runs the phases of the front end in order: parsing, building the class table, the
// semantic check and the ast construction. The first error stops it.
type Compiler struct {
	cfg    *Config
	logger *slog.Logger
}

func NewCompiler(cfg *Config, logger *slog.Logger) *Compiler {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Compiler{cfg: cfg, logger: logger}
}

// Compile parses and checks the program read from rd and returns its ast.
func (compiler *Compiler) Compile(ctx context.Context, rd io.Reader) (*ProgramAst, error) {
	logger := compiler.logger.With("run", uuid.NewString())

	logger.Debug("compiler: start parser")
	parser := &Parser{}
	program, err := parser.Parse(rd)
	if err != nil {
		return nil, compiler.fail(logger, "parser", err)
	}
	if err := compiler.checkCancel(ctx); err != nil {
		return nil, err
	}

	logger.Debug("compiler: start building class table", "classes", len(program.Classes))
	table, err := BuildClassTable(program)
	if err != nil {
		return nil, compiler.fail(logger, "class table", err)
	}
	if err := compiler.checkCancel(ctx); err != nil {
		return nil, err
	}

	logger.Debug("compiler: start semantic checker")
	err = CheckProgram(program, table, compiler.cfg.EntryClass, compiler.cfg.EntryMethod)
	if err != nil {
		return nil, compiler.fail(logger, "semantic checker", err)
	}
	if err := compiler.checkCancel(ctx); err != nil {
		return nil, err
	}

	logger.Debug("compiler: start building ast")
	ast := NewAstBuilder(compiler.cfg.Language, program.Description).BuildProgram(program)
	logger.Debug("compiler: done", "classes", len(ast.Classes))
	return ast, nil
}

func (compiler *Compiler) CompileString(ctx context.Context, source string) (*ProgramAst, error) {
	return compiler.Compile(ctx, bytes.NewReader([]byte(source)))
}

// CompileTo compiles the program read from rd and writes its xml form to w. Nothing is written
// when compilation fails.
func (compiler *Compiler) CompileTo(ctx context.Context, rd io.Reader, w io.Writer) error {
	ast, err := compiler.Compile(ctx, rd)
	if err != nil {
		return err
	}
	buf := &bytes.Buffer{}
	err = WriteXml(buf, ast, compiler.cfg.Indent)
	if err != nil {
		return newError(InternalError, 0, "writing xml: %v", err)
	}
	_, err = buf.WriteTo(w)
	if err != nil {
		return newError(InternalError, 0, "writing output: %v", err)
	}
	return nil
}

func (compiler *Compiler) checkCancel(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return newError(InternalError, 0, "compilation canceled: %v", err)
	}
	return nil
}

func (compiler *Compiler) fail(logger *slog.Logger, phase string, err error) error {
	kind, _ := KindOf(err)
	logger.Debug("compiler: phase failed", "phase", phase, "kind", kind.String(), "code", kind.ExitCode())
	return err
}
