// Package driver splits a source string into $-delimited sub-programs and
// runs each through the lexer, parser, AST-lowering/semantic-analysis and
// code-generation stages in strict gated order, collating one result per
// sub-program (spec.md §2, §5, §6).
package driver

import (
	"strings"

	"github.com/lookbusy1344/alanppc/ast"
	"github.com/lookbusy1344/alanppc/codegen"
	"github.com/lookbusy1344/alanppc/config"
	"github.com/lookbusy1344/alanppc/cst"
	"github.com/lookbusy1344/alanppc/diag"
	"github.com/lookbusy1344/alanppc/lexer"
	"github.com/lookbusy1344/alanppc/parser"
	"github.com/lookbusy1344/alanppc/sema"
)

// SubProgramResult holds every stage's artifact and log for one
// $-delimited sub-program.
type SubProgramResult struct {
	Source string

	LexLog    diag.Log
	ParseLog  diag.Log
	SemLog    diag.Log

	CST     *cst.Node
	AST     *ast.Program
	Symbols *sema.SymbolTable

	Code      [256]byte
	MemoryMap []codegen.MapEntry
}

// Compile splits source on one-or-more consecutive '$' characters,
// discards empty segments, and compiles each remaining segment
// independently (spec.md §6's input rule). A segment keeps whatever
// trailing '$' it was actually split on -- a segment that ran out of
// input before ever hitting a '$' is passed through undelimited, so the
// lexer's own missing-EOP warning (lexer.go's TokenizeAll) still fires for
// real user input that forgot the marker, rather than being pre-empted by
// a synthesized delimiter here.
func Compile(source string, cfg *config.Config) []SubProgramResult {
	segments := splitSubPrograms(source)

	results := make([]SubProgramResult, 0, len(segments))
	for _, seg := range segments {
		results = append(results, compileOne(seg, cfg))
	}
	return results
}

func splitSubPrograms(source string) []string {
	parts := strings.SplitAfter(source, "$")
	var segments []string
	for _, part := range parts {
		body := strings.TrimSuffix(part, "$")
		if strings.TrimSpace(body) == "" {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}

// compileOne runs one sub-program through the full pipeline. Each stage
// gates the next: the parser always runs over whatever tokens the lexer
// produced, but semantic analysis only runs when parsing left no
// ERROR-level log entries, and code generation only runs when semantic
// analysis produced no errors (spec.md §2).
func compileOne(source string, cfg *config.Config) SubProgramResult {
	result := SubProgramResult{Source: source}

	l := lexer.New(source)
	tokens := l.TokenizeAll()
	result.LexLog = l.Log

	p := parser.New(tokens)
	root, parseLog := p.Parse()
	result.ParseLog = *parseLog
	result.CST = root

	if parseLog.HasErrors() {
		result.Code, result.MemoryMap, _ = codegen.New(cfg).Generate(nil)
		return result
	}

	program := ast.Lower(root)
	result.AST = program

	analyzer := sema.New(cfg)
	table, semLog := analyzer.Analyze(program)
	result.SemLog = *semLog
	result.Symbols = table

	if semLog.HasErrors() {
		result.Code, result.MemoryMap, _ = codegen.New(cfg).Generate(nil)
		return result
	}

	gen := codegen.New(cfg)
	code, memMap, genLog := gen.Generate(program)
	result.SemLog.Append(genLog)
	result.Code = code
	result.MemoryMap = memMap

	return result
}
