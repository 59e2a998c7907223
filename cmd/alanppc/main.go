// Command alanppc compiles Alan++ source through the lexer, parser,
// AST-lowering/semantic-analysis and code-generation stages, writing the
// four sinks spec.md §6 defines for each $-delimited sub-program.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lookbusy1344/alanppc/ast"
	"github.com/lookbusy1344/alanppc/codegen"
	"github.com/lookbusy1344/alanppc/config"
	"github.com/lookbusy1344/alanppc/driver"
)

var (
	// Version is overridden at build time with -ldflags "-X main.Version=...".
	Version = "dev"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		verboseMode = flag.Bool("verbose", false, "Verbose output")
		configPath  = flag.String("config", "", "Path to a TOML config file (default: platform config dir)")
		outDir      = flag.String("out", "", "Write sinks to <out>/subN.*.txt instead of stdout")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("alanppc %s\n", Version)
		os.Exit(0)
	}

	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		printHelp()
		os.Exit(0)
	}

	source, err := readSource(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *verboseMode {
		fmt.Printf("Compiling %s (static region starts at 0x%04X)\n", flag.Arg(0), cfg.Memory.StaticStart)
	}

	results := driver.Compile(source, cfg)

	if *verboseMode {
		fmt.Printf("%d sub-program(s) compiled\n", len(results))
	}

	for i, r := range results {
		if err := report(i, r, *outDir, cfg.Diagnostics.ColorOutput); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output for sub-program %d: %v\n", i, err)
			os.Exit(1)
		}
	}
}

func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-specified source file
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

// report writes the four sinks for one sub-program's result, either to
// stdout (default) or to <out>/subN.*.txt files. color selects ANSI-colored
// log rendering.
func report(index int, r driver.SubProgramResult, outDir string, color bool) error {
	sinks := []struct {
		suffix string
		body   string
	}{
		{"lex", r.LexLog.Render(color)},
		{"cst", r.ParseLog.Render(color) + "\n" + dumpCST(r)},
		{"sem", r.SemLog.Render(color) + "\n" + dumpSemantic(r)},
		{"code", codegen.RenderCode(r.Code) + "\n\n" + codegen.RenderMemoryMap(r.MemoryMap)},
	}

	if outDir == "" {
		for _, sink := range sinks {
			fmt.Printf("=== sub-program %d: %s ===\n%s\n", index, sink.suffix, sink.body)
		}
		return nil
	}

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, sink := range sinks {
		name := filepath.Join(outDir, fmt.Sprintf("sub%d.%s.txt", index, sink.suffix))
		if err := os.WriteFile(name, []byte(sink.body), 0600); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}

func dumpCST(r driver.SubProgramResult) string {
	if r.CST == nil {
		return "<no CST>"
	}
	return r.CST.Dump("")
}

func dumpSemantic(r driver.SubProgramResult) string {
	if r.AST == nil {
		return "<no AST>"
	}
	out := ast.Print(r.AST)
	if r.Symbols != nil {
		out += "\n" + r.Symbols.Render()
	}
	return out
}

func printHelp() {
	fmt.Printf(`alanppc %s - Alan++ compiler

Usage: alanppc [options] <source-file>
       alanppc [options] -

Options:
  -help           Show this help message
  -version        Show version information
  -verbose        Enable verbose output
  -config FILE    Path to a TOML config file (default: platform config dir)
  -out DIR        Write sinks to DIR/subN.*.txt instead of stdout

Examples:
  alanppc program.alan
  alanppc -out build/ program.alan
  cat program.alan | alanppc -
`, Version)
}
