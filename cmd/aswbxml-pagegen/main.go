// Command aswbxml-pagegen generates the code page index constants of package
// codepage from the YAML table.
//
// Usage:
//
//	aswbxml-pagegen -in specs/aswbxml.yaml -out pages_gen.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"

	"github.com/easwire/aswbxml-go/pkg/codepage"
)

func main() {
	inPath := flag.String("in", "", "Path to the code page YAML table")
	outPath := flag.String("out", "", "Output path for the generated Go file")
	pkg := flag.String("package", "codepage", "Package name of the generated file")
	flag.Parse()

	if *inPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: aswbxml-pagegen -in <table.yaml> -out <file.go> [-package <name>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*inPath, *outPath, *pkg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(inPath, outPath, pkg string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("reading table: %w", err)
	}
	raw, err := codepage.Parse(data)
	if err != nil {
		return err
	}
	// Build validates indexes, namespaces and tokens.
	if _, err := codepage.Build(raw); err != nil {
		return err
	}

	code, err := GeneratePages(raw, pkg, filepath.ToSlash(inPath))
	if err != nil {
		return err
	}
	if err := writeFormatted(outPath, code); err != nil {
		return err
	}
	fmt.Printf("  generated %s\n", outPath)
	return nil
}

// writeFormatted formats Go source code with goimports and writes it to a file.
func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Write unformatted so you can debug the generator output
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}
