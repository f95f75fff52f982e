package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/quill-ui/quill-host/diag"
	"github.com/quill-ui/quill-host/enginewasm"
	"github.com/quill-ui/quill-host/host"
	"github.com/quill-ui/quill-host/loader"
)

func main() {
	var (
		engineFile  = flag.String("engine", "", "Path to the Quill engine wasm artifact")
		sourceFile  = flag.String("source", "", "Path to a .quill file")
		surfaceID   = flag.String("surface", "main", "Surface to run the component on")
		baseURL     = flag.String("base", "", "Base URL for the compilation unit (defaults to the source file name)")
		includes    = flag.String("include", "", "Import search directories (comma-separated)")
		fonts       = flag.String("font", "", "Font URLs to register before running (comma-separated)")
		checkOnly   = flag.Bool("check", false, "Compile and report diagnostics, do not run")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *engineFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: quill-run -engine <engine.wasm> -source <file.quill> [-surface name] [-font url,...]")
		fmt.Fprintln(os.Stderr, "       quill-run -engine <engine.wasm> -source <file.quill> -check")
		fmt.Fprintln(os.Stderr, "       quill-run -engine <engine.wasm> -i  (interactive mode)")
		os.Exit(1)
	}

	log := zap.NewNop()
	if *verbose {
		var err error
		if log, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: -i requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*engineFile, *sourceFile, log); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *sourceFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -source is required")
		os.Exit(1)
	}

	if err := run(*engineFile, *sourceFile, *baseURL, *surfaceID, *includes, *fonts, *checkOnly, log); err != nil {
		var diags *diag.Error
		if errors.As(err, &diags) {
			for _, d := range diags.Diagnostics {
				fmt.Fprintf(os.Stderr, "%s: %s\n", d.Severity, d)
			}
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(engineFile, sourceFile, baseURL, surfaceID, includes, fonts string, checkOnly bool, log *zap.Logger) error {
	ctx := context.Background()

	engineWasm, err := os.ReadFile(engineFile)
	if err != nil {
		return fmt.Errorf("read engine: %w", err)
	}

	source, err := os.ReadFile(sourceFile)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	eng, err := enginewasm.New(ctx, engineWasm, enginewasm.WithLogger(log))
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	defer eng.Close(ctx)

	h := host.New(eng, host.WithLogger(log))

	for _, url := range splitList(fonts) {
		if err := h.RegisterFont(ctx, url); err != nil {
			return fmt.Errorf("register font: %w", err)
		}
		fmt.Printf("Registered font: %s\n", url)
	}

	// imports resolve relative to the source file's directory, plus any
	// explicit include directories
	baseDir := filepath.Dir(sourceFile)
	opts := []host.CompileOption{
		host.WithLoader(loader.FS(os.DirFS(baseDir), append([]string{"."}, splitList(includes)...)...)),
	}

	if baseURL == "" {
		baseURL = filepath.Base(sourceFile)
	}
	comp, err := h.CompileFromString(ctx, string(source), baseURL, opts...)
	if err != nil {
		return err
	}
	defer comp.Close()

	fmt.Printf("Compiled: %s\n", comp.Name())
	if checkOnly {
		return nil
	}

	fmt.Printf("Running %s on surface %q...\n", comp.Name(), surfaceID)
	return comp.Run(ctx, surfaceID)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
