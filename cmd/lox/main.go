package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/interpreter"
	"lox/interpreter-go/pkg/runtime"
)

const toolVersion = "0.1.0"

const manifestName = "package.yml"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 2
	}
	switch args[0] {
	case "run":
		return cmdRun(args[1:], stdout, stderr)
	case "deps":
		return cmdDeps(args[1:], stdout, stderr)
	case "version", "--version", "-v":
		fmt.Fprintf(stdout, "lox %s\n", toolVersion)
		return 0
	case "help", "--help", "-h":
		printUsage(stdout)
		return 0
	default:
		// A bare module path is shorthand for run.
		if strings.HasSuffix(args[0], ".json") {
			return cmdRun(args, stdout, stderr)
		}
		fmt.Fprintf(stderr, "lox: unknown command %q\n", args[0])
		printUsage(stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: lox <command> [arguments]

Commands:
  run [module.json | dir]   evaluate a compiled module (or a bundle's entry)
  deps install              fetch dependencies listed in package.yml
  deps update [names...]    refetch dependencies and rewrite package.lock
  version                   print the tool version

A bare module path (lox main.json) is shorthand for run.
`)
}

func cmdRun(args []string, stdout, stderr io.Writer) int {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}

	modulePath, err := resolveModulePath(target)
	if err != nil {
		fmt.Fprintf(stderr, "lox: %v\n", err)
		return 2
	}

	program, err := interpreter.LoadProgramFile(modulePath)
	if err != nil {
		fmt.Fprintf(stderr, "lox: %v\n", err)
		return 2
	}

	interp := interpreter.NewWithOutput(stdout)
	if _, err := interp.EvaluateProgram(program); err != nil {
		var runtimeErr *runtime.Error
		if errors.As(err, &runtimeErr) {
			fmt.Fprintf(stderr, "runtime error: %s\n", runtimeErr.Message)
		} else {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 1
	}
	return 0
}

// resolveModulePath maps a run target onto a module file. A .json path
// is used directly; anything else is treated as a bundle directory and
// resolved through its manifest entry.
func resolveModulePath(target string) (string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return "", fmt.Errorf("cannot open %s: %w", target, err)
	}
	if !info.IsDir() {
		if strings.HasSuffix(target, ".json") {
			return target, nil
		}
		return "", fmt.Errorf("%s is not a module file (.json) or bundle directory", target)
	}
	manifestPath, err := findManifest(target)
	if err != nil {
		return "", err
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		return "", err
	}
	return manifest.EntryPath()
}

// findManifest walks upward from dir until it finds package.yml.
func findManifest(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(current, manifestName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no %s found in %s or any parent directory", manifestName, dir)
		}
		current = parent
	}
}

func cmdDeps(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "lox: deps requires a subcommand (install or update)")
		return 2
	}
	var update bool
	var only []string
	switch args[0] {
	case "install":
	case "update":
		// With no names, every dependency is refetched.
		update = true
		only = args[1:]
	default:
		fmt.Fprintf(stderr, "lox: unknown deps subcommand %q\n", args[0])
		return 2
	}

	manifestPath, err := findManifest(".")
	if err != nil {
		fmt.Fprintf(stderr, "lox: %v\n", err)
		return 2
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		fmt.Fprintf(stderr, "lox: %v\n", err)
		return 2
	}

	resolver, err := newDepResolver()
	if err != nil {
		fmt.Fprintf(stderr, "lox: %v\n", err)
		return 1
	}
	lock, err := resolver.Resolve(manifest, depUpdates(update, only), stdout)
	if err != nil {
		fmt.Fprintf(stderr, "lox: %v\n", err)
		return 1
	}
	if err := lock.Write(filepath.Dir(manifestPath)); err != nil {
		fmt.Fprintf(stderr, "lox: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "resolved %d dependencies\n", len(lock.Packages))
	return 0
}
