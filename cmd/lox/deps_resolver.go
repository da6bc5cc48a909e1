package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"lox/interpreter-go/pkg/driver"
)

// depResolver fetches the bundles named in a manifest into the shared
// cache and records what it resolved.
type depResolver struct {
	cacheDir string
}

func newDepResolver() (*depResolver, error) {
	home, err := resolveLoxHome()
	if err != nil {
		return nil, err
	}
	cacheDir := filepath.Join(home, "cache")
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("deps: create cache %s: %w", cacheDir, err)
	}
	return &depResolver{cacheDir: cacheDir}, nil
}

// resolveLoxHome returns the tool's home directory. LOX_HOME overrides
// the default of ~/.lox.
func resolveLoxHome() (string, error) {
	if override := os.Getenv("LOX_HOME"); override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("deps: determine home directory: %w", err)
	}
	return filepath.Join(home, ".lox"), nil
}

// depUpdates reports, per dependency name, whether its cached checkout
// should be discarded and refetched.
func depUpdates(update bool, only []string) func(name string) bool {
	if !update {
		return func(string) bool { return false }
	}
	if len(only) == 0 {
		return func(string) bool { return true }
	}
	set := make(map[string]bool, len(only))
	for _, name := range only {
		set[name] = true
	}
	return func(name string) bool { return set[name] }
}

// Resolve fetches every dependency in the manifest and returns the
// lockfile describing what was pinned. Dependencies selected by
// shouldUpdate have their cached git checkouts discarded and refetched.
func (r *depResolver) Resolve(manifest *driver.Manifest, shouldUpdate func(name string) bool, out io.Writer) (*driver.Lockfile, error) {
	names := make([]string, 0, len(manifest.Dependencies))
	for name := range manifest.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)

	var packages []driver.LockedPackage
	for _, name := range names {
		dep := manifest.Dependencies[name]
		locked, err := r.resolveDependency(name, dep, shouldUpdate(name), out)
		if err != nil {
			return nil, fmt.Errorf("deps: %s: %w", name, err)
		}
		packages = append(packages, locked)
	}

	lock := driver.NewLockfile(manifest.Name, packages)
	lock.Tool = "lox " + toolVersion
	return lock, nil
}

func (r *depResolver) resolveDependency(name string, dep *driver.DependencySpec, update bool, out io.Writer) (driver.LockedPackage, error) {
	switch {
	case dep.Path != "":
		return r.resolvePathDependency(name, dep)
	case dep.Git != "":
		return r.resolveGitDependency(name, dep, update, out)
	default:
		return driver.LockedPackage{}, fmt.Errorf("no source configured")
	}
}

func (r *depResolver) resolvePathDependency(name string, dep *driver.DependencySpec) (driver.LockedPackage, error) {
	abs, err := filepath.Abs(dep.Path)
	if err != nil {
		return driver.LockedPackage{}, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return driver.LockedPackage{}, err
	}
	if !info.IsDir() {
		return driver.LockedPackage{}, fmt.Errorf("%s is not a directory", abs)
	}
	return driver.LockedPackage{
		Name:   name,
		Source: "path",
		Path:   abs,
	}, nil
}

func (r *depResolver) resolveGitDependency(name string, dep *driver.DependencySpec, update bool, out io.Writer) (driver.LockedPackage, error) {
	checkout := filepath.Join(r.cacheDir, name)
	if update {
		if err := os.RemoveAll(checkout); err != nil {
			return driver.LockedPackage{}, fmt.Errorf("clear cached checkout: %w", err)
		}
	}

	repo, err := git.PlainOpen(checkout)
	if err != nil {
		fmt.Fprintf(out, "fetching %s from %s\n", name, dep.Git)
		repo, err = cloneDependency(checkout, dep)
		if err != nil {
			return driver.LockedPackage{}, fmt.Errorf("clone %s: %w", dep.Git, err)
		}
	}

	head, err := repo.Head()
	if err != nil {
		return driver.LockedPackage{}, fmt.Errorf("inspect %s: %w", checkout, err)
	}
	return driver.LockedPackage{
		Name:     name,
		Source:   dep.Git,
		Ref:      dep.Ref,
		Revision: head.Hash().String(),
		Path:     checkout,
	}, nil
}

// cloneDependency clones the dependency, trying the ref first as a
// branch and then as a tag.
func cloneDependency(checkout string, dep *driver.DependencySpec) (*git.Repository, error) {
	if dep.Ref == "" {
		return git.PlainClone(checkout, false, &git.CloneOptions{URL: dep.Git, Depth: 1})
	}
	refs := []plumbing.ReferenceName{
		plumbing.NewBranchReferenceName(dep.Ref),
		plumbing.NewTagReferenceName(dep.Ref),
	}
	var lastErr error
	for _, ref := range refs {
		repo, err := git.PlainClone(checkout, false, &git.CloneOptions{
			URL:           dep.Git,
			Depth:         1,
			ReferenceName: ref,
			SingleBranch:  true,
		})
		if err == nil {
			return repo, nil
		}
		lastErr = err
		_ = os.RemoveAll(checkout)
	}
	return nil, lastErr
}
