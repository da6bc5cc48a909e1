package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LockfileName is the file written beside package.yml after dependency
// resolution.
const LockfileName = "package.lock"

// Lockfile captures the resolved dependency graph for a bundle so later
// runs reuse the same revisions.
type Lockfile struct {
	Root     string          `yaml:"root"`
	Tool     string          `yaml:"tool,omitempty"`
	Packages []LockedPackage `yaml:"packages"`
}

// LockedPackage records one resolved bundle.
type LockedPackage struct {
	Name     string `yaml:"name"`
	Version  string `yaml:"version,omitempty"`
	Source   string `yaml:"source"`
	Ref      string `yaml:"ref,omitempty"`
	Revision string `yaml:"revision,omitempty"`
	Path     string `yaml:"path,omitempty"`
}

// NewLockfile builds a lockfile for the given root bundle.
func NewLockfile(root string, packages []LockedPackage) *Lockfile {
	lock := &Lockfile{
		Root:     root,
		Packages: append([]LockedPackage(nil), packages...),
	}
	lock.normalize()
	return lock
}

// LoadLockfile reads package.lock from disk. A missing file is not an
// error; it returns (nil, nil) so callers can treat it as absent.
func LoadLockfile(path string) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lockfile: read %s: %w", path, err)
	}
	var lock Lockfile
	if err := yaml.Unmarshal(data, &lock); err != nil {
		return nil, fmt.Errorf("lockfile: parse %s: %w", path, err)
	}
	lock.normalize()
	return &lock, nil
}

// Write serializes the lockfile next to the manifest directory given.
func (l *Lockfile) Write(dir string) error {
	if l == nil {
		return fmt.Errorf("lockfile: nothing to write")
	}
	l.normalize()
	path := filepath.Join(dir, LockfileName)

	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("lockfile: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("lockfile: encode: %w", err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("lockfile: write %s: %w", path, err)
	}
	return nil
}

// Lookup returns the locked entry for a bundle name, if present.
func (l *Lockfile) Lookup(name string) (LockedPackage, bool) {
	if l == nil {
		return LockedPackage{}, false
	}
	for _, pkg := range l.Packages {
		if pkg.Name == name {
			return pkg, true
		}
	}
	return LockedPackage{}, false
}

func (l *Lockfile) normalize() {
	sort.Slice(l.Packages, func(i, j int) bool {
		if l.Packages[i].Name != l.Packages[j].Name {
			return l.Packages[i].Name < l.Packages[j].Name
		}
		return l.Packages[i].Source < l.Packages[j].Source
	})
}
