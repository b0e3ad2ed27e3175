// Package bundle writes generated DCP packages to disk.
//
// Two layouts are produced for every package: a directory holding the three
// XML documents plus the essence reference list (what a downstream DCP tool
// ingests), and a single flattened text file mirroring the portal's
// downloadable bundle. Writes into the shared output directory are
// serialized with a lock file so concurrent invocations cannot interleave
// partial packages.
package bundle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"adpod/internal/dcp"
)

const lockFileName = ".adpod.lock"

// Paths reports where a package's artifacts were written.
type Paths struct {
	Dir           string
	AssetMap      string
	PKL           string
	CPL           string
	MXFReferences string
	FlatBundle    string
}

// Write stores the package under outputDir and returns the written paths.
// An existing package directory for the same pod name is overwritten; the
// deterministic pod name means identical configurations land in the same
// place.
func Write(pkg *dcp.Package, outputDir string) (Paths, error) {
	if pkg == nil {
		return Paths{}, fmt.Errorf("package is nil")
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("create output directory: %w", err)
	}

	lock := flock.New(filepath.Join(outputDir, lockFileName))
	if err := lock.Lock(); err != nil {
		return Paths{}, fmt.Errorf("lock output directory: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	dir := filepath.Join(outputDir, pkg.PodName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("create package directory: %w", err)
	}

	paths := Paths{
		Dir:           dir,
		AssetMap:      filepath.Join(dir, "ASSETMAP.xml"),
		PKL:           filepath.Join(dir, fmt.Sprintf("PKL_%s.xml", pkg.PodName)),
		CPL:           filepath.Join(dir, fmt.Sprintf("CPL_%s.xml", pkg.PodName)),
		MXFReferences: filepath.Join(dir, "MXF_REFERENCES.txt"),
		FlatBundle:    filepath.Join(outputDir, fmt.Sprintf("%s_package.txt", pkg.PodName)),
	}

	files := []struct {
		path    string
		content string
	}{
		{paths.AssetMap, pkg.AssetMap},
		{paths.PKL, pkg.PKL},
		{paths.CPL, pkg.CPL},
		{paths.MXFReferences, strings.Join(pkg.MXFReferences, "\n") + "\n"},
		{paths.FlatBundle, Flatten(pkg)},
	}
	for _, file := range files {
		if err := os.WriteFile(file.path, []byte(file.content), 0o644); err != nil {
			return Paths{}, fmt.Errorf("write %s: %w", filepath.Base(file.path), err)
		}
	}

	return paths, nil
}

// Flatten renders the single-file text form of a package.
func Flatten(pkg *dcp.Package) string {
	var b strings.Builder

	fmt.Fprintf(&b, "DCP Package: %s\n", pkg.PodName)
	b.WriteString("=====================================\n\n")

	b.WriteString("ASSETMAP.xml\n------------\n")
	b.WriteString(pkg.AssetMap)
	b.WriteString("\n\n")

	b.WriteString("PKL.xml\n-------\n")
	b.WriteString(pkg.PKL)
	b.WriteString("\n\n")

	b.WriteString("CPL.xml\n-------\n")
	b.WriteString(pkg.CPL)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "MXF References (%d)\n--------------\n", len(pkg.MXFReferences))
	b.WriteString(strings.Join(pkg.MXFReferences, "\n"))
	b.WriteString("\n")

	return b.String()
}
