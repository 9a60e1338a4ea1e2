// SPDX-License-Identifier: MIT

package salt2

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Environment variables consulted by ResolveModelPath.
const (
	EnvModelPath  = "SALT2_MODELPATH"
	EnvSNDataRoot = "SNDATA_ROOT"
)

// Variant is what a model version name implies about its files.
type Variant struct {
	// Name is the version without any directory part.
	Name string
	// Prefix starts every table file name ("salt2" or "salt3").
	Prefix string
	// Retrained drops the stretch-ratio term of the error model.
	Retrained bool
	// Relaxed widens the template refinement check.
	Relaxed bool
}

// VariantOf derives the file prefix and model flags from a version name.
func VariantOf(version string) Variant {
	name := filepath.Base(version)
	v := Variant{Name: name, Prefix: "salt2"}
	if strings.Contains(name, "SALT3") {
		v.Prefix, v.Retrained = "salt3", true
	}
	v.Relaxed = strings.Contains(name, "P18")

	return v
}

// ResolveModelPath returns the model directory of version.
// A version containing "/" is used as a path. Otherwise the directory is
// $SALT2_MODELPATH/<version> when that variable is set, else
// $SNDATA_ROOT/models/SALT2/<version>.
func ResolveModelPath(version string) (string, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return "", fmt.Errorf("ResolveModelPath: empty version: %w", ErrModelPath)
	}
	if strings.Contains(version, "/") {
		return filepath.Clean(version), nil
	}
	if p := os.Getenv(EnvModelPath); p != "" {
		return filepath.Join(p, version), nil
	}
	root := os.Getenv(EnvSNDataRoot)
	if root == "" {
		return "", fmt.Errorf("ResolveModelPath(%s): neither %s nor %s is set: %w",
			version, EnvModelPath, EnvSNDataRoot, ErrModelPath)
	}

	return filepath.Join(root, "models", "SALT2", version), nil
}
