package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// LoadExtension reads and validates extension.json in dir.
func LoadExtension(dir string) (*ExtensionParams, error) {
	return ParseExtension(filepath.Join(dir, ExtensionFile))
}

// ParseExtension reads and validates an extension.json file.
func ParseExtension(path string) (*ExtensionParams, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	issues, err := validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if len(issues) > 0 {
		return nil, &ValidationError{File: path, Issues: issues}
	}

	var ext ExtensionParams
	if err := json.Unmarshal(data, &ext); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := checkConstraints("php", ext.PHP); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := checkConstraints("acceptableVersions", ext.AcceptableVersions); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &ext, nil
}

// PackagePath returns test-package.json when it exists in dir, package.json
// otherwise.
func PackagePath(dir string) string {
	test := filepath.Join(dir, TestPackageFile)
	if _, err := os.Stat(test); err == nil {
		return test
	}
	return filepath.Join(dir, PackageFile)
}

// LoadPackage reads the package metadata of the project in dir.
func LoadPackage(dir string) (*PackageParams, error) {
	path := PackagePath(dir)
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var pkg PackageParams
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := checkVersion(pkg.Version); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &pkg, nil
}

// readFile reads a JSON file, tolerating comments and trailing commas.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return jsonc.ToJSON(data), nil
}
