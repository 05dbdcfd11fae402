// Package setuptools reads the project metadata that a setuptools-style
// `setup.py` / `setup.cfg` project declares, without running Python.
//
// Useful references:
//  - setuptools/config.py
//  - setuptools/command/egg_info.py
//  - pkg_resources/__init__.py
package setuptools

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/datawire/wheelwright/pkg/python"
)

// Metadata is the core project metadata of a setuptools project.  The field
// names follow the PKG-INFO header names rather than the `setup()` keyword
// names (so `Summary` is `setup(description=...)`, and `HomePage` is
// `setup(url=...)`).
type Metadata struct {
	Name           string
	Version        string
	Summary        string
	License        string
	HomePage       string
	Author         string
	RequiresPython string

	// Source is the file that supplied the metadata, relative to the
	// project directory.
	Source string
}

// Discover reads project metadata from a setuptools-style source directory.
//
// Sources are tried in order of preference for static metadata:
//
//  1. `PKG-INFO` in the project root (an unpacked sdist),
//  2. `*.egg-info/PKG-INFO` left behind by a previous build,
//  3. the `[metadata]` section of `setup.cfg`,
//  4. a static scrape of literal keyword arguments in `setup.py`.
//
// A source that does not exist, or that does not yield a project name, is
// skipped; a source that exists but cannot be parsed is an error.
func Discover(dir string) (*Metadata, error) {
	relNames := []string{"PKG-INFO"}
	eggInfos, err := filepath.Glob(filepath.Join(dir, "*.egg-info", "PKG-INFO"))
	if err != nil {
		return nil, fmt.Errorf("setuptools.Discover: %w", err)
	}
	sort.Strings(eggInfos)
	for _, eggInfo := range eggInfos {
		relName, err := filepath.Rel(dir, eggInfo)
		if err != nil {
			return nil, fmt.Errorf("setuptools.Discover: %w", err)
		}
		relNames = append(relNames, relName)
	}
	relNames = append(relNames, "setup.cfg", "setup.py")

	for _, relName := range relNames {
		filename := filepath.Join(dir, relName)
		if _, err := os.Stat(filename); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("setuptools.Discover: %w", err)
		}
		var metadata *Metadata
		var err error
		switch filepath.Base(filename) {
		case "setup.cfg":
			metadata, err = readSetupCfg(filename)
		case "setup.py":
			metadata, err = readSetupPy(filename)
		default:
			metadata, err = readPKGINFO(filename)
		}
		if err != nil {
			return nil, fmt.Errorf("setuptools.Discover: %w", err)
		}
		if metadata.Name == "" {
			continue
		}
		metadata.Source = relName
		return metadata, nil
	}
	return nil, fmt.Errorf("setuptools.Discover: no project metadata found in %q", dir)
}

func readPKGINFO(filename string) (*Metadata, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	hdr, err := python.ReadMetadata(file)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", filename, err)
	}
	return &Metadata{
		Name:           hdr.Get("Name"),
		Version:        hdr.Get("Version"),
		Summary:        hdr.Get("Summary"),
		License:        hdr.Get("License"),
		HomePage:       hdr.Get("Home-page"),
		Author:         hdr.Get("Author"),
		RequiresPython: hdr.Get("Requires-Python"),
	}, nil
}

func readSetupCfg(filename string) (*Metadata, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config, err := python.NewConfigParser().Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", filename, err)
	}
	metadata := config["metadata"]
	return &Metadata{
		Name:     metadata["name"],
		Version:  metadata["version"],
		Summary:  metadata["description"],
		License:  metadata["license"],
		HomePage: metadata["url"],
		Author:   metadata["author"],
		// python_requires is an `[options]` key, not a `[metadata]` key.
		RequiresPython: config["options"]["python_requires"],
	}, nil
}

// reSetupKwarg matches a `keyword="literal"` argument on its own line of a
// `setup()` call, in either quote style.  Computed values (variables, function
// calls) are beyond a static scrape and simply don't match.
var reSetupKwarg = regexp.MustCompile(`(?m)^\s*([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(?:"([^"]*)"|'([^']*)')\s*,?\s*$`)

func readSetupPy(filename string) (*Metadata, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	kwargs := make(map[string]string)
	for _, match := range reSetupKwarg.FindAllStringSubmatch(string(content), -1) {
		key := match[1]
		val := match[2]
		if val == "" {
			val = match[3]
		}
		if _, exists := kwargs[key]; !exists {
			kwargs[key] = val
		}
	}
	return &Metadata{
		Name:           kwargs["name"],
		Version:        kwargs["version"],
		Summary:        kwargs["description"],
		License:        kwargs["license"],
		HomePage:       kwargs["url"],
		Author:         kwargs["author"],
		RequiresPython: kwargs["python_requires"],
	}, nil
}
