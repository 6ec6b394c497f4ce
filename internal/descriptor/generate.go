package descriptor

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cbroglie/mustache"
	"github.com/cwlbump/cwlbump/internal/sysutil"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// DefaultTemplateSuffix identifies template files in a templates directory.
const DefaultTemplateSuffix = ".mustache"

// Templates whose base name starts with partialPrefix are only available as
// partials, e.g. "_base.mustache" is included with {{> base}}.
const partialPrefix = "_"

// GenerateOptions configures Generate.
type GenerateOptions struct {
	TemplatesDir string
	ToolsDir     string
	Version      string
	// Suffix defaults to DefaultTemplateSuffix.
	Suffix string
}

// Result describes a descriptor written by Generate.
type Result struct {
	Template string
	Path     string
	Changed  bool
}

// Templates returns the sorted paths of all non-partial templates in dir.
func Templates(localFS afero.Fs, dir string, suffix string) (templates []string, err error) {
	matches, err := afero.Glob(localFS, filepath.Join(dir, "*"+suffix))
	if err != nil {
		return
	}
	for _, match := range matches {
		if strings.HasPrefix(filepath.Base(match), partialPrefix) {
			continue
		}
		var isDir bool
		isDir, err = afero.IsDir(localFS, match)
		if err != nil {
			return
		}
		if !isDir {
			templates = append(templates, match)
		}
	}
	sort.Strings(templates)
	return
}

// Generate renders every template in opts.TemplatesDir with the given version
// and writes the result to opts.ToolsDir, named after the template without
// its suffix. Existing descriptors are overwritten.
func Generate(
	localFS afero.Fs, logger logrus.FieldLogger, opts GenerateOptions,
) (results []Result, err error) {
	if opts.Suffix == "" {
		opts.Suffix = DefaultTemplateSuffix
	}

	templates, err := Templates(localFS, opts.TemplatesDir, opts.Suffix)
	if err != nil {
		return
	}
	if len(templates) == 0 {
		logger.Warnf("no %s templates found in %s", opts.Suffix, opts.TemplatesDir)
		return
	}

	err = localFS.MkdirAll(opts.ToolsDir, 0755)
	if err != nil {
		return
	}

	partials := partialProvider{
		fs:     localFS,
		dir:    opts.TemplatesDir,
		suffix: opts.Suffix,
	}
	data := map[string]string{"version": opts.Version}

	for _, templatePath := range templates {
		result := Result{
			Template: templatePath,
			Path: filepath.Join(
				opts.ToolsDir,
				strings.TrimSuffix(filepath.Base(templatePath), opts.Suffix),
			),
		}

		var rendered []byte
		rendered, err = render(localFS, templatePath, partials, data)
		if err != nil {
			return
		}

		var existing []byte
		existing, err = afero.ReadFile(localFS, result.Path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			err = nil
			result.Changed = true
		case err != nil:
			return
		default:
			result.Changed = !bytes.Equal(existing, rendered)
		}

		if result.Changed {
			err = sysutil.WriteFile(localFS, result.Path, rendered, 0644)
			if err != nil {
				return
			}
		}
		logger.WithFields(logrus.Fields{
			"template": templatePath,
			"changed":  result.Changed,
		}).Debugf("rendered %s", result.Path)

		results = append(results, result)
	}

	return
}

func render(
	localFS afero.Fs, templatePath string, partials mustache.PartialProvider,
	data map[string]string,
) ([]byte, error) {
	source, err := afero.ReadFile(localFS, templatePath)
	if err != nil {
		return nil, err
	}
	template, err := mustache.ParseStringPartials(string(source), partials)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", templatePath, err)
	}
	rendered, err := template.Render(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", templatePath, err)
	}
	return []byte(rendered), nil
}

// partialProvider resolves {{> name}} to the file _name<suffix> next to the
// templates.
type partialProvider struct {
	fs     afero.Fs
	dir    string
	suffix string
}

func (p partialProvider) Get(name string) (string, error) {
	path := filepath.Join(p.dir, partialPrefix+name+p.suffix)
	contents, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return "", fmt.Errorf("partial %s: %w", name, err)
	}
	return string(contents), nil
}
