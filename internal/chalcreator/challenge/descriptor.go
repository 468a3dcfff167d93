// Package challenge turns raw user input into a validated challenge descriptor.
//
// Assemble never touches the filesystem, so every rule here can be tested
// without I/O.
package challenge

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/canopus/chalcreator/internal/chalcreator/errors"
)

// Params holds the raw, unvalidated values collected from the command line
type Params struct {
	Name     string
	Author   string
	Category string
	BaseDir  string
	Docker   bool
	Verbose  bool
}

// Descriptor is the validated, read-only description of one challenge
type Descriptor struct {
	name     string
	author   string
	category Category
	baseDir  string
	docker   bool
	verbose  bool
}

func (d *Descriptor) Name() string       { return d.name }
func (d *Descriptor) Author() string     { return d.author }
func (d *Descriptor) Category() Category { return d.category }
func (d *Descriptor) BaseDir() string    { return d.baseDir }
func (d *Descriptor) Docker() bool       { return d.docker }
func (d *Descriptor) Verbose() bool      { return d.verbose }

// Root is the path of the challenge root directory
func (d *Descriptor) Root() string {
	return filepath.Join(d.baseDir, d.name)
}

// Image is the docker image tag used by the helper scripts
func (d *Descriptor) Image() string {
	return d.author + "/" + d.name
}

type fieldProblem struct {
	field  string
	reason string
}

// Assemble validates p and builds a Descriptor.
// On failure it returns a *errors.ValidationError naming the first bad field.
func Assemble(p Params) (*Descriptor, error) {
	var problems []fieldProblem

	if reason := checkSegment(p.Name); reason != "" {
		problems = append(problems, fieldProblem{"name", reason})
	} else if p.Name == "." || p.Name == ".." {
		problems = append(problems, fieldProblem{"name", fmt.Sprintf("%q is not a usable directory name", p.Name)})
	}

	if reason := checkSegment(p.Author); reason != "" {
		problems = append(problems, fieldProblem{"author", reason})
	}

	category, ok := ParseCategory(p.Category)
	if !ok {
		reason := fmt.Sprintf("%q is not one of %s", p.Category, strings.Join(CategoryNames(), ", "))
		if strings.TrimSpace(p.Category) == "" {
			reason = "must not be empty"
		}
		problems = append(problems, fieldProblem{"type", reason})
	}

	baseDir := p.BaseDir
	if baseDir == "" {
		baseDir = "."
	}
	if strings.ContainsRune(baseDir, 0) {
		problems = append(problems, fieldProblem{"dir", "must not contain a NUL byte"})
	}

	if len(problems) > 0 {
		verr := &errors.ValidationError{Field: problems[0].field, Reason: problems[0].reason}
		for _, pr := range problems[1:] {
			verr.Others = append(verr.Others, fmt.Sprintf("invalid %s: %s", pr.field, pr.reason))
		}
		return nil, verr
	}

	return &Descriptor{
		name:     p.Name,
		author:   p.Author,
		category: category,
		baseDir:  filepath.Clean(baseDir),
		docker:   p.Docker,
		verbose:  p.Verbose,
	}, nil
}

// checkSegment returns a non-empty reason when s cannot be used as a single
// path element.
func checkSegment(s string) string {
	switch {
	case strings.TrimSpace(s) == "":
		return "must not be empty"
	case strings.ContainsAny(s, `/\`), strings.ContainsRune(s, filepath.Separator):
		return "must not contain path separators"
	case strings.ContainsRune(s, 0):
		return "must not contain a NUL byte"
	}
	return ""
}
