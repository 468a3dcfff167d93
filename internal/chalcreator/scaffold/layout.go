package scaffold

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/canopus/chalcreator/internal/chalcreator/challenge"
)

// Subdirectories of every challenge root, in creation order
const (
	SetupDir    = "setup"
	PublicDir   = "public"
	SolutionDir = "solution"
)

// Fixed file names
const (
	ReadmeFile     = "readme"
	BuildScript    = "docker_build.sh"
	RunScript      = "docker_run.sh"
	DockerfileFile = "Dockerfile"
	FlagFile       = "flag"
	SolutionFile   = "solution.py"

	scriptShebang = "#!/usr/bin/bash\n"
	portMapping   = "69666:69666"
)

// Subdirs returns the subdirectory names in creation order
func Subdirs() []string {
	return []string{SetupDir, PublicDir, SolutionDir}
}

// BuildScriptContent is the body of docker_build.sh.
// Author and name are interpolated verbatim.
func BuildScriptContent(d *challenge.Descriptor) string {
	return fmt.Sprintf("%sdocker build -t %s %s/", scriptShebang, d.Image(), SetupDir)
}

// RunScriptContent is the body of docker_run.sh
func RunScriptContent(d *challenge.Descriptor) string {
	return fmt.Sprintf("%sdocker run -p %s -d %s", scriptShebang, portMapping, d.Image())
}

// Entry kinds
const (
	KindDir        = "dir"
	KindFile       = "file"
	KindExecutable = "executable"
	KindDownload   = "download"
)

// Entry is one filesystem entry a run creates
type Entry struct {
	Path   string `yaml:"path"`
	Kind   string `yaml:"kind"`
	Source string `yaml:"source,omitempty"`
}

// Layout is everything a run creates, in creation order
type Layout struct {
	Root     string  `yaml:"root"`
	Category string  `yaml:"category"`
	Docker   bool    `yaml:"docker"`
	Entries  []Entry `yaml:"entries"`
}

// Plan computes the layout a run for d would produce. Paths in Entries are
// relative to Root. templateURL is recorded for the Pwn download entry.
func Plan(d *challenge.Descriptor, templateURL string) Layout {
	l := Layout{
		Root:     d.Root(),
		Category: d.Category().String(),
		Docker:   d.Docker(),
	}

	for _, dir := range Subdirs() {
		l.Entries = append(l.Entries, Entry{Path: dir, Kind: KindDir})
	}
	l.Entries = append(l.Entries, Entry{Path: ReadmeFile, Kind: KindFile})
	if d.Docker() {
		l.Entries = append(l.Entries,
			Entry{Path: BuildScript, Kind: KindExecutable},
			Entry{Path: RunScript, Kind: KindExecutable},
			Entry{Path: filepath.Join(SetupDir, DockerfileFile), Kind: KindFile},
		)
	}
	l.Entries = append(l.Entries, Entry{Path: filepath.Join(SetupDir, FlagFile), Kind: KindFile})
	if d.Category() == challenge.Pwn {
		l.Entries = append(l.Entries, Entry{
			Path:   filepath.Join(SolutionDir, SolutionFile),
			Kind:   KindDownload,
			Source: templateURL,
		})
	}
	return l
}

// YAML renders the layout
func (l Layout) YAML() ([]byte, error) {
	return yaml.Marshal(l)
}
