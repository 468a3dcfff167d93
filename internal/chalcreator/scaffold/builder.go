// Package scaffold lays out a challenge directory on disk.
//
// A run is two stages over a validated *challenge.Descriptor:
//
//	root, err := b.BuildOuterStructure(d)          // root, subdirs, readme, scripts
//	err = b.PopulateInnerContent(ctx, d, root)     // Dockerfile, flag, solution template
//
// Create runs both. Nothing is rolled back on failure unless
// Options.CleanupOnFailure is set, and even then removal is best effort.
package scaffold

import (
	"context"
	"os"
	"path/filepath"

	"github.com/canopus/chalcreator/internal/chalcreator/challenge"
	"github.com/canopus/chalcreator/internal/chalcreator/errors"
	"github.com/canopus/chalcreator/internal/chalcreator/fetch"
	"github.com/canopus/chalcreator/internal/chalcreator/fileutil"
	"github.com/canopus/chalcreator/internal/log"
)

// Options tunes a Builder
type Options struct {
	// CleanupOnFailure removes a partially built root after a failure
	CleanupOnFailure bool
}

// Builder creates challenge layouts
type Builder struct {
	fetcher fetch.Fetcher
	opts    Options
}

// NewBuilder returns a Builder that downloads the solution template through fetcher
func NewBuilder(fetcher fetch.Fetcher, opts Options) *Builder {
	return &Builder{fetcher: fetcher, opts: opts}
}

// Create builds the complete layout for d and returns the root path.
// On failure the returned path is the root when it had been created.
func (b *Builder) Create(ctx context.Context, d *challenge.Descriptor) (string, error) {
	root, err := b.BuildOuterStructure(d)
	if err == nil {
		err = b.PopulateInnerContent(ctx, d, root)
	}
	if err != nil && root != "" && b.opts.CleanupOnFailure {
		b.cleanup(root)
	}
	return root, err
}

// BuildOuterStructure creates the root directory, its subdirectories, the
// readme and, in docker mode, the helper scripts.
//
// The returned root is empty only when the root itself could not be created;
// otherwise it is set even alongside an error.
func (b *Builder) BuildOuterStructure(d *challenge.Descriptor) (string, error) {
	root := d.Root()

	if err := fileutil.CreateDir(root); err != nil {
		return "", err
	}
	log.Info("Challenge directory %s created", root)

	for _, dir := range Subdirs() {
		path := filepath.Join(root, dir)
		if err := fileutil.CreateDir(path); err != nil {
			return root, err
		}
		log.Created("subdirectory", path)
	}

	readme := filepath.Join(root, ReadmeFile)
	if err := fileutil.CreateEmptyFile(readme); err != nil {
		return root, err
	}
	log.Created("file", readme)

	if !d.Docker() {
		return root, nil
	}

	scripts := []struct {
		name    string
		content string
	}{
		{BuildScript, BuildScriptContent(d)},
		{RunScript, RunScriptContent(d)},
	}
	for _, s := range scripts {
		path := filepath.Join(root, s.name)
		if err := fileutil.WriteExecutable(path, s.content); err != nil {
			return root, err
		}
		log.Created("script", path)
	}

	return root, nil
}

// PopulateInnerContent creates the files inside the subdirectories of root.
// The flag placeholder is created whether or not docker mode is on.
func (b *Builder) PopulateInnerContent(ctx context.Context, d *challenge.Descriptor, root string) error {
	setup := filepath.Join(root, SetupDir)

	if d.Docker() {
		path := filepath.Join(setup, DockerfileFile)
		if err := fileutil.CreateEmptyFile(path); err != nil {
			return err
		}
		log.Created("file", path)
	}

	flag := filepath.Join(setup, FlagFile)
	if err := fileutil.CreateEmptyFile(flag); err != nil {
		return err
	}
	log.Created("file", flag)

	if d.Category() != challenge.Pwn {
		return nil
	}
	return b.downloadSolution(ctx, filepath.Join(root, SolutionDir, SolutionFile))
}

func (b *Builder) downloadSolution(ctx context.Context, dest string) error {
	if b.fetcher == nil {
		return errors.Wrap(errors.ErrFetch, "no template fetcher configured")
	}

	body, err := b.fetcher.Fetch(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	n, err := fileutil.CreateFrom(dest, body)
	if err != nil {
		var rerr *fileutil.ReadError
		if errors.As(err, &rerr) {
			// The body broke off mid-stream; the partial file stays.
			return &errors.FetchError{URL: b.fetcher.URL(), Err: rerr.Err}
		}
		return err
	}
	log.Info("Downloaded solve template to %s", dest)
	log.InfoH3("%d bytes from %s", n, b.fetcher.URL())
	return nil
}

func (b *Builder) cleanup(root string) {
	if err := os.RemoveAll(root); err != nil {
		log.Error("Failed to clean up %s: %v", root, err)
		return
	}
	log.Info("Removed partially created %s", root)
}
