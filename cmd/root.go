/*
Copyright © 2023 canopus
*/

// Package cmd provides command-line interface commands for chalcreator
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/canopus/chalcreator/internal/chalcreator/challenge"
	"github.com/canopus/chalcreator/internal/chalcreator/fetch"
	"github.com/canopus/chalcreator/internal/chalcreator/scaffold"
	"github.com/canopus/chalcreator/internal/log"
)

// createOptions holds the raw flag values of the root command
type createOptions struct {
	name        string
	author      string
	category    string
	dir         string
	docker      bool
	verbose     bool
	dryRun      bool
	interactive bool
	cleanup     bool
	templateURL string
}

var opts createOptions

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chalcreator",
	Short: "Scaffold the directory layout of a CTF challenge",
	Long: `chalcreator - create a standard CTF challenge skeleton

Creates <dir>/<name>/ containing:
  readme
  setup/flag
  public/
  solution/

With --docker it also writes setup/Dockerfile plus executable
docker_build.sh and docker_run.sh helpers. For the Pwn category the
solution template is downloaded to solution/solution.py.

An existing challenge directory is never overwritten. A failed run leaves
whatever it already created in place unless --cleanup is given.`,
	Example: `  # Web challenge with docker helpers
  chalcreator -n chal1 -a canopus -t Web -d

  # Pwn challenge under ./challenges, with progress output
  chalcreator -n heapnote -a canopus -t Pwn -p ./challenges -v

  # Show what would be created without touching the disk
  chalcreator -n chal1 -a canopus -t Pwn -d --dry-run

  # Ask for anything missing
  chalcreator -i`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			log.SetDebugMode(true)
			log.Debug("Debug mode enabled")
		}
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		o := opts
		if o.interactive {
			if err := askMissing(&o); err != nil {
				return err
			}
		}
		return runCreate(cmd.Context(), o, cmd.OutOrStdout())
	},
}

// runCreate validates o and either prints the planned layout or builds it
func runCreate(ctx context.Context, o createOptions, out io.Writer) error {
	log.SetVerboseMode(o.verbose)

	d, err := challenge.Assemble(challenge.Params{
		Name:     o.name,
		Author:   o.author,
		Category: o.category,
		BaseDir:  o.dir,
		Docker:   o.docker,
		Verbose:  o.verbose,
	})
	if err != nil {
		return err
	}

	fetcher := fetch.NewHTTPFetcher(o.templateURL)

	if o.dryRun {
		data, err := scaffold.Plan(d, fetcher.URL()).YAML()
		if err != nil {
			return fmt.Errorf("failed to render layout: %w", err)
		}
		_, err = out.Write(data)
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	b := scaffold.NewBuilder(fetcher, scaffold.Options{CleanupOnFailure: o.cleanup})
	root, err := b.Create(ctx, d)
	if err != nil {
		return err
	}

	log.Info("Challenge %s (%s) created at %s", d.Name(), d.Category(), root)
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal(err)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	f := rootCmd.Flags()
	f.StringVarP(&opts.name, "name", "n", "", "Challenge name (directory name)")
	f.StringVarP(&opts.author, "author", "a", "", "Author tag used for the docker image name")
	f.StringVarP(&opts.category, "type", "t", "", "Challenge category: one of "+strings.Join(challenge.CategoryNames(), ", "))
	f.StringVarP(&opts.dir, "dir", "p", ".", "Base directory the challenge is created in")
	f.BoolVarP(&opts.docker, "docker", "d", false, "Generate Dockerfile and docker helper scripts")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Print every created entry")
	f.BoolVar(&opts.dryRun, "dry-run", false, "Print the planned layout as YAML and exit")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "Prompt for missing name, author and type")
	f.BoolVar(&opts.cleanup, "cleanup", false, "Remove the partially created challenge on failure")
	f.StringVar(&opts.templateURL, "template-url", fetch.DefaultTemplateURL, "URL of the Pwn solution template")
	_ = f.MarkHidden("template-url")

	_ = rootCmd.RegisterFlagCompletionFunc("type", validCategories)
	_ = rootCmd.MarkFlagDirname("dir")
}
