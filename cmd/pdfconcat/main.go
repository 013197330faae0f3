// Command pdfconcat concatenates pages from multiple PDF files into one.
//
// Inputs are given either as positional arguments of the form
// path[:pages[:orientation]], for example
//
//	pdfconcat -o out.pdf report.pdf appendix.pdf:2-5,1 cover.pdf::landscape
//
// or as a YAML manifest via -job.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/wudi/pdfconcat/fpdi"
	"github.com/wudi/pdfconcat/manifest"
	"github.com/wudi/pdfconcat/merge"
	"github.com/wudi/pdfconcat/observability"
)

// CLI flags parsed from command line.
type cliFlags struct {
	Output      string
	Job         string
	Orientation string
	Validate    bool
	Verbose     bool
	Version     bool
}

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("pdfconcat", flag.ContinueOnError)
	fs.StringVar(&flags.Output, "o", "", "output PDF path")
	fs.StringVar(&flags.Job, "job", "", "YAML manifest describing the merge job")
	fs.StringVar(&flags.Orientation, "orientation", "auto", "force page orientation: auto, portrait, or landscape")
	fs.BoolVar(&flags.Validate, "validate", false, "validate source files before merging")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable verbose output")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Println(version)
		return nil
	}

	logger := observability.Logger(observability.NopLogger{})
	if flags.Verbose {
		logger = observability.NewWriterLogger(os.Stderr, observability.LevelDebug)
	}

	m := merge.New(fpdi.New(),
		merge.WithLogger(logger),
		merge.WithValidation(flags.Validate),
	)

	output := flags.Output
	global, err := merge.ParseOrientation(flags.Orientation)
	if err != nil {
		return err
	}

	switch {
	case flags.Job != "":
		if fs.NArg() > 0 {
			return fmt.Errorf("-job and positional inputs are mutually exclusive")
		}
		job, err := manifest.Load(flags.Job)
		if err != nil {
			return err
		}
		if err := job.Apply(m); err != nil {
			return err
		}
		if output == "" {
			output = job.Output
		}
		if flags.Orientation == "auto" {
			if global, err = job.GlobalOrientation(); err != nil {
				return err
			}
		}

	case fs.NArg() > 0:
		for _, arg := range fs.Args() {
			path, opts, err := parseInput(arg)
			if err != nil {
				return err
			}
			if _, err := m.AddDocument(path, opts...); err != nil {
				return err
			}
		}

	default:
		fs.Usage()
		return fmt.Errorf("no input files")
	}

	if output == "" {
		return fmt.Errorf("no output path: pass -o or set output in the manifest")
	}

	_, err = m.Merge(context.Background(), merge.FileSink(output),
		merge.WithGlobalOrientation(global))
	return err
}

// parseInput splits a positional argument of the form
// path[:pages[:orientation]] into a path and document options.
func parseInput(arg string) (string, []merge.DocumentOption, error) {
	parts := strings.SplitN(arg, ":", 3)
	path := parts[0]
	if path == "" {
		return "", nil, fmt.Errorf("empty input path in %q", arg)
	}

	var opts []merge.DocumentOption
	if len(parts) > 1 && parts[1] != "" {
		opts = append(opts, merge.WithPages(parts[1]))
	}
	if len(parts) > 2 && parts[2] != "" {
		o, err := merge.ParseOrientation(parts[2])
		if err != nil {
			return "", nil, err
		}
		opts = append(opts, merge.WithOrientation(o))
	}
	return path, opts, nil
}
