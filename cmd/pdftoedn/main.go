package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/swerling/pdftoedn/observability"
	"github.com/swerling/pdftoedn/reader"
)

type options struct {
	read    reader.Options
	outPath string
	verbose bool
	version bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pdftoedn: %v\n", err)
		os.Exit(2)
	}
	if opts.version {
		fmt.Printf("pdftoedn %s\n", reader.Version)
		return
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "pdftoedn: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: pdftoedn [flags] <pdf>\n")
		flag.PrintDefaults()
	}
	page := flag.Int("p", reader.AllPages, "Process a single 0-indexed page")
	omitOutline := flag.Bool("O", false, "Omit the document outline")
	linksOnly := flag.Bool("l", false, "Extract only link annotations")
	fontPrescan := flag.Bool("F", false, "Pre-scan fonts before emitting output")
	useCropBox := flag.Bool("c", false, "Measure coordinates against the crop box")
	debugInfo := flag.Bool("D", false, "Include per-document font details in meta")
	ownerPassword := flag.String("owner-password", "", "Owner password for encrypted documents")
	userPassword := flag.String("user-password", "", "User password for encrypted documents")
	outPath := flag.String("o", "", "Write output to file instead of stdout")
	verbose := flag.Bool("v", false, "Log processing detail to stderr")
	version := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	opts.version = *version
	if opts.version {
		return opts, nil
	}
	if flag.NArg() != 1 {
		flag.Usage()
		return options{}, fmt.Errorf("missing pdf path")
	}
	opts.read = reader.DefaultOptions(flag.Arg(0))
	opts.read.PageNumber = *page
	opts.read.OmitOutline = *omitOutline
	opts.read.LinksOnly = *linksOnly
	opts.read.ForceFontPreprocess = *fontPrescan
	opts.read.UseCropBox = *useCropBox
	opts.read.IncludeDebugInfo = *debugInfo
	opts.read.OwnerPassword = *ownerPassword
	opts.read.UserPassword = *userPassword
	opts.outPath = *outPath
	opts.verbose = *verbose
	return opts, nil
}

func run(opts options) error {
	if opts.verbose {
		opts.read.Logger = observability.NewSlog(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	sess, err := reader.Open(opts.read)
	if err != nil {
		return err
	}
	defer sess.Close()

	out := os.Stdout
	if opts.outPath != "" {
		f, err := os.Create(opts.outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := sess.Process(out); err != nil {
		return fmt.Errorf("process document: %w", err)
	}
	fmt.Fprintln(out)
	return nil
}
