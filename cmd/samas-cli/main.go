package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"yashubustudio/samas/samas"
)

type cliOptions struct {
	configPath string
	dataset    string
	text       string
	inputPath  string
	outputPath string
	expandMode string
	stdout     bool
	columns    bool
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("samas-cli: %v", err)
	}
	logger := log.New(os.Stderr, "", log.LstdFlags)
	if err := run(context.Background(), opts, os.Stdout, logger); err != nil {
		log.Fatalf("samas-cli: %v", err)
	}
}

func parseFlags(args []string) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("samas-cli", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "Path to config.json (default: ./config.json)")
	fs.StringVar(&opts.dataset, "dataset", "", "Dataset source; overrides config (xlsx/csv/tsv, sqlite://, s3://)")
	fs.StringVar(&opts.text, "text", "", "Text to process")
	fs.StringVar(&opts.inputPath, "input", "", "Text file with one input per non-empty line")
	fs.StringVar(&opts.outputPath, "output", "", "CSV file to write results")
	fs.StringVar(&opts.expandMode, "expand-mode", "", "Expansion mode: spans or replace-all")
	fs.BoolVar(&opts.stdout, "stdout", false, "Print results to STDOUT")
	fs.BoolVar(&opts.columns, "columns", false, "Print the dataset header and detected columns, then exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s (--text TEXT | --input FILE) [options]\n\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.configPath = strings.TrimSpace(opts.configPath)
	opts.dataset = strings.TrimSpace(opts.dataset)
	opts.inputPath = strings.TrimSpace(opts.inputPath)
	opts.outputPath = strings.TrimSpace(opts.outputPath)
	opts.expandMode = strings.TrimSpace(opts.expandMode)

	if opts.columns {
		return opts, nil
	}
	if opts.text == "" && opts.inputPath == "" {
		fs.Usage()
		return opts, errors.New("one of --text or --input is required")
	}
	if opts.text != "" && opts.inputPath != "" {
		return opts, errors.New("--text and --input are mutually exclusive")
	}
	switch samas.ExpandMode(opts.expandMode) {
	case "", samas.ExpandModeSpans, samas.ExpandModeReplaceAll:
	default:
		return opts, fmt.Errorf("unknown --expand-mode %q", opts.expandMode)
	}
	if opts.outputPath == "" {
		opts.stdout = true
	}
	return opts, nil
}

func run(ctx context.Context, opts cliOptions, out io.Writer, logger *log.Logger) error {
	cfg, err := samas.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.dataset != "" {
		cfg.Dataset = opts.dataset
	}
	if opts.expandMode != "" {
		cfg.ExpandMode = samas.ExpandMode(opts.expandMode)
	}
	if opts.columns {
		return printColumns(out, cfg.Dataset)
	}

	texts, err := readTexts(opts)
	if err != nil {
		return err
	}
	if len(texts) == 0 {
		return errors.New("input does not contain any texts")
	}

	svc, err := samas.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	results := make([]samas.Result, 0, len(texts))
	for _, text := range texts {
		res, err := svc.Process(text)
		if errors.Is(err, samas.ErrEmptyInput) {
			continue
		}
		if err != nil {
			return fmt.Errorf("process: %w", err)
		}
		results = append(results, res)
	}
	if len(results) == 0 {
		return samas.ErrEmptyInput
	}

	if opts.outputPath != "" {
		if err := writeResultCSV(opts.outputPath, results); err != nil {
			return err
		}
		fmt.Fprintf(out, "%d परिणाम %s में सहेजे गए\n", len(results), opts.outputPath)
	}
	if opts.stdout {
		printSummary(out, results)
	}
	return nil
}

func readTexts(opts cliOptions) ([]string, error) {
	if opts.inputPath == "" {
		return []string{opts.text}, nil
	}
	f, err := os.Open(opts.inputPath)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	texts, err := samas.ReadInputTexts(f)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return texts, nil
}

func writeResultCSV(path string, results []samas.Result) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(absPath)
	if err != nil {
		return fmt.Errorf("create result file: %w", err)
	}
	if err := samas.WriteResultsCSV(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printColumns(out io.Writer, path string) error {
	meta, err := samas.ReadDatasetFileMetadata(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "header: %s\n", strings.Join(meta.Columns, ", "))
	s := meta.Suggested
	if s.Word == "" {
		fmt.Fprintln(out, "columns: not detected")
		return nil
	}
	fmt.Fprintf(out, "Word=%s sangna1=%s Middle=%s sangna2=%s Label=%s\n", s.Word, s.Sangna1, s.Middle, s.Sangna2, s.Label)
	return nil
}

func printSummary(out io.Writer, results []samas.Result) {
	for i, res := range results {
		if len(results) > 1 {
			fmt.Fprintf(out, "==== %d ====\n", i+1)
		}
		fmt.Fprintln(out, "संशोधित पाठ:")
		fmt.Fprintln(out, res.Expanded)
		fmt.Fprintln(out, "पहचाने गए समास और उनके प्रकार:")
		if listing := res.Listing(); listing != "" {
			fmt.Fprintln(out, listing)
		}
		fmt.Fprintln(out, "प्रतिक्रिया समय:")
		fmt.Fprintf(out, "%s सेकंड\n", res.ElapsedSeconds())
	}
}
