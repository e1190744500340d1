package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/darianmavgo/txt2pg/config"
	"github.com/darianmavgo/txt2pg/convert"
	"github.com/darianmavgo/txt2pg/prompt"
	"github.com/darianmavgo/txt2pg/source"
	"github.com/darianmavgo/txt2pg/stage"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  txt2pg [--stage] [--verbose] [--config <file>] [input_file_or_url]")
	os.Exit(1)
}

func main() {
	args := os.Args[1:]
	stageLoad := false
	verbose := false
	configPath := ""

	// Filter out flags; everything else is positional
	var cleanArgs []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--stage":
			stageLoad = true
		case "--verbose":
			verbose = true
		case "--config":
			if i+1 >= len(args) {
				usage()
			}
			i++
			configPath = args[i]
		default:
			cleanArgs = append(cleanArgs, args[i])
		}
	}

	if len(cleanArgs) > 1 {
		usage()
	}

	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg := config.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			logrus.Fatalf("failed to load config: %v", err)
		}
	}

	term := prompt.NewTerminal(os.Stdin, os.Stdout)

	var input string
	if len(cleanArgs) == 1 {
		input = cleanArgs[0]
	} else {
		var err error
		input, err = term.SelectInput()
		if err != nil {
			logrus.Fatalf("%v", err)
		}
	}

	if err := run(input, cfg, term, stageLoad); err != nil {
		logrus.Fatalf("%v", err)
	}
}

// run drives the whole pipeline: resolve the source, sample and confirm
// the separator, collect column names, stream the transform and
// optionally stage the result. Source cleanup is deferred so temporary
// downloads are released on every exit path.
func run(input string, cfg *config.Config, term *prompt.Terminal, stageLoad bool) error {
	src, err := source.Resolve(input, term)
	if err != nil {
		return err
	}
	defer src.Cleanup()

	sample, err := sampleFirstLine(src.Path)
	if err != nil {
		return fmt.Errorf("failed to read sample line: %w", err)
	}

	detected := convert.DetectSeparator(sample)
	expr, err := term.ConfirmSeparator(detected, convert.SuggestedExpr(detected), sample)
	if err != nil {
		return err
	}

	pattern, err := convert.CompilePattern(expr)
	if err != nil {
		return err
	}

	columns, err := term.ColumnNames()
	if err != nil {
		return err
	}

	dst := outputPath(src.Path)
	logrus.Infof("reading from: %s", src.Path)
	logrus.Infof("writing to: %s", dst)

	if err := transformFile(src, dst, pattern, columns, cfg); err != nil {
		os.Remove(dst) // no partial output on failure
		return err
	}
	logrus.Infof("done, wrote %s", filepath.Base(dst))

	if stageLoad {
		dbPath := strings.TrimSuffix(dst, ".csv") + ".db"
		rows, err := stage.LoadCSV(dst, dbPath, cfg.StageTable, cfg.NullSentinel, cfg.BatchSize)
		if err != nil {
			return fmt.Errorf("staging load failed: %w", err)
		}
		logrus.Infof("staged %d rows into %s", rows, dbPath)
	}

	return nil
}

func transformFile(src *source.Source, dst string, pattern *convert.SeparatorPattern, columns []string, cfg *config.Config) error {
	in, err := os.Open(src.Path)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	transformer, err := convert.NewTransformer(pattern, convert.TransformConfig{
		Columns:    columns,
		Null:       cfg.NullSentinel,
		TotalBytes: src.Size,
		OnProgress: progressLogger(cfg.ProgressStep),
	})
	if err != nil {
		return err
	}

	return transformer.Run(source.DecodeReader(in), out)
}

// progressLogger throttles progress reports to one per step bytes.
func progressLogger(step int64) func(read, total int64) {
	if step <= 0 {
		step = 1 << 20
	}
	var last int64
	return func(read, total int64) {
		if read-last < step {
			return
		}
		last = read
		if total > 0 {
			logrus.Infof("processed %d of %d bytes (%.0f%%)", read, total, float64(read)/float64(total)*100)
		} else {
			logrus.Infof("processed %d bytes", read)
		}
	}
}

// sampleFirstLine reads the first line of the source for separator
// detection. An empty file yields an empty sample, which the detector
// resolves to its deterministic default.
func sampleFirstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(source.DecodeReader(f))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	return "", scanner.Err()
}

// outputPath derives the destination next to the source file.
func outputPath(srcPath string) string {
	return strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + "_pg.csv"
}
