package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mrlokans/scribe/internal/database"
	"github.com/mrlokans/scribe/internal/database/cache"
	"github.com/mrlokans/scribe/internal/database/dictionary"
	"github.com/mrlokans/scribe/internal/services"
	"github.com/mrlokans/scribe/internal/spellcheck/providers"
)

// CheckCommand spell-checks a text file and prints the errors found
type CheckCommand struct {
	FilePath     string
	DatabasePath string
	Engine       string
	Language     string
	Verbose      bool
}

// NewCheckCommand creates a new CheckCommand
func NewCheckCommand() *CheckCommand {
	return &CheckCommand{}
}

// ParseFlags parses command line flags
func (cmd *CheckCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", "./scribe.db", "Path to the local database file")
	fs.StringVar(&cmd.Engine, "engine", "", "Spell check engine to use (default: best available)")
	fs.StringVar(&cmd.Language, "lang", "en", "Language to check against")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s check [options] <file>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Spell-check a text file and print the errors found.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s check notes.txt\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s check -engine aspell -verbose draft.md\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("file path is required")
	}
	cmd.FilePath = fs.Arg(0)

	return nil
}

// Run executes the check command
func (cmd *CheckCommand) Run() error {
	fmt.Println("✏️  Scribe Check")
	fmt.Println("===============")

	absPath, err := filepath.Abs(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for file: %w", err)
	}

	lines, err := readLines(absPath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	registry := providers.NewRegistry("", cmd.Language)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	results := registry.InitializeAll(ctx)
	defer registry.CloseAll()

	if cmd.Verbose {
		for name, ok := range results {
			fmt.Printf("  engine %s ready: %v\n", name, ok)
		}
	}

	checker := services.NewChecker(registry, cache.NewRepository(db.DB), dictionary.NewRepository(db.DB))

	outcome, err := checker.CheckLines(ctx, lines, cmd.Language, cmd.Engine)
	if err != nil {
		return fmt.Errorf("spell check failed: %w", err)
	}

	fmt.Printf("Checked %d lines with %s\n\n", outcome.LinesChecked, outcome.EngineUsed)

	if len(outcome.Errors) == 0 {
		fmt.Println("No spelling errors found.")
		return nil
	}

	total := 0
	for line := 0; line < len(lines); line++ {
		errs, ok := outcome.Errors[line]
		if !ok {
			continue
		}
		for _, e := range errs {
			total++
			fmt.Printf("line %d, col %d: %q", line+1, e.StartPos+1, e.Word)
			if len(e.Suggestions) > 0 {
				fmt.Printf(" (did you mean %q?)", e.Suggestions[0])
			}
			fmt.Println()
		}
	}

	fmt.Printf("\n%d errors found.\n", total)
	return nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
