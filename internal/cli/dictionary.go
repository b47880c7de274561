package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/scribe/internal/database"
	"github.com/mrlokans/scribe/internal/database/cache"
	"github.com/mrlokans/scribe/internal/database/dictionary"
)

// DictionaryCommand manages the custom dictionary from the command line
type DictionaryCommand struct {
	DatabasePath string
	ImportFile   string
	Action       string
	Words        []string
}

// NewDictionaryCommand creates a new DictionaryCommand
func NewDictionaryCommand() *DictionaryCommand {
	return &DictionaryCommand{}
}

// ParseFlags parses command line flags
func (cmd *DictionaryCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("dictionary", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", "./scribe.db", "Path to the local database file")
	fs.StringVar(&cmd.ImportFile, "import", "", "Import words from a file, one word per line")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s dictionary [options] <add|remove|list> [words...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Manage the custom dictionary.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s dictionary add kubernetes grpc\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s dictionary remove grpc\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s dictionary list\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s dictionary -import jargon.txt add\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("action is required")
	}
	cmd.Action = fs.Arg(0)
	cmd.Words = fs.Args()[1:]

	return nil
}

// Run executes the dictionary command
func (cmd *DictionaryCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	repo := dictionary.NewRepository(db.DB)
	cacheRepo := cache.NewRepository(db.DB)

	words := cmd.Words
	if cmd.ImportFile != "" {
		imported, err := readLines(cmd.ImportFile)
		if err != nil {
			return fmt.Errorf("failed to read import file: %w", err)
		}
		words = append(words, imported...)
	}

	switch cmd.Action {
	case "add":
		if len(words) == 0 {
			return fmt.Errorf("no words to add")
		}
		added := 0
		for _, word := range words {
			ok, err := repo.Add(word)
			if err != nil {
				return fmt.Errorf("failed to add %q: %w", word, err)
			}
			if ok {
				added++
				if _, err := cacheRepo.InvalidateWord(word); err != nil {
					return fmt.Errorf("failed to invalidate cache for %q: %w", word, err)
				}
			}
		}
		fmt.Printf("Added %d words (%d already present).\n", added, len(words)-added)

	case "remove":
		if len(words) == 0 {
			return fmt.Errorf("no words to remove")
		}
		removed := 0
		for _, word := range words {
			ok, err := repo.Remove(word)
			if err != nil {
				return fmt.Errorf("failed to remove %q: %w", word, err)
			}
			if ok {
				removed++
				if _, err := cacheRepo.InvalidateWord(word); err != nil {
					return fmt.Errorf("failed to invalidate cache for %q: %w", word, err)
				}
			}
		}
		fmt.Printf("Removed %d words.\n", removed)

	case "list":
		entries, err := repo.List()
		if err != nil {
			return fmt.Errorf("failed to list words: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("The dictionary is empty.")
			return nil
		}
		for _, entry := range entries {
			fmt.Printf("%s\t(added %s)\n", entry.Word, entry.AddedAt.Format("2006-01-02"))
		}
		fmt.Printf("\n%d words total.\n", len(entries))

	default:
		return fmt.Errorf("unknown action: %s", cmd.Action)
	}

	return nil
}
