// Command generate_demo creates a demo database and sample documents.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db] [-docs path/to/documents]
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/mrlokans/scribe/internal/database"
	"github.com/mrlokans/scribe/internal/database/dictionary"
)

const (
	defaultDemoDatabasePath = "./demo/demo.db"
	defaultDemoDocumentsDir = "./demo/documents"
)

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	docsDir := flag.String("docs", defaultDemoDocumentsDir, "path to the demo documents directory")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(*dbPath), 0o755); err != nil {
		log.Fatalf("Failed to create demo directory: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	addDictionaryWords(db)
	addSettings(db)
	writeSampleDocuments(*docsDir)

	log.Printf("Demo data generated. Run the server with DATABASE_PATH=%s DOCUMENTS_DIR=%s", *dbPath, *docsDir)
}

func addDictionaryWords(db *database.Database) {
	repo := dictionary.NewRepository(db.DB)

	// Jargon that every generic spell checker flags
	words := []string{
		"kubernetes", "grpc", "protobuf", "goroutine", "middleware",
		"websocket", "sqlite", "gorm", "viper", "changelog",
		"backend", "frontend", "tokenizer", "linter", "refactoring",
	}

	added := 0
	for _, word := range words {
		ok, err := repo.Add(word)
		if err != nil {
			log.Printf("Failed to add %q: %v", word, err)
			continue
		}
		if ok {
			added++
		}
	}
	log.Printf("Added %d dictionary words", added)
}

func addSettings(db *database.Database) {
	defaults := map[string]string{
		"preferred_engine":  "wordlist",
		"default_language":  "en",
		"prediction_engine": "heuristic",
	}
	for key, value := range defaults {
		if err := db.SetSetting(key, value); err != nil {
			log.Printf("Failed to set %s: %v", key, err)
		}
	}
	log.Printf("Seeded %d settings", len(defaults))
}

func writeSampleDocuments(dir string) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatalf("Failed to create documents directory: %v", err)
	}

	documents := map[string]string{
		"welcome.txt": "Welcome to Scribe.\n" +
			"Start typing and the editor will underline any word it does not recognize.\n" +
			"Click a highlighted word to see suggestions, or add it to your dictionary.\n",
		"draft-with-typos.txt": "This sentance contains a few common typos.\n" +
			"Did you recieve the package yesterday?\n" +
			"Their going to love the new editor.\n",
		"tech-notes.txt": "The backend exposes a websocket endpoint for spell checking.\n" +
			"Each goroutine handles one connection and results are cached in sqlite.\n",
	}

	for name, content := range documents {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			log.Printf("Failed to write %s: %v", name, err)
			continue
		}
		log.Printf("Wrote %s", path)
	}
}
