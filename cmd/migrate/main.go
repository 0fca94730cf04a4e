package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"funfact_bot/internal/storage"
	"funfact_bot/migrations"
)

const usage = `Usage: migrate [-db path] [-subscribers path] <command>

Commands:
  up          Migrate to the latest version
  down        Roll back one version
  status      Show migration status
  version     Show current version
  reset       Roll back all migrations
  import      Copy recipients from the subscribers file into the database
`

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}

	dbPath := flag.String("db", envOrDefault("DATABASE_PATH", "./data/bot.db"), "path to sqlite database")
	subsPath := flag.String("subscribers", envOrDefault("SUBSCRIBERS_PATH", "./data/subscribers.txt"), "path to subscribers file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	cmd := args[0]
	if cmd == "import" {
		n, err := importSubscribers(context.Background(), *subsPath, *dbPath)
		if err != nil {
			log.Fatalf("import: %v", err)
		}
		fmt.Printf("imported %d new recipients into %s\n", n, *dbPath)
		return
	}

	db, err := sql.Open("sqlite", *dbPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		log.Fatalf("set dialect: %v", err)
	}

	switch cmd {
	case "up":
		err = goose.Up(db, ".")
	case "down":
		err = goose.Down(db, ".")
	case "status":
		err = goose.Status(db, ".")
	case "version":
		err = goose.Version(db, ".")
	case "reset":
		err = goose.Reset(db, ".")
	default:
		log.Fatalf("unknown command: %s", cmd)
	}

	if err != nil {
		log.Fatalf("%s: %v", cmd, err)
	}
}

// importSubscribers copies every chat ID from the file backend into SQLite
// and reports how many were not already present.
func importSubscribers(ctx context.Context, from, to string) (int, error) {
	src, err := storage.NewFile(from)
	if err != nil {
		return 0, err
	}
	defer func() { _ = src.Close() }()

	dst, err := storage.NewSQLite(to)
	if err != nil {
		return 0, err
	}
	defer func() { _ = dst.Close() }()

	ids, err := src.List(ctx)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, id := range ids {
		ok, err := dst.Add(ctx, id)
		if err != nil {
			return added, fmt.Errorf("add %d: %w", id, err)
		}
		if ok {
			added++
		}
	}
	return added, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
