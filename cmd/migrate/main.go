package main

import (
	"database/sql"
	"errors"
	"flag"
	"log"
	"os"

	"storefront-be/internal/migrate"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

var runFunc = migrate.Run

func main() {
	_ = godotenv.Load()

	mode := flag.String("mode", "up", "migration mode: up or down")
	flag.Parse()

	if err := run(os.Getenv("DB_URL"), *mode); err != nil {
		log.Fatal(err)
	}
	log.Printf("migrations %s completed", *mode)
}

func run(dbURL, mode string) error {
	if dbURL == "" {
		return errors.New("DB_URL not set in environment")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return err
	}
	defer db.Close()

	return runFunc(db, mode)
}
