// Command migrate prepares the database without starting the server. Useful
// for deploy hooks and for resetting local development databases.
package main

import (
	"flag"
	"log"
	"os"

	"grana/database"
	"grana/migrations"

	"github.com/joho/godotenv"
)

func main() {
	reset := flag.Bool("reset", false, "Delete the database file before migrating")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	path := database.Path()
	if *reset && path != ":memory:" {
		log.Printf("Removing database at %s", path)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Fatalf("Failed to remove database: %v", err)
		}
	}

	db, err := database.Open(path)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")
}
