package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/taskvault/config"
	"github.com/oksasatya/taskvault/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@taskvault.local"
	password := "password123"
	hasher := helpers.NewPasswordHasher(cfg.BcryptCost)
	hash, err := hasher.Hash(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id
	`, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	for _, text := range []string{"buy milk", "walk the dog", "file taxes"} {
		if _, err := db.Exec(`
			INSERT INTO todos (owner_id, text)
			SELECT $1, $2
			WHERE NOT EXISTS (
				SELECT 1 FROM todos WHERE owner_id = $1 AND text = $2
			)
		`, id, text); err != nil {
			log.Fatalf("failed to seed todo %q: %v", text, err)
		}
	}
	fmt.Println("seeded demo todos")
}
