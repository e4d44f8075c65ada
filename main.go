package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"rentbook/config"
	"rentbook/db"
	"rentbook/handlers"
	"rentbook/store"

	"github.com/gin-gonic/gin"
)

func runMigrations(conn *sql.DB) {
	sqlBytes, err := os.ReadFile("schema.sql")
	if err != nil {
		log.Fatal("Failed to read schema.sql:", err)
	}

	if _, err := conn.Exec(string(sqlBytes)); err != nil {
		log.Fatal("Failed to apply schema:", err)
	}
	log.Println("Database schema verified")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	runMigrations(conn)

	h := handlers.New(store.NewPostgres(conn))

	r := gin.Default()
	h.Register(r)

	fmt.Println("Server starting on port " + cfg.Port)
	r.Run(":" + cfg.Port)
}
