package main

import (
	"log"

	"github.com/tabnap/tabnap/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ tabnap failed to start: %v", err)
	}
}
