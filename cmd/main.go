package main

import (
	"log"
	"os"

	"wheel-quiz-service/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Printf("wheel-quiz-service: %v", err)
		os.Exit(1)
	}
}
