package main

import (
	"context"
	"log"

	"github.com/drdrak3/silvershop-core/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("api: %v", err)
	}
}
