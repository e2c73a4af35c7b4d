package main

import (
	"context"
	"log"

	"github.com/guncedev/gunce/internal/server"
	"github.com/guncedev/gunce/internal/server/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
