package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/mattedesign/traction-pay-pilot-sub003/internal/config"
	"github.com/mattedesign/traction-pay-pilot-sub003/internal/server"
)

func main() {
	cfg := config.Load()
	s, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}
	defer s.Close()
	addr := ":" + cfg.Port
	fmt.Printf("traction server listening on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, s.Router()))
}
