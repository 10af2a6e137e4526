package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"taskplanner/internal/api"
	"taskplanner/internal/config"
	"taskplanner/internal/hardware"
	"taskplanner/internal/store"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: taskplanner.yaml)")
	flag.Parse()

	// A .env next to the binary can carry TASKPLANNER_* overrides.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	stores, err := store.OpenFileStores(cfg.DataDir)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	var sink hardware.StatusSink = hardware.NopSink{}
	if cfg.Hardware {
		led, err := hardware.NewLEDSink(cfg.LEDPinR, cfg.LEDPinG, cfg.LEDPinB)
		if err != nil {
			log.Printf("hardware disabled, LED init failed: %v", err)
		} else {
			sink = led
			defer led.Close()
		}
	}

	server := api.NewServer(cfg, stores.Tasks, stores.Mappings, stores.Pings, sink)
	router := server.Router()

	if cfg.TLS() {
		if err := config.CheckCertificate(cfg.TLSCert); err != nil {
			log.Fatalf("tls: %v", err)
		}
		log.Printf("Server running on %s (TLS)", cfg.Addr)
		log.Fatal(http.ListenAndServeTLS(cfg.Addr, cfg.TLSCert, cfg.TLSKey, router))
	}
	log.Printf("Server running on %s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, router))
}
