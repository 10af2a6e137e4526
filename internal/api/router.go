package api

import (
	"github.com/gorilla/mux"

	"taskplanner/internal/config"
	"taskplanner/internal/hardware"
	"taskplanner/internal/scan"
	"taskplanner/internal/store"
)

// Server wires the stores, scanner and hardware sink behind the HTTP API.
type Server struct {
	tasks    store.TaskStore
	mappings store.MappingStore
	pings    store.PingLog
	scanner  *scan.Scanner
	sink     hardware.StatusSink

	auth      tokenAuth
	nfcPublic bool
	hardware  bool
}

func NewServer(cfg *config.Config, tasks store.TaskStore, mappings store.MappingStore, pings store.PingLog, sink hardware.StatusSink) *Server {
	if sink == nil {
		sink = hardware.NopSink{}
	}
	return &Server{
		tasks:     tasks,
		mappings:  mappings,
		pings:     pings,
		scanner:   scan.New(tasks, mappings, pings, sink),
		sink:      sink,
		auth:      tokenAuth{token: cfg.AuthToken, hash: []byte(cfg.AuthTokenHash)},
		nfcPublic: cfg.NFCPublic,
		hardware:  cfg.Hardware,
	}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/health", s.handleHealth).Methods("GET")

	r.HandleFunc("/api/tasks", s.requireAuth(s.handleListTasks)).Methods("GET")
	r.HandleFunc("/api/tasks", s.requireAuth(s.handleCreateTask)).Methods("POST")
	r.HandleFunc("/api/tasks/sort", s.requireAuth(s.handleSortTasks)).Methods("POST")
	r.HandleFunc("/api/tasks/stats", s.requireAuth(s.handleTaskStats)).Methods("GET")
	r.HandleFunc("/api/tasks/{id:[0-9]+}", s.requireAuth(s.handleGetTask)).Methods("GET")
	r.HandleFunc("/api/tasks/{id:[0-9]+}", s.requireAuth(s.handleDeleteTask)).Methods("DELETE")
	r.HandleFunc("/api/tasks/{id:[0-9]+}/status", s.requireAuth(s.handleUpdateTaskStatus)).Methods("PUT")

	r.HandleFunc("/api/nfc/scan", s.requireNFCAuth(s.handleScan)).Methods("POST")
	r.HandleFunc("/api/nfc/scan/{identifier}", s.requireNFCAuth(s.handleScanGet)).Methods("GET")
	r.HandleFunc("/api/nfc/mappings", s.requireNFCAuth(s.handleGetMappings)).Methods("GET")
	r.HandleFunc("/api/nfc/mappings", s.requireNFCAuth(s.handleCreateMapping)).Methods("POST")
	r.HandleFunc("/api/nfc/mappings/{tag_id}", s.requireNFCAuth(s.handleDeleteMapping)).Methods("DELETE")
	r.HandleFunc("/api/nfc/pings", s.requireNFCAuth(s.handleGetPings)).Methods("GET")
	r.HandleFunc("/api/nfc/stats", s.requireNFCAuth(s.handleNFCStats)).Methods("GET")

	return r
}
