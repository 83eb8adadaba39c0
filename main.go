package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"

	"github.com/xingzihai/roomsync/internal/config"
	"github.com/xingzihai/roomsync/internal/db"
	"github.com/xingzihai/roomsync/internal/hub"
	"github.com/xingzihai/roomsync/internal/protocol"
	"github.com/xingzihai/roomsync/internal/registry"
	"github.com/xingzihai/roomsync/internal/room"
	"github.com/xingzihai/roomsync/internal/upload"
	"github.com/xingzihai/roomsync/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// app holds the long-lived components, constructed once at startup and
// injected into the handlers that need them.
type app struct {
	hub     *hub.Hub
	rooms   *room.Store
	handler *protocol.Handler
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}
	cfg := config.Load()

	os.MkdirAll(cfg.DataDir, 0755)
	database, err := db.Open(filepath.Join(cfg.DataDir, "roomsync.db"))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	reg := registry.New()
	rooms := room.NewStore()
	broadcaster := hub.New(reg)
	handler := protocol.NewHandler(reg, rooms, broadcaster)
	a := &app{hub: broadcaster, rooms: rooms, handler: handler}

	uploadDir := filepath.Join(cfg.StaticDir, "uploads")
	uploads := &upload.Handlers{DB: database, UploadDir: uploadDir, URLPrefix: "/uploads"}

	r := mux.NewRouter()
	r.HandleFunc("/ws", a.handleWebSocket)
	r.HandleFunc("/upload", uploads.Upload).Methods("POST")
	r.HandleFunc("/api/tracks", uploads.ListTracks).Methods("GET")
	r.HandleFunc("/health", handleHealth).Methods("GET")
	r.HandleFunc("/stats", a.handleStats).Methods("GET")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir)))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("roomsync server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func (a *app) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := ws.NewClient(uuid.New().String(), conn)
	defer client.Close()

	a.handler.HandleConnect(client.ID())
	a.hub.Add(client)

	done := make(chan struct{})
	defer close(done)
	go client.StartPing(done)

	for {
		data, err := client.ReadMessage()
		if err != nil {
			break
		}
		a.handler.HandleMessage(client.ID(), data)
	}

	a.hub.Remove(client.ID())
	a.handler.HandleDisconnect(client.ID())
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (a *app) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{
		"rooms":   a.rooms.RoomCount(),
		"clients": a.hub.Stats(),
	})
}
