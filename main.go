package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/leonelquinteros/gotext"

	"snakes_server/logic"
	"snakes_server/network"
	"snakes_server/storage"
	"snakes_server/termview"
)

func main() {
	configPath := flag.String("config", "game_config.json", "path to the game config")
	tui := flag.Bool("tui", false, "play in this terminal as well as serving /ws")
	flag.Parse()

	if *tui {
		// the terminal belongs to the board
		f, err := os.OpenFile("snakes.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			log.SetOutput(f)
			defer f.Close()
		}
	}

	// 1. Load Config
	cfg, err := logic.LoadGameConfig(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	gotext.Configure(cfg.Locale.Path, cfg.Locale.Lang, "default")

	// 2. Storage and content
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		log.Fatalf("Error opening progress store: %v", err)
	}
	defer store.Close()

	layouts := storage.NewDirLayouts(cfg.Storage.LayoutDir)
	log.Printf("Found %d stage layouts in %s", layouts.Count(), cfg.Storage.LayoutDir)

	// 3. Game loop and room
	loop, err := logic.NewGameLoop(&cfg, layouts, store)
	if err != nil {
		log.Fatalf("Error creating game: %v", err)
	}
	room := network.NewRoom("main", &cfg, loop)
	go func() {
		if err := room.Run(); err != nil {
			log.Fatalf("Game stopped: %v", err)
		}
	}()

	// 4. Router Setup
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		network.ServeWs(room, w, r)
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if !*tui {
		log.Printf("Snakes server listening on %s", cfg.Server.Addr)
		if err := http.ListenAndServe(cfg.Server.Addr, mux); err != nil {
			log.Fatal("ListenAndServe:", err)
		}
		return
	}

	go func() {
		if err := http.ListenAndServe(cfg.Server.Addr, mux); err != nil {
			log.Printf("ListenAndServe: %v", err)
		}
	}()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Error creating screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Error initializing screen: %v", err)
	}
	termview.Run(screen, loop)
	screen.Fini()
	loop.Stop()
}
