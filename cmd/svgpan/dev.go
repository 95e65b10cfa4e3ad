package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/diagramlab/svgpan/cmd/svgpan/internal/config"
	"github.com/diagramlab/svgpan/internal/cache"
)

type devServer struct {
	port       int
	host       string
	watcher    *fsnotify.Watcher
	wsClients  map[*websocket.Conn]bool
	wsMutex    sync.RWMutex
	upgrader   websocket.Upgrader
	buildMutex sync.Mutex
	lastBuild  time.Time
	buildCache *cache.Cache
	config     *config.Config
}

func newDevCommand() *cobra.Command {
	var port int
	var host string
	var cwd string

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start the development server",
		Long:  `Starts a development server with file watching and live reload for the demo viewer.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cwd != "" {
				if err := os.Chdir(cwd); err != nil {
					return fmt.Errorf("failed to change directory to %s: %w", cwd, err)
				}
			}
			return runDev(host, port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run the dev server on")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind the dev server to")
	cmd.Flags().StringVar(&cwd, "cwd", "", "Working directory of the demo project (defaults to current)")

	return cmd
}

func runDev(host string, port int) error {
	cfg, err := config.Load(".")
	if err != nil {
		log.Printf("⚠️  Failed to load svgpan.yml: %v (using defaults)", err)
		cfg = config.DefaultConfig()
	}

	// CLI flags take precedence over svgpan.yml
	if port != 0 {
		cfg.Dev.Port = port
	} else {
		port = cfg.Dev.Port
	}
	if host != "" {
		cfg.Dev.Host = host
	} else {
		host = cfg.Dev.Host
	}

	buildCache, err := cache.New(cache.DefaultConfig())
	if err != nil {
		log.Printf("⚠️  Failed to initialize build cache: %v", err)
		// Continue without cache
	}

	server := &devServer{
		port:       port,
		host:       host,
		wsClients:  make(map[*websocket.Conn]bool),
		buildCache: buildCache,
		config:     cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Allow all origins in dev mode
				return true
			},
		},
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()
	server.watcher = watcher

	if err := server.setupWatcher(); err != nil {
		return fmt.Errorf("failed to setup watcher: %w", err)
	}

	log.Println("🚀 Starting svgpan dev server...")

	if err := server.buildWASM(); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}

	go server.watchFiles()

	mux := http.NewServeMux()

	// WebSocket endpoint for live reload
	mux.HandleFunc("/svgpan/live", server.handleWebSocket)

	mux.HandleFunc("/app.wasm", server.serveWASM)
	mux.HandleFunc("/wasm_exec.js", server.serveWasmExec)
	mux.HandleFunc("/svgpan/bootstrap.js", server.serveBootstrap)
	mux.HandleFunc("/favicon.ico", server.serveFavicon)
	mux.HandleFunc("/", server.serveStatic)

	addr := fmt.Sprintf("%s:%d", host, port)
	log.Printf("✨ Dev server running at http://%s", addr)

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("\n🛑 Shutting down dev server...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	if cfg.Dev.Open {
		go openBrowser(fmt.Sprintf("http://%s", addr))
	}

	err = srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *devServer) setupWatcher() error {
	return filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip hidden directories, node_modules and build output
		if info.IsDir() && (strings.HasPrefix(info.Name(), ".") || info.Name() == "node_modules" || info.Name() == "dist") {
			return filepath.SkipDir
		}

		if info.IsDir() {
			return s.watcher.Add(path)
		}

		return nil
	})
}

func (s *devServer) watchFiles() {
	debounce := time.NewTimer(0)
	<-debounce.C // drain initial timer

	var pendingEvents []fsnotify.Event
	var mu sync.Mutex

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			if !s.isRelevantFile(event.Name) {
				continue
			}

			mu.Lock()
			pendingEvents = append(pendingEvents, event)
			mu.Unlock()

			debounce.Reset(100 * time.Millisecond)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Println("Watcher error:", err)

		case <-debounce.C:
			mu.Lock()
			events := pendingEvents
			pendingEvents = nil
			mu.Unlock()

			if len(events) > 0 {
				s.handleFileChanges(events)
			}
		}
	}
}

func (s *devServer) isRelevantFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".go" || ext == ".css" || ext == ".js" || ext == ".html" || ext == ".svg" || ext == ".yml"
}

func (s *devServer) handleFileChanges(events []fsnotify.Event) {
	var hasGoChanges, hasAssetChanges bool

	for _, event := range events {
		ext := strings.ToLower(filepath.Ext(event.Name))
		switch ext {
		case ".go":
			hasGoChanges = true
		default:
			hasAssetChanges = true
		}
	}

	if hasGoChanges {
		log.Println("🔄 Go files changed, rebuilding WASM...")
		if err := s.buildWASM(); err != nil {
			log.Printf("❌ Build failed: %v", err)
			s.notifyClients("error", map[string]interface{}{
				"message": fmt.Sprintf("Build failed: %v", err),
			})
		} else {
			log.Println("✅ Build succeeded, reloading...")
			s.notifyClients("reload", map[string]interface{}{
				"target": "wasm",
			})
		}
	}

	if hasAssetChanges {
		log.Println("🎨 Assets changed, reloading page...")
		s.notifyClients("reload", map[string]interface{}{
			"target": "page",
		})
	}
}

func (s *devServer) buildWASM() error {
	s.buildMutex.Lock()
	defer s.buildMutex.Unlock()

	os.MkdirAll("public", 0o755)

	wasmPath := filepath.Join("public", "app.wasm")

	var cacheKey string
	if s.buildCache != nil {
		key, err := wasmCacheKey()
		if err != nil {
			log.Printf("⚠️  Cache key generation failed: %v", err)
		} else {
			cacheKey = key
			if cached, found := s.buildCache.Get(cacheKey); found {
				if err := os.WriteFile(wasmPath, cached, 0o644); err == nil {
					log.Println("⚡ Using cached WASM build")
					s.lastBuild = time.Now()
					return nil
				}
			}
		}
	}

	log.Println("🔨 Building WASM client...")

	mainPath := "./app/client"
	if _, err := os.Stat("app/client"); os.IsNotExist(err) {
		mainPath = "./app"
	}

	cmd := exec.Command("go", "build", "-o", wasmPath, mainPath)
	cmd.Env = append(os.Environ(), "GOOS=js", "GOARCH=wasm")

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("wasm build failed: %w\nOutput: %s", err, output)
	}

	if s.buildCache != nil && cacheKey != "" {
		if wasmData, err := os.ReadFile(wasmPath); err == nil {
			if err := s.buildCache.Put(cacheKey, wasmData); err == nil {
				log.Println("💾 Cached WASM build")
			}
		}
	}

	s.lastBuild = time.Now()

	if info, err := os.Stat(wasmPath); err == nil {
		log.Printf("📦 WASM size: %.2f KB", float64(info.Size())/1024)
	}

	return nil
}

func (s *devServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	s.wsMutex.Lock()
	s.wsClients[conn] = true
	s.wsMutex.Unlock()

	defer func() {
		s.wsMutex.Lock()
		delete(s.wsClients, conn)
		s.wsMutex.Unlock()
	}()

	for {
		var msg map[string]interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		switch msg["type"] {
		case "HELLO":
			conn.WriteJSON(map[string]interface{}{
				"type": "ACK",
			})
		default:
			log.Printf("Unknown WebSocket message type: %v", msg["type"])
		}
	}
}

func (s *devServer) notifyClients(msgType string, data map[string]interface{}) {
	s.wsMutex.RLock()
	defer s.wsMutex.RUnlock()

	message := map[string]interface{}{
		"type": strings.ToUpper(msgType),
	}
	for k, v := range data {
		message[k] = v
	}

	for client := range s.wsClients {
		if err := client.WriteJSON(message); err != nil {
			log.Printf("Failed to send message to client: %v", err)
		}
	}
}

func (s *devServer) serveWASM(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/wasm")
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFile(w, r, "public/app.wasm")
}

func (s *devServer) serveWasmExec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")

	content, err := readWasmExec()
	if err != nil {
		http.Error(w, "Failed to resolve wasm_exec.js", http.StatusInternalServerError)
		return
	}
	_, _ = w.Write(content)
}

func (s *devServer) serveBootstrap(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")

	if len(bootstrapJS) == 0 {
		http.Error(w, "bootstrap.js not embedded", http.StatusInternalServerError)
		return
	}
	_, _ = w.Write(bootstrapJS)
}

func (s *devServer) serveStatic(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == "/" {
		path = "/index.html"
	}

	// Security: prevent directory traversal
	if strings.Contains(path, "..") {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	filePath := filepath.Join("public", strings.TrimPrefix(path, "/"))
	content, err := os.ReadFile(filePath)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	switch filepath.Ext(filePath) {
	case ".html":
		w.Header().Set("Content-Type", "text/html")
	case ".js":
		w.Header().Set("Content-Type", "application/javascript")
	case ".css":
		w.Header().Set("Content-Type", "text/css")
	case ".svg":
		w.Header().Set("Content-Type", "image/svg+xml")
	case ".wasm":
		w.Header().Set("Content-Type", "application/wasm")
	default:
		// Let Go's default MIME type detection handle it
	}

	w.Header().Set("Cache-Control", "no-cache")
	w.Write(content)
}

// serveFavicon serves a project favicon if present, otherwise returns 204 to avoid noisy 404.
func (s *devServer) serveFavicon(w http.ResponseWriter, r *http.Request) {
	if _, err := os.Stat("public/favicon.ico"); err == nil {
		http.ServeFile(w, r, "public/favicon.ico")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// wasmCacheKey derives a cache key from go.mod, go.sum and the app's Go sources.
func wasmCacheKey() (string, error) {
	files := []string{}

	if _, err := os.Stat("go.mod"); err == nil {
		files = append(files, "go.mod")
	}
	if _, err := os.Stat("go.sum"); err == nil {
		files = append(files, "go.sum")
	}

	files = append(files, collectGoFiles("./app")...)

	return cache.Key(files)
}

func collectGoFiles(dir string) []string {
	var files []string

	filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}

		if info.IsDir() && (strings.HasPrefix(info.Name(), ".") || info.Name() == "vendor") {
			return filepath.SkipDir
		}

		if strings.HasSuffix(path, ".go") {
			files = append(files, path)
		}

		return nil
	})

	return files
}

// readWasmExec locates the Go runtime's wasm_exec.js via GOROOT.
func readWasmExec() ([]byte, error) {
	output, err := exec.Command("go", "env", "GOROOT").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve GOROOT: %w", err)
	}
	goroot := strings.TrimSpace(string(output))

	// Go 1.24 moved wasm_exec.js from misc/wasm to lib/wasm
	for _, rel := range []string{"lib/wasm/wasm_exec.js", "misc/wasm/wasm_exec.js"} {
		if content, err := os.ReadFile(filepath.Join(goroot, rel)); err == nil {
			return content, nil
		}
	}
	return nil, fmt.Errorf("wasm_exec.js not found under %s", goroot)
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch {
	case strings.Contains(strings.ToLower(os.Getenv("OS")), "windows"):
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case fileExists("/usr/bin/open") || fileExists("/usr/local/bin/open"):
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("⚠️  Failed to open browser: %v", err)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
