package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-reflection-raytracer/pkg/scene"
)

// Request limits
const (
	maxImageSize = 2000
	maxSpheres   = 10000
)

// Server handles web requests for the reflection raytracer
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// Handler returns the router for all API endpoints
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/scene-stats", s.handleSceneStats)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scene presets
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListPresets())
}

// handleSceneStats builds the requested scene and returns its statistics
// along with the log lines the CLI would print for it
func (s *Server) handleSceneStats(w http.ResponseWriter, r *http.Request) {
	cfg, err := parseSceneConfig(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	sceneObj, err := scene.Build(cfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene: "+err.Error())
		return
	}

	stats, err := scene.Summarize(sceneObj)
	if err != nil {
		log.Printf("Scene statistics failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to summarize scene")
		return
	}

	consoleChan := make(chan ConsoleMessage, 16)
	stats.Log(NewWebLogger(newRenderID(), consoleChan))
	close(consoleChan)

	messages := []ConsoleMessage{}
	for msg := range consoleChan {
		messages = append(messages, msg)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"config":     cfg,
		"statistics": stats,
		"console":    messages,
	})
}

// parseSceneConfig overlays query parameters on the default config and validates the result
func parseSceneConfig(values url.Values) (scene.Config, error) {
	cfg := scene.DefaultConfig()

	if preset := values.Get("preset"); preset != "" {
		cfg.Preset = preset
	}

	var err error
	if cfg.Spheres, err = parseIntParam(values, "spheres", cfg.Spheres, 0, maxSpheres); err != nil {
		return cfg, err
	}
	if cfg.TreeDepth, err = parseIntParam(values, "depth", cfg.TreeDepth, 1, scene.MaxTreeDepth); err != nil {
		return cfg, err
	}
	if cfg.Width, err = parseIntParam(values, "width", cfg.Width, 1, maxImageSize); err != nil {
		return cfg, err
	}
	if cfg.Height, err = parseIntParam(values, "height", cfg.Height, 1, maxImageSize); err != nil {
		return cfg, err
	}
	if cfg.Reflections, err = parseBoolParam(values, "reflect", cfg.Reflections); err != nil {
		return cfg, err
	}
	if cfg.Shadows, err = parseBoolParam(values, "shadows", cfg.Shadows); err != nil {
		return cfg, err
	}
	if value := values.Get("seed"); value != "" {
		if cfg.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return cfg, fmt.Errorf("invalid seed: %s", value)
		}
	}

	return cfg, cfg.Validate()
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseBoolParam parses a boolean parameter from URL query
func parseBoolParam(values url.Values, key string, defaultValue bool) (bool, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
