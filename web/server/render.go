package server

import (
	"bytes"
	"context"
	"errors"
	"image"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/fogleman/gg"

	"github.com/df07/go-reflection-raytracer/pkg/renderer"
	"github.com/df07/go-reflection-raytracer/pkg/scene"
)

// handleRender renders the requested scene and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
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

	renderID := newRenderID()
	logger := NewWebLogger(renderID, nil)
	raytracer := renderer.NewRenderer(sceneObj, renderer.TraceConfigFor(cfg), renderer.DefaultRenderConfig(), logger)

	// The request context stops the render when the client disconnects
	startTime := time.Now()
	img, stats, err := raytracer.Render(r.Context(), nil)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Printf("Client went away, render abandoned\n")
			return
		}
		writeError(w, http.StatusInternalServerError, "Render error: "+err.Error())
		return
	}

	data, err := encodePNG(img)
	if err != nil {
		log.Printf("[%s] Failed to encode image: %v", renderID, err)
		writeError(w, http.StatusInternalServerError, "Failed to encode image")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Id", renderID)
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(time.Since(startTime).Milliseconds(), 10))
	w.Header().Set("X-Hit-Pixels", strconv.Itoa(stats.HitPixels))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("[%s] Failed to write image: %v", renderID, err)
	}
}

// encodePNG encodes an image as PNG
func encodePNG(img *image.RGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := gg.NewContextForRGBA(img).EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
