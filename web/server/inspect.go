package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-reflection-raytracer/pkg/core"
	"github.com/df07/go-reflection-raytracer/pkg/renderer"
	"github.com/df07/go-reflection-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit      bool                   `json:"hit"`
	Color    string                 `json:"color"` // Resolved pixel color as #rrggbb
	Point    [3]float64             `json:"point"`
	Normal   [3]float64             `json:"normal"`
	Distance float64                `json:"distance"`
	Bounces  int                    `json:"bounces"`
	Escaped  bool                   `json:"escaped"`
	InShadow bool                   `json:"inShadow"`
	Sphere   map[string]interface{} `json:"sphere,omitempty"`
}

// handleInspect reports what the camera sees through one pixel
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	cfg, err := parseSceneConfig(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil || pixelX < 0 || pixelX >= cfg.Width {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil || pixelY < 0 || pixelY >= cfg.Height {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := scene.Build(cfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene: "+err.Error())
		return
	}

	tracer := renderer.NewTracer(sceneObj, renderer.TraceConfigFor(cfg))
	writeJSON(w, http.StatusOK, newInspectResponse(sceneObj, tracer.Inspect(pixelX, pixelY)))
}

func newInspectResponse(sceneObj *scene.Scene, in renderer.Inspection) InspectResponse {
	response := InspectResponse{
		Hit:      in.Info.Hit,
		Color:    hexColor(in.Color),
		Bounces:  in.Info.Bounces,
		Escaped:  in.Info.Escaped,
		InShadow: in.Info.InShadow,
	}
	if in.Sphere < 0 {
		return response
	}

	sphere := sceneObj.Spheres[in.Sphere]
	response.Point = [3]float64{in.Point.X, in.Point.Y, in.Point.Z}
	response.Normal = [3]float64{in.Normal.X, in.Normal.Y, in.Normal.Z}
	response.Distance = in.Distance
	response.Sphere = map[string]interface{}{
		"index":  in.Sphere,
		"center": [3]float64{sphere.Center.X, sphere.Center.Y, sphere.Center.Z},
		"radius": sphere.Radius,
		"color":  hexColor(sphere.Color),
	}
	return response
}

// hexColor formats c with the same 8-bit rounding as rendered images
func hexColor(c core.Vec3) string {
	rgba := renderer.Vec3ToColor(c)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}
