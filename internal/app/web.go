package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/relabs-tech/trip_kinematics/internal/config"
	"github.com/relabs-tech/trip_kinematics/internal/render"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// seriesPayload is one derived series flattened for the browser plot.
type seriesPayload struct {
	Stage string    `json:"stage"`
	Unit  string    `json:"unit"`
	Time  []float64 `json:"time"`
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
	Z     []float64 `json:"z"`
}

// wsMessage is the envelope pushed over the series websocket.
type wsMessage struct {
	Type    string         `json:"type"` // series, complete, error
	Series  *seriesPayload `json:"series,omitempty"`
	Message string         `json:"message,omitempty"`
}

// RunWeb analyzes the configured trip once at startup and serves the derived
// series: a JSON API for one stage at a time, a websocket that streams all
// stages to the browser plot, and static files from ./web.
func RunWeb() error {
	cfg := config.Get()

	res, err := analyzeTrip(cfg)
	if err != nil {
		return err
	}

	payloads := make(map[string]*seriesPayload)
	for _, stage := range resultStages(res) {
		payloads[stage.Name] = stagePayload(stage)
	}

	// JSON API endpoint: one stage per request
	http.HandleFunc("/api/series", func(w http.ResponseWriter, r *http.Request) {
		stage := r.URL.Query().Get("stage")
		p, ok := payloads[stage]
		if !ok {
			http.Error(w, fmt.Sprintf("unknown stage %q", stage), http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(p); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	// Websocket: push every stage, then a completion marker
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("web: websocket upgrade error: %v", err)
			return
		}
		defer conn.Close()

		for _, name := range []string{"acceleration", "velocity", "position"} {
			if err := conn.WriteJSON(wsMessage{Type: "series", Series: payloads[name]}); err != nil {
				log.Printf("web: websocket write error: %v", err)
				return
			}
		}
		conn.WriteJSON(wsMessage{Type: "complete"})
	})

	// Static files from ./web as the root
	fs := http.FileServer(http.Dir("web"))
	http.Handle("/", fs)

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	log.Printf("web: server listening on %s", addr)
	return http.ListenAndServe(addr, nil)
}

func stagePayload(s render.Stage) *seriesPayload {
	return &seriesPayload{
		Stage: s.Name,
		Unit:  s.Unit,
		Time:  s.Table.Time,
		X:     s.Table.Column(0),
		Y:     s.Table.Column(1),
		Z:     s.Table.Column(2),
	}
}
