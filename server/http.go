package server

import (
	"embed"
	"encoding/json"
	"io/fs"
	"net/http"
	"time"

	"github.com/echoflaresat/midnightline/metrics"
	"github.com/echoflaresat/midnightline/midnight"
	"go.uber.org/zap"
)

//go:embed static
var static embed.FS

// MidnightReport is the /api/midnight response.
type MidnightReport struct {
	Time              time.Time          `json:"time"`
	MidnightLongitude float64            `json:"midnightLongitude"`
	Strategy          string             `json:"strategy"`
	Strategies        map[string]float64 `json:"strategies"` // every strategy that can serve the instant
	EquationOfTime    float64            `json:"equationOfTime"`
}

// Report evaluates every strategy at t alongside the configured chain.
func Report(source midnight.Evaluator, t time.Time) MidnightReport {
	lon, strategy := source.Evaluate(t)
	r := MidnightReport{
		Time:              t.UTC(),
		MidnightLongitude: lon,
		Strategy:          strategy,
		Strategies:        map[string]float64{},
		EquationOfTime:    midnight.EquationOfTime(t).Seconds(),
	}
	for _, s := range []midnight.Strategy{midnight.MeanSolar{}, midnight.ApparentSolar{}} {
		if v, err := s.Longitude(t); err == nil {
			r.Strategies[s.Name()] = v
		}
	}
	return r
}

// NewHandler routes the viewer page, the WebSocket hub, the midnight API,
// health and metrics. api serves /api/midnight; it should not be the tick
// loop's cache, which arbitrary request times would evict.
func NewHandler(log *zap.Logger, host *Host, hub *Hub, api midnight.Evaluator, m *metrics.Collector) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	mux := http.NewServeMux()

	page, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("/", http.FileServer(http.FS(page)))
	mux.Handle("/ws", hub)
	mux.Handle("/metrics", m.Handler())

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(log, w, http.StatusOK, map[string]any{
			"status":  "ok",
			"simTime": host.Clock().Now().UTC(),
			"clients": hub.Clients(),
		})
	})

	mux.HandleFunc("/api/midnight", func(w http.ResponseWriter, r *http.Request) {
		t := host.Clock().Now()
		if s := r.URL.Query().Get("time"); s != "" {
			parsed, err := time.Parse(time.RFC3339Nano, s)
			if err != nil {
				writeJSON(log, w, http.StatusBadRequest, map[string]string{"error": "time must be RFC3339"})
				return
			}
			t = parsed
		}
		writeJSON(log, w, http.StatusOK, Report(api, t))
	})

	return mux
}

func writeJSON(log *zap.Logger, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug("response write failed", zap.Error(err))
	}
}
