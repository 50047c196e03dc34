// Admin surface for inspecting and steering a running garrison
// simulation.
package admin

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"

	"fremen-sim/internal/logging"
	"fremen-sim/internal/sim"
)

//go:embed templates/index.html
var content embed.FS

// Server exposes garrison state and control endpoints over HTTP.
type Server struct {
	Sim *sim.Simulator
	tpl *template.Template
	mux *http.ServeMux
}

// NewServer creates an admin server for a simulator.
func NewServer(simulator *sim.Simulator) *Server {
	tpl := template.Must(template.New("index.html").ParseFS(content, "templates/index.html"))
	s := &Server{Sim: simulator, tpl: tpl, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/roster", s.handleRoster)
	s.mux.HandleFunc("/outposts", s.handleOutposts)
	s.mux.HandleFunc("/alerts", s.handleAlerts)
	s.mux.HandleFunc("/jam", s.handleJam)
	s.mux.HandleFunc("/captured", s.handleCaptured)
	s.mux.HandleFunc("/recaptured", s.handleRecaptured)
	s.mux.HandleFunc("/defeat", s.handleDefeat)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Start runs the HTTP server until the context is done.
func (s *Server) Start(ctx context.Context, addr string) error {
	log := logging.FromContext(ctx)
	srv := &http.Server{Addr: addr, Handler: s.mux}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	log.Info("admin server listening", "addr", addr)
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		ClusterID string
		Outposts  []garrisonStatus
	}{
		ClusterID: s.Sim.Config().ClusterID,
	}
	for _, st := range s.Sim.Outposts() {
		data.Outposts = append(data.Outposts, garrisonStatus{
			ID:           st.ID,
			Controlling:  string(st.Controlling),
			LiveGarrison: st.LiveGarrison,
			MinGarrison:  st.MinGarrison,
			Jammed:       st.Jammed,
		})
	}
	s.tpl.Execute(w, data)
}

type garrisonStatus struct {
	ID           string
	Controlling  string
	LiveGarrison int
	MinGarrison  int
	Jammed       bool
}

func (s *Server) handleRoster(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Sim.RosterSnapshot())
}

func (s *Server) handleOutposts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Sim.Outposts())
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Sim.AlertStats())
}

func (s *Server) handleJam(w http.ResponseWriter, r *http.Request) {
	outpostID := r.URL.Query().Get("outpost")
	if outpostID == "" {
		http.Error(w, "outpost required", http.StatusBadRequest)
		return
	}
	jammed := true
	if v := r.URL.Query().Get("state"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "invalid state", http.StatusBadRequest)
			return
		}
		jammed = parsed
	}
	s.Sim.SetJammed(outpostID, jammed)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"outpost": outpostID, "jammed": jammed})
}

func (s *Server) handleCaptured(w http.ResponseWriter, r *http.Request) {
	outpostID := r.URL.Query().Get("outpost")
	if outpostID == "" {
		http.Error(w, "outpost required", http.StatusBadRequest)
		return
	}
	s.Sim.NotifyCaptured(outpostID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRecaptured(w http.ResponseWriter, r *http.Request) {
	outpostID := r.URL.Query().Get("outpost")
	if outpostID == "" {
		http.Error(w, "outpost required", http.StatusBadRequest)
		return
	}
	s.Sim.NotifyRecaptured(outpostID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDefeat(w http.ResponseWriter, r *http.Request) {
	trooperID := r.URL.Query().Get("trooper")
	if trooperID == "" {
		http.Error(w, "trooper required", http.StatusBadRequest)
		return
	}
	if !s.Sim.MarkDefeated(trooperID) {
		http.Error(w, "unknown trooper", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
