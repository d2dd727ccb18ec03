package cmd

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/keyscribe/keyscribe/keyboard"
	"github.com/keyscribe/keyscribe/model"
)

// server exposes the geometry table and saved runs over HTTP so external
// preview renderers can draw per-slice overlays and fetch artifacts.
type server struct {
	baseDir string
	tab     *keyboard.Table
}

// NewRouter builds the HTTP handler. Exposed for tests.
func NewRouter(baseDir string, tab *keyboard.Table) http.Handler {
	s := &server{baseDir: baseDir, tab: tab}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/geometry", s.handleGeometry).Methods("GET")
	router.HandleFunc("/runs", s.handleRuns).Methods("GET")
	router.HandleFunc("/runs/{id}", s.handleRun).Methods("GET")
	router.HandleFunc("/runs/{id}/sheet", s.artifactHandler(model.SheetFile)).Methods("GET")
	router.HandleFunc("/runs/{id}/csv", s.artifactHandler(model.CSVFile)).Methods("GET")
	router.HandleFunc("/runs/{id}/states", s.artifactHandler(model.StatesFile)).Methods("GET")

	return cors.Default().Handler(router)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

func (s *server) handleGeometry(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.tab.Slices())
}

// readManifest loads one run's run.json. The run id is its directory name.
func (s *server) readManifest(id string) (model.RunManifest, error) {
	var m model.RunManifest
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, model.ManifestFile))
	if err != nil {
		return m, err
	}
	return m, json.Unmarshal(data, &m)
}

func (s *server) handleRuns(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not read runs dir")
		return
	}

	manifests := make([]model.RunManifest, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		m, err := s.readManifest(entry.Name())
		if err != nil {
			// not a run dir
			continue
		}
		manifests = append(manifests, m)
	}
	writeJSON(w, manifests)
}

func (s *server) handleRun(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	m, err := s.readManifest(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "no such run: "+id)
		return
	}
	writeJSON(w, m)
}

func (s *server) artifactHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		path := filepath.Join(s.baseDir, id, name)
		if _, err := os.Stat(path); err != nil {
			writeError(w, http.StatusNotFound, "no "+name+" for run "+id)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		http.ServeFile(w, r, path)
	}
}
