// Package httpapi exposes the arena's plain-HTTP adjunct endpoints: a server
// info summary and a room-availability check, both read-only views over the
// arena.Manager. Grounded on internal/server/routes.go's mux wiring, CORS
// middleware, and JSON-response idiom in the teacher repo, generalized from
// the drawing game's three endpoints to Word Bomb/Anagrams' own shapes.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/scythe504/skribblr-backend/internal/arena"
	"github.com/scythe504/skribblr-backend/internal/transport"
)

// Response mirrors the teacher's internal.Response envelope: every JSON
// response carries its status code and timing alongside the payload.
type Response struct {
	StatusCode    int         `json:"statusCode"`
	Data          any         `json:"data,omitempty"`
	RespStartTime int64       `json:"respStartTime"`
	RespEndTime   int64       `json:"respEndTime"`
	NetRespTime   int64       `json:"netRespTime"`
}

func newResponse(statusCode int, data any, start int64) Response {
	end := time.Now().UnixMilli()
	return Response{StatusCode: statusCode, Data: data, RespStartTime: start, RespEndTime: end, NetRespTime: end - start}
}

type Server struct {
	manager   *arena.Manager
	transport *transport.Handler
}

func New(manager *arena.Manager, t *transport.Handler) *Server {
	return &Server{manager: manager, transport: t}
}

// Routes builds the full HTTP router: the JSON adjunct endpoints plus the
// WebSocket upgrade path, with the teacher's permissive CORS middleware applied.
func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()
	r.Use(corsMiddleware)

	r.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/info", s.infoHandler).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/room-available/{room}", s.roomAvailableHandler).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/ws/{room}", s.transport.ServeWS)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// infoHandler backs spec.md §6.3's server-info adjunct: total connected
// clients and the list of joinable public rooms.
func (s *Server) infoHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now().UnixMilli()
	info := s.manager.Info()
	writeJSON(w, http.StatusOK, newResponse(http.StatusOK, info, start))
}

// roomAvailableHandler reports whether a named room can still be joined,
// i.e. it either doesn't exist yet or hasn't hit the per-room client cap.
func (s *Server) roomAvailableHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now().UnixMilli()
	room := mux.Vars(r)["room"]

	available := !s.manager.RoomExists(room) || s.manager.RoomHasCapacity(room)
	writeJSON(w, http.StatusOK, newResponse(http.StatusOK, map[string]bool{"available": available}, start))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
