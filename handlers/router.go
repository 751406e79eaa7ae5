package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/ws", h.WsHandler)

	// Read-only queries against live state
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/players", h.FetchPlayers).Methods("GET")
	api.HandleFunc("/leaderboard", h.FetchLeaderboard).Methods("GET")
	api.HandleFunc("/rooms/{room}/members", h.FetchRoomMembers).Methods("GET")

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods("GET")

	return r
}
