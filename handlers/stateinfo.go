package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/emrekoco/syncarena/syncarena-backend/game"
	"github.com/emrekoco/syncarena/syncarena-backend/models"
	"github.com/emrekoco/syncarena/syncarena-backend/responses"
	"github.com/emrekoco/syncarena/syncarena-backend/utils"
)

// FetchPlayers returns the current full player snapshot.
func (h *Handler) FetchPlayers(w http.ResponseWriter, r *http.Request) {
	utils.HandleSuccess(w, models.SuccessResponse(h.registry.Players()))
}

// FetchLeaderboard returns the current ranking derived from the snapshot.
func (h *Handler) FetchLeaderboard(w http.ResponseWriter, r *http.Request) {
	utils.HandleSuccess(w, models.SuccessResponse(game.Leaderboard(h.registry.Players())))
}

// FetchRoomMembers lists the connection ids joined to a room.
func (h *Handler) FetchRoomMembers(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	room := vars["room"]
	if room == "" {
		utils.HandleError(w, responses.BadRequestError{Msg: "room is required."})
		return
	}

	members := h.rooms.Members(room)
	if members == nil {
		utils.HandleError(w, responses.NotFoundError{Msg: "Room not found."})
		return
	}

	utils.HandleSuccess(w, models.SuccessResponse(members))
}
