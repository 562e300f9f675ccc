package handler

import (
	"net/http"

	"github.com/itchan-dev/boards/shared/api"
	"github.com/itchan-dev/boards/shared/utils"
)

func (h *Handler) ListBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.listing.ListBoards(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.NewBoardListResponse(boards, h.md))
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	boardId, err := parseIdParam(r, "board")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	view, err := h.listing.ListTopics(r.Context(), boardId, parsePage(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.NewBoardResponse(view))
}

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var body api.CreateBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	board, err := h.board.Create(r.Context(), body.Name, body.Description)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSONWithStatus(w, http.StatusCreated, board)
}

func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	boardId, err := parseIdParam(r, "board")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if err := h.board.Delete(r.Context(), boardId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
