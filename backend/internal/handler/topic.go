package handler

import (
	"net/http"

	"github.com/itchan-dev/boards/shared/api"
	"github.com/itchan-dev/boards/shared/middleware"
	"github.com/itchan-dev/boards/shared/utils"
)

func (h *Handler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	boardId, err := parseIdParam(r, "board")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.CreateTopicRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	topic, err := h.thread.CreateTopic(r.Context(), middleware.GetUserFromContext(r), boardId, body.Subject, body.Message)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSONWithStatus(w, http.StatusCreated, api.NewTopicResponse(topic))
}

func (h *Handler) GetTopic(w http.ResponseWriter, r *http.Request) {
	boardId, topicId, err := boardAndTopic(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	view, err := h.listing.ListPosts(r.Context(), boardId, topicId, parsePage(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.NewTopicPageResponse(view, h.md))
}
