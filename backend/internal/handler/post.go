package handler

import (
	"net/http"

	"github.com/itchan-dev/boards/shared/api"
	"github.com/itchan-dev/boards/shared/middleware"
	"github.com/itchan-dev/boards/shared/utils"
)

func (h *Handler) CreateReply(w http.ResponseWriter, r *http.Request) {
	boardId, topicId, err := boardAndTopic(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.CreateReplyRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.thread.CreateReply(r.Context(), middleware.GetUserFromContext(r), boardId, topicId, body.Message)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSONWithStatus(w, http.StatusCreated, api.NewPostResponse(post, h.md))
}

func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	boardId, topicId, err := boardAndTopic(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	postId, err := parseIdParam(r, "post")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.UpdatePostRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.thread.UpdatePost(r.Context(), middleware.GetUserFromContext(r), boardId, topicId, postId, body.Message)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.NewPostResponse(post, h.md))
}

// RecentPosts backs the reply form with the newest posts of the topic.
func (h *Handler) RecentPosts(w http.ResponseWriter, r *http.Request) {
	boardId, topicId, err := boardAndTopic(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	posts, err := h.listing.RecentPosts(r.Context(), boardId, topicId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.NewPostListResponse(posts, h.md))
}
