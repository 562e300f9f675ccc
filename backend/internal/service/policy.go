package service

import "github.com/itchan-dev/boards/shared/domain"

// EditPolicy decides whether editor may change post. It is consulted with the
// post row locked, so the decision and the write see the same data.
type EditPolicy interface {
	CanEdit(editor domain.User, post domain.Post) bool
}

// OwnerOnly lets only the author edit a post.
type OwnerOnly struct{}

func (OwnerOnly) CanEdit(editor domain.User, post domain.Post) bool {
	return editor.Is(post.CreatedBy)
}

// OwnerOrAdmin additionally lets admins edit any post.
type OwnerOrAdmin struct{}

func (OwnerOrAdmin) CanEdit(editor domain.User, post domain.Post) bool {
	return editor.Admin || editor.Is(post.CreatedBy)
}
