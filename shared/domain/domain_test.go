package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserIs(t *testing.T) {
	a := User{Id: 1, Name: "john"}
	assert.True(t, a.Is(User{Id: 1, Name: "renamed"}), "identity is the id, not the display name")
	assert.False(t, a.Is(User{Id: 2, Name: "john"}))
}

func TestTopicReplies(t *testing.T) {
	assert.Equal(t, 0, Topic{PostsCount: 1}.Replies())
	assert.Equal(t, 4, Topic{PostsCount: 5}.Replies())
	assert.Equal(t, 0, Topic{}.Replies())
}

func TestPostEdited(t *testing.T) {
	p := &Post{Id: 1, CreatedAt: time.Now()}
	assert.False(t, p.Edited())

	now := time.Now()
	p.UpdatedAt = &now
	p.UpdatedBy = &User{Id: 1}
	assert.True(t, p.Edited())
	assert.Contains(t, p.String(), "edited:true")
}
