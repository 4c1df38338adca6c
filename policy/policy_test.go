package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/naimekattor/assunnah-blog/models"
)

var (
	author    = &models.Actor{ID: 1, Email: "author@example.com", Role: models.RoleUser}
	otherUser = &models.Actor{ID: 2, Email: "other@example.com", Role: models.RoleUser}
	moderator = &models.Actor{ID: 3, Email: "mod@example.com", Role: models.RoleModerator}
	admin     = &models.Actor{ID: 4, Email: "admin@example.com", Role: models.RoleAdmin}
)

func post(status models.PostStatus) *models.Post {
	return &models.Post{ID: 10, AuthorID: 1, Status: status}
}

func TestRead(t *testing.T) {
	tests := []struct {
		name  string
		actor *models.Actor
		post  *models.Post
		want  bool
	}{
		{"published readable anonymously", nil, post(models.StatusPublished), true},
		{"published readable by anyone", otherUser, post(models.StatusPublished), true},
		{"pending hidden from anonymous", nil, post(models.StatusPending), false},
		{"pending visible to owner", author, post(models.StatusPending), true},
		{"pending hidden from other user", otherUser, post(models.StatusPending), false},
		{"pending visible to moderator", moderator, post(models.StatusPending), true},
		{"pending visible to admin", admin, post(models.StatusPending), true},
		{"rejected hidden from anonymous", nil, post(models.StatusRejected), false},
		{"rejected visible to owner", author, post(models.StatusRejected), true},
		{"rejected hidden from other user", otherUser, post(models.StatusRejected), false},
		{"missing resource denied", author, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.actor, OpRead, tt.post))
		})
	}
}

func TestCreate(t *testing.T) {
	assert.False(t, Allowed(nil, OpCreate, nil))
	assert.True(t, Allowed(author, OpCreate, nil))
	assert.True(t, Allowed(moderator, OpCreate, nil))
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name  string
		actor *models.Actor
		post  *models.Post
		want  bool
	}{
		{"owner may edit pending", author, post(models.StatusPending), true},
		{"owner may not edit published", author, post(models.StatusPublished), false},
		{"owner may not edit rejected", author, post(models.StatusRejected), false},
		{"other user may not edit pending", otherUser, post(models.StatusPending), false},
		{"moderator may not edit pending", moderator, post(models.StatusPending), false},
		{"admin may not edit pending", admin, post(models.StatusPending), false},
		{"anonymous may not edit", nil, post(models.StatusPending), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.actor, OpUpdate, tt.post))
		})
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name  string
		actor *models.Actor
		want  bool
	}{
		{"owner may delete", author, true},
		{"other user may not delete", otherUser, false},
		{"moderator may delete", moderator, true},
		{"admin may delete", admin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.actor, OpDelete, post(models.StatusPublished)))
		})
	}

	assert.False(t, Allowed(nil, OpDelete, post(models.StatusPublished)))
}

func TestApproveReject(t *testing.T) {
	for _, op := range []Operation{OpApprove, OpReject} {
		assert.False(t, Allowed(nil, op, post(models.StatusPending)))
		assert.False(t, Allowed(author, op, post(models.StatusPending)))
		assert.False(t, Allowed(otherUser, op, post(models.StatusPending)))
		assert.True(t, Allowed(moderator, op, post(models.StatusPending)))
		assert.True(t, Allowed(admin, op, post(models.StatusPending)))
	}
}
