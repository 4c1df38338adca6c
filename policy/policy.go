// Package policy holds the single authorization decision function for
// post operations. It is pure: no storage access, no context, just the
// actor, the operation, and the resource.
package policy

import (
	"github.com/naimekattor/assunnah-blog/models"
)

type Operation int

const (
	OpRead Operation = iota
	OpCreate
	OpUpdate
	OpDelete
	OpApprove
	OpReject
)

func (op Operation) String() string {
	switch op {
	case OpRead:
		return "read"
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	case OpApprove:
		return "approve"
	case OpReject:
		return "reject"
	}
	return "unknown"
}

// Allowed evaluates the decision table, first match wins. actor may be
// nil (anonymous); post is nil only for OpCreate.
//
// Roles are matched as tagged variants, never compared as ordinal
// levels, so a new role grants nothing until it is named here.
func Allowed(actor *models.Actor, op Operation, post *models.Post) bool {
	switch op {
	case OpRead:
		if post == nil {
			return false
		}
		if post.Status == models.StatusPublished {
			return true
		}
		if actor == nil {
			return false
		}
		if actor.ID == post.AuthorID {
			return true
		}
		return actor.Role != models.RoleUser

	case OpCreate:
		return actor != nil

	case OpUpdate:
		// Authors may edit their own unreviewed work, but not after a
		// moderation decision has been rendered.
		if actor == nil || post == nil {
			return false
		}
		return actor.ID == post.AuthorID && post.Status == models.StatusPending

	case OpDelete:
		if actor == nil || post == nil {
			return false
		}
		if actor.ID == post.AuthorID {
			return true
		}
		return actor.Role == models.RoleAdmin || actor.Role == models.RoleModerator

	case OpApprove, OpReject:
		if actor == nil {
			return false
		}
		return actor.Role == models.RoleAdmin || actor.Role == models.RoleModerator
	}

	return false
}
