package store

import (
	"chordfund.app/api-server/core/db/sqlc"
)

// Stores bundles every per-entity store over one query layer.
type Stores struct {
	TeamMembers TeamMemberStore
	Projects    ProjectStore
	Users       UserStore
	Sessions    SessionStore
}

func New(queries *sqlc.Queries) *Stores {
	return &Stores{
		TeamMembers: newTeamMemberStore(queries),
		Projects:    newProjectStore(queries),
		Users:       newUserStore(queries),
		Sessions:    newSessionStore(queries),
	}
}
