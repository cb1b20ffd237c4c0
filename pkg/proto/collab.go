package proto

import "github.com/Hafiz-shamnad/TicsLab/pkg/access"

// Collaborator is a user granted a role on a repository.
type Collaborator struct {
	UserID      int64
	Email       string
	AccessLevel access.AccessLevel
}
