package store

// Store is an interface for managing users, repositories, collaborators,
// and the file version ledger.
type Store interface {
	RepositoryStore
	UserStore
	CollaboratorStore
	FileStore
}
