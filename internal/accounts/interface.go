package accounts

import "github.com/mauv0809/pelada-pro/internal/pelada"

// UserStore manages organizer accounts for the admin dashboard.
type UserStore interface {
	// Load reads persisted accounts, seeding the default admin on first run.
	Load() error

	Users() []pelada.UserAccount
	Get(id string) (pelada.UserAccount, error)
	Add(user pelada.UserAccount) (pelada.UserAccount, error)
	Delete(id string) error

	// Authenticate matches email and password against the stored accounts.
	Authenticate(email, password string) (pelada.UserAccount, error)
}
