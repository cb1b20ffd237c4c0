package backend

import (
	"context"
	"errors"
	"strings"

	"github.com/Hafiz-shamnad/TicsLab/pkg/db"
	"github.com/Hafiz-shamnad/TicsLab/pkg/db/models"
	"github.com/Hafiz-shamnad/TicsLab/pkg/proto"
)

// User finds a user by email. Emails match case-insensitively.
func (d *Backend) User(ctx context.Context, email string) (proto.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, proto.ErrUserNotFound
	}

	m, err := d.store.FindUserByEmail(ctx, d.db, email)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, proto.ErrUserNotFound
		}
		d.logger.Error("error finding user", "email", email, "error", err)
		return nil, err
	}

	return &user{user: m}, nil
}

// UserByID finds a user by ID.
func (d *Backend) UserByID(ctx context.Context, id int64) (proto.User, error) {
	m, err := d.store.GetUserByID(ctx, d.db, id)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, proto.ErrUserNotFound
		}
		d.logger.Error("error finding user", "id", id, "error", err)
		return nil, err
	}

	return &user{user: m}, nil
}

// UserByAccessToken validates an access token and returns its active user.
func (d *Backend) UserByAccessToken(ctx context.Context, token string) (proto.User, error) {
	claims, err := d.parseAccessToken(token)
	if err != nil {
		return nil, err
	}

	u, err := d.User(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, proto.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if !u.IsActive() {
		return nil, proto.ErrInactiveUser
	}

	return u, nil
}

// Users returns all users.
func (d *Backend) Users(ctx context.Context) ([]proto.User, error) {
	ms, err := d.store.GetAllUsers(ctx, d.db)
	if err != nil {
		return nil, err
	}

	users := make([]proto.User, 0, len(ms))
	for _, m := range ms {
		users = append(users, &user{user: m})
	}

	return users, nil
}

// CreateUser registers a new user with a bcrypt hashed password.
func (d *Backend) CreateUser(ctx context.Context, email string, opts proto.UserOptions) (proto.User, error) {
	email = strings.TrimSpace(email)
	password, err := HashPassword(opts.Password)
	if err != nil {
		return nil, err
	}

	var id int64
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		id, err = d.store.CreateUser(ctx, tx, email, strings.TrimSpace(opts.FullName), password)
		return err
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrDuplicateKey) {
			return nil, proto.ErrUserExist
		}
		return nil, err
	}

	d.logger.Info("user created", "email", email, "id", id)
	return d.UserByID(ctx, id)
}

// Authenticate checks email and password and returns the user.
// Unknown emails and wrong passwords are indistinguishable.
func (d *Backend) Authenticate(ctx context.Context, email string, password string) (proto.User, error) {
	u, err := d.User(ctx, email)
	if err != nil {
		if errors.Is(err, proto.ErrUserNotFound) {
			return nil, proto.ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(password, u.Password()) {
		return nil, proto.ErrInvalidCredentials
	}

	if !u.IsActive() {
		return nil, proto.ErrInactiveUser
	}

	return u, nil
}

// SetUserActive enables or disables a user.
func (d *Backend) SetUserActive(ctx context.Context, email string, active bool) error {
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		return d.store.SetUserActiveByEmail(ctx, tx, email, active)
	})
	if errors.Is(err, db.ErrRecordNotFound) {
		return proto.ErrUserNotFound
	}
	return err
}

type user struct {
	user models.User
}

var _ proto.User = (*user)(nil)

// ID implements proto.User.
func (u *user) ID() int64 {
	return u.user.ID
}

// Email implements proto.User.
func (u *user) Email() string {
	return u.user.Email
}

// FullName implements proto.User.
func (u *user) FullName() string {
	return u.user.FullName
}

// IsActive implements proto.User.
func (u *user) IsActive() bool {
	return u.user.IsActive
}

// Password implements proto.User.
func (u *user) Password() string {
	return u.user.Password
}
