package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/smartkiosk/console/internal/model"
)

// ErrNotFound is returned when an id matches no row.
var ErrNotFound = errors.New("no such record")

// ListUsers returns every operator account, password included: the login
// scan and the retain-on-empty-edit rule both read it.
func (s *Store) ListUsers() ([]model.User, error) {
	users := []model.User{}
	const q = `
	SELECT id, name, email, tax_id, phone, password, active
	FROM users
	ORDER BY id;`
	if err := s.db.Select(&users, q); err != nil {
		log.Error().Err(err).Msg("[db] failed to list users")
		return nil, err
	}
	return users, nil
}

// CreateUser inserts a new account and returns it with the assigned id.
func (s *Store) CreateUser(u model.User) (model.User, error) {
	var created model.User
	const q = `
	INSERT INTO users (name, email, tax_id, phone, password, active)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, name, email, tax_id, phone, password, active;`
	if err := s.db.Get(&created, q, u.Name, u.Email, u.TaxID, u.Phone, u.Password, u.Active); err != nil {
		log.Error().Err(err).Msg("[db] failed to create user")
		return model.User{}, err
	}
	return created, nil
}

// UpdateUser replaces the account row identified by id.
func (s *Store) UpdateUser(id int, u model.User) error {
	const q = `
	UPDATE users
	SET name = $2, email = $3, tax_id = $4, phone = $5, password = $6, active = $7
	WHERE id = $1;`
	res, err := s.db.Exec(q, id, u.Name, u.Email, u.TaxID, u.Phone, u.Password, u.Active)
	if err != nil {
		log.Error().Err(err).Msg("[db] failed to update user")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes the account row identified by id.
func (s *Store) DeleteUser(id int) error {
	res, err := s.db.Exec(`DELETE FROM users WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Msg("[db] failed to delete user")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// GetUserByID fetches one account. Returns ErrNotFound when absent.
func (s *Store) GetUserByID(id int) (*model.User, error) {
	var u model.User
	const q = `
	SELECT id, name, email, tax_id, phone, password, active
	FROM users
	WHERE id = $1;`
	if err := s.db.Get(&u, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Msg("[db] failed to get user by id")
		return nil, err
	}
	return &u, nil
}
