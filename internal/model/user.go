package model

// User is an operator account. The gateway stores and returns the
// password in cleartext; see DESIGN.md for why that contract is kept
// at the boundary and isolated inside the session gate.
type User struct {
	ID       int     `db:"id"       json:"id"`
	Name     string  `db:"name"     json:"name"`
	Email    string  `db:"email"    json:"email"`
	TaxID    string  `db:"tax_id"   json:"tax_id"`
	Phone    *string `db:"phone"    json:"phone,omitempty"`
	Password string  `db:"password" json:"password"`
	Active   bool    `db:"active"   json:"active"`
}
