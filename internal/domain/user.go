package domain

import "time"

// User is the domain model for an account holder. PasswordHash holds the
// bcrypt output, never the plaintext.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Image        string
	Address      string
	PhoneNumber  string
	Age          int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch carries the fields of a partial update. Nil fields are left untouched.
type UserPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Image        *string
	Address      *string
	PhoneNumber  *string
	Age          *int
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.PasswordHash == nil && p.Image == nil &&
		p.Address == nil && p.PhoneNumber == nil && p.Age == nil
}

// Apply copies the set fields of the patch onto user.
func (p UserPatch) Apply(user *User) {
	if p.Name != nil {
		user.Name = *p.Name
	}
	if p.Email != nil {
		user.Email = *p.Email
	}
	if p.PasswordHash != nil {
		user.PasswordHash = *p.PasswordHash
	}
	if p.Image != nil {
		user.Image = *p.Image
	}
	if p.Address != nil {
		user.Address = *p.Address
	}
	if p.PhoneNumber != nil {
		user.PhoneNumber = *p.PhoneNumber
	}
	if p.Age != nil {
		user.Age = *p.Age
	}
}
