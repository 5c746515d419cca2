package user

import "errors"

// User is a stored user document with its identifier rendered as a string.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"` // bcrypt digest, never the plaintext
}

// Document is the field set written on insert, before the store assigns an id.
type Document struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

var (
	ErrNotFound  = errors.New("user not found")
	ErrInvalidID = errors.New("invalid user id")
)

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

// with pointers, an omitted field stays nil and keeps its stored value
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Fields returns only the supplied keys, in document field names.
func (r UpdateUserRequest) Fields() map[string]string {
	out := make(map[string]string, 3)

	if r.Name != nil {
		out["name"] = *r.Name
	}
	if r.Email != nil {
		out["email"] = *r.Email
	}
	if r.Password != nil {
		out["password"] = *r.Password
	}

	return out
}

func (r UpdateUserRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil && r.Password == nil
}

// Merge returns u with fields set over it, keyed by document field name as
// produced by UpdateUserRequest.Fields. Unknown keys and the id are ignored.
func (u User) Merge(fields map[string]string) User {
	for k, v := range fields {
		switch k {
		case "name":
			u.Name = v
		case "email":
			u.Email = v
		case "password":
			u.Password = v
		}
	}

	return u
}
