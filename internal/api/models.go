package api

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=5,max=50"`
	Email    string `json:"email" validate:"required,email,min=5,max=100"`
	Password string `json:"password" validate:"required,min=8,max=100"`
}

// LoginRequest is the payload for authenticating with email and password.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,min=5,max=100"`
	Password string `json:"password" validate:"required,min=8,max=100"`
}

// UpdateUserRequest replaces every mutable field of an account.
type UpdateUserRequest struct {
	Name     string `json:"name" validate:"required,min=5,max=50"`
	Email    string `json:"email" validate:"required,email,min=5,max=100"`
	Password string `json:"password" validate:"required,min=8,max=100"`
}

// PatchUserRequest carries a partial update; absent fields stay nil and
// leave the stored value untouched.
type PatchUserRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=5,max=50"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,min=5,max=100"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=100"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (r PatchUserRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil && r.Password == nil
}
