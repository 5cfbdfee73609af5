package dto

type CreateUserRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type UpdateUserRequest struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}
