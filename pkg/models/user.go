package models

type User struct {
	ID       ID     `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Mobile   string `json:"mobile,omitempty"`
	Role     string `json:"role,omitempty"`
}
