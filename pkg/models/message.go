package models

type Message struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject,omitempty"`
	Message   string `json:"message"`
	Reply     string `json:"reply,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}
