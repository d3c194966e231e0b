package handlers

import "symptalyze/internal/models"

// UserDTO is the API shape of a user. It deliberately has no password
// field; the stored User must never reach a response as-is.
type UserDTO struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Name      string `json:"name"`
	Gender    string `json:"gender"`
	Birthday  string `json:"birthday"`
	Age       int    `json:"age"`
	Email     string `json:"email"`
}

func ToUserDTO(u models.User) UserDTO {
	return UserDTO{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Name:      u.Name,
		Gender:    u.Gender,
		Birthday:  u.Birthday,
		Age:       u.Age,
		Email:     u.Email,
	}
}
