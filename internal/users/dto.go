package users

import "time"

type userResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	FullName   string    `json:"fullName"`
	PictureURL string    `json:"pictureUrl"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminUserRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"fullName"`
	PictureURL string `json:"pictureUrl"`
	Role       string `json:"role"`
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

func toResponse(u User) userResponse {
	return userResponse{
		ID:         u.ID,
		Email:      u.Email,
		Username:   u.Username,
		FullName:   u.FullName,
		PictureURL: u.PictureURL,
		Role:       u.Role,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func (r adminUserRequest) input() AdminInput {
	return AdminInput{
		Username:   r.Username,
		Email:      r.Email,
		Password:   r.Password,
		FullName:   r.FullName,
		PictureURL: r.PictureURL,
		Role:       r.Role,
	}
}
