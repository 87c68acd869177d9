package httpapi

import "github.com/dkolesnikov/taskvault/internal/server/tasks"

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// updateProfileRequest distinguishes absent fields (nil) from explicitly
// provided ones, so a partial payload only touches what it names.
type updateProfileRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// authResponse is returned by register and login: the public identity plus a
// freshly issued bearer token.
type authResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// messageResponse is the shared shape of every error (and confirmation) body.
type messageResponse struct {
	Message string `json:"message"`
}

type paginationInfo struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type listTasksResponse struct {
	Tasks      []*tasks.Task  `json:"tasks"`
	Pagination paginationInfo `json:"pagination"`
}
