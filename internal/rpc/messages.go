package rpc

type Todo struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Complete    bool   `json:"complete"`
}

type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phone_number"`
}

type RegisterResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type WhoAmIRequest struct{}

type WhoAmIResponse struct {
	Username string `json:"username"`
	ID       int64  `json:"id"`
	Role     string `json:"role"`
}

type ListTodosRequest struct{}

type ListTodosResponse struct {
	Todos []*Todo `json:"todos"`
}

type GetTodoRequest struct {
	ID int64 `json:"id"`
}

type GetTodoResponse struct {
	Todo *Todo `json:"todo"`
}

type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Complete    bool   `json:"complete"`
}

type CreateTodoResponse struct {
	Todo *Todo `json:"todo"`
}

type UpdateTodoRequest struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Complete    bool   `json:"complete"`
}

type UpdateTodoResponse struct{}

type DeleteTodoRequest struct {
	ID int64 `json:"id"`
}

type DeleteTodoResponse struct{}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
