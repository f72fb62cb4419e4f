package schema

// Request and response envelopes for the RPC services.

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type GetUserRequest struct {
	ID string `json:"id"`
}

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []User `json:"users"`
}

// UpdateUserRequest carries a partial update: empty fields keep their current value.
type UpdateUserRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type DeleteUserRequest struct {
	ID string `json:"id"`
}

type DeleteUserResponse struct{}

type CreateOrderRequest struct {
	UserID string   `json:"user_id"`
	Items  []string `json:"items"`
	Total  float64  `json:"total"`
}

type GetOrderRequest struct {
	ID string `json:"id"`
}

// ListOrdersRequest filters by UserID when it is set; otherwise every order is returned.
type ListOrdersRequest struct {
	UserID string `json:"user_id,omitempty"`
}

type ListOrdersResponse struct {
	Orders []Order `json:"orders"`
}

type UserOrdersReportRequest struct {
	UserID string `json:"user_id"`
}

type TopUsersByOrdersRequest struct {
	TopN int `json:"top_n"`
}
