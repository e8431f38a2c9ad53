package dto

type Role string

const (
	RoleCustomer Role = "customer"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleEmployee
}

type LoginRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
	UserType Role   `json:"userType"`
}

type LoginUserData struct {
	ID FlexibleID `json:"id"`
}

type LoginResponse struct {
	Success  bool          `json:"success"`
	UserData LoginUserData `json:"userData"`
	Error    string        `json:"error,omitempty"`
}
