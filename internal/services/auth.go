package services

import (
	"context"

	"github.com/GregMSThompson/bank-portal/internal/dto"
	"github.com/GregMSThompson/bank-portal/internal/formsubmit"
	"github.com/GregMSThompson/bank-portal/internal/session"
)

type authAPI interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
}

var LoginSchema = formsubmit.Schema{
	{Name: "id", Label: "User ID", Kind: formsubmit.Integer, Required: true},
	{Name: "password", Label: "Password", Kind: formsubmit.Text, Required: true},
	{Name: "userType", Label: "User type", Kind: formsubmit.Choice, Required: true,
		Options: []string{string(dto.RoleCustomer), string(dto.RoleEmployee)}},
}

// HomeFor is where a role lands after signing in.
func HomeFor(role dto.Role) string {
	if role == dto.RoleCustomer {
		return "/customer"
	}
	return "/home"
}

type authService struct {
	api authAPI
}

func NewAuthService(api authAPI) *authService {
	return &authService{api: api}
}

// LoginForm checks credentials with the API and hands the resulting
// identity to start, which persists it. A failure in start fails the login.
func (s *authService) LoginForm(start func(ctx context.Context, id session.Identity) error) *formsubmit.Controller[dto.LoginRequest, session.Identity] {
	return formsubmit.New(formsubmit.Config[dto.LoginRequest, session.Identity]{
		Schema: LoginSchema,
		Build: func(v formsubmit.Values) (dto.LoginRequest, error) {
			return dto.LoginRequest{
				ID:       v.String("id"),
				Password: v.String("password"),
				UserType: dto.Role(v.String("userType")),
			}, nil
		},
		Submit: func(ctx context.Context, req dto.LoginRequest) (session.Identity, error) {
			resp, err := s.api.Login(ctx, req)
			if err != nil {
				return session.Identity{}, err
			}
			id := session.Identity{UserID: req.ID, Role: req.UserType}
			// customers are identified by the id the API returns
			if req.UserType == dto.RoleCustomer && resp.UserData.ID != "" {
				id.UserID = resp.UserData.ID.String()
			}
			if err := start(ctx, id); err != nil {
				return session.Identity{}, err
			}
			return id, nil
		},
		Fallback: "Login failed",
	})
}
