package wire

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/taskboard/internal/domain"
)

// User is the backend's user record.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
}

// FromUser converts a wire user to the domain type.
func FromUser(u User) domain.User {
	return domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: parseTime(u.CreatedAt),
	}
}

// DecodeUser decodes a bare or {"user": ...} wrapped user.
func DecodeUser(data []byte) (*domain.User, error) {
	var u User
	if err := json.Unmarshal(unwrap(data, "user"), &u); err != nil {
		return nil, fmt.Errorf("decoding user: %w", err)
	}
	out := FromUser(u)
	return &out, nil
}

// ErrMissingToken is returned when a login response carries no token.
var ErrMissingToken = errors.New("login response has no access token")

type authResponse struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token"`
	User        *User  `json:"user"`
}

// DecodeAuthResult decodes the login response {"access_token": ..., "user": {...}}.
func DecodeAuthResult(data []byte) (*domain.AuthResult, error) {
	var r authResponse
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decoding login response: %w", err)
	}
	token := domain.CoalesceStr(r.AccessToken, r.Token)
	if token == "" {
		return nil, ErrMissingToken
	}
	res := &domain.AuthResult{Token: token}
	if r.User != nil {
		res.User = FromUser(*r.User)
	}
	return res, nil
}

// LoginBody is the POST auth/login payload.
type LoginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewLoginBody builds a login payload.
func NewLoginBody(req domain.LoginRequest) LoginBody {
	return LoginBody{Email: req.Email, Password: req.Password}
}

// RegisterBody is the POST auth/register payload.
type RegisterBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// NewRegisterBody builds a registration payload.
func NewRegisterBody(req domain.RegisterRequest) RegisterBody {
	return RegisterBody{Email: req.Email, Password: req.Password, Name: req.Name}
}

// Member is a team member as listed by team/members.
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DecodeMembers decodes a bare array or {"members": [...]}.
func DecodeMembers(data []byte) ([]domain.TeamMember, error) {
	items, _, err := decodeList[Member](data, "members")
	if err != nil {
		return nil, err
	}
	out := make([]domain.TeamMember, 0, len(items))
	for _, m := range items {
		out = append(out, domain.TeamMember{ID: m.ID, Name: m.Name, Email: m.Email})
	}
	return out, nil
}
