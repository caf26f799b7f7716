package auth

import (
	"context"

	"github.com/datafoundry/bazaar/internal/common"
	"github.com/datafoundry/bazaar/internal/model"
)

// StaticAuthenticator accepts exactly one credential pair. It stands in for
// a real identity provider in demo and development environments.
type StaticAuthenticator struct {
	Username string
	Password string
	User     model.User
}

// NewDemoAuthenticator returns the authenticator used by demo deployments.
func NewDemoAuthenticator() *StaticAuthenticator {
	return &StaticAuthenticator{
		Username: "admin",
		Password: "admin",
		User: model.User{
			Username: "admin",
			Name:     "Administrator",
			Email:    "admin@datamarketplace.com",
			Role:     model.RoleAdmin,
		},
	}
}

// Authenticate checks the credential pair against the configured one.
func (a *StaticAuthenticator) Authenticate(_ context.Context, username, password string) (*model.User, error) {
	if username != a.Username || password != a.Password {
		return nil, common.NewUserError("invalid username or password", common.ErrInvalidCredentials)
	}

	user := a.User
	return &user, nil
}
