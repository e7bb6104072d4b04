package lib

import (
	"errors"

	"github.com/aws/aws-sdk-go/aws/credentials"
)

// ErrRoleNotConfigured is returned by CredentialsProvider.Retrieve when the
// provider has no role to assume, or when no session could ever be started.
// In a credentials.ChainProvider this makes the chain move on to the default
// providers, which is the intended fallback.
var ErrRoleNotConfigured = errors.New("no assume role configured")

const providerName = "aws-role"

// CredentialsProvider adapts a RoleProvider to the aws-sdk-go
// credentials.Provider interface so it can sit in a provider chain.
type CredentialsProvider struct {
	Provider *RoleProvider
}

func (a *CredentialsProvider) Retrieve() (credentials.Value, error) {
	creds := a.Provider.Credentials()
	if creds == nil {
		return credentials.Value{ProviderName: providerName}, ErrRoleNotConfigured
	}
	return credentials.Value{
		AccessKeyID:     creds.AccessKeyID,
		SecretAccessKey: creds.SecretAccessKey,
		SessionToken:    creds.SessionToken,
		ProviderName:    providerName,
	}, nil
}

// IsExpired tells the SDK when to call Retrieve again.
func (a *CredentialsProvider) IsExpired() bool {
	return a.Provider.Stale()
}

// NewCredentials wraps p for direct use in an aws.Config.
func NewCredentials(p *RoleProvider) *credentials.Credentials {
	return credentials.NewCredentials(&CredentialsProvider{Provider: p})
}
