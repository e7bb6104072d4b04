package cmd

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sts"
	"github.com/pkg/errors"

	"github.com/datalake-tools/aws-role/lib"
)

func loadProfiles() (lib.Profiles, error) {
	config, err := lib.NewConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return config.Parse()
}

// newRoleProvider builds a provider for the given profile against the real
// STS API. The role lookup (profile key, then environment) happens here, once.
func newRoleProvider(profile string) (*lib.RoleProvider, error) {
	profiles, err := loadProfiles()
	if err != nil {
		return nil, err
	}
	if _, ok := profiles[profile]; !ok {
		return nil, fmt.Errorf("profile '%s' not found in your aws config", profile)
	}

	sess, err := session.NewSession()
	if err != nil {
		return nil, errors.Wrap(err, "creating aws session")
	}

	return lib.NewRoleProvider(sts.New(sess), profiles.RoleARN(profile), lib.RoleProviderOptions{}), nil
}

// retrieveCredentials resolves credentials for the CLI, where "no role" and
// "STS unreachable" should be told to the user instead of silently falling
// back like the in-process provider chain does.
func retrieveCredentials(profile string) (*lib.SessionCredentials, error) {
	provider, err := newRoleProvider(profile)
	if err != nil {
		return nil, err
	}
	if provider.RoleARN() == "" {
		return nil, fmt.Errorf("no %s in profile '%s' and %s is not set", lib.RoleARNConfigKey, profile, lib.RoleARNEnvVar)
	}

	creds := provider.Credentials()
	if creds == nil {
		return nil, fmt.Errorf("unable to assume role for profile '%s'", profile)
	}
	return creds, nil
}
