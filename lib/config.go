package lib

import (
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	ini "github.com/vaughan0/go-ini"
)

const (
	// RoleARNConfigKey is the profile key naming the role to assume.
	RoleARNConfigKey = "amz-assume-role-arn"

	// RoleARNEnvVar is consulted when the profile carries no role.
	RoleARNEnvVar = "AWS_ROLE_ARN_KEY"
)

type Profiles map[string]map[string]string

type config interface {
	Parse() (Profiles, error)
}

type fileConfig struct {
	file string
}

// NewConfigFromEnv locates the aws config file: $AWS_CONFIG_FILE if set,
// ~/.aws/config otherwise. A missing file is not an error, it parses to an
// empty profile set.
func NewConfigFromEnv() (config, error) {
	file := os.Getenv("AWS_CONFIG_FILE")
	if file == "" {
		home, err := homedir.Dir()
		if err != nil {
			return nil, err
		}
		file = filepath.Join(home, "/.aws/config")
		if _, err := os.Stat(file); os.IsNotExist(err) {
			file = ""
		}
	}
	return &fileConfig{file: file}, nil
}

func (c *fileConfig) Parse() (Profiles, error) {
	if c.file == "" {
		return Profiles{}, nil
	}

	log.Debugf("parsing config file %s", c.file)
	f, err := ini.LoadFile(c.file)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing config file %q", c.file)
	}

	profiles := Profiles{}
	for sectionName, section := range f {
		profiles[strings.TrimPrefix(sectionName, "profile ")] = section
	}

	return profiles, nil
}

// RoleARN resolves the role to assume for profile: the profile's
// amz-assume-role-arn key wins, then the AWS_ROLE_ARN_KEY environment
// variable, then empty. Empty means the provider declines and the default
// credential chain is used.
//
// This lookup happens once, when the provider is constructed; the role is
// never re-read afterwards.
func (p Profiles) RoleARN(profile string) string {
	if arn := p[profile][RoleARNConfigKey]; arn != "" {
		return arn
	}
	if arn := os.Getenv(RoleARNEnvVar); arn != "" {
		log.Debugf("no %s in profile %q, using %s from environment", RoleARNConfigKey, profile, RoleARNEnvVar)
		return arn
	}
	log.Debugf("no role in profile %q or %s, not assuming a role", profile, RoleARNEnvVar)
	return ""
}
