package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/datalake-tools/aws-role/lib"
)

const credProcessVersion = 1

var pretty bool

type credProcess struct {
	Version         int    `json:"Version"`
	AccessKeyID     string `json:"AccessKeyId"`
	SecretAccessKey string `json:"SecretAccessKey"`
	SessionToken    string `json:"SessionToken"`
	Expiration      string `json:"Expiration"`
}

// credProcessCmd represents the cred-process command
var credProcessCmd = &cobra.Command{
	Use:     "cred-process <profile>",
	Short:   "cred-process generates a credential_process ready output",
	RunE:    credProcessRun,
	Example: "[profile data-lake]\ncredential_process = aws-role cred-process data-lake",
}

func init() {
	RootCmd.AddCommand(credProcessCmd)
	credProcessCmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Pretty print display")
}

func credProcessOutput(creds *lib.SessionCredentials, pretty bool) ([]byte, error) {
	cp := credProcess{
		Version:         credProcessVersion,
		AccessKeyID:     creds.AccessKeyID,
		SecretAccessKey: creds.SecretAccessKey,
		SessionToken:    creds.SessionToken,
		Expiration:      creds.Expiration.Format(time.RFC3339),
	}
	if pretty {
		return json.MarshalIndent(cp, "", "    ")
	}
	return json.Marshal(cp)
}

func credProcessRun(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return ErrTooFewArguments
	}
	if len(args) > 1 {
		return ErrTooManyArguments
	}

	creds, err := retrieveCredentials(args[0])
	if err != nil {
		return err
	}

	output, err := credProcessOutput(creds, pretty)
	if err != nil {
		return err
	}

	fmt.Println(string(output))
	return nil
}
