package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// envCmd represents the env command
var envCmd = &cobra.Command{
	Use:     "env <profile>",
	Short:   "env prints out export commands for the assumed role credentials",
	RunE:    envRun,
	Example: "source <(aws-role env data-lake)",
}

func init() {
	RootCmd.AddCommand(envCmd)
}

func printExport(varName, varValue string) {
	exportString := "export %s=%s\n"
	myShell, hasShell := os.LookupEnv("SHELL")
	if hasShell && strings.Contains(myShell, "fish") {
		exportString = "set -x %s %s\n"
	}
	fmt.Printf(exportString, varName, varValue)
}

func envRun(cmd *cobra.Command, args []string) error {
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

	printExport("AWS_ACCESS_KEY_ID", creds.AccessKeyID)
	printExport("AWS_SECRET_ACCESS_KEY", creds.SecretAccessKey)
	printExport("AWS_SESSION_TOKEN", creds.SessionToken)
	printExport("AWS_ROLE_SESSION_EXPIRATION", creds.Expiration.Format(time.RFC3339))

	return nil
}
