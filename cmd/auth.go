package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teemow/workspace-mcp/internal/auth"
	"github.com/teemow/workspace-mcp/internal/logging"
)

func newAuthCmd() *cobra.Command {
	var (
		authOpts  authOptions
		debugMode bool
		manual    bool
	)

	cmd := &cobra.Command{
		Use:   "auth <email>",
		Short: "Authorize a Google account",
		Long: `Run the OAuth2 authorization flow for a configured account and persist
the resulting credential. The account must be listed in the accounts file.

By default a browser is opened for consent and a local listener receives
the redirect. With --manual the consent URL is printed instead and the
authorization code is read from stdin, for machines without a browser.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := authOpts.resolve(); err != nil {
				return err
			}
			return runAuth(cmd, authOpts, args[0], debugMode, manual)
		},
	}

	authOpts.addFlags(cmd)
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().BoolVar(&manual, "manual", false, "Print the consent URL and read the authorization code from stdin instead of opening a browser")

	return cmd
}

func runAuth(cmd *cobra.Command, authOpts authOptions, email string, debugMode, manual bool) error {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := logging.Setup(os.Stderr, debugMode)

	manager, err := authOpts.buildManager(logger, nil)
	if err != nil {
		return err
	}

	if manual {
		return runManualAuth(ctx, cmd, manager, email)
	}

	cred, err := manager.Ensure(ctx, email)
	if err != nil {
		var timeoutErr *auth.AuthTimeoutError
		if errors.As(err, &timeoutErr) && timeoutErr.AuthURL != "" {
			cmd.PrintErrf("Authorization timed out. Open this URL manually and retry with --manual:\n\n  %s\n\n", timeoutErr.AuthURL)
		}
		return err
	}

	cmd.Printf("Authorized %s\n", cred.Email)
	if cred.Email != email {
		cmd.Printf("Note: the Google account consented as %s; the credential is stored under that email.\n", cred.Email)
	}
	return nil
}

func runManualAuth(ctx context.Context, cmd *cobra.Command, manager *auth.Manager, email string) error {
	url, err := manager.BeginManual(email)
	if err != nil {
		return err
	}

	cmd.Printf("Open this URL in a browser and approve access:\n\n  %s\n\n", url)
	cmd.Printf("Paste the authorization code: ")

	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read authorization code: %w", err)
	}
	code := strings.TrimSpace(line)
	if code == "" {
		return fmt.Errorf("no authorization code provided")
	}

	cred, err := manager.CompleteManual(ctx, email, code)
	if err != nil {
		return err
	}

	cmd.Printf("Authorized %s\n", cred.Email)
	return nil
}

func newAccountsCmd() *cobra.Command {
	var (
		authOpts authOptions
	)

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List configured accounts and their credential state",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := authOpts.resolve(); err != nil {
				return err
			}
			return runAccounts(cmd, authOpts)
		},
	}

	authOpts.addFlags(cmd)

	return cmd
}

func runAccounts(cmd *cobra.Command, authOpts authOptions) error {
	logger := logging.Setup(os.Stderr, false)

	manager, err := authOpts.buildManager(logger, nil)
	if err != nil {
		return err
	}

	registry := manager.Registry()
	if registry.Len() == 0 {
		cmd.Printf("No accounts configured in %s\n", authOpts.accountsFile)
		return nil
	}

	for _, account := range registry.Accounts() {
		state, err := manager.Inspect(account.Email)
		if err != nil {
			return fmt.Errorf("failed to inspect %s: %w", account.Email, err)
		}

		line := fmt.Sprintf("%s\t%s", account.Email, state)
		if account.Email == authOpts.defaultAccount {
			line += "\t[default]"
		}
		if account.AccountType != "" {
			line += "\t" + account.AccountType
		}
		cmd.Println(line)
	}
	return nil
}
