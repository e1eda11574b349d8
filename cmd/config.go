package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/workspace-mcp/internal/auth"
)

// authOptions collects the flags every command that touches credentials
// shares: where the account registry, client identity and token files live,
// and how the interactive flow behaves.
type authOptions struct {
	accountsFile     string
	clientSecretFile string
	credentialsDir   string
	defaultAccount   string
	callbackPort     int
	authTimeout      time.Duration
}

func (o *authOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.accountsFile, "accounts-file", "", "Path to the YAML account registry. Can also use WORKSPACE_MCP_ACCOUNTS_FILE env var. Default: <config-dir>/accounts.yaml")
	cmd.Flags().StringVar(&o.clientSecretFile, "client-secret-file", "", "Path to the Google OAuth client secret JSON. Can also use WORKSPACE_MCP_CLIENT_SECRET_FILE env var. Default: <config-dir>/client_secret.json")
	cmd.Flags().StringVar(&o.credentialsDir, "credentials-dir", "", "Directory for stored token files. Can also use WORKSPACE_MCP_CREDENTIALS_DIR env var. Default: <config-dir>/credentials")
	cmd.Flags().StringVar(&o.defaultAccount, "default-account", "", "Account email used when a tool call names none. Can also use WORKSPACE_MCP_DEFAULT_ACCOUNT env var.")
	cmd.Flags().IntVar(&o.callbackPort, "callback-port", auth.DefaultCallbackPort, "Local port for the OAuth callback listener. Must match the redirect URI registered for the OAuth client.")
	cmd.Flags().DurationVar(&o.authTimeout, "auth-timeout", auth.DefaultAuthTimeout, "How long to wait for the user to complete the consent flow.")
}

// resolve applies environment fallbacks and config-dir defaults. Flags win
// over environment variables, which win over defaults.
func (o *authOptions) resolve() error {
	if o.accountsFile == "" {
		o.accountsFile = os.Getenv("WORKSPACE_MCP_ACCOUNTS_FILE")
	}
	if o.clientSecretFile == "" {
		o.clientSecretFile = os.Getenv("WORKSPACE_MCP_CLIENT_SECRET_FILE")
	}
	if o.credentialsDir == "" {
		o.credentialsDir = os.Getenv("WORKSPACE_MCP_CREDENTIALS_DIR")
	}
	if o.defaultAccount == "" {
		o.defaultAccount = os.Getenv("WORKSPACE_MCP_DEFAULT_ACCOUNT")
	}

	if o.accountsFile != "" && o.clientSecretFile != "" && o.credentialsDir != "" {
		return nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return fmt.Errorf("cannot determine config directory (set --accounts-file, --client-secret-file and --credentials-dir explicitly): %w", err)
	}
	dir := filepath.Join(base, "workspace-mcp")
	applyConfigDirDefaults(o, dir)
	return nil
}

// applyConfigDirDefaults fills the unset path options from the conventional
// layout under dir.
func applyConfigDirDefaults(o *authOptions, dir string) {
	if o.accountsFile == "" {
		o.accountsFile = filepath.Join(dir, "accounts.yaml")
	}
	if o.clientSecretFile == "" {
		o.clientSecretFile = filepath.Join(dir, "client_secret.json")
	}
	if o.credentialsDir == "" {
		o.credentialsDir = filepath.Join(dir, "credentials")
	}
}

// buildManager loads the registry and client identity and wires them into a
// credential lifecycle manager.
func (o *authOptions) buildManager(logger *slog.Logger, recorder auth.FlowRecorder) (*auth.Manager, error) {
	registry, err := auth.LoadRegistry(o.accountsFile)
	if err != nil {
		return nil, err
	}

	client, err := auth.NewClientFromFile(o.clientSecretFile, auth.DefaultScopes)
	if err != nil {
		return nil, err
	}

	return auth.NewManager(auth.Config{
		Registry:     registry,
		Store:        auth.NewStore(o.credentialsDir, logger),
		Client:       client,
		CallbackPort: o.callbackPort,
		AuthTimeout:  o.authTimeout,
		Metrics:      recorder,
		Logger:       logger,
	})
}
