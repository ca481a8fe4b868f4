package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkretz/budgetwatch/internal/clickup"
	"github.com/mkretz/budgetwatch/internal/config"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the API credential",
}

var authTokenCmd = &cobra.Command{
	Use:   "token <token>",
	Short: "Store a personal API token",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthToken,
}

var authLoginCmd = &cobra.Command{
	Use:   "login <code>",
	Short: "Exchange an OAuth authorization code for a token",
	Long: `Exchanges an OAuth authorization code for an access token and stores it.
Requires oauth.client_id and oauth.client_secret in ~/.budgetwatch/config.json.
Run without arguments to print the authorization URL to open in a browser.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored credential",
	Args:  cobra.NoArgs,
	RunE:  runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a credential is stored",
	Args:  cobra.NoArgs,
	RunE:  runAuthStatus,
}

func init() {
	authCmd.AddCommand(authTokenCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
}

func runAuthToken(cmd *cobra.Command, args []string) error {
	store := openStore()
	if err := store.SetToken(args[0]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	fmt.Println("Token stored.")
	return nil
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.OAuth.ClientID == "" || cfg.OAuth.ClientSecret == "" {
		fmt.Fprintln(os.Stderr, "OAuth app credentials are not configured; set oauth.client_id and oauth.client_secret in the config file, or use 'budgetwatch auth token' instead.")
		os.Exit(1)
	}

	if len(args) == 0 {
		fmt.Println("Open the following page, grant access, and re-run with the code you receive:")
		fmt.Printf("  %s\n", clickup.AuthorizeURL(cfg.OAuth.ClientID, cfg.OAuth.RedirectURI))
		return nil
	}

	token, err := clickup.ExchangeCode(cmd.Context(), cfg.OAuth.ClientID, cfg.OAuth.ClientSecret, args[0], cfg.API.BaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	store := openStore()
	if err := store.SetToken(token); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	fmt.Println("Signed in; token stored.")
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	store := openStore()
	if err := store.ClearToken(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	fmt.Println("Credential removed.")
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	store := openStore()
	if store.HasToken() {
		fmt.Println("A credential is stored.")
	} else {
		fmt.Println("No credential stored. Add one with 'budgetwatch auth token <token>'.")
	}
	return nil
}
