package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jacksmith/footy/internal/cli"
	"github.com/jacksmith/footy/internal/session"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Sign in to manage favorites",
	Long: `Sign in with the configured username and password.

The password is read from --password, or prompted for when omitted. Unless
username and password_hash are configured, the credentials are admin and
password123.

Examples:
  footy login admin
  footy login admin --password password123`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Print a bcrypt hash for the password_hash setting",
	Long: `Read a password and print its bcrypt hash.

Put the output in .footyconfig.yaml as password_hash to replace the default
password.`,
	Args: cobra.NoArgs,
	RunE: runHashPassword,
}

var loginPassword string

// passwordInput is where passwords are read from when not given as a flag.
var passwordInput io.Reader = os.Stdin

func init() {
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password (prompted for when omitted)")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, hashPasswordCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	password := loginPassword
	if password == "" {
		var err error
		if password, err = readPassword("Password: "); err != nil {
			return err
		}
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := a.Sessions.Login(ctx, args[0], password)
	switch {
	case errors.Is(err, session.ErrMissingCredentials):
		return &cli.ValidationError{Message: "username and password are required"}
	case err != nil:
		return err
	}

	fmt.Printf("Signed in as %s until %s.\n", s.Username, s.ExpiresAt.Local().Format("2006-01-02 15:04"))
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Sessions.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := a.Sessions.Current(ctx)
	if errors.Is(err, session.ErrNotLoggedIn) {
		fmt.Println("Not signed in.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("%s (session expires %s)\n", s.Username, s.ExpiresAt.Local().Format("2006-01-02 15:04"))
	return nil
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	hash, err := session.HashPassword(password)
	if err != nil {
		return &cli.ValidationError{Field: "password", Message: "must not be empty"}
	}
	fmt.Println(hash)
	return nil
}

// readPassword prompts without echo on a terminal, or reads one line
// otherwise.
func readPassword(prompt string) (string, error) {
	if f, ok := passwordInput.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(os.Stderr, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(passwordInput).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
