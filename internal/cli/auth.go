package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <username> <email> <password>",
	Short: "Create a new account",
	Long:  `Create a new account. Registration does not log you in; run login afterwards.`,
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		app, err := newApp()
		if err != nil {
			fail(err, 1)
		}
		if err := app.session.Register(ctx, args[0], args[1], args[2]); err != nil {
			fail(err, 1)
		}
		fmt.Printf("Account %q created. Run `dropclient login %s <password>` to sign in.\n", args[0], args[0])
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <username> <password>",
	Short: "Sign in and persist the session",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		app, err := newApp()
		if err != nil {
			fail(err, 1)
		}
		if err := app.session.Login(ctx, args[0], args[1]); err != nil {
			fail(err, 1)
		}
		user := app.session.User()
		fmt.Printf("Logged in as %s. Balance: %d coins.\n", user.Username, app.session.Balance())
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		app, err := newApp()
		if err != nil {
			fail(err, 1)
		}
		app.session.Logout(ctx)
		fmt.Println("Logged out.")
	},
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the current user and balance",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		app, err := newApp()
		if err != nil {
			fail(err, 1)
		}
		if exitCode := runMe(ctx, app, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(meCmd)
}

// runMe prints the current user and returns an exit code.
func runMe(ctx context.Context, app *app, w io.Writer) int {
	user := app.session.User()
	if user == nil {
		fmt.Fprintln(w, "Not logged in.")
		return 1
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]any{
			"username": user.Username,
			"email":    user.Email,
			"balance":  app.session.Balance(),
		}, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "User:    %s\nEmail:   %s\nBalance: %d coins\n",
		user.Username, user.Email, app.session.Balance())
	return 0
}
