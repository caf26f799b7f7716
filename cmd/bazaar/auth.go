package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/datafoundry/bazaar/internal/cli"
)

func loginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the marketplace",
		Long:  `Log in to the marketplace. Credentials are prompted for when not passed as flags.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svcs, err := initServices(ctx)
			if err != nil {
				return err
			}
			defer svcs.close()

			if username == "" {
				fmt.Print(cli.FormatPrompt("Username"))
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("failed to read username: %w", err)
				}
				username = strings.TrimSpace(line)
			}

			if password == "" {
				fmt.Print(cli.FormatPrompt("Password"))
				raw, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Println()
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = string(raw)
			}

			user, err := svcs.session.Login(ctx, username, password)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Logged in as %s (%s)", user.Name, user.Role)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svcs, err := initServices(ctx)
			if err != nil {
				return err
			}
			defer svcs.close()

			svcs.session.Logout(ctx)
			fmt.Println(cli.FormatSuccess("Logged out"))
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svcs, err := initServices(ctx)
			if err != nil {
				return err
			}
			defer svcs.close()

			user := svcs.session.CurrentUser()
			if user == nil {
				fmt.Println(cli.FormatInfo("Not logged in"))
				return nil
			}

			fmt.Println(cli.FormatTitle(user.Name))
			fmt.Printf("  Username: %s\n", user.Username)
			fmt.Printf("  Email:    %s\n", user.Email)
			fmt.Printf("  Role:     %s\n", user.Role)
			return nil
		},
	}
}
