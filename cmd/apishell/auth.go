package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var errNoTokenStore = errors.New("no token file configured (set --token-file)")

// credentials is the sign-in body the backend expects.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *app) loginCmd() *cobra.Command {
	var creds credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the returned token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.auth == nil {
				return errNoTokenStore
			}
			if _, err := a.auth.SignIn(cmd.Context(), creds); err != nil {
				return err
			}
			st := a.auth.Status()
			if st.ExpiresAt.IsZero() {
				fmt.Fprintf(cmd.OutOrStdout(), "signed in, token stored in %s\n", a.store.Path())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "signed in until %s, token stored in %s\n",
					st.ExpiresAt.Local().Format(time.RFC3339), a.store.Path())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and remove the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.auth == nil {
				return errNoTokenStore
			}
			err := a.auth.SignOut(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return err
		},
	}
}

func (a *app) sessionCmd() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Show the signed-in user's session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.auth == nil {
				return errNoTokenStore
			}
			resp, err := a.auth.Session(cmd.Context())
			if err != nil {
				return err
			}
			return writeResponse(cmd.OutOrStdout(), cmd.ErrOrStderr(), resp, raw)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the body exactly as received")
	return cmd
}

func (a *app) tokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Show whether a token is stored and when it expires",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if a.cfg.Token != "" {
				fmt.Fprintln(out, "using static token from --token / APISHELL_TOKEN")
				return nil
			}
			if a.auth == nil {
				return errNoTokenStore
			}
			st := a.auth.Status()
			switch {
			case !st.SignedIn:
				fmt.Fprintf(out, "not signed in (%s)\n", a.store.Path())
			case st.ExpiresAt.IsZero():
				fmt.Fprintf(out, "signed in, no expiry (%s)\n", a.store.Path())
			default:
				fmt.Fprintf(out, "signed in, expires %s (in %s)\n",
					st.ExpiresAt.Local().Format(time.RFC3339),
					time.Until(st.ExpiresAt).Round(time.Second))
			}
			return nil
		},
	}
}
