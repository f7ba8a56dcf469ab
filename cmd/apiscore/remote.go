package main

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tashifkhan/faculty-appraisal-system/internal/adapters/http/api"
	"github.com/tashifkhan/faculty-appraisal-system/internal/client"
	"github.com/tashifkhan/faculty-appraisal-system/internal/domain/model"
	"github.com/tashifkhan/faculty-appraisal-system/internal/domain/types"
)

const (
	defaultURL      = "http://localhost:9080"
	defaultTokenTTL = 8 * time.Hour
)

// remoteFlags are shared by the commands that call a server.
type remoteFlags struct {
	url     string
	token   string
	userID  string
	timeout time.Duration
}

func (f *remoteFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.url, "url", defaultURL, "Base URL of the server")
	flags.StringVar(&f.token, "token", os.Getenv("APISCORE_TOKEN"), "Bearer token (default $APISCORE_TOKEN)")
	flags.StringVar(&f.userID, "user-id", "", "Faculty user id")
	flags.DurationVar(&f.timeout, "timeout", 30*time.Second, "HTTP request timeout")
	_ = cmd.MarkFlagRequired("user-id")
}

func (f *remoteFlags) client() *client.Client {
	return client.New(f.url, client.WithToken(f.token), client.WithTimeout(f.timeout))
}

func remoteError(err error) error {
	var se *client.StatusError
	if errors.As(err, &se) {
		return exitError(exitRemote, "%v", se)
	}
	return exitError(exitRemote, "request failed: %v", err)
}

type submitFlags struct {
	remoteFlags
	semester string
}

func newSubmitCmd() *cobra.Command {
	f := &submitFlags{}
	cmd := &cobra.Command{
		Use:   "submit <section> <payload-file>",
		Short: "Submit a JSON or YAML section payload to a running server",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, err := model.ParseSection(args[0])
			if err != nil {
				return exitError(exitInput, "%v", err)
			}
			payload, err := readPayload(args[1], cmd.InOrStdin())
			if err != nil {
				return exitError(exitInput, "%v", err)
			}
			resp, err := f.client().SubmitSection(cmd.Context(), section, types.SubmitRequest{
				UserID:   f.userID,
				Semester: f.semester,
				Data:     payload,
			})
			if err != nil {
				return remoteError(err)
			}
			return printJSON(cmd, resp)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&f.semester, "semester", "", "Semester of a 12.1 payload, e.g. odd or even")
	return cmd
}

func newGetCmd() *cobra.Command {
	f := &remoteFlags{}
	cmd := &cobra.Command{
		Use:   "get <section-key>",
		Short: "Print a stored section, e.g. 14 or 12.1_odd",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := model.ParseKey(args[0]); err != nil {
				return exitError(exitInput, "%v", err)
			}
			resp, err := f.client().GetSection(cmd.Context(), f.userID, args[0])
			if err != nil {
				return remoteError(err)
			}
			return printJSON(cmd, resp)
		},
	}
	f.register(cmd)
	return cmd
}

type tokenFlags struct {
	secret string
	userID string
	ttl    time.Duration
}

func newTokenCmd() *cobra.Command {
	f := &tokenFlags{}
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for a user, signed with the server's auth secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			auth := api.NewAuthenticator(f.secret)
			if auth == nil {
				return exitError(exitInput, "an auth secret is required (--secret or $APISCORE_AUTH_SECRET)")
			}
			token, err := auth.IssueToken(f.userID, f.ttl)
			if err != nil {
				return exitError(exitInput, "issue token: %v", err)
			}
			_, err = cmd.OutOrStdout().Write([]byte(token + "\n"))
			return err
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.secret, "secret", os.Getenv("APISCORE_AUTH_SECRET"), "HS256 secret (default $APISCORE_AUTH_SECRET)")
	flags.StringVar(&f.userID, "user-id", "", "Faculty user id the token is issued to")
	flags.DurationVar(&f.ttl, "ttl", defaultTokenTTL, "Token lifetime")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}
