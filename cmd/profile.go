package cmd

import (
	"fmt"
	"strings"
	"time"

	shoprender "github.com/bnema/shopscript-cli/internal/adapters/render/shop"
	"github.com/bnema/shopscript-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage backend profiles",
	}

	cmd.AddCommand(
		newProfileAddCmd(app),
		newProfileListCmd(app),
		newProfileUseCmd(app),
	)

	return cmd
}

func newProfileAddCmd(app *app) *cobra.Command {
	var (
		headers        []string
		connectTimeout time.Duration
		receiveTimeout time.Duration
		activate       bool
	)

	cmd := &cobra.Command{
		Use:   "add <name> <base-url>",
		Short: "Add or update a profile",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseHeaders(headers)
			if err != nil {
				return err
			}

			profile := domain.Profile{
				Name:           args[0],
				BaseURL:        strings.TrimRight(args[1], "/"),
				Headers:        parsed,
				ConnectTimeout: connectTimeout,
				ReceiveTimeout: receiveTimeout,
			}
			if err := app.profiles.Save(cmd.Context(), profile); err != nil {
				return err
			}
			if activate {
				if err := app.profiles.SetActive(cmd.Context(), profile.Name); err != nil {
					return err
				}
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved profile %s (%s)\n", profile.Name, profile.BaseURL)
			return err
		},
	}

	cmd.Flags().StringArrayVar(&headers, "header", nil, "Static request header as Name=Value (repeatable)")
	cmd.Flags().DurationVar(&connectTimeout, "connect-timeout", 0, "Connect timeout (default 30s)")
	cmd.Flags().DurationVar(&receiveTimeout, "receive-timeout", 0, "Receive timeout (default 30s)")
	cmd.Flags().BoolVar(&activate, "use", false, "Make this the active profile")

	return cmd
}

func newProfileListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles, err := app.profiles.List(cmd.Context())
			if err != nil {
				return err
			}
			active, err := app.profiles.Active(cmd.Context())
			if err != nil {
				return err
			}

			output, err := shoprender.RenderProfiles(profiles, active)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
			return err
		},
	}
}

func newProfileUseCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Set the active profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.profiles.SetActive(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Active profile: %s\n", args[0])
			return err
		},
	}
}

func parseHeaders(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	headers := make(map[string]string, len(raw))
	for _, entry := range raw {
		name, value, ok := strings.Cut(entry, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q: want Name=Value", entry)
		}
		if strings.EqualFold(name, "Authorization") {
			return nil, fmt.Errorf("the Authorization header is managed by the session")
		}
		headers[name] = strings.TrimSpace(value)
	}

	return headers, nil
}
