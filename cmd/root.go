package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	shoprender "github.com/bnema/shopscript-cli/internal/adapters/render/shop"
	"github.com/bnema/shopscript-cli/internal/domain"
	"github.com/bnema/shopscript-cli/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Execute() error {
	root := newRootCmd()
	err := root.Execute()
	if err != nil {
		printError(root.ErrOrStderr(), err)
	}
	return err
}

func newRootCmd() *cobra.Command {
	var showStats bool

	config := viper.New()
	config.SetEnvPrefix("SHOPSCRIPT")
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	config.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:           "ss",
		Short:         "ShopScript CLI (ss): shop from the terminal",
		Long:          "ss talks to a ShopScript storefront backend: sign in, browse products, manage the cart and place orders. Sessions are kept per profile and refreshed automatically.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("profile", "", "Profile to use (default: the active profile)")
	flags.String("log-level", logging.DefaultLevel, "Log level: trace, debug, info, warn, error")
	flags.String("log-format", logging.FormatConsole, "Log format: console or json")
	flags.BoolVar(&showStats, "stats", false, "Print request counters after the command")

	_ = config.BindPFlag(keyProfile, flags.Lookup("profile"))
	_ = config.BindPFlag(keyLogLevel, flags.Lookup("log-level"))
	_ = config.BindPFlag(keyLogFormat, flags.Lookup("log-format"))

	app, err := wireApp(config)
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		logger, err := logging.New(cmd.ErrOrStderr(), config.GetString(keyLogLevel), config.GetString(keyLogFormat))
		if err != nil {
			return err
		}
		app.logger = logger
		return nil
	}
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, _ []string) error {
		if !showStats {
			return nil
		}
		return writeStats(cmd.ErrOrStderr(), app.registry)
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newProfileCmd(app),
		newLoginCmd(app),
		newRegisterCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newSessionCmd(app),
		newCartCmd(app),
		newProductsCmd(app),
		newOrdersCmd(app),
		newCheckoutCmd(app),
	)

	return rootCmd
}

// printError renders API failures with user-facing copy and anything else
// verbatim.
func printError(w io.Writer, err error) {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		if view, renderErr := shoprender.RenderError(apiErr); renderErr == nil {
			_, _ = fmt.Fprintln(w, view)
			return
		}
	}
	_, _ = fmt.Fprintln(w, "Error:", err)
}
