package main

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "keypanel",
		Short: "Manage the Gemini API key from the browser, the terminal or the shell",
		Long: heredoc.Doc(`
			keypanel hosts the API key settings dialog. Without a subcommand it
			serves the dialog over HTTP; "tui" shows it in the terminal and "key"
			manages the stored key directly.

			Configuration is read from KEYPANEL_* environment variables.
		`),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}

	root.AddCommand(
		newServeCmd(a),
		newTUICmd(a),
		newKeyCmd(a),
	)
	return root
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the settings page and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Show the API key dialog in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd.Context())
		},
	}
}

func newKeyCmd(a *app) *cobra.Command {
	key := &cobra.Command{
		Use:   "key",
		Short: "Inspect or replace the stored API key",
	}

	key.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show whether a key is stored, masked",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.keyStatus(cmd.Context(), cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "set",
			Short: "Store a new API key",
			Long: heredoc.Doc(`
				Reads a new API key and stores it. On a terminal the key is
				prompted for without echo; otherwise the first line of stdin is
				used, for example:

				  echo "$GEMINI_API_KEY" | keypanel key set
			`),
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.keySet(cmd.Context(), cmd.OutOrStdout())
			},
		},
	)
	return key
}
