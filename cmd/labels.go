package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/venom/internal/labeltext"
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "Print the labels as the label editor shows them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if configErr != nil {
			return configErr
		}
		cleanup := setupLogging()
		defer cleanup()

		backend, st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = backend.Close() }()

		text := labeltext.Encode(st.Labels(), cfg.LabelFormat())
		if text == "" {
			return nil
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	},
}

func init() {
	rootCmd.AddCommand(labelsCmd)
}
