package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"go-hfchat/internal/chat"
	"go-hfchat/internal/cli"
	"go-hfchat/internal/config"
)

func newRootCmd() *cobra.Command {
	var flags cli.Flags

	cmd := &cobra.Command{
		Use:   "hfask [prompt]",
		Short: "Send one prompt and print the streamed reply",
		Long: `hfask sends a single user message to the configured inference provider
and prints the reply as it is generated.

Without a prompt it asks "` + config.DefaultPrompt + `".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.Setup(cmd.Context(), cmd, &flags)
			if err != nil {
				return err
			}
			defer app.Close()

			prompt := strings.TrimSpace(strings.Join(args, " "))
			if prompt == "" {
				prompt = config.DefaultPrompt
			}

			out := cmd.OutOrStdout()
			if _, err := chat.Ask(cmd.Context(), app.Client, out, app.ChatOptions(), prompt); err != nil {
				fmt.Fprintln(out)
				return err
			}
			fmt.Fprintln(out)
			return nil
		},
	}
	flags.Register(cmd)
	return cmd
}

func main() {
	cli.Execute(newRootCmd())
}
