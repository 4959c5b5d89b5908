package main

import (
	"github.com/spf13/cobra"

	"go-hfchat/internal/chat"
	"go-hfchat/internal/cli"
)

func newRootCmd() *cobra.Command {
	var flags cli.Flags

	cmd := &cobra.Command{
		Use:   "hfchat",
		Short: "Interactive chat with a streamed LLM",
		Long: `hfchat keeps an in-memory conversation with the configured model. Every
message resends the conversation so far.

Commands: clear, history, help, exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.Setup(cmd.Context(), cmd, &flags)
			if err != nil {
				return err
			}
			defer app.Close()

			out := cmd.OutOrStdout()
			session := chat.NewSession(app.Client, out, app.ChatOptions())
			return chat.NewREPL(session, cmd.InOrStdin(), out, app.SessionID).Run(cmd.Context())
		},
	}
	flags.Register(cmd)
	return cmd
}

func main() {
	cli.Execute(newRootCmd())
}
