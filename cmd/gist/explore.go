package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"gist/internal/tui"
)

func newExploreCommand(opts *globalOptions) *cobra.Command {
	var topK int
	cmd := &cobra.Command{
		Use:   "explore <file|->",
		Short: "Summarize a document, then query it interactively",
		Long: `explore runs the same pipeline as the bare command, then opens a terminal
UI where each query returns the closest sentences from the document. With an
embedding backend the matching is semantic; otherwise queries are ranked by
token overlap.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, app, err := setup(cmd, opts, args)
			if err != nil {
				return fail(cmd, err)
			}
			session, err := app.pipeline.Open(cmd.Context(), doc)
			if err != nil {
				return fail(cmd, err)
			}
			k := app.cfg.Search.TopK
			if topK > 0 {
				k = topK
			}
			m := tui.New(session, doc.Path, k)
			if _, err := tea.NewProgram(m).Run(); err != nil {
				app.log.Error("explore UI failed", "err", err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&topK, "top-k", 0, "matches to return per query (default from config)")
	return cmd
}
