package modtext

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/arthur-debert/modtext/pkg/cobrax/topics"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicFiles embed.FS

// setupTopics installs topic help on rootCmd. Failures only cost the topics,
// never the command line.
func setupTopics(rootCmd *cobra.Command) *topics.TopicManager {
	sub, err := fs.Sub(topicFiles, "topics")
	if err == nil {
		renderer := topics.NewGlamourRenderer()
		renderer.Plain = !stdoutIsTerminal()
		var tm *topics.TopicManager
		tm, err = topics.Initialize(rootCmd, sub, topics.Options{
			Extensions: []string{".md", ".txt"},
			Renderer:   renderer,
		})
		if err == nil {
			return tm
		}
	}
	log.Warn().Err(err).Msg("help topics unavailable")
	return nil
}

func newSyntaxCmd(tm *topics.TopicManager) *cobra.Command {
	return &cobra.Command{
		Use:     "syntax",
		Short:   MsgSyntaxShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tm == nil {
				return fmt.Errorf(MsgErrNoTopics)
			}
			topic, ok := tm.GetTopic("syntax")
			if !ok {
				return fmt.Errorf(MsgErrNoTopics)
			}
			out := cmd.OutOrStdout()
			if out == os.Stdout {
				_, err := fmt.Fprint(out, tm.Render(topic))
				return err
			}
			_, err := fmt.Fprint(out, topic.Content)
			return err
		},
	}
}
