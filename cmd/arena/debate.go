package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/lorenzotomasdiez/debate-arena/internal/config"
	"github.com/lorenzotomasdiez/debate-arena/internal/debate"
	"github.com/lorenzotomasdiez/debate-arena/internal/openrouter"
	"github.com/lorenzotomasdiez/debate-arena/internal/output"
	"github.com/lorenzotomasdiez/debate-arena/internal/session"
)

func newDebateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debate",
		Short: "Run a five-round persona debate on a topic",
		RunE:  runDebate,
	}
	cmd.Flags().String("topic", "", "Debate topic (required)")
	cmd.Flags().String("name", "", "Override output folder name (default: auto-slug from topic)")
	cmd.Flags().String("output-dir", "output", "Output directory for results")
	cmd.MarkFlagRequired("topic")
	return cmd
}

func runDebate(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	name, _ := cmd.Flags().GetString("name")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	apiKey, _ := cmd.Root().PersistentFlags().GetString("api-key")
	envFile, _ := cmd.Root().PersistentFlags().GetString("env-file")

	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}
	if apiKey == "" {
		apiKey = os.Getenv("OPENROUTER_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key required: set --api-key flag or OPENROUTER_API_KEY env var")
	}

	// Setup context with Ctrl+C cancellation
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := openrouter.NewClient(apiKey)
	if appURL := os.Getenv("ARENA_APP_URL"); appURL != "" {
		client.SetAppURL(appURL)
	}

	// Setup output directory
	slug := name
	if slug == "" {
		slug = output.GenerateSlug(topic)
	}
	outDir, err := output.CreateOutputDir(outputDir, slug)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	writer := output.NewWriter(outDir)

	store := session.NewMemoryStore()
	sess := session.New(topic, nil)
	store.Put(sess)

	engine := debate.NewEngine(client)
	orch := session.NewOrchestrator(engine, client, store)

	var lastRound debate.RoundType
	store.Subscribe(sess.ID, func(event string, data any) {
		switch event {
		case "participants":
			if roster, ok := data.([]debate.RosterEntry); ok {
				output.PrintRoster(roster)
			}
		case "debate_message":
			msg, ok := data.(debate.Message)
			if !ok {
				return
			}
			if msg.Round != lastRound {
				output.PrintRoundHeader(msg.Round)
				lastRound = msg.Round
			}
			output.PrintMessage(msg)
			writer.Log(fmt.Sprintf("[R%d] %s: %s", msg.RoundNumber, msg.Role, msg.Content))
		case "message":
			if a, ok := data.(debate.Activity); ok {
				output.PrintActivity(a)
				writer.Log(a.Content)
			}
		case "orchestrator_error":
			if e, ok := data.(debate.ErrorData); ok {
				fmt.Fprintf(os.Stderr, "warning: %s\n", e.Error)
				writer.Log("error: " + e.Error)
			}
		}
	})

	fmt.Printf("Debate: %s\n", topic)
	fmt.Printf("Output: %s\n", outDir)

	orch.Run(ctx, sess.ID)

	final, ok := store.Get(sess.ID)
	if !ok {
		return fmt.Errorf("session lost during debate")
	}
	if final.Status == session.StatusError {
		writer.WriteLog()
		return fmt.Errorf("debate failed, see %s", outDir)
	}
	if final.Conclusion != "" {
		output.PrintConclusion(final.ConclusionAgent, final.Conclusion)
	}

	if err := writer.WriteJSON(final); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	if err := writer.WriteMarkdown(final); err != nil {
		return fmt.Errorf("writing markdown: %w", err)
	}
	if err := writer.WriteLog(); err != nil {
		return fmt.Errorf("writing log: %w", err)
	}

	fmt.Printf("\nDebate complete. Output saved to: %s\n", outDir)
	return nil
}
