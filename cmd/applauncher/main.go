package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"applauncher-backend/config"
	"applauncher-backend/llm"
	"applauncher-backend/models"
	"applauncher-backend/service"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	verbose    bool
}

func (o *rootOptions) load() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	logger := zap.NewNop()
	if o.verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return nil, nil, err
		}
	}
	return cfg, logger, nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "applauncher",
		Short:         "Dutch reading-level simplifier and subsidy tooling",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "config.yaml", "path to the YAML config file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(newSimplifyCmd(opts), newChunkCmd(opts))
	return root
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		return string(b), err
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(b), nil
}

func newSimplifyCmd(root *rootOptions) *cobra.Command {
	var (
		level     string
		model     string
		preserved []string
		stream    bool
	)
	cmd := &cobra.Command{
		Use:   "simplify [file]",
		Short: "Rewrite a text to B1 or B2 and print the result in order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.load()
			if err != nil {
				return err
			}
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			completer, closer, err := llm.NewFromConfig(ctx, cfg.LLM, logger)
			if err != nil {
				return err
			}
			defer closer.Close()

			svc := service.NewSimplifyServiceFromConfig(cfg, completer, service.NewTokenizer(logger), logger)
			plan, err := svc.Prepare(service.SimplifyRequest{
				Text:           text,
				Model:          model,
				PreservedWords: preserved,
				Level:          level,
			})
			if err != nil {
				return err
			}

			return runSimplify(ctx, cmd, svc, plan, stream)
		},
	}
	cmd.Flags().StringVarP(&level, "level", "l", string(models.DefaultLevel), "target level (B1 or B2)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "model id (defaults to the configured model)")
	cmd.Flags().StringSliceVarP(&preserved, "preserve", "p", nil, "words that must stay unchanged")
	cmd.Flags().BoolVar(&stream, "stream", false, "print NDJSON results in completion order instead of the assembled text")
	return cmd
}

func runSimplify(ctx context.Context, cmd *cobra.Command, svc *service.SimplifyService, plan *service.SimplifyPlan, stream bool) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	enc := json.NewEncoder(out)

	if stream {
		if err := enc.Encode(models.ChunkCount{TotalChunks: len(plan.Chunks)}); err != nil {
			return err
		}
	}

	results := make([]models.SelectionResult, 0, len(plan.Chunks))
	_, err := svc.Run(ctx, plan, func(r models.SelectionResult) error {
		results = append(results, r)
		if stream {
			return enc.Encode(r)
		}
		fmt.Fprintf(errOut, "chunk %d/%d done\n", len(results), len(plan.Chunks))
		if msg := firstNonEmpty(r.Error, r.SelectionError, r.SelectionWarning); msg != "" {
			fmt.Fprintf(errOut, "  chunk %d: %s\n", r.Index, msg)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if !stream {
		fmt.Fprintln(out, service.Reassemble(results))
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func newChunkCmd(root *rootOptions) *cobra.Command {
	var maxTokens int
	cmd := &cobra.Command{
		Use:   "chunk [file]",
		Short: "Show how a text is split into chunks",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.load()
			if err != nil {
				return err
			}
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if maxTokens <= 0 {
				maxTokens = cfg.Simplify.MaxChunkTokens
			}

			tokenizer := service.NewTokenizer(logger)
			chunker := service.NewChunker(tokenizer, maxTokens, cfg.Simplify.MinChunkTokens)
			chunks := chunker.Split(text)

			out := cmd.OutOrStdout()
			for _, c := range chunks {
				fmt.Fprintf(out, "--- chunk %d (offset %d, %d tokens)\n%s\n", c.Index, c.Position, tokenizer.Count(c.Text), c.Text)
			}
			fmt.Fprintf(out, "%d chunks\n", len(chunks))
			return nil
		},
	}
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "token budget per chunk (defaults to the configured value)")
	return cmd
}
