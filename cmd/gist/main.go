package main

import (
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	charmlog "github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gist/internal/config"
	"gist/internal/domain"
	"gist/internal/embedding"
	"gist/internal/embedding/ollama"
	"gist/internal/embedding/openai"
	"gist/internal/logging"
	"gist/internal/normalizer"
	"gist/internal/report"
	"gist/internal/scorer"
	"gist/internal/segmenter"
	"gist/internal/service"
	"gist/internal/summarizer"
	"gist/internal/tagger"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type globalOptions struct {
	configPath string
	logLevel   string
	logFile    string
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:   "gist <file|->",
		Short: "Summarize a document into a short extract, tags and metrics",
		Long: `gist reads a text or Markdown document, strips markup noise, picks the
highest-signal sentences under a character budget and prints a JSON report
with the summary, tags and compression metrics.

Pass - to read the document from stdin.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, app, err := setup(cmd, opts, args)
			if err != nil {
				return fail(cmd, err)
			}
			return report.Write(cmd.OutOrStdout(), app.pipeline.Summarize(cmd.Context(), doc))
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML config (default ./gist.yaml, then ~/.config/gist/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log verbosity: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "append logs to a rotating file instead of stderr")
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fail(c, err)
	})
	cmd.AddCommand(newExploreCommand(opts))
	return cmd
}

// fail prints the error record on stdout and passes the error up so the
// process exits nonzero. Diagnostics stay on stderr via the logger; stdout
// carries exactly one JSON value either way.
func fail(cmd *cobra.Command, err error) error {
	_ = report.WriteError(cmd.OutOrStdout(), err)
	return err
}

type app struct {
	cfg      *config.AppConfig
	log      *charmlog.Logger
	pipeline *service.Pipeline
}

// setup resolves the one input argument into a document and assembles the
// pipeline from config. Shared by the root and explore commands.
func setup(cmd *cobra.Command, opts *globalOptions, args []string) (domain.Document, *app, error) {
	if len(args) != 1 {
		return domain.Document{}, nil, fmt.Errorf("expected one input file or - for stdin, got %d arguments", len(args))
	}
	a, err := buildApp(opts)
	if err != nil {
		return domain.Document{}, nil, err
	}
	doc, err := readDocument(cmd.InOrStdin(), args[0])
	if err != nil {
		return domain.Document{}, nil, err
	}
	return doc, a, nil
}

func buildApp(opts *globalOptions) (*app, error) {
	var (
		cfg *config.AppConfig
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		cfg, _, err = config.LoadDefault()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
	logger := logging.New(logging.Config{Level: cfg.Log.Level, File: cfg.Log.File})

	pipeline := service.NewPipeline(
		logger,
		normalizer.New(),
		segmenter.New(cfg.Summary.MinSentenceChars),
		buildScorer(cfg, logger),
		summarizer.New(*cfg.Summary.Budget),
		tagger.New(cfg.Tags.Top),
	)
	return &app{cfg: cfg, log: logger, pipeline: pipeline}, nil
}

// readDocument loads the input document; "-" means stdin. Binary input is
// rejected up front rather than fed through the pipeline.
func readDocument(stdin io.Reader, arg string) (domain.Document, error) {
	path := arg
	var (
		data []byte
		err  error
	)
	if arg == "-" {
		path = "stdin"
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(arg)
	}
	if err != nil {
		return domain.Document{}, fmt.Errorf("read input: %w", err)
	}
	if !utf8.Valid(data) {
		return domain.Document{}, fmt.Errorf("input %s is not valid UTF-8 text", path)
	}
	return domain.Document{Path: path, Content: string(data)}, nil
}

// buildScorer picks the scoring strategy. Anything that keeps an embedding
// backend from coming up degrades to keyword scoring; scoring never fails
// the run.
func buildScorer(cfg *config.AppConfig, logger *charmlog.Logger) scorer.Scorer {
	emb := newEmbedder(cfg, logger)
	if emb == nil {
		logger.Debug("using keyword scoring")
		return scorer.NewKeyword()
	}
	logger.Debug("using embedding scoring", "backend", emb.Name())
	return scorer.NewEmbedding(emb)
}

func newEmbedder(cfg *config.AppConfig, logger *charmlog.Logger) embedding.Embedder {
	switch cfg.Embedder.Type {
	case "keyword":
		return nil
	case "ollama":
		return ollamaEmbedder(cfg, logger)
	case "openai":
		return openaiEmbedder(cfg, logger)
	case "auto", "":
		if emb := ollamaEmbedder(cfg, logger); emb != nil {
			return emb
		}
		// Without credentials there is nothing to probe on the OpenAI side.
		if c := cfg.Embedder.OpenAI; c != nil && os.Getenv(c.APIKeyEnv) != "" {
			return openaiEmbedder(cfg, logger)
		}
		return nil
	default:
		logger.Warn("unknown embedder type, falling back to keyword scoring", "type", cfg.Embedder.Type)
		return nil
	}
}

func ollamaEmbedder(cfg *config.AppConfig, logger *charmlog.Logger) embedding.Embedder {
	c := cfg.Embedder.Ollama
	if c == nil {
		c = &config.OllamaConfig{}
	}
	client, err := ollama.NewClient(ollama.Config{
		Model:   c.Model,
		Timeout: time.Duration(c.TimeoutSecs) * time.Second,
	})
	if err != nil {
		logger.Debug("ollama embedder unavailable", "err", err)
		return nil
	}
	return client
}

func openaiEmbedder(cfg *config.AppConfig, logger *charmlog.Logger) embedding.Embedder {
	c := cfg.Embedder.OpenAI
	if c == nil {
		c = &config.OpenAIConfig{}
	}
	client, err := openai.NewClient(openai.Config{
		BaseURL:   c.BaseURL,
		APIKeyEnv: c.APIKeyEnv,
		Model:     c.Model,
		Timeout:   time.Duration(c.TimeoutSecs) * time.Second,
	})
	if err != nil {
		logger.Debug("openai embedder unavailable", "err", err)
		return nil
	}
	return client
}
