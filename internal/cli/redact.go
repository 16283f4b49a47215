package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/censor/internal/cache"
	"github.com/dshills/censor/internal/config"
	"github.com/dshills/censor/internal/document"
	"github.com/dshills/censor/internal/logger"
	"github.com/dshills/censor/internal/output"
	"github.com/dshills/censor/internal/redact"
)

// Shared redaction flags
var (
	flagSecrets      string
	flagRedact       string
	flagReduceArrays string
	flagFormat       string
	flagInputFormat  string
	flagOut          string
	flagMaxDepth     int
	flagWorkers      int
	flagNoCache      bool
	flagVerbose      bool
)

func addRedactFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagSecrets, "secrets", "", "Secret keys, comma-separated; /regexp/flags for patterns")
	cmd.Flags().StringVar(&flagRedact, "redact", "", "Replacement for secret values")
	cmd.Flags().StringVar(&flagReduceArrays, "reduce-arrays", "", "Array reduction: false, true, or a length limit")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (json, jsonl, yaml, text)")
	cmd.Flags().StringVar(&flagInputFormat, "input-format", "", "Input format (auto, json, jsonl, yaml)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().IntVar(&flagMaxDepth, "max-depth", 0, "Reject documents nested deeper than this")
	cmd.Flags().IntVar(&flagWorkers, "workers", 0, "Documents censored in parallel")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Bypass the output cache")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug diagnostics")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagSecrets != "" {
		m["secrets"] = flagSecrets
	}
	if flagRedact != "" {
		m["redact"] = flagRedact
	}
	if flagReduceArrays != "" {
		m["reduceArrays"] = flagReduceArrays
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagInputFormat != "" {
		m["inputFormat"] = flagInputFormat
	}
	if flagMaxDepth > 0 {
		m["maxDepth"] = strconv.Itoa(flagMaxDepth)
	}
	if flagWorkers > 0 {
		m["workers"] = strconv.Itoa(flagWorkers)
	}
	if flagVerbose {
		m["logLevel"] = "debug"
	}
	return m
}

// buildRedactor turns the configured primitives into a Redactor.
func buildRedactor(cfg config.Config) (*redact.Redactor, error) {
	specs, err := redact.ParseSecrets(cfg.Secrets)
	if err != nil {
		return nil, err
	}
	reduce, err := redact.ParseReduction(cfg.ReduceArrays)
	if err != nil {
		return nil, err
	}
	return redact.New(redact.Options{
		Secrets:      specs,
		Redact:       redact.RedactWith(cfg.Redact),
		ReduceArrays: reduce,
	})
}

// fingerprint identifies every setting that changes censored output.
func fingerprint(cfg config.Config) string {
	return fmt.Sprintf("v1|secrets=%s|redact=%q|reduce=%s|depth=%d",
		strings.Join(cfg.Secrets, "\x1f"), cfg.Redact, cfg.ReduceArrays, cfg.MaxDepth)
}

// pipeline censors whole inputs: decode, depth check, censor, render.
type pipeline struct {
	cfg      config.Config
	redactor *redact.Redactor
	cache    *cache.Cache
	log      *slog.Logger
}

func (p *pipeline) inputFormat(name string) string {
	if p.cfg.InputFormat != "" && p.cfg.InputFormat != document.FormatAuto {
		return p.cfg.InputFormat
	}
	return document.DetectFormat(name, document.FormatJSON)
}

func (p *pipeline) process(ctx context.Context, name string, data []byte) ([]byte, error) {
	inFormat := p.inputFormat(name)
	key := cache.BuildCacheKey(fingerprint(p.cfg), inFormat, p.cfg.Format, data)
	if out, ok := p.cache.Get(key); ok {
		p.log.Debug("cache hit", "input", name)
		return out, nil
	}

	docs, err := document.Decode(bytes.NewReader(data), inFormat)
	if err != nil {
		return nil, err
	}
	for i, doc := range docs {
		if err := document.CheckDepth(doc, p.cfg.MaxDepth); err != nil {
			return nil, fmt.Errorf("document %d: %w (limit %d)", i+1, err, p.cfg.MaxDepth)
		}
	}

	censored, err := censorAll(ctx, p.redactor, docs, p.cfg.Workers)
	if err != nil {
		return nil, err
	}

	w, err := output.GetWriter(p.cfg.Format)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := w.Write(&buf, censored); err != nil {
		return nil, err
	}

	if err := p.cache.Put(key, buf.Bytes()); err != nil {
		p.log.Warn("cache write failed", "input", name, "err", err)
	}
	if p.log.Enabled(ctx, slog.LevelDebug) {
		depth := 0
		for _, doc := range docs {
			depth = max(depth, document.Depth(doc))
		}
		p.log.Debug("censored input", "input", name, "format", inFormat, "documents", len(docs), "depth", depth)
	}
	return buf.Bytes(), nil
}

// censorAll censors docs on up to workers goroutines, keeping their order.
func censorAll(ctx context.Context, r *redact.Redactor, docs []any, workers int) ([]any, error) {
	out := make([]any, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, doc := range docs {
		i, doc := i, doc // per-iteration copies; go.mod targets Go 1.21 semantics
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := r.Censor(doc)
			if err != nil {
				return fmt.Errorf("document %d: %w", i+1, err)
			}
			out[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}

func runRedact(ctx context.Context, cfg config.Config, inputs []string) {
	log, closer, err := logger.New(os.Stderr, logger.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}
	defer closer.Close()

	r, err := buildRedactor(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}

	c, err := cache.New(cfg.Cache.Enabled && !flagNoCache, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	if err != nil {
		log.Warn("cache disabled", "err", err)
		c, _ = cache.New(false, "", 0)
	}

	p := &pipeline{cfg: cfg, redactor: r, cache: c, log: log}

	dest, err := output.Open(flagOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	defer dest.Abort()

	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	for _, name := range inputs {
		data, err := readInput(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: reading %s: %v\n", name, err)
			exitCode = ExitRuntimeError
			return
		}
		out, err := p.process(ctx, name, data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", name, err)
			exitCode = ExitRuntimeError
			return
		}
		if _, err := dest.Write(out); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}
	}
	if err := dest.Commit(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
	}
}

var redactCmd = &cobra.Command{
	Use:   "redact [file...]",
	Short: "Censor documents from files or stdin",
	Long: "Censor documents from the given files (or stdin, or \"-\") and write them to stdout.\n\n" +
		"Values under secret keys are replaced. A document that is a bare scalar has no key\n" +
		"and is replaced entirely.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		runRedact(cmd.Context(), cfg, args)
		return nil
	},
}

func init() {
	addRedactFlags(redactCmd)
}
