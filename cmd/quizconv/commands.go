package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"quiz-automation/internal/app"
	"quiz-automation/internal/config"
	"quiz-automation/internal/logger"
	"quiz-automation/internal/parser"
	"quiz-automation/internal/service"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

const (
	defaultInputFile  = "questions.txt"
	defaultOutputName = "auto_generated"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

type cli struct {
	fs         afero.Fs
	out        io.Writer
	errOut     io.Writer
	loadConfig func(file string) (*config.Config, error)

	configFile string
	cfg        *config.Config
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "quizconv",
		Short: "Convert plain-text quiz documents into quiz sets",
		Long: `quizconv parses plain-text multiple-choice documents, validates the
result and registers the quiz sets in the catalog read by the quiz front-end.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(c.configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := logger.InitializeWithSink(cfg.Logger, zapcore.AddSync(c.errOut)); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.cfg = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	root.SetOut(c.out)
	root.SetErr(c.errOut)
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "path to config.yaml")

	root.AddCommand(c.convertCmd())
	root.AddCommand(c.batchCmd())
	root.AddCommand(c.parseCmd())
	root.AddCommand(c.validateCmd())
	root.AddCommand(c.deleteCmd())
	root.AddCommand(c.listCmd())
	return root
}

func (c *cli) build(ctx context.Context) (*app.Components, error) {
	return app.Build(ctx, c.cfg, c.fs, logger.Get())
}

func (c *cli) convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert [input] [output_name] [quiz_name] [description]",
		Short: "Convert one document and register it in the catalog",
		Example: `  quizconv convert questions.txt aws_security "AWS Security Quiz" "Security focused questions"`,
		Args:  cobra.MaximumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, outputName := defaultInputFile, defaultOutputName
			var quizName, description string
			if len(args) > 0 {
				input = args[0]
			}
			if len(args) > 1 {
				outputName = args[1]
			}
			if len(args) > 2 {
				quizName = args[2]
			}
			if len(args) > 3 {
				description = args[3]
			}

			components, err := c.build(cmd.Context())
			if err != nil {
				return err
			}
			defer components.Close()

			result, err := c.convertFile(cmd.Context(), components.Service, input, outputName, quizName, description)
			if err != nil {
				return err
			}
			c.printConversion(result)
			return nil
		},
	}
}

func (c *cli) convertFile(ctx context.Context, svc service.QuizAutomationService, input, outputName, quizName, description string) (*service.ConvertResult, error) {
	content, err := service.LoadSourceFile(c.fs, input)
	if err != nil {
		return nil, err
	}
	return svc.Convert(ctx, service.ConvertInput{
		Content:     content,
		SourceName:  input,
		OutputName:  outputName,
		QuizName:    quizName,
		Description: description,
	})
}

func (c *cli) printConversion(result *service.ConvertResult) {
	fmt.Fprintf(c.out, "Saved %d questions to %s\n", len(result.Questions), result.OutputPath)
	fmt.Fprintf(c.out, "Registered %q as %s\n", result.Entry.Name, result.FileName)
	printReport(c.out, &result.Report)
}

func printReport(w io.Writer, report *parser.Report) {
	fmt.Fprintf(w, "Found %d questions, accepted %d, skipped %d, with explanation %d\n",
		report.TotalFound, report.Accepted, report.SkippedCount(), report.WithExplanation)
	for _, warning := range report.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warning)
	}
}

// outputNameFor derives a quiz output name from a source file path.
func outputNameFor(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name := strings.Trim(unsafeNameChars.ReplaceAllString(base, "_"), "_")
	if len(name) > 64 {
		name = name[:64]
	}
	if name == "" {
		return defaultOutputName
	}
	return name
}

func (c *cli) batchCmd() *cobra.Command {
	var concurrency int
	cmd := &cobra.Command{
		Use:   "batch <files...>",
		Short: "Convert several documents in parallel",
		Long: `Each file is converted into quiz_<name>.json where <name> is derived
from the file name. A failing document does not stop the others.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := c.build(cmd.Context())
			if err != nil {
				return err
			}
			defer components.Close()

			var (
				mu       sync.Mutex
				failures []string
			)
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(concurrency)
			for _, input := range args {
				g.Go(func() error {
					result, err := c.convertFile(ctx, components.Service, input, outputNameFor(input), "", "")
					mu.Lock()
					defer mu.Unlock()
					if err != nil {
						failures = append(failures, input)
						fmt.Fprintf(c.errOut, "%s: %v\n", input, err)
						return nil
					}
					fmt.Fprintf(c.out, "%s: %d questions -> %s\n", input, len(result.Questions), result.FileName)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			fmt.Fprintf(c.out, "Converted %d of %d documents\n", len(args)-len(failures), len(args))
			if len(failures) > 0 {
				sort.Strings(failures)
				return fmt.Errorf("%d documents failed: %s", len(failures), strings.Join(failures, ", "))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 4, "number of documents converted at once")
	return cmd
}

func (c *cli) parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <input>",
		Short: "Parse a document and print the question set without saving it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := service.LoadSourceFile(c.fs, args[0])
			if err != nil {
				return err
			}

			components, err := c.build(cmd.Context())
			if err != nil {
				return err
			}
			defer components.Close()

			result, err := components.Service.Parse(cmd.Context(), args[0], content)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(c.out)
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result.Questions); err != nil {
				return err
			}
			printReport(c.errOut, &result.Report)
			return nil
		},
	}
}

func (c *cli) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <quiz.json>",
		Short: "Check a quiz set file against the question set rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := afero.ReadFile(c.fs, args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			questions, err := parser.DecodeQuestions(data)
			if err != nil {
				return err
			}
			summary, err := parser.Validate(questions)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "%s: %d questions valid, %d with explanation\n", args[0], summary.Total, summary.WithExplanation)
			return nil
		},
	}
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <filename>",
		Short: "Delete a quiz set file and its catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := c.build(cmd.Context())
			if err != nil {
				return err
			}
			defer components.Close()

			result, err := components.Service.DeleteQuiz(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Deleted %s\n", result.FileName)
			if !result.CatalogEntryRemoved {
				fmt.Fprintf(c.out, "%s was not registered in the catalog\n", result.FileName)
			}
			return nil
		},
	}
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the quiz sets registered in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := c.build(cmd.Context())
			if err != nil {
				return err
			}
			defer components.Close()

			catalog, err := components.Service.ListQuizSets(cmd.Context())
			if err != nil {
				return err
			}

			fileNames := make([]string, 0, len(catalog.QuizSets))
			for fileName := range catalog.QuizSets {
				fileNames = append(fileNames, fileName)
			}
			sort.Strings(fileNames)
			for _, fileName := range fileNames {
				entry := catalog.QuizSets[fileName]
				fmt.Fprintf(c.out, "%-32s %s\n", fileName, entry.Name)
			}
			fmt.Fprintf(c.out, "%d quiz sets\n", len(fileNames))
			return nil
		},
	}
}
