package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mmrzaf/jsonfixture/internal/app"
	"github.com/mmrzaf/jsonfixture/internal/config"
	"github.com/mmrzaf/jsonfixture/internal/domain"
	"github.com/mmrzaf/jsonfixture/internal/fixture"
	"github.com/mmrzaf/jsonfixture/internal/infra/repos/profiles"
	"github.com/mmrzaf/jsonfixture/internal/infra/repos/runs"
	"github.com/mmrzaf/jsonfixture/internal/logging"
	"github.com/mmrzaf/jsonfixture/internal/registry"
	"github.com/mmrzaf/jsonfixture/internal/validation"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v3"
)

var (
	profilesDir string
	runsDB      string
	logLevel    string
)

func main() {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:           "jsonfixture",
		Short:         "Random nested JSON fixture generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&profilesDir, "profiles-dir", cfg.ProfilesDir, "Profiles directory")
	rootCmd.PersistentFlags().StringVar(&runsDB, "runs-db", cfg.RunsDB, "Run history database (SQLite path or postgres:// DSN); empty disables history")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level")

	genCmd := generateCmd(cfg)
	rootCmd.RunE = genCmd.RunE
	rootCmd.Flags().AddFlagSet(genCmd.Flags())

	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(verifyCmd())
	rootCmd.AddCommand(sampleCmd())
	rootCmd.AddCommand(profileCmd())
	rootCmd.AddCommand(runsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newService builds the generate service. The returned close func releases
// the run history database, if one was opened.
func newService() (*app.GenerateService, *logging.Logger, func(), error) {
	logger := logging.NewLogger(logLevel)

	var runRepo runs.Repository
	closeFn := func() {}
	if runsDB != "" {
		repo, err := runs.Open(runsDB)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open run history: %w", err)
		}
		runRepo = repo
		closeFn = func() { _ = repo.Close() }
	}

	svc := app.NewGenerateService(
		profiles.NewFileRepository(profilesDir, profiles.WithLogger(logger)),
		runRepo,
		registry.DefaultKeyNamerRegistry(),
		logger,
	)
	return svc, logger, closeFn, nil
}

func newProfileRepo() *profiles.FileRepository {
	return profiles.NewFileRepository(profilesDir, profiles.WithLogger(logging.NewLogger(logLevel)))
}

// shortID trims a run ID for table output.
func shortID(id string) string {
	return id[:min(len(id), 8)]
}

type generateFlags struct {
	count       int
	output      string
	seed        int64
	profile     string
	profilePath string
	style       string
	keys        string
	delimiter   string
	noProgress  bool
}

func (f *generateFlags) register(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().IntVarP(&f.count, "count", "n", cfg.Count, "Number of documents")
	cmd.Flags().StringVarP(&f.output, "out", "o", cfg.Output, "Output file")
	cmd.Flags().Int64VarP(&f.seed, "seed", "s", cfg.Seed, "Seed for RNG")
	cmd.Flags().StringVar(&f.profile, "profile", "", "Profile name")
	cmd.Flags().StringVar(&f.profilePath, "profile-path", "", "Profile file path")
	cmd.Flags().StringVar(&f.style, "style", "", "Separator style (python|compact)")
	cmd.Flags().StringVar(&f.keys, "keys", "", "Field name strategy (alnum|faker)")
	cmd.Flags().StringVar(&f.delimiter, "delimiter", "", "Raw string literal delimiter")
	cmd.Flags().BoolVar(&f.noProgress, "no-progress", false, "Disable progress logging")
}

// request builds a GenerateRequest. Values from flags or config only
// override a profile when the user set them explicitly or no profile is used.
func (f *generateFlags) request(cmd *cobra.Command) *domain.GenerateRequest {
	req := &domain.GenerateRequest{
		ProfileName: f.profile,
		ProfilePath: f.profilePath,
		Style:       f.style,
		Keys:        f.keys,
		Delimiter:   f.delimiter,
	}
	usingProfile := f.profile != "" || f.profilePath != ""
	if !usingProfile || cmd.Flags().Changed("count") {
		count := f.count
		req.Count = &count
	}
	if !usingProfile || cmd.Flags().Changed("out") {
		req.Output = f.output
	}
	if !usingProfile || cmd.Flags().Changed("seed") {
		seed := f.seed
		req.Seed = &seed
	}
	return req
}

func generateCmd(cfg *config.Config) *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a fixture file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, logger, closeFn, err := newService()
			if err != nil {
				return err
			}
			defer closeFn()

			var progress fixture.Progress
			if !flags.noProgress {
				progress = app.NewLogProgress(logger)
			}

			run, err := svc.Generate(flags.request(cmd), progress)
			if err != nil {
				return err
			}

			fmt.Printf("Generated %d lines of JSON data in %s\n", run.Count, run.Output)
			return nil
		},
	}
	flags.register(cmd, cfg)
	return cmd
}

func verifyCmd() *cobra.Command {
	var delimiter string
	var format string

	cmd := &cobra.Command{
		Use:   "verify <file>",
		Short: "Check that a fixture file unwraps to a JSON array of objects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validation.IsValidDelimiter(delimiter) {
				return fmt.Errorf("invalid raw string delimiter: %q", delimiter)
			}
			report, err := fixture.VerifyFile(args[0], fixture.RawStringWrapper(delimiter))
			if err != nil {
				return fmt.Errorf("verification failed: %w", err)
			}

			if format == "json" {
				data, _ := json.MarshalIndent(report, "", "  ")
				fmt.Println(string(data))
				return nil
			}
			fmt.Printf("%s: %d documents, %d bytes, trailing comma: %t\n",
				args[0], report.Documents, report.Bytes, report.TrailingComma)
			return nil
		},
	}
	cmd.Flags().StringVar(&delimiter, "delimiter", domain.DefaultDelimiter, "Raw string literal delimiter")
	cmd.Flags().StringVar(&format, "format", "text", "Output format (text|json)")
	return cmd
}

func sampleCmd() *cobra.Command {
	var (
		n       int
		seed    int64
		profile string
		style   string
		keys    string
		raw     bool
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print generated documents without writing a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, closeFn, err := newService()
			if err != nil {
				return err
			}
			defer closeFn()

			req := &domain.GenerateRequest{ProfileName: profile, Style: style, Keys: keys}
			if profile == "" || cmd.Flags().Changed("seed") {
				req.Seed = &seed
			}
			docs, err := svc.Sample(req, n)
			if err != nil {
				return err
			}

			var out bytes.Buffer
			for _, doc := range docs {
				if raw {
					out.Write(doc)
					out.WriteByte('\n')
				} else {
					out.Write(pretty.Pretty(doc))
				}
			}
			_, err = os.Stdout.Write(out.Bytes())
			return err
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", 1, "Number of documents")
	cmd.Flags().Int64VarP(&seed, "seed", "s", domain.DefaultSeed, "Seed for RNG")
	cmd.Flags().StringVar(&profile, "profile", "", "Profile name")
	cmd.Flags().StringVar(&style, "style", "", "Separator style for --raw (python|compact)")
	cmd.Flags().StringVar(&keys, "keys", "", "Field name strategy (alnum|faker)")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print documents exactly as they would be written")
	return cmd
}

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage generation profiles",
	}

	var format string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := newProfileRepo().List()
			if err != nil {
				return err
			}

			if format == "json" {
				data, _ := json.MarshalIndent(list, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCOUNT\tSEED\tOUTPUT\tSTYLE\tKEYS")
			for _, p := range list {
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%s\n", p.Name, p.Count, p.Seed, p.Output, p.Style, p.Keys)
			}
			w.Flush()
			return nil
		},
	}
	listCmd.Flags().StringVar(&format, "format", "table", "Output format (table|json)")

	showCmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Show a profile (the built-in default when no name is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := domain.DefaultProfile()
			if len(args) == 1 {
				var err error
				p, err = newProfileRepo().Get(args[0])
				if err != nil {
					return err
				}
			}

			data, _ := yaml.Marshal(p)
			fmt.Print(string(data))
			return nil
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate <name|path>",
		Short: "Validate a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := newProfileRepo()
			p, err := repo.Get(args[0])
			if err != nil {
				p, err = repo.GetByPath(args[0])
			}
			if err != nil {
				return err
			}

			validator := validation.NewValidator(registry.DefaultKeyNamerRegistry())
			if err := validator.ValidateProfile(p); err != nil {
				fmt.Printf("Validation failed: %v\n", err)
				return err
			}

			fmt.Printf("Profile '%s' is valid\n", p.Name)
			return nil
		},
	}

	cmd.AddCommand(listCmd, showCmd, validateCmd)
	return cmd
}

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect generation history",
	}

	var limit int
	var status string
	var format string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, closeFn, err := newService()
			if err != nil {
				return err
			}
			defer closeFn()

			list, err := svc.ListRuns(limit, status)
			if err != nil {
				return err
			}

			if format == "json" {
				data, _ := json.MarshalIndent(list, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPROFILE\tOUTPUT\tDOCS\tSEED\tSTATUS\tSTARTED")
			for _, r := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
					shortID(r.ID), r.ProfileName, r.Output, r.Count, r.Seed, r.Status, r.StartedAt.Format("2006-01-02 15:04"))
			}
			w.Flush()
			return nil
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "Limit results")
	listCmd.Flags().StringVar(&status, "status", "", "Filter by status")
	listCmd.Flags().StringVar(&format, "format", "table", "Output format (table|json)")

	showCmd := &cobra.Command{
		Use:   "show <run_id>",
		Short: "Show run details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, closeFn, err := newService()
			if err != nil {
				return err
			}
			defer closeFn()

			run, err := svc.GetRun(args[0])
			if err != nil {
				return err
			}

			data, _ := json.MarshalIndent(run, "", "  ")
			fmt.Println(string(data))
			return nil
		},
	}

	cmd.AddCommand(listCmd, showCmd)
	return cmd
}
