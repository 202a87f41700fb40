package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quantmind-br/pubmanifest-go/internal/config"
	"github.com/quantmind-br/pubmanifest-go/internal/fetcher"
	"github.com/quantmind-br/pubmanifest-go/internal/processor"
	"github.com/quantmind-br/pubmanifest-go/internal/utils"
	"github.com/quantmind-br/pubmanifest-go/pkg/version"
)

var (
	cfgFile string
	verbose bool
	log     *utils.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pubmanifest [url|file]",
	Short: "Convert publication manifests to their canonical and typed forms",
	Long: `pubmanifest fetches a publication manifest, or the HTML entry page
linking to or embedding one, canonicalizes it and builds the typed
publication model. Warnings and errors collected along the way are
reported without aborting the conversion.

The argument is the URL of a manifest or entry page, or the path of a
local manifest file. A fragment on an entry page URL names the id of
the script element holding an embedded manifest.`,
	Version: version.Short(),
	Args:    cobra.MaximumNArgs(1),
	RunE:    run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.pubmanifest/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.Flags().StringP("output", "o", "", "Write the result to a file instead of stdout")
	rootCmd.Flags().String("base", "", "Base URL for resolving relative references in a local file")
	rootCmd.Flags().String("language", "", "Default language (BCP 47 tag) for manifests that declare none")
	rootCmd.Flags().String("direction", "", "Default base direction (ltr or rtl)")
	rootCmd.Flags().Duration("timeout", config.DefaultTimeout, "Request timeout")
	rootCmd.Flags().String("user-agent", "", "Custom User-Agent")
	rootCmd.Flags().Bool("canonical-only", false, "Print the canonical manifest instead of the typed model")
	rootCmd.Flags().Bool("no-toc", false, "Do not fetch the table of contents")
	rootCmd.Flags().Bool("strict", false, "Exit with an error when the manifest has validation errors")

	_ = viper.BindPFlag("defaults.language", rootCmd.Flags().Lookup("language"))
	_ = viper.BindPFlag("defaults.direction", rootCmd.Flags().Lookup("direction"))
	_ = viper.BindPFlag("fetch.timeout", rootCmd.Flags().Lookup("timeout"))
	_ = viper.BindPFlag("fetch.user_agent", rootCmd.Flags().Lookup("user-agent"))

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logLevel := "info"
	if verbose {
		logLevel = "debug"
	}
	log = utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  "pretty",
		Verbose: verbose,
	})

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if len(args) == 0 {
		return cmd.Help()
	}
	input := args[0]

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("Shutting down gracefully...")
		cancel()
	}()

	noTOC, _ := cmd.Flags().GetBool("no-toc")

	client := fetcher.NewClient(fetcher.ClientOptions{
		Timeout:    cfg.Fetch.Timeout,
		MaxRetries: cfg.Fetch.MaxRetries,
		UserAgent:  cfg.Fetch.UserAgent,
	})

	proc := processor.New(client, log, processor.Options{
		DefaultLanguage:  cfg.Defaults.Language,
		DefaultDirection: cfg.Defaults.Direction,
		FetchTOC:         cfg.TOC.Fetch && !noTOC,
	})

	var result *processor.Result
	if utils.IsHTTPURL(input) {
		result, err = proc.FromURL(ctx, input)
	} else {
		result, err = convertFile(proc, cmd, input)
	}
	if err != nil {
		return err
	}

	report(result)

	canonicalOnly, _ := cmd.Flags().GetBool("canonical-only")
	var payload any = result.Publication
	if canonicalOnly {
		payload = result.Canonical
	}

	out, _ := cmd.Flags().GetString("output")
	if err := writeJSON(out, payload); err != nil {
		return err
	}

	strict, _ := cmd.Flags().GetBool("strict")
	if strict && result.Diagnostics.HasErrors() {
		return fmt.Errorf("manifest has %d validation errors", len(result.Diagnostics.Errors()))
	}
	return nil
}

// convertFile converts a manifest read from the local filesystem. Relative
// references resolve against the file's own location unless --base is set.
func convertFile(proc *processor.Processor, cmd *cobra.Command, path string) (*processor.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	base, _ := cmd.Flags().GetString("base")
	if base == "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		base = utils.FileURL(abs)
	}

	return proc.FromJSON(data, base, nil, true)
}

// report logs the collected diagnostics.
func report(result *processor.Result) {
	for _, w := range result.Diagnostics.Warnings() {
		log.Warn().Msg(w)
	}
	for _, e := range result.Diagnostics.Errors() {
		log.Error().Msg(e)
	}
}

// writeJSON writes the payload as indented JSON to a file, or to stdout
// when path is empty.
func writeJSON(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Info().Str("path", path).Msg("Result written")
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.EnsureConfigDir(); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		path := config.ConfigFilePath()
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Printf("Config written to %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
