package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/csheth/postcraft/internal/chips"
	"github.com/csheth/postcraft/internal/config"
	"github.com/csheth/postcraft/internal/generator"
)

type runFunc func(ctx context.Context, cfg *config.Config) error

// flagKeys maps CLI flags onto config keys.
var flagKeys = map[string]string{
	"provider":        "provider",
	"endpoint":        "endpoint",
	"base-url":        "base_url",
	"model":           "model",
	"api-key":         "api_key",
	"request-timeout": "request_timeout",
	"archive":         "archive",
	"log-file":        "log_file",
	"log-level":       "log_level",
	"no-alt-screen":   "no_alt_screen",
	"platform":        "platform",
	"tone":            "tone",
	"style":           "style",
}

func newRootCmd(run runFunc) *cobra.Command {
	v := viper.New()
	var configFile string

	cmd := &cobra.Command{
		Use:   "postcraft",
		Short: "Draft social media posts from the terminal",
		Long: `postcraft turns a topic into a platform-ready social media post.
Pick a platform, tone and style, press Ctrl+S, then copy or save the result.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "path to a postcraft.yaml config file")
	flags.String("provider", generator.ProviderBackend, "generation strategy: backend or completions")
	flags.String("endpoint", generator.DefaultEndpoint, "backend generation endpoint")
	flags.String("base-url", generator.DefaultBaseURL, "chat completions base URL")
	flags.String("model", generator.DefaultModel, "chat completions model")
	flags.String("api-key", "", "API key for the completions strategy (prefer POSTCRAFT_API_KEY)")
	flags.Duration("request-timeout", 0, "per-request timeout, 0 waits indefinitely")
	flags.String("archive", "saved_posts.json", "file that saved posts are appended to")
	flags.String("log-file", "postcraft.log", "log file path, empty disables logging")
	flags.String("log-level", "info", "log level: debug, info, warn, error, off")
	flags.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	flags.String("platform", chips.DefaultSelection.Platform(), "initial platform: "+optionList(chips.PlatformOptions))
	flags.String("tone", chips.DefaultSelection.Tone(), "initial tone: "+optionList(chips.ToneOptions))
	flags.String("style", chips.DefaultSelection.Style(), "initial style: "+optionList(chips.StyleOptions))

	if err := bindFlags(v, flags); err != nil {
		panic(err)
	}
	return cmd
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

func optionList(options []chips.Option) string {
	values := make([]string, len(options))
	for i, opt := range options {
		values[i] = opt.Value
	}
	return strings.Join(values, ", ")
}
