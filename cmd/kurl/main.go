package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blackcoderx/kurl/pkg/command"
	"github.com/blackcoderx/kurl/pkg/exec"
	"github.com/blackcoderx/kurl/pkg/storage"
	"github.com/blackcoderx/kurl/pkg/tui"
)

// version is overridden at release time with -ldflags.
var version = "dev"

var (
	cfgFile      string
	templateName string
	envName      string
	rootCmd      = &cobra.Command{
		Use:   "kurl",
		Short: "kurl - build and run curl commands in your terminal",
		Long: `kurl is an interactive curl command builder. Compose a request field by
field, watch the command take shape, and execute it without leaving the
terminal. Templates and environments keep frequent requests one keypress
away.`,
		Run: func(cmd *cobra.Command, args []string) {
			// Load .env file if it exists (optional, warn if malformed)
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load .env file: %v\n", err)
			}

			store := storage.NewStore("")
			if err := store.Init(); err != nil {
				fmt.Fprintf(os.Stderr, "Error initializing config folder: %v\n", err)
				os.Exit(1)
			}

			// Re-read config after initialization (first run creates
			// config.json after Viper's initial read)
			_ = viper.ReadInConfig()

			cfg, err := store.LoadConfig()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
				os.Exit(1)
			}
			if v := viper.GetInt("history_limit"); v > 0 {
				cfg.HistoryLimit = v
			}
			if v := viper.GetInt("rate_limit_per_minute"); v > 0 {
				cfg.RateLimitPerMinute = v
			}
			if v := viper.GetString("curl_path"); v != "" {
				cfg.CurlPath = v
			}

			if err := mergeDotenv(store); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to import .env: %v\n", err)
			}

			// A missing curl binary leaves the executor nil; the TUI still
			// starts and reports unavailability when a run is attempted.
			executor, err := exec.New(cfg.CurlPath, cfg.RateLimitPerMinute)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
				executor = nil
			}

			// CLI Mode: run a saved template and exit
			if templateName != "" {
				if executor == nil {
					fmt.Fprintln(os.Stderr, "Error: curl executable not found")
					os.Exit(1)
				}
				if err := runTemplate(store, executor, templateName, envName); err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					os.Exit(1)
				}
				return
			}

			// Interactive Mode: start the TUI
			if err := tui.Run(tui.Options{
				Store:    store,
				Config:   cfg,
				Executor: executor,
				Version:  version,
			}); err != nil {
				fmt.Fprintf(os.Stderr, "Error running kurl: %v\n", err)
				os.Exit(1)
			}
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .kurl/config.json)")

	rootCmd.Flags().StringVarP(&templateName, "template", "t", "", "Execute a saved template by name and exit")
	rootCmd.Flags().StringVarP(&envName, "env", "e", "Default", "Environment to use for variable substitution")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(storage.FolderName)
		viper.SetConfigType("json")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// runTemplate executes a saved template against the named environment and
// prints the parsed response.
func runTemplate(store *storage.Store, executor *exec.Executor, name, env string) error {
	templates, err := store.LoadTemplates()
	if err != nil {
		return err
	}
	var tpl *command.Template
	for i := range templates {
		if templates[i].Name == name {
			tpl = &templates[i]
			break
		}
	}
	if tpl == nil {
		return fmt.Errorf("template %q not found", name)
	}

	environment, err := findEnvironment(store, env)
	if err != nil {
		return err
	}

	built := command.Build(tpl.Load(), environment)
	res := executor.Execute(context.Background(), built)
	info := exec.ParseResponse(res)

	body := fmt.Sprintf("## %s\n\n%s\n\n```\n%s\n```\n", name,
		exec.Describe(res), exec.FormatResponse(info, exec.FormatFormatted))

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Println(body) // Fallback to raw output
		return nil
	}
	out, err := renderer.Render(body)
	if err != nil {
		fmt.Println(body) // Fallback
		return nil
	}
	fmt.Print(out)

	if !res.Success() {
		return fmt.Errorf("command failed")
	}
	return nil
}

// mergeDotenv folds a local .env file into the Default environment so its
// values are available for {{var}} substitution. No .env file is not an
// error.
func mergeDotenv(store *storage.Store) error {
	loaded, err := storage.LoadDotenv(".env", "Default")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	envs, err := store.LoadEnvironments()
	if err != nil {
		return err
	}
	idx := -1
	for i := range envs {
		if envs[i].Name == "Default" {
			idx = i
			break
		}
	}
	if idx == -1 {
		envs = append(envs, *command.NewEnvironment("Default"))
		idx = len(envs) - 1
	}
	for _, v := range loaded.Variables {
		envs[idx].SetVariable(v.Key, v.Value, v.Secret)
	}
	return store.SaveEnvironments(envs)
}

func findEnvironment(store *storage.Store, name string) (*command.Environment, error) {
	envs, err := store.LoadEnvironments()
	if err != nil {
		return nil, err
	}
	for i := range envs {
		if envs[i].Name == name {
			return &envs[i], nil
		}
	}
	if name == "Default" {
		// First run may predate the environments file.
		return command.NewEnvironment("Default"), nil
	}
	return nil, fmt.Errorf("environment %q not found", name)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
