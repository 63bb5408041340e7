package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/helmcode/logtriage/pkg/triage"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// settings is the resolved configuration: flags > LOGTRIAGE_* env > config file.
type settings struct {
	APIURL  string
	Output  string
	Timeout time.Duration
}

// AddGlobalFlags registers the flags every subcommand shares and binds them
// to viper keys.
func AddGlobalFlags(root *cobra.Command) {
	cobra.OnInitialize(initConfig)

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default is $HOME/.logtriage.yaml)")
	flags.StringP("api-url", "u", triage.DefaultBaseURL, "Base URL of the log analysis service")
	flags.StringP("output", "o", "human", "Output format (human, json, yaml)")
	flags.Duration("timeout", 0, "Request timeout (0 keeps the platform default)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	_ = viper.BindPFlag("api_url", flags.Lookup("api-url"))
	_ = viper.BindPFlag("output", flags.Lookup("output"))
	_ = viper.BindPFlag("timeout", flags.Lookup("timeout"))

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		setupLogging()
		return validateOutput(viper.GetString("output"))
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".logtriage")
	}

	viper.SetEnvPrefix("LOGTRIAGE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: failed to read config %s: %v\n", viper.ConfigFileUsed(), err)
		}
	}
}

func setupLogging() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}
	if f := viper.ConfigFileUsed(); f != "" {
		log.WithField("config", f).Debug("using config file")
	}
}

func validateOutput(format string) error {
	switch format {
	case "human", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (supported: human, json, yaml)", format)
	}
}

func loadSettings() settings {
	return settings{
		APIURL:  viper.GetString("api_url"),
		Output:  viper.GetString("output"),
		Timeout: viper.GetDuration("timeout"),
	}
}

func newTriageClient(s settings) *triage.Client {
	return triage.NewClient(triage.Config{BaseURL: s.APIURL, Timeout: s.Timeout})
}
