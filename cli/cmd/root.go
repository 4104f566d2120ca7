package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	otp "github.com/pgagudelom/otp-secret-messages"
	"github.com/pgagudelom/otp-secret-messages/audit"
)

var (
	cfgFile     string
	auditPath   string
	session     *otp.Session
	auditLogger audit.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "otpmsg",
	Short: "One-time-pad encryption for short hand-transcribed messages",
	Long: `A one-time-pad cipher over a fixed printable alphabet (letters with Ñ,
digits, space and punctuation). Messages are normalized onto the alphabet,
combined with a freshly generated random pad, and rendered back as text a
person can copy by hand. Decrypted plaintext is held in protected memory
and erased automatically after five minutes.`,
	PersistentPreRunE: initializeSession,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if session != nil {
			return session.Close()
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.otpmsg.yaml)")
	rootCmd.PersistentFlags().StringVar(&auditPath, "audit-log", "", "path to the JSONL audit log (empty disables auditing)")

	bindFlagOrPanic("audit.path", "audit-log")
}

func bindFlagOrPanic(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("failed to bind flag %s: %v", flag, err))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".otpmsg")
		}
	}

	viper.SetEnvPrefix("OTPMSG")
	viper.AutomaticEnv()

	// A missing config file is fine; flags and env cover everything
	_ = viper.ReadInConfig()
}

func initializeSession(cmd *cobra.Command, args []string) error {
	logPath := viper.GetString("audit.path")

	var err error
	if logPath != "" {
		auditLogger, err = audit.NewLogger(&audit.Config{
			Enabled: true,
			Type:    audit.FileAuditType,
			Options: map[string]interface{}{
				"file_path": filepath.Clean(logPath),
			},
		})
		if err != nil {
			return fmt.Errorf("failed to set up audit logging: %w", err)
		}
	} else {
		auditLogger = audit.NewNoOpLogger()
	}

	session = otp.NewSession(otp.Options{Audit: auditLogger})
	return nil
}
