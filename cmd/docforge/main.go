package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/docforge/docforge"
	"github.com/docforge/docforge/session"
)

var (
	// Global flags
	verbose    bool
	configPath string

	cfg    cliConfig
	logger *zap.Logger
)

// cliConfig is the optional YAML configuration file.
type cliConfig struct {
	StateFile  string `yaml:"state_file"`
	LogLevel   string `yaml:"log_level"`
	TableStyle string `yaml:"table_style"`
}

func defaultCLIConfig() cliConfig {
	return cliConfig{
		StateFile:  session.DefaultStatePath(),
		LogLevel:   "warn",
		TableStyle: "Table Grid",
	}
}

func loadConfig(path string) (cliConfig, error) {
	c := defaultCLIConfig()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return c, nil
}

var rootCmd = &cobra.Command{
	Use:   "docforge",
	Short: "Read and edit Word documents while preserving formatting",
	Long: `docforge extracts the structure of a .docx document as addressable
blocks and edits it in place: format-preserving text replacement,
section rewriting with style propagation, and plain structural edits.

The current document is recorded in a state file, so opening a document
once lets every following command operate on it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(configPath)
		if err != nil {
			return err
		}

		zc := zap.NewProductionConfig()
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("bad log_level %q: %w", cfg.LogLevel, err)
		}
		if verbose {
			level = zapcore.DebugLevel
		}
		zc.Level = zap.NewAtomicLevelAt(level)
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// currentSession restores the session recorded in the state file. Every
// command except open and create requires a document to already be open.
func currentSession() (*session.Session, error) {
	s := docforge.NewSession(
		docforge.WithLogger(logger),
		docforge.WithStateFile(cfg.StateFile),
	)
	ok, err := s.Restore()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no document open; run 'docforge open <file>' first")
	}
	return s, nil
}

func newSession() *session.Session {
	return docforge.NewSession(
		docforge.WithLogger(logger),
		docforge.WithStateFile(cfg.StateFile),
	)
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")

	rootCmd.AddCommand(
		openCmd, createCmd, closeCmd, infoCmd, saveAsCmd, copyCmd,
		extractCmd, searchCmd,
		editBlockCmd, replaceSectionCmd, replaceKeywordCmd, replaceCmd,
		addParagraphCmd, addHeadingCmd, pageBreakCmd, marginsCmd,
		deleteParagraphCmd, deleteRangeCmd,
		addTableCmd, addRowCmd, deleteRowCmd, editCellCmd,
		mergeCellsCmd, splitTableCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
