package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ossyrian/wadparse/internal/config"
	"github.com/ossyrian/wadparse/internal/logging"
	"github.com/ossyrian/wadparse/internal/parser"
	wadtypes "github.com/ossyrian/wadparse/internal/types"
	"github.com/ossyrian/wadparse/internal/wad"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:          "wadparse",
	Short:        "Decode the lump directory of a WAD file to JSON",
	RunE:         parse,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file")

	// i/o
	rootCmd.Flags().StringP("input", "i", "", "path to .wad file to parse (required)")
	rootCmd.Flags().StringP("output", "o", "", "path to output JSON file (default stdout)")
	rootCmd.MarkFlagRequired("input")

	// WAD settings
	rootCmd.Flags().StringP("lump", "l", "", "look up a lump by name after loading")
	rootCmd.Flags().IntP("workers", "w", 1, "number of directory entries to read concurrently")

	// other opts
	rootCmd.Flags().String("log-level", "info", "log level (trace, debug, info, warn, error, fatal)")
	rootCmd.Flags().String("log-output-dir", "", "directory to write log files (if set, logs are written to both stderr and file)")
	rootCmd.Flags().Bool("dry-run", false, "parse without writing output (validation)")

	viper.BindPFlag("input", rootCmd.Flags().Lookup("input"))
	viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	viper.BindPFlag("lump", rootCmd.Flags().Lookup("lump"))
	viper.BindPFlag("workers", rootCmd.Flags().Lookup("workers"))
	viper.BindPFlag("log_level", rootCmd.Flags().Lookup("log-level"))
	viper.BindPFlag("log_output_dir", rootCmd.Flags().Lookup("log-output-dir"))
	viper.BindPFlag("dry_run", rootCmd.Flags().Lookup("dry-run"))
}

// initConfig reads in config file and environment variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "wadparse"))
		}
		viper.AddConfigPath("/etc/wadparse")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("WADPARSE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// parse loads the directory of the specified WAD file
// and writes it out as JSON
func parse(cmd *cobra.Command, args []string) error {
	cfg = &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logCloser, err := logging.Setup(cfg.LogLevel, cfg.LogOutputDir)
	if err != nil {
		return fmt.Errorf("could not set up logging: %w", err)
	}
	defer logCloser.Close()

	slog.Info("parsing file", "input", cfg.InputFile)

	archive, err := parser.Load(cfg.InputFile, parser.WithWorkers(cfg.Workers))
	if err != nil {
		slog.Error(fmt.Sprintf("error parsing %s", cfg.InputFile), "error", err)
		return err
	}

	slog.Info("loaded archive",
		"signature", archive.Signature.String(),
		"lumps", archive.Len(),
	)

	if cfg.Lump != "" {
		if err := lookup(archive, cfg.Lump); err != nil {
			return err
		}
	}

	if cfg.DryRun {
		return nil
	}

	return writeCatalog(cmd.OutOrStdout(), cfg.OutputFile, wadtypes.FromArchive(cfg.InputFile, archive))
}

func lookup(archive *wad.Archive, name string) error {
	entry, index, ok := archive.Find(name)
	if !ok {
		return fmt.Errorf("lump %q not found", name)
	}
	slog.Info("found lump",
		"name", entry.Name.String(),
		"index", index,
		"start", entry.Start,
		"size", entry.Size,
	)
	return nil
}

func writeCatalog(stdout io.Writer, path string, catalog wadtypes.Catalog) error {
	b, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	b = append(b, '\n')

	if path == "" {
		_, err = stdout.Write(b)
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	slog.Info("wrote catalog", "output", path)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
