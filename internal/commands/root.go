// Package commands implements the Archlens command line interface.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/archlens/archlens/internal/config"
	"github.com/archlens/archlens/internal/links"
	"github.com/archlens/archlens/internal/model"
	"github.com/archlens/archlens/internal/registry"
	"github.com/archlens/archlens/internal/version"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "archlens",
	Short: "Link analysis for layered architecture models",
	Long: `Archlens maintains a multi-layer ontology of architecture elements,
discovers cross-layer links between them, and validates referential and
semantic integrity.

Analyze a model snapshot, trace paths through the link graph, validate
links against the registry, and serve live updates to a visualizer.`,
	Version: version.Version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("model-dir", "", "model directory of YAML layer files")
	rootCmd.PersistentFlags().String("link-registry", "", "link type registry file")

	// These should never fail as flags are defined above
	_ = viper.BindPFlag("model.dir", rootCmd.PersistentFlags().Lookup("model-dir"))                //nolint:errcheck
	_ = viper.BindPFlag("model.link_registry", rootCmd.PersistentFlags().Lookup("link-registry")) //nolint:errcheck

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(registryCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "%s" .Version}}
`)
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if dir := viper.GetString("model.dir"); dir != "" {
		cfg.Model.Dir = dir
	}
	if reg := viper.GetString("model.link_registry"); reg != "" {
		cfg.Model.LinkRegistry = reg
	}
}

// loadCatalogs reads both registries configured in cfg.
func loadCatalogs() (*registry.Catalog, *registry.PredicateCatalog, error) {
	catalog, err := registry.LoadCatalog(cfg.Model.LinkRegistry)
	if err != nil {
		return nil, nil, err
	}
	predicates, err := registry.LoadPredicateCatalog(cfg.Model.RelationshipRegistry)
	if err != nil {
		return nil, nil, err
	}
	return catalog, predicates, nil
}

// loadAnalyzedModel loads the model directory and runs link analysis.
func loadAnalyzedModel(catalog *registry.Catalog) (*model.Store, *links.Analyzer, error) {
	store, err := model.Load(cfg.Model.Dir)
	if err != nil {
		return nil, nil, err
	}
	analyzer := links.NewAnalyzer(catalog)
	analyzer.AnalyzeModel(store.Snapshot())
	return store, analyzer, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		fmt.Println(info.String())

		if cmd.Flag("verbose").Changed {
			fmt.Printf("\nDetails:\n")
			fmt.Printf("  Version:    %s\n", info.Version)
			fmt.Printf("  Git Commit: %s\n", info.GitCommit)
			fmt.Printf("  Built:      %s\n", info.BuildTime)
			fmt.Printf("  Go Version: %s\n", info.GoVersion)
			fmt.Printf("  Platform:   %s\n", info.Platform)
		}
	},
}

func init() {
	versionCmd.Flags().BoolP("verbose", "v", false, "verbose version output")
}
