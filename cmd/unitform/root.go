package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-unitform/internal/config"
	"github.com/goliatone/go-unitform/pkg/formstate"
)

// cliOptions holds the flags shared by every subcommand.
type cliOptions struct {
	configPath   string
	sets         []string
	compartments int
	sensorAreas  int
	strict       bool
	verbose      bool

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "unitform",
		Short: "Author storage unit configuration and export it as data.xml",
		Long: `unitform holds the configuration of one storage unit: its root ids,
compartments and sensor areas. Compartment codes, sensor area ids and pin ids
are derived from the unit code id as fields are edited.

Seeds come from a YAML file (--config) and --set overrides, applied in order:

  unitform export --set codeId=UNIT1 --set modelExternalId=MODEL1 --output -
  unitform export --set compartments.0.humanReadableId=Fridge --compartments 3`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := zap.NewProductionConfig()
			cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if opts.verbose {
				cfg = zap.NewDevelopmentConfig()
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML seed file")
	flags.StringArrayVar(&opts.sets, "set", nil, "field edit as path=value, applied in order (repeatable)")
	flags.IntVar(&opts.compartments, "compartments", 0, "number of compartments (0 keeps the seeded count)")
	flags.IntVar(&opts.sensorAreas, "sensor-areas", 0, "number of sensor areas (0 keeps the seeded count)")
	flags.BoolVar(&opts.strict, "strict", false, "reject malformed identifiers and out-of-range edits")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newExportCmd(opts), newShowCmd(opts), newEditCmd(opts))
	return root
}

// buildState loads the seed file, replays it, then applies the --set edits and
// count overrides.
func (o *cliOptions) buildState() (*formstate.Manager, config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, config.Config{}, err
		}
		cfg = loaded
	}
	if o.compartments > 0 {
		cfg.Compartments = o.compartments
	}
	if o.sensorAreas > 0 {
		cfg.SensorAreas = o.sensorAreas
	}
	if o.strict {
		cfg.Strict = true
	}

	manager := formstate.New(
		formstate.WithLogger(o.logger.Named("formstate")),
		formstate.WithStrict(cfg.Strict),
	)
	if err := cfg.Apply(manager); err != nil {
		return nil, config.Config{}, err
	}

	for _, raw := range o.sets {
		path, value, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, config.Config{}, fmt.Errorf("invalid --set %q: expected path=value", raw)
		}
		target, field, err := formstate.ParsePath(path)
		if err != nil {
			return nil, config.Config{}, err
		}
		if err := manager.ApplyFieldEdit(target, field, value); err != nil {
			return nil, config.Config{}, fmt.Errorf("--set %s: %w", path, err)
		}
	}
	return manager, cfg, nil
}
