package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-unitform/internal/config"
	"github.com/goliatone/go-unitform/pkg/display"
	"github.com/goliatone/go-unitform/pkg/export"
	"github.com/goliatone/go-unitform/pkg/prompt"
)

type exportFlags struct {
	output   string
	escape   bool
	sanitize bool
}

func (f exportFlags) apply(cmd *cobra.Command, cfg config.Config) config.ExportConfig {
	out := cfg.Export
	if cmd.Flags().Changed("output") {
		out.Output = f.output
	}
	if f.escape {
		out.Escape = true
	}
	if f.sanitize {
		out.Sanitize = true
	}
	return out
}

func bindExportFlags(cmd *cobra.Command, f *exportFlags) {
	cmd.Flags().StringVarP(&f.output, "output", "o", ".", `directory for data.xml, or "-" for stdout`)
	cmd.Flags().BoolVar(&f.escape, "escape", false, "XML-escape field values")
	cmd.Flags().BoolVar(&f.sanitize, "sanitize", false, "strip markup from field values (implies --escape)")
}

func newExporter(cfg config.ExportConfig, logger *zap.Logger) *export.Exporter {
	options := []export.Option{
		export.WithEscaping(cfg.Escape),
		export.WithLogger(logger.Named("export")),
	}
	if cfg.Sanitize {
		options = append(options, export.WithSanitizer())
	}
	return export.New(options...)
}

func newSink(cmd *cobra.Command, output string) export.Sink {
	if output == "-" {
		return export.WriterSink{W: cmd.OutOrStdout()}
	}
	return export.FileSink{Dir: output}
}

func newExportCmd(opts *cliOptions) *cobra.Command {
	var flags exportFlags
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write data.xml from the seeded state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, cfg, err := opts.buildState()
			if err != nil {
				return err
			}
			exportCfg := flags.apply(cmd, cfg)
			doc, err := newExporter(exportCfg, opts.logger).Document(manager.Snapshot())
			if err != nil {
				return err
			}
			if err := newSink(cmd, exportCfg.Output).Save(cmd.Context(), doc); err != nil {
				return err
			}
			opts.logger.Info("document exported",
				zap.String("name", doc.Name),
				zap.String("output", exportCfg.Output),
			)
			return nil
		},
	}
	bindExportFlags(cmd, &flags)
	return cmd
}

func newShowCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print a summary of the seeded state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, _, err := opts.buildState()
			if err != nil {
				return err
			}
			renderer, err := display.New()
			if err != nil {
				return err
			}
			text, err := renderer.Render(manager.Snapshot())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write([]byte(text))
			return err
		},
	}
}

func newEditCmd(opts *cliOptions) *cobra.Command {
	var flags exportFlags
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the unit interactively and export from the menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, cfg, err := opts.buildState()
			if err != nil {
				return err
			}
			renderer, err := display.New()
			if err != nil {
				return err
			}
			exportCfg := flags.apply(cmd, cfg)
			session, err := prompt.NewSession(manager,
				prompt.WithExporter(newExporter(exportCfg, opts.logger)),
				prompt.WithSink(newSink(cmd, exportCfg.Output)),
				prompt.WithSummarizer(renderer.Render),
				prompt.WithLogger(opts.logger.Named("prompt")),
			)
			if err != nil {
				return err
			}
			return session.Run(cmd.Context())
		},
	}
	bindExportFlags(cmd, &flags)
	return cmd
}
