// Command gchart-render renders chart pages and snippets without the HTTP service.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"gchart/internal/charts"
	"gchart/internal/config"
	"gchart/internal/pages"
	"gchart/internal/storage"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "gchart-render",
		Short:        "Render Google Visualization chart markup",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newRenderCmd(), newPublishCmd(), newVisualizeCmd(), newContainerCmd(), newKindsCmd())
	return rootCmd
}

func newRenderCmd() *cobra.Command {
	var (
		outputPath string
		fallback   bool
		version    string
	)
	cmd := &cobra.Command{
		Use:   "render [page.yaml]",
		Short: "Render a page description to a standalone HTML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read page: %w", err)
			}
			page, err := pages.Parse(data)
			if err != nil {
				return err
			}

			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			settings := pages.SettingsFromConfig(cfg)
			if cmd.Flags().Changed("fallback") {
				settings.StaticFallback = fallback
			}
			if cmd.Flags().Changed("viz-version") {
				settings.VisualizationVersion = version
			}

			result, err := pages.NewHTMLBuilder(settings).Build(page)
			if err != nil {
				return err
			}
			for _, id := range result.Skipped {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped chart %q: kind not rendered\n", id)
			}

			if outputPath == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), result.HTML)
				return err
			}
			if err := os.WriteFile(outputPath, []byte(result.HTML), 0644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&fallback, "fallback", false, "Embed static PNG fallbacks")
	cmd.Flags().StringVar(&version, "viz-version", charts.DefaultVisualizationVersion, "Visualization API version to load")
	return cmd
}

func newPublishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish [page.yaml]",
		Short: "Render a page and store it in the configured page store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read page: %w", err)
			}
			page, err := pages.Parse(data)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}
			store, err := storage.NewPageStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			builder := pages.NewHTMLBuilder(pages.SettingsFromConfig(cfg))
			pub, err := pages.NewPublisher(builder, store).Publish(ctx, page, time.Now())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), pub.Path)
			return err
		},
	}
}

func newVisualizeCmd() *cobra.Command {
	var elementID string
	cmd := &cobra.Command{
		Use:   "visualize [request.yaml]",
		Short: "Render the script block for a single chart request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read request: %w", err)
			}
			var req charts.ChartRequest
			if err := yaml.Unmarshal(data, &req); err != nil {
				return fmt.Errorf("failed to parse request: %w", err)
			}

			gen := charts.NewGenerator()
			if !gen.Supports(req.Kind) {
				return fmt.Errorf("chart kind %q is not rendered", req.Kind)
			}
			script, err := gen.Visualize(elementID, req)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), script)
			return err
		},
	}
	cmd.Flags().StringVar(&elementID, "id", "chart", "Container element id")
	return cmd
}

func newContainerCmd() *cobra.Command {
	var attrs map[string]string
	cmd := &cobra.Command{
		Use:   "container [element-id]",
		Short: "Render an empty chart container element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			div, err := charts.NewGenerator().RenderContainer(args[0], attrs)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), div)
			return err
		},
	}
	cmd.Flags().StringToStringVar(&attrs, "attr", nil, "Extra attributes as key=value")
	return cmd
}

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List chart kinds with their constructor and package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := charts.NewGenerator()
			var lines []string
			for _, kind := range charts.Kinds() {
				desc, err := charts.LookupKind(kind)
				if err != nil {
					return err
				}
				status := "-"
				if gen.Supports(kind) {
					status = "rendered"
				}
				lines = append(lines, fmt.Sprintf("%-9s %-10s %-10s %s", kind, desc.Constructor, desc.Module, status))
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
			return err
		},
	}
}
