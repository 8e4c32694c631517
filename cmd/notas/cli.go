package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/marcus/notas/internal/config"
	"github.com/marcus/notas/internal/document"
	"github.com/marcus/notas/internal/export"
	"github.com/marcus/notas/internal/slug"
	"github.com/marcus/notas/internal/store"
	"github.com/marcus/notas/internal/version"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newExportCmd(opts *options) *cobra.Command {
	var outDir string
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every page to a JS module without starting the TUI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := opts.stderrLogger()
			cfg, st, closeStore, err := opts.open(logger)
			if err != nil {
				return err
			}
			defer closeStore()

			body, err := exportBody(st)
			if errors.Is(err, export.ErrNothingToExport) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Nothing to export")
				return nil
			}
			if err != nil {
				return err
			}

			if toStdout {
				return writeStdout(cmd.OutOrStdout(), body, cfg.Export.SyntaxStyle, isTerminal(os.Stdout))
			}

			dir := cfg.Export.Dir
			if outDir != "" {
				dir = config.ExpandPath(outDir)
			}
			path, err := export.Write(dir, cfg.Export.Prefix, cfg.Export.Extension, time.Now(), body)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "directory to write the export to (default export.dir)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "print the module instead of writing a file")
	return cmd
}

// exportBody renders every stored category, home first.
func exportBody(st *store.Store) ([]byte, error) {
	pages := export.Build(export.Collect(st, "", st.LoadCategory("")))
	return export.Render(pages)
}

// writeStdout prints body, highlighted when color is set. A style chroma
// cannot load falls back to plain text.
func writeStdout(w io.Writer, body []byte, style string, color bool) error {
	out := string(body)
	if color {
		if hl, err := export.Highlight(body, style); err == nil {
			out = hl
		}
	}
	_, err := io.WriteString(w, out)
	return err
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newCategoriesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories with their active and archived row counts",
		Long: `List the home page and every indexed category with their active and
archived row counts. Stored rows of categories missing from the index are
reported after the list.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, st, closeStore, err := opts.open(opts.stderrLogger())
			if err != nil {
				return err
			}
			defer closeStore()
			return listCategories(cmd.OutOrStdout(), st)
		},
	}
}

func listCategories(w io.Writer, st *store.Store) error {
	slugs := append([]string{""}, st.Categories()...)
	width := 0
	for _, s := range slugs {
		width = max(width, len(slug.Route(s)))
	}

	var b strings.Builder
	for _, s := range slugs {
		doc := document.New(st.LoadCategory(s), nil)
		fmt.Fprintf(&b, "%-*s  %3d active  %3d archived\n",
			width, slug.Route(s), len(doc.Active()), len(doc.Archived()))
	}

	// Rows left behind by a category that fell out of the index.
	orphans, err := st.Orphans()
	if err != nil {
		return err
	}
	for _, s := range orphans {
		fmt.Fprintf(&b, "%s  not indexed, %d rows\n", store.RowsKey(s), len(st.LoadCategory(s)))
	}
	_, err = io.WriteString(w, b.String())
	return err
}

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := opts.watchPath()
			if path == "" {
				return errors.New("no config path: home directory unknown")
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.SaveTo(config.Default(), path); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			v := version.Effective(Version)
			fmt.Fprintf(cmd.OutOrStdout(), "notas version %s\n", v)
			if strings.HasPrefix(v, "v") {
				fmt.Fprintf(cmd.OutOrStdout(), "reinstall: %s\n", version.UpdateCommand(v, version.DetectInstallMethod()))
			}
		},
	}
}
