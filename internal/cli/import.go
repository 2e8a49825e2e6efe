package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/five82/tango/internal/importer"
	"github.com/five82/tango/internal/service"
	"github.com/five82/tango/internal/store"
)

func newImportCommand(configPath *string) *cobra.Command {
	var (
		userID   string
		folder   string
		noHeader bool
		opts     = importer.DefaultOptions()
	)

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import word pairs from an .xlsx or .csv file into a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.SkipHeader = !noHeader
			rows, err := importer.ReadFile(args[0], opts)
			if err != nil {
				return err
			}

			rt, cleanup, err := bootstrap(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := store.Migrate(rt.db, rt.logger); err != nil {
				return err
			}

			st := store.New(rt.db)
			im := importer.New(service.NewFolderService(st, rt.logger), service.NewWordService(st, rt.logger), rt.logger)
			res, err := im.Import(cmd.Context(), userID, folder, rows)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "processed %d rows: %d imported, %d skipped\n", res.Processed, res.Imported, res.Skipped)
			for _, rowErr := range multierr.Errors(res.Err) {
				fmt.Fprintf(out, "  %v\n", rowErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owning user id (required)")
	cmd.Flags().StringVar(&folder, "folder", "", "target folder, created when missing (required)")
	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "xlsx sheet name (default: first sheet)")
	cmd.Flags().StringVar(&opts.KoreanColumn, "korean-col", opts.KoreanColumn, "column holding the Korean word")
	cmd.Flags().StringVar(&opts.JapaneseColumn, "japanese-col", opts.JapaneseColumn, "column holding the Japanese word")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "the first row is data, not a header")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("folder")
	return cmd
}
