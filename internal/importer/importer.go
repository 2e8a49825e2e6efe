// Package importer bulk-loads Korean/Japanese word pairs from spreadsheets
// into a folder.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/five82/tango/internal/vocab"
)

// Options selects which cells hold the word pair.
type Options struct {
	Sheet          string // xlsx sheet; empty means the first sheet
	KoreanColumn   string // column letter, default "A"
	JapaneseColumn string // column letter, default "B"
	SkipHeader     bool
}

// DefaultOptions returns the default import options
func DefaultOptions() Options {
	return Options{KoreanColumn: "A", JapaneseColumn: "B", SkipHeader: true}
}

// Row is one word pair read from a file. Line is 1-based.
type Row struct {
	Line     int
	Korean   string
	Japanese string
}

// Result summarizes an import. Err combines every per-row failure.
type Result struct {
	Processed int
	Imported  int
	Skipped   int
	Err       error
}

// FolderCreator creates folders. *service.FolderService satisfies it.
type FolderCreator interface {
	Create(ctx context.Context, userID, name string) (vocab.Folder, error)
}

// WordAdder adds words. *service.WordService satisfies it.
type WordAdder interface {
	Add(ctx context.Context, userID, folder string, in vocab.NewWord) (vocab.Word, error)
}

// Importer writes rows into a user's folder.
type Importer struct {
	folders FolderCreator
	words   WordAdder
	logger  *zap.Logger
}

// New creates an importer.
func New(folders FolderCreator, words WordAdder, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{folders: folders, words: words, logger: logger}
}

// ReadFile reads rows from an .xlsx or .csv file, chosen by extension.
func ReadFile(path string, opts Options) ([]Row, error) {
	opts = withDefaults(opts)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open csv: %w", err)
		}
		defer f.Close()
		return ReadCSV(f, opts)
	case ".xlsx", ".xlsm":
		return readXLSX(path, opts)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

// ReadCSV reads rows from CSV data.
func ReadCSV(r io.Reader, opts Options) ([]Row, error) {
	opts = withDefaults(opts)
	ko, ja, err := columns(opts)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records [][]string
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		records = append(records, rec)
	}
	return toRows(records, ko, ja, opts.SkipHeader), nil
}

func readXLSX(path string, opts Options) ([]Row, error) {
	ko, ja, err := columns(opts)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return toRows(records, ko, ja, opts.SkipHeader), nil
}

// Import creates the folder when it does not exist yet and adds every row.
// Rows that fail are skipped and reported in Result.Err; the returned error
// is reserved for failures that stop the whole import.
func (im *Importer) Import(ctx context.Context, userID, folder string, rows []Row) (Result, error) {
	created, err := im.folders.Create(ctx, userID, folder)
	switch {
	case err == nil:
		im.logger.Info("created folder for import", zap.String("folder", created.Name))
		folder = created.Name
	case errors.Is(err, vocab.ErrDuplicateName):
		folder = strings.TrimSpace(folder)
	default:
		return Result{}, fmt.Errorf("prepare folder: %w", err)
	}

	var res Result
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Processed++
		if row.Korean == "" && row.Japanese == "" {
			res.Skipped++
			continue
		}
		_, err := im.words.Add(ctx, userID, folder, vocab.NewWord{Korean: row.Korean, Japanese: row.Japanese})
		if err != nil {
			res.Skipped++
			res.Err = multierr.Append(res.Err, fmt.Errorf("row %d: %w", row.Line, err))
			continue
		}
		res.Imported++
	}

	im.logger.Info("import finished",
		zap.String("user", userID),
		zap.String("folder", folder),
		zap.Int("processed", res.Processed),
		zap.Int("imported", res.Imported),
		zap.Int("skipped", res.Skipped),
	)
	return res, nil
}

func withDefaults(opts Options) Options {
	if strings.TrimSpace(opts.KoreanColumn) == "" {
		opts.KoreanColumn = "A"
	}
	if strings.TrimSpace(opts.JapaneseColumn) == "" {
		opts.JapaneseColumn = "B"
	}
	return opts
}

// columns converts column letters to zero-based indexes.
func columns(opts Options) (int, int, error) {
	ko, err := excelize.ColumnNameToNumber(strings.TrimSpace(opts.KoreanColumn))
	if err != nil {
		return 0, 0, fmt.Errorf("korean column: %w", err)
	}
	ja, err := excelize.ColumnNameToNumber(strings.TrimSpace(opts.JapaneseColumn))
	if err != nil {
		return 0, 0, fmt.Errorf("japanese column: %w", err)
	}
	if ko == ja {
		return 0, 0, fmt.Errorf("korean and japanese columns must differ")
	}
	return ko - 1, ja - 1, nil
}

func toRows(records [][]string, ko, ja int, skipHeader bool) []Row {
	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		if i == 0 && skipHeader {
			continue
		}
		rows = append(rows, Row{
			Line:     i + 1,
			Korean:   cell(rec, ko),
			Japanese: cell(rec, ja),
		})
	}
	return rows
}

func cell(rec []string, i int) string {
	if i < len(rec) {
		return strings.TrimSpace(rec[i])
	}
	return ""
}
