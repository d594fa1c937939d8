package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ledgersense/ledgersense/internal/cli"
	"github.com/ledgersense/ledgersense/internal/common"
	"github.com/ledgersense/ledgersense/internal/model"
	"github.com/ledgersense/ledgersense/internal/ofx"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import bank statements in OFX or QFX format. Each transaction is
categorized, stored, and scored against the history accumulated so far.

Examples:
  ledgersense import ~/Downloads/statement_jan.ofx
  ledgersense import ~/Downloads/*.qfx --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "parse and classify without saving")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	var files []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, statErr := os.Stat(pattern); statErr == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("no files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to import")
	}

	e, store, err := buildEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	// A bad file is skipped, not fatal: the rest of the batch still imports.
	parser := ofx.NewParser()
	var transactions []model.Transaction
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			common.LogError(err, "skipping unreadable file", common.Fields{"file": path})
			continue
		}
		parsed, err := parser.ParseFile(cmd.Context(), f)
		f.Close()
		if err != nil {
			common.LogError(err, "skipping unparseable file", common.Fields{"file": filepath.Base(path)})
			continue
		}
		transactions = append(transactions, parsed...)
	}
	if len(transactions) == 0 {
		return fmt.Errorf("no transactions parsed from %d file(s)", len(files))
	}

	if dryRun {
		fmt.Println(cli.FormatInfo(fmt.Sprintf("Dry run: %d transaction(s) parsed from %d file(s).",
			len(transactions), len(files))))
		for _, tx := range transactions {
			result := e.Classify(tx.Description)
			fmt.Printf("  %s  %s  %.2f  -> %s\n",
				tx.Date.Format("2006-01-02"), tx.Description, tx.Amount, result.Category)
		}
		return nil
	}

	bar := progressbar.NewOptions(len(transactions),
		progressbar.OptionSetDescription("Importing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionShowCount(),
	)

	var imported, duplicates, flagged int
	for _, tx := range transactions {
		_, assessment, err := e.RecordTransaction(cmd.Context(), tx)
		switch {
		case errors.Is(err, common.ErrDuplicateEntry):
			duplicates++
		case err != nil:
			return fmt.Errorf("failed to record transaction %q: %w", tx.Description, err)
		default:
			imported++
			if assessment != nil {
				flagged++
			}
		}
		_ = bar.Add(1)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transaction(s), %d duplicate(s) skipped.",
		imported, duplicates)))
	if flagged > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%d transaction(s) flagged as unusual. See 'ledgersense risks'.", flagged)))
	}
	return nil
}
