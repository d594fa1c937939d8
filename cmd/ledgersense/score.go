package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/ledgersense/ledgersense/internal/cli"
	"github.com/ledgersense/ledgersense/internal/common"
	"github.com/ledgersense/ledgersense/internal/model"
	"github.com/spf13/cobra"
)

func scoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a hypothetical transaction against your history",
		Long: `Evaluate a transaction for anomalies without storing it. Baselines
come from the recorded history; with fewer than the minimum number of
prior transactions nothing is scored.

Examples:
  ledgersense score --amount 4500 --category Travel --type expense
  ledgersense score --amount 120 --category Groceries --type expense --currency USD
  ledgersense score --amount 9000 --category Rent --type expense --time 2024-03-11T03:10:00Z`,
		RunE: runScore,
	}

	cmd.Flags().Float64("amount", 0, "transaction amount (required)")
	cmd.Flags().String("category", model.DefaultCategory, "spending category")
	cmd.Flags().String("type", string(model.TypeExpense), "transaction type (expense, income)")
	cmd.Flags().String("currency", "", "ISO currency code (empty means home currency)")
	cmd.Flags().String("time", "", "transaction time, RFC3339 (default: now)")
	cmd.Flags().Bool("json", false, "emit JSON instead of styled output")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runScore(cmd *cobra.Command, _ []string) error {
	amount, _ := cmd.Flags().GetFloat64("amount")
	category, _ := cmd.Flags().GetString("category")
	txType, _ := cmd.Flags().GetString("type")
	currency, _ := cmd.Flags().GetString("currency")
	timeStr, _ := cmd.Flags().GetString("time")
	asJSON, _ := cmd.Flags().GetBool("json")

	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return common.NewUserError("--amount must be a positive number", common.ErrInvalidAmount)
	}

	when := time.Now()
	if timeStr != "" {
		parsed, err := time.Parse(time.RFC3339, timeStr)
		if err != nil {
			return fmt.Errorf("invalid --time %q, expected RFC3339: %w", timeStr, err)
		}
		when = parsed
	}

	if !model.IsValidCategory(category) {
		return common.NewUserError(fmt.Sprintf("unknown category %q", category), common.ErrUnknownCategory)
	}

	e, store, err := buildEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	assessment, err := e.ScoreCandidate(cmd.Context(), model.Transaction{
		Date:     when,
		Category: category,
		Type:     model.NormalizeType(txType),
		Currency: currency,
		Amount:   amount,
	})
	if errors.Is(err, common.ErrInsufficientHistory) {
		if asJSON {
			return json.NewEncoder(os.Stdout).Encode(nil)
		}
		fmt.Println(cli.FormatInfo("Not enough history to judge yet; record more transactions first."))
		return nil
	}
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(assessment)
	}

	if assessment == nil {
		fmt.Println(cli.FormatInfo("Nothing unusual about this transaction."))
		return nil
	}

	style := cli.SeverityStyle(string(assessment.Severity))
	fmt.Println(style.Render(fmt.Sprintf("%s  score %d (%s)",
		cli.WarningIcon, assessment.Score, assessment.Severity)))
	for _, reason := range assessment.Reasons {
		fmt.Println(cli.SubtleStyle.Render("  - " + string(reason)))
	}
	return nil
}
