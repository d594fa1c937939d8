package main

import (
	"fmt"
	"strings"

	"github.com/ledgersense/ledgersense/internal/cli"
	"github.com/ledgersense/ledgersense/internal/common"
	"github.com/ledgersense/ledgersense/internal/model"
	"github.com/spf13/cobra"
)

func learnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "learn <description> <category>",
		Short: "Teach the classifier a corrected category",
		Long: `Record a correction: the given description belongs to the given
category. Useful keywords extracted from the description are added to
the lexicon and persisted, so future classifications pick them up.

Example:
  ledgersense learn "xyzcorp cab to airport" Travel`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			description, category := args[0], args[1]

			if !model.IsValidCategory(category) {
				return common.NewUserError(
					fmt.Sprintf("unknown category %q, valid categories: %s",
						category, strings.Join(model.Categories, ", ")),
					common.ErrUnknownCategory)
			}

			e, store, err := buildEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			admitted, err := e.LearnFeedback(cmd.Context(), description, category)
			if err != nil {
				return err
			}

			if len(admitted) == 0 {
				fmt.Println(cli.FormatInfo("Nothing new to learn: every candidate keyword was too generic or already covered."))
				return nil
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Learned %d keyword(s) for %s: %s",
				len(admitted), category, strings.Join(admitted, ", "))))
			return nil
		},
	}
}
