package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/ledgersense/ledgersense/internal/cli"
	"github.com/ledgersense/ledgersense/internal/model"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// classifiedLine pairs an input description with its result for batch
// output.
type classifiedLine struct {
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Confidence  float64 `json:"confidence"`
}

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [description]",
		Short: "Map a transaction description to a category",
		Long: `Classify a free-text transaction description into a spending category.

Examples:
  ledgersense classify "swiggy dinner order"
  ledgersense classify --file descriptions.txt
  ledgersense classify --file descriptions.txt --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runClassify,
	}

	cmd.Flags().StringP("file", "f", "", "classify every line of a file")
	cmd.Flags().Bool("json", false, "emit JSON instead of styled output")
	cmd.Flags().Bool("scores", false, "show per-category scores")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	asJSON, _ := cmd.Flags().GetBool("json")
	showScores, _ := cmd.Flags().GetBool("scores")

	if file == "" && len(args) == 0 {
		return fmt.Errorf("provide a description or --file")
	}

	e, store, err := buildEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	if file != "" {
		return classifyFile(file, asJSON, e.Classify)
	}

	result := e.Classify(args[0])
	if asJSON {
		return json.NewEncoder(os.Stdout).Encode(classifiedLine{
			Description: args[0],
			Category:    result.Category,
			Confidence:  result.Confidence,
		})
	}

	fmt.Println(cli.BoldStyle.Render(result.Category) +
		cli.SubtleStyle.Render(fmt.Sprintf("  (confidence %.2f)", result.Confidence)))

	if showScores {
		printScores(result.Scores)
	}
	return nil
}

func printScores(scores map[string]float64) {
	cats := make([]string, 0, len(scores))
	for cat := range scores {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return scores[cats[i]] > scores[cats[j]] })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()
	for _, cat := range cats {
		fmt.Fprintf(w, "  %s\t%.3f\n", cat, scores[cat])
	}
}

// classifyFile runs the classifier over every non-blank line of a file.
func classifyFile(path string, asJSON bool, classify func(string) model.ClassificationResult) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var bar *progressbar.ProgressBar
	if !asJSON {
		bar = progressbar.NewOptions(len(lines),
			progressbar.OptionSetDescription("Classifying"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionShowCount(),
		)
	}

	results := make([]classifiedLine, 0, len(lines))
	for _, line := range lines {
		r := classify(line)
		results = append(results, classifiedLine{
			Description: line,
			Category:    r.Category,
			Confidence:  r.Confidence,
		})
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "DESCRIPTION\tCATEGORY\tCONFIDENCE")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%.2f\n", r.Description, r.Category, r.Confidence)
	}
	return nil
}
