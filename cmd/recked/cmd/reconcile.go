package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pattydubb/venice-recked/cmd/recked/config"
	"github.com/pattydubb/venice-recked/internal/ingest"
	"github.com/pattydubb/venice-recked/internal/matcher"
	"github.com/pattydubb/venice-recked/internal/report"
	"github.com/pattydubb/venice-recked/internal/workspace"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flags for the reconcile command
var (
	bankFile             string
	glFile               string
	outputFormat         string
	outputFile           string
	dateTolerance        int
	amountTolerance      float64
	descriptionThreshold float64
	confirmExact         bool
)

// reconcileCmd represents the reconcile command
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Match bank statement transactions against general ledger entries",
	Long: `Reconcile loads a bank statement file and a general ledger file, finds
exact matches by amount, proposes fuzzy matches by amount, date, and
description similarity, and reports the results.

This command requires:
- A bank statement file (CSV format)
- A general ledger file (CSV format)

Examples:
  # Basic reconciliation
  recked reconcile --bank-file statement.csv --gl-file ledger.csv

  # Custom output format and tolerances
  recked reconcile --bank-file stmt.csv --gl-file gl.csv \
    --output-format json --output-file report.json \
    --date-tolerance 3 --amount-tolerance 0.5

  # Custom column names
  recked reconcile --bank-file stmt.csv --gl-file gl.csv \
    --bank-date-column "Posting Date" --gl-amount-column "Debit"`,

	PreRunE: validateReconcileFlags,
	RunE:    runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	// Required flags
	reconcileCmd.Flags().StringVarP(&bankFile, "bank-file", "b", "", "path to bank statement CSV file (required)")
	reconcileCmd.Flags().StringVarP(&glFile, "gl-file", "g", "", "path to general ledger CSV file (required)")

	// Output flags
	reconcileCmd.Flags().StringVarP(&outputFormat, "output-format", "f", "console", "output format: console, json, csv")
	reconcileCmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "output file path (default: stdout)")
	reconcileCmd.Flags().Bool("unbalanced-only", false, "report only unbalanced match groups")

	// Matching configuration flags
	reconcileCmd.Flags().IntVarP(&dateTolerance, "date-tolerance", "d", 5, "date matching tolerance in days")
	reconcileCmd.Flags().Float64VarP(&amountTolerance, "amount-tolerance", "a", 1.0, "amount tolerance percentage (0.0-100.0)")
	reconcileCmd.Flags().Float64Var(&descriptionThreshold, "description-threshold", 0.4, "description similarity threshold (0.0-1.0, lower is stricter)")
	reconcileCmd.Flags().BoolVar(&confirmExact, "confirm-exact", false, "confirm balanced exact matches instead of leaving them for review")

	// Column mapping flags
	reconcileCmd.Flags().String("bank-date-column", "", "bank statement date column name")
	reconcileCmd.Flags().String("bank-amount-column", "", "bank statement amount column name")
	reconcileCmd.Flags().String("bank-description-column", "", "bank statement description column name")
	reconcileCmd.Flags().String("bank-account-column", "", "bank statement account column name")
	reconcileCmd.Flags().String("bank-check-column", "", "bank statement check number column name")
	reconcileCmd.Flags().String("gl-date-column", "", "general ledger date column name")
	reconcileCmd.Flags().String("gl-amount-column", "", "general ledger amount column name")
	reconcileCmd.Flags().String("gl-description-column", "", "general ledger description column name")
	reconcileCmd.Flags().String("gl-account-column", "", "general ledger account column name")
	reconcileCmd.Flags().String("gl-reference-column", "", "general ledger reference column name")

	// Mark required flags
	reconcileCmd.MarkFlagRequired("bank-file")
	reconcileCmd.MarkFlagRequired("gl-file")

	// Bind flags to viper
	viper.BindPFlag("bank-file", reconcileCmd.Flags().Lookup("bank-file"))
	viper.BindPFlag("gl-file", reconcileCmd.Flags().Lookup("gl-file"))
	viper.BindPFlag("output-format", reconcileCmd.Flags().Lookup("output-format"))
	viper.BindPFlag("output-file", reconcileCmd.Flags().Lookup("output-file"))
	viper.BindPFlag("unbalanced-only", reconcileCmd.Flags().Lookup("unbalanced-only"))
	viper.BindPFlag("date-tolerance", reconcileCmd.Flags().Lookup("date-tolerance"))
	viper.BindPFlag("amount-tolerance", reconcileCmd.Flags().Lookup("amount-tolerance"))
	viper.BindPFlag("description-threshold", reconcileCmd.Flags().Lookup("description-threshold"))
	viper.BindPFlag("confirm-exact", reconcileCmd.Flags().Lookup("confirm-exact"))

	viper.BindPFlag("bank-date-column", reconcileCmd.Flags().Lookup("bank-date-column"))
	viper.BindPFlag("bank-amount-column", reconcileCmd.Flags().Lookup("bank-amount-column"))
	viper.BindPFlag("bank-description-column", reconcileCmd.Flags().Lookup("bank-description-column"))
	viper.BindPFlag("bank-account-column", reconcileCmd.Flags().Lookup("bank-account-column"))
	viper.BindPFlag("bank-check-column", reconcileCmd.Flags().Lookup("bank-check-column"))
	viper.BindPFlag("gl-date-column", reconcileCmd.Flags().Lookup("gl-date-column"))
	viper.BindPFlag("gl-amount-column", reconcileCmd.Flags().Lookup("gl-amount-column"))
	viper.BindPFlag("gl-description-column", reconcileCmd.Flags().Lookup("gl-description-column"))
	viper.BindPFlag("gl-account-column", reconcileCmd.Flags().Lookup("gl-account-column"))
	viper.BindPFlag("gl-reference-column", reconcileCmd.Flags().Lookup("gl-reference-column"))
}

func validateReconcileFlags(cmd *cobra.Command, args []string) error {
	// Get values from viper (allows override from config file)
	bankFile = viper.GetString("bank-file")
	glFile = viper.GetString("gl-file")
	outputFormat = viper.GetString("output-format")
	outputFile = viper.GetString("output-file")
	dateTolerance = viper.GetInt("date-tolerance")
	amountTolerance = viper.GetFloat64("amount-tolerance")
	descriptionThreshold = viper.GetFloat64("description-threshold")
	confirmExact = viper.GetBool("confirm-exact")

	if bankFile == "" {
		return fmt.Errorf("bank-file is required")
	}
	if glFile == "" {
		return fmt.Errorf("gl-file is required")
	}

	if err := validateFileExists(bankFile, "bank statement file"); err != nil {
		return err
	}
	if err := validateFileExists(glFile, "general ledger file"); err != nil {
		return err
	}

	if !report.OutputFormat(outputFormat).IsValid() {
		return fmt.Errorf("invalid output format '%s'. Valid formats: console, json, csv", outputFormat)
	}

	if dateTolerance < 0 {
		return fmt.Errorf("date tolerance cannot be negative")
	}
	if amountTolerance < 0.0 || amountTolerance > 100.0 {
		return fmt.Errorf("amount tolerance must be between 0.0 and 100.0")
	}
	if descriptionThreshold < 0.0 || descriptionThreshold > 1.0 {
		return fmt.Errorf("description threshold must be between 0.0 and 1.0")
	}

	if outputFile != "" {
		dir := filepath.Dir(outputFile)
		if dir != "." {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				return fmt.Errorf("output directory does not exist: %s", dir)
			}
		}
	}

	return nil
}

func validateFileExists(filePath, description string) error {
	if filePath == "" {
		return fmt.Errorf("%s path cannot be empty", description)
	}

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist: %s", description, filePath)
	}
	if err != nil {
		return fmt.Errorf("error accessing %s: %w", description, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a file: %s", description, filePath)
	}

	return nil
}

func runReconcile(cmd *cobra.Command, args []string) error {
	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Starting reconciliation...\n")
		fmt.Fprintf(os.Stderr, "Bank file: %s\n", bankFile)
		fmt.Fprintf(os.Stderr, "GL file: %s\n", glFile)
		fmt.Fprintf(os.Stderr, "Output format: %s\n", outputFormat)
		if outputFile != "" {
			fmt.Fprintf(os.Stderr, "Output file: %s\n", outputFile)
		}
	}

	matcherConfig, err := config.CreateMatcherConfig(amountTolerance, dateTolerance, descriptionThreshold)
	if err != nil {
		return err
	}

	loader := ingest.NewLoader(nil)

	bankTransactions, bankStats, err := loader.LoadBankFile(bankFile, config.CreateBankMapping())
	if err != nil {
		return fmt.Errorf("failed to load bank statement: %w", err)
	}
	glTransactions, glStats, err := loader.LoadGLFile(glFile, config.CreateGLMapping())
	if err != nil {
		return fmt.Errorf("failed to load general ledger: %w", err)
	}

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Bank statement: %s\n", bankStats)
		fmt.Fprintf(os.Stderr, "General ledger: %s\n", glStats)
	}

	ws := workspace.New(matcher.NewEngine(matcherConfig))
	ws.AddBankTransactions(bankTransactions)
	ws.AddGLTransactions(glTransactions)

	stats := ws.RunAutomaticMatching()

	if confirmExact {
		ws.ConfirmExactMatches()
		stats = ws.Stats()
	}

	generator, err := report.NewGenerator(config.CreateReportConfig(outputFormat))
	if err != nil {
		return fmt.Errorf("failed to create report generator: %w", err)
	}

	var output *os.File
	if outputFile != "" {
		output, err = os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer output.Close()
	} else {
		output = os.Stdout
	}

	if err := generator.Generate(report.FromWorkspace(ws), output); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "\nReconciliation completed.\n")
		fmt.Fprintf(os.Stderr, "Matched %d of %d bank transactions (%.1f%%), %d match groups.\n",
			stats.MatchedBankTransactions+stats.PotentialBankTransactions,
			stats.TotalBankTransactions, stats.MatchedRate, stats.MatchGroups)
	}

	return nil
}
