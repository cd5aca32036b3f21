// Command importer parses a personal-finance export file, runs the
// categorization cascade over the extracted transactions, and prints an
// import preview: one table row per transaction with its category guess,
// confidence, and the tier that produced it, followed by per-row parse
// errors.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"

	"github.com/aquafin/backend/internal/categorize"
	"github.com/aquafin/backend/internal/logging"
	"github.com/aquafin/backend/internal/parser"
	"github.com/aquafin/backend/internal/store"
)

func main() {
	var (
		file     = flag.String("file", "", "statement file to import (csv or pdf)")
		source   = flag.String("source", "", "optional source hint: bank_csv, satispay, paypal, pdf")
		rules    = flag.String("rules", "", "optional JSON file with user categorization rules")
		logLevel = flag.String("log-level", envOr("IMPORTER_LOG_LEVEL", "info"), "log level: debug, info, warn, error")
	)
	flag.Parse()

	log := logging.Setup(*logLevel)

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: importer -file <statement.csv|statement.pdf> [-source hint] [-rules rules.json]")
		os.Exit(2)
	}

	content, err := os.ReadFile(*file)
	if err != nil {
		log.WithError(err).Fatal("cannot read input file")
	}

	userRules, err := loadRules(*rules)
	if err != nil {
		log.WithError(err).Fatal("cannot load rules file")
	}

	registry := parser.NewRegistry(log)
	result, err := registry.ParseFile(filepath.Base(*file), content, parser.SourceType(*source))
	if err != nil {
		log.WithError(err).Error("import rejected")
		os.Exit(1)
	}

	engine := categorize.NewEngine(userRules, log)
	assignments := engine.CategorizeBatch(result.Transactions)

	printPreview(result, assignments)

	log.WithFields(map[string]interface{}{
		"source":       result.SourceType,
		"rows":         result.RowCount,
		"parsed":       result.ParsedCount,
		"parse_errors": len(result.Errors),
	}).Info("import preview complete")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// loadRules reads user rules from a JSON file; an empty path means no rules.
func loadRules(path string) ([]categorize.Rule, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rules []categorize.Rule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func printPreview(result *parser.ParseResult, assignments []categorize.CategoryAssignment) {
	lookup := store.NewMemoryStore()
	ctx := context.Background()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Date", "Amount", "Description", "Type", "Category", "Confidence", "Matched By"})

	for i, tx := range result.Transactions {
		a := assignments[i]
		categoryName := a.CategoryID
		if c, err := lookup.CategoryByID(ctx, a.CategoryID); err == nil {
			categoryName = c.Name
		}
		table.Append([]string{
			tx.Date.Format("2006-01-02"),
			parser.FormatItalianAmount(tx.Amount) + " " + tx.Currency,
			tx.Description,
			string(tx.Type),
			categoryName,
			fmt.Sprintf("%.2f", a.Confidence),
			string(a.MatchedBy),
		})
	}
	table.Render()

	if len(result.Errors) > 0 {
		fmt.Printf("\n%d row(s) could not be parsed:\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}
}
