// Command rewrite loads a property lattice template, a set of rule
// definitions, and an expression, all as JSON, applies one named rule to
// the expression, and prints the result — the CLI front-end for the
// term-rewriting engine in internal/algebra.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cmh231/symrewrite/internal/algebra"
	"github.com/cmh231/symrewrite/internal/config"
	"github.com/cmh231/symrewrite/internal/registry"
	"github.com/cmh231/symrewrite/internal/store"
	"github.com/cmh231/symrewrite/internal/util"
	"github.com/cmh231/symrewrite/internal/wire"
)

func main() {
	cfg, err := config.BuildFlags(os.Args[1:])
	if err != nil {
		printFatal(err, false)
		os.Exit(1)
	}

	result, err := run(cfg)
	if err != nil {
		printFatal(err, cfg.JSONOutput)
		os.Exit(1)
	}

	printResult(result, cfg)
}

// runResult carries everything the output layer needs, mirroring the
// teacher's model.Result shape (before/after, as a pair here rather than
// a byte diff, since the engine rewrites expressions, not files).
type runResult struct {
	Rule   string `json:"rule"`
	Before string `json:"before"`
	After  string `json:"after"`
	Diff   string `json:"diff,omitempty"`
}

func run(cfg *config.CLIConfig) (*runResult, error) {
	reg := registry.New()

	templateRaw, err := os.ReadFile(cfg.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	if _, err := wire.LoadTemplate(templateRaw, reg); err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}

	rulesRaw, err := os.ReadFile(cfg.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	if _, err := wire.LoadRules(rulesRaw, reg); err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}

	exprRaw, err := os.ReadFile(cfg.ExprPath)
	if err != nil {
		return nil, fmt.Errorf("reading expression: %w", err)
	}
	expr, err := wire.LoadExpr(exprRaw, reg)
	if err != nil {
		return nil, fmt.Errorf("loading expression: %w", err)
	}

	rule, err := reg.Rule(cfg.RuleName)
	if err != nil {
		return nil, fmt.Errorf("resolving rule %q: %w", cfg.RuleName, err)
	}

	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "applying %s to %s\n", rule.String(), expr.String())
	}

	if cfg.SaveAs != "" {
		if err := saveToCatalog(cfg, templateRaw, rulesRaw); err != nil {
			return nil, fmt.Errorf("saving to catalog: %w", err)
		}
	}

	after := algebra.ApplyRule(rule, expr)

	result := &runResult{
		Rule:   rule.Name(),
		Before: expr.String(),
		After:  after.String(),
	}

	if cfg.ShowDiff {
		diff, err := util.UnifiedDiffText(result.Before, result.After, "before", "after", cfg.DiffContext)
		if err != nil {
			return nil, fmt.Errorf("building diff: %w", err)
		}
		result.Diff = diff
	}

	if cfg.OutPath != "" {
		out, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("marshaling result for --out: %w", err)
		}
		if err := util.WriteFileAtomic(cfg.OutPath, out, 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", cfg.OutPath, err)
		}
	}

	return result, nil
}

// saveToCatalog persists the loaded template and rules to the catalog
// store under cfg.SaveAs. The command itself always reads the template and
// rules from the files given on the command line; it has no flag that
// loads them back from the catalog. The template and rule-set are
// distinct rows — CatalogEntry.Name is unique across the whole table, not
// just within a Kind — so each is saved under its own kind-qualified
// name derived from cfg.SaveAs.
func saveToCatalog(cfg *config.CLIConfig, templateRaw, rulesRaw []byte) error {
	dbCfg := config.Load()
	if cfg.DBDSN != "" {
		dbCfg.DSN = cfg.DBDSN
	}
	dbCfg.Debug = cfg.DBDebug

	catalog, err := store.Connect(dbCfg.DSN, dbCfg.LibsqlAuthToken, dbCfg.Debug)
	if err != nil {
		return err
	}

	if err := catalog.Save(catalogName(cfg.SaveAs, store.KindTemplate), store.KindTemplate, templateRaw); err != nil {
		return err
	}
	return catalog.Save(catalogName(cfg.SaveAs, store.KindRuleSet), store.KindRuleSet, rulesRaw)
}

// catalogName derives the per-kind catalog entry name saved (and later
// loaded) under a single --save name.
func catalogName(name string, kind store.Kind) string {
	return fmt.Sprintf("%s.%s", name, kind)
}

func printResult(result *runResult, cfg *config.CLIConfig) {
	if cfg.JSONOutput {
		out, err := json.Marshal(result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error converting result to JSON: %v\n", err)
			return
		}
		fmt.Println(string(out))
		return
	}

	fmt.Printf("✓ %s\n", result.Rule)
	fmt.Printf("  before: %s\n", result.Before)
	fmt.Printf("  after:  %s\n", result.After)
	if result.Diff != "" {
		fmt.Print(result.Diff)
	}
}

func printFatal(err error, jsonOut bool) {
	if jsonOut {
		payload, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Println(string(payload))
		return
	}
	fmt.Fprintf(os.Stderr, "✗ Error: %v\n", err)
}
