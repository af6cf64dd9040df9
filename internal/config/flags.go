package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// CLIConfig is the parsed command line for cmd/rewrite, built the same
// way cmd/morfx's buildConfigFromFlags builds its *model.Config: define
// flags on a pflag.FlagSet, parse, then copy pointers into a plain struct.
type CLIConfig struct {
	TemplatePath string
	RulesPath    string
	ExprPath     string
	RuleName     string

	SaveAs  string
	OutPath string

	ShowDiff    bool
	DiffContext int
	JSONOutput  bool
	Verbose     bool

	DBDSN   string
	DBDebug bool
}

// BuildFlags parses args into a CLIConfig, printing usage to stderr and
// returning pflag.ErrHelp when --help is requested, matching the
// teacher's own help-handling convention in cmd/morfx/main.go.
func BuildFlags(args []string) (*CLIConfig, error) {
	fs := pflag.NewFlagSet("rewrite", pflag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	template := fs.StringP("template", "t", "", "Path to a lattice template JSON file. (Required)")
	rules := fs.StringP("rules", "r", "", "Path to a rule-set JSON file. (Required)")
	expr := fs.StringP("expr", "e", "", "Path to an expression JSON file. (Required)")
	ruleName := fs.StringP("rule", "n", "", "Name of the rule to apply. (Required)")

	saveAs := fs.String("save", "", "Persist the loaded template and rules to the catalog under this name.")
	outPath := fs.StringP("out", "o", "", "Also write the run result (rule, before, after, diff) as JSON to this file.")

	showDiff := fs.BoolP("diff", "d", false, "Show a unified diff between the expression before and after rewriting.")
	diffContext := fs.IntP("diff-context", "C", 3, "Lines of context for the diff.")
	jsonOutput := fs.BoolP("json", "j", false, "Print the run result (rule, before, after, diff) as JSON.")
	verbose := fs.BoolP("verbose", "v", false, "Print progress to stderr.")

	dbDSN := fs.String("db", "", "Catalog database DSN, overriding REWRITE_DB_DSN.")
	dbDebug := fs.Bool("db-debug", false, "Enable verbose catalog query logging.")

	fs.BoolP("help", "h", false, "Show this help message and exit.")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if changed, _ := fs.GetBool("help"); changed {
		fs.Usage()
		return nil, pflag.ErrHelp
	}

	cfg := &CLIConfig{
		TemplatePath: *template,
		RulesPath:    *rules,
		ExprPath:     *expr,
		RuleName:     *ruleName,
		SaveAs:       *saveAs,
		OutPath:      *outPath,
		ShowDiff:     *showDiff,
		DiffContext:  *diffContext,
		JSONOutput:   *jsonOutput,
		Verbose:      *verbose,
		DBDSN:        *dbDSN,
		DBDebug:      *dbDebug,
	}

	var missing []string
	if cfg.TemplatePath == "" {
		missing = append(missing, "--template")
	}
	if cfg.RulesPath == "" {
		missing = append(missing, "--rules")
	}
	if cfg.ExprPath == "" {
		missing = append(missing, "--expr")
	}
	if cfg.RuleName == "" {
		missing = append(missing, "--rule")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required flags: %v", missing)
	}

	return cfg, nil
}

func printUsage(fs *pflag.FlagSet) {
	fmt.Fprintln(os.Stderr, "Usage: rewrite --template FILE --rules FILE --expr FILE --rule NAME [flags]")
	fmt.Fprintln(os.Stderr)
	fs.PrintDefaults()
}
