// Command stratadb evaluates a datalog source file to a fixed point and
// reports every query's answer.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wbrown/stratadb/datalog"
	"github.com/wbrown/stratadb/datalog/annotations"
	"github.com/wbrown/stratadb/datalog/executor"
	"github.com/wbrown/stratadb/datalog/parser"
	"github.com/wbrown/stratadb/datalog/planner"
)

func main() {
	var verbose bool
	var table bool
	var parallel bool

	flag.BoolVar(&verbose, "verbose", false, "trace SCC, pass, and query evaluation to stderr")
	flag.BoolVar(&table, "table", false, "additionally render each queried relation as a markdown table")
	flag.BoolVar(&parallel, "parallel", false, "evaluate independent rules within an SCC concurrently")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <source.datalog>\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	source, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "stratadb: %v\n", err)
		os.Exit(1)
	}

	program, err := parser.Parse(string(source))
	if err != nil {
		perr, ok := err.(*parser.Error)
		if !ok {
			fmt.Fprintf(os.Stderr, "stratadb: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Failure!\n  %s\n", perr.Token)
		os.Exit(1)
	}

	if err := run(program, verbose, table, parallel); err != nil {
		fmt.Fprintf(os.Stderr, "stratadb: %v\n", err)
		os.Exit(1)
	}
}

func run(program *datalog.Program, verbose, table, parallel bool) error {
	db, err := executor.NewDatabase(program.Schemes)
	if err != nil {
		return err
	}
	for _, f := range program.Facts {
		if err := db.AddFact(f); err != nil {
			return err
		}
	}

	var collector *annotations.Collector
	if verbose {
		collector = annotations.NewCollector(annotations.NewOutputFormatter(os.Stderr).Handle)
	}

	totalAdded := make(map[int]int)
	trace := traceFunc(collector, program.Rules)

	fmt.Println("Rule Evaluation")
	fmt.Println()

	results, err := planner.Run(db, program.Rules, planner.Options{
		Parallel: parallel,
		Trace: func(ev planner.PassEvent) {
			totalAdded[ev.RuleIndex] += ev.Added
			if trace != nil {
				trace(ev)
			}
		},
	})
	if err != nil {
		return err
	}

	for _, res := range results {
		names := make([]string, len(res.RuleIndices))
		for i, idx := range res.RuleIndices {
			names[i] = fmt.Sprintf("R%d", idx)
		}
		kind := "non-recursive"
		if res.Recursive {
			kind = "recursive"
		}
		fmt.Printf("SCC: %s (%s)\n", joinCommas(names), kind)
		for _, idx := range res.RuleIndices {
			fmt.Printf("  %s\n", program.Rules[idx].String())
			fmt.Printf("    %d new tuple(s)\n", totalAdded[idx])
		}
		fmt.Printf("Schemes populated after %d passes through the Rules.\n\n", res.Passes)

		if collector != nil {
			collector.Add(annotations.Event{Name: annotations.SCCComplete, Data: map[string]interface{}{"passes": res.Passes}})
		}
	}

	fmt.Println("Query Evaluation")
	for _, q := range program.Queries {
		if collector != nil {
			collector.Add(annotations.Event{Name: annotations.QueryInvoked, Data: map[string]interface{}{"query": q.String()}})
		}
		answer, err := executor.RunQuery(db, q)
		if err != nil {
			return err
		}
		fmt.Println(answer)

		rel, err := executor.EvaluatePredicate(db, q)
		if err != nil {
			return err
		}
		if table && rel.Size() > 0 {
			fmt.Println(rel.Table())
		}
		if collector != nil {
			collector.Add(annotations.Event{Name: annotations.QueryComplete, Data: map[string]interface{}{
				"answered": rel.Size() > 0,
				"count":    rel.Size(),
			}})
		}
		fmt.Println()
	}

	return nil
}

// traceFunc adapts a planner.PassEvent stream into annotation events,
// printing one "SCC: ..." line the first time a component's rules are seen
// and one RuleEvaluated line per rule per pass.
func traceFunc(collector *annotations.Collector, rules []datalog.Rule) func(planner.PassEvent) {
	if collector == nil {
		return nil
	}
	seen := make(map[string]bool)
	g := planner.BuildGraph(rules)
	return func(ev planner.PassEvent) {
		key := fmt.Sprintf("%v", ev.RuleIndices)
		if !seen[key] {
			seen[key] = true
			names := make([]string, len(ev.RuleIndices))
			for i, idx := range ev.RuleIndices {
				names[i] = fmt.Sprintf("R%d", idx)
			}
			collector.Add(annotations.Event{Name: annotations.SCCBegin, Data: map[string]interface{}{
				"rules":     names,
				"recursive": g.IsRecursive(ev.RuleIndices),
			}})
		}
		collector.Add(annotations.Event{Name: annotations.RuleEvaluated, Data: map[string]interface{}{
			"rule":  rules[ev.RuleIndex].String(),
			"added": ev.Added,
		}})
	}
}

func joinCommas(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ","
		}
		out += s
	}
	return out
}
