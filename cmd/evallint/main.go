// Command evallint validates an evaluation configuration file and reports
// every violation found. It exits non-zero when the configuration would be
// rejected by the scoring engine.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/spac3man-G/vendoreval/internal/application"
	"github.com/spac3man-G/vendoreval/internal/domain"
)

func main() {
	var (
		path  = flag.String("config", "", "Path to the evaluation YAML file")
		quiet = flag.Bool("quiet", false, "Suppress output; exit code only")
	)
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: evallint -config <evaluation.yaml>")
		os.Exit(2)
	}

	loader := application.NewEvaluationLoader()
	eval, err := loader.LoadFromFile(*path)
	if err != nil {
		var configErr *domain.ConfigurationError
		if errors.As(err, &configErr) {
			if !*quiet {
				fmt.Printf("%s: invalid configuration\n", *path)
				for _, v := range configErr.Violations {
					fmt.Printf("  %s: %s\n", v.Field, v.Message)
				}
			}
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "evallint: %v\n", err)
		os.Exit(2)
	}

	if !*quiet {
		fmt.Printf("%s: valid (%d categories, %d requirements, %d vendors, method %s)\n",
			*path, len(eval.Categories), len(eval.Requirements), len(eval.Vendors), eval.Method)
	}
}
