// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wdamron/matchcheck"
	"github.com/wdamron/matchcheck/frontend"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] match_file(s)",
	Short: "Check the matches of the given files.",
	Long: `Check every match of the given YAML files for unreachable clauses and missing cases.
	Verdicts which hold only if a guard always succeeds are reported as guard dependent.`,
	Run: func(cmd *cobra.Command, args []string) {
		var cfg checkConfig
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(2)
		}
		cfg.format = GetString(cmd, "format")
		cfg.color = GetString(cmd, "color")
		cfg.witnesses = !GetFlag(cmd, "no-witness")
		cfg.verify = GetFlag(cmd, "verify")
		cfg.strict = GetFlag(cmd, "strict")
		cfg.jobs = GetInt(cmd, "jobs")
		cfg.timeout = GetDuration(cmd, "timeout")

		out, err := newRenderer(os.Stdout, cfg)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		checker := matchcheck.NewChecker(
			matchcheck.WithParallelism(cfg.jobs),
			matchcheck.WithWitnesses(cfg.witnesses),
			matchcheck.WithVerify(cfg.verify),
		)
		clean := true
		for _, file := range args {
			matches, err := frontend.LoadFile(file)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			for _, m := range matches {
				r, err := checkMatch(cmd.Context(), checker, m, cfg.timeout)
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s: %s: %v\n", file, m.Label(), err)
					os.Exit(2)
				}
				clean = clean && r.Clean()
				out.add(file, r)
			}
		}
		if err := out.flush(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		if cfg.strict && !clean {
			os.Exit(1)
		}
	},
}

type checkConfig struct {
	// Output format: text or yaml.
	format string
	// Colored text output: auto, always or never.
	color string
	// Synthesize witnesses for findings.
	witnesses bool
	// Re-check each witness against the clauses it was synthesized for.
	verify bool
	// Exit with status 1 if any finding is reported.
	strict bool
	// Number of clauses checked concurrently; zero or less means one per CPU.
	jobs int
	// Time limit for each match, or zero for none.
	timeout time.Duration
}

func checkMatch(ctx context.Context, checker *matchcheck.Checker, m *matchcheck.Match, timeout time.Duration) (*matchcheck.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return checker.Check(ctx, m)
}

func init() {
	checkCmd.Flags().String("format", "text", "output format (text or yaml)")
	checkCmd.Flags().String("color", "auto", "color text output (auto, always or never)")
	checkCmd.Flags().Bool("no-witness", false, "do not synthesize witnesses")
	checkCmd.Flags().Bool("verify", false, "re-check every witness against its clauses")
	checkCmd.Flags().Bool("strict", false, "exit with status 1 if any clause is unreachable or any match is not exhaustive")
	checkCmd.Flags().IntP("jobs", "j", 1, "number of clauses checked concurrently (0 for one per CPU)")
	checkCmd.Flags().Duration("timeout", 0, "time limit for checking each match (0 for none)")
	rootCmd.AddCommand(checkCmd)
}
