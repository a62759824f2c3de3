package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vain0x/hsp3-ginger-sub000/internal/parser"
	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
)

var profileParseCmd = &cobra.Command{
	Use:   "profile-parse",
	Short: "time-parse every .hsp/.as file under the HSP3 install's common and sample dirs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := requireHSP3Root()
		if err != nil {
			return err
		}

		var files []string
		for _, sub := range []string{"common", "sample"} {
			if err := collectScripts(filepath.Join(root, sub), &files); err != nil {
				return fmt.Errorf("walk %s: %w", sub, err)
			}
		}
		if len(files) == 0 {
			fmt.Println("no .hsp/.as files found")
			return nil
		}

		var total time.Duration
		var failures int
		for i, path := range files {
			text, err := readInput(path)
			if err != nil {
				failures++
				fmt.Fprintf(os.Stderr, "skip %s: %v\n", path, err)
				continue
			}

			start := time.Now()
			parser.Parse(span.DocID(i+1), text)
			total += time.Since(start)
		}

		parsed := len(files) - failures
		fmt.Printf("parsed %d files (%d skipped)\n", parsed, failures)
		if parsed > 0 {
			fmt.Printf("total: %s, average: %s\n", total, total/time.Duration(parsed))
		}
		return nil
	},
}

// collectScripts appends every .hsp/.as file under dir, recursively, to
// files. A missing dir (not every HSP3 install ships both common and
// sample) is silently skipped rather than treated as an error.
func collectScripts(dir string, files *[]string) error {
	if _, err := os.Stat(dir); err != nil {
		return nil
	}
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".hsp" || ext == ".as" {
			*files = append(*files, path)
		}
		return nil
	})
}
