package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/akhelifi/bibliosort/internal/classifier"
	"github.com/akhelifi/bibliosort/internal/filer"
	"github.com/akhelifi/bibliosort/internal/progress"
)

var (
	overrideLabel string
	interactive   bool
	batchDir      string
	includeGlobs  []string
)

const keepAutomatic = "(keep automatic suggestion)"

var classifyCmd = &cobra.Command{
	Use:   "classify [file...]",
	Short: "Classify documents and file them into the remote store",
	Long: `Classifies each document against the catalog, records the prediction and
the final label in the feedback ledger, and uploads the document into the
folder matching the final label.

A single file can be corrected with --label or interactively with -i.
Use --dir with --include patterns to classify a whole directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		paths := append([]string{}, args...)
		if batchDir != "" {
			matched, err := expandDir(batchDir, includeGlobs)
			if err != nil {
				return err
			}
			paths = append(paths, matched...)
		}
		if len(paths) == 0 {
			return fmt.Errorf("no documents given: pass file paths or --dir")
		}
		if len(paths) > 1 && (overrideLabel != "" || interactive) {
			return fmt.Errorf("--label and --interactive only apply to a single document")
		}

		ctx := context.Background()
		svc, _, cleanup, err := buildService(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		if len(paths) == 1 {
			return classifyOne(ctx, svc, paths[0])
		}
		return classifyBatch(ctx, svc, paths)
	},
}

func init() {
	classifyCmd.Flags().StringVar(&overrideLabel, "label", "", "catalog label overriding the automatic prediction")
	classifyCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick the final label interactively")
	classifyCmd.Flags().StringVar(&batchDir, "dir", "", "classify every matching document under this directory")
	classifyCmd.Flags().StringSliceVar(&includeGlobs, "include", []string{"**/*.pdf"}, "glob patterns matched within --dir")
	rootCmd.AddCommand(classifyCmd)
}

// expandDir resolves include patterns relative to dir.
func expandDir(dir string, patterns []string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(os.DirFS(dir), pattern)
		if err != nil {
			return nil, fmt.Errorf("bad include pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			paths = append(paths, filepath.Join(dir, m))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no documents under %s match %v", dir, patterns)
	}
	return paths, nil
}

func classifyOne(ctx context.Context, svc *filer.Service, path string) error {
	override := overrideLabel

	if interactive {
		ranking, err := svc.Preview(ctx, path)
		if err != nil {
			return err
		}
		printRanking(ranking.TopK)

		items := append([]string{keepAutomatic}, svc.Catalog().Labels()...)
		prompt := promptui.Select{
			Label: fmt.Sprintf("Final label (automatic: %s)", ranking.AutomaticLabel),
			Items: items,
			Size:  len(items),
		}
		_, choice, err := prompt.Run()
		if err != nil {
			return fmt.Errorf("label selection: %w", err)
		}
		if choice != keepAutomatic {
			override = choice
		}
	}

	result, err := svc.Submit(ctx, path, override)
	if err != nil {
		if result != nil {
			// Classified and recorded; only the filing failed.
			printResult(result)
			return fmt.Errorf("filing failed (the ledger row was kept): %w", err)
		}
		return err
	}

	printResult(result)
	return nil
}

func classifyBatch(ctx context.Context, svc *filer.Service, paths []string) error {
	reporter := progress.NewReporter()
	reporter.Start(len(paths))

	var failed int
	for i, path := range paths {
		reporter.Update(i+1, filepath.Base(path))
		result, err := svc.Submit(ctx, path, "")
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			continue
		}
		if verbose {
			fmt.Printf("%s -> %s\n", filepath.Base(path), result.FinalLabel)
		}
	}
	reporter.Finish()

	fmt.Printf("Classified %d document(s), %d failed.\n", len(paths)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d document(s) could not be filed", failed)
	}
	return nil
}

func printRanking(topK []classifier.Score) {
	fmt.Println("Top suggestions:")
	for i, sc := range topK {
		fmt.Printf("  %d. %-30s %.4f\n", i+1, sc.Label, sc.Value)
	}
}

func printResult(result *filer.Result) {
	printRanking(result.TopK)
	fmt.Printf("Final label: %s\n", result.FinalLabel)
	if result.Status == filer.StatusFiled {
		fmt.Printf("Filed into folder %q.\n", result.FinalLabel)
	}
}
