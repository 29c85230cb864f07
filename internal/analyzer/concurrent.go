package analyzer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sqlcore/sqlcore/internal/catalog"
)

// AnalyzeAll runs Analyze over a batch of statements concurrently against
// a single immutable catalog.Capability. Safe because both Analyze and
// catalog.Snapshot are read-only and side-effect free; a *catalog.Snapshot
// shared across goroutines never mutates.
func AnalyzeAll(ctx context.Context, statements []string, cat catalog.Capability) ([]QueryAnalysis, error) {
	results := make([]QueryAnalysis, len(statements))
	group, _ := errgroup.WithContext(ctx)
	for i, sql := range statements {
		i, sql := i, sql
		group.Go(func() error {
			analysis, err := Analyze(sql, cat)
			if err != nil {
				return err
			}
			results[i] = analysis
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
