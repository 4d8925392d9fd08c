package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"outcomepicker/internal/domain"
)

func sampleOutcomes() []domain.Outcome {
	return []domain.Outcome{
		{ID: "m1", Label: "MATH.1", Title: "Add fractions", Description: "Add fractions with like denominators"},
		{ID: "m2", Label: "MATH.2", Title: "Multiply decimals", Description: "Multiply decimals to hundredths"},
		{ID: "m3", Label: "MATH.3", Title: "Compare fractions", Description: "Compare two fractions using benchmarks"},
		{ID: "s1", Label: "SCI.1", Title: "Photosynthesis", Description: "Explain how plants make food"},
		{ID: "LO-123", Label: "ELA.1", Title: "Main idea", Description: "Determine the main idea of a text"},
	}
}

func numbered(n int) []domain.Outcome {
	out := make([]domain.Outcome, n)
	for i := range out {
		out[i] = domain.Outcome{
			ID:    fmt.Sprintf("o%02d", i),
			Label: fmt.Sprintf("L%02d", i),
			Title: fmt.Sprintf("Outcome %02d", i),
		}
	}
	return out
}

// runSourceContract checks the behaviour every Source must share
func runSourceContract(t *testing.T, src Source) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty query pages everything", func(t *testing.T) {
		page, err := src.Search(ctx, Query{PageSize: 2})
		require.NoError(t, err)
		require.Equal(t, 5, page.Total)
		require.Len(t, page.Entries, 2)

		last, err := src.Search(ctx, Query{Page: 2, PageSize: 2})
		require.NoError(t, err)
		require.Len(t, last.Entries, 1)
	})

	t.Run("query filters case-insensitively", func(t *testing.T) {
		page, err := src.Search(ctx, Query{Text: "FRACTIONS", PageSize: 10})
		require.NoError(t, err)
		require.Equal(t, 2, page.Total)
		require.ElementsMatch(t, []string{"m1", "m3"}, page.IDs())
	})

	t.Run("query matches inside ids", func(t *testing.T) {
		page, err := src.Search(ctx, Query{Text: "123", PageSize: 10})
		require.NoError(t, err)
		require.Equal(t, 1, page.Total)
		require.Equal(t, []string{"LO-123"}, page.IDs())
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		page, err := src.Search(ctx, Query{Text: "fractions", Page: 4, PageSize: 10})
		require.NoError(t, err)
		require.Equal(t, 2, page.Total)
		require.Empty(t, page.Entries)
	})

	t.Run("get keeps request order and skips unknown", func(t *testing.T) {
		got, err := src.Get(ctx, []string{"s1", "nope", "m1"})
		require.NoError(t, err)
		require.Equal(t, []string{"s1", "m1"}, domain.ResultPage{Entries: got}.IDs())
	})

	t.Run("lookup and missing", func(t *testing.T) {
		o, err := Lookup(ctx, src, "LO-123")
		require.NoError(t, err)
		require.Equal(t, "Main idea", o.Title)

		_, err = Lookup(ctx, src, "zzz")
		require.ErrorIs(t, err, ErrNotFound)

		missing, err := Missing(ctx, src, []string{"m1", "x", "y"})
		require.NoError(t, err)
		require.Equal(t, []string{"x", "y"}, missing)
	})
}
