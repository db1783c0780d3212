package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/donaldgifford/cart-price-tracker/internal/api/handlers"
	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printProductTable(products []handlers.ProductSummary) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("PRODUCT\tTITLE\tLAST PRICE\tPOINTS\n")
	for i := range products {
		tw.writef("%s\t%s\t%.2f %s\t%d\n",
			products[i].ProductID,
			truncate(products[i].Title, 40),
			products[i].LastPrice,
			products[i].Currency,
			products[i].PointCount,
		)
	}
	return tw.finish()
}

func printProductDetail(rec *domain.ProductRecord) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Product:\t%s\n", rec.ProductID)
	tw.writef("Title:\t%s\n", rec.Title)
	tw.writef("Points:\t%d\n", len(rec.PriceHistory))
	if drop, ok := rec.DropPercent(); ok {
		tw.writef("Drop:\t%.1f%%\n", drop)
	}
	tw.writef("\nOBSERVED\tPRICE\n")
	for _, p := range rec.PriceHistory {
		tw.writef("%s\t%.2f %s\n",
			p.Time().Format("2006-01-02 15:04:05"),
			p.Price,
			p.Currency,
		)
	}
	return tw.finish()
}

func printStats(stats *domain.Stats) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Products:\t%d\n", stats.TotalProducts)
	tw.writef("Data points:\t%d\n", stats.TotalDataPoints)
	tw.writef("Average drop:\t%.1f%%\n", stats.AverageDropPercent)
	if stats.BiggestDrop != nil {
		tw.writef("Biggest drop:\t%.1f%% (%s)\n",
			stats.BiggestDrop.Percent,
			stats.BiggestDrop.ProductTitle,
		)
	}
	return tw.finish()
}

func printSettings(s *domain.Settings) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Notifications:\t%v\n", s.NotificationsEnabled)
	tw.writef("Check interval:\t%d minutes\n", s.CheckIntervalMinutes)
	tw.writef("Drop threshold:\t%.1f%%\n", s.PriceDropThreshold*100)
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
