package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
)

// exportColumns is the header row of the admin CSV export.
var exportColumns = []string{
	"id", "date", "customer", "phone", "address", "governorate",
	"postalCode", "status", "subtotal", "deliveryFee", "total", "items",
}

// ExportCSV renders the filtered order list as CSV with one row per order.
// Items are flattened into a single "Name x2; Other x1" column; monetary
// values use plain 3-decimal strings, leaving currency formatting to the
// consumer.
func (s *orderService) ExportCSV(ctx context.Context, status, query string) ([]byte, error) {
	orders, err := s.List(ctx, status, query)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportColumns); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, o := range orders {
		items := make([]string, len(o.Items))
		for i, item := range o.Items {
			items[i] = fmt.Sprintf("%s x%d", item.Name, item.Qty)
		}
		row := []string{
			o.ID,
			o.Date.Format("2006-01-02 15:04:05"),
			o.Customer.FullName,
			o.Customer.Phone,
			o.Customer.Address + ", " + o.Customer.City,
			o.Customer.Governorate,
			o.Customer.PostalCode,
			string(o.Status),
			o.Subtotal.StringFixed(3),
			o.DeliveryFee.StringFixed(3),
			o.Total.StringFixed(3),
			strings.Join(items, "; "),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	s.logger.Debug().Int("count", len(orders)).Msg("orders exported")
	return buf.Bytes(), nil
}
