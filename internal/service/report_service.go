package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tamu-beverages/sales-api/internal/auth"
	"github.com/tamu-beverages/sales-api/internal/domain"
	"github.com/tamu-beverages/sales-api/internal/mapper"
	"github.com/tamu-beverages/sales-api/internal/repository"
	"go.uber.org/zap"
)

// ReportService generates CSV sales reports over order data. Scoping follows
// order listing: salespersons only ever see their own orders.
type ReportService struct {
	orderRepo *repository.OrderRepository
	logger    *zap.Logger
}

func NewReportService(orderRepo *repository.OrderRepository, logger *zap.Logger) *ReportService {
	return &ReportService{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// Daily writes per-order rows for a single day
func (s *ReportService) Daily(ctx context.Context, w io.Writer, date time.Time) (string, error) {
	from := date.Truncate(24 * time.Hour)
	to := from.Add(24*time.Hour - time.Nanosecond)

	if err := s.writeOrderRows(ctx, w, from, to); err != nil {
		return "", err
	}
	return fmt.Sprintf("sales_daily_%s.csv", from.Format("2006-01-02")), nil
}

// Range writes per-order rows for an inclusive date range
func (s *ReportService) Range(ctx context.Context, w io.Writer, start, end time.Time) (string, error) {
	if end.Before(start) {
		return "", fmt.Errorf("%w: end_date before start_date", ErrInvalidInput)
	}
	to := end.Add(24*time.Hour - time.Nanosecond)

	if err := s.writeOrderRows(ctx, w, start, to); err != nil {
		return "", err
	}
	return fmt.Sprintf("sales_%s_to_%s.csv", start.Format("2006-01-02"), end.Format("2006-01-02")), nil
}

// Monthly writes one aggregate row per day of the given month
func (s *ReportService) Monthly(ctx context.Context, w io.Writer, year, month int) (string, error) {
	if month < 1 || month > 12 {
		return "", fmt.Errorf("%w: month must be 1-12", ErrInvalidInput)
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	orders, err := s.loadOrders(ctx, from, to)
	if err != nil {
		return "", err
	}

	type bucket struct {
		total  decimal.Decimal
		liters decimal.Decimal
		count  int
	}
	days := make(map[string]*bucket)
	for i := range orders {
		key := orders[i].OrderDate.Format("2006-01-02")
		b, ok := days[key]
		if !ok {
			b = &bucket{total: decimal.Zero, liters: decimal.Zero}
			days[key] = b
		}
		b.total = b.total.Add(orders[i].TotalAmount)
		b.liters = b.liters.Add(orderLiters(&orders[i]))
		b.count++
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "order_count", "total_liters", "total_sales"}); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		b, ok := days[key]
		if !ok {
			continue
		}
		row := []string{key, fmt.Sprintf("%d", b.count), b.liters.StringFixed(2), b.total.StringFixed(2)}
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("failed to write report: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return fmt.Sprintf("sales_monthly_%04d-%02d.csv", year, month), nil
}

// Yearly writes one aggregate row per salesperson for the given year.
// Admin only.
func (s *ReportService) Yearly(ctx context.Context, w io.Writer, year int) (string, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return "", ErrUnauthorized
	}
	if !userCtx.IsAdmin() {
		return "", ErrPermissionDenied
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0).Add(-time.Nanosecond)

	orders, err := s.loadOrders(ctx, from, to)
	if err != nil {
		return "", err
	}

	type bucket struct {
		name   string
		total  decimal.Decimal
		liters decimal.Decimal
		count  int
	}
	sellers := make(map[string]*bucket)
	for i := range orders {
		key := orders[i].SalespersonID.String()
		b, ok := sellers[key]
		if !ok {
			b = &bucket{total: decimal.Zero, liters: decimal.Zero}
			if sp := orders[i].Salesperson; sp != nil && sp.User != nil {
				b.name = sp.User.Username
			}
			sellers[key] = b
		}
		b.total = b.total.Add(orders[i].TotalAmount)
		b.liters = b.liters.Add(orderLiters(&orders[i]))
		b.count++
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"salesperson_id", "salesperson", "order_count", "total_liters", "total_sales"}); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	ids := make([]string, 0, len(sellers))
	for id := range sellers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		b := sellers[id]
		row := []string{id, b.name, fmt.Sprintf("%d", b.count), b.liters.StringFixed(2), b.total.StringFixed(2)}
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("failed to write report: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return fmt.Sprintf("sales_yearly_%04d.csv", year), nil
}

func (s *ReportService) writeOrderRows(ctx context.Context, w io.Writer, from, to time.Time) error {
	orders, err := s.loadOrders(ctx, from, to)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"order_id", "order_date", "client", "salesperson", "payment_status", "total_liters", "total_amount"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	for i := range orders {
		o := &orders[i]
		clientName := ""
		if o.Client != nil {
			clientName = o.Client.Name
		}
		sellerName := ""
		if o.Salesperson != nil && o.Salesperson.User != nil {
			sellerName = o.Salesperson.User.Username
		}
		row := []string{
			o.ID.String(),
			o.OrderDate.Format("2006-01-02"),
			clientName,
			sellerName,
			string(o.PaymentStatus),
			orderLiters(o).StringFixed(2),
			o.TotalAmount.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// loadOrders fetches the caller's visible orders within [from, to]
func (s *ReportService) loadOrders(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	filters := repository.OrderFilters{
		DateFrom:      &from,
		DateTo:        &to,
		SalespersonID: userCtx.SalespersonFilter(),
	}

	orders, err := s.orderRepo.List(ctx, filters)
	if err != nil {
		return nil, mapper.FormatError("orders", "list", err)
	}
	return orders, nil
}

func orderLiters(order *domain.Order) decimal.Decimal {
	liters := decimal.Zero
	for _, item := range order.Items {
		liters = liters.Add(item.QuantityLiters)
	}
	return liters
}
