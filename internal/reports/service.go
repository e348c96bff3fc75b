package reports

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"inventory-backend/internal/models"
)

// OrderSource is the read-only slice of the order store the aggregator
// scans. The aggregator always reads the authoritative store; any caching
// sits above it in the presentation layer.
type OrderSource interface {
	FulfilledInWindow(ctx context.Context, ownerID string, start, end time.Time) ([]models.Order, error)
	AllOrders(ctx context.Context, ownerID string) ([]models.Order, error)
}

type ProductCounter interface {
	CountLowStock(ctx context.Context, ownerID string) (int64, error)
}

type Service struct {
	orders   OrderSource
	products ProductCounter
}

func NewService(orders OrderSource, products ProductCounter) *Service {
	return &Service{orders: orders, products: products}
}

// money renders integer cents as an exact 2-decimal currency string.
func money(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// avgMoney divides cents by n and rounds to 2 decimal places for display.
// Division is the only place rounding happens; sums stay exact.
func avgMoney(cents, n int64) string {
	if n == 0 {
		return "0.00"
	}
	return decimal.New(cents, -2).Div(decimal.NewFromInt(n)).Round(2).StringFixed(2)
}

// --- Sales / product report ---

type ProductSales struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	QuantitySold int64  `json:"quantity_sold"`
	RevenueCents int64  `json:"revenue_cents"`
	Revenue      string `json:"revenue"`
	AveragePrice string `json:"average_price"`
}

type SalesSummary struct {
	TotalProducts     int    `json:"total_products"`
	TotalRevenueCents int64  `json:"total_revenue_cents"`
	TotalRevenue      string `json:"total_revenue"`
	TotalItemsSold    int64  `json:"total_items_sold"`
}

type SalesReport struct {
	DateRange Window         `json:"date_range"`
	Summary   SalesSummary   `json:"summary"`
	Data      []ProductSales `json:"data"`
}

// SalesReport groups the line items of fulfilled orders in the window by
// product id. Revenue is recomputed from the frozen snapshots, so it
// agrees with what placement wrote regardless of later price edits.
func (s *Service) SalesReport(ctx context.Context, ownerID string, win Window, sortBy string, limit int) (*SalesReport, error) {
	if limit <= 0 {
		limit = 10
	}

	fulfilled, err := s.orders.FulfilledInWindow(ctx, ownerID, win.Start, win.End)
	if err != nil {
		return nil, err
	}

	groups := map[string]*ProductSales{}
	var keys []string
	for _, o := range fulfilled {
		for _, it := range o.Items {
			g, ok := groups[it.ProductID]
			if !ok {
				g = &ProductSales{ProductID: it.ProductID}
				groups[it.ProductID] = g
				keys = append(keys, it.ProductID)
			}
			g.Name = it.Name
			g.QuantitySold += it.Quantity
			g.RevenueCents += it.SubtotalCents()
		}
	}

	report := &SalesReport{DateRange: win, Data: make([]ProductSales, 0, len(keys))}
	for _, k := range keys {
		g := groups[k]
		g.Revenue = money(g.RevenueCents)
		g.AveragePrice = avgMoney(g.RevenueCents, g.QuantitySold)
		report.Summary.TotalRevenueCents += g.RevenueCents
		report.Summary.TotalItemsSold += g.QuantitySold
		report.Data = append(report.Data, *g)
	}
	report.Summary.TotalProducts = len(report.Data)
	report.Summary.TotalRevenue = money(report.Summary.TotalRevenueCents)

	sortProductSales(report.Data, sortBy)
	if len(report.Data) > limit {
		report.Data = report.Data[:limit]
	}
	return report, nil
}

func sortProductSales(rows []ProductSales, sortBy string) {
	less := func(i, j int) bool { // default: revenue desc
		if rows[i].RevenueCents != rows[j].RevenueCents {
			return rows[i].RevenueCents > rows[j].RevenueCents
		}
		return rows[i].Name < rows[j].Name
	}
	switch sortBy {
	case "quantity":
		less = func(i, j int) bool {
			if rows[i].QuantitySold != rows[j].QuantitySold {
				return rows[i].QuantitySold > rows[j].QuantitySold
			}
			return rows[i].Name < rows[j].Name
		}
	case "name":
		less = func(i, j int) bool { return rows[i].Name < rows[j].Name }
	}
	sort.SliceStable(rows, less)
}

// --- Customer report ---

type CustomerSales struct {
	CustomerName      string    `json:"customer_name"`
	CustomerEmail     string    `json:"customer_email"`
	TotalSpentCents   int64     `json:"total_spent_cents"`
	TotalSpent        string    `json:"total_spent"`
	TotalOrders       int64     `json:"total_orders"`
	AverageOrderValue string    `json:"average_order_value"`
	FirstOrderDate    time.Time `json:"first_order_date"`
	LastOrderDate     time.Time `json:"last_order_date"`
}

type CustomerSummary struct {
	TotalCustomers    int    `json:"total_customers"`
	TotalRevenueCents int64  `json:"total_revenue_cents"`
	TotalRevenue      string `json:"total_revenue"`
}

type CustomerReport struct {
	DateRange Window          `json:"date_range"`
	Summary   CustomerSummary `json:"summary"`
	Data      []CustomerSales `json:"data"`
}

type customerKey struct{ name, email string }

// CustomerReport groups fulfilled orders in the window by the
// (name, email) pair and computes lifetime-style totals per customer.
func (s *Service) CustomerReport(ctx context.Context, ownerID string, win Window, sortBy string, limit int) (*CustomerReport, error) {
	if limit <= 0 {
		limit = 20
	}

	fulfilled, err := s.orders.FulfilledInWindow(ctx, ownerID, win.Start, win.End)
	if err != nil {
		return nil, err
	}

	groups := map[customerKey]*CustomerSales{}
	var keys []customerKey
	for _, o := range fulfilled {
		k := customerKey{o.CustomerName, o.CustomerEmail}
		g, ok := groups[k]
		if !ok {
			g = &CustomerSales{
				CustomerName:   o.CustomerName,
				CustomerEmail:  o.CustomerEmail,
				FirstOrderDate: o.CreatedAt,
				LastOrderDate:  o.CreatedAt,
			}
			groups[k] = g
			keys = append(keys, k)
		}
		g.TotalSpentCents += o.TotalCents
		g.TotalOrders++
		if o.CreatedAt.Before(g.FirstOrderDate) {
			g.FirstOrderDate = o.CreatedAt
		}
		if o.CreatedAt.After(g.LastOrderDate) {
			g.LastOrderDate = o.CreatedAt
		}
	}

	report := &CustomerReport{DateRange: win, Data: make([]CustomerSales, 0, len(keys))}
	for _, k := range keys {
		g := groups[k]
		g.TotalSpent = money(g.TotalSpentCents)
		g.AverageOrderValue = avgMoney(g.TotalSpentCents, g.TotalOrders)
		report.Summary.TotalRevenueCents += g.TotalSpentCents
		report.Data = append(report.Data, *g)
	}
	report.Summary.TotalCustomers = len(report.Data)
	report.Summary.TotalRevenue = money(report.Summary.TotalRevenueCents)

	sortCustomerSales(report.Data, sortBy)
	if len(report.Data) > limit {
		report.Data = report.Data[:limit]
	}
	return report, nil
}

func sortCustomerSales(rows []CustomerSales, sortBy string) {
	less := func(i, j int) bool { // default: revenue desc
		if rows[i].TotalSpentCents != rows[j].TotalSpentCents {
			return rows[i].TotalSpentCents > rows[j].TotalSpentCents
		}
		return rows[i].CustomerName < rows[j].CustomerName
	}
	switch sortBy {
	case "orders":
		less = func(i, j int) bool {
			if rows[i].TotalOrders != rows[j].TotalOrders {
				return rows[i].TotalOrders > rows[j].TotalOrders
			}
			return rows[i].CustomerName < rows[j].CustomerName
		}
	case "recency":
		less = func(i, j int) bool { return rows[i].LastOrderDate.After(rows[j].LastOrderDate) }
	case "name":
		less = func(i, j int) bool { return rows[i].CustomerName < rows[j].CustomerName }
	}
	sort.SliceStable(rows, less)
}

// --- Dashboard summary ---

type Dashboard struct {
	TotalRevenueCents int64          `json:"total_revenue_cents"`
	TotalRevenue      string         `json:"total_revenue"`
	TotalOrders       int64          `json:"total_orders"`
	TodayRevenueCents int64          `json:"today_revenue_cents"`
	TodayRevenue      string         `json:"today_revenue"`
	TodayOrders       int64          `json:"today_orders"`
	PendingOrders     int64          `json:"pending_orders"`
	TotalCustomers    int            `json:"total_customers"`
	LowStockProducts  int64          `json:"low_stock_products"`
	RecentOrders      []models.Order `json:"recent_orders"`
}

// DashboardSummary derives the owner's snapshot from one scan of their
// orders plus a low-stock count. Revenue figures count fulfilled orders
// only; the distinct-customer count spans every status; the pending count
// is its own filter. The denominators intentionally differ per field.
func (s *Service) DashboardSummary(ctx context.Context, ownerID string, now time.Time) (*Dashboard, error) {
	all, err := s.orders.AllOrders(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	today := dayStart(now)
	customers := map[customerKey]struct{}{}
	d := &Dashboard{RecentOrders: []models.Order{}}

	for _, o := range all {
		customers[customerKey{o.CustomerName, o.CustomerEmail}] = struct{}{}
		if o.Status == models.StatusPending {
			d.PendingOrders++
		}
		if o.Status.Fulfilled() {
			d.TotalRevenueCents += o.TotalCents
			d.TotalOrders++
			if !o.CreatedAt.UTC().Before(today) {
				d.TodayRevenueCents += o.TotalCents
				d.TodayOrders++
			}
		}
	}

	// AllOrders is newest-first; the first five are the recent ones.
	if len(all) > 5 {
		d.RecentOrders = all[:5]
	} else {
		d.RecentOrders = all
	}

	d.TotalCustomers = len(customers)
	d.TotalRevenue = money(d.TotalRevenueCents)
	d.TodayRevenue = money(d.TodayRevenueCents)

	lowStock, err := s.products.CountLowStock(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	d.LowStockProducts = lowStock
	return d, nil
}
