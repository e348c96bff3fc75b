package reports

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-backend/internal/models"
	"inventory-backend/internal/orders"
)

type fakeOrderSource struct {
	orders []models.Order
}

func (f *fakeOrderSource) FulfilledInWindow(_ context.Context, ownerID string, start, end time.Time) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.CreatedBy != ownerID || !o.Status.Fulfilled() {
			continue
		}
		if o.CreatedAt.Before(start) || o.CreatedAt.After(end) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrderSource) AllOrders(_ context.Context, ownerID string) ([]models.Order, error) {
	// Newest first, like the repository.
	var out []models.Order
	for _, o := range f.orders {
		if o.CreatedBy == ownerID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeProductCounter struct{ lowStock int64 }

func (f *fakeProductCounter) CountLowStock(_ context.Context, _ string) (int64, error) {
	return f.lowStock, nil
}

const owner = "user-1"

func day(d int, hour int) time.Time {
	return time.Date(2026, time.March, d, hour, 0, 0, 0, time.UTC)
}

func order(status models.Status, createdAt time.Time, customer, email string, items ...models.OrderItem) models.Order {
	o := models.Order{
		Status:        status,
		CreatedAt:     createdAt,
		CustomerName:  customer,
		CustomerEmail: email,
		Items:         items,
		CreatedBy:     owner,
	}
	for _, it := range items {
		o.TotalCents += it.SubtotalCents()
	}
	return o
}

func item(productID, name string, qty, priceCents int64) models.OrderItem {
	return models.OrderItem{ProductID: productID, Name: name, Quantity: qty, PriceCents: priceCents}
}

func testWindow() Window {
	return Window{Start: day(1, 0), End: day(28, 23)}
}

// --- window parsing ---

func TestParseWindowDefaultsToLast30Days(t *testing.T) {
	now := day(15, 12)
	win, err := ParseWindow("", "", now)
	require.NoError(t, err)
	assert.Equal(t, now, win.End)
	assert.Equal(t, now.AddDate(0, 0, -30), win.Start)
}

func TestParseWindowWidensCalendarDates(t *testing.T) {
	win, err := ParseWindow("2026-03-01", "2026-03-05", time.Now())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), win.Start)
	assert.Equal(t, time.Date(2026, 3, 5, 23, 59, 59, 999000000, time.UTC), win.End)
}

func TestParseWindowKeepsTimestampsAsIs(t *testing.T) {
	win, err := ParseWindow("2026-03-01T08:30:00Z", "2026-03-01T17:00:00Z", time.Now())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC), win.Start)
	assert.Equal(t, time.Date(2026, 3, 1, 17, 0, 0, 0, time.UTC), win.End)
}

func TestParseWindowRejectsGarbageAndInvertedRanges(t *testing.T) {
	var validation *orders.ValidationError

	_, err := ParseWindow("yesterday", "", time.Now())
	require.ErrorAs(t, err, &validation)

	_, err = ParseWindow("2026-03-10", "2026-03-01", time.Now())
	require.ErrorAs(t, err, &validation)
}

// --- sales report ---

func TestSalesReportGroupsByProduct(t *testing.T) {
	src := &fakeOrderSource{orders: []models.Order{
		order(models.StatusDelivered, day(2, 10), "Ada", "ada@example.com",
			item("p1", "Widget", 2, 1000), item("p2", "Gadget", 1, 500)),
		order(models.StatusDelivered, day(3, 10), "Bob", "bob@example.com",
			item("p1", "Widget", 3, 1000)),
		// pending and cancelled orders contribute nothing
		order(models.StatusPending, day(4, 10), "Cam", "cam@example.com",
			item("p1", "Widget", 50, 1000)),
		order(models.StatusCancelled, day(4, 11), "Cam", "cam@example.com",
			item("p2", "Gadget", 50, 500)),
		// outside the window
		order(models.StatusDelivered, day(29, 10), "Dee", "dee@example.com",
			item("p1", "Widget", 7, 1000)),
	}}
	svc := NewService(src, &fakeProductCounter{})

	report, err := svc.SalesReport(context.Background(), owner, testWindow(), "revenue", 10)
	require.NoError(t, err)

	require.Len(t, report.Data, 2)
	widget := report.Data[0] // revenue desc puts Widget first
	assert.Equal(t, "p1", widget.ProductID)
	assert.Equal(t, int64(5), widget.QuantitySold)
	assert.Equal(t, int64(5000), widget.RevenueCents)
	assert.Equal(t, "50.00", widget.Revenue)
	assert.Equal(t, "10.00", widget.AveragePrice)

	gadget := report.Data[1]
	assert.Equal(t, int64(1), gadget.QuantitySold)
	assert.Equal(t, int64(500), gadget.RevenueCents)

	assert.Equal(t, 2, report.Summary.TotalProducts)
	assert.Equal(t, int64(5500), report.Summary.TotalRevenueCents)
	assert.Equal(t, int64(6), report.Summary.TotalItemsSold)
	assert.Equal(t, "55.00", report.Summary.TotalRevenue)
}

// Summing the report's groups must reproduce the raw line-item totals of
// the fulfilled orders in the window.
func TestSalesReportAgreesWithLineItems(t *testing.T) {
	src := &fakeOrderSource{orders: []models.Order{
		order(models.StatusDelivered, day(2, 9), "Ada", "a@x.com",
			item("p1", "Widget", 2, 1099), item("p2", "Gadget", 4, 333)),
		order(models.StatusCompleted, day(5, 9), "Bob", "b@x.com",
			item("p2", "Gadget", 1, 333), item("p3", "Sprocket", 6, 75)),
		order(models.StatusShipped, day(6, 9), "Cam", "c@x.com",
			item("p1", "Widget", 9, 1099)),
	}}
	svc := NewService(src, &fakeProductCounter{})

	report, err := svc.SalesReport(context.Background(), owner, testWindow(), "revenue", 100)
	require.NoError(t, err)

	var wantRevenue, wantQty int64
	fulfilled, _ := src.FulfilledInWindow(context.Background(), owner, testWindow().Start, testWindow().End)
	for _, o := range fulfilled {
		for _, it := range o.Items {
			wantRevenue += it.SubtotalCents()
			wantQty += it.Quantity
		}
	}

	var gotRevenue, gotQty int64
	for _, g := range report.Data {
		gotRevenue += g.RevenueCents
		gotQty += g.QuantitySold
	}
	assert.Equal(t, wantRevenue, gotRevenue)
	assert.Equal(t, wantQty, gotQty)
	assert.Equal(t, wantRevenue, report.Summary.TotalRevenueCents)
	assert.Equal(t, wantQty, report.Summary.TotalItemsSold)
}

func TestSalesReportSortAndLimit(t *testing.T) {
	src := &fakeOrderSource{orders: []models.Order{
		order(models.StatusDelivered, day(2, 9), "Ada", "a@x.com",
			item("p1", "Zebra", 1, 9000),
			item("p2", "Apple", 10, 100),
			item("p3", "Mango", 5, 400)),
	}}
	svc := NewService(src, &fakeProductCounter{})

	byQuantity, err := svc.SalesReport(context.Background(), owner, testWindow(), "quantity", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple", "Mango", "Zebra"}, names(byQuantity.Data))

	byName, err := svc.SalesReport(context.Background(), owner, testWindow(), "name", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple", "Mango", "Zebra"}, names(byName.Data))

	byRevenue, err := svc.SalesReport(context.Background(), owner, testWindow(), "revenue", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zebra", "Mango"}, names(byRevenue.Data))
	// Limit trims rows, not the summary.
	assert.Equal(t, 3, byRevenue.Summary.TotalProducts)
}

func names(rows []ProductSales) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}

func TestSalesReportEmptyWindowIsAValidReport(t *testing.T) {
	svc := NewService(&fakeOrderSource{}, &fakeProductCounter{})

	report, err := svc.SalesReport(context.Background(), owner, testWindow(), "revenue", 10)
	require.NoError(t, err)
	assert.Empty(t, report.Data)
	assert.Equal(t, 0, report.Summary.TotalProducts)
	assert.Equal(t, "0.00", report.Summary.TotalRevenue)
}

// --- customer report ---

func TestCustomerReportGroupsByNameEmailPair(t *testing.T) {
	src := &fakeOrderSource{orders: []models.Order{
		order(models.StatusDelivered, day(2, 9), "Ada", "ada@x.com", item("p1", "Widget", 1, 2500)),
		order(models.StatusDelivered, day(9, 9), "Ada", "ada@x.com", item("p1", "Widget", 1, 1000)),
		// Same name, different email: a different customer.
		order(models.StatusDelivered, day(4, 9), "Ada", "ada@other.com", item("p1", "Widget", 1, 700)),
		order(models.StatusDelivered, day(5, 9), "Bob", "bob@x.com", item("p1", "Widget", 2, 1000)),
	}}
	svc := NewService(src, &fakeProductCounter{})

	report, err := svc.CustomerReport(context.Background(), owner, testWindow(), "revenue", 20)
	require.NoError(t, err)
	require.Len(t, report.Data, 3)

	top := report.Data[0]
	assert.Equal(t, "ada@x.com", top.CustomerEmail)
	assert.Equal(t, int64(3500), top.TotalSpentCents)
	assert.Equal(t, int64(2), top.TotalOrders)
	assert.Equal(t, "17.50", top.AverageOrderValue)
	assert.Equal(t, day(2, 9), top.FirstOrderDate)
	assert.Equal(t, day(9, 9), top.LastOrderDate)

	assert.Equal(t, 3, report.Summary.TotalCustomers)
	assert.Equal(t, int64(3500+700+2000), report.Summary.TotalRevenueCents)
}

func TestCustomerReportAverageRoundsForDisplayOnly(t *testing.T) {
	// 3500 + 1099 = 4599 cents over 3 orders = 15.33 exactly at 2dp.
	src := &fakeOrderSource{orders: []models.Order{
		order(models.StatusDelivered, day(2, 9), "Ada", "ada@x.com", item("p1", "W", 1, 3500)),
		order(models.StatusDelivered, day(3, 9), "Ada", "ada@x.com", item("p1", "W", 1, 599)),
		order(models.StatusDelivered, day(4, 9), "Ada", "ada@x.com", item("p1", "W", 1, 500)),
	}}
	svc := NewService(src, &fakeProductCounter{})

	report, err := svc.CustomerReport(context.Background(), owner, testWindow(), "revenue", 20)
	require.NoError(t, err)
	require.Len(t, report.Data, 1)
	assert.Equal(t, int64(4599), report.Data[0].TotalSpentCents) // sum stays exact
	assert.Equal(t, "15.33", report.Data[0].AverageOrderValue)
}

func TestCustomerReportSorts(t *testing.T) {
	src := &fakeOrderSource{orders: []models.Order{
		order(models.StatusDelivered, day(2, 9), "Ada", "a@x.com", item("p1", "W", 1, 100)),
		order(models.StatusDelivered, day(20, 9), "Ada", "a@x.com", item("p1", "W", 1, 100)),
		order(models.StatusDelivered, day(10, 9), "Bob", "b@x.com", item("p1", "W", 1, 5000)),
		order(models.StatusDelivered, day(15, 9), "Cam", "c@x.com", item("p1", "W", 1, 300)),
	}}
	svc := NewService(src, &fakeProductCounter{})

	byOrders, err := svc.CustomerReport(context.Background(), owner, testWindow(), "orders", 20)
	require.NoError(t, err)
	assert.Equal(t, "Ada", byOrders.Data[0].CustomerName)

	byRecency, err := svc.CustomerReport(context.Background(), owner, testWindow(), "recency", 20)
	require.NoError(t, err)
	assert.Equal(t, "Ada", byRecency.Data[0].CustomerName) // last order day 20

	byName, err := svc.CustomerReport(context.Background(), owner, testWindow(), "name", 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ada", "Bob", "Cam"},
		[]string{byName.Data[0].CustomerName, byName.Data[1].CustomerName, byName.Data[2].CustomerName})

	byRevenue, err := svc.CustomerReport(context.Background(), owner, testWindow(), "revenue", 20)
	require.NoError(t, err)
	assert.Equal(t, "Bob", byRevenue.Data[0].CustomerName)
}

// --- dashboard ---

func TestDashboardSummary(t *testing.T) {
	now := day(10, 15)
	src := &fakeOrderSource{orders: []models.Order{
		order(models.StatusDelivered, day(2, 9), "Ada", "a@x.com", item("p1", "W", 1, 1000)),
		order(models.StatusDelivered, day(10, 8), "Bob", "b@x.com", item("p1", "W", 1, 2000)), // today
		order(models.StatusPending, day(10, 9), "Cam", "c@x.com", item("p1", "W", 1, 300)),
		order(models.StatusPending, day(9, 9), "Ada", "a@x.com", item("p1", "W", 1, 400)),
		order(models.StatusCancelled, day(8, 9), "Dee", "d@x.com", item("p1", "W", 1, 500)),
		order(models.StatusCompleted, day(7, 9), "Ada", "a@x.com", item("p1", "W", 1, 600)), // legacy fulfilled
	}}
	svc := NewService(src, &fakeProductCounter{lowStock: 3})

	d, err := svc.DashboardSummary(context.Background(), owner, now)
	require.NoError(t, err)

	// Fulfilled-only revenue: 1000 + 2000 + 600.
	assert.Equal(t, int64(3600), d.TotalRevenueCents)
	assert.Equal(t, "36.00", d.TotalRevenue)
	assert.Equal(t, int64(3), d.TotalOrders)

	// Today (UTC day of `now`): only Bob's delivered order.
	assert.Equal(t, int64(2000), d.TodayRevenueCents)
	assert.Equal(t, int64(1), d.TodayOrders)

	assert.Equal(t, int64(2), d.PendingOrders)
	// Distinct (name, email) pairs across every status: Ada, Bob, Cam, Dee.
	assert.Equal(t, 4, d.TotalCustomers)
	assert.Equal(t, int64(3), d.LowStockProducts)

	require.Len(t, d.RecentOrders, 5)
	assert.Equal(t, day(10, 9), d.RecentOrders[0].CreatedAt) // newest first
}

func TestDashboardSummaryEmptyOwner(t *testing.T) {
	svc := NewService(&fakeOrderSource{}, &fakeProductCounter{})

	d, err := svc.DashboardSummary(context.Background(), owner, day(10, 15))
	require.NoError(t, err)
	assert.Equal(t, "0.00", d.TotalRevenue)
	assert.Zero(t, d.TotalOrders)
	assert.Zero(t, d.TotalCustomers)
	assert.Empty(t, d.RecentOrders)
}

// --- money helpers ---

func TestMoneyFormatting(t *testing.T) {
	assert.Equal(t, "0.00", money(0))
	assert.Equal(t, "0.05", money(5))
	assert.Equal(t, "12.34", money(1234))
	assert.Equal(t, "-3.50", money(-350))

	assert.Equal(t, "0.00", avgMoney(1234, 0)) // divide-by-zero guard
	assert.Equal(t, "6.17", avgMoney(1234, 2))
	assert.Equal(t, "4.11", avgMoney(1234, 3)) // 4.1133... rounds down
}
