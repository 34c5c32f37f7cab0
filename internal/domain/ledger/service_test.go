package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"karobar/internal/core/apperror"
	appcontext "karobar/internal/core/context"
	"karobar/internal/core/id"
	"karobar/internal/core/types"
	"karobar/internal/domain"
	"karobar/internal/domain/audit"
	"karobar/internal/domain/catalogs/customer"
	"karobar/internal/domain/catalogs/product"
)

// In-memory fakes. The fake transaction manager snapshots all stores before
// the callback and restores them on error, mirroring a database rollback.

type fakeSaleRepo struct {
	sales map[id.ID]*Sale
	lines map[id.ID][]SaleLine
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: map[id.ID]*Sale{}, lines: map[id.ID][]SaleLine{}}
}

func (r *fakeSaleRepo) Create(_ context.Context, sale *Sale) error {
	cp := *sale
	r.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) SaveLines(_ context.Context, saleID id.ID, lines []SaleLine) error {
	r.lines[saleID] = append([]SaleLine(nil), lines...)
	return nil
}

func (r *fakeSaleRepo) GetByID(_ context.Context, saleID id.ID) (*Sale, error) {
	s, ok := r.sales[saleID]
	if !ok {
		return nil, apperror.NewNotFound("sale", saleID)
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSaleRepo) GetForUpdate(ctx context.Context, saleID id.ID) (*Sale, error) {
	return r.GetByID(ctx, saleID)
}

func (r *fakeSaleRepo) GetLines(_ context.Context, saleID id.ID) ([]SaleLine, error) {
	return append([]SaleLine(nil), r.lines[saleID]...), nil
}

func (r *fakeSaleRepo) UpdateAmounts(_ context.Context, saleID id.ID, paid, due types.Money) error {
	s, ok := r.sales[saleID]
	if !ok {
		return apperror.NewNotFound("sale", saleID)
	}
	s.PaidAmount = paid
	s.DueAmount = due
	return nil
}

func (r *fakeSaleRepo) List(_ context.Context, _ SaleListFilter) (domain.ListResult[*Sale], error) {
	out := domain.ListResult[*Sale]{}
	for _, s := range r.sales {
		out.Items = append(out.Items, s)
	}
	out.TotalCount = int64(len(out.Items))
	return out, nil
}

type fakePaymentRepo struct {
	payments []*Payment
}

func (r *fakePaymentRepo) Create(_ context.Context, p *Payment) error {
	cp := *p
	r.payments = append(r.payments, &cp)
	return nil
}

func (r *fakePaymentRepo) GetByID(_ context.Context, paymentID id.ID) (*Payment, error) {
	for _, p := range r.payments {
		if p.ID == paymentID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("payment", paymentID)
}

func (r *fakePaymentRepo) List(_ context.Context, _ PaymentListFilter) (domain.ListResult[*Payment], error) {
	return domain.ListResult[*Payment]{Items: r.payments, TotalCount: int64(len(r.payments))}, nil
}

type fakeProductRepo struct {
	products map[id.ID]*product.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[id.ID]*product.Product{}}
}

func (r *fakeProductRepo) Create(_ context.Context, p *product.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, productID id.ID) (*product.Product, error) {
	p, ok := r.products[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID)
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, productID id.ID) (*product.Product, error) {
	return r.GetByID(ctx, productID)
}

func (r *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*product.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("product", sku)
}

func (r *fakeProductRepo) Update(_ context.Context, p *product.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) AdjustStock(_ context.Context, productID id.ID, delta int) error {
	p, ok := r.products[productID]
	if !ok {
		return apperror.NewNotFound("product", productID)
	}
	if p.Stock+delta < 0 {
		return apperror.NewInsufficientStock(productID.String(), -delta, p.Stock)
	}
	p.Stock += delta
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, productID id.ID) error {
	delete(r.products, productID)
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, _ domain.ListFilter) (domain.ListResult[*product.Product], error) {
	return domain.ListResult[*product.Product]{}, nil
}

type fakeCustomerRepo struct {
	customers map[id.ID]*customer.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[id.ID]*customer.Customer{}}
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *customer.Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, customerID id.ID) (*customer.Customer, error) {
	c, ok := r.customers[customerID]
	if !ok {
		return nil, apperror.NewNotFound("customer", customerID)
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) GetForUpdate(ctx context.Context, customerID id.ID) (*customer.Customer, error) {
	return r.GetByID(ctx, customerID)
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *customer.Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) AddToTotalDue(_ context.Context, customerID id.ID, delta types.Money) error {
	c, ok := r.customers[customerID]
	if !ok {
		return apperror.NewNotFound("customer", customerID)
	}
	c.TotalDue = c.TotalDue.Add(delta)
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, customerID id.ID) error {
	delete(r.customers, customerID)
	return nil
}

func (r *fakeCustomerRepo) List(_ context.Context, _ customer.ListFilter) (domain.ListResult[*customer.Customer], error) {
	return domain.ListResult[*customer.Customer]{}, nil
}

type fakeNumberer struct{ n int }

func (f *fakeNumberer) NextNumber(_ context.Context, prefix string, at time.Time) (string, error) {
	f.n++
	return prefix + "-TEST-" + string(rune('0'+f.n)), nil
}

// fakeTxManager restores all fake stores when the callback fails so that
// partial writes never survive, the way a rolled-back transaction behaves.
type fakeTxManager struct {
	sales     *fakeSaleRepo
	payments  *fakePaymentRepo
	products  *fakeProductRepo
	customers *fakeCustomerRepo
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	salesSnap := map[id.ID]*Sale{}
	for k, v := range m.sales.sales {
		cp := *v
		salesSnap[k] = &cp
	}
	linesSnap := map[id.ID][]SaleLine{}
	for k, v := range m.sales.lines {
		linesSnap[k] = append([]SaleLine(nil), v...)
	}
	paySnap := append([]*Payment(nil), m.payments.payments...)
	prodSnap := map[id.ID]*product.Product{}
	for k, v := range m.products.products {
		cp := *v
		prodSnap[k] = &cp
	}
	custSnap := map[id.ID]*customer.Customer{}
	for k, v := range m.customers.customers {
		cp := *v
		custSnap[k] = &cp
	}

	if err := fn(ctx); err != nil {
		m.sales.sales = salesSnap
		m.sales.lines = linesSnap
		m.payments.payments = paySnap
		m.products.products = prodSnap
		m.customers.customers = custSnap
		return err
	}
	return nil
}

type fixture struct {
	svc       *Service
	sales     *fakeSaleRepo
	payments  *fakePaymentRepo
	products  *fakeProductRepo
	customers *fakeCustomerRepo
}

func newFixture() *fixture {
	sales := newFakeSaleRepo()
	payments := &fakePaymentRepo{}
	products := newFakeProductRepo()
	customers := newFakeCustomerRepo()
	txm := &fakeTxManager{sales: sales, payments: payments, products: products, customers: customers}

	svc := NewService(sales, payments, products, customers, &fakeNumberer{}, audit.Nop{}, txm)
	return &fixture{svc: svc, sales: sales, payments: payments, products: products, customers: customers}
}

func (f *fixture) addProduct(t *testing.T, name string, stock int, salePrice int64) *product.Product {
	t.Helper()
	p := product.New(name, name+"-SKU", 12, stock,
		types.NewMoneyFromInt(salePrice/2), types.NewMoneyFromInt(salePrice))
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

func (f *fixture) addCustomer(t *testing.T, name string) *customer.Customer {
	t.Helper()
	c := customer.New(name, "0300-1234567", "Main Bazaar", "salesman-1")
	require.NoError(t, f.customers.Create(context.Background(), c))
	return c
}

func money(v int64) types.Money { return types.NewMoneyFromInt(v) }

func TestCreateSale_PartialPayment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p := f.addProduct(t, "Rice Bag", 10, 100)
	c := f.addCustomer(t, "Ahmed Traders")

	sale, err := f.svc.CreateSale(ctx, CreateSaleInput{
		SalesmanID: "salesman-1",
		CustomerID: &c.ID,
		Lines: []SaleLineInput{
			{ProductID: p.ID, Quantity: 4, UnitPrice: money(100)},
		},
		AmountReceived: money(150),
	})
	require.NoError(t, err)

	assert.True(t, sale.TotalAmount.Equal(money(400)), "total: %s", sale.TotalAmount)
	assert.True(t, sale.PaidAmount.Equal(money(150)), "paid: %s", sale.PaidAmount)
	assert.True(t, sale.DueAmount.Equal(money(250)), "due: %s", sale.DueAmount)

	got, err := f.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Stock)

	cust, err := f.customers.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, cust.TotalDue.Equal(money(250)), "totalDue: %s", cust.TotalDue)

	require.Len(t, f.payments.payments, 1)
	assert.True(t, f.payments.payments[0].Amount.Equal(money(150)))
	assert.Equal(t, sale.ID, f.payments.payments[0].SaleID)
}

func TestCreateSale_FullPaymentNoDue(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p := f.addProduct(t, "Sugar", 20, 50)
	c := f.addCustomer(t, "Bilal Store")

	sale, err := f.svc.CreateSale(ctx, CreateSaleInput{
		SalesmanID: "salesman-1",
		CustomerID: &c.ID,
		Lines: []SaleLineInput{
			{ProductID: p.ID, Quantity: 2, UnitPrice: money(50)},
		},
		AmountReceived: money(100),
	})
	require.NoError(t, err)

	assert.True(t, sale.DueAmount.IsZero())

	cust, err := f.customers.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, cust.TotalDue.IsZero())
}

func TestCreateSale_NoPaymentRowWhenNothingReceived(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p := f.addProduct(t, "Flour", 5, 80)
	c := f.addCustomer(t, "Karim Kiryana")

	_, err := f.svc.CreateSale(ctx, CreateSaleInput{
		SalesmanID: "salesman-1",
		CustomerID: &c.ID,
		Lines: []SaleLineInput{
			{ProductID: p.ID, Quantity: 1, UnitPrice: money(80)},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, f.payments.payments)
}

func TestCreateSale_RecordsCreatingUser(t *testing.T) {
	f := newFixture()
	ctx := appcontext.WithUser(context.Background(), &appcontext.UserContext{
		UserID: "user-77",
		Name:   "Imran",
		Role:   appcontext.RoleSalesman,
	})

	p := f.addProduct(t, "Soap", 10, 60)
	c := f.addCustomer(t, "Noor General Store")

	sale, err := f.svc.CreateSale(ctx, CreateSaleInput{
		SalesmanID: "salesman-1",
		CustomerID: &c.ID,
		Lines: []SaleLineInput{
			{ProductID: p.ID, Quantity: 2, UnitPrice: money(60)},
		},
		AmountReceived: money(50),
	})
	require.NoError(t, err)

	assert.Equal(t, "user-77", sale.CreatedBy)
	require.Len(t, f.payments.payments, 1)
	assert.Equal(t, "user-77", f.payments.payments[0].CreatedBy)

	pay, err := f.svc.ApplyPayment(ctx, ApplyPaymentInput{
		SaleID:     sale.ID,
		CustomerID: c.ID,
		Amount:     money(70),
	})
	require.NoError(t, err)
	assert.Equal(t, "user-77", pay.CreatedBy)
}

func TestCreateSale_NoUserLeavesCreatedByEmpty(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p := f.addProduct(t, "Soap", 10, 60)
	c := f.addCustomer(t, "Noor General Store")

	sale, err := f.svc.CreateSale(ctx, CreateSaleInput{
		SalesmanID: "salesman-1",
		CustomerID: &c.ID,
		Lines: []SaleLineInput{
			{ProductID: p.ID, Quantity: 1, UnitPrice: money(60)},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, sale.CreatedBy)
}

func TestCreateSale_InlineCustomer(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p := f.addProduct(t, "Tea", 10, 200)

	sale, err := f.svc.CreateSale(ctx, CreateSaleInput{
		SalesmanID: "salesman-1",
		NewCustomer: &NewCustomerInput{
			Name:    "New Shop",
			Phone:   "0301-7654321",
			Address: "GT Road",
		},
		Lines: []SaleLineInput{
			{ProductID: p.ID, Quantity: 3, UnitPrice: money(200)},
		},
		AmountReceived: money(100),
	})
	require.NoError(t, err)

	assert.Equal(t, "New Shop", sale.CustomerName)
	cust, err := f.customers.GetByID(ctx, sale.CustomerID)
	require.NoError(t, err)
	assert.True(t, cust.TotalDue.Equal(money(500)), "totalDue: %s", cust.TotalDue)
	assert.Equal(t, "salesman-1", cust.SalesmanID)
}

func TestCreateSale_Discount(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p := f.addProduct(t, "Oil", 10, 300)
	c := f.addCustomer(t, "Discount Buyer")

	sale, err := f.svc.CreateSale(ctx, CreateSaleInput{
		SalesmanID: "salesman-1",
		CustomerID: &c.ID,
		Lines: []SaleLineInput{
			{ProductID: p.ID, Quantity: 2, UnitPrice: money(300)},
		},
		Discount:       money(50),
		AmountReceived: money(550),
	})
	require.NoError(t, err)

	assert.True(t, sale.TotalAmount.Equal(money(550)))
	assert.True(t, sale.DueAmount.IsZero())
}

func TestCreateSale_InsufficientStock(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p := f.addProduct(t, "Soap", 3, 40)
	c := f.addCustomer(t, "Bulk Buyer")

	_, err := f.svc.CreateSale(ctx, CreateSaleInput{
		SalesmanID: "salesman-1",
		CustomerID: &c.ID,
		Lines: []SaleLineInput{
			{ProductID: p.ID, Quantity: 5, UnitPrice: money(40)},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	got, err := f.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock, "stock must be untouched")
	assert.Empty(t, f.sales.sales)
}

func TestCreateSale_MultiLineShortfallLeavesNothingBehind(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p1 := f.addProduct(t, "Matches", 10, 10)
	p2 := f.addProduct(t, "Candles", 1, 30)
	c := f.addCustomer(t, "Corner Shop")

	_, err := f.svc.CreateSale(ctx, CreateSaleInput{
		SalesmanID: "salesman-1",
		CustomerID: &c.ID,
		Lines: []SaleLineInput{
			{ProductID: p1.ID, Quantity: 5, UnitPrice: money(10)},
			{ProductID: p2.ID, Quantity: 4, UnitPrice: money(30)},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	got1, _ := f.products.GetByID(ctx, p1.ID)
	got2, _ := f.products.GetByID(ctx, p2.ID)
	assert.Equal(t, 10, got1.Stock)
	assert.Equal(t, 1, got2.Stock)

	cust, _ := f.customers.GetByID(ctx, c.ID)
	assert.True(t, cust.TotalDue.IsZero())
	assert.Empty(t, f.sales.sales)
	assert.Empty(t, f.payments.payments)
}

func TestCreateSale_ReceivedAboveTotalRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p := f.addProduct(t, "Salt", 10, 20)
	c := f.addCustomer(t, "Tiny Shop")

	_, err := f.svc.CreateSale(ctx, CreateSaleInput{
		SalesmanID: "salesman-1",
		CustomerID: &c.ID,
		Lines: []SaleLineInput{
			{ProductID: p.ID, Quantity: 1, UnitPrice: money(20)},
		},
		AmountReceived: money(25),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidAmount(err))

	got, _ := f.products.GetByID(ctx, p.ID)
	assert.Equal(t, 10, got.Stock)
}

func TestCreateSale_ValidationErrors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.addProduct(t, "Biscuits", 10, 30)
	c := f.addCustomer(t, "Someone")

	cases := []struct {
		name string
		in   CreateSaleInput
	}{
		{"no salesman", CreateSaleInput{
			CustomerID: &c.ID,
			Lines:      []SaleLineInput{{ProductID: p.ID, Quantity: 1, UnitPrice: money(30)}},
		}},
		{"no lines", CreateSaleInput{SalesmanID: "s1", CustomerID: &c.ID}},
		{"no customer", CreateSaleInput{
			SalesmanID: "s1",
			Lines:      []SaleLineInput{{ProductID: p.ID, Quantity: 1, UnitPrice: money(30)}},
		}},
		{"zero quantity", CreateSaleInput{
			SalesmanID: "s1", CustomerID: &c.ID,
			Lines: []SaleLineInput{{ProductID: p.ID, Quantity: 0, UnitPrice: money(30)}},
		}},
		{"negative received", CreateSaleInput{
			SalesmanID: "s1", CustomerID: &c.ID,
			Lines:          []SaleLineInput{{ProductID: p.ID, Quantity: 1, UnitPrice: money(30)}},
			AmountReceived: money(-5),
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.CreateSale(ctx, tc.in)
			require.Error(t, err)
		})
	}
}

func TestApplyPayment_SettlesSale(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p := f.addProduct(t, "Rice Bag", 10, 100)
	c := f.addCustomer(t, "Ahmed Traders")

	sale, err := f.svc.CreateSale(ctx, CreateSaleInput{
		SalesmanID: "salesman-1",
		CustomerID: &c.ID,
		Lines: []SaleLineInput{
			{ProductID: p.ID, Quantity: 4, UnitPrice: money(100)},
		},
		AmountReceived: money(150),
	})
	require.NoError(t, err)

	pay, err := f.svc.ApplyPayment(ctx, ApplyPaymentInput{
		SaleID:     sale.ID,
		CustomerID: c.ID,
		Amount:     money(250),
	})
	require.NoError(t, err)
	assert.True(t, pay.Amount.Equal(money(250)))

	got, err := f.sales.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.True(t, got.PaidAmount.Equal(money(400)))
	assert.True(t, got.DueAmount.IsZero())

	cust, err := f.customers.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, cust.TotalDue.IsZero())

	require.Len(t, f.payments.payments, 2)
}

func TestApplyPayment_OverpayRejectedWithoutMutation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p := f.addProduct(t, "Rice Bag", 10, 100)
	c := f.addCustomer(t, "Ahmed Traders")

	sale, err := f.svc.CreateSale(ctx, CreateSaleInput{
		SalesmanID: "salesman-1",
		CustomerID: &c.ID,
		Lines: []SaleLineInput{
			{ProductID: p.ID, Quantity: 4, UnitPrice: money(100)},
		},
		AmountReceived: money(150),
	})
	require.NoError(t, err)

	_, err = f.svc.ApplyPayment(ctx, ApplyPaymentInput{
		SaleID:     sale.ID,
		CustomerID: c.ID,
		Amount:     money(300),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidAmount(err))

	got, err := f.sales.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.True(t, got.PaidAmount.Equal(money(150)), "paid must be unchanged")
	assert.True(t, got.DueAmount.Equal(money(250)), "due must be unchanged")

	cust, err := f.customers.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, cust.TotalDue.Equal(money(250)))
	require.Len(t, f.payments.payments, 1)
}

func TestApplyPayment_NonPositiveAmount(t *testing.T) {
	f := newFixture()

	_, err := f.svc.ApplyPayment(context.Background(), ApplyPaymentInput{
		SaleID:     id.New(),
		CustomerID: id.New(),
		Amount:     money(0),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidAmount(err))
}

func TestApplyPayment_CustomerMismatch(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p := f.addProduct(t, "Rice Bag", 10, 100)
	c := f.addCustomer(t, "Ahmed Traders")
	other := f.addCustomer(t, "Someone Else")

	sale, err := f.svc.CreateSale(ctx, CreateSaleInput{
		SalesmanID: "salesman-1",
		CustomerID: &c.ID,
		Lines: []SaleLineInput{
			{ProductID: p.ID, Quantity: 1, UnitPrice: money(100)},
		},
	})
	require.NoError(t, err)

	_, err = f.svc.ApplyPayment(ctx, ApplyPaymentInput{
		SaleID:     sale.ID,
		CustomerID: other.ID,
		Amount:     money(50),
	})
	require.Error(t, err)

	cust, _ := f.customers.GetByID(ctx, c.ID)
	assert.True(t, cust.TotalDue.Equal(money(100)))
}

func TestLedgerInvariant_PaidPlusDueEqualsTotal(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p := f.addProduct(t, "Rice Bag", 100, 100)
	c := f.addCustomer(t, "Ahmed Traders")

	sale, err := f.svc.CreateSale(ctx, CreateSaleInput{
		SalesmanID: "salesman-1",
		CustomerID: &c.ID,
		Lines: []SaleLineInput{
			{ProductID: p.ID, Quantity: 7, UnitPrice: money(100)},
		},
		AmountReceived: money(120),
	})
	require.NoError(t, err)

	for _, amt := range []int64{100, 200, 150} {
		_, err := f.svc.ApplyPayment(ctx, ApplyPaymentInput{
			SaleID:     sale.ID,
			CustomerID: c.ID,
			Amount:     money(amt),
		})
		require.NoError(t, err)

		got, err := f.sales.GetByID(ctx, sale.ID)
		require.NoError(t, err)
		assert.True(t, got.PaidAmount.Add(got.DueAmount).Equal(got.TotalAmount),
			"paid %s + due %s != total %s", got.PaidAmount, got.DueAmount, got.TotalAmount)
	}

	got, err := f.sales.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.True(t, got.DueAmount.Equal(money(130)))

	cust, err := f.customers.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, cust.TotalDue.Equal(money(130)))
}

func TestGetSale_IncludesLines(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p := f.addProduct(t, "Rice Bag", 10, 100)
	c := f.addCustomer(t, "Ahmed Traders")

	sale, err := f.svc.CreateSale(ctx, CreateSaleInput{
		SalesmanID: "salesman-1",
		CustomerID: &c.ID,
		Lines: []SaleLineInput{
			{ProductID: p.ID, Quantity: 2, UnitPrice: money(100)},
		},
	})
	require.NoError(t, err)

	got, err := f.svc.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "Rice Bag", got.Lines[0].ProductName)
	assert.Equal(t, 2, got.Lines[0].Quantity)
}
