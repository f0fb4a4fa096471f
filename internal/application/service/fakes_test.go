package service

import (
	"context"
	"sync"

	"github.com/sangkips/ledgerbook/internal/domain/entity"
	"github.com/sangkips/ledgerbook/internal/domain/ledger"
	"github.com/sangkips/ledgerbook/pkg/apperror"
)

type fakeCustomers struct {
	mu          sync.Mutex
	customers   map[string]*entity.Customer
	getErr      error
	getCalls    int
	adjustErr   error
	adjustments []*ledger.Adjustment
	created     []*entity.CustomerInput
}

func newFakeCustomers(customers ...entity.Customer) *fakeCustomers {
	f := &fakeCustomers{customers: map[string]*entity.Customer{}}
	for i := range customers {
		c := customers[i]
		f.customers[c.ID] = &c
	}
	return f
}

func (f *fakeCustomers) List(ctx context.Context) ([]entity.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []entity.Customer{}
	for _, c := range f.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCustomers) Get(ctx context.Context, id string) (*entity.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	c, ok := f.customers[id]
	if !ok {
		return nil, apperror.NewNotFoundError("Customer")
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCustomers) Create(ctx context.Context, input *entity.CustomerInput) (*entity.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, input)
	c := &entity.Customer{ID: "new", Name: input.Name, Email: input.Email, Phone: input.Phone, Address: input.Address}
	f.customers[c.ID] = c
	return c, nil
}

func (f *fakeCustomers) Update(ctx context.Context, id string, input *entity.CustomerInput) (*entity.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.customers[id]
	if !ok {
		return nil, apperror.NewNotFoundError("Customer")
	}
	c.Name, c.Email, c.Phone, c.Address = input.Name, input.Email, input.Phone, input.Address
	copied := *c
	return &copied, nil
}

func (f *fakeCustomers) AdjustBalance(ctx context.Context, id string, adjustment *ledger.Adjustment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.adjustErr != nil {
		return f.adjustErr
	}
	f.adjustments = append(f.adjustments, adjustment)
	f.customers[id].Balance = adjustment.NewBalance
	return nil
}

type fakeTransactions struct {
	mu          sync.Mutex
	list        []entity.Transaction
	createErr   error
	submissions []*entity.TransactionSubmission
	customers   *fakeCustomers
	// when set, Create signals started and waits for release
	started chan struct{}
	release chan struct{}
}

func (f *fakeTransactions) List(ctx context.Context, customerID string) ([]entity.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Transaction(nil), f.list...), nil
}

func (f *fakeTransactions) Create(ctx context.Context, sub *entity.TransactionSubmission) (*entity.Transaction, error) {
	if f.release != nil {
		f.started <- struct{}{}
		<-f.release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.submissions = append(f.submissions, sub)

	balance := sub.TotalPrice.Sub(sub.AmountPaid)
	if f.customers != nil {
		f.customers.mu.Lock()
		if c, ok := f.customers.customers[sub.CustomerID]; ok {
			c.Balance = c.Balance.Add(balance)
		}
		f.customers.mu.Unlock()
	}
	return &entity.Transaction{
		ID:            "t-1",
		CustomerID:    sub.CustomerID,
		Items:         sub.Items,
		GrossPrice:    sub.GrossPrice,
		TaxPercentage: sub.TaxPercentage,
		TotalPrice:    sub.TotalPrice,
		AmountPaid:    sub.AmountPaid,
		BalanceAmount: balance,
		Date:          sub.Date,
	}, nil
}

type fakeSessions struct {
	mu      sync.Mutex
	session *entity.Session
}

func (f *fakeSessions) Get(ctx context.Context) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session, nil
}

func (f *fakeSessions) Save(ctx context.Context, s *entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = s
	return nil
}

func (f *fakeSessions) Delete(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = nil
	return nil
}

type fakePrefs struct {
	mu    sync.Mutex
	prefs *entity.Preferences
	saves int
}

func (f *fakePrefs) Get(ctx context.Context) (*entity.Preferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.prefs == nil {
		return nil, nil
	}
	copied := *f.prefs
	return &copied, nil
}

func (f *fakePrefs) Save(ctx context.Context, p *entity.Preferences) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *p
	f.prefs = &copied
	f.saves++
	return nil
}

type fakeAuth struct {
	result      *entity.AuthResult
	err         error
	registered  []string
	resentTo    []string
	verifyCodes []string
	loginEmails []string
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*entity.AuthResult, error) {
	f.loginEmails = append(f.loginEmails, email)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeAuth) Register(ctx context.Context, name, email, password string) error {
	if f.err != nil {
		return f.err
	}
	f.registered = append(f.registered, email)
	return nil
}

func (f *fakeAuth) VerifyEmail(ctx context.Context, email, code string) (*entity.AuthResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.verifyCodes = append(f.verifyCodes, code)
	return f.result, nil
}

func (f *fakeAuth) ResendVerification(ctx context.Context, email string) error {
	f.resentTo = append(f.resentTo, email)
	return f.err
}

func (f *fakeTransactions) submitted() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submissions)
}
