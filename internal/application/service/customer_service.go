package service

import (
	"context"
	"strings"

	"github.com/sangkips/ledgerbook/internal/domain/entity"
	"github.com/sangkips/ledgerbook/internal/domain/repository"
	"github.com/sangkips/ledgerbook/pkg/apperror"
	"github.com/sangkips/ledgerbook/pkg/pagination"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customers    repository.CustomerGateway
	transactions repository.TransactionGateway
}

// NewCustomerService creates a new customer service
func NewCustomerService(customers repository.CustomerGateway, transactions repository.TransactionGateway) *CustomerService {
	return &CustomerService{customers: customers, transactions: transactions}
}

// ListCustomers lists every customer of the logged-in account
func (s *CustomerService) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	return s.customers.List(ctx)
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperror.NewBadRequestError("Invalid customer ID")
	}
	return s.customers.Get(ctx, id)
}

// CreateCustomer validates and creates a customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *entity.CustomerInput) (*entity.Customer, error) {
	normalized, err := normalizeCustomer(input)
	if err != nil {
		return nil, err
	}
	return s.customers.Create(ctx, normalized)
}

// UpdateCustomer validates and replaces a customer's details
func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, input *entity.CustomerInput) (*entity.Customer, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperror.NewBadRequestError("Invalid customer ID")
	}
	normalized, err := normalizeCustomer(input)
	if err != nil {
		return nil, err
	}
	return s.customers.Update(ctx, id, normalized)
}

// ListTransactions pages through a customer's transaction history
func (s *CustomerService) ListTransactions(ctx context.Context, customerID string, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Transaction], error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, apperror.NewBadRequestError("Invalid customer ID")
	}

	transactions, err := s.transactions.List(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return pagination.Paginate(transactions, params), nil
}

func normalizeCustomer(input *entity.CustomerInput) (*entity.CustomerInput, error) {
	out := &entity.CustomerInput{
		Name:  strings.TrimSpace(input.Name),
		Email: strings.TrimSpace(input.Email),
		Phone: strings.TrimSpace(input.Phone),
	}
	if input.Address != nil {
		if address := strings.TrimSpace(*input.Address); address != "" {
			out.Address = &address
		}
	}

	check := &fieldChecker{}
	check.required("name", out.Name, "Name is required")
	check.email("email", out.Email)
	check.phone("phone", out.Phone)
	if err := check.err(); err != nil {
		return nil, err
	}
	return out, nil
}
