package request

import "github.com/sangkips/ledgerbook/internal/domain/entity"

// CustomerRequest represents a create or edit customer request
type CustomerRequest struct {
	Name    string  `json:"name" binding:"required,max=255"`
	Email   string  `json:"email" binding:"required,email"`
	Phone   string  `json:"phone" binding:"required,len=10,numeric"`
	Address *string `json:"address"`
}

// ToInput converts the request into the customer fields sent upstream
func (r *CustomerRequest) ToInput() *entity.CustomerInput {
	return &entity.CustomerInput{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
	}
}
