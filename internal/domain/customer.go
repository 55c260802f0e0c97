package domain

import "strings"

const customerNameMaxLength = 100

// CustomerInfo is attached to an appointment once the customer confirms.
type CustomerInfo struct {
	Name  string
	Email Email
	Phone string
	Notes string
}

func NewCustomerInfo(name, email, phone, notes string) (CustomerInfo, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CustomerInfo{}, NewValidation("CustomerInfo.NameRequired", "Customer name is required.")
	}
	if len(name) > customerNameMaxLength {
		return CustomerInfo{}, NewValidation("CustomerInfo.NameTooLong", "Customer name cannot exceed 100 characters.")
	}
	addr, err := ParseEmail(email)
	if err != nil {
		return CustomerInfo{}, err
	}
	return CustomerInfo{
		Name:  name,
		Email: addr,
		Phone: strings.TrimSpace(phone),
		Notes: strings.TrimSpace(notes),
	}, nil
}
