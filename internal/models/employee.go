package models

import "errors"

// ErrEmployeeNotFound is returned when no employee matches the requested identifier.
var ErrEmployeeNotFound = errors.New("employee not found")

// Employee represents an employee entity.
type Employee struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// NewEmployee builds an employee that has not been stored yet, so its ID is zero.
func NewEmployee(firstName, lastName, email string) Employee {
	return Employee{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}
}
