package models

import "errors"

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	// Category errors
	ErrCategoryNameEmpty     = errors.New("the category name must not be empty")
	ErrCategoryNameNotUnique = errors.New("a category with this name already exists")

	// Transaction errors
	ErrTransactionTypeInvalid       = errors.New("the transaction type must be income or expense")
	ErrTransactionDescriptionEmpty  = errors.New("the transaction description must not be empty")
	ErrTransactionAmountNotPositive = errors.New("the transaction amount must be larger than zero")

	// User errors
	ErrEmailNotUnique = errors.New("this email is already used by another user")
)
