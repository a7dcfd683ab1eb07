package validators

import (
	"errors"
	"slices"
	"strings"
)

// Categories is the closed set an expense can belong to.
var Categories = []string{
	"Food",
	"Transportation",
	"Entertainment",
	"Bills",
	"Shopping",
	"Healthcare",
	"Other",
}

var (
	ErrTitleEmpty      = errors.New("no title provided")
	ErrTitleTooLong    = errors.New("title is too long")
	ErrAmountInvalid   = errors.New("amount must be greater than 0")
	ErrCategoryInvalid = errors.New("invalid category provided")
	ErrDateEmpty       = errors.New("no date provided")
)

func TitleValidator(t string) error {
	if strings.TrimSpace(t) == "" {
		return ErrTitleEmpty
	}

	if len(t) > 120 {
		return ErrTitleTooLong
	}

	return nil
}

func AmountValidator(a float64) error {
	if a <= 0 {
		return ErrAmountInvalid
	}

	return nil
}

func CategoryValidator(c string) error {
	if !slices.Contains(Categories, c) {
		return ErrCategoryInvalid
	}

	return nil
}
