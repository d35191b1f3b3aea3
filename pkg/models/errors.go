package models

import (
	"errors"
	"fmt"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrReferenceInvalid = errors.New("a resource ID you specified does not identify an existing resource")
	ErrResourceInUse    = errors.New("the resource is still referenced by other resources")

	// ErrValidation is wrapped by all errors for data that is rejected by the models.
	ErrValidation = errors.New("invalid data")
)

var (
	ErrAccountNameNotUnique      = errors.New("the account name must be unique")
	ErrCounterpartyNameNotUnique = errors.New("the counterparty name must be unique")
	ErrAssetNameNotUnique        = errors.New("the asset name must be unique")
	ErrBudgetLimitGroupNotUnique = errors.New("there already is a budget limit for this category group")
	ErrRecurrenceAlreadyEmitted  = errors.New("an entry for this recurring rule and period already exists")
)

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

var (
	ErrAmountNotPositive            = validationError("the amount must be positive")
	ErrEntryKindInvalid             = validationError("the kind must be one of expense, income, investment")
	ErrPaymentMethodInvalid         = validationError("the payment method must be one of direct, credit")
	ErrDebtSettledWithoutDebt       = validationError("only debt entries can be settled")
	ErrInvoicePaymentWithoutEntries = validationError("an invoice payment must reference the entries it settles")
	ErrCreditWithoutAccount         = validationError("credit payments need an account")
	ErrInstallmentIndexInvalid      = validationError("the installment index must be between 1 and the installment total")
	ErrDayOfMonthInvalid            = validationError("the day of month must be between 1 and 31")
	ErrLastProcessedPeriodMissing   = validationError("the last processed period must be set")
	ErrAccountNameEmpty             = validationError("the account name must not be empty")
	ErrClosingDayInvalid            = validationError("accounts with credit need a closing day between 1 and 31")
	ErrDueDayInvalid                = validationError("the due day must be between 1 and 31, or 0 if unset")
	ErrCreditLimitNegative          = validationError("the credit limit must not be negative")
	ErrNameEmpty                    = validationError("the name must not be empty")
	ErrCategoryGroupEmpty           = validationError("the category group must not be empty")
	ErrAssetValueNegative           = validationError("asset values must not be negative")
)
