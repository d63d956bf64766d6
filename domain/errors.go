package domain

import (
	"errors"
	"fmt"
)

var (
	ErrorAlreadyInitialized     = fmt.Errorf("treasury is already initialized")
	ErrorAlreadyRegistered      = fmt.Errorf("voter is already registered")
	ErrorAlreadyVoted           = fmt.Errorf("voter has already voted on this proposal")
	ErrorInsufficientFunds      = fmt.Errorf("insufficient funds")
	ErrorAuthorityProofMismatch = fmt.Errorf("authority proof does not match the expected authority")
	ErrorMintMismatch           = fmt.Errorf("holding account is not denominated in the configured asset")
	ErrorVoterNotRegistered     = fmt.Errorf("voter is not registered")
	ErrorProposalNotFound       = fmt.Errorf("proposal not found")
	ErrorDeadlinePassed         = fmt.Errorf("proposal deadline has passed")
	ErrorArithmeticOverflow     = fmt.Errorf("arithmetic overflow")

	ErrorTreasuryNotInitialized = fmt.Errorf("treasury is not initialized")
	ErrorInvalidAmount          = fmt.Errorf("amount must be greater than zero")
	ErrorSupplyCapExceeded      = fmt.Errorf("issuance would exceed the supply cap")
	ErrorOwnerMismatch          = fmt.Errorf("holding account is not owned by the signer")
	ErrorUnauthorized           = fmt.Errorf("signer is not the treasury authority")
	ErrorInvalidDeadline        = fmt.Errorf("deadline must be in the future")
	ErrorDescriptionTooLong     = fmt.Errorf("proposal description is too long")
	ErrorEmptyDescription       = fmt.Errorf("proposal description is empty")

	ErrorNotWallet          = fmt.Errorf("account can only be debited by its program")
	ErrorAccountExists      = fmt.Errorf("account already exists")
	ErrorAccountNotFound    = fmt.Errorf("account not found")
	ErrorInvalidAccountData = fmt.Errorf("invalid account data")
)

// IsFault reports whether err is a logic or configuration defect rather than
// a condition the caller could fix by resubmitting.
func IsFault(err error) bool {
	return errors.Is(err, ErrorAuthorityProofMismatch) || errors.Is(err, ErrorArithmeticOverflow)
}
