package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"voteapp/domain"
	"voteapp/interface/exporter"
)

type VoterInteractor struct {
	ledger  domain.Ledger
	program *Program
}

func NewVoterInteractor(ledger domain.Ledger, program *Program) *VoterInteractor {
	interactor := &VoterInteractor{
		ledger:  ledger,
		program: program,
	}
	return interactor
}

// RegisterVoter creates the voter record of identity. Registering twice fails
// with ErrorAlreadyRegistered and leaves the record untouched.
func (interactor *VoterInteractor) RegisterVoter(ctx context.Context, identity domain.Address) (*domain.Voter, error) {
	addr, err := interactor.program.VoterAddress(identity)
	if err != nil {
		return nil, err
	}

	voter := domain.NewVoter(identity)
	err = interactor.ledger.Atomic(ctx, func(store domain.AccountStore) error {
		acc, err := domain.NewAccount(addr, interactor.program.ID, domain.KindVoter, voter)
		if err != nil {
			return err
		}
		err = interactor.program.System.CreateAccount(store, identity, acc, interactor.program.Rent)
		if errors.Is(err, domain.ErrorAccountExists) {
			return fmt.Errorf("%w: %v", domain.ErrorAlreadyRegistered, identity)
		}
		return err
	})
	if err != nil {
		log.Printf("🔴 registering voter [identity: %v] - %v\n", identity, err.Error())
		exporter.IncErrorCount()
		return nil, err
	}

	exporter.IncRegistrationCount()
	return voter, nil
}

func (interactor *VoterInteractor) GetVoter(ctx context.Context, identity domain.Address) (*domain.Voter, error) {
	var voter *domain.Voter
	err := interactor.ledger.View(ctx, func(store domain.AccountStore) error {
		var err error
		voter, _, err = interactor.program.LoadVoter(store, identity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return voter, nil
}
