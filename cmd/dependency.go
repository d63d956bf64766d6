package cmd

import (
	"database/sql"
	"log"
	"time"

	"voteapp/domain"
	"voteapp/domain/config"
	"voteapp/infrastructure/bolthandler"
	"voteapp/infrastructure/dbhandler"
	"voteapp/interface/repository"
	"voteapp/usecase"

	_ "github.com/lib/pq"
)

func defaultDependencyInject() {
	var err error

	switch config.GetStorage() {
	case config.StoragePostgres:
		dbPool, err = sql.Open("postgres", config.GetDbUri())
		if err != nil {
			log.Fatal(err)
		}
		dbPool.SetMaxOpenConns(20)
		dbPool.SetMaxIdleConns(5)
		dbPool.SetConnMaxIdleTime(1 * time.Minute)
		dbPool.SetConnMaxLifetime(4 * time.Hour)

		dbHandler = dbhandler.DBHandler{DB: dbPool}
		ledger = repository.NewPostgresLedger(dbHandler)

	default:
		boltHandler, err = bolthandler.Open(config.GetBoltPath())
		if err != nil {
			log.Fatalf("Unable to open ledger file %v - %v\n", config.GetBoltPath(), err.Error())
		}
		ledger = repository.NewBoltLedger(boltHandler)
	}

	program = usecase.NewProgram(config.GetProgramId(), config.GetAccountRent())

	treasuryInteractor = usecase.NewTreasuryInteractor(ledger, program)
	voterInteractor = usecase.NewVoterInteractor(ledger, program)
	proposalInteractor = usecase.NewProposalInteractor(ledger, program,
		config.GetProposalStake(), config.GetMaxDescriptionLength(), nil)
	statisticInteractor = usecase.NewStatisticInteractor(treasuryInteractor, proposalInteractor)
}

func closeDependencies() {
	if boltHandler != nil {
		if err := boltHandler.Close(); err != nil {
			log.Printf("🔴 closing ledger file - %v\n", err.Error())
		}
	}
	if dbPool != nil {
		dbPool.Close()
	}
}

var dbPool *sql.DB
var dbHandler dbhandler.DBHandler
var boltHandler *bolthandler.BoltHandler
var ledger domain.Ledger
var program *usecase.Program
var treasuryInteractor *usecase.TreasuryInteractor
var voterInteractor *usecase.VoterInteractor
var proposalInteractor *usecase.ProposalInteractor
var statisticInteractor *usecase.StatisticInteractor
