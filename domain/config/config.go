package config

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"voteapp/domain"

	"github.com/spf13/viper"
	"github.com/tonkeeper/tongo/tlb"
)

const (
	StorageBolt     = "bolt"
	StoragePostgres = "postgres"
)

var (
	ErrorInvalidStorage = fmt.Errorf("storage must be equal to 'bolt' or 'postgres' only")
	ErrorNoBoltPath     = fmt.Errorf("no bolt_path is defined")
	ErrorNoDbUri        = fmt.Errorf("no service_db_uri is defined")

	ErrorInvalidProgramId         = fmt.Errorf("invalid program id")
	ErrorInvalidDescriptionLength = fmt.Errorf("max_description_length must be greater than zero")
	ErrorInvalidReportInterval    = fmt.Errorf("invalid time interval for report process")
)

var (
	TrailingSlashRE = regexp.MustCompile("/+$")
)

var (
	storage  string
	boltPath string
	dbUri    string

	programId domain.Address

	accountRent          tlb.Grams
	supplyCap            uint64
	proposalStake        uint64
	maxDescriptionLength int

	listenAddress  string
	reportInterval time.Duration
)

func init() {
	setDefaults()
}

func setDefaults() {
	viper.SetDefault("storage", StorageBolt)
	viper.SetDefault("bolt_path", "voteapp.db")
	viper.SetDefault("account_rent", 890880)
	viper.SetDefault("supply_cap", 0)
	viper.SetDefault("proposal_stake", 0)
	viper.SetDefault("max_description_length", 280)
	viper.SetDefault("listen_address", ":9090")
	viper.SetDefault("report_interval", "1m")
}

func ReadConfig(filePath string) {
	if filePath != "" {
		viper.SetConfigFile(filePath)
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("⚠️ Failed reading config file: %v\n", err.Error())
	}

	err := initializeVariables()
	if err != nil {
		log.Fatalf("Configuration error - %v\n", err.Error())
	}
}

// This method processes the configuration parameters and keeps the processed values
// in some variables for later accesses rapidly.
func initializeVariables() error {
	var err error

	// Storage stuff
	storage = strings.TrimSpace(strings.ToLower(viper.GetString("storage")))
	switch storage {
	case StorageBolt:
		boltPath = strings.TrimSpace(viper.GetString("bolt_path"))
		if boltPath == "" {
			return ErrorNoBoltPath
		}
	case StoragePostgres:
		dbUri = TrailingSlashRE.ReplaceAllString(strings.TrimSpace(viper.GetString("service_db_uri")), "")
		if dbUri == "" {
			return ErrorNoDbUri
		}
	default:
		return ErrorInvalidStorage
	}

	// Program stuff
	programId, err = domain.ParseAddress(strings.TrimSpace(viper.GetString("program_id")))
	if err != nil {
		return ErrorInvalidProgramId
	}

	accountRent = tlb.Grams(viper.GetUint64("account_rent"))
	supplyCap = viper.GetUint64("supply_cap")
	proposalStake = viper.GetUint64("proposal_stake")

	maxDescriptionLength = viper.GetInt("max_description_length")
	if maxDescriptionLength <= 0 {
		return ErrorInvalidDescriptionLength
	}

	//---------------------------------------------------------------
	// server stuff
	listenAddress = strings.TrimSpace(viper.GetString("listen_address"))

	reportInterval, err = time.ParseDuration(viper.GetString("report_interval"))
	if err != nil || reportInterval <= 0 {
		return ErrorInvalidReportInterval
	}

	return nil
}

//-------------------------------------------------------------------
// Normal configuration values

func GetStorage() string {
	return storage
}

func GetBoltPath() string {
	return boltPath
}

func GetDbUri() string {
	return dbUri
}

func GetProgramId() domain.Address {
	return programId
}

func GetAccountRent() tlb.Grams {
	return accountRent
}

func GetSupplyCap() uint64 {
	return supplyCap
}

func GetProposalStake() uint64 {
	return proposalStake
}

func GetMaxDescriptionLength() int {
	return maxDescriptionLength
}

func GetListenAddress() string {
	return listenAddress
}

func GetReportInterval() time.Duration {
	return reportInterval
}

// -------------------------------------------------------------------
// Evaluating values

func IsPostgres() bool {
	return storage == StoragePostgres
}
