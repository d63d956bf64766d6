/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"log"

	"voteapp/domain"
	"voteapp/domain/config"
	"voteapp/domain/util"
	"voteapp/usecase"

	"github.com/spf13/cobra"
	"github.com/tonkeeper/tongo/tlb"
)

var initTreasuryCmd = &cobra.Command{
	Use:   "init-treasury",
	Short: "Creates the treasury config, the asset mint and the authority's holding account",
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()
		defer closeDependencies()

		supplyCap := config.GetSupplyCap()
		if cmd.Flags().Changed("supply-cap") {
			supplyCap = flagSupplyCap
		}

		cfg, err := treasuryInteractor.InitializeTreasury(context.Background(), usecase.InitializeTreasuryRequest{
			Authority:           mustParseAddress("authority", flagAuthority),
			Price:               tlb.Grams(flagPrice),
			IssuancePerPurchase: flagIssuance,
			SupplyCap:           supplyCap,
		})
		if err != nil {
			log.Fatalf("❌ Treasury is not initialized - %v\n", err.Error())
		}
		printOutConfig(cfg)
	},
}

var airdropCmd = &cobra.Command{
	Use:   "airdrop",
	Short: "Funds an account with native value on a local ledger",
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()
		defer closeDependencies()

		to := mustParseAddress("to", flagTo)
		err := ledger.Atomic(context.Background(), func(store domain.AccountStore) error {
			return program.System.Airdrop(store, to, tlb.Grams(flagAmount))
		})
		if err != nil {
			log.Fatalf("❌ Airdrop failed - %v\n", err.Error())
		}
		fmt.Printf("🔵 %v received %v\n", to, util.LamportsToSolString(tlb.Grams(flagAmount)))
	},
}

var openAccountCmd = &cobra.Command{
	Use:   "open-account",
	Short: "Creates the holding account of an owner for the treasury asset",
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()
		defer closeDependencies()

		owner := mustParseAddress("owner", flagOwner)
		addr, err := treasuryInteractor.OpenHoldingAccount(context.Background(), owner)
		if err != nil {
			log.Fatalf("❌ Holding account is not created - %v\n", err.Error())
		}
		fmt.Printf("🔵 holding account of %v: %v\n", owner, addr)
	},
}

var buyCmd = &cobra.Command{
	Use:   "buy",
	Short: "Buys one lot of the treasury asset at the configured price",
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()
		defer closeDependencies()

		buyer := mustParseAddress("buyer", flagBuyer)
		holding, err := treasuryInteractor.HoldingAddress(buyer)
		if err != nil {
			log.Fatal(err)
		}
		if flagHolding != "" {
			holding = mustParseAddress("holding", flagHolding)
		}

		result, err := treasuryInteractor.BuyTokens(context.Background(), buyer, holding)
		if err != nil {
			log.Fatalf("❌ Purchase failed - %v\n", err.Error())
		}
		fmt.Printf("🔵 paid %v, received %v, holding %v now has %v\n",
			util.LamportsToSolString(result.Paid),
			util.TokenString(result.Issued, domain.AssetDecimals),
			result.Holding,
			util.TokenString(result.HoldingTotal, domain.AssetDecimals))
	},
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Moves native value from the vault to the treasury authority",
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()
		defer closeDependencies()

		authority := mustParseAddress("authority", flagAuthority)
		remaining, err := treasuryInteractor.WithdrawVault(context.Background(), authority, tlb.Grams(flagAmount))
		if err != nil {
			log.Fatalf("❌ Withdrawal failed - %v\n", err.Error())
		}
		fmt.Printf("🔵 withdrew %v, vault keeps %v\n",
			util.LamportsToSolString(tlb.Grams(flagAmount)), util.LamportsToSolString(remaining))
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Prints the treasury state",
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()
		defer closeDependencies()

		result, err := statisticInteractor.Statistic(context.Background())
		if err != nil {
			log.Fatalf("❌ Treasury state is not available - %v\n", err.Error())
		}

		info := result.Treasury
		fmt.Printf("------------- TREASURY -----------------\n")
		fmt.Printf("config:         %v\n", info.Address)
		fmt.Printf("vault:          %v [ %v ]\n", info.Vault, util.LamportsToSolString(info.VaultBalance))
		fmt.Printf("mint authority: %v\n", info.MintAuthority)
		printOutConfig(&info.Config)
		fmt.Printf("supply:         %v\n", util.TokenString(info.Supply, domain.AssetDecimals))
		fmt.Printf("proposals:      %v (%v open, %v votes)\n", result.ProposalCount, result.OpenProposals, result.TotalVoteCount)
	},
}

func printOutConfig(cfg *domain.TreasuryConfig) {
	fmt.Printf("authority:      %v\n", cfg.Authority)
	fmt.Printf("asset mint:     %v\n", cfg.AssetMint)
	fmt.Printf("treasury asset: %v\n", cfg.TreasuryAssetAccount)
	fmt.Printf("price:          %v\n", util.LamportsString(cfg.Price))
	fmt.Printf("per purchase:   %v\n", util.TokenString(cfg.IssuancePerPurchase, domain.AssetDecimals))
	if cfg.HasSupplyCap() {
		fmt.Printf("supply cap:     %v\n", util.TokenString(cfg.SupplyCap, domain.AssetDecimals))
	} else {
		fmt.Printf("supply cap:     unlimited\n")
	}
}

func mustParseAddress(name string, value string) domain.Address {
	addr, err := domain.ParseAddress(value)
	if err != nil {
		log.Fatalf("⛔️ Flag '%v' must be a base58 address - %v\n", name, err.Error())
	}
	return addr
}

var (
	flagAuthority string
	flagTo        string
	flagOwner     string
	flagBuyer     string
	flagHolding   string
	flagPrice     uint64
	flagIssuance  uint64
	flagSupplyCap uint64
	flagAmount    uint64
)

func init() {
	rootCmd.AddCommand(initTreasuryCmd, airdropCmd, openAccountCmd, buyCmd, withdrawCmd, showCmd)

	initTreasuryCmd.Flags().StringVar(&flagAuthority, "authority", "", "treasury authority address")
	initTreasuryCmd.Flags().Uint64Var(&flagPrice, "price", 0, "price of one purchase in lamports")
	initTreasuryCmd.Flags().Uint64Var(&flagIssuance, "issuance", 0, "asset units issued per purchase")
	initTreasuryCmd.Flags().Uint64Var(&flagSupplyCap, "supply-cap", 0, "total supply cap in asset units, 0 for unlimited")
	initTreasuryCmd.MarkFlagRequired("authority")
	initTreasuryCmd.MarkFlagRequired("price")
	initTreasuryCmd.MarkFlagRequired("issuance")

	airdropCmd.Flags().StringVar(&flagTo, "to", "", "receiving address")
	airdropCmd.Flags().Uint64Var(&flagAmount, "amount", 0, "lamports to airdrop")
	airdropCmd.MarkFlagRequired("to")
	airdropCmd.MarkFlagRequired("amount")

	openAccountCmd.Flags().StringVar(&flagOwner, "owner", "", "owner of the holding account")
	openAccountCmd.MarkFlagRequired("owner")

	buyCmd.Flags().StringVar(&flagBuyer, "buyer", "", "buyer address")
	buyCmd.Flags().StringVar(&flagHolding, "holding", "", "receiving holding account (default: the buyer's own)")
	buyCmd.MarkFlagRequired("buyer")

	withdrawCmd.Flags().StringVar(&flagAuthority, "authority", "", "treasury authority address")
	withdrawCmd.Flags().Uint64Var(&flagAmount, "amount", 0, "lamports to withdraw")
	withdrawCmd.MarkFlagRequired("authority")
	withdrawCmd.MarkFlagRequired("amount")
}
