/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"voteapp/domain"
	"voteapp/usecase"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var registerVoterCmd = &cobra.Command{
	Use:   "register-voter",
	Short: "Registers an identity as a voter",
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()
		defer closeDependencies()

		identity := mustParseAddress("identity", flagIdentity)
		if _, err := voterInteractor.RegisterVoter(context.Background(), identity); err != nil {
			log.Fatalf("❌ Voter is not registered - %v\n", err.Error())
		}
		fmt.Printf("🔵 voter %v registered\n", identity)
	},
}

var createProposalCmd = &cobra.Command{
	Use:   "create-proposal",
	Short: "Creates a proposal that accepts votes until its deadline",
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()
		defer closeDependencies()

		deadline := time.Now().Add(flagDuration)
		if flagDeadline != "" {
			var err error
			deadline, err = time.Parse(time.RFC3339, flagDeadline)
			if err != nil {
				log.Fatalf("⛔️ Flag 'deadline' must be an RFC 3339 time - %v\n", err.Error())
			}
		}

		proposal, err := proposalInteractor.RegisterProposal(context.Background(), usecase.RegisterProposalRequest{
			Creator:     mustParseAddress("creator", flagCreator),
			Description: flagDescription,
			Deadline:    deadline,
		})
		if err != nil {
			log.Fatalf("❌ Proposal is not created - %v\n", err.Error())
		}
		printOutProposals([]*domain.Proposal{proposal})
	},
}

var voteCmd = &cobra.Command{
	Use:   "vote",
	Short: "Casts one vote on an open proposal",
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()
		defer closeDependencies()

		proposal, err := proposalInteractor.CastVote(context.Background(), mustParseAddress("voter", flagVoter), flagProposal)
		if err != nil {
			log.Fatalf("❌ Vote is not accepted - %v\n", err.Error())
		}
		printOutProposals([]*domain.Proposal{proposal})
	},
}

var proposalsCmd = &cobra.Command{
	Use:   "proposals",
	Short: "Lists all proposals",
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()
		defer closeDependencies()

		proposals, err := proposalInteractor.ListProposals(context.Background())
		if err != nil {
			log.Fatalf("❌ Proposals are not available - %v\n", err.Error())
		}
		printOutProposals(proposals)
	},
}

var winnerCmd = &cobra.Command{
	Use:   "winner",
	Short: "Prints the closed proposal with the most votes",
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()
		defer closeDependencies()

		winner, err := proposalInteractor.PickWinner(context.Background())
		if err != nil {
			log.Fatalf("❌ No winner - %v\n", err.Error())
		}
		printOutProposals([]*domain.Proposal{winner})
	},
}

func printOutProposals(proposals []*domain.Proposal) {
	now := time.Now()
	fmt.Printf("------------- PROPOSALS -----------------\n")
	for _, proposal := range proposals {
		fmt.Printf("#%03d - %-6v %v votes, deadline %v [ %v ]\n",
			proposal.ID,
			proposal.State(now),
			humanize.Comma(int64(proposal.VoteCount)),
			humanize.Time(proposal.Deadline),
			proposal.Description)
	}
}

var (
	flagIdentity    string
	flagCreator     string
	flagDescription string
	flagDeadline    string
	flagDuration    time.Duration
	flagVoter       string
	flagProposal    uint64
)

func init() {
	rootCmd.AddCommand(registerVoterCmd, createProposalCmd, voteCmd, proposalsCmd, winnerCmd)

	registerVoterCmd.Flags().StringVar(&flagIdentity, "identity", "", "voter identity address")
	registerVoterCmd.MarkFlagRequired("identity")

	createProposalCmd.Flags().StringVar(&flagCreator, "creator", "", "creator address, a registered voter")
	createProposalCmd.Flags().StringVar(&flagDescription, "description", "", "proposal description")
	createProposalCmd.Flags().StringVar(&flagDeadline, "deadline", "", "voting deadline as an RFC 3339 time")
	createProposalCmd.Flags().DurationVar(&flagDuration, "duration", 72*time.Hour, "voting period, used when no deadline is given")
	createProposalCmd.MarkFlagRequired("creator")
	createProposalCmd.MarkFlagRequired("description")

	voteCmd.Flags().StringVar(&flagVoter, "voter", "", "voter identity address")
	voteCmd.Flags().Uint64Var(&flagProposal, "proposal", 0, "proposal id")
	voteCmd.MarkFlagRequired("voter")
	voteCmd.MarkFlagRequired("proposal")
}
