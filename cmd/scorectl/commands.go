package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"scoresync/pkg/record"
)

var ensureCmd = &cobra.Command{
	Use:   "ensure <name>",
	Short: "Get a player's record, creating it with score 0 if absent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		rec, err := store.EnsureExists(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printRecord(rec)
		return nil
	},
}

var upsertCmd = &cobra.Command{
	Use:   "upsert <name> <score>",
	Short: "Set a player's score, creating the record if needed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("score must be an integer: %q", args[1])
		}
		store, err := newStore()
		if err != nil {
			return err
		}
		rec, err := store.UpsertScore(cmd.Context(), args[0], score)
		if err != nil {
			return err
		}
		printRecord(rec)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Remove a player's record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		ok, err := store.Delete(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("not found")
			return nil
		}
		fmt.Println("deleted")
		return nil
	},
}

var rankCmd = &cobra.Command{
	Use:   "rank <name>",
	Short: "Look up a player's rank",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		rank, err := store.GetRank(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if rank == nil {
			fmt.Println("unranked")
			return nil
		}
		fmt.Printf("#%d  %s  %d\n", rank.Rank, rank.Player, rank.Score)
		return nil
	},
}

var (
	flagTopPage     int
	flagTopPageSize int
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show a leaderboard page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		page, err := store.GetLeaderboardPage(cmd.Context(), flagTopPage, flagTopPageSize)
		if err != nil {
			return err
		}
		for i, rec := range page.Records {
			fmt.Printf("%3d. %s  %d\n", (flagTopPage-1)*flagTopPageSize+i+1, rec.PlayerName, rec.Score)
		}
		if page.Total >= 0 {
			fmt.Printf("(%d records total)\n", page.Total)
		}
		return nil
	},
}

func init() {
	topCmd.Flags().IntVar(&flagTopPage, "page", 1, "Page number")
	topCmd.Flags().IntVar(&flagTopPageSize, "page-size", 20, "Records per page")
}

func printRecord(rec *record.ScoreRecord) {
	if rec == nil {
		fmt.Println("not found")
		return
	}
	fmt.Printf("id=%d  name=%s  score=%d  updated=%s\n", rec.ID, rec.PlayerName, rec.Score, rec.CreatedAt)
}
