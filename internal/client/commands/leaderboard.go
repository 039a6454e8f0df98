// FILE: internal/client/commands/leaderboard.go
package commands

import (
	"fmt"
	"strconv"

	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/client/display"
)

func (r *Registry) registerAll() {
	r.register(&Command{
		Name:        "submit",
		ShortName:   "s",
		Description: "Submit a score for a competitor",
		Usage:       "submit <competitorId> <score> [mode]",
		Handler:     handleSubmit,
	})
	r.register(&Command{
		Name:        "top",
		ShortName:   "t",
		Description: "Show the top of the leaderboard",
		Usage:       "top [limit]",
		Handler:     handleTop,
	})
	r.register(&Command{
		Name:        "rank",
		ShortName:   "r",
		Description: "Show a competitor's rank",
		Usage:       "rank [competitorId]",
		Handler:     handleRank,
	})
	r.register(&Command{
		Name:        "register",
		Description: "Register a competitor",
		Usage:       "register <displayName> [competitorId]",
		Handler:     handleRegister,
	})
	r.register(&Command{
		Name:        "health",
		Description: "Check server health",
		Handler:     handleHealth,
	})
	r.register(&Command{
		Name:        "server",
		Description: "Show or change the API base URL",
		Usage:       "server [url]",
		Handler:     handleServer,
	})
	r.register(&Command{
		Name:        "verbose",
		ShortName:   "v",
		Description: "Toggle verbose request/response output",
		Handler:     handleVerbose,
	})
}

func handleSubmit(s *Session, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: submit <competitorId> <score> [mode]")
	}
	score, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("score must be an integer: %s", args[1])
	}
	mode := ""
	if len(args) > 2 {
		mode = args[2]
	}

	result, err := s.Client.Submit(args[0], score, mode)
	if err != nil {
		return err
	}
	s.LastCompetitor = args[0]

	fmt.Printf("%sSubmitted: +%d for %s, total %d (entry %d)%s\n",
		display.Green, result.Score, result.CompetitorID, result.TotalScore,
		result.EntryID, display.Reset)
	return nil
}

func handleTop(s *Session, args []string) error {
	var limit int64
	if len(args) > 0 {
		parsed, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("limit must be an integer: %s", args[0])
		}
		limit = parsed
	}

	entries, source, err := s.Client.Top(limit)
	if err != nil {
		return err
	}

	rows := make([]display.LeaderboardRow, len(entries))
	for i, entry := range entries {
		rows[i] = display.LeaderboardRow{
			Rank:        entry.Rank,
			DisplayName: entry.DisplayName,
			Competitor:  entry.CompetitorID,
			Score:       entry.Score,
		}
	}
	display.PrintLeaderboard(rows, source)
	return nil
}

func handleRank(s *Session, args []string) error {
	competitorID := s.LastCompetitor
	if len(args) > 0 {
		competitorID = args[0]
	}
	if competitorID == "" {
		return fmt.Errorf("usage: rank <competitorId>")
	}

	entry, source, err := s.Client.Rank(competitorID)
	if err != nil {
		return err
	}
	s.LastCompetitor = competitorID

	fmt.Printf("%s#%d %s (%s): %d points [%s]%s\n",
		display.Green, entry.Rank, entry.DisplayName, entry.CompetitorID,
		entry.Score, source, display.Reset)
	return nil
}

func handleRegister(s *Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: register <displayName> [competitorId]")
	}
	competitorID := ""
	if len(args) > 1 {
		competitorID = args[1]
	}

	competitor, err := s.Client.Register(competitorID, args[0])
	if err != nil {
		return err
	}
	s.LastCompetitor = competitor.CompetitorID

	fmt.Printf("%sRegistered %s as %s%s\n",
		display.Green, competitor.DisplayName, competitor.CompetitorID, display.Reset)
	return nil
}

func handleHealth(s *Session, _ []string) error {
	health, err := s.Client.Health()
	if err != nil {
		return err
	}
	display.PrettyPrintJSON(health)
	return nil
}

func handleServer(s *Session, args []string) error {
	if len(args) == 0 {
		fmt.Printf("API: %s\n", s.APIBaseURL)
		return nil
	}
	s.APIBaseURL = args[0]
	s.Client.SetBaseURL(args[0])
	fmt.Printf("%sAPI set to %s%s\n", display.Green, s.APIBaseURL, display.Reset)
	return nil
}

func handleVerbose(s *Session, _ []string) error {
	s.Verbose = !s.Verbose
	s.Client.SetVerbose(s.Verbose)
	fmt.Printf("Verbose: %v\n", s.Verbose)
	return nil
}
