package rpc

// Fully-qualified service names.
const (
	TournamentServiceName  = "fantasygolf.tournament.v1.TournamentService"
	TeamServiceName        = "fantasygolf.team.v1.TeamService"
	GolferServiceName      = "fantasygolf.golfer.v1.GolferService"
	LeaderboardServiceName = "fantasygolf.leaderboard.v1.LeaderboardService"
)

// Procedure paths, in the form connect routes them.
const (
	GetTournamentProcedure          = "/" + TournamentServiceName + "/GetTournament"
	GetTierProcedure                = "/" + TournamentServiceName + "/GetTier"
	ListLiveTournamentsProcedure    = "/" + TournamentServiceName + "/ListLiveTournaments"
	GetTeamsByTournamentProcedure   = "/" + TeamServiceName + "/GetTeamsByTournament"
	GetToursProcedure               = "/" + TeamServiceName + "/GetTours"
	GetGolfersByTournamentProcedure = "/" + GolferServiceName + "/GetGolfersByTournament"
	GetLeaderboardProcedure         = "/" + LeaderboardServiceName + "/GetLeaderboard"
	RefreshLeaderboardProcedure     = "/" + LeaderboardServiceName + "/RefreshLeaderboard"
)

// ServicePath is the mux prefix a service's handler is mounted under.
func ServicePath(service string) string {
	return "/" + service + "/"
}
