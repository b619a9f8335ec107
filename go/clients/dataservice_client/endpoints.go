package dataservice_client

const (
	UserAgentHeader = "User-Agent"
	UserAgent       = "fantasygolf-leaderboard"
)
