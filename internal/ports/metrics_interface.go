package ports

// AuthMetrics : счётчики исходов login/refresh/logout
type AuthMetrics interface {
	LoginAttempt(outcome, client string)
	RefreshAttempt(outcome, client string)
	Logout(client string)
}
