package cli

// CLI is the habitctl command tree.
type CLI struct {
	Recompute RecomputeCmd `cmd:"" help:"Rebuild cached stats from the completion log."`
	Stats     StatsCmd     `cmd:"" help:"Show a user's habits with their stats."`
	Create    CreateCmd    `cmd:"" help:"Create a habit."`
	Checkin   CheckInCmd   `cmd:"" help:"Record a completion."`
	Delete    DeleteCmd    `cmd:"" help:"Delete a habit with all its history."`
	Keyring   KeyringCmd   `cmd:"" help:"Manage credentials in the OS keyring."`
}
