package model

// IssueRecord is one row of the issue history ledger: an issue that was
// successfully created on GitHub from a channel message.
type IssueRecord struct {
	ID        string
	UserID    string
	ChannelID string
	RepoOwner string
	RepoName  string
	Number    int
	URL       string
	Title     string
	CreatedAt int64
}
