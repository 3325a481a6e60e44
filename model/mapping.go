package model

import "fmt"

// RepoMapping associates a Discord channel with a GitHub repository.
// A channel may carry several mappings; equality is by the exact triple.
type RepoMapping struct {
	ChannelID string `json:"id"`
	RepoOwner string `json:"repo_owner"`
	RepoName  string `json:"repo_name"`
}

// RepoURL returns the https URL of the mapped repository.
func (m RepoMapping) RepoURL() string {
	return fmt.Sprintf("https://github.com/%s/%s", m.RepoOwner, m.RepoName)
}
