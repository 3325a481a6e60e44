package db

import (
	"time"

	"github.com/google/uuid"

	"issuebot/model"
)

// AddIssueRecord stores one successfully created issue in the history ledger
// and returns the record ID.
func AddIssueRecord(userID, channelID, repoOwner, repoName string, number int, url, title string) (string, error) {
	id := uuid.New().String()
	_, err := DB.Exec(
		`INSERT INTO issues (id, user_id, channel_id, repo_owner, repo_name, number, url, title, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, userID, channelID, repoOwner, repoName, number, url, title, time.Now().Unix(),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetRecentIssuesByChannel returns the most recently created issues for the
// channel, newest first.
func GetRecentIssuesByChannel(channelID string, limit int) ([]model.IssueRecord, error) {
	rows, err := DB.Query(
		`SELECT id, user_id, channel_id, repo_owner, repo_name, number, url, title, created_at
		 FROM issues WHERE channel_id = ? ORDER BY created_at DESC LIMIT ?`,
		channelID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.IssueRecord
	for rows.Next() {
		var r model.IssueRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.ChannelID, &r.RepoOwner, &r.RepoName, &r.Number, &r.URL, &r.Title, &r.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
