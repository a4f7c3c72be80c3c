package models

import "sort"

type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	IdentityID  string `json:"identityId"`
	DisplayName string `json:"displayName"`
	CallCount   int    `json:"callCount"`
}

type CallSummary struct {
	TotalCalls         int `json:"totalCalls"`
	UniqueCalledVoters int `json:"uniqueCalledVoters"`
}

type CalledVoter struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Contact  string `json:"contact,omitempty"`
}

// Rank orders identities by call count, highest first. Identities without
// events are kept with a zero count. Ties fall back to creation time and
// then id, so repeated runs over the same input agree. Events for unknown
// identities are ignored.
func Rank(identities []Identity, events []CallEvent) []LeaderboardEntry {
	counts := make(map[string]int, len(identities))
	for _, ev := range events {
		counts[ev.IdentityID]++
	}

	ordered := make([]Identity, len(identities))
	copy(ordered, identities)
	sort.SliceStable(ordered, func(i, j int) bool {
		ci, cj := counts[ordered[i].ID], counts[ordered[j].ID]
		if ci != cj {
			return ci > cj
		}
		if !ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
		}
		return ordered[i].ID < ordered[j].ID
	})

	entries := make([]LeaderboardEntry, len(ordered))
	for i, id := range ordered {
		entries[i] = LeaderboardEntry{
			Rank:        i + 1,
			IdentityID:  id.ID,
			DisplayName: id.DisplayName,
			CallCount:   counts[id.ID],
		}
	}
	return entries
}

func Summarize(events []CallEvent) CallSummary {
	return CallSummary{
		TotalCalls:         len(events),
		UniqueCalledVoters: len(CalledVoterIDs(events)),
	}
}

// CalledVoterIDs lists distinct voter ids in first-called order.
func CalledVoterIDs(events []CallEvent) []string {
	seen := make(map[string]struct{}, len(events))
	ids := make([]string, 0, len(events))
	for _, ev := range events {
		if _, ok := seen[ev.VoterID]; ok {
			continue
		}
		seen[ev.VoterID] = struct{}{}
		ids = append(ids, ev.VoterID)
	}
	return ids
}

// CalledVoters resolves ids against the fetched voters, keeping the id
// order and skipping voters no longer on the roster.
func CalledVoters(ids []string, voters []VoterRecord) []CalledVoter {
	byID := make(map[string]*VoterRecord, len(voters))
	for i := range voters {
		byID[voters[i].ID] = &voters[i]
	}
	out := make([]CalledVoter, 0, len(ids))
	for _, id := range ids {
		v, ok := byID[id]
		if !ok {
			continue
		}
		out = append(out, CalledVoter{ID: v.ID, FullName: v.FullName, Contact: v.Contact})
	}
	return out
}

// LeaderboardReport is everything the leaderboard page shows.
type LeaderboardReport struct {
	Entries      []LeaderboardEntry `json:"entries"`
	Summary      CallSummary        `json:"summary"`
	CalledVoters []CalledVoter      `json:"calledVoters"`
}
