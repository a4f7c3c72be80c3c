package models

const SnapshotVersion = 1

// Snapshot is the on-disk image of the in-process record store.
type Snapshot struct {
	Version      int           `json:"version"`
	Voters       []VoterRecord `json:"voters"`
	Identities   []Identity    `json:"identities"`
	CallEvents   []CallEvent   `json:"callEvents"`
	ExportEvents []ExportEvent `json:"exportEvents"`
}
