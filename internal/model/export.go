package model

// HistoryExport is the top-level JSON structure for the activity export command.
type HistoryExport struct {
	ExportedAt string     `json:"exported_at"`
	User       *Identity  `json:"user,omitempty"`
	Count      int        `json:"count"`
	Activities []Activity `json:"activities"`
}
