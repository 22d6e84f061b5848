package entities

// AssetStats are the dashboard counters.
type AssetStats struct {
	Total             int64 `json:"total"`
	Updated           int64 `json:"updated"`
	Pending           int64 `json:"pending"`
	NeedsTroubleshoot int64 `json:"needs_troubleshoot"`
	Inactive          int64 `json:"inactive"`
}

