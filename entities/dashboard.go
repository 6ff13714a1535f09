package entities

// DashboardStats is the single dashboard contract; active means status ongoing.
type DashboardStats struct {
	TotalVillages     int64 `json:"totalVillages"`
	ActiveProjects    int64 `json:"activeProjects"`
	CompletedProjects int64 `json:"completedProjects"`
	DelayedProjects   int64 `json:"delayedProjects"`
}
