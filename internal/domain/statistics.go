package domain

import "time"

// RiskDistribution é a contagem de empresas por faixa de risco
type RiskDistribution struct {
	Low    int `json:"bajo"`
	Medium int `json:"medio"`
	High   int `json:"alto"`
}

type DashboardStats struct {
	TotalCompanies   int              `json:"total_companies"`
	ChurnRate        float64          `json:"churn_rate"` // Percentual 0-100
	HighRiskCount    int              `json:"high_risk_companies"`
	ActiveCompanies  int              `json:"active_companies"`
	RiskDistribution RiskDistribution `json:"risk_distribution"`
	LatestPeriod     string           `json:"latest_period,omitempty"`
	GeneratedAt      time.Time        `json:"generated_at"`
}

type SectorStatistics struct {
	Sector           string  `json:"sector"`
	TotalCompanies   int     `json:"total_companies"`
	ChurnedCompanies int     `json:"churned_companies"`
	ActiveCompanies  int     `json:"active_companies"`
	ChurnRate        float64 `json:"churn_rate"`
}

type Segments struct {
	Sectors      []string `json:"sectors"`
	Provinces    []string `json:"provinces"`
	LatestPeriod string   `json:"latest_period"`
}

// DatasetSyncStatus é o status do agendador de atualização do dataset
type DatasetSyncStatus struct {
	Enabled             bool      `json:"enabled"`
	CronSchedule        string    `json:"cron_schedule"`
	Running             bool      `json:"running"`
	LastSyncStartedAt   time.Time `json:"last_sync_started_at"`
	LastSyncCompletedAt time.Time `json:"last_sync_completed_at"`
	LastSeed            int64     `json:"last_seed"`
	Records             int       `json:"records"`
}
