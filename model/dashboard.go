package model

import "time"

// DashboardStats is the aggregate view backing the dashboard landing page.
type DashboardStats struct {
	PatientCount     int64            `json:"patient_count"`
	AppointmentCount int64            `json:"appointment_count"`
	TeamMemberCount  int64            `json:"team_member_count"`
	CampaignCount    int64            `json:"campaign_count"`
	StatusBreakdown  map[string]int64 `json:"appointment_status_breakdown"`
	RecentPatients   []*Patient       `json:"recent_patients"`
	GeneratedAt      time.Time        `json:"generated_at"`
}

// WalletBalance is the clinic's CRM wallet balance, cached client-side
// with a fixed validity window.
type WalletBalance struct {
	BalanceCents int64     `json:"balance_cents"`
	Currency     string    `json:"currency"`
	FetchedAt    time.Time `json:"fetched_at"`
}

// GatewayHealth is the CRM gateway's health-check result.
type GatewayHealth struct {
	Status    string    `json:"status"`
	Version   string    `json:"version,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// Report is a CRM-supplied reporting row adapted into the local schema.
type Report struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	Metrics     []Metric  `json:"metrics"`
}

type Metric struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}
