package models

// GroSummaryEntry is the per-staff performance roll-up. It is derived on every
// request and never stored.
type GroSummaryEntry struct {
	Gro                   string  `json:"gro"`
	TotalReservations     int     `json:"totalReservations"`
	TotalRevenue          float64 `json:"totalRevenue"`
	AverageRevenue        float64 `json:"averageRevenue"`
	CompletedReservations int     `json:"completedReservations"`
	PendingReservations   int     `json:"pendingReservations"`
	CancelledReservations int     `json:"cancelledReservations"`
}

// DashboardStats holds the global reservation metrics shown on the dashboard.
type DashboardStats struct {
	TotalReservations     int     `json:"totalReservations"`
	TotalRevenue          float64 `json:"totalRevenue"`
	PendingReservations   int     `json:"pendingReservations"`
	CompletedReservations int     `json:"completedReservations"`
	MonthlyRevenue        float64 `json:"monthlyRevenue"`
	MonthlyReservations   int     `json:"monthlyReservations"`
}

// MonthlyRevenuePoint is one bucket of the yearly revenue trend.
type MonthlyRevenuePoint struct {
	Year         int     `json:"year"`
	Month        int     `json:"month"` // 1-12
	Reservations int     `json:"reservations"`
	Revenue      float64 `json:"revenue"`
}
