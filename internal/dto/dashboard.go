package dto

// DashboardStatsResponse holds the aggregate counters for the admin
// dashboard. Each value degrades to zero independently when its underlying
// query fails.
type DashboardStatsResponse struct {
	TotalProperties int64              `json:"total_properties"`
	TotalBookings   int64              `json:"total_bookings"`
	TotalRevenue    float64            `json:"total_revenue"`
	TotalUsers      int64              `json:"total_users"`
	RecentBookings  []*BookingResponse `json:"recent_bookings"`
}
