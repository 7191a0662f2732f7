package dto

type DashboardStats struct {
	AsOf           string         `json:"asOf"`
	TotalRooms     int            `json:"totalRooms"`
	TotalSuites    int            `json:"totalSuites"`
	AvailableCount int            `json:"availableCount"`
	PendingCount   int            `json:"pendingCount"`
	ConfirmedCount int            `json:"confirmedCount"`
	TotalRevenue   float64        `json:"totalRevenue"`
	CheckInsToday  int            `json:"checkInsToday"`
	CheckOutsToday int            `json:"checkOutsToday"`
	OccupancyRate  float64        `json:"occupancyRate"`
	MonthlyRevenue []MonthRevenue `json:"monthlyRevenue"`
}

type MonthRevenue struct {
	Month      string  `json:"month"`
	Label      string  `json:"label"`
	Revenue    float64 `json:"revenue"`
	OrderCount int     `json:"orderCount"`
}
