package models

import "github.com/shopspring/decimal"

// DashboardStats - счётчики панели, набор зависит от роли
type DashboardStats struct {
	TotalOrders     *int64           `json:"total_orders,omitempty"`
	PendingOrders   *int64           `json:"pending_orders,omitempty"`
	ConfirmedOrders *int64           `json:"confirmed_orders,omitempty"`
	InProcessOrders *int64           `json:"in_process_orders,omitempty"`
	ReadyOrders     *int64           `json:"ready_orders,omitempty"`
	ActiveOrders    *int64           `json:"active_orders,omitempty"`
	CompletedOrders *int64           `json:"completed_orders,omitempty"`
	PendingPickup   *int64           `json:"pending_pickup,omitempty"`
	PendingDelivery *int64           `json:"pending_delivery,omitempty"`
	CompletedToday  *int64           `json:"completed_today,omitempty"`
	ActiveCustomers *int64           `json:"active_customers,omitempty"`
	ActiveServices  *int64           `json:"active_services,omitempty"`
	StaffCount      *int64           `json:"staff_count,omitempty"`
	CourierCount    *int64           `json:"courier_count,omitempty"`
	TotalRevenue    *decimal.Decimal `json:"total_revenue,omitempty"`
}

// Dashboard - панель пользователя: счётчики и списки для его роли
type Dashboard struct {
	Role  Role
	Stats DashboardStats

	// admin, customer
	RecentOrders []OrderData
	// admin
	RecentReviews []ReviewData
	// staff
	TodayOrders       []OrderData
	AvailableCouriers []UserData
	// courier
	AssignedOrders []OrderData
	// customer
	ActiveOrders []OrderData
}
