package models

import "encoding/json"

type DashboardStats struct {
	Overview struct {
		TotalClients        int     `json:"totalClients"`
		TotalCleaners       int     `json:"totalCleaners"`
		TotalBookings       int     `json:"totalBookings"`
		ActiveCleaners      int     `json:"activeCleaners"`
		TotalRevenue        float64 `json:"totalRevenue"`
		AverageBookingValue float64 `json:"averageBookingValue"`
	} `json:"overview"`
	Bookings struct {
		ByStatus struct {
			New      int `json:"new"`
			Accepted int `json:"accepted"`
			Rejected int `json:"rejected"`
		} `json:"byStatus"`
		ByCleaningStatus struct {
			Completed  int `json:"completed"`
			InProgress int `json:"inProgress"`
			Confirmed  int `json:"confirmed"`
			OnTheWay   int `json:"onTheWay"`
		} `json:"byCleaningStatus"`
		ByPaymentStatus struct {
			Paid    int `json:"paid"`
			Pending int `json:"pending"`
		} `json:"byPaymentStatus"`
	} `json:"bookings"`
	Revenue struct {
		Total    float64         `json:"total"`
		ByMethod RevenueByMethod `json:"byMethod"`
	} `json:"revenue"`
	RecentActivity struct {
		Last7Days struct {
			NewClients  int `json:"newClients"`
			NewCleaners int `json:"newCleaners"`
			NewBookings int `json:"newBookings"`
		} `json:"last7Days"`
		Last30Days struct {
			Bookings int `json:"bookings"`
		} `json:"last30Days"`
	} `json:"recentActivity"`
	ServiceTypes []ServiceTypeCount `json:"serviceTypes"`
	Cleaners     struct {
		Onboarded    int `json:"onboarded"`
		BankVerified int `json:"bankVerified"`
		Total        int `json:"total"`
	} `json:"cleaners"`
}

type RevenueByMethod struct {
	Cash   float64 `json:"cash"`
	Card   float64 `json:"card"`
	Online float64 `json:"online"`
}

// Collected sums revenue over every payment method.
func (r RevenueByMethod) Collected() float64 {
	return r.Cash + r.Card + r.Online
}

type ServiceTypeCount struct {
	ID    string `json:"_id"`
	Count int    `json:"count"`
}

type TrendPoint struct {
	Date    string  `json:"date"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type Trend struct {
	Period int          `json:"period"`
	Data   []TrendPoint `json:"data"`
}

// RecentActivity keeps the feed entries raw; their shape is owned by the
// backend and only rendered, never interpreted.
type RecentActivity struct {
	Bookings []json.RawMessage `json:"bookings"`
	Clients  []json.RawMessage `json:"clients"`
	Cleaners []json.RawMessage `json:"cleaners"`
}
