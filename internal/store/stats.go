package store

import "database/sql"

type DashboardStats struct {
	TotalItems     int
	TotalOrders    int
	OrdersByStatus map[string]int
	TopSoldItems   []ItemSoldCount
}

type ItemSoldCount struct {
	ItemID    int64
	Name      string
	SoldCount int
}

// GetDashboardStats aggregates the numbers shown on the operator dashboard.
func (s *Store) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{
		OrdersByStatus: make(map[string]int),
	}

	err := s.DB.QueryRow("SELECT COUNT(*) FROM items").Scan(&stats.TotalItems)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	err = s.DB.QueryRow("SELECT COUNT(*) FROM orders").Scan(&stats.TotalOrders)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	rows, err := s.DB.Query("SELECT status, COUNT(*) FROM orders GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.OrdersByStatus[status] = count
	}

	itemRows, err := s.DB.Query(`
		SELECT id, name, sold_count
		FROM items
		ORDER BY sold_count DESC
		LIMIT 10
	`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var isc ItemSoldCount
		if err := itemRows.Scan(&isc.ItemID, &isc.Name, &isc.SoldCount); err != nil {
			return nil, err
		}
		stats.TopSoldItems = append(stats.TopSoldItems, isc)
	}

	return stats, nil
}
