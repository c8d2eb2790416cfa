package orders

// SetStatus: заказ, закрытый оператором.
func (r *MemoryRepository) SetStatus(orderID int64, status Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == orderID {
			r.orders[i].Status = status
		}
	}
}
