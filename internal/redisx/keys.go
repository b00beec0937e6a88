package redisx

import "time"

// Cache of order status bodies: order_status:{order_id} -> {"status":"..."}
func KeyOrderStatus(orderID string) string { return "order_status:" + orderID }

var TTLStatusCache = 5 * time.Minute
