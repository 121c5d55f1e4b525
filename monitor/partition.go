package monitor

import "bili-bot/models"

// Partition splits fetched items into those not yet in the seen set
// and those already delivered. Fetch order is preserved in both
// halves; the upstream returns most recent first, so callers wanting
// chronological delivery must walk fresh back to front.
func Partition(items []models.FeedItem, seen map[int64]bool) (fresh, known []models.FeedItem) {
	for _, item := range items {
		if seen[item.ID] {
			known = append(known, item)
		} else {
			fresh = append(fresh, item)
		}
	}
	return fresh, known
}
