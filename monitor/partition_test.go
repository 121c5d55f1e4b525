package monitor

import (
	"testing"

	"bili-bot/models"

	"github.com/stretchr/testify/assert"
)

func items(ids ...int64) []models.FeedItem {
	out := make([]models.FeedItem, len(ids))
	for i, id := range ids {
		out[i] = models.FeedItem{ID: id}
	}
	return out
}

func ids(items []models.FeedItem) []int64 {
	out := make([]int64, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestPartition(t *testing.T) {
	tests := []struct {
		name      string
		fetched   []int64
		seen      map[int64]bool
		wantFresh []int64
		wantKnown []int64
	}{
		{
			name:      "middle item already seen",
			fetched:   []int64{10, 11, 12},
			seen:      map[int64]bool{11: true},
			wantFresh: []int64{10, 12},
			wantKnown: []int64{11},
		},
		{
			name:      "all new",
			fetched:   []int64{3, 2, 1},
			seen:      map[int64]bool{},
			wantFresh: []int64{3, 2, 1},
		},
		{
			name:      "all seen",
			fetched:   []int64{3, 2, 1},
			seen:      map[int64]bool{1: true, 2: true, 3: true},
			wantKnown: []int64{3, 2, 1},
		},
		{
			name:    "empty fetch",
			fetched: nil,
			seen:    map[int64]bool{1: true},
		},
		{
			name:      "seen set disjoint from fetch",
			fetched:   []int64{5, 4},
			seen:      map[int64]bool{100: true},
			wantFresh: []int64{5, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fresh, known := Partition(items(tt.fetched...), tt.seen)
			assert.Equal(t, tt.wantFresh, idsOrNil(fresh))
			assert.Equal(t, tt.wantKnown, idsOrNil(known))
		})
	}
}

func idsOrNil(items []models.FeedItem) []int64 {
	if len(items) == 0 {
		return nil
	}
	return ids(items)
}

func TestPartitionPreservesFetchOrder(t *testing.T) {
	fetched := items(9, 7, 8, 5, 6)
	fresh, known := Partition(fetched, map[int64]bool{7: true, 5: true})
	assert.Equal(t, []int64{9, 8, 6}, ids(fresh))
	assert.Equal(t, []int64{7, 5}, ids(known))
}
