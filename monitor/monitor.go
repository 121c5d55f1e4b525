package monitor

import (
	"context"
	"database/sql"
	"log"
	"strconv"
	"sync"

	"bili-bot/bilibili"
	"bili-bot/database"
	"bili-bot/models"
	"bili-bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Monitor runs poll cycles over the tracked bilibili accounts.
type Monitor struct {
	client *bilibili.Client
	db     *sql.DB
}

// New creates a Monitor on top of an API client and the seen-set store.
func New(client *bilibili.Client, db *sql.DB) *Monitor {
	return &Monitor{client: client, db: db}
}

// LoadSubscriptions decodes the subscriptions section of the merged
// config. Keys must be decimal UIDs; anything else is skipped.
func LoadSubscriptions() map[int64]models.Subscription {
	raw := viper.GetStringMap("subscriptions")
	subs := make(map[int64]models.Subscription)

	for key, value := range raw {
		uid, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			log.Printf("Skipping subscription key %q: not a uid", key)
			continue
		}
		var sub models.Subscription
		if err := mapstructure.Decode(value, &sub); err != nil {
			log.Printf("Could not decode subscription for uid %s: %v", key, err)
			continue
		}
		subs[uid] = sub
	}
	return subs
}

// PollAll runs one poll cycle for every tracked account. Accounts are
// independent: a failed cycle is logged and the rest continue.
func (m *Monitor) PollAll(s *discordgo.Session) {
	subs := LoadSubscriptions()
	if len(subs) == 0 {
		log.Println("No subscriptions configured, nothing to poll.")
		return
	}

	ctx := context.Background()
	for uid, sub := range subs {
		if err := m.PollAccount(ctx, s, uid, sub); err != nil {
			utils.Error("monitor", "poll", err.Error())
		}
	}
}

// PollAccount runs one poll cycle for a single tracked account:
// fetch → normalize → resolve repost origins → diff against the seen
// set → deliver oldest first, marking each item seen only after it was
// delivered somewhere. A crash mid-cycle can at worst redeliver an
// item next cycle, never lose one.
func (m *Monitor) PollAccount(ctx context.Context, s *discordgo.Session, uid int64, sub models.Subscription) error {
	cards, err := m.client.FetchHistory(ctx, uid)
	if err != nil {
		return err
	}

	items := make([]models.FeedItem, len(cards))
	for i, card := range cards {
		items[i] = bilibili.NormalizeCard(card)
	}

	// Resolve all repost origins before reading the seen set, so an
	// item is never partitioned while its content is still unknown.
	origins := m.resolveOrigins(ctx, items)

	seen, err := database.ListKnownIDs(m.db, uid)
	if err != nil {
		return err
	}
	fresh, _ := Partition(items, seen)
	if len(fresh) == 0 {
		return nil
	}

	displayName := sub.Name
	if name, err := m.client.GetUserName(ctx, uid); err == nil {
		displayName = name
	}

	// Upstream order is most recent first; deliver oldest first.
	for i := len(fresh) - 1; i >= 0; i-- {
		item := fresh[i]
		embed := buildEmbed(displayName, item, origins[item.ID])

		delivered := false
		for _, channelID := range sub.Channels {
			if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
				utils.Error("monitor", "deliver", err.Error())
			} else {
				delivered = true
			}
		}
		if !delivered && len(sub.Channels) > 0 {
			// Not marked seen; retried next cycle.
			continue
		}
		if err := database.InsertKnownID(m.db, uid, item.ID); err != nil {
			return err
		}
	}
	return nil
}

// resolveOrigins fans out one resolution per repost item and returns
// the resolved (or degraded placeholder) origins keyed by repost id.
// The calls are independent network operations, so they run
// concurrently.
func (m *Monitor) resolveOrigins(ctx context.Context, items []models.FeedItem) map[int64]*models.FeedItem {
	origins := make(map[int64]*models.FeedItem, len(items))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, item := range items {
		if item.Type != models.TypeRepost || item.OriginID == 0 {
			continue
		}
		wg.Add(1)
		go func(item models.FeedItem) {
			defer wg.Done()
			origin, err := m.client.ResolveOrigin(ctx, item.OriginID)
			if err != nil {
				// The degraded placeholder is still delivered.
				utils.Warn("monitor", "resolve_origin", err.Error())
			}
			mu.Lock()
			origins[item.ID] = &origin
			mu.Unlock()
		}(item)
	}
	wg.Wait()
	return origins
}
