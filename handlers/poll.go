package handlers

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"bili-bot/bot"
	"bili-bot/monitor"

	"github.com/bwmarrin/discordgo"
)

// HandlePoll handles the logic for the /poll command.
func HandlePoll(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	var uidArg string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "uid" {
			uidArg = opt.StringValue()
		}
	}

	var initialResponse string
	if uidArg == "" {
		initialResponse = "Received command to poll all tracked accounts. Polling..."
	} else {
		initialResponse = fmt.Sprintf("Received command to poll UID **%s**. Polling...", uidArg)
	}

	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: initialResponse,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})

	// Run the poll in a goroutine.
	go func() {
		if uidArg == "" {
			log.Println("Starting manual poll for all tracked accounts")
			b.Monitor.PollAll(s)
			s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
				Content: "✅ Poll of all tracked accounts has completed.",
			})
			return
		}

		uid, err := strconv.ParseInt(uidArg, 10, 64)
		if err != nil {
			s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
				Content: fmt.Sprintf("Error: %q is not a valid UID.", uidArg),
			})
			return
		}
		sub, ok := monitor.LoadSubscriptions()[uid]
		if !ok {
			s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
				Content: fmt.Sprintf("Error: UID %d is not a tracked account.", uid),
			})
			return
		}

		log.Printf("Starting manual poll for uid %d", uid)
		if err := b.Monitor.PollAccount(context.Background(), s, uid, sub); err != nil {
			s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
				Content: fmt.Sprintf("❌ Poll for UID %d failed: %v", uid, err),
			})
			return
		}
		s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Content: fmt.Sprintf("✅ Poll for UID %d has completed.", uid),
		})
	}()
}
