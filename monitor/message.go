package monitor

import (
	"fmt"
	"strings"

	"bili-bot/models"

	"github.com/bwmarrin/discordgo"
)

const embedColor = 0x00a1d6 // bilibili blue

// buildEmbed renders one new dynamic as a Discord embed. For reposts
// the resolved origin (possibly a degraded placeholder) is appended as
// a quoted block.
func buildEmbed(displayName string, item models.FeedItem, origin *models.FeedItem) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s 发布了新%s", displayName, item.Type.Label()),
		URL:         item.URL,
		Color:       embedColor,
		Description: item.Content,
	}

	if item.Origin != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "标题",
			Value: item.Origin,
		})
	}

	if origin != nil {
		value := origin.Content
		if value == "" {
			value = origin.URL
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("转发自 %s", origin.AuthorName),
			Value: value,
		})
	}

	pictures := item.PictureURLs
	if origin != nil && len(pictures) == 0 {
		pictures = origin.PictureURLs
	}
	if len(pictures) > 0 {
		embed.Image = &discordgo.MessageEmbedImage{URL: pictures[0]}
		if len(pictures) > 1 {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "更多图片",
				Value: strings.Join(pictures[1:], "\n"),
			})
		}
	}

	return embed
}
