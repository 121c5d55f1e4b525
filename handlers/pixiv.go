package handlers

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"bili-bot/bot"
	"bili-bot/pixiv"
	"bili-bot/utils"

	"github.com/bwmarrin/discordgo"
)

const rankEntries = 3

var pidPattern = regexp.MustCompile(`^\d+$`)

// rankModes maps the user-facing mode words to API modes.
var rankModes = map[string]string{
	"日榜": pixiv.ModeDaily,
	"周榜": pixiv.ModeWeekly,
	"月榜": pixiv.ModeMonthly,
}

// HandlePixiv handles the logic for the /pixiv command: a ranking word
// replies with the top entries, a numeric argument with that single
// illustration.
func HandlePixiv(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	var mode string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "mode" {
			mode = opt.StringValue()
		}
	}

	apiMode, isRank := rankModes[mode]
	if !isRank && !pidPattern.MatchString(mode) {
		s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "你输入的命令好像不对呢……请输入\"月榜\"、\"周榜\"、\"日榜\"或者PixivID",
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		return
	}

	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "稍等, 正在下载资源~",
		},
	})

	go func() {
		ctx := context.Background()
		if isRank {
			sendRank(ctx, b, s, i, apiMode)
			return
		}
		pid, _ := strconv.ParseInt(mode, 10, 64)
		if err := sendIllust(ctx, b, s, i, pid); err != nil {
			utils.Warn("pixiv", "illust", err.Error())
			s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
				Content: "加载失败, 网络超时或没有这张图QAQ",
			})
		}
	}()
}

func sendRank(ctx context.Context, b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, apiMode string) {
	pids, err := b.Pixiv.Rank(ctx, apiMode, rankEntries)
	if err != nil || len(pids) == 0 {
		utils.Warn("pixiv", "rank", fmt.Sprintf("mode %s: %v", apiMode, err))
		s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Content: "加载失败, 网络超时QAQ",
		})
		return
	}

	errorCount := 0
	for _, pid := range pids {
		if err := sendIllust(ctx, b, s, i, pid); err != nil {
			utils.Warn("pixiv", "illust", err.Error())
			errorCount++
		}
	}
	if errorCount == len(pids) {
		s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Content: "加载失败, 网络超时QAQ",
		})
	}
}

func sendIllust(ctx context.Context, b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, pid int64) error {
	illust, err := b.Pixiv.Illust(ctx, pid)
	if err != nil {
		return err
	}
	// Pixiv image hosts reject hotlinks, so the image is attached as a
	// file instead of an embed URL.
	data, err := utils.FetchImage(ctx, illust.ImageURL)
	if err != nil {
		return err
	}

	_, err = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: illust.Caption(),
		Files: []*discordgo.File{
			{
				Name:   fmt.Sprintf("%d.jpg", pid),
				Reader: bytes.NewReader(data),
			},
		},
	})
	return err
}
