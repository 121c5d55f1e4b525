package command

import "github.com/bwmarrin/discordgo"

// PollCommand defines the structure for the /poll command.
type PollCommand struct{}

// Definition returns the application command definition.
func (c *PollCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "poll",
		Description: "Manually poll tracked bilibili accounts for new dynamics",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "uid",
				Description: "Poll only this bilibili UID (must be a tracked account)",
				Type:        discordgo.ApplicationCommandOptionString,
				Required:    false,
			},
		},
	}
}

// PixivCommand defines the structure for the /pixiv command.
type PixivCommand struct{}

// Definition returns the application command definition.
func (c *PixivCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "pixiv",
		Description: "查看Pixiv插画, 以及随机日榜、周榜、月榜",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "mode",
				Description: "日榜 / 周榜 / 月榜, 或一个具体的 Pixiv ID",
				Type:        discordgo.ApplicationCommandOptionString,
				Required:    true,
			},
		},
	}
}

// PingCommand defines the structure for the /ping command.
type PingCommand struct{}

// Definition returns the application command definition.
func (c *PingCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "ping",
		Description: "Responds with Pong!",
	}
}
