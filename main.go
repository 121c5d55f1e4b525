package main

import (
	"log"

	"bili-bot/bilibili"
	"bili-bot/bot"
	"bili-bot/config"
	"bili-bot/database"
	"bili-bot/handlers"
	"bili-bot/monitor"
	"bili-bot/pixiv"

	"github.com/spf13/viper"
)

func main() {
	config.LoadConfig()

	db, err := database.InitDB(viper.GetString("database.path"))
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	client := bilibili.NewClient(bilibili.Credential{
		SessData:   viper.GetString("BILI_SESSDATA"),
		CSRF:       viper.GetString("BILI_CSRF"),
		VisitorUID: viper.GetInt64("BILI_UID"),
	})

	m := monitor.New(client, db)
	px := pixiv.NewClient(viper.GetString("PIXIV_API_KEY"))

	bot.Run(handlers.Register, m, px, db)
}
