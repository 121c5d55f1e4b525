package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadConfig 从多个源加载配置：.env 文件、config.yaml、以及 ./config/ 目录下的订阅文件。
// 配置加载顺序:
// 1. .env 文件 (用于环境变量, 如 BOT_TOKEN / BILI_SESSDATA / BILI_CSRF / BILI_UID / PIXIV_API_KEY)
// 2. config.yaml (基础配置)
// 3. config/subscriptions.json (追踪的B站账号及推送频道, 合并到主配置)
// 环境变量会覆盖配置文件中的同名设置。
func LoadConfig() {
	// 1. 从 .env 文件加载环境变量，如果文件不存在则忽略。
	if err := godotenv.Load(); err != nil {
		log.Printf("未找到 .env 文件，将跳过加载。")
	}

	// 2. 设置并读取基础配置文件 (config.yaml)。
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("未找到基础配置文件 (config.yaml)，将仅使用环境变量和后续合并的配置。")
		} else {
			panic(fmt.Errorf("解析基础配置文件时发生致命错误: %w", err))
		}
	}

	// 3. 合并订阅配置文件 (config/subscriptions.json)。
	viper.SetConfigName("subscriptions")
	viper.SetConfigType("json")
	viper.AddConfigPath("./config")

	if err := viper.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("未找到订阅配置文件 (config/subscriptions.json)，将跳过合并。")
		} else {
			panic(fmt.Errorf("合并订阅配置文件时发生致命错误: %w", err))
		}
	}

	// 默认值
	viper.SetDefault("database.path", "./data/bili.db")
	viper.SetDefault("monitor.cron", "@every 5m")
	viper.SetDefault("monitor.pollAtStartup", false)
}
