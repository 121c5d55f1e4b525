package bot

import (
	"log"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

var c *cron.Cron

// startScheduler starts the cron jobs.
func startScheduler(b *Bot) {
	log.Println("Initializing scheduler...")
	spec := viper.GetString("monitor.cron")
	c = cron.New()
	_, err := c.AddFunc(spec, func() {
		log.Println("Running scheduled dynamic poll...")
		b.Monitor.PollAll(b.Session)
	})
	if err != nil {
		log.Fatalf("Could not set up cron job: %v", err)
	}
	c.Start()
	log.Printf("Cron job scheduled with spec %q.", spec)

	// Perform an initial poll on startup based on config.
	if viper.GetBool("monitor.pollAtStartup") {
		go func() {
			log.Println("Performing initial poll on startup...")
			b.Monitor.PollAll(b.Session)
		}()
	} else {
		log.Println("Skipping initial poll on startup as per configuration.")
	}
}

// stopScheduler stops the cron jobs.
func stopScheduler() {
	if c != nil {
		c.Stop()
		log.Println("Scheduler stopped.")
	}
}
