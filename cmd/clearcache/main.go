// Command clearcache purges cached latest ward readings. Run after the ward
// selection changes so the next dispatch cycle fetches fresh data.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"aqi-notifier/internal/cache"
	"aqi-notifier/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Redis.Addr == "" {
		fmt.Println("REDIS_ADDR not set; nothing to clear")
		os.Exit(0)
	}

	wards := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer wards.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := wards.Purge(ctx)
	if err != nil {
		log.Fatalf("Error clearing ward cache: %v", err)
	}
	if deleted == 0 {
		fmt.Println("No cached ward readings found (may have already expired)")
		return
	}
	fmt.Printf("Cleared %d cached ward readings; the next cycle will fetch fresh data\n", deleted)
}
