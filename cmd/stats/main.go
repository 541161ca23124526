// cmd/stats/main.go is the match stats consumer: it drains settled match
// records from the Redis side channel and persists them to Postgres in
// batches.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"

	"github.com/cyberrps/arena/internal/cache"
	"github.com/cyberrps/arena/internal/database"
	"github.com/cyberrps/arena/internal/game"
)

// StatsService accumulates match records and flushes them to the database
// when the batch fills or the flush interval elapses.
type StatsService struct {
	batchSize  int
	flushDelay time.Duration

	batchMu sync.Mutex
	batch   []game.SettledMatch

	ctx      context.Context
	cancelFn context.CancelFunc
}

func NewStatsService() *StatsService {
	ctx, cancel := context.WithCancel(context.Background())
	batchSize := getEnvInt("STATS_BATCH_SIZE", 20)
	return &StatsService{
		batchSize:  batchSize,
		flushDelay: time.Duration(getEnvInt("STATS_FLUSH_MS", 500)) * time.Millisecond,
		batch:      make([]game.SettledMatch, 0, batchSize),
		ctx:        ctx,
		cancelFn:   cancel,
	}
}

// Run blocks until Stop is called, consuming the Redis list in the meantime.
func (s *StatsService) Run() {
	database.ConnectDB()
	if err := database.EnsureSchema(s.ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}
	if err := cache.ConnectRedis(); err != nil {
		log.Fatalf("redis: %v", err)
	}

	go s.consumeLoop()

	log.Println("arena-stats service started")
	<-s.ctx.Done()
	s.flush()
	log.Println("arena-stats shutting down")
}

func (s *StatsService) consumeLoop() {
	ticker := time.NewTicker(s.flushDelay)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.flush()
		default:
			rec, err := cache.PopMatchResult(s.ctx, 3*time.Second)
			if err != nil {
				if !errors.Is(err, redis.Nil) && !errors.Is(err, context.Canceled) {
					log.Printf("[ERROR] pop match result: %v", err)
				}
				continue
			}
			s.append(*rec)
		}
	}
}

func (s *StatsService) append(rec game.SettledMatch) {
	s.batchMu.Lock()
	defer s.batchMu.Unlock()
	s.batch = append(s.batch, rec)
	if len(s.batch) >= s.batchSize {
		s.flushLocked()
	}
}

func (s *StatsService) flush() {
	s.batchMu.Lock()
	defer s.batchMu.Unlock()
	s.flushLocked()
}

// flushLocked writes the pending batch in one transaction. Caller holds
// batchMu.
func (s *StatsService) flushLocked() {
	if len(s.batch) == 0 {
		return
	}
	pending := make([]game.SettledMatch, len(s.batch))
	copy(pending, s.batch)
	s.batch = s.batch[:0]

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.InsertMatchRecords(ctx, pending); err != nil {
		log.Printf("[ERROR] flush match records: %v", err)
		return
	}
	log.Printf("flushed %d match records", len(pending))
}

func (s *StatsService) Stop() {
	s.cancelFn()
}

func main() {
	svc := NewStatsService()
	go svc.Run()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	svc.Stop()
	log.Println("stats shutdown complete")
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
