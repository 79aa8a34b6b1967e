// The worker consumes escalation events and claims the matching pending
// consultations for the on-call staff, moving them to in_progress.
package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/saludplus/consultas-backend/internal/config"
	"github.com/saludplus/consultas-backend/internal/consultation"
	"github.com/saludplus/consultas-backend/internal/db"
	"github.com/saludplus/consultas-backend/internal/logger"
	"github.com/saludplus/consultas-backend/internal/store/rabbitmq"
)

func workerConcurrency() int {
	v := os.Getenv("WORKER_CONCURRENCY")
	if v == "" {
		return 2
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 2
	}
	if n > 50 {
		return 50
	}
	return n
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogDebug, cfg.LogPretty)

	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	repo := consultation.NewRepo(gdb)

	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatal().Err(err).Msg("rabbit dial failed")
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal().Err(err).Msg("rabbit channel failed")
	}
	defer ch.Close()

	if err := rabbitmq.DeclareTopology(ch, cfg.RabbitQueue); err != nil {
		log.Fatal().Err(err).Msg("queue declare failed")
	}

	concurrency := workerConcurrency()
	if err := ch.Qos(concurrency, 0, false); err != nil {
		log.Fatal().Err(err).Msg("qos failed")
	}

	msgs, err := ch.Consume(cfg.RabbitQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("consume failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("queue", cfg.RabbitQueue).Int("concurrency", concurrency).Msg("worker started")

	jobs := make(chan amqp.Delivery, concurrency*2)

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func(workerID int) {
			defer wg.Done()
			for d := range jobs {
				var ev consultation.Escalation
				if err := json.Unmarshal(d.Body, &ev); err != nil || ev.ConsultationID == 0 {
					log.Error().Int("worker", workerID).Err(err).Msg("bad escalation message")
					_ = d.Nack(false, false)
					continue
				}

				if err := handleEscalation(ctx, repo, ev); err != nil {
					log.Error().Int("worker", workerID).
						Uint64("consultation_id", ev.ConsultationID).
						Err(err).Msg("escalation handling failed")
					_ = d.Nack(false, false)
					continue
				}

				if err := d.Ack(false); err != nil {
					log.Error().Int("worker", workerID).
						Uint64("consultation_id", ev.ConsultationID).
						Err(err).Msg("ack failed")
				}
			}
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("worker shutting down")
			close(jobs)
			wg.Wait()
			return

		case d, ok := <-msgs:
			if !ok {
				log.Warn().Msg("delivery channel closed")
				time.Sleep(1 * time.Second)
				continue
			}
			jobs <- d
		}
	}
}

func handleEscalation(ctx context.Context, repo *consultation.Repo, ev consultation.Escalation) error {
	claimed, err := repo.ClaimEscalated(ctx, ev.ConsultationID)
	if err != nil {
		return err
	}
	if !claimed {
		// Already picked up by staff, or resolved in the meantime.
		log.Debug().Uint64("consultation_id", ev.ConsultationID).Msg("escalation already claimed")
		return nil
	}

	log.Info().
		Str("event_id", ev.EventID).
		Uint64("consultation_id", ev.ConsultationID).
		Str("category", ev.Category).
		Int("priority", ev.Priority).
		Msg("consultation escalated to staff")
	return nil
}
