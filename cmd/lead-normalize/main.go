package main

import (
	"context"

	"sales_portal_backend/internal/leads/domain"
	"sales_portal_backend/internal/leads/repository"
	"sales_portal_backend/platform/config"
	"sales_portal_backend/platform/db"
	"sales_portal_backend/platform/logger"
	"sales_portal_backend/platform/phone"

	"github.com/google/uuid"
)

const batchSize = 200

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting lead normalize backfill", "region", cfg.GetPhoneDefaultRegion())

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	repo := repository.New(pool, nil)

	var (
		after              = uuid.Nil
		scanned, rewritten int
	)
	for {
		leads, err := repo.ListBatch(ctx, after, batchSize)
		if err != nil {
			log.Error("failed to list leads", "error", err)
			return
		}
		if len(leads) == 0 {
			break
		}

		for _, lead := range leads {
			scanned++
			status, normalizedPhone, changed := normalizeLead(lead, cfg.GetPhoneDefaultRegion())
			if !changed {
				continue
			}
			if err := repo.UpdateContact(ctx, lead.ID, status, normalizedPhone); err != nil {
				log.Error("failed to update lead", "leadId", lead.ID, "error", err)
				continue
			}
			rewritten++
			log.Info("lead normalized", "leadId", lead.ID, "status", status, "phone", normalizedPhone)
		}

		after = leads[len(leads)-1].ID
	}

	log.Info("lead normalize backfill complete", "scanned", scanned, "rewritten", rewritten)
}

// normalizeLead lowercases known statuses and rewrites the phone to E.164.
// Unknown statuses are left alone for manual review.
func normalizeLead(lead domain.Lead, region string) (domain.Status, string, bool) {
	status := lead.Status
	if parsed, ok := domain.ParseStatus(string(lead.Status)); ok {
		status = parsed
	}
	normalizedPhone := phone.NormalizeE164(lead.Phone, region)

	changed := status != lead.Status || normalizedPhone != lead.Phone
	return status, normalizedPhone, changed
}
