/*
seed.go - Demo data generator

Seeds a fresh store with a fixed admin account, a randomized worker pool, a
handful of businesses and two starter pool comments. Only intended for dev
and demo environments; Seed refuses to touch a store that already has
workers.
*/
package store

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/reviewcrew/review-engine/domain"
)

var (
	seedMaleNames   = []string{"Ahmet", "Mehmet", "Mustafa", "Can", "Burak", "Emre", "Murat", "Ali", "Veli", "Hakan"}
	seedFemaleNames = []string{"Ayşe", "Fatma", "Zeynep", "Elif", "Selin", "Gamze", "Merve", "Büşra", "Esra", "Derya"}
	seedLastNames   = []string{"Yılmaz", "Kaya", "Demir", "Çelik", "Şahin", "Yıldız", "Öztürk", "Aydın", "Özdemir", "Arslan"}
)

// Seed populates an empty store with demo data: one admin, workerCount
// randomized workers and businessCount businesses.
func (s *Store) Seed(ctx context.Context, rng *rand.Rand, workerCount, businessCount int) error {
	if len(s.ListWorkers()) > 0 {
		return nil
	}

	workers := make([]domain.Worker, 0, workerCount+1)
	workers = append(workers, domain.Worker{
		ID:         "admin_1",
		Name:       "Admin User",
		Phone:      "905001112233",
		Role:       domain.RoleAdmin,
		Gender:     domain.GenderMale,
		City:       "İstanbul",
		Points:     decimal.Zero,
		TierStatus: domain.TierNone,
	})

	today := domain.Today()
	for i := 1; i <= workerCount; i++ {
		female := rng.Float64() > 0.5
		var first string
		gender := domain.GenderMale
		if female {
			first = seedFemaleNames[rng.Intn(len(seedFemaleNames))]
			gender = domain.GenderFemale
		} else {
			first = seedMaleNames[rng.Intn(len(seedMaleNames))]
		}

		// Istanbul-weighted city distribution, like the production pool.
		city := domain.Cities[rng.Intn(len(domain.Cities))]
		if rng.Float64() > 0.4 {
			city = "İstanbul"
		}

		var lastTask *domain.Day
		if rng.Float64() > 0.3 {
			d := today.AddDays(-rng.Intn(15))
			lastTask = &d
		}

		tier := rng.Intn(8)
		tierStatus := domain.TierNone
		if tier > 0 {
			tierStatus = domain.TierApproved
		}

		workers = append(workers, domain.Worker{
			ID:             fmt.Sprintf("worker_%d", i),
			Name:           first + " " + seedLastNames[rng.Intn(len(seedLastNames))],
			Phone:          fmt.Sprintf("905%09d", 100000000+rng.Intn(900000000)),
			Role:           domain.RoleWorker,
			Gender:         gender,
			City:           city,
			Points:         decimal.NewFromInt(int64(rng.Intn(50))),
			CompletedTasks: rng.Intn(20),
			LastTaskDate:   lastTask,
			TierLevel:      tier,
			TierStatus:     tierStatus,
		})
	}
	if err := s.UpsertWorkers(ctx, workers); err != nil {
		return err
	}

	for i := 1; i <= businessCount; i++ {
		city := domain.Cities[rng.Intn(len(domain.Cities))]
		if rng.Float64() > 0.5 {
			city = "İstanbul"
		}
		b := domain.Business{
			ID:                fmt.Sprintf("biz_%d", i),
			Name:              fmt.Sprintf("Örnek İşletme %d (%s)", i, city),
			MapsURL:           fmt.Sprintf("https://maps.google.com/?q=business+%d", i),
			City:              city,
			TargetReviewCount: 30 + rng.Intn(120),
		}
		if err := s.UpsertBusiness(ctx, b); err != nil {
			return err
		}
	}

	starters := []domain.PoolComment{
		{ID: "pool_1", Content: "Harika bir deneyimdi, kesinlikle tavsiye ederim.", Sector: domain.SectorGeneral, Tags: []string{"tavsiye"}},
		{ID: "pool_2", Content: "Personel çok ilgiliydi, her şey için teşekkürler.", Sector: domain.SectorGeneral, Tags: []string{"personel", "teşekkür"}},
	}
	for _, c := range starters {
		if err := s.UpsertPoolComment(ctx, c); err != nil {
			return err
		}
	}

	return nil
}
