package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sppku/sppku-backend/internal/config"
	"github.com/sppku/sppku-backend/internal/database"
	"github.com/sppku/sppku-backend/internal/logger"
	"github.com/sppku/sppku-backend/internal/model"
	"github.com/sppku/sppku-backend/internal/repository"
)

// Seeds a small demo roster so the dashboard has something to show.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	studentRepo := repository.NewStudentRepository(pool)
	year := time.Now().Year()

	fmt.Println("=== Seeding Demo Roster ===")

	names := []string{
		"Budi Santoso", "Siti Aminah", "Andi Pratama", "Rina Wati", "Joko Susilo",
		"Ayu Lestari", "Dodi Kusuma", "Eka Putri", "Fahri Hamzah", "Gita Savitri",
		"Hendra Gunawan", "Ika Sari", "Jamal Mirdad", "Kiki Fatmala", "Lukman Hakim",
		"Maya Septiana", "Nanda Pratama", "Oki Setiana", "Putri Dian", "Qori Maharani",
		"Rafi Ahmad", "Siska Saraswati", "Toni Setiawan", "Umi Kalsum", "Vina Panduwinata",
		"Wahyu Hidayat", "Yudi Pratama", "Zaki Anwar", "Alifia Zahra", "Bagas Saputra",
	}
	classes := []string{"Kelas 1", "Kelas 2", "Kelas 3"}

	created := 0
	for i, name := range names {
		category := model.CategoryMenetap
		if i%3 == 0 {
			category = model.CategorySekolah
		}

		student := &model.Student{
			NIS:        fmt.Sprintf("%d%03d", year, i+1),
			Name:       name,
			Category:   category,
			ClassName:  classes[i%len(classes)],
			MonthlyFee: 250000,
		}
		fees := map[model.FeeKind]int64{
			model.FeePembangunan1: 500000,
		}
		if i%2 == 0 {
			fees[model.FeeCatering] = 150000
		}

		if err := studentRepo.Create(ctx, student, fees, year); err != nil {
			log.Fatal().Err(err).Str("name", name).Msg("Failed to seed student")
		}
		created++
	}

	fmt.Printf("Seeded %d students for year %d\n", created, year)
}
