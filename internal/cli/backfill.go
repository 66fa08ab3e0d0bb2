package cli

import (
	"FaceAttendance/database/postgres"
	studentRepository "FaceAttendance/internal/api/student/repository"
	studentService "FaceAttendance/internal/api/student/service"
	"FaceAttendance/internal/config"
	"FaceAttendance/pkg/bcrypt"
	"FaceAttendance/pkg/face/dlib"
	"FaceAttendance/pkg/log"
	"FaceAttendance/pkg/redis"
	"FaceAttendance/pkg/storage"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Compute embeddings for enrolled students that have none",
	Long: `Backfill reads the stored photo of every student without an embedding,
runs enrollment detection on it and stores the resulting embedding. Students
whose photo shows no usable face are left unchanged.`,
	RunE: runBackfill,
}

func init() {
	rootCmd.AddCommand(backfillCmd)
}

func runBackfill(cmd *cobra.Command, args []string) error {
	logger := log.NewLogger()
	cfg := config.Load()

	db, err := postgres.New(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := postgres.Migrate(cmd.Context(), db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	u := cfg.NewUtils()
	extractor, err := dlib.New(cfg.Face, u, logger)
	if err != nil {
		return err
	}
	defer extractor.Close()

	store, err := storage.New(cfg.Storage, logger)
	if err != nil {
		return err
	}

	cache := redis.New(cfg.Redis, logger)
	defer cache.Close()

	svc := studentService.New(logger, studentRepository.New(db, logger), extractor, store, cache, bcrypt.NewWithCost(cfg.BcryptCost), u)

	var bar *progressbar.ProgressBar
	result, err := svc.Backfill(cmd.Context(), func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("Computing embeddings"),
				progressbar.OptionShowCount(),
				progressbar.OptionShowIts(),
				progressbar.OptionSetItsString("photos"),
				progressbar.OptionShowElapsedTimeOnFinish(),
				progressbar.OptionSetPredictTime(true),
				progressbar.OptionFullWidth(),
			)
		}
		_ = bar.Set(done)
	})
	if bar != nil {
		_ = bar.Finish()
		fmt.Println()
	}
	if err != nil {
		return err
	}

	fmt.Printf("Scanned: %d  Created: %d  No face: %d  Failed: %d\n",
		result.Scanned, result.Created, result.NoFace, result.Failures)
	return nil
}
