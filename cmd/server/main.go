package main

import (
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"crm/internal/config"
	"crm/internal/db"
	"crm/internal/logger"
	"crm/internal/mail"
	"crm/internal/models"
	"crm/internal/web"
)

func main() {
	// .env from the usual spots: repo root, or the parents when started
	// from cmd/server.
	_ = godotenv.Overload(".env", "../.env", "../../.env")

	cfg, err := config.Load()
	log := logger.New("crm", cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	gdb, err := db.Open(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	sqlDB, _ := gdb.DB()
	defer sqlDB.Close()

	if err := db.Migrate(gdb); err != nil {
		log.Fatal().Err(err).Msg("migrate schema")
	}
	if err := seedAdmin(gdb, cfg); err != nil {
		log.Fatal().Err(err).Msg("seed admin account")
	}

	_ = os.MkdirAll(cfg.UploadDir, 0o755)

	r := web.NewRouter(cfg, gdb, log, mail.LogMailer{Log: log})

	log.Info().Str("addr", cfg.Addr).Msg("server listening")
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// seedAdmin creates the first staff account from the environment when it
// does not exist yet. No credentials configured means no seeding.
func seedAdmin(gdb *gorm.DB, cfg config.Config) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}
	var cnt int64
	gdb.Model(&models.User{}).Where("username = ?", cfg.AdminUsername).Count(&cnt)
	if cnt > 0 {
		return nil
	}
	hash, err := models.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	return gdb.Create(&models.User{
		Username:     cfg.AdminUsername,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}).Error
}
