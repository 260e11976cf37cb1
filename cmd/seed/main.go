// Command seed loads the starter quote set into the database. It is a
// no-op when the quotes table already has rows, so it is safe to run on
// every deploy.
package main

import (
	_ "embed"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/Rohitprj/QuoteVault/config"
	"github.com/Rohitprj/QuoteVault/internal/infra/db"
	"github.com/Rohitprj/QuoteVault/internal/models"
	"github.com/Rohitprj/QuoteVault/internal/utils"
)

//go:embed quotes.json
var quotesJSON []byte

type seedQuote struct {
	Text     string `json:"text"`
	Author   string `json:"author"`
	Category string `json:"category"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	utils.InitLogger(cfg.AppEnv)
	defer zap.L().Sync() //nolint:errcheck

	conn := db.InitMySQL(cfg)
	if err := conn.AutoMigrate(&models.Quote{}); err != nil {
		zap.L().Fatal("failed to migrate quotes table", zap.Error(err))
	}

	var count int64
	if err := conn.Model(&models.Quote{}).Count(&count).Error; err != nil {
		zap.L().Fatal("failed to count quotes", zap.Error(err))
	}
	if count > 0 {
		zap.L().Info("quotes table already seeded, nothing to do", zap.Int64("count", count))
		return
	}

	var seeds []seedQuote
	if err := json.Unmarshal(quotesJSON, &seeds); err != nil {
		zap.L().Fatal("failed to parse embedded quote set", zap.Error(err))
	}

	quotes := make([]models.Quote, 0, len(seeds))
	for _, s := range seeds {
		author := s.Author
		quotes = append(quotes, models.Quote{
			Text:     s.Text,
			Author:   &author,
			Category: s.Category,
		})
	}

	if err := conn.CreateInBatches(quotes, 100).Error; err != nil {
		zap.L().Fatal("failed to insert quotes", zap.Error(err))
	}

	zap.L().Info("seeded quotes", zap.Int("count", len(quotes)))
}
