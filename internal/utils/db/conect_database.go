package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AbrirCacheLocal abre (ou cria) o banco SQLite que espelha os cadastros de
// apoio quando o webhook está fora do ar.
func AbrirCacheLocal(caminho string) (*gorm.DB, error) {
	if caminho == "" {
		caminho = "cupom-transporte.db"
	}
	database, err := gorm.Open(sqlite.Open(caminho), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("abrir cache local %s: %w", caminho, err)
	}
	return database, nil
}
