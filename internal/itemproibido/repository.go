package itemproibido

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persiste o espelho local das regras de itens proibidos.
type Repository interface {
	ListarTodos(db *gorm.DB) ([]ItemProibido, error)
	Salvar(db *gorm.DB, p *ItemProibido) error
	SalvarTodos(db *gorm.DB, regras []ItemProibido) error
	Deletar(db *gorm.DB, id string) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]ItemProibido, error) {
	var regras []ItemProibido
	err := db.Order("produto, grupo").Find(&regras).Error
	return regras, err
}

func (r *repositoryImpl) Salvar(db *gorm.DB, p *ItemProibido) error {
	return db.Clauses(clause.OnConflict{UpdateAll: true}).Create(p).Error
}

func (r *repositoryImpl) SalvarTodos(db *gorm.DB, regras []ItemProibido) error {
	if len(regras) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&regras).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id string) error {
	return db.Delete(&ItemProibido{}, "id = ?", id).Error
}
