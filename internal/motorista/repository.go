package motorista

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persiste o espelho local de motoristas, consultado quando o
// webhook está fora do ar.
type Repository interface {
	ListarTodos(db *gorm.DB) ([]Motorista, error)
	Salvar(db *gorm.DB, m *Motorista) error
	SalvarTodos(db *gorm.DB, motoristas []Motorista) error
	Deletar(db *gorm.DB, id string) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Motorista, error) {
	var motoristas []Motorista
	err := db.Order("nome").Find(&motoristas).Error
	return motoristas, err
}

func (r *repositoryImpl) Salvar(db *gorm.DB, m *Motorista) error {
	return db.Clauses(clause.OnConflict{UpdateAll: true}).Create(m).Error
}

func (r *repositoryImpl) SalvarTodos(db *gorm.DB, motoristas []Motorista) error {
	if len(motoristas) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&motoristas).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id string) error {
	return db.Delete(&Motorista{}, "id = ?", id).Error
}
