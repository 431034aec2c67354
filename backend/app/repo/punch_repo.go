package repo

import (
	"errors"
	"slices"
	"time"

	"ponto/backend/app/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrTypeTaken is returned by CreateOnce when the type is already in the window.
var ErrTypeTaken = errors.New("punch type already recorded")

// PunchFilter selects records in [From, To). Zero UsuarioID means every user.
type PunchFilter struct {
	UsuarioID uint
	From      time.Time
	To        time.Time
}

type PunchRepository struct{ db *gorm.DB }

func NewPunchRepository(db *gorm.DB) *PunchRepository { return &PunchRepository{db: db} }

func (r *PunchRepository) Create(p *models.PunchRecord) error { return r.db.Omit("Usuario").Create(p).Error }

func (r *PunchRepository) CreateBatch(ps []models.PunchRecord) error {
	if len(ps) == 0 {
		return nil
	}
	return r.db.Omit("Usuario").Create(&ps).Error
}

func (r *PunchRepository) FindByID(id uint) (*models.PunchRecord, error) {
	var p models.PunchRecord
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns matching records ordered by time, with the owning user preloaded.
func (r *PunchRepository) List(f PunchFilter) ([]models.PunchRecord, error) {
	q := r.db.Preload("Usuario").Where("timestamp >= ? AND timestamp < ?", f.From.UTC(), f.To.UTC())
	if f.UsuarioID != 0 {
		q = q.Where("usuario_id = ?", f.UsuarioID)
	}
	var out []models.PunchRecord
	err := q.Order("timestamp ASC").Order("id ASC").Find(&out).Error
	return out, err
}

// TypesBetween lists the tipo_registro values a user recorded in [from, to), in time order.
func (r *PunchRepository) TypesBetween(usuarioID uint, from, to time.Time) ([]string, error) {
	var types []string
	err := r.db.Model(&models.PunchRecord{}).
		Where("usuario_id = ? AND timestamp >= ? AND timestamp < ?", usuarioID, from.UTC(), to.UTC()).
		Order("timestamp ASC").Order("id ASC").
		Pluck("tipo_registro", &types).Error
	return types, err
}

// CreateOnce inserts p unless the user already has a record of the same type in [from, to).
// The user row is locked for the duration of the check on drivers that support row locks.
func (r *PunchRepository) CreateOnce(p *models.PunchRecord, from, to time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&models.User{}).Select("id").Where("id = ?", p.UsuarioID)
		if tx.Dialector.Name() == "mysql" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var ids []uint
		if err := q.Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return gorm.ErrRecordNotFound
		}
		used, err := NewPunchRepository(tx).TypesBetween(p.UsuarioID, from, to)
		if err != nil {
			return err
		}
		if slices.Contains(used, p.TipoRegistro) {
			return ErrTypeTaken
		}
		return tx.Omit("Usuario").Create(p).Error
	})
}

func (r *PunchRepository) Save(p *models.PunchRecord) error { return r.db.Omit("Usuario").Save(p).Error }

func (r *PunchRepository) Delete(id uint) error {
	res := r.db.Delete(&models.PunchRecord{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
