package models

import "time"

// PunchRecord is one clock event. Timestamp is stored in UTC.
type PunchRecord struct {
	ID            uint      `gorm:"primaryKey"`
	UsuarioID     uint      `gorm:"index:idx_usuario_timestamp;not null"`
	Usuario       User      `gorm:"foreignKey:UsuarioID;constraint:OnDelete:CASCADE"`
	Timestamp     time.Time `gorm:"index:idx_usuario_timestamp;not null"`
	TipoRegistro  string    `gorm:"size:32;not null"`
	Justificativa string    `gorm:"size:1024"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (PunchRecord) TableName() string { return "registros_ponto" }
