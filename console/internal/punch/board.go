// Package punch tracks which of the day's four punches are still available.
package punch

import (
	"context"
	"errors"
	"slices"

	"ponto/pkg/api"
)

var (
	ErrAlreadyUsed = errors.New("ponto já registrado hoje")
	ErrUnknownType = errors.New("tipo de registro inválido")
)

type Registrar interface {
	RegisterPunch(ctx context.Context, tipo api.PunchType) (string, error)
}

// Board holds the punch types recorded today. Order is not enforced: any unused type may be sent.
type Board struct {
	reg   Registrar
	today []api.PunchType
}

func NewBoard(reg Registrar, today []api.PunchType) *Board {
	return &Board{reg: reg, today: slices.Clone(today)}
}

func (b *Board) Today() []api.PunchType { return slices.Clone(b.today) }

// Reset replaces the local state with a fresh server answer.
func (b *Board) Reset(today []api.PunchType) { b.today = slices.Clone(today) }

func (b *Board) IsAvailable(t api.PunchType) bool {
	return t.Valid() && !slices.Contains(b.today, t)
}

// Available lists the unused types in display order.
func (b *Board) Available() []api.PunchType {
	out := make([]api.PunchType, 0, len(api.PunchTypes))
	for _, t := range api.PunchTypes {
		if b.IsAvailable(t) {
			out = append(out, t)
		}
	}
	return out
}

// Register sends t and, on success, appends it locally without re-fetching.
func (b *Board) Register(ctx context.Context, t api.PunchType) (string, error) {
	if !t.Valid() {
		return "", ErrUnknownType
	}
	if !b.IsAvailable(t) {
		return "", ErrAlreadyUsed
	}
	msg, err := b.reg.RegisterPunch(ctx, t)
	if err != nil {
		return "", err
	}
	b.today = append(b.today, t)
	return msg, nil
}
