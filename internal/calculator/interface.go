package calculator

import (
	"context"

	"psychrometer/pkg/psychro"
)

//go:generate mockgen -package mockcalculator -source=interface.go -destination=mock/mockcalculator.go *
type Calculator interface {
	Compute(ctx context.Context, temperature, humidity any) (psychro.Result, error)
	Properties(ctx context.Context, temperature, humidity any, include ...psychro.Property) (psychro.Properties, error)
	Describe() psychro.Description
}
