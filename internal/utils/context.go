package utils

import (
	"context"

	"resolvewise/internal/models"
)

func GetSession(ctx context.Context, key any) (*models.Session, bool) {
	s, ok := ctx.Value(key).(*models.Session)
	return s, ok && s != nil
}
