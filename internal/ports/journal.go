package ports

//go:generate mockgen -source=journal.go -destination=../mocks/journal_mock.go -package=mocks

import (
	"context"

	"github.com/holmes-app/materialgirl/internal/domain"
)

// ISweepJournal — запись итогов прохода в хранилище для аналитики (например, ClickHouse).
type ISweepJournal interface {
	WriteRefresh(ctx context.Context, ev domain.RefreshEvent) error
}
