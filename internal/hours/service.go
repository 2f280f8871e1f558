// Package hours edits the per-chat work-hours range and decides which
// validation messages a user sees.
package hours

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/monstermash2008/time-range/internal/domain"
	"github.com/monstermash2008/time-range/internal/store"
)

// Service applies user edits to stored work hours. Edits to the same chat
// are serialized so a read-modify-write from one caller cannot drop
// another's change.
type Service struct {
	repo  store.Repo
	log   *zap.Logger
	mu    sync.Mutex
	locks map[int64]*sync.Mutex // chatID -> edit lock
}

func NewService(repo store.Repo, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log, locks: make(map[int64]*sync.Mutex)}
}

// lockChat takes the edit lock for chatID and returns its unlock func.
func (s *Service) lockChat(chatID int64) func() {
	s.mu.Lock()
	l, ok := s.locks[chatID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[chatID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// load returns the stored hours, creating the default 9am-5pm range for a
// chat seen for the first time.
func (s *Service) load(ctx context.Context, chatID int64) (*domain.WorkHours, error) {
	wh, err := s.repo.Get(ctx, chatID)
	if err == nil {
		return wh, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("load hours: %w", err)
	}
	wh = &domain.WorkHours{ChatID: chatID, Range: domain.DefaultRange()}
	if err := s.repo.Upsert(ctx, wh); err != nil {
		return nil, fmt.Errorf("create hours: %w", err)
	}
	s.log.Debug("created default hours", zap.Int64("chatID", chatID))
	return wh, nil
}

func (s *Service) save(ctx context.Context, wh *domain.WorkHours, rep *Report) error {
	rep.checkRange()
	wh.Range = rep.Range
	if err := s.repo.Upsert(ctx, wh); err != nil {
		return fmt.Errorf("save hours: %w", err)
	}
	s.log.Debug("hours updated",
		zap.Int64("chatID", wh.ChatID),
		zap.Stringer("from", optTime{wh.Range.From}),
		zap.Stringer("to", optTime{wh.Range.To}),
		zap.Bool("valid", wh.Range.Valid()),
	)
	return nil
}

// Get returns the current hours as a Report with no field errors.
func (s *Service) Get(ctx context.Context, chatID int64) (Report, error) {
	defer s.lockChat(chatID)()
	wh, err := s.load(ctx, chatID)
	if err != nil {
		return Report{}, err
	}
	rep := Report{Range: wh.Range}
	rep.checkRange()
	return rep, nil
}

// SetField applies raw text to one endpoint.
func (s *Service) SetField(ctx context.Context, chatID int64, f domain.Field, raw string) (Report, error) {
	if f != domain.FieldFrom && f != domain.FieldTo {
		return Report{}, fmt.Errorf("unknown field %q", f)
	}
	defer s.lockChat(chatID)()
	wh, err := s.load(ctx, chatID)
	if err != nil {
		return Report{}, err
	}
	rep := Report{Range: wh.Range}
	rep.apply(f, raw)
	if err := s.save(ctx, wh, &rep); err != nil {
		return Report{}, err
	}
	return rep, nil
}

// Set applies raw text to both endpoints, as if the user edited both fields.
func (s *Service) Set(ctx context.Context, chatID int64, fromRaw, toRaw string) (Report, error) {
	defer s.lockChat(chatID)()
	wh, err := s.load(ctx, chatID)
	if err != nil {
		return Report{}, err
	}
	rep := Report{Range: wh.Range}
	rep.apply(domain.FieldFrom, fromRaw)
	rep.apply(domain.FieldTo, toRaw)
	if err := s.save(ctx, wh, &rep); err != nil {
		return Report{}, err
	}
	return rep, nil
}

// SetRange splits text like "9am-5pm" and applies both halves.
func (s *Service) SetRange(ctx context.Context, chatID int64, raw string) (Report, error) {
	fromRaw, toRaw, err := domain.SplitRange(raw)
	if err != nil {
		return Report{}, err
	}
	return s.Set(ctx, chatID, fromRaw, toRaw)
}

// Clear empties both endpoints.
func (s *Service) Clear(ctx context.Context, chatID int64) (Report, error) {
	return s.Set(ctx, chatID, "", "")
}

// Reset forgets the chat; the next access starts from the default range.
func (s *Service) Reset(ctx context.Context, chatID int64) error {
	defer s.lockChat(chatID)()
	if err := s.repo.Delete(ctx, chatID); err != nil {
		return fmt.Errorf("reset hours: %w", err)
	}
	return nil
}

type optTime struct{ t *domain.Time }

func (o optTime) String() string {
	if o.t == nil {
		return ""
	}
	return o.t.String()
}
