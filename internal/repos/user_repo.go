package repos

import (
	"context"
	"strings"
	"time"

	"cottoncare/internal/domain"
	"cottoncare/internal/seed"
	"cottoncare/internal/store"
)

type UserRepo struct {
	users    *store.Collection[domain.User]
	sessions *store.Collection[domain.Session]
}

func NewUserRepo(s *store.Store) *UserRepo {
	return &UserRepo{
		users:    store.NewCollection(s, KeyUsers, seed.Users),
		sessions: store.NewCollection[domain.Session](s, KeySessions, nil),
	}
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	return r.users.Load(ctx)
}

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	all, err := r.users.Load(ctx)
	for _, u := range all {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return &u, nil
		}
	}
	if err != nil {
		return nil, err
	}
	return nil, ErrNotFound
}

func (r *UserRepo) ByID(ctx context.Context, id string) (*domain.User, error) {
	all, err := r.users.Load(ctx)
	for _, u := range all {
		if u.ID == id {
			return &u, nil
		}
	}
	if err != nil {
		return nil, err
	}
	return nil, ErrNotFound
}

// Create inserts u unless its email is already registered (case-insensitive).
func (r *UserRepo) Create(ctx context.Context, u domain.User) error {
	_, err := r.users.Update(ctx, func(all []domain.User) ([]domain.User, error) {
		for _, x := range all {
			if strings.EqualFold(x.Email, u.Email) {
				return nil, ErrEmailTaken
			}
		}
		return append(all, u), nil
	})
	return err
}

func (r *UserRepo) Modify(ctx context.Context, id string, fn func(*domain.User)) (*domain.User, error) {
	var out domain.User
	_, err := r.users.Update(ctx, func(all []domain.User) ([]domain.User, error) {
		for i := range all {
			if all[i].ID == id {
				fn(&all[i])
				out = all[i]
				return all, nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *UserRepo) BindSession(ctx context.Context, sid, userID string) error {
	_, err := r.sessions.Update(ctx, func(all []domain.Session) ([]domain.Session, error) {
		now := time.Now().UTC()
		for i := range all {
			if all[i].ID == sid {
				all[i].UserID = userID
				all[i].LastSeen = now
				return all, nil
			}
		}
		return append(all, domain.Session{ID: sid, UserID: userID, LastSeen: now}), nil
	})
	return err
}

func (r *UserRepo) SessionUser(ctx context.Context, sid string) (*domain.User, error) {
	all, err := r.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range all {
		if s.ID == sid && s.UserID != "" {
			return r.ByID(ctx, s.UserID)
		}
	}
	return nil, ErrNotFound
}

func (r *UserRepo) UnbindSession(ctx context.Context, sid string) error {
	_, err := r.sessions.Update(ctx, func(all []domain.Session) ([]domain.Session, error) {
		out := all[:0]
		for _, s := range all {
			if s.ID != sid {
				out = append(out, s)
			}
		}
		return out, nil
	})
	return err
}
