package userprofile

import (
	"context"
)

// Service wraps profile reads and partial updates
type Service struct {
	Repo *Repository
}

func NewService(r *Repository) *Service {
	return &Service{Repo: r}
}

// Get returns the user's profile, creating the default row on first
// access so preferences always have concrete values.
func (s *Service) Get(ctx context.Context, userID uint) (*UserProfile, error) {
	p, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	p = &UserProfile{
		UserID:                    userID,
		EmailNotifications:        true,
		EventReminders:            true,
		RegistrationConfirmations: true,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies the non-nil fields of req onto the profile.
func (s *Service) Update(ctx context.Context, userID uint, req *UpdateProfileRequest) (*UserProfile, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Department != nil {
		p.Department = req.Department
	}
	if req.YearOfStudy != nil {
		p.YearOfStudy = req.YearOfStudy
	}
	if req.Phone != nil {
		p.Phone = req.Phone
	}
	if req.EmailNotifications != nil {
		p.EmailNotifications = *req.EmailNotifications
	}
	if req.EventReminders != nil {
		p.EventReminders = *req.EventReminders
	}
	if req.RegistrationConfirmations != nil {
		p.RegistrationConfirmations = *req.RegistrationConfirmations
	}

	if err := s.Repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RegistrationConfirmationsEnabled reports whether the user wants a
// confirmation email after registering. Missing profile means default
// preferences, so the answer is yes.
func (s *Service) RegistrationConfirmationsEnabled(ctx context.Context, userID uint) bool {
	p, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil || p == nil {
		return true
	}
	return p.EmailNotifications && p.RegistrationConfirmations
}
