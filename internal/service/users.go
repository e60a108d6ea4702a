package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/shuvam021/fundoo-v3/internal/apperr"
	"github.com/shuvam021/fundoo-v3/internal/auth"
	"github.com/shuvam021/fundoo-v3/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a new user with a hashed password and kicks off the
// verification mail.
func (s *Service) Register(ctx context.Context, email, password, passwordConfirm string) (*models.User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", apperr.ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", apperr.ErrValidation)
	}
	if password != passwordConfirm {
		return nil, fmt.Errorf("%w: passwords do not match", apperr.ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.sendVerificationAsync(user)
	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns an access/refresh token pair.
func (s *Service) Login(ctx context.Context, email, password string) (*auth.TokenPair, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, err
	}
	s.log.Infof("User logged in: %s", user.Email)
	return pair, nil
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	userID, err := s.tokens.Verify(refreshToken, auth.PurposeRefresh)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.FindUserByID(ctx, userID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			// Do not reveal whether the subject ever existed.
			return nil, apperr.ErrTokenInvalid
		}
		return nil, err
	}
	return s.tokens.IssuePair(userID)
}

// SendVerification re-sends the confirmation mail for an unverified account.
func (s *Service) SendVerification(ctx context.Context, userID int64) error {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return fmt.Errorf("%w: account is already verified", apperr.ErrValidation)
	}
	s.sendVerificationAsync(user)
	return nil
}

// VerifyEmail confirms the account addressed by a verification token.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	userID, err := s.tokens.Verify(token, auth.PurposeVerify)
	if err != nil {
		return err
	}
	if err := s.users.MarkUserVerified(ctx, userID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.ErrTokenInvalid
		}
		return err
	}
	s.log.Infof("User %d verified", userID)
	return nil
}

// ForgetPassword mails a reset link if the address belongs to an account.
// The response is the same either way so addresses cannot be probed.
func (s *Service) ForgetPassword(ctx context.Context, email string) error {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil
		}
		return err
	}

	token, err := s.tokens.Issue(user.ID, auth.PurposeReset)
	if err != nil {
		return err
	}
	go func() {
		if err := s.mail.SendPasswordReset(user.Email, token); err != nil {
			s.log.Errorf("Failed to send reset mail to %s: %v", user.Email, err)
		}
	}()
	return nil
}

// UpdatePassword sets a new password for the account addressed by a reset
// token.
func (s *Service) UpdatePassword(ctx context.Context, token, password, passwordConfirm string) error {
	userID, err := s.tokens.Verify(token, auth.PurposeReset)
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", apperr.ErrValidation)
	}
	if password != passwordConfirm {
		return fmt.Errorf("%w: passwords do not match", apperr.ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.UpdateUserPassword(ctx, userID, string(hashedPassword)); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.ErrTokenInvalid
		}
		return err
	}
	s.log.Infof("Password updated for user %d", userID)
	return nil
}

// ListUsers returns all users. Admin gating happens in the middleware.
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.ListUsers(ctx)
}

// GetUser returns one user by id.
func (s *Service) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.users.FindUserByID(ctx, id)
}

// SendVerificationReminders mails every account that registered more than a
// day ago and never confirmed. Driven by the cron job.
func (s *Service) SendVerificationReminders(ctx context.Context) (int, error) {
	users, err := s.users.UnverifiedUsersCreatedBefore(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		return 0, err
	}
	for i := range users {
		s.sendVerificationAsync(&users[i])
	}
	return len(users), nil
}

// sendVerificationAsync issues a verification token and delivers the mail in
// the background. Fire and forget: failures are logged, never propagated.
func (s *Service) sendVerificationAsync(user *models.User) {
	token, err := s.tokens.Issue(user.ID, auth.PurposeVerify)
	if err != nil {
		s.log.Errorf("Failed to issue verification token for %s: %v", user.Email, err)
		return
	}
	email := user.Email
	go func() {
		if err := s.mail.SendVerification(email, token); err != nil {
			s.log.Errorf("Failed to send verification mail to %s: %v", email, err)
		}
	}()
}
