package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"driver-hub/internal/auth/otp"
	"driver-hub/internal/auth/password"
	"driver-hub/internal/auth/repo"
	"driver-hub/internal/shared/apperrors"
	"driver-hub/internal/shared/jwt"
	"driver-hub/internal/shared/models"
	"driver-hub/internal/shared/util"
)

// OTPPurposeReset tags codes issued for the forgot-password flow so a
// login code can't be replayed into a reset.
const OTPPurposeReset = "reset"

type AuthService struct {
	repo   *repo.AuthRepo
	otp    *otp.Store
	tokens *jwt.Manager
	logger *util.Logger
}

func NewAuthService(r *repo.AuthRepo, otpStore *otp.Store, tokens *jwt.Manager, logger *util.Logger) *AuthService {
	return &AuthService{repo: r, otp: otpStore, tokens: tokens, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, email, phone, pass, name string) (*models.User, error) {
	instance := "AuthService.Register"
	start := time.Now()

	s.logger.Info(instance, fmt.Sprintf("attempting to register new driver [email=%s]", email))

	if password.Classify(pass) == password.Weak {
		s.logger.Warn(instance, fmt.Sprintf("rejected weak password [email=%s]", email))
		return nil, apperrors.ErrWeakPassword
	}

	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		s.logger.Error(instance, fmt.Errorf("failed to check existing user: %w", err))
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		s.logger.Warn(instance, fmt.Sprintf("user with email %s already exists", email))
		return nil, apperrors.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error(instance, fmt.Errorf("failed to hash password: %w", err))
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Phone:        phone,
		Role:         "driver",
		Status:       "ACTIVE",
		PasswordHash: string(hash),
		Attrs: map[string]interface{}{
			"name": name,
		},
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		s.logger.Error(instance, fmt.Errorf("failed to create user in DB: %w", err))
		return nil, err
	}
	if err := s.repo.CreateDriverProfile(ctx, user.ID); err != nil {
		s.logger.Error(instance, fmt.Errorf("failed to create driver profile: %w", err))
		return nil, err
	}

	s.logger.OK(instance, fmt.Sprintf("driver registered successfully [user_id=%s, email=%s]", user.ID, email))
	s.logger.Info(instance, fmt.Sprintf("registration completed in %dms", time.Since(start).Milliseconds()))

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, pass string) (string, *models.User, error) {
	instance := "AuthService.Login"
	start := time.Now()

	s.logger.Info(instance, fmt.Sprintf("user attempting login [email=%s]", email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn(instance, fmt.Sprintf("login failed: user not registered [email=%s]", email))
			return "", nil, apperrors.ErrInvalidCredentials
		}
		s.logger.Error(instance, fmt.Errorf("failed to query user: %w", err))
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(pass)) != nil {
		s.logger.Warn(instance, fmt.Sprintf("invalid password for user [email=%s]", email))
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		s.logger.Error(instance, fmt.Errorf("failed to generate token: %w", err))
		return "", nil, err
	}

	s.logger.OK(instance, fmt.Sprintf("user login successful [user_id=%s, role=%s]", user.ID, user.Role))
	s.logger.Info(instance, fmt.Sprintf("login completed in %dms", time.Since(start).Milliseconds()))

	return token, user, nil
}

// RequestOTP issues a verification code for the phone. Delivery is a
// collaborator concern; the code is logged in place of an SMS gateway.
func (s *AuthService) RequestOTP(ctx context.Context, phone, purpose string) error {
	instance := "AuthService.RequestOTP"

	if _, err := s.repo.GetUserByPhone(ctx, phone); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn(instance, fmt.Sprintf("otp requested for unknown phone [phone=%s]", phone))
			return apperrors.ErrUserNotFound
		}
		s.logger.Error(instance, fmt.Errorf("failed to query user: %w", err))
		return err
	}

	code, err := otp.GenerateCode()
	if err != nil {
		s.logger.Error(instance, err)
		return err
	}

	if err := s.otp.Issue(ctx, purpose, phone, code); err != nil {
		s.logger.Error(instance, err)
		return err
	}

	// SMS gateway is out of scope; surface the code in the service log.
	s.logger.Info(instance, fmt.Sprintf("verification code issued [phone=%s, purpose=%s, code=%s]", phone, purpose, code))
	return nil
}

func (s *AuthService) VerifyOTP(ctx context.Context, phone, purpose, code string) error {
	instance := "AuthService.VerifyOTP"

	if err := s.otp.Verify(ctx, purpose, phone, code); err != nil {
		s.logger.Warn(instance, fmt.Sprintf("verification failed [phone=%s, purpose=%s]: %v", phone, purpose, err))
		return err
	}

	s.logger.OK(instance, fmt.Sprintf("code verified [phone=%s, purpose=%s]", phone, purpose))
	return nil
}

// ResetPassword completes the forgot-password flow: a valid reset code
// plus a new password that clears the strength policy.
func (s *AuthService) ResetPassword(ctx context.Context, phone, code, newPass string) error {
	instance := "AuthService.ResetPassword"

	if password.Classify(newPass) == password.Weak {
		return apperrors.ErrWeakPassword
	}

	user, err := s.repo.GetUserByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrUserNotFound
		}
		return err
	}

	if err := s.otp.Verify(ctx, OTPPurposeReset, phone, code); err != nil {
		s.logger.Warn(instance, fmt.Sprintf("reset rejected [phone=%s]: %v", phone, err))
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		s.logger.Error(instance, fmt.Errorf("failed to update password hash: %w", err))
		return err
	}

	s.logger.OK(instance, fmt.Sprintf("password reset [user_id=%s]", user.ID))
	return nil
}

// UpdatePassword changes the password of an authenticated user after
// re-checking the old one.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, oldPass, newPass string) error {
	instance := "AuthService.UpdatePassword"

	if password.Classify(newPass) == password.Weak {
		return apperrors.ErrWeakPassword
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrUserNotFound
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPass)) != nil {
		s.logger.Warn(instance, fmt.Sprintf("old password mismatch [user_id=%s]", userID))
		return apperrors.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		s.logger.Error(instance, fmt.Errorf("failed to update password hash: %w", err))
		return err
	}

	s.logger.OK(instance, fmt.Sprintf("password updated [user_id=%s]", user.ID))
	return nil
}
