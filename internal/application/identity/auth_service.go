package identity

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/auth"
)

// AuthService handles registration and authentication
type AuthService struct {
	customerRepo identity.CustomerRepository
	jwtService   *auth.JWTService
	logger       *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(customerRepo identity.CustomerRepository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		customerRepo: customerRepo,
		jwtService:   jwtService,
		logger:       logger,
	}
}

// Register creates a new customer account
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.customerRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	customer, err := identity.NewCustomer(email, string(hash))
	if err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("Customer registered", zap.String("customer_id", customer.ID.String()))

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		CustomerID: customer.ID,
		Email:      customer.Email,
		Role:       auth.RoleCustomer,
	})
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Customer: ToCustomerResponse(customer), Tokens: tokens}, nil
}

// Login authenticates a customer and returns tokens
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	customer, err := s.customerRepo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("Login for unknown email", zap.String("email", email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login with wrong password", zap.String("customer_id", customer.ID.String()))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		CustomerID: customer.ID,
		Email:      customer.Email,
		Role:       auth.RoleCustomer,
	})
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Customer: ToCustomerResponse(customer), Tokens: tokens}, nil
}

// Refresh exchanges a refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*auth.TokenPair, error) {
	tokens, err := s.jwtService.RefreshTokenPair(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}
	return tokens, nil
}
