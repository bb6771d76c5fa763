package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"shopfront/internal/domain"
	"shopfront/internal/repository"
)

const tokenTTL = time.Hour

type UserService struct {
	log       *slog.Logger
	repo      repository.UserRepository
	jwtSecret []byte

	adminEmail    string
	adminPassword string
}

func NewUserService(log *slog.Logger, repo repository.UserRepository, jwtSecret, adminEmail, adminPassword string) *UserService {
	return &UserService{
		log:           log,
		repo:          repo,
		jwtSecret:     []byte(jwtSecret),
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
	}
}

func (s *UserService) createToken(subject string, admin bool) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(tokenTTL).Unix(),
	}
	if admin {
		claims["admin"] = true
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *UserService) Register(ctx context.Context, user *domain.User, password string) (string, error) {
	existing, err := s.repo.FindByEmail(ctx, user.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	user.Password = string(hashed)

	if err := s.repo.Save(ctx, user); err != nil {
		return "", err
	}

	return s.createToken(user.ID.Hex(), false)
}

func (s *UserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.createToken(user.ID.Hex(), false)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// AdminLogin checks the back-office credentials configured in the environment.
func (s *UserService) AdminLogin(_ context.Context, email, password string) (string, error) {
	if s.adminEmail == "" || email != s.adminEmail || password != s.adminPassword {
		return "", ErrInvalidCredentials
	}
	return s.createToken(email, true)
}

func (s *UserService) Profile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, user *domain.User) (*domain.User, error) {
	existing, err := s.repo.FindByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.Email = user.Email
	existing.Address = user.Address
	return existing, nil
}

func (s *UserService) GetCart(ctx context.Context, userID primitive.ObjectID) (domain.CartData, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.CartData == nil {
		return domain.CartData{}, nil
	}
	return user.CartData, nil
}

func (s *UserService) UpdateCart(ctx context.Context, userID primitive.ObjectID, cart domain.CartData) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if cart == nil {
		cart = domain.CartData{}
	}
	return s.repo.UpdateCart(ctx, userID, cart)
}
