package services

import (
	"context"
	"log"

	"library-service/internal/apperrors"
	"library-service/internal/application/validation"
	"library-service/internal/domain/entities"
	"library-service/internal/domain/repositories"
	"library-service/internal/infrastructure"
)

type RegisterRequest struct {
	FirstName   string `json:"first_name" validate:"required,min=1,max=30"`
	LastName    string `json:"last_name" validate:"required,min=1,max=30"`
	Email       string `json:"email" validate:"required,email,max=50"`
	Password    string `json:"password" validate:"required,min=6,max=255,password"`
	Phone       string `json:"phone" validate:"omitempty,intlphone"`
	Company     string `json:"company" validate:"omitempty,min=1,max=50"`
	JobPosition string `json:"job_position" validate:"omitempty,min=1,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,min=1,max=30"`
	LastName    *string `json:"last_name" validate:"omitempty,min=1,max=30"`
	Phone       *string `json:"phone" validate:"omitempty,intlphone"`
	Company     *string `json:"company" validate:"omitempty,min=1,max=50"`
	JobPosition *string `json:"job_position" validate:"omitempty,min=1,max=50"`
}

// UserService covers registration, login and profile reads/updates.
type UserService struct {
	userRepo     repositories.UserRepository
	jwtService   *infrastructure.JWTService
	redisService *infrastructure.RedisService
	emailService *infrastructure.EmailService
	validator    *validation.Validator
}

func NewUserService(
	userRepo repositories.UserRepository,
	jwtService *infrastructure.JWTService,
	redisService *infrastructure.RedisService,
	emailService *infrastructure.EmailService,
	validator *validation.Validator,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		jwtService:   jwtService,
		redisService: redisService,
		emailService: emailService,
		validator:    validator,
	}
}

// Register creates the user, stores only a bcrypt hash of the password and
// returns a fresh token.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (string, error) {
	if err := s.validator.Validate(req); err != nil {
		return "", err
	}

	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", apperrors.Conflict("There is already an account with this e-mail. Please, log in or register with another e-mail")
	}

	user := entities.NewUser(req.FirstName, req.LastName, req.Email, req.Password)
	user.Phone = req.Phone
	user.Company = req.Company
	user.JobPosition = req.JobPosition

	if err := user.HashPassword(); err != nil {
		return "", err
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return "", err
	}

	token, err := s.issueToken(created)
	if err != nil {
		return "", err
	}

	go s.emailService.SendWelcome(created.Email, created.FirstName)

	return token, nil
}

// Login verifies the credentials and returns a fresh token.
func (s *UserService) Login(ctx context.Context, req LoginRequest) (string, error) {
	if err := s.validator.Validate(req); err != nil {
		return "", err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperrors.NotFound("This e-mail hasn't been registered in the library. Please, register or check your input data")
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return "", apperrors.Unauthorized("The provided password is incorrect. Please, try again")
	}

	return s.issueToken(user)
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*entities.User, error) {
	user, err := s.userRepo.FindById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found")
	}
	return user, nil
}

// UpdateProfile applies the provided fields only. An empty field set is a
// BadRequest.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, req UpdateUserRequest) (*entities.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Company != nil {
		fields["company"] = *req.Company
	}
	if req.JobPosition != nil {
		fields["job_position"] = *req.JobPosition
	}
	if len(fields) == 0 {
		return nil, apperrors.BadRequest("You haven't provided any fields to update")
	}

	return s.userRepo.UpdateFields(ctx, userID, fields)
}

func (s *UserService) issueToken(user *entities.User) (string, error) {
	token, err := s.jwtService.GenerateToken(user.Id)
	if err != nil {
		return "", err
	}

	// Cache the token asynchronously so verification can skip the signature
	// check on the hot path. Failures only cost the optimization.
	go func() {
		if err := s.redisService.SetToken(context.Background(), token, user.Id, s.jwtService.Validity()); err != nil {
			log.Printf("failed to cache token: %v", err)
		}
	}()

	return token, nil
}
