package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/jhoicas/hrportal-api/internal/application/dto"
	"github.com/jhoicas/hrportal-api/internal/domain"
	"github.com/jhoicas/hrportal-api/internal/domain/entity"
	"github.com/jhoicas/hrportal-api/internal/domain/repository"
	"github.com/jhoicas/hrportal-api/pkg/jwt"
	"github.com/jhoicas/hrportal-api/pkg/password"
)

const statusOk = "Ok"

// APICredentials credenciales de servicio configuradas (API_AUTH_*).
type APICredentials struct {
	User string
	Pass string
	Key  string
}

// AuthUseCase casos de uso de autenticación: token de servicio, login interno, registro y login público.
type AuthUseCase struct {
	userRepo repository.UserRepository
	codec    *jwt.Codec
	api      APICredentials
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, codec *jwt.Codec, api APICredentials) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, codec: codec, api: api, now: time.Now}
}

// NormalizeEmail recorta y pliega mayúsculas; es la forma en que el email se guarda y se busca.
func NormalizeEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}

// IssueAPIToken compara las tres credenciales en tiempo constante y emite un token "api".
func (uc *AuthUseCase) IssueAPIToken(in dto.APIAuthRequest) (*dto.APIAuthResponse, error) {
	if in.User == "" || in.Pass == "" || in.Key == "" {
		return nil, fmt.Errorf("%w: user, pass and key are required", domain.ErrInvalidInput)
	}
	// Se evalúan las tres comparaciones siempre, sin cortocircuito.
	ok := equal(in.User, uc.api.User) & equal(in.Pass, uc.api.Pass) & equal(in.Key, uc.api.Key)
	if ok != 1 {
		return nil, domain.ErrUnauthorized
	}
	token, err := uc.codec.Issue(jwt.ScopeAPI, uc.api.User, "")
	if err != nil {
		return nil, fmt.Errorf("emitir token api: %w", err)
	}
	return &dto.APIAuthResponse{Status: statusOk, Token: token}, nil
}

func equal(a, b string) int {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b))
}

// AuthorizeUser login del nivel interno; el token "api" ya fue validado por el middleware.
func (uc *AuthUseCase) AuthorizeUser(ctx context.Context, in dto.UserAuthRequest) (*dto.UserAuthResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}
	user, token, err := uc.authenticate(ctx, in.Username, in.Password)
	if err != nil {
		return nil, err
	}
	return &dto.UserAuthResponse{Status: statusOk, UserToken: token, UserData: *toUserResponse(user)}, nil
}

// Register crea la cuenta con salt nuevo y hash PBKDF2, y devuelve un token "user".
// El índice único del almacén rechaza el alta concurrente del mismo email.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	name := strings.TrimSpace(in.Name)
	mobile := strings.TrimSpace(in.Mobile)
	email := NormalizeEmail(in.Email)
	if name == "" || mobile == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, mobile, email and password are required", domain.ErrInvalidInput)
	}

	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	salt, err := password.NewSalt()
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	user := &entity.User{
		Name:         name,
		Email:        email,
		Mobile:       mobile,
		PasswordSalt: salt,
		PasswordHash: password.Hash(in.Password, salt),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := uc.codec.Issue(jwt.ScopeUser, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("emitir token user: %w", err)
	}
	return &dto.AuthResponse{Success: true, Token: token, User: *toUserResponse(user)}, nil
}

// Login nivel público: misma verificación que AuthorizeUser sin la compuerta del token "api".
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}
	user, token, err := uc.authenticate(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Success: true, Token: token, User: *toUserResponse(user)}, nil
}

// Me devuelve la proyección pública del usuario del token.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return toUserResponse(user), nil
}

// authenticate es el único punto de verificación de contraseña. Usuario ausente y
// contraseña incorrecta devuelven el mismo error.
func (uc *AuthUseCase) authenticate(ctx context.Context, email, plain string) (*entity.User, string, error) {
	user, err := uc.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, "", err
	}
	if user == nil || !password.Verify(plain, user.PasswordSalt, user.PasswordHash) {
		return nil, "", domain.ErrInvalidCredentials
	}
	token, err := uc.codec.Issue(jwt.ScopeUser, user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("emitir token user: %w", err)
	}
	return user, token, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Mobile:    u.Mobile,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
