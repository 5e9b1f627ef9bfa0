package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"prestamos-api/internal/domain/user"
)

const bcryptCost = 10

var ErrInvalidToken = errors.New("invalid or expired token")

type Usecase struct {
	users    user.Repository
	secret   []byte
	tokenTTL time.Duration
	log      *logrus.Logger

	now func() time.Time
}

func NewUsecase(users user.Repository, secret []byte, tokenTTL time.Duration, log *logrus.Logger) *Usecase {
	return &Usecase{users: users, secret: secret, tokenTTL: tokenTTL, log: log, now: time.Now}
}

// Claims carries the operator identity every ledger mutation is attributed to.
type Claims struct {
	UserID   uint64 `json:"id"`
	Username string `json:"username"`
	FullName string `json:"nombre"`
	Role     string `json:"rol"`
	jwt.RegisteredClaims
}

type LoginOutput struct {
	Token string     `json:"token"`
	User  *user.User `json:"usuario"`
}

func (u *Usecase) Login(ctx context.Context, username, password string) (*LoginOutput, error) {
	if username == "" || password == "" {
		return nil, user.ErrBadCredentials
	}
	usr, err := u.users.GetActiveByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrBadCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)) != nil {
		u.log.WithField("username", username).Warn("login rejected")
		return nil, user.ErrBadCredentials
	}

	now := u.now().UTC()
	usr.LastAccess = &now
	if err := u.users.Save(ctx, usr); err != nil {
		return nil, err
	}

	claims := &Claims{
		UserID:   usr.ID,
		Username: usr.Username,
		FullName: usr.FullName,
		Role:     usr.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(u.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.secret)
	if err != nil {
		return nil, err
	}
	return &LoginOutput{Token: token, User: usr}, nil
}

// VerifyToken parses and validates a bearer token.
func (u *Usecase) VerifyToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return u.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"nombre_completo"`
	Email    string `json:"email"`
	Role     string `json:"rol"`
}

func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*user.User, error) {
	if in.Username == "" || in.Password == "" || in.FullName == "" || in.Role == "" {
		return nil, errors.New("campos obligatorios: username, password, nombre_completo, rol")
	}
	if _, err := u.users.GetActiveByUsername(ctx, in.Username); err == nil {
		return nil, user.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	usr := &user.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Email:        in.Email,
		Role:         in.Role,
		Active:       true,
	}
	if err := u.users.Create(ctx, usr); err != nil {
		return nil, err
	}
	return usr, nil
}

func (u *Usecase) ListUsers(ctx context.Context) ([]user.User, error) {
	return u.users.List(ctx)
}

func (u *Usecase) DeactivateUser(ctx context.Context, id uint64) error {
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.ErrNotFound
		}
		return err
	}
	usr.Active = false
	return u.users.Save(ctx, usr)
}
