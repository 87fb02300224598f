package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dkovacevic/liftlog/pkg"

	"github.com/go-redis/redis/v8"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "liftlog-session||"
)

var ErrWrongCredentials = errors.New("wrong credentials")

type usersGetter interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
}

type Service struct {
	users       usersGetter
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewService(users usersGetter, ttl time.Duration, redisClient *redis.Client) *Service {
	return &Service{
		users:          users,
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

// Login verifies the given credentials and, on success, creates a login
// session in redis: token -> user id, expiring after the service TTL.
func (as *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := as.users.GetByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		// wrong username and wrong password are indistinguishable on purpose
		return "", ErrWrongCredentials
	}
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}

	if !pkg.CheckPasswordHash(password, user.PasswordHash) {
		return "", ErrWrongCredentials
	}

	token, err := as.RandStringFunc(35)
	if err != nil {
		return "", err
	}

	sessionKey := sessionKeyPrefix + token
	cmdSet := as.redisClient.Set(ctx, sessionKey, user.ID, as.ttl)
	if err := cmdSet.Err(); err != nil {
		return "", err
	}

	return token, nil
}

// Logout removes the login session; reports whether the token was known.
func (as *Service) Logout(ctx context.Context, token string) (bool, error) {
	sessionKey := sessionKeyPrefix + token
	cmdDel := as.redisClient.Del(ctx, sessionKey)
	if err := cmdDel.Err(); err != nil {
		return false, err
	}
	return cmdDel.Val() > 0, nil
}

type LoginChecker struct {
	redisClient *redis.Client
}

func NewLoginChecker(redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		redisClient: redisClient,
	}
}

// UserID resolves a session token to the logged-in user id.
func (lc *LoginChecker) UserID(ctx context.Context, token string) (int, error) {
	sessionKey := sessionKeyPrefix + token
	cmd := lc.redisClient.Get(ctx, sessionKey)
	if err := cmd.Err(); err != nil {
		return 0, err
	}

	userID, err := strconv.Atoi(cmd.Val())
	if err != nil {
		return 0, fmt.Errorf("malformed session value: %w", err)
	}

	return userID, nil
}
