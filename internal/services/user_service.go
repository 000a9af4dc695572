package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tripplanner/internal/auth"
	"tripplanner/internal/cache"
	"tripplanner/internal/domain"
	"tripplanner/internal/domain/models"
	"tripplanner/internal/utils"
)

const (
	minPasswordLength = 6
	// bcrypt rejects longer input.
	maxPasswordLength = 72
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var errBadCredentials = domain.UnauthorizedError{Msg: "invalid email or password"}

// UserService handles registration, login and the profile of the
// authenticated user. Profiles are cached read-through in Cache.
type UserService struct {
	Users     UserStore
	Cache     cache.Store
	JWTSecret []byte
	TokenTTL  time.Duration
	RequestID string
}

type RegisterInput struct {
	Name        string                  `json:"name"`
	Email       string                  `json:"email"`
	Password    string                  `json:"password"`
	Preferences *models.UserPreferences `json:"preferences"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate carries only the fields the client sent.
type ProfileUpdate struct {
	Name        *string                 `json:"name"`
	Email       *string                 `json:"email"`
	Password    *string                 `json:"password"`
	Preferences *models.UserPreferences `json:"preferences"`
}

type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (s UserService) Register(in RegisterInput) (AuthResult, error) {
	name := utils.NormalizeSpace(in.Name)
	if name == "" {
		return AuthResult{}, domain.ValidationError{Field: "name", Msg: "required"}
	}
	email, err := checkEmail(in.Email)
	if err != nil {
		return AuthResult{}, err
	}
	if err := checkPassword(in.Password); err != nil {
		return AuthResult{}, err
	}

	exists, err := s.Users.EmailExists(email)
	if err != nil {
		return AuthResult{}, err
	}
	if exists {
		return AuthResult{}, domain.ConflictError{Resource: "user", Msg: "email already registered"}
	}

	prefs := models.UserPreferences{}
	if in.Preferences != nil {
		prefs = *in.Preferences
	}
	prefs, err = normalizeUserPreferences(prefs)
	if err != nil {
		return AuthResult{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.Users.Create(models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Preferences:  prefs,
	})
	if err != nil {
		return AuthResult{}, err
	}
	utils.LogEvent(s.RequestID, "user", "register", fmt.Sprintf("user_id=%d", u.ID))
	return s.authResult(u)
}

func (s UserService) Login(in LoginInput) (AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return AuthResult{}, domain.ValidationError{Msg: "email and password are required"}
	}

	u, err := s.Users.GetByEmail(email)
	if domain.IsNotFound(err) {
		return AuthResult{}, errBadCredentials
	}
	if err != nil {
		return AuthResult{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return AuthResult{}, errBadCredentials
	}
	utils.LogEvent(s.RequestID, "user", "login", fmt.Sprintf("user_id=%d", u.ID))
	return s.authResult(u)
}

func (s UserService) GetProfile(userID int64) (models.User, error) {
	key := profileKey(userID)
	if v, ok := s.cache().Get(key); ok {
		if u, ok := v.(models.User); ok {
			return u, nil
		}
	}
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return models.User{}, err
	}
	s.cache().Set(key, u)
	return u, nil
}

func (s UserService) UpdateProfile(userID int64, in ProfileUpdate) (models.User, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return models.User{}, err
	}

	if in.Name != nil {
		name := utils.NormalizeSpace(*in.Name)
		if name == "" {
			return models.User{}, domain.ValidationError{Field: "name", Msg: "must not be empty"}
		}
		u.Name = name
	}
	if in.Email != nil {
		email, err := checkEmail(*in.Email)
		if err != nil {
			return models.User{}, err
		}
		if email != u.Email {
			exists, err := s.Users.EmailExists(email)
			if err != nil {
				return models.User{}, err
			}
			if exists {
				return models.User{}, domain.ConflictError{Resource: "user", Msg: "email already registered"}
			}
		}
		u.Email = email
	}
	if in.Password != nil {
		if err := checkPassword(*in.Password); err != nil {
			return models.User{}, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}
	if in.Preferences != nil {
		prefs, err := normalizeUserPreferences(*in.Preferences)
		if err != nil {
			return models.User{}, err
		}
		u.Preferences = prefs
	}

	u, err = s.Users.Update(u)
	if err != nil {
		return models.User{}, err
	}
	s.cache().Delete(profileKey(userID))
	utils.LogEvent(s.RequestID, "user", "update_profile", fmt.Sprintf("user_id=%d password_changed=%t", userID, in.Password != nil))
	return u, nil
}

func (s UserService) authResult(u models.User) (AuthResult, error) {
	token, err := auth.IssueToken(s.JWTSecret, u.ID, s.TokenTTL)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}
	return AuthResult{Token: token, User: u}, nil
}

func (s UserService) cache() cache.Store {
	if s.Cache == nil {
		return cache.Nop{}
	}
	return s.Cache
}

func profileKey(userID int64) string {
	return fmt.Sprintf("profile:%d", userID)
}

func checkPassword(p string) error {
	switch {
	case len(p) < minPasswordLength:
		return domain.ValidationError{Field: "password", Msg: fmt.Sprintf("must be at least %d characters", minPasswordLength)}
	case len(p) > maxPasswordLength:
		return domain.ValidationError{Field: "password", Msg: fmt.Sprintf("must be at most %d bytes", maxPasswordLength)}
	}
	return nil
}

func checkEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", domain.ValidationError{Field: "email", Msg: "required"}
	}
	if !emailPattern.MatchString(email) {
		return "", domain.ValidationError{Field: "email", Msg: "invalid email address"}
	}
	return email, nil
}

func normalizeUserPreferences(p models.UserPreferences) (models.UserPreferences, error) {
	style := strings.ToLower(strings.TrimSpace(p.TravelStyle))
	if style == "" {
		style = models.DefaultTravelStyle
	}
	if !models.ValidTravelStyle(style) {
		return p, domain.ValidationError{Field: "preferences.travelStyle", Msg: fmt.Sprintf("unknown travel style %q", p.TravelStyle)}
	}
	p.TravelStyle = style

	if p.BudgetRange.Min < 0 || p.BudgetRange.Max < 0 {
		return p, domain.ValidationError{Field: "preferences.budgetRange", Msg: "must not be negative"}
	}
	if p.BudgetRange.Max > 0 && p.BudgetRange.Min > p.BudgetRange.Max {
		return p, domain.ValidationError{Field: "preferences.budgetRange", Msg: "min must not exceed max"}
	}

	p.PreferredTransportation = utils.CleanList(p.PreferredTransportation)
	if len(p.PreferredTransportation) == 0 {
		p.PreferredTransportation = append([]string{}, models.DefaultTransportation...)
	}
	p.Interests = utils.CleanList(p.Interests)
	return p, nil
}
