package service

import (
	"userregistry/internal/domain"
	"userregistry/pkg/logger"
	"userregistry/pkg/metrics"
)

// UserService keeps users in memory in insertion order. It is not safe for
// concurrent use; callers sharing one instance must serialize access.
type UserService struct {
	users  []domain.User
	dao    domain.UserDao
	logger logger.Logger
}

func NewUserService(dao domain.UserDao, logger logger.Logger) *UserService {
	return &UserService{
		users:  []domain.User{},
		dao:    dao,
		logger: logger,
	}
}

// GetAll returns the backing slice, not a copy.
func (s *UserService) GetAll() []domain.User {
	return s.users
}

func (s *UserService) Add(users ...domain.User) bool {
	s.users = append(s.users, users...)
	metrics.RecordUsersAdded(len(users))

	s.logger.Debug("Kullanıcılar eklendi", map[string]interface{}{"count": len(users), "total": len(s.users)})
	return true
}

// GetAllConvertedByID builds a fresh id keyed view. A later user with a
// duplicate id replaces the earlier one.
func (s *UserService) GetAllConvertedByID() map[int]domain.User {
	byID := make(map[int]domain.User, len(s.users))
	for _, user := range s.users {
		byID[user.ID] = user
	}
	return byID
}

// Login returns the first user whose username and password both match, or
// nil when there is none. A nil argument fails with ErrNullCredentials.
func (s *UserService) Login(username, password *string) (*domain.User, error) {
	if username == nil || password == nil {
		metrics.RecordLogin(metrics.LoginInvalid)
		return nil, domain.ErrNullCredentials
	}

	for _, user := range s.users {
		if user.Username == *username && user.Password == *password {
			metrics.RecordLogin(metrics.LoginSuccess)
			found := user
			return &found, nil
		}
	}

	metrics.RecordLogin(metrics.LoginFailure)
	s.logger.Debug("Kullanıcı adı veya şifre eşleşmedi", map[string]interface{}{"username": *username})
	return nil, nil
}

// Delete asks the injected UserDao to delete id and returns its answer as is.
func (s *UserService) Delete(id int) (bool, error) {
	deleted, err := s.dao.Delete(id)
	if err != nil {
		metrics.RecordDelete(metrics.DeleteError)
		s.logger.Error("Kullanıcı silinemedi", map[string]interface{}{"id": id, "error": err.Error()})
		return deleted, err
	}

	if deleted {
		metrics.RecordDelete(metrics.DeleteDeleted)
	} else {
		metrics.RecordDelete(metrics.DeleteNotFound)
	}
	return deleted, nil
}
